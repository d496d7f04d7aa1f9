package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/golden/cmd/golden/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "demo":
		err = commands.Demo(args)
	case "render":
		err = commands.Render(args)
	case "init":
		err = commands.Init(args)
	case "version", "-v", "--version":
		fmt.Printf("golden version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`golden - retained widget toolkit CLI

Usage: golden <command> [options]

Commands:
  demo       Run an interactive scene in the terminal
  render     Render a scene to a PNG file
  init       Write a golden.toml with default settings
  version    Print version information
  help       Show this help message

Examples:
  golden demo                         Run the centered button scene
  golden demo --scene container       Run the clipped container scene
  golden render -o out.png            Render the default scene
  golden render --filter nearest      Render with nearest neighbour sampling

Configuration:
  Settings are read from golden.toml in the current directory.
  Run 'golden init' to create one with default values.`)
}
