package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/agiangrant/golden"
)

// Demo implements the 'golden demo' command
func Demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	configPath := fs.String("config", golden.ConfigFile, "Config file")
	scene := fs.String("scene", "center", "Scene to run (center, container, flow)")
	fs.Parse(args)

	cfg, err := golden.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	build, err := Scene(*scene)
	if err != nil {
		return err
	}
	// Stderr belongs to the screen while the demo runs.
	closeLog, err := setupLogging(cfg.Log, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	app, err := golden.NewTerminalApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	if err := build(app.Stage()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}
