package commands

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/agiangrant/golden"
)

// Render implements the 'golden render' command
func Render(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	configPath := fs.String("config", golden.ConfigFile, "Config file")
	scene := fs.String("scene", "center", "Scene to render (center, container, flow)")
	output := fs.String("o", "golden.png", "Output PNG file")
	width := fs.Int("width", 0, "Override render width")
	height := fs.Int("height", 0, "Override render height")
	filter := fs.String("filter", "", "Override image filter (nearest, bilinear, bicubic)")
	fs.Parse(args)

	cfg, err := golden.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *width > 0 {
		cfg.Render.Width = *width
	}
	if *height > 0 {
		cfg.Render.Height = *height
	}
	if *filter != "" {
		cfg.Render.Filter = *filter
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	build, err := Scene(*scene)
	if err != nil {
		return err
	}

	f, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *output, err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if err := golden.RenderPNG(cfg, build, bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", *output, err)
	}
	fmt.Printf("  ✓ Rendered %s (%dx%d)\n", *output, cfg.Render.Width, cfg.Render.Height)
	return nil
}
