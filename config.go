package golden

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/golden/internal/canvas"
	"github.com/agiangrant/golden/retained"
)

// ConfigFile is the file name LoadConfig and SaveConfig use by default.
const ConfigFile = "golden.toml"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the golden.toml configuration file
type Config struct {
	Router   RouterConfig   `toml:"router"`
	Render   RenderConfig   `toml:"render"`
	Terminal TerminalConfig `toml:"terminal"`
	Log      LogConfig      `toml:"log"`
}

// RouterConfig configures the spatial index.
type RouterConfig struct {
	// Edge length of a spatial hash cell, in window units
	CellSize int `toml:"cell_size"`
	// Re-send a motion at the last pointer position after widgets move
	HoverRefresh bool `toml:"hover_refresh"`
}

// RenderConfig configures the software canvas used for PNG rendering.
type RenderConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Image filter: nearest, bilinear or bicubic
	Filter string `toml:"filter"`
	// Background color as #rrggbb
	Background string  `toml:"background"`
	FontSize   float64 `toml:"font_size"`
}

// TerminalConfig configures the terminal backend.
type TerminalConfig struct {
	// Widget units per screen cell
	CellWidth  int  `toml:"cell_width"`
	CellHeight int  `toml:"cell_height"`
	Mouse      bool `toml:"mouse"`
	// Redraws per second while animations run
	FrameRate int `toml:"frame_rate"`
}

// LogConfig configures the slog handler the CLI installs.
type LogConfig struct {
	// debug, info, warn or error
	Level string `toml:"level"`
	// text or json
	Format string `toml:"format"`
	// Log file path; empty logs to stderr
	File string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Router: RouterConfig{
			CellSize:     retained.DefaultCellSize,
			HoverRefresh: true,
		},
		Render: RenderConfig{
			Width:      640,
			Height:     480,
			Filter:     "bilinear",
			Background: "#1f2937",
			FontSize:   14,
		},
		Terminal: TerminalConfig{
			CellWidth:  1,
			CellHeight: 1,
			Mouse:      true,
			FrameRate:  30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads the configuration from path. An empty path means
// golden.toml. If the file doesn't exist, returns the default config.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		path = ConfigFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes the configuration to path, golden.toml if empty.
func SaveConfig(path string, config Config) error {
	if path == "" {
		path = ConfigFile
	}
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Validate checks every section and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Router.CellSize < 1 {
		bad("router.cell_size %d must be positive", c.Router.CellSize)
	}
	if c.Render.Width < 1 || c.Render.Height < 1 {
		bad("render size %dx%d must be positive", c.Render.Width, c.Render.Height)
	}
	if _, err := canvas.ParseFilter(c.Render.Filter); err != nil {
		bad("render.filter: %v", err)
	}
	if _, err := ParseColor(c.Render.Background); err != nil {
		bad("render.background: %v", err)
	}
	if c.Render.FontSize < 0 {
		bad("render.font_size %g must not be negative", c.Render.FontSize)
	}
	if c.Terminal.CellWidth < 1 || c.Terminal.CellHeight < 1 {
		bad("terminal cell size %dx%d must be positive", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	if c.Terminal.FrameRate < 1 || c.Terminal.FrameRate > 240 {
		bad("terminal.frame_rate %d must be between 1 and 240", c.Terminal.FrameRate)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		bad("log.level: %v", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		bad("log.format %q must be text or json", c.Log.Format)
	}
	return errors.Join(errs...)
}

// ParseColor parses a #rrggbb or #rgb color. Empty means opaque black.
func ParseColor(s string) (color.Color, error) {
	if s == "" {
		return color.Black, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
