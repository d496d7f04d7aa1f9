package golden

import (
	"fmt"
	"io"
	"time"

	"github.com/agiangrant/golden/internal/canvas"
	"github.com/agiangrant/golden/retained"
)

// Stage is what a Build places widgets on.
type Stage struct {
	Index      *retained.SpatialIndex
	Animations *retained.AnimationRegistry
}

// Build places widgets on a fresh stage.
type Build func(s Stage) error

// settle is far enough ahead to finish any non-looping animation.
const settle = 24 * time.Hour

// NewCanvas creates a software canvas from the render section.
func NewCanvas(cfg RenderConfig) (*canvas.Canvas, error) {
	bg, err := ParseColor(cfg.Background)
	if err != nil {
		return nil, err
	}
	return canvas.New(canvas.Config{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Filter:     cfg.Filter,
		Background: bg,
		FontSize:   cfg.FontSize,
	})
}

// RenderPNG builds a widget tree on a canvas, draws one frame and writes
// it to w as PNG. Animations started by build are settled to their end
// state first; looping ones are drawn where their last cycle ends.
func RenderPNG(cfg Config, build Build, w io.Writer) error {
	c, err := NewCanvas(cfg.Render)
	if err != nil {
		return err
	}
	defer c.Close()

	ix, err := retained.NewSpatialIndex(c,
		retained.WithCellSize(cfg.Router.CellSize),
		retained.WithHoverRefresh(cfg.Router.HoverRefresh),
		retained.WithBatch(retained.NewBatch(c)),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	anims := retained.NewAnimationRegistry()
	if build != nil {
		if err := build(Stage{Index: ix, Animations: anims}); err != nil {
			return fmt.Errorf("failed to build widgets: %w", err)
		}
	}
	anims.Tick(time.Now().Add(settle))

	c.Clear()
	if err := ix.Draw(); err != nil {
		return fmt.Errorf("failed to draw: %w", err)
	}
	if err := c.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
