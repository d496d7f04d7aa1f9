// Package canvas is the software raster backend: a gg drawing context that
// serves both as the retained.Painter a batch draws into and as a static
// retained.Window whose input is injected by the caller.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/agiangrant/golden/retained"
)

// ErrUnknownFilter is returned for an unrecognized image filter name.
var ErrUnknownFilter = errors.New("canvas: unknown filter")

// Config describes a canvas. The filter is an explicit renderer setting:
// every image drawn through the canvas is sampled with it.
type Config struct {
	Width, Height int

	// Filter is "nearest", "bilinear" or "bicubic". Empty means bilinear.
	Filter string

	// Background is painted by Clear. Nil means opaque black.
	Background color.Color

	// FontSize in points for labels. Zero disables text.
	FontSize float64
}

// ParseFilter maps a filter name to a gg interpolation mode.
func ParseFilter(name string) (gg.InterpolationMode, error) {
	switch strings.ToLower(name) {
	case "", "bilinear", "linear":
		return gg.InterpBilinear, nil
	case "nearest":
		return gg.InterpNearest, nil
	case "bicubic", "cubic":
		return gg.InterpBicubic, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

// state is one Push level: translation and clip in device coordinates.
type state struct {
	tx, ty float64
	clip   rect
}

type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) intersect(o rect) rect {
	out := rect{
		x0: math.Max(r.x0, o.x0), y0: math.Max(r.y0, o.y0),
		x1: math.Min(r.x1, o.x1), y1: math.Min(r.y1, o.y1),
	}
	if out.x1 < out.x0 {
		out.x1 = out.x0
	}
	if out.y1 < out.y0 {
		out.y1 = out.y0
	}
	return out
}

func (r rect) empty() bool { return r.x1 <= r.x0 || r.y1 <= r.y0 }

// Canvas draws retained widgets into an in-memory image.
//
// Rectangles are clipped by the canvas itself before they reach gg, so
// clip frames hold exactly for the axis-aligned shapes widgets paint.
type Canvas struct {
	dc     *gg.Context
	cfg    Config
	interp gg.InterpolationMode

	cur   state
	stack []state

	font   *text.FontSource
	ascent float64

	handlers       []retained.Handlers
	mouseX, mouseY int
}

// New creates a canvas.
func New(cfg Config) (*Canvas, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d: %w", cfg.Width, cfg.Height, retained.ErrNegativeSize)
	}
	interp, err := ParseFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}
	if cfg.Background == nil {
		cfg.Background = color.Black
	}
	c := &Canvas{
		dc:     gg.NewContext(cfg.Width, cfg.Height),
		cfg:    cfg,
		interp: interp,
	}
	c.cur.clip = rect{0, 0, float64(cfg.Width), float64(cfg.Height)}

	if cfg.FontSize > 0 {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("failed to load label font: %w", err)
		}
		face := src.Face(cfg.FontSize)
		c.font = src
		c.ascent = face.Metrics().Ascent
		c.dc.SetFont(face)
	}
	slogger().Debug("canvas created",
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.String("filter", cfg.Filter))
	return c, nil
}

// Close releases the drawing context and the label font.
func (c *Canvas) Close() error {
	var errs []error
	if err := c.dc.Close(); err != nil {
		errs = append(errs, err)
	}
	if c.font != nil {
		if err := c.font.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clear paints the whole canvas with the background color and drops any
// pushed state.
func (c *Canvas) Clear() {
	for len(c.stack) > 0 {
		c.Pop()
	}
	c.dc.ClearWithColor(gg.FromColor(c.cfg.Background))
}

// Image returns the current pixels.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the current pixels as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// SavePNG writes the current pixels to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// ============================================================================
// Painter
// ============================================================================

// Push saves translation and clip.
func (c *Canvas) Push() {
	c.stack = append(c.stack, c.cur)
	c.dc.Push()
}

// Pop restores the last pushed state.
func (c *Canvas) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.dc.Pop()
}

// ClipRect intersects the clip with a rectangle in current coordinates.
func (c *Canvas) ClipRect(x, y, w, h float64) {
	c.cur.clip = c.cur.clip.intersect(c.device(x, y, w, h))
	c.dc.ClipRect(x, y, w, h)
}

// Translate moves the origin.
func (c *Canvas) Translate(x, y float64) {
	c.cur.tx += x
	c.cur.ty += y
	c.dc.Translate(x, y)
}

// SetRGBA sets the fill color.
func (c *Canvas) SetRGBA(r, g, b, a float64) { c.dc.SetRGBA(r, g, b, a) }

// DrawRectangle adds the visible part of a rectangle to the path.
func (c *Canvas) DrawRectangle(x, y, w, h float64) {
	r := c.device(x, y, w, h).intersect(c.cur.clip)
	if r.empty() {
		return
	}
	// Back to current coordinates: gg applies the translation itself.
	c.dc.DrawRectangle(r.x0-c.cur.tx, r.y0-c.cur.ty, r.x1-r.x0, r.y1-r.y0)
}

// Fill fills the path.
func (c *Canvas) Fill() error { return c.dc.Fill() }

// DrawString draws s with its text box top-left at (x, y).
func (c *Canvas) DrawString(s string, x, y float64) {
	if c.font == nil {
		return
	}
	px, py := c.cur.tx+x, c.cur.ty+y
	clip := c.cur.clip
	if px < clip.x0 || px >= clip.x1 || py < clip.y0 || py >= clip.y1 {
		return
	}
	c.dc.DrawString(s, x, y+c.ascent)
}

// MeasureString returns the label box size.
func (c *Canvas) MeasureString(s string) (w, h float64) {
	if c.font == nil {
		return 0, 0
	}
	return c.dc.MeasureString(s)
}

// DrawImage draws img scaled to (w, h) with the canvas filter. Only the
// part inside the clip is sampled.
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	dst := c.device(x, y, w, h)
	vis := dst.intersect(c.cur.clip)
	if vis.empty() {
		return
	}
	b := img.Bounds()
	sx, sy := float64(b.Dx())/w, float64(b.Dy())/h
	src := image.Rect(
		b.Min.X+int(math.Floor((vis.x0-dst.x0)*sx)),
		b.Min.Y+int(math.Floor((vis.y0-dst.y0)*sy)),
		b.Min.X+int(math.Ceil((vis.x1-dst.x0)*sx)),
		b.Min.Y+int(math.Ceil((vis.y1-dst.y0)*sy)),
	)
	c.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             vis.x0 - c.cur.tx,
		Y:             vis.y0 - c.cur.ty,
		DstWidth:      vis.x1 - vis.x0,
		DstHeight:     vis.y1 - vis.y0,
		SrcRect:       &src,
		Interpolation: c.interp,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
}

// device converts a rectangle in current coordinates to device space.
func (c *Canvas) device(x, y, w, h float64) rect {
	return rect{
		x0: c.cur.tx + x, y0: c.cur.ty + y,
		x1: c.cur.tx + x + w, y1: c.cur.ty + y + h,
	}
}

// ============================================================================
// Window
// ============================================================================

// Size returns the canvas size.
func (c *Canvas) Size() (width, height int) { return c.cfg.Width, c.cfg.Height }

// MousePosition returns the last injected pointer position.
func (c *Canvas) MousePosition() (x, y int) { return c.mouseX, c.mouseY }

// PushHandlers subscribes h to injected input.
func (c *Canvas) PushHandlers(h retained.Handlers) {
	c.handlers = append(c.handlers, h)
}

// RemoveHandlers unsubscribes h.
func (c *Canvas) RemoveHandlers(h retained.Handlers) {
	if i := slices.Index(c.handlers, h); i >= 0 {
		c.handlers = slices.Delete(c.handlers, i, i+1)
	}
}

// MoveMouse injects a motion to (x, y).
func (c *Canvas) MoveMouse(x, y int) {
	dx, dy := x-c.mouseX, y-c.mouseY
	c.mouseX, c.mouseY = x, y
	for _, h := range slices.Clone(c.handlers) {
		h.OnMouseMotion(x, y, dx, dy)
	}
}

// Click injects a left press and release at (x, y).
func (c *Canvas) Click(x, y int) {
	c.MoveMouse(x, y)
	for _, h := range slices.Clone(c.handlers) {
		h.OnMousePress(x, y, retained.MouseLeft, 0)
	}
	for _, h := range slices.Clone(c.handlers) {
		h.OnMouseRelease(x, y, retained.MouseLeft, 0)
	}
}

var (
	_ retained.Painter      = (*Canvas)(nil)
	_ retained.TextPainter  = (*Canvas)(nil)
	_ retained.ImagePainter = (*Canvas)(nil)
	_ retained.Window       = (*Canvas)(nil)
)
