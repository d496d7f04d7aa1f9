package term

import (
	"image"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/agiangrant/golden/retained"
)

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

type state struct {
	tx, ty float64
	clip   rect
}

// Painter rasterizes rectangles and labels into screen cells. A cell is
// filled when its center lies inside the rectangle and the clip. There is
// no blending: colors below half opacity are not drawn.
type Painter struct {
	screen       tcell.Screen
	cellW, cellH float64

	cur   state
	stack []state
	color tcell.Color
	alpha float64
	path  []rect
}

// NewPainter creates a painter for w's screen.
func NewPainter(w *Window) *Painter {
	p := &Painter{
		screen: w.screen,
		cellW:  float64(w.cellW),
		cellH:  float64(w.cellH),
		color:  tcell.ColorDefault,
	}
	p.Reset()
	return p
}

// Reset drops pushed state and resets the clip to the whole screen.
func (p *Painter) Reset() {
	p.stack = p.stack[:0]
	p.path = p.path[:0]
	cols, rows := p.screen.Size()
	p.cur = state{clip: rect{0, 0, float64(cols) * p.cellW, float64(rows) * p.cellH}}
}

func (p *Painter) Push() { p.stack = append(p.stack, p.cur) }

func (p *Painter) Pop() {
	if len(p.stack) == 0 {
		return
	}
	p.cur = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Painter) ClipRect(x, y, w, h float64) {
	p.cur.clip = p.cur.clip.intersect(p.device(x, y, w, h))
}

func (p *Painter) Translate(x, y float64) {
	p.cur.tx += x
	p.cur.ty += y
}

func (p *Painter) SetRGBA(r, g, b, a float64) {
	p.color = tcell.NewRGBColor(channel(r), channel(g), channel(b))
	p.alpha = a
}

func channel(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// DrawRectangle adds the visible part of a rectangle to the path.
func (p *Painter) DrawRectangle(x, y, w, h float64) {
	r := p.device(x, y, w, h).intersect(p.cur.clip)
	if !r.empty() {
		p.path = append(p.path, r)
	}
}

// Fill paints the path cells with the current color as background and
// clears the path.
func (p *Painter) Fill() error {
	defer func() { p.path = p.path[:0] }()
	if p.alpha < 0.5 {
		return nil
	}
	style := tcell.StyleDefault.Background(p.color)
	for _, r := range p.path {
		c0, c1 := cellSpan(r.x0, r.x1, p.cellW)
		r0, r1 := cellSpan(r.y0, r.y1, p.cellH)
		for row := r0; row < r1; row++ {
			for col := c0; col < c1; col++ {
				p.screen.SetContent(col, row, ' ', nil, style)
			}
		}
	}
	return nil
}

// cellSpan returns the cells whose centers lie in [lo, hi).
func cellSpan(lo, hi, size float64) (first, end int) {
	return int(math.Ceil(lo/size - 0.5)), int(math.Ceil(hi/size - 0.5))
}

// DrawString writes s starting at the cell containing (x, y), keeping each
// cell's background. Runes outside the clip are dropped.
func (p *Painter) DrawString(s string, x, y float64) {
	px, py := p.cur.tx+x, p.cur.ty+y
	clip := p.cur.clip
	if py < clip.y0 || py >= clip.y1 {
		return
	}
	col := int(math.Floor(px / p.cellW))
	row := int(math.Floor(py / p.cellH))
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		cx := (float64(col) + 0.5) * p.cellW
		if cx >= clip.x0 && cx < clip.x1 {
			_, _, st, _ := p.screen.GetContent(col, row)
			_, bg, _ := st.Decompose()
			p.screen.SetContent(col, row, r, nil, tcell.StyleDefault.Foreground(p.color).Background(bg))
		}
		col += w
	}
}

// MeasureString returns the label size in widget units: one cell row high
// and as wide as its display cells.
func (p *Painter) MeasureString(s string) (w, h float64) {
	return float64(runewidth.StringWidth(s)) * p.cellW, p.cellH
}

// DrawImage samples img at the center of every visible cell and paints the
// cell background with it. Transparent samples leave the cell alone.
func (p *Painter) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	dst := p.device(x, y, w, h)
	vis := dst.intersect(p.cur.clip)
	if vis.empty() {
		return
	}
	b := img.Bounds()
	c0, c1 := cellSpan(vis.x0, vis.x1, p.cellW)
	r0, r1 := cellSpan(vis.y0, vis.y1, p.cellH)
	for row := r0; row < r1; row++ {
		cy := (float64(row) + 0.5) * p.cellH
		sy := b.Min.Y + int((cy-dst.y0)/h*float64(b.Dy()))
		for col := c0; col < c1; col++ {
			cx := (float64(col) + 0.5) * p.cellW
			sx := b.Min.X + int((cx-dst.x0)/w*float64(b.Dx()))
			r, g, bl, a := img.At(sx, sy).RGBA()
			if a < 0x8000 {
				continue
			}
			c := tcell.NewRGBColor(int32(r*0xff/a), int32(g*0xff/a), int32(bl*0xff/a))
			p.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(c))
		}
	}
}

func (p *Painter) device(x, y, w, h float64) rect {
	return rect{
		x0: p.cur.tx + x, y0: p.cur.ty + y,
		x1: p.cur.tx + x + w, y1: p.cur.ty + y + h,
	}
}

var (
	_ retained.Painter      = (*Painter)(nil)
	_ retained.TextPainter  = (*Painter)(nil)
	_ retained.ImagePainter = (*Painter)(nil)
)
