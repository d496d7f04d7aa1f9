package retained

import "image"

// ============================================================================
// Rendering Targets
// ============================================================================

// Painter is the drawing target a batch renders into. *gg.Context satisfies
// it, as does the terminal cell painter.
type Painter interface {
	Push()
	Pop()
	ClipRect(x, y, w, h float64)
	Translate(x, y float64)
	SetRGBA(r, g, b, a float64)
	DrawRectangle(x, y, w, h float64)
	Fill() error
}

// TextPainter is an optional Painter capability for single-line labels.
// (x, y) is the top-left corner of the text box MeasureString reports.
type TextPainter interface {
	DrawString(s string, x, y float64)
	MeasureString(s string) (w, h float64)
}

// ImagePainter is an optional Painter capability for bitmaps. The sampling
// filter belongs to the painter's own configuration.
type ImagePainter interface {
	DrawImage(img image.Image, x, y, w, h float64)
}

// ============================================================================
// Draw Sink
// ============================================================================

// Drawable is a primitive held by a sink. Paint receives a painter already
// scoped to the drawable's group.
type Drawable interface {
	Group() *ClipFrame
	Paint(p Painter) error
}

// Sink accumulates drawables for one render submission. Widgets under one
// router or container subtree share a sink; it is never owned by a widget.
type Sink interface {
	Add(d Drawable)
	Remove(d Drawable)
	Draw() error
}

// Batch is the default Sink: an ordered list of drawables painted in
// insertion order onto a target painter.
type Batch struct {
	target Painter
	items  []Drawable
}

// NewBatch creates a batch drawing onto target. A nil target makes Draw a
// no-op, which is useful for headless routing.
func NewBatch(target Painter) *Batch {
	return &Batch{target: target}
}

// SetTarget replaces the painter used by Draw.
func (b *Batch) SetTarget(target Painter) {
	b.target = target
}

// Add appends d. Adding a drawable already present is a no-op.
func (b *Batch) Add(d Drawable) {
	for _, it := range b.items {
		if it == d {
			return
		}
	}
	b.items = append(b.items, d)
}

// Remove drops d. Removing an absent drawable is a no-op.
func (b *Batch) Remove(d Drawable) {
	for i, it := range b.items {
		if it == d {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return
		}
	}
}

// Len returns the number of drawables.
func (b *Batch) Len() int { return len(b.items) }

// Draw paints every drawable, each inside its group's state scope. The
// first paint error stops the pass and is returned.
func (b *Batch) Draw() error {
	if b.target == nil {
		return nil
	}
	items := make([]Drawable, len(b.items))
	copy(items, b.items)
	for _, d := range items {
		var err error
		if g := d.Group(); g != nil {
			err = g.Scope(b.target, func() error { return d.Paint(b.target) })
		} else {
			err = d.Paint(b.target)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
