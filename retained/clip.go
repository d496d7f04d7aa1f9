package retained

// ClipFrame is the absolute rectangle within which a container's content is
// visible and interactive, plus the coordinate origin children are drawn
// relative to.
//
// A frame composed under a parent is clamped to the parent's effective
// rectangle. Because the parent's rectangle is itself already clamped, the
// result is bounded by every ancestor without visiting them.
type ClipFrame struct {
	parent *ClipFrame

	// Requested placement relative to the parent's origin.
	offsetX, offsetY int
	reqW, reqH       int

	// Derived absolute state.
	originX, originY int
	rect             Rect
}

// NewRootFrame creates an unparented frame covering (0, 0, width, height),
// the window frame top-level containers compose with.
func NewRootFrame(width, height int) *ClipFrame {
	f := &ClipFrame{}
	f.Compose(nil, 0, 0, width, height)
	return f
}

// Compose recomputes the frame for a request of (x, y, width, height)
// relative to parent. A nil parent leaves the frame bounded only by its own
// rectangle.
func (f *ClipFrame) Compose(parent *ClipFrame, x, y, width, height int) {
	f.parent = parent
	f.offsetX, f.offsetY = x, y
	f.reqW, f.reqH = max(width, 0), max(height, 0)

	if parent == nil {
		f.originX, f.originY = x, y
		f.rect = Rect{X: x, Y: y, W: f.reqW, H: f.reqH}
		return
	}
	f.originX, f.originY = parent.originX+x, parent.originY+y
	f.rect = Rect{X: f.originX, Y: f.originY, W: f.reqW, H: f.reqH}.Intersect(parent.rect)
}

// Recompose recomputes the frame against its current parent, after the
// parent itself changed.
func (f *ClipFrame) Recompose() {
	f.Compose(f.parent, f.offsetX, f.offsetY, f.reqW, f.reqH)
}

// Parent returns the frame this one is clamped to.
func (f *ClipFrame) Parent() *ClipFrame { return f.parent }

// Origin returns the absolute origin children are translated by.
func (f *ClipFrame) Origin() (x, y int) { return f.originX, f.originY }

// Rect returns the effective absolute clip rectangle.
func (f *ClipFrame) Rect() Rect { return f.rect }

// Requested returns the rectangle asked for, relative to the parent origin.
func (f *ClipFrame) Requested() Rect {
	return Rect{X: f.offsetX, Y: f.offsetY, W: f.reqW, H: f.reqH}
}

// Contains reports whether the absolute point (x, y) is inside the
// effective rectangle.
func (f *ClipFrame) Contains(x, y int) bool { return f.rect.Contains(x, y) }

// SetState saves the painter state, clips to the effective rectangle and
// translates to the frame origin. Every SetState must be paired with
// RestoreState.
func (f *ClipFrame) SetState(p Painter) {
	p.Push()
	p.ClipRect(float64(f.rect.X), float64(f.rect.Y), float64(f.rect.W), float64(f.rect.H))
	p.Translate(float64(f.originX), float64(f.originY))
}

// RestoreState undoes SetState.
func (f *ClipFrame) RestoreState(p Painter) {
	p.Pop()
}

// Scope runs fn between SetState and RestoreState. The state is restored
// even when fn fails or panics.
func (f *ClipFrame) Scope(p Painter, fn func() error) error {
	f.SetState(p)
	defer f.RestoreState(p)
	return fn()
}
