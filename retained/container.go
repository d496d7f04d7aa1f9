package retained

import (
	"fmt"
	"log/slog"
	"slices"
	"weak"
)

// ============================================================================
// Container Capability
// ============================================================================

// Container is the capability a Widget carries to hold children. Children
// are kept in add order, positioned relative to the container origin and
// drawn inside the container's ClipFrame.
type Container struct {
	owner    *Widget
	children []*Widget
	frame    *ClipFrame
	layout   Layout

	// repositions holds each child's reposition listener.
	repositions map[*Widget]ListenerID

	// captured is set between a forwarded press and the next release, so
	// the gesture keeps reaching the children outside the container box.
	captured bool

	// arranging guards against layout re-entry when the layout moves a
	// child and the child reports back.
	arranging bool
}

func newContainer(owner *Widget, l Layout) *Container {
	return &Container{
		owner:       owner,
		frame:       &ClipFrame{},
		layout:      l,
		repositions: make(map[*Widget]ListenerID),
	}
}

// NewContainer creates a widget with the container capability.
func NewContainer(x, y, width, height int, l Layout, opts ...WidgetOption) (*Widget, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("container size %dx%d: %w", width, height, ErrNegativeSize)
	}
	return NewWidget(x, y, width, height, append(opts, WithLayout(l))...)
}

// NewCenter creates a container holding exactly one child, kept centered.
// With fill set, the container follows its parent surface's rectangle.
func NewCenter(child *Widget, fill bool, x, y, width, height int, opts ...WidgetOption) (*Widget, error) {
	w, err := NewContainer(x, y, width, height, CenterLayout{Fill: fill}, opts...)
	if err != nil {
		return nil, err
	}
	if child != nil {
		w.container.adopt(child)
		w.container.reflow()
	}
	return w, nil
}

// Owner returns the widget carrying the capability.
func (c *Container) Owner() *Widget { return c.owner }

// Layout returns the layout policy.
func (c *Container) Layout() Layout { return c.layout }

// Frame returns the container's clip frame. It satisfies Surface.
func (c *Container) Frame() *ClipFrame { return c.frame }

// Size returns the owner's size. It satisfies Surface.
func (c *Container) Size() (width, height int) { return c.owner.width, c.owner.height }

// Children returns a copy of the child list in add order.
func (c *Container) Children() []*Widget {
	return slices.Clone(c.children)
}

// Len returns the number of children.
func (c *Container) Len() int { return len(c.children) }

// Contains reports whether w is a direct child.
func (c *Container) Contains(w *Widget) bool {
	_, ok := c.repositions[w]
	return ok
}

// Add appends children. Present children are skipped. Layouts with fixed
// membership ignore Add.
func (c *Container) Add(children ...*Widget) {
	if c.layout != nil && !c.layout.Membership() {
		return
	}
	added := false
	for _, child := range children {
		if child == nil || c.Contains(child) || c.within(child) {
			continue
		}
		c.adopt(child)
		added = true
	}
	if added {
		c.arrange()
	}
}

// Remove unlinks children without changing their geometry. Absent children
// are skipped. Layouts with fixed membership ignore Remove.
func (c *Container) Remove(children ...*Widget) {
	if c.layout != nil && !c.layout.Membership() {
		return
	}
	removed := false
	for _, child := range children {
		if child == nil || !c.Contains(child) {
			continue
		}
		c.release(child)
		removed = true
	}
	if removed {
		c.arrange()
	}
}

// within reports whether the owner is w or lies inside w. Adding such a
// widget would close a cycle in the tree.
func (c *Container) within(w *Widget) bool {
	for p := c.owner; p != nil; p = p.Parent() {
		if p == w {
			return true
		}
	}
	return false
}

// adopt links child regardless of the layout's membership rule.
func (c *Container) adopt(child *Widget) {
	if c.Contains(child) {
		return
	}
	if child.Parent() != nil || child.Index() != nil {
		slogger().Debug("container re-parenting widget",
			slog.String("widget", child.String()),
			slog.String("container", c.owner.String()))
		child.Detach()
	}
	c.children = append(c.children, child)
	child.parent = weak.Make(c.owner)
	c.repositions[child] = child.On(EventReposition, c.childChanged)
	child.setGroup(c.frame)
	child.SetSink(c.owner.sink)
	child.refresh()
}

// release unlinks child and drops its sink and frame association.
func (c *Container) release(child *Widget) {
	id, ok := c.repositions[child]
	if !ok {
		return
	}
	child.Off(id)
	delete(c.repositions, child)
	if i := slices.Index(c.children, child); i >= 0 {
		c.children = slices.Delete(c.children, i, i+1)
	}
	child.parent = weak.Pointer[Widget]{}
	if child.sink == c.owner.sink {
		child.SetSink(nil)
	}
	child.setGroup(nil)
	child.rederive()
}

// childChanged re-runs the layout when a child moved or resized itself.
func (c *Container) childChanged(*Widget, Event) {
	c.arrange()
}

// ============================================================================
// Geometry Cascade
// ============================================================================

// reflow re-derives the container after its owner's geometry or ancestry
// changed: fill, clip frame, layout, then every child depth-first. It
// reports whether fill changed the owner's geometry.
func (c *Container) reflow() bool {
	w := c.owner
	resized := false
	var parent *ClipFrame
	if s := w.surface(); s != nil {
		parent = s.Frame()
		if f, ok := c.layout.(Filler); ok && f.Fills() {
			sw, sh := s.Size()
			if w.x != 0 || w.y != 0 || w.width != sw || w.height != sh {
				w.x, w.y, w.width, w.height = 0, 0, sw, sh
				resized = true
			}
		}
	}
	c.frame.Compose(parent, w.x, w.y, w.width, w.height)
	c.arrange()

	children := acquireWidgetSlice(len(c.children))
	copy(children, c.children)
	for _, child := range children {
		child.refresh()
	}
	releaseWidgetSlice(children)
	return resized
}

func (c *Container) arrange() {
	if c.layout == nil || c.arranging {
		return
	}
	c.arranging = true
	defer func() { c.arranging = false }()
	c.layout.Arrange(c)
}

func (c *Container) sinkChanged(old, current Sink) {
	for _, child := range c.children {
		if child.sink == old {
			child.SetSink(current)
		}
	}
}

// ============================================================================
// Event Forwarding
// ============================================================================

// hit tests a pointer event, given in the owner's parent frame, against the
// owner's box and the effective clip rectangle.
func (c *Container) hit(e *PointerEvent) bool {
	return c.owner.Bounds().Contains(e.X, e.Y) && c.frame.Contains(e.WindowX, e.WindowY)
}

// forward passes a routed event on to the children. Pointer events are
// hit tested and translated into container-local coordinates; the rest go
// to every child unchanged.
func (c *Container) forward(e Event) {
	switch ev := e.(type) {
	case *PointerEvent:
		hit := c.hit(ev)
		switch ev.Kind {
		case EventMousePress:
			if !hit {
				return
			}
			c.captured = true
		case EventMouseDrag:
			if !hit && !c.captured {
				return
			}
		case EventMouseRelease:
			if !hit && !c.captured {
				return
			}
			c.captured = false
		default:
			if !hit {
				return
			}
		}
		c.broadcast(ev.translated(c.owner.x, c.owner.y))
	case *ResizeEvent:
		if f, ok := c.layout.(Filler); ok && f.Fills() {
			c.owner.refresh()
		}
		c.broadcast(ev)
	case *WidgetEvent:
		// Notifications concern the owner only.
	default:
		c.broadcast(e)
	}
}

func (c *Container) broadcast(e Event) {
	children := acquireWidgetSlice(len(c.children))
	copy(children, c.children)
	for _, child := range children {
		// Removed by an earlier sibling's handler.
		if !c.Contains(child) {
			continue
		}
		child.Dispatch(e)
	}
	releaseWidgetSlice(children)
}
