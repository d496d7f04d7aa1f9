// Package retained provides a retained-mode widget system with spatially
// hashed event routing.
//
// Widgets are plain rectangles carrying an optional Responder (the concrete
// widget kind) and an optional Container capability. Top-level widgets are
// registered with a SpatialIndex, which subscribes to a host Window and
// routes each input event to the widgets near the pointer. Containers nest,
// translate coordinates into their local frame and clamp their visible area
// to their ancestors through a ClipFrame.
//
// The package is single-threaded: every mutation and dispatch must happen on
// the goroutine driving the host window.
package retained

import (
	"fmt"
	"sync/atomic"
	"weak"
)

// WidgetID uniquely identifies a widget for logging and debugging.
// Identity for membership checks is the *Widget pointer itself.
type WidgetID uint64

var nextWidgetID atomic.Uint64

func newWidgetID() WidgetID {
	return WidgetID(nextWidgetID.Add(1))
}

// Widget is the smallest addressable element: a rectangle in its parent's
// coordinate frame that receives routed events.
type Widget struct {
	id WidgetID

	// Geometry in the parent's coordinate frame.
	x, y          int
	width, height int

	enabled bool
	focused bool

	// Draw resources. The sink is shared with the owning index or
	// container subtree and never owned by the widget.
	sink  Sink
	group *ClipFrame

	// Non-owning back-references. At most one of them is set.
	parent weak.Pointer[Widget]
	index  weak.Pointer[SpatialIndex]

	responder Responder
	listeners listenerTable

	// container is non-nil when the widget carries the container capability.
	container *Container

	name string
}

// WidgetOption configures a widget at construction.
type WidgetOption func(*Widget)

// WithResponder sets the concrete widget kind handling routed events.
func WithResponder(r Responder) WidgetOption {
	return func(w *Widget) { w.responder = r }
}

// WithSink attaches the widget to sink at construction.
func WithSink(s Sink) WidgetOption {
	return func(w *Widget) { w.sink = s }
}

// WithEnabled sets the initial enabled state. Widgets start enabled.
func WithEnabled(enabled bool) WidgetOption {
	return func(w *Widget) { w.enabled = enabled }
}

// WithName sets a debug name used in String and log records.
func WithName(name string) WidgetOption {
	return func(w *Widget) { w.name = name }
}

// WithLayout gives the widget the container capability with the given
// layout policy. A nil layout means children keep their own positions.
func WithLayout(l Layout) WidgetOption {
	return func(w *Widget) {
		w.container = newContainer(w, l)
	}
}

// NewWidget creates a standalone widget. It becomes interactive once added
// to a SpatialIndex or a Container.
func NewWidget(x, y, width, height int, opts ...WidgetOption) (*Widget, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("widget size %dx%d: %w", width, height, ErrNegativeSize)
	}
	w := &Widget{
		id:      newWidgetID(),
		x:       x,
		y:       y,
		width:   width,
		height:  height,
		enabled: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.container != nil {
		w.container.reflow()
	}
	return w, nil
}

// ============================================================================
// Accessors
// ============================================================================

// ID returns the widget's debug identifier.
func (w *Widget) ID() WidgetID { return w.id }

// Name returns the debug name set with WithName.
func (w *Widget) Name() string { return w.name }

func (w *Widget) String() string {
	if w.name != "" {
		return fmt.Sprintf("%s#%d", w.name, w.id)
	}
	return fmt.Sprintf("widget#%d", w.id)
}

// X returns the x coordinate in the parent's frame.
func (w *Widget) X() int { return w.x }

// Y returns the y coordinate in the parent's frame.
func (w *Widget) Y() int { return w.y }

// Position returns (x, y) in the parent's frame.
func (w *Widget) Position() (x, y int) { return w.x, w.y }

// Width returns the widget width.
func (w *Widget) Width() int { return w.width }

// Height returns the widget height.
func (w *Widget) Height() int { return w.height }

// Size returns (width, height).
func (w *Widget) Size() (width, height int) { return w.width, w.height }

// Bounds returns the widget rectangle in the parent's frame.
func (w *Widget) Bounds() Rect {
	return Rect{X: w.x, Y: w.y, W: w.width, H: w.height}
}

// AABB returns the bounding box (x, y, x+w, y+h) in the parent's frame.
func (w *Widget) AABB() AABB {
	return AABB{MinX: w.x, MinY: w.y, MaxX: w.x + w.width, MaxY: w.y + w.height}
}

// AbsolutePosition returns the widget position in window coordinates: the
// sum of translations along the ancestor chain.
func (w *Widget) AbsolutePosition() (x, y int) {
	x, y = w.x, w.y
	for p := w.Parent(); p != nil; p = p.Parent() {
		x += p.x
		y += p.y
	}
	return x, y
}

// Parent returns the container widget holding w, or nil for top-level and
// standalone widgets.
func (w *Widget) Parent() *Widget { return w.parent.Value() }

// Index returns the SpatialIndex w is registered with, or nil.
func (w *Widget) Index() *SpatialIndex { return w.index.Value() }

// Container returns the container capability, or nil.
func (w *Widget) Container() *Container { return w.container }

// Responder returns the concrete widget kind, or nil.
func (w *Widget) Responder() Responder { return w.responder }

// Sink returns the draw sink the widget is attached to.
func (w *Widget) Sink() Sink { return w.sink }

// Group returns the clip frame the widget draws in. Top-level widgets have
// no group.
func (w *Widget) Group() *ClipFrame { return w.group }

// Enabled reports whether the widget accepts user input.
func (w *Widget) Enabled() bool { return w.enabled }

// Focused reports whether the widget has keyboard focus.
func (w *Widget) Focused() bool { return w.focused }

// surface returns what the widget is placed on: the parent container, the
// index, or nil for standalone widgets.
func (w *Widget) surface() Surface {
	if p := w.Parent(); p != nil && p.container != nil {
		return p.container
	}
	if ix := w.Index(); ix != nil {
		return ix
	}
	return nil
}

// ============================================================================
// Geometry
// ============================================================================

// SetX moves the widget horizontally.
func (w *Widget) SetX(x int) *Widget {
	return w.SetPosition(x, w.y)
}

// SetY moves the widget vertically.
func (w *Widget) SetY(y int) *Widget {
	return w.SetPosition(w.x, y)
}

// SetPosition moves the widget. The owner is notified before it returns.
func (w *Widget) SetPosition(x, y int) *Widget {
	if x == w.x && y == w.y {
		return w
	}
	w.x, w.y = x, y
	w.geometryChanged()
	return w
}

// SetWidth resizes the widget horizontally.
func (w *Widget) SetWidth(width int) error {
	return w.SetSize(width, w.height)
}

// SetHeight resizes the widget vertically.
func (w *Widget) SetHeight(height int) error {
	return w.SetSize(w.width, height)
}

// SetSize resizes the widget. Negative sizes are rejected and leave the
// widget unchanged.
func (w *Widget) SetSize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("widget %s size %dx%d: %w", w, width, height, ErrNegativeSize)
	}
	if width == w.width && height == w.height {
		return nil
	}
	w.width, w.height = width, height
	w.geometryChanged()
	return nil
}

// SetFrame sets position and size in one change with a single notification.
func (w *Widget) SetFrame(x, y, width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("widget %s size %dx%d: %w", w, width, height, ErrNegativeSize)
	}
	if x == w.x && y == w.y && width == w.width && height == w.height {
		return nil
	}
	w.x, w.y, w.width, w.height = x, y, width, height
	w.geometryChanged()
	return nil
}

// geometryChanged re-derives state after the widget's own geometry changed
// and notifies the owner.
func (w *Widget) geometryChanged() {
	w.rederive()
	w.notifyReposition()
}

// refresh re-derives state after an ancestor changed. The owner is notified
// only if a fill policy changed the widget's own geometry.
func (w *Widget) refresh() {
	if w.rederive() {
		w.notifyReposition()
	}
}

// rederive recomputes clip frames and layouts below w and tells the
// responder its geometry may have changed. It reports whether w itself was
// resized by its fill policy.
func (w *Widget) rederive() bool {
	resized := false
	if w.container != nil {
		resized = w.container.reflow()
	}
	if g, ok := w.responder.(GeometryAware); ok {
		g.GeometryChanged(w)
	}
	return resized
}

func (w *Widget) notifyReposition() {
	w.listeners.emit(w, &WidgetEvent{Kind: EventReposition, Widget: w})
}

// ============================================================================
// State
// ============================================================================

// SetEnabled enables or disables user input. EventEnabledChanged fires only
// when the state actually changes.
func (w *Widget) SetEnabled(enabled bool) *Widget {
	if w.enabled == enabled {
		return w
	}
	w.enabled = enabled
	if h, ok := w.responder.(EnableAware); ok {
		h.EnabledChanged(w, enabled)
	}
	w.listeners.emit(w, &WidgetEvent{Kind: EventEnabledChanged, Widget: w})
	return w
}

// SetFocused sets keyboard focus.
func (w *Widget) SetFocused(focused bool) *Widget {
	w.focused = focused
	return w
}

// SetSink moves the widget's draw resources to s. Container children that
// shared the old sink follow.
func (w *Widget) SetSink(s Sink) {
	old := w.sink
	if old == s {
		return
	}
	w.sink = s
	if h, ok := w.responder.(SinkAware); ok {
		h.SinkChanged(w, old, s)
	}
	if w.container != nil {
		w.container.sinkChanged(old, s)
	}
}

// setGroup sets the clip frame the widget draws in.
func (w *Widget) setGroup(g *ClipFrame) {
	if w.group == g {
		return
	}
	w.group = g
	if h, ok := w.responder.(GroupAware); ok {
		h.GroupChanged(w, g)
	}
}

// Value returns the widget's value, or ErrNotImplemented when its kind
// defines none.
func (w *Widget) Value() (any, error) {
	v, ok := w.responder.(Valuer)
	if !ok {
		return nil, fmt.Errorf("value of %s: %w", w, ErrNotImplemented)
	}
	return v.Value(w), nil
}

// SetValue sets the widget's value, or returns ErrNotImplemented when its
// kind defines none.
func (w *Widget) SetValue(value any) error {
	v, ok := w.responder.(Valuer)
	if !ok {
		return fmt.Errorf("set value of %s: %w", w, ErrNotImplemented)
	}
	return v.SetValue(w, value)
}

// ============================================================================
// Listeners & Dispatch
// ============================================================================

// On registers fn for events of kind and returns an id for Off.
func (w *Widget) On(kind EventType, fn Listener) ListenerID {
	return w.listeners.add(kind, fn)
}

// Off removes a listener. Unknown ids are ignored.
func (w *Widget) Off(id ListenerID) {
	w.listeners.remove(id)
}

// ListenerCount returns the number of listeners registered for kind.
func (w *Widget) ListenerCount(kind EventType) int {
	return w.listeners.count(kind)
}

// Dispatch delivers e to the widget: its responder first, then its
// listeners, then (for containers) its children.
func (w *Widget) Dispatch(e Event) {
	if w.responder != nil {
		w.responder.HandleEvent(w, e)
	}
	w.listeners.emit(w, e)
	if w.container != nil {
		w.container.forward(e)
	}
}

// Detach removes w from whatever index or container holds it.
func (w *Widget) Detach() {
	if p := w.Parent(); p != nil && p.container != nil {
		p.container.release(w)
	}
	if ix := w.Index(); ix != nil {
		ix.Remove(w)
	}
}
