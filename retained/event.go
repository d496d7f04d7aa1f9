package retained

// ============================================================================
// Event Types
// ============================================================================

// EventType identifies the kind of event.
type EventType uint8

const (
	// Keyboard events
	EventKeyPress EventType = iota + 1
	EventKeyRelease

	// Pointer events
	EventMousePress
	EventMouseRelease
	EventMouseDrag
	EventMouseMotion
	EventMouseScroll
	EventFileDrop

	// Text input events
	EventText
	EventTextMotion
	EventTextMotionSelect

	// Window events
	EventResize

	// Widget notifications
	EventReposition
	EventEnabledChanged
	EventClick

	numEventTypes
)

var eventNames = [numEventTypes]string{
	EventKeyPress:         "key_press",
	EventKeyRelease:       "key_release",
	EventMousePress:       "mouse_press",
	EventMouseRelease:     "mouse_release",
	EventMouseDrag:        "mouse_drag",
	EventMouseMotion:      "mouse_motion",
	EventMouseScroll:      "mouse_scroll",
	EventFileDrop:         "file_drop",
	EventText:             "text",
	EventTextMotion:       "text_motion",
	EventTextMotionSelect: "text_motion_select",
	EventResize:           "resize",
	EventReposition:       "reposition",
	EventEnabledChanged:   "enabled_changed",
	EventClick:            "click",
}

func (t EventType) String() string {
	if t < numEventTypes && eventNames[t] != "" {
		return eventNames[t]
	}
	return "unknown"
}

// Pointer reports whether events of this type carry a coordinate and are
// routed by position.
func (t EventType) Pointer() bool {
	switch t {
	case EventMousePress, EventMouseRelease, EventMouseDrag,
		EventMouseMotion, EventMouseScroll, EventFileDrop:
		return true
	}
	return false
}

// Broadcast reports whether events of this type are position-insensitive
// and delivered to every widget.
func (t EventType) Broadcast() bool {
	switch t {
	case EventKeyPress, EventKeyRelease, EventText,
		EventTextMotion, EventTextMotionSelect, EventResize:
		return true
	}
	return false
}

// Mouse buttons, as a bitmask.
const (
	MouseLeft   = 1 << 0
	MouseMiddle = 1 << 1
	MouseRight  = 1 << 2
)

// Modifier keys, as a bitmask. Host windows may pass their own encodings;
// the router treats modifiers as opaque integers.
const (
	ModShift = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Text motions carried by EventTextMotion and EventTextMotionSelect.
const (
	MotionUp = iota + 1
	MotionDown
	MotionLeft
	MotionRight
	MotionPreviousWord
	MotionNextWord
	MotionBeginningOfLine
	MotionEndOfLine
	MotionPreviousPage
	MotionNextPage
	MotionBeginningOfFile
	MotionEndOfFile
	MotionBackspace
	MotionDelete
)

// ============================================================================
// Events
// ============================================================================

// Event is implemented by every event delivered to widgets.
type Event interface {
	Type() EventType
}

// PointerEvent carries pointer press/release/drag/motion/scroll and file drop
// data. X and Y are in the coordinate frame of the receiving widget's parent:
// window coordinates for top-level widgets, container-local coordinates for
// children. WindowX and WindowY are never translated.
type PointerEvent struct {
	Kind EventType

	X, Y             int
	WindowX, WindowY int

	// Pointer delta for motion and drag.
	DX, DY int

	Buttons   int
	Modifiers int

	// Scroll amounts for EventMouseScroll.
	ScrollX, ScrollY float64

	// Dropped paths for EventFileDrop.
	Paths []string
}

func (e *PointerEvent) Type() EventType { return e.Kind }

// translated returns a copy of e moved into a frame whose origin is (ox, oy).
func (e *PointerEvent) translated(ox, oy int) *PointerEvent {
	local := *e
	local.X -= ox
	local.Y -= oy
	return &local
}

// KeyEvent carries key press and release.
type KeyEvent struct {
	Kind      EventType
	Symbol    int
	Modifiers int
}

func (e *KeyEvent) Type() EventType { return e.Kind }

// TextEvent carries committed text input.
type TextEvent struct {
	Text string
}

func (e *TextEvent) Type() EventType { return EventText }

// MotionEvent carries caret movement. Select is set for
// EventTextMotionSelect.
type MotionEvent struct {
	Motion int
	Select bool
}

func (e *MotionEvent) Type() EventType {
	if e.Select {
		return EventTextMotionSelect
	}
	return EventTextMotion
}

// ResizeEvent carries the new window size.
type ResizeEvent struct {
	Width, Height int
}

func (e *ResizeEvent) Type() EventType { return EventResize }

// WidgetEvent is a notification about a widget: reposition, enabled state
// change or click.
type WidgetEvent struct {
	Kind   EventType
	Widget *Widget
}

func (e *WidgetEvent) Type() EventType { return e.Kind }

// ============================================================================
// Listener Table
// ============================================================================

// Listener is a registered callback.
type Listener func(w *Widget, e Event)

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// listenerTable keeps one ordered callback list per event kind.
type listenerTable struct {
	next   ListenerID
	byKind [numEventTypes][]listenerEntry
}

func (t *listenerTable) add(kind EventType, fn Listener) ListenerID {
	t.next++
	t.byKind[kind] = append(t.byKind[kind], listenerEntry{id: t.next, fn: fn})
	return t.next
}

func (t *listenerTable) remove(id ListenerID) bool {
	for k := range t.byKind {
		for i, e := range t.byKind[k] {
			if e.id == id {
				t.byKind[k] = append(t.byKind[k][:i:i], t.byKind[k][i+1:]...)
				return true
			}
		}
	}
	return false
}

func (t *listenerTable) count(kind EventType) int {
	return len(t.byKind[kind])
}

// emit calls every listener of the event's kind. The list is copied first
// so a listener may register or remove listeners while running.
func (t *listenerTable) emit(w *Widget, e Event) {
	kind := e.Type()
	if len(t.byKind[kind]) == 0 {
		return
	}
	entries := make([]listenerEntry, len(t.byKind[kind]))
	copy(entries, t.byKind[kind])
	for _, entry := range entries {
		entry.fn(w, e)
	}
}

// ============================================================================
// Responder Interface
// ============================================================================

// Responder is implemented by concrete widget kinds (Button, custom widgets)
// to react to routed events. It is called before the widget's listeners.
type Responder interface {
	HandleEvent(w *Widget, e Event)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(w *Widget, e Event)

func (f ResponderFunc) HandleEvent(w *Widget, e Event) { f(w, e) }

// SinkAware responders are told when the widget's draw sink changes so they
// can move their drawables.
type SinkAware interface {
	SinkChanged(w *Widget, old, current Sink)
}

// GroupAware responders are told when the widget's clip group changes.
type GroupAware interface {
	GroupChanged(w *Widget, group *ClipFrame)
}

// GeometryAware responders are told whenever the widget's derived geometry
// must be recomputed: after its own position or size changed, or after an
// ancestor container re-clamped its frame.
type GeometryAware interface {
	GeometryChanged(w *Widget)
}

// EnableAware responders are told when the widget is enabled or disabled.
type EnableAware interface {
	EnabledChanged(w *Widget, enabled bool)
}

// Valuer is implemented by widget kinds that expose a value.
type Valuer interface {
	Value(w *Widget) any
	SetValue(w *Widget, v any) error
}
