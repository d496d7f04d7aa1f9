package retained

import (
	"errors"
	"testing"
)

func TestNewWidgetValidation(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr error
	}{
		{"zero size", 0, 0, nil},
		{"positive", 10, 20, nil},
		{"negative width", -1, 20, ErrNegativeSize},
		{"negative height", 10, -1, ErrNegativeSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWidget(0, 0, tt.w, tt.h)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !w.Enabled() {
				t.Error("new widget is not enabled")
			}
		})
	}
}

func TestWidgetSetters(t *testing.T) {
	w := mustWidget(t, 1, 2, 3, 4)

	w.SetX(10).SetY(20)
	if err := w.SetWidth(30); err != nil {
		t.Fatal(err)
	}
	if err := w.SetHeight(40); err != nil {
		t.Fatal(err)
	}
	if got := w.Bounds(); got != (Rect{10, 20, 30, 40}) {
		t.Errorf("Bounds = %v, want (10,20 30x40)", got)
	}
	if got := w.AABB(); got != (AABB{10, 20, 40, 60}) {
		t.Errorf("AABB = %+v, want {10 20 40 60}", got)
	}
}

func TestSetHeightAssignsHeight(t *testing.T) {
	w := mustWidget(t, 0, 0, 10, 10)
	if err := w.SetHeight(42); err != nil {
		t.Fatal(err)
	}
	if w.Height() != 42 || w.Width() != 10 {
		t.Errorf("size after SetHeight(42) = %dx%d, want 10x42", w.Width(), w.Height())
	}
}

func TestNegativeSetterLeavesWidgetUnchanged(t *testing.T) {
	w := mustWidget(t, 0, 0, 10, 10)
	for _, set := range []func() error{
		func() error { return w.SetWidth(-1) },
		func() error { return w.SetHeight(-5) },
		func() error { return w.SetSize(-1, -1) },
		func() error { return w.SetFrame(0, 0, -1, 1) },
	} {
		if err := set(); !errors.Is(err, ErrNegativeSize) {
			t.Errorf("err = %v, want ErrNegativeSize", err)
		}
	}
	if w.Width() != 10 || w.Height() != 10 {
		t.Errorf("size = %dx%d, want unchanged 10x10", w.Width(), w.Height())
	}
}

func TestRepositionNotification(t *testing.T) {
	w := mustWidget(t, 0, 0, 10, 10)
	var rec recorder
	rec.watch(w, EventReposition)

	w.SetPosition(0, 0)
	_ = w.SetSize(10, 10)
	if got := rec.count(w, EventReposition); got != 0 {
		t.Fatalf("unchanged setters fired %d repositions, want 0", got)
	}

	w.SetX(5)
	_ = w.SetWidth(20)
	_ = w.SetFrame(1, 1, 1, 1)
	if got := rec.count(w, EventReposition); got != 3 {
		t.Errorf("repositions = %d, want 3", got)
	}
}

func TestSetEnabledNotifiesOnChange(t *testing.T) {
	w := mustWidget(t, 0, 0, 10, 10)
	var rec recorder
	rec.watch(w, EventEnabledChanged)

	w.SetEnabled(true)
	w.SetEnabled(false)
	w.SetEnabled(false)
	w.SetEnabled(true)
	if got := rec.count(w, EventEnabledChanged); got != 2 {
		t.Errorf("enabled changes = %d, want 2", got)
	}
}

func TestValueNotImplemented(t *testing.T) {
	w := mustWidget(t, 0, 0, 10, 10)
	if _, err := w.Value(); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Value err = %v, want ErrNotImplemented", err)
	}
	if err := w.SetValue(1); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("SetValue err = %v, want ErrNotImplemented", err)
	}
}

func TestListenerTable(t *testing.T) {
	w := mustWidget(t, 0, 0, 10, 10)
	var calls []string
	first := w.On(EventText, func(*Widget, Event) { calls = append(calls, "first") })
	w.On(EventText, func(*Widget, Event) { calls = append(calls, "second") })
	if got := w.ListenerCount(EventText); got != 2 {
		t.Fatalf("ListenerCount = %d, want 2", got)
	}

	w.Dispatch(&TextEvent{Text: "a"})
	w.Off(first)
	w.Off(first)
	w.Dispatch(&TextEvent{Text: "b"})

	want := []string{"first", "second", "second"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
	if got := w.ListenerCount(EventText); got != 1 {
		t.Errorf("ListenerCount after Off = %d, want 1", got)
	}
}

func TestListenerRemovesItselfDuringEmit(t *testing.T) {
	w := mustWidget(t, 0, 0, 10, 10)
	calls := 0
	var id ListenerID
	id = w.On(EventKeyPress, func(w *Widget, e Event) {
		calls++
		w.Off(id)
	})
	w.On(EventKeyPress, func(*Widget, Event) { calls++ })

	w.Dispatch(&KeyEvent{Kind: EventKeyPress})
	w.Dispatch(&KeyEvent{Kind: EventKeyPress})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

type geometryProbe struct {
	calls int
}

func (p *geometryProbe) HandleEvent(*Widget, Event) {}
func (p *geometryProbe) GeometryChanged(*Widget)   { p.calls++ }

func TestGeometryHookCascades(t *testing.T) {
	probe := &geometryProbe{}
	c := mustContainer(t, 0, 0, 100, 100, nil)
	child := mustWidget(t, 0, 0, 10, 10, WithResponder(probe))
	c.Container().Add(child)
	before := probe.calls

	c.SetPosition(5, 5)
	if probe.calls <= before {
		t.Error("moving the container did not re-derive the child")
	}
}

func TestEventTypeNames(t *testing.T) {
	tests := []struct {
		kind      EventType
		name      string
		pointer   bool
		broadcast bool
	}{
		{EventMousePress, "mouse_press", true, false},
		{EventFileDrop, "file_drop", true, false},
		{EventKeyPress, "key_press", false, true},
		{EventTextMotionSelect, "text_motion_select", false, true},
		{EventResize, "resize", false, true},
		{EventReposition, "reposition", false, false},
		{EventType(200), "unknown", false, false},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if tt.kind.Pointer() != tt.pointer || tt.kind.Broadcast() != tt.broadcast {
			t.Errorf("%s: Pointer=%v Broadcast=%v", tt.name, tt.kind.Pointer(), tt.kind.Broadcast())
		}
	}
}
