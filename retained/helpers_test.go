package retained

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

// fakeWindow is a host window whose handlers are driven by the test.
type fakeWindow struct {
	width, height  int
	mouseX, mouseY int
	handlers       []Handlers
	pushes         int
	removes        int
}

func newFakeWindow(width, height int) *fakeWindow {
	return &fakeWindow{width: width, height: height}
}

func (f *fakeWindow) Size() (int, int)          { return f.width, f.height }
func (f *fakeWindow) MousePosition() (int, int) { return f.mouseX, f.mouseY }

func (f *fakeWindow) PushHandlers(h Handlers) {
	f.pushes++
	f.handlers = append(f.handlers, h)
}

func (f *fakeWindow) RemoveHandlers(h Handlers) {
	f.removes++
	if i := slices.Index(f.handlers, h); i >= 0 {
		f.handlers = slices.Delete(f.handlers, i, i+1)
	}
}

func (f *fakeWindow) motion(x, y int) {
	for _, h := range f.handlers {
		h.OnMouseMotion(x, y, 0, 0)
	}
}

// recorder collects the events delivered to watched widgets.
type recorder struct {
	events []recorded
}

type recorded struct {
	widget *Widget
	event  Event
}

func (r *recorder) watch(w *Widget, kinds ...EventType) {
	for _, k := range kinds {
		w.On(k, func(w *Widget, e Event) {
			r.events = append(r.events, recorded{widget: w, event: e})
		})
	}
}

func (r *recorder) count(w *Widget, kind EventType) int {
	n := 0
	for _, e := range r.events {
		if e.widget == w && e.event.Type() == kind {
			n++
		}
	}
	return n
}

func (r *recorder) last(w *Widget, kind EventType) Event {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].widget == w && r.events[i].event.Type() == kind {
			return r.events[i].event
		}
	}
	return nil
}

func (r *recorder) reset() { r.events = nil }

// recordPainter logs painter calls as strings.
type recordPainter struct {
	ops     []string
	failOn  string
	depth   int
	maxDeep int
}

func (p *recordPainter) Push() {
	p.depth++
	p.maxDeep = max(p.maxDeep, p.depth)
	p.ops = append(p.ops, "push")
}

func (p *recordPainter) Pop() {
	p.depth--
	p.ops = append(p.ops, "pop")
}

func (p *recordPainter) ClipRect(x, y, w, h float64) {
	p.ops = append(p.ops, fmt.Sprintf("clip %g,%g %gx%g", x, y, w, h))
}

func (p *recordPainter) Translate(x, y float64) {
	p.ops = append(p.ops, fmt.Sprintf("translate %g,%g", x, y))
}

func (p *recordPainter) SetRGBA(r, g, b, a float64) {
	p.ops = append(p.ops, "color")
}

func (p *recordPainter) DrawRectangle(x, y, w, h float64) {
	p.ops = append(p.ops, fmt.Sprintf("rect %g,%g %gx%g", x, y, w, h))
}

func (p *recordPainter) Fill() error {
	p.ops = append(p.ops, "fill")
	if p.failOn == "fill" {
		return errPaint
	}
	return nil
}

func (p *recordPainter) DrawString(s string, x, y float64) {
	p.ops = append(p.ops, "text "+s)
}

func (p *recordPainter) MeasureString(s string) (float64, float64) {
	return float64(len(s)), 1
}

var errPaint = errors.New("paint failed")

func mustWidget(t *testing.T, x, y, w, h int, opts ...WidgetOption) *Widget {
	t.Helper()
	wd, err := NewWidget(x, y, w, h, opts...)
	if err != nil {
		t.Fatalf("NewWidget(%d, %d, %d, %d): %v", x, y, w, h, err)
	}
	return wd
}

func mustContainer(t *testing.T, x, y, w, h int, l Layout) *Widget {
	t.Helper()
	c, err := NewContainer(x, y, w, h, l)
	if err != nil {
		t.Fatalf("NewContainer(%d, %d, %d, %d): %v", x, y, w, h, err)
	}
	return c
}

func mustIndex(t *testing.T, win Window, opts ...IndexOption) *SpatialIndex {
	t.Helper()
	ix, err := NewSpatialIndex(win, opts...)
	if err != nil {
		t.Fatalf("NewSpatialIndex: %v", err)
	}
	return ix
}

// checkBuckets verifies that every member sits in exactly the buckets of
// its covered cell range and nowhere else.
func checkBuckets(t *testing.T, ix *SpatialIndex) {
	t.Helper()
	want := make(map[Cell][]*Widget)
	for _, w := range ix.order {
		for _, c := range ix.cellsOf(w) {
			want[c] = append(want[c], w)
		}
	}
	for c, members := range ix.buckets {
		if len(members) == 0 {
			t.Errorf("bucket %v is empty but still present", c)
		}
		for _, w := range members {
			if !slices.Contains(want[c], w) {
				t.Errorf("bucket %v holds %s whose box %v does not cover it", c, w, w.AABB())
			}
		}
	}
	for c, members := range want {
		got := ix.buckets[c]
		for _, w := range members {
			n := 0
			for _, g := range got {
				if g == w {
					n++
				}
			}
			if n != 1 {
				t.Errorf("bucket %v holds %s %d times, want 1", c, w, n)
			}
		}
	}
}
