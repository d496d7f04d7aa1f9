package retained

import (
	"errors"
	"reflect"
	"testing"
)

type rectDrawable struct {
	group *ClipFrame
	r     Rect
	err   error
}

func (d *rectDrawable) Group() *ClipFrame { return d.group }

func (d *rectDrawable) Paint(p Painter) error {
	p.DrawRectangle(float64(d.r.X), float64(d.r.Y), float64(d.r.W), float64(d.r.H))
	return d.err
}

func TestBatchAddRemove(t *testing.T) {
	b := NewBatch(nil)
	d := &rectDrawable{}
	b.Add(d)
	b.Add(d)
	if b.Len() != 1 {
		t.Errorf("Len after double add = %d, want 1", b.Len())
	}
	b.Remove(d)
	b.Remove(d)
	if b.Len() != 0 {
		t.Errorf("Len after remove = %d, want 0", b.Len())
	}
	if err := b.Draw(); err != nil {
		t.Errorf("Draw without target = %v, want nil", err)
	}
}

func TestBatchDrawScopesGroups(t *testing.T) {
	p := &recordPainter{}
	b := NewBatch(p)
	g := NewRootFrame(10, 10)
	b.Add(&rectDrawable{r: Rect{0, 0, 1, 1}})
	b.Add(&rectDrawable{group: g, r: Rect{2, 2, 3, 3}})

	if err := b.Draw(); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"rect 0,0 1x1",
		"push", "clip 0,0 10x10", "translate 0,0", "rect 2,2 3x3", "pop",
	}
	if !reflect.DeepEqual(p.ops, want) {
		t.Errorf("ops = %v, want %v", p.ops, want)
	}
}

func TestBatchDrawStopsOnError(t *testing.T) {
	p := &recordPainter{}
	b := NewBatch(p)
	b.Add(&rectDrawable{group: NewRootFrame(5, 5), err: errPaint})
	b.Add(&rectDrawable{})

	if err := b.Draw(); !errors.Is(err, errPaint) {
		t.Fatalf("Draw err = %v, want errPaint", err)
	}
	if p.depth != 0 {
		t.Error("group state leaked after paint error")
	}
	if n := len(p.ops); n != 5 {
		t.Errorf("painted %d ops, want 5 (second drawable skipped)", n)
	}
}
