package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/gg"

	"github.com/agiangrant/golden/retained"
)

func newCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := New(Config{Width: w, Height: h})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	c.Clear()
	return c
}

// isRed reports whether the pixel is mostly opaque red.
func isRed(img image.Image, x, y int) bool {
	r, g, b, a := img.At(x, y).RGBA()
	return r > 0xC000 && g < 0x4000 && b < 0x4000 && a > 0xC000
}

func isBlack(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r < 0x1000 && g < 0x1000 && b < 0x1000
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(Config{Width: 0, Height: 10})
	if !errors.Is(err, retained.ErrNegativeSize) {
		t.Errorf("New(0x10) error = %v, want ErrNegativeSize", err)
	}
	_, err = New(Config{Width: 10, Height: 10, Filter: "lanczos"})
	if !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("New(lanczos) error = %v, want ErrUnknownFilter", err)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name string
		want gg.InterpolationMode
		ok   bool
	}{
		{"", gg.InterpBilinear, true},
		{"bilinear", gg.InterpBilinear, true},
		{"Nearest", gg.InterpNearest, true},
		{"bicubic", gg.InterpBicubic, true},
		{"cubic", gg.InterpBicubic, true},
		{"box", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.name)
		if (err == nil) != tt.ok {
			t.Errorf("ParseFilter(%q) error = %v, want ok=%v", tt.name, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseFilter(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClearPaintsBackground(t *testing.T) {
	c, err := New(Config{Width: 8, Height: 8, Background: color.RGBA{R: 255, A: 255}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	c.Clear()
	if !isRed(c.Image(), 4, 4) {
		t.Errorf("pixel (4, 4) = %v, want red background", c.Image().At(4, 4))
	}
}

func TestFillRect(t *testing.T) {
	c := newCanvas(t, 64, 64)
	c.SetRGBA(1, 0, 0, 1)
	c.DrawRectangle(10, 10, 20, 20)
	if err := c.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	img := c.Image()
	if !isRed(img, 20, 20) {
		t.Errorf("pixel (20, 20) = %v, want red", img.At(20, 20))
	}
	if !isBlack(img, 40, 40) {
		t.Errorf("pixel (40, 40) = %v, want background", img.At(40, 40))
	}
}

func TestClipAndTranslate(t *testing.T) {
	c := newCanvas(t, 64, 64)
	c.Push()
	c.Translate(10, 10)
	c.ClipRect(0, 0, 10, 10)
	c.SetRGBA(1, 0, 0, 1)
	c.DrawRectangle(0, 0, 40, 40)
	if err := c.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	c.Pop()

	img := c.Image()
	if !isRed(img, 15, 15) {
		t.Errorf("pixel (15, 15) = %v, want red inside clip", img.At(15, 15))
	}
	for _, p := range []image.Point{{5, 5}, {25, 25}, {15, 30}} {
		if !isBlack(img, p.X, p.Y) {
			t.Errorf("pixel %v = %v, want background outside clip", p, img.At(p.X, p.Y))
		}
	}
}

func TestPopRestoresClip(t *testing.T) {
	c := newCanvas(t, 32, 32)
	c.Push()
	c.ClipRect(0, 0, 4, 4)
	c.Pop()
	c.SetRGBA(1, 0, 0, 1)
	c.DrawRectangle(0, 0, 32, 32)
	if err := c.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if !isRed(c.Image(), 20, 20) {
		t.Errorf("pixel (20, 20) = %v, want red after Pop", c.Image().At(20, 20))
	}
}

func TestDrawImageClipped(t *testing.T) {
	c := newCanvas(t, 32, 32)
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	c.Push()
	c.ClipRect(0, 0, 16, 32)
	c.DrawImage(src, 0, 0, 32, 32)
	c.Pop()

	img := c.Image()
	if !isRed(img, 8, 8) {
		t.Errorf("pixel (8, 8) = %v, want image", img.At(8, 8))
	}
	if !isBlack(img, 24, 8) {
		t.Errorf("pixel (24, 8) = %v, want background outside clip", img.At(24, 8))
	}
}

func TestEncodePNG(t *testing.T) {
	c := newCanvas(t, 12, 7)
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 7 {
		t.Errorf("decoded size = %dx%d, want 12x7", b.Dx(), b.Dy())
	}
}

func TestBatchDrawsClippedContainer(t *testing.T) {
	c := newCanvas(t, 100, 100)
	ix, err := retained.NewSpatialIndex(c, retained.WithBatch(retained.NewBatch(c)))
	if err != nil {
		t.Fatalf("NewSpatialIndex: %v", err)
	}
	box, err := retained.NewContainer(10, 10, 30, 30, nil)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	ix.Add(box)

	btn, err := retained.NewButton("", 0, 0, 80, 80)
	if err != nil {
		t.Fatalf("NewButton: %v", err)
	}
	btn.SetStyle(retained.ButtonStyle{Fill: [4]color.Color{
		color.RGBA{R: 255, A: 255}, color.RGBA{R: 255, A: 255},
		color.RGBA{R: 255, A: 255}, color.RGBA{R: 255, A: 255},
	}})
	box.Container().Add(btn.Widget())

	if err := ix.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	img := c.Image()
	if !isRed(img, 20, 20) {
		t.Errorf("pixel (20, 20) = %v, want button fill", img.At(20, 20))
	}
	if !isBlack(img, 60, 60) {
		t.Errorf("pixel (60, 60) = %v, want background outside container", img.At(60, 60))
	}
}

func TestInjectedClickReachesButton(t *testing.T) {
	c := newCanvas(t, 100, 100)
	ix, err := retained.NewSpatialIndex(c)
	if err != nil {
		t.Fatalf("NewSpatialIndex: %v", err)
	}
	btn, err := retained.NewButton("ok", 10, 10, 20, 20)
	if err != nil {
		t.Fatalf("NewButton: %v", err)
	}
	ix.Add(btn.Widget())
	clicks := 0
	btn.OnClick(func(*retained.Button) { clicks++ })

	c.Click(15, 15)
	c.Click(50, 50)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if x, y := ix.MousePosition(); x != 50 || y != 50 {
		t.Errorf("index mouse = (%d, %d), want (50, 50)", x, y)
	}

	ix.SetEnabled(false)
	c.Click(15, 15)
	if clicks != 1 {
		t.Errorf("clicks after disable = %d, want 1", clicks)
	}
}
