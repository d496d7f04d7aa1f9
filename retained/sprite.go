package retained

import (
	"fmt"
	"image"
)

// Sprite draws an image scaled to its widget's rectangle. How the image is
// sampled is decided by the painter's configuration, not by the sprite.
type Sprite struct {
	w   *Widget
	img image.Image
}

// NewSprite creates a sprite widget. A zero width or height takes the
// image's own size.
func NewSprite(img image.Image, x, y, width, height int, opts ...WidgetOption) (*Sprite, error) {
	if img == nil {
		return nil, fmt.Errorf("sprite at (%d,%d): %w", x, y, ErrNilImage)
	}
	if width == 0 && height == 0 {
		width, height = img.Bounds().Dx(), img.Bounds().Dy()
	}
	s := &Sprite{img: img}
	w, err := NewWidget(x, y, width, height, append(opts, WithResponder(s))...)
	if err != nil {
		return nil, fmt.Errorf("sprite: %w", err)
	}
	s.w = w
	if w.sink != nil {
		w.sink.Add(s)
	}
	return s, nil
}

// Widget returns the sprite's widget.
func (s *Sprite) Widget() *Widget { return s.w }

// Image returns the drawn image.
func (s *Sprite) Image() image.Image { return s.img }

// SetImage replaces the drawn image. A nil image is ignored.
func (s *Sprite) SetImage(img image.Image) {
	if img != nil {
		s.img = img
	}
}

// HandleEvent ignores input: sprites are decoration.
func (s *Sprite) HandleEvent(*Widget, Event) {}

// SinkChanged moves the sprite's drawable between sinks.
func (s *Sprite) SinkChanged(_ *Widget, old, current Sink) {
	if old != nil {
		old.Remove(s)
	}
	if current != nil {
		current.Add(s)
	}
}

// Group returns the clip frame of the sprite's widget.
func (s *Sprite) Group() *ClipFrame { return s.w.group }

// Paint draws the image when the painter supports images.
func (s *Sprite) Paint(p Painter) error {
	ip, ok := p.(ImagePainter)
	if !ok {
		return nil
	}
	w := s.w
	ip.DrawImage(s.img, float64(w.x), float64(w.y), float64(w.width), float64(w.height))
	return nil
}
