package retained

import (
	"fmt"
	"image/color"
)

// ============================================================================
// Button
// ============================================================================

// ButtonState is the visual state of a Button.
type ButtonState uint8

const (
	ButtonNormal ButtonState = iota
	ButtonHover
	ButtonPressed
	ButtonDisabled
)

func (s ButtonState) String() string {
	switch s {
	case ButtonNormal:
		return "normal"
	case ButtonHover:
		return "hover"
	case ButtonPressed:
		return "pressed"
	case ButtonDisabled:
		return "disabled"
	}
	return "unknown"
}

// ButtonStyle holds the fill color per state and the label colors.
type ButtonStyle struct {
	Fill      [4]color.Color // indexed by ButtonState
	Text      color.Color
	TextMuted color.Color // label color while hovered or disabled
}

// DefaultButtonStyle is a neutral gray palette.
var DefaultButtonStyle = ButtonStyle{
	Fill: [4]color.Color{
		ButtonNormal:   color.RGBA{R: 0x4B, G: 0x55, B: 0x63, A: 0xFF}, // gray-600
		ButtonHover:    color.RGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF}, // gray-500
		ButtonPressed:  color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xFF}, // gray-700
		ButtonDisabled: color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xFF},
	},
	Text:      color.White,
	TextMuted: color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF},
}

// Button is a one-line text button. It fires EventClick on its widget when
// a left press that started on it is released over it.
type Button struct {
	w       *Widget
	label   string
	style   ButtonStyle
	state   ButtonState
	pressed bool
}

// NewButton creates a button widget.
func NewButton(label string, x, y, width, height int, opts ...WidgetOption) (*Button, error) {
	b := &Button{label: label, style: DefaultButtonStyle}
	w, err := NewWidget(x, y, width, height, append(opts, WithResponder(b))...)
	if err != nil {
		return nil, fmt.Errorf("button %q: %w", label, err)
	}
	b.w = w
	if w.sink != nil {
		w.sink.Add(b)
	}
	b.EnabledChanged(w, w.enabled)
	return b, nil
}

// Widget returns the button's widget.
func (b *Button) Widget() *Widget { return b.w }

// Label returns the button text.
func (b *Button) Label() string { return b.label }

// SetLabel replaces the button text.
func (b *Button) SetLabel(label string) { b.label = label }

// SetStyle replaces the palette.
func (b *Button) SetStyle(s ButtonStyle) { b.style = s }

// State returns the current visual state.
func (b *Button) State() ButtonState { return b.state }

// OnClick registers fn for clicks.
func (b *Button) OnClick(fn func(b *Button)) ListenerID {
	return b.w.On(EventClick, func(*Widget, Event) { fn(b) })
}

// HandleEvent drives the state machine from routed pointer events.
func (b *Button) HandleEvent(w *Widget, e Event) {
	pe, ok := e.(*PointerEvent)
	if !ok || !w.enabled {
		return
	}
	hit := w.Bounds().Contains(pe.X, pe.Y)
	switch pe.Kind {
	case EventMousePress:
		if !hit || pe.Buttons&MouseLeft == 0 {
			return
		}
		b.pressed = true
		b.state = ButtonPressed
	case EventMouseRelease:
		if !b.pressed {
			return
		}
		b.pressed = false
		b.state = hoverState(hit)
		if hit {
			w.listeners.emit(w, &WidgetEvent{Kind: EventClick, Widget: w})
		}
	case EventMouseMotion, EventMouseDrag:
		if b.pressed {
			return
		}
		b.state = hoverState(hit)
	}
}

func hoverState(hit bool) ButtonState {
	if hit {
		return ButtonHover
	}
	return ButtonNormal
}

// EnabledChanged resets the visual state.
func (b *Button) EnabledChanged(_ *Widget, enabled bool) {
	b.pressed = false
	if enabled {
		b.state = ButtonNormal
	} else {
		b.state = ButtonDisabled
	}
}

// SinkChanged moves the button's drawable between sinks.
func (b *Button) SinkChanged(_ *Widget, old, current Sink) {
	if old != nil {
		old.Remove(b)
	}
	if current != nil {
		current.Add(b)
	}
}

// Value reports whether the button is held down.
func (b *Button) Value(*Widget) any { return b.pressed }

// SetValue is accepted and ignored: the pressed state follows the pointer
// only.
func (b *Button) SetValue(*Widget, any) error { return nil }

// Group returns the clip frame of the button's widget.
func (b *Button) Group() *ClipFrame { return b.w.group }

// Paint fills the button rectangle and draws the label centered when the
// painter can draw text.
func (b *Button) Paint(p Painter) error {
	w := b.w
	setColor(p, b.style.Fill[b.state])
	p.DrawRectangle(float64(w.x), float64(w.y), float64(w.width), float64(w.height))
	if err := p.Fill(); err != nil {
		return err
	}
	tp, ok := p.(TextPainter)
	if !ok || b.label == "" {
		return nil
	}
	text := b.style.Text
	if b.state == ButtonHover || b.state == ButtonDisabled {
		text = b.style.TextMuted
	}
	setColor(p, text)
	tw, th := tp.MeasureString(b.label)
	tp.DrawString(b.label,
		float64(w.x)+(float64(w.width)-tw)/2,
		float64(w.y)+(float64(w.height)-th)/2)
	return nil
}

// setColor converts c to the painter's float RGBA.
func setColor(p Painter, c color.Color) {
	if c == nil {
		c = color.Transparent
	}
	r, g, bl, a := c.RGBA()
	if a == 0 {
		p.SetRGBA(0, 0, 0, 0)
		return
	}
	// Un-premultiply: Painter takes straight alpha.
	p.SetRGBA(float64(r)/float64(a), float64(g)/float64(a), float64(bl)/float64(a), float64(a)/0xffff)
}
