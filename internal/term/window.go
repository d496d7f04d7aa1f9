// Package term is the terminal backend: a tcell screen exposed as a
// retained.Window, and a painter that rasterizes draw batches into screen
// cells.
package term

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/agiangrant/golden/retained"
)

// SymbolBase offsets the key symbols of named keys so they never collide
// with rune symbols, which are the code point itself.
const SymbolBase = 1 << 21

// Symbol returns the handler key symbol for a key event.
func Symbol(ev *tcell.EventKey) int {
	if ev.Key() == tcell.KeyRune {
		return int(ev.Rune())
	}
	return SymbolBase + int(ev.Key())
}

// Window adapts a tcell screen to retained.Window. Widget coordinates are
// screen cells scaled by the cell size; a pointer in a cell reports the
// cell's center.
type Window struct {
	screen       tcell.Screen
	cellW, cellH int
	quit         tcell.Key
	mouse        bool

	handlers       []retained.Handlers
	mouseX, mouseY int
	buttons        tcell.ButtonMask
}

// Option configures a Window.
type Option func(*Window)

// WithCellSize sets how many widget units one screen cell spans.
func WithCellSize(width, height int) Option {
	return func(w *Window) { w.cellW, w.cellH = width, height }
}

// WithQuitKey sets the key that ends Run. tcell.KeyNUL disables it.
func WithQuitKey(k tcell.Key) Option {
	return func(w *Window) { w.quit = k }
}

// WithMouse controls mouse reporting. On by default.
func WithMouse(enabled bool) Option {
	return func(w *Window) { w.mouse = enabled }
}

// ErrInvalidCellSize is returned for a cell size below one unit.
var ErrInvalidCellSize = errors.New("term: invalid cell size")

// New wraps an initialized screen.
func New(screen tcell.Screen, opts ...Option) (*Window, error) {
	w := &Window{
		screen: screen,
		cellW:  1,
		cellH:  1,
		quit:   tcell.KeyCtrlC,
		mouse:  true,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.cellW < 1 || w.cellH < 1 {
		return nil, fmt.Errorf("cell size %dx%d: %w", w.cellW, w.cellH, ErrInvalidCellSize)
	}
	if w.mouse {
		screen.EnableMouse()
	}
	return w, nil
}

// Open creates and initializes a screen on the controlling terminal.
func Open(opts ...Option) (*Window, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	w, err := New(screen, opts...)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return w, nil
}

// Close restores the terminal.
func (w *Window) Close() {
	w.screen.Fini()
}

// Screen returns the wrapped screen.
func (w *Window) Screen() tcell.Screen { return w.screen }

// CellSize returns the widget units per screen cell.
func (w *Window) CellSize() (width, height int) { return w.cellW, w.cellH }

// Size returns the screen size in widget units.
func (w *Window) Size() (width, height int) {
	cols, rows := w.screen.Size()
	return cols * w.cellW, rows * w.cellH
}

// MousePosition returns the last pointer position in widget units.
func (w *Window) MousePosition() (x, y int) { return w.mouseX, w.mouseY }

// PushHandlers subscribes h.
func (w *Window) PushHandlers(h retained.Handlers) {
	w.handlers = append(w.handlers, h)
}

// RemoveHandlers unsubscribes h.
func (w *Window) RemoveHandlers(h retained.Handlers) {
	if i := slices.Index(w.handlers, h); i >= 0 {
		w.handlers = slices.Delete(w.handlers, i, i+1)
	}
}

func (w *Window) each(fn func(h retained.Handlers)) {
	for _, h := range slices.Clone(w.handlers) {
		fn(h)
	}
}

// ============================================================================
// Event Loop
// ============================================================================

// Run draws, shows the screen and dispatches events until the quit key is
// pressed, the screen is finalized or ctx is done. draw runs before every
// Show; a draw error ends the loop.
func (w *Window) Run(ctx context.Context, draw func() error) error {
	stop := context.AfterFunc(ctx, w.Wake)
	defer stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.screen.Clear()
		if draw != nil {
			if err := draw(); err != nil {
				return fmt.Errorf("draw: %w", err)
			}
		}
		w.screen.Show()

		ev := w.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !w.HandleEvent(ev) {
			slogger().Debug("quit key pressed")
			return nil
		}
	}
}

// Wake makes a blocked Run draw another frame. It is safe to call from any
// goroutine.
func (w *Window) Wake() {
	_ = w.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// HandleEvent translates one tcell event into handler calls. It returns
// false when the event is the quit key.
func (w *Window) HandleEvent(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventMouse:
		w.handleMouse(tev)
	case *tcell.EventKey:
		if w.quit != tcell.KeyNUL && tev.Key() == w.quit {
			return false
		}
		w.handleKey(tev)
	case *tcell.EventResize:
		cols, rows := tev.Size()
		width, height := cols*w.cellW, rows*w.cellH
		slogger().Debug("terminal resized",
			slog.Int("cols", cols),
			slog.Int("rows", rows))
		w.screen.Sync()
		w.each(func(h retained.Handlers) { h.OnResize(width, height) })
	}
	return true
}

func (w *Window) handleMouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	x, y := cx*w.cellW+w.cellW/2, cy*w.cellH+w.cellH/2
	mods := modifiers(ev.Modifiers())
	mask := ev.Buttons()

	// Wheel reports do not carry reliable button state.
	if sx, sy := wheelDelta(mask); sx != 0 || sy != 0 {
		w.each(func(h retained.Handlers) { h.OnMouseScroll(x, y, sx, sy) })
		return
	}

	dx, dy := x-w.mouseX, y-w.mouseY
	w.mouseX, w.mouseY = x, y
	prev := w.buttons
	held := mask & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	w.buttons = held

	// A single report may swap buttons: release the old ones first.
	released, pressed := prev&^held, held&^prev
	if released != 0 {
		w.each(func(h retained.Handlers) { h.OnMouseRelease(x, y, buttons(released), mods) })
	}
	if pressed != 0 {
		w.each(func(h retained.Handlers) { h.OnMousePress(x, y, buttons(pressed), mods) })
	}
	if released != 0 || pressed != 0 {
		return
	}
	if dx == 0 && dy == 0 {
		return
	}
	if held != 0 {
		w.each(func(h retained.Handlers) { h.OnMouseDrag(x, y, dx, dy, buttons(held), mods) })
		return
	}
	w.each(func(h retained.Handlers) { h.OnMouseMotion(x, y, dx, dy) })
}

// handleKey reports a key press, the text or caret motion it produces and
// a synthesized release: terminals do not report key releases.
func (w *Window) handleKey(ev *tcell.EventKey) {
	sym, mods := Symbol(ev), modifiers(ev.Modifiers())
	w.each(func(h retained.Handlers) { h.OnKeyPress(sym, mods) })

	switch {
	case ev.Key() == tcell.KeyRune && mods&(retained.ModCtrl|retained.ModAlt) == 0:
		text := string(ev.Rune())
		w.each(func(h retained.Handlers) { h.OnText(text) })
	default:
		if m, sel := motion(ev.Key(), mods); m != 0 {
			w.each(func(h retained.Handlers) {
				if sel {
					h.OnTextMotionSelect(m)
				} else {
					h.OnTextMotion(m)
				}
			})
		}
	}

	w.each(func(h retained.Handlers) { h.OnKeyRelease(sym, mods) })
}

// motion maps a named key to a caret motion. Shift turns navigation into a
// selecting motion.
func motion(k tcell.Key, mods int) (m int, sel bool) {
	ctrl := mods&retained.ModCtrl != 0
	switch k {
	case tcell.KeyUp:
		m = retained.MotionUp
	case tcell.KeyDown:
		m = retained.MotionDown
	case tcell.KeyLeft:
		m = retained.MotionLeft
		if ctrl {
			m = retained.MotionPreviousWord
		}
	case tcell.KeyRight:
		m = retained.MotionRight
		if ctrl {
			m = retained.MotionNextWord
		}
	case tcell.KeyHome:
		m = retained.MotionBeginningOfLine
		if ctrl {
			m = retained.MotionBeginningOfFile
		}
	case tcell.KeyEnd:
		m = retained.MotionEndOfLine
		if ctrl {
			m = retained.MotionEndOfFile
		}
	case tcell.KeyPgUp:
		m = retained.MotionPreviousPage
	case tcell.KeyPgDn:
		m = retained.MotionNextPage
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return retained.MotionBackspace, false
	case tcell.KeyDelete:
		return retained.MotionDelete, false
	default:
		return 0, false
	}
	return m, mods&retained.ModShift != 0
}

func wheelDelta(mask tcell.ButtonMask) (sx, sy float64) {
	if mask&tcell.WheelUp != 0 {
		sy++
	}
	if mask&tcell.WheelDown != 0 {
		sy--
	}
	if mask&tcell.WheelLeft != 0 {
		sx--
	}
	if mask&tcell.WheelRight != 0 {
		sx++
	}
	return sx, sy
}

// buttons maps tcell buttons to handler buttons. tcell's Button2 is the
// secondary (right) button.
func buttons(mask tcell.ButtonMask) int {
	var b int
	if mask&tcell.Button1 != 0 {
		b |= retained.MouseLeft
	}
	if mask&tcell.Button2 != 0 {
		b |= retained.MouseRight
	}
	if mask&tcell.Button3 != 0 {
		b |= retained.MouseMiddle
	}
	return b
}

func modifiers(m tcell.ModMask) int {
	var mods int
	if m&tcell.ModShift != 0 {
		mods |= retained.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= retained.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= retained.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= retained.ModSuper
	}
	return mods
}

var _ retained.Window = (*Window)(nil)
