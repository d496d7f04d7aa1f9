package golden

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agiangrant/golden/internal/term"
	"github.com/agiangrant/golden/retained"
)

// App runs a widget index on a terminal screen.
type App struct {
	window  *term.Window
	index   *retained.SpatialIndex
	batch   *retained.Batch
	painter *term.Painter
	anims   *retained.AnimationRegistry
	frame   time.Duration
}

// NewTerminalApp opens the controlling terminal and creates an app on it.
func NewTerminalApp(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, err := term.Open(terminalOptions(cfg.Terminal)...)
	if err != nil {
		return nil, err
	}
	app, err := NewApp(w, cfg)
	if err != nil {
		w.Close()
		return nil, err
	}
	return app, nil
}

func terminalOptions(cfg TerminalConfig) []term.Option {
	return []term.Option{
		term.WithCellSize(cfg.CellWidth, cfg.CellHeight),
		term.WithMouse(cfg.Mouse),
	}
}

// NewApp creates an app on an existing terminal window.
func NewApp(w *term.Window, cfg Config) (*App, error) {
	painter := term.NewPainter(w)
	batch := retained.NewBatch(painter)
	ix, err := retained.NewSpatialIndex(w,
		retained.WithCellSize(cfg.Router.CellSize),
		retained.WithHoverRefresh(cfg.Router.HoverRefresh),
		retained.WithBatch(batch),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &App{
		window:  w,
		index:   ix,
		batch:   batch,
		painter: painter,
		anims:   retained.NewAnimationRegistry(),
		frame:   frameInterval(cfg.Terminal.FrameRate),
	}, nil
}

// Index returns the app's spatial index.
func (a *App) Index() *retained.SpatialIndex { return a.index }

// Animations returns the registry ticked before every frame.
func (a *App) Animations() *retained.AnimationRegistry { return a.anims }

// Stage returns the index and animations for a Build.
func (a *App) Stage() Stage { return Stage{Index: a.index, Animations: a.anims} }

// Window returns the terminal window.
func (a *App) Window() *term.Window { return a.window }

// Add places top-level widgets on the window.
func (a *App) Add(widgets ...*retained.Widget) { a.index.Add(widgets...) }

// Remove takes top-level widgets off the window.
func (a *App) Remove(widgets ...*retained.Widget) { a.index.Remove(widgets...) }

// Draw advances animations and paints one frame into the screen buffer.
func (a *App) Draw() error {
	a.anims.Tick(time.Now())
	a.painter.Reset()
	return a.index.Draw()
}

// Run draws and dispatches events until the quit key or ctx ends it.
// Cancellation is not an error.
func (a *App) Run(ctx context.Context) error {
	width, height := a.window.Size()
	slogger().Info("app started",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("widgets", a.index.Len()))

	frames, stop := context.WithCancel(ctx)
	defer stop()
	go a.wake(frames)

	err := a.window.Run(ctx, a.Draw)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	slogger().Info("app stopped")
	return err
}

// wake requests a redraw every frame while animations run. The event loop
// is otherwise idle until input arrives.
func (a *App) wake(ctx context.Context) {
	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if a.anims.HasActive() {
				a.window.Wake()
			}
		}
	}
}

func frameInterval(fps int) time.Duration {
	if fps < 1 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

// Close detaches the index and restores the terminal.
func (a *App) Close() {
	a.index.SetEnabled(false)
	a.window.Close()
}
