// Package golden is a retained-mode widget toolkit. Widgets live in a
// SpatialIndex that routes window events to them through a spatial hash,
// containers clip and translate their children, and draw batches paint
// everything onto a terminal screen or a software canvas.
//
// The building blocks are in package retained; this package wires them to
// the backends and to configuration:
//
//	app, err := golden.NewTerminalApp(golden.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//	btn, _ := golden.NewButton("OK", 0, 0, 10, 3)
//	center, _ := golden.NewCenter(btn.Widget(), true, 0, 0, 0, 0)
//	app.Add(center)
//	return app.Run(ctx)
package golden

import "github.com/agiangrant/golden/retained"

type (
	Widget       = retained.Widget
	Container    = retained.Container
	SpatialIndex = retained.SpatialIndex
	Button       = retained.Button
	Sprite       = retained.Sprite
	Space        = retained.Space
	Event        = retained.Event
	EventType    = retained.EventType
	Sink         = retained.Sink
	Painter      = retained.Painter
)

// Constructors re-exported for single-import programs.
var (
	NewWidget    = retained.NewWidget
	NewContainer = retained.NewContainer
	NewCenter    = retained.NewCenter
	NewButton    = retained.NewButton
	NewSprite    = retained.NewSprite
	NewSpace     = retained.NewSpace
)
