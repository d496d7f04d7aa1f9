package retained

// Window is the host window the router subscribes to. Implementations own the
// raw input source and call the pushed Handlers synchronously, one event at a
// time, in delivery order.
type Window interface {
	// Size returns the window size in the host's units (pixels or cells).
	Size() (width, height int)

	// MousePosition returns the last pointer position known to the host.
	MousePosition() (x, y int)

	// PushHandlers subscribes h to the window's events.
	PushHandlers(h Handlers)

	// RemoveHandlers unsubscribes h. Removing an absent handler is a no-op.
	RemoveHandlers(h Handlers)
}

// Handlers is the host event vocabulary. Coordinates are window coordinates;
// symbols, modifiers, buttons and motions are host-defined integers.
type Handlers interface {
	OnKeyPress(symbol, modifiers int)
	OnKeyRelease(symbol, modifiers int)
	OnMousePress(x, y, buttons, modifiers int)
	OnMouseRelease(x, y, buttons, modifiers int)
	OnMouseDrag(x, y, dx, dy, buttons, modifiers int)
	OnMouseMotion(x, y, dx, dy int)
	OnMouseScroll(x, y int, scrollX, scrollY float64)
	OnFileDrop(x, y int, paths []string)
	OnText(text string)
	OnTextMotion(motion int)
	OnTextMotionSelect(motion int)
	OnResize(width, height int)
}

// Surface is what a container is placed on: the window (through its
// SpatialIndex) or an ancestor container.
type Surface interface {
	Size() (width, height int)
	Frame() *ClipFrame
}
