package retained

import "slices"

// ============================================================================
// Event Routing
// ============================================================================

// dispatch delivers e to targets, a snapshot the caller owns. Widgets
// removed by an earlier handler in the same pass are skipped. A hover
// refresh requested while dispatching runs once the outermost pass ends.
func (ix *SpatialIndex) dispatch(targets []*Widget, e Event) {
	ix.depth++
	for _, w := range targets {
		if !ix.Contains(w) {
			continue
		}
		w.Dispatch(e)
	}
	ix.depth--
	if ix.depth == 0 && ix.hoverPending {
		ix.hoverPending = false
		ix.refreshHover()
	}
}

// dispatchCell routes e to the members of the cell under its coordinate.
func (ix *SpatialIndex) dispatchCell(e *PointerEvent) {
	bucket := ix.buckets[ix.CellAt(e.X, e.Y)]
	snapshot := acquireWidgetSlice(len(bucket))
	copy(snapshot, bucket)
	ix.dispatch(snapshot, e)
	releaseWidgetSlice(snapshot)
}

// dispatchActive routes e to the capture set.
func (ix *SpatialIndex) dispatchActive(e *PointerEvent, clearActive bool) {
	snapshot := acquireWidgetSlice(len(ix.active))
	copy(snapshot, ix.active)
	if clearActive {
		ix.active = ix.active[:0]
	}
	ix.dispatch(snapshot, e)
	releaseWidgetSlice(snapshot)
}

// broadcast delivers e once to every member, in add order.
func (ix *SpatialIndex) broadcast(e Event) {
	snapshot := acquireWidgetSlice(len(ix.order))
	copy(snapshot, ix.order)
	ix.dispatch(snapshot, e)
	releaseWidgetSlice(snapshot)
}

func (ix *SpatialIndex) capture(w *Widget) {
	if !slices.Contains(ix.active, w) {
		ix.active = append(ix.active, w)
	}
}

func pointer(kind EventType, x, y int) *PointerEvent {
	return &PointerEvent{Kind: kind, X: x, Y: y, WindowX: x, WindowY: y}
}

// ============================================================================
// Handlers
// ============================================================================

// OnMousePress routes a press to the cell under the pointer. Every widget
// reached joins the capture set.
func (ix *SpatialIndex) OnMousePress(x, y, buttons, modifiers int) {
	ix.mouseX, ix.mouseY = x, y
	e := pointer(EventMousePress, x, y)
	e.Buttons, e.Modifiers = buttons, modifiers

	bucket := ix.buckets[ix.CellAt(x, y)]
	snapshot := acquireWidgetSlice(len(bucket))
	copy(snapshot, bucket)
	for _, w := range snapshot {
		ix.capture(w)
	}
	ix.dispatch(snapshot, e)
	releaseWidgetSlice(snapshot)
}

// OnMouseRelease routes a release to the capture set and clears it. With
// no capture the release reaches no widget.
func (ix *SpatialIndex) OnMouseRelease(x, y, buttons, modifiers int) {
	ix.mouseX, ix.mouseY = x, y
	if len(ix.active) == 0 {
		return
	}
	e := pointer(EventMouseRelease, x, y)
	e.Buttons, e.Modifiers = buttons, modifiers
	ix.dispatchActive(e, true)
}

// OnMouseDrag routes a drag to the capture set. With no capture the drag
// reaches no widget.
func (ix *SpatialIndex) OnMouseDrag(x, y, dx, dy, buttons, modifiers int) {
	ix.mouseX, ix.mouseY = x, y
	if len(ix.active) == 0 {
		return
	}
	e := pointer(EventMouseDrag, x, y)
	e.DX, e.DY = dx, dy
	e.Buttons, e.Modifiers = buttons, modifiers
	ix.dispatchActive(e, false)
}

// OnMouseMotion routes a motion to the cell under the pointer.
func (ix *SpatialIndex) OnMouseMotion(x, y, dx, dy int) {
	ix.mouseX, ix.mouseY = x, y
	e := pointer(EventMouseMotion, x, y)
	e.DX, e.DY = dx, dy
	ix.dispatchCell(e)
}

// OnMouseScroll routes a scroll to the cell under the pointer.
func (ix *SpatialIndex) OnMouseScroll(x, y int, scrollX, scrollY float64) {
	e := pointer(EventMouseScroll, x, y)
	e.ScrollX, e.ScrollY = scrollX, scrollY
	ix.dispatchCell(e)
}

// OnFileDrop routes dropped paths to the cell under the pointer.
func (ix *SpatialIndex) OnFileDrop(x, y int, paths []string) {
	ix.mouseX, ix.mouseY = x, y
	e := pointer(EventFileDrop, x, y)
	e.Paths = paths
	ix.dispatchCell(e)
}

// OnKeyPress broadcasts a key press.
func (ix *SpatialIndex) OnKeyPress(symbol, modifiers int) {
	ix.broadcast(&KeyEvent{Kind: EventKeyPress, Symbol: symbol, Modifiers: modifiers})
}

// OnKeyRelease broadcasts a key release.
func (ix *SpatialIndex) OnKeyRelease(symbol, modifiers int) {
	ix.broadcast(&KeyEvent{Kind: EventKeyRelease, Symbol: symbol, Modifiers: modifiers})
}

// OnText broadcasts committed text.
func (ix *SpatialIndex) OnText(text string) {
	ix.broadcast(&TextEvent{Text: text})
}

// OnTextMotion broadcasts a caret motion.
func (ix *SpatialIndex) OnTextMotion(motion int) {
	ix.broadcast(&MotionEvent{Motion: motion})
}

// OnTextMotionSelect broadcasts a selecting caret motion.
func (ix *SpatialIndex) OnTextMotionSelect(motion int) {
	ix.broadcast(&MotionEvent{Motion: motion, Select: true})
}

// OnResize applies a window resize.
func (ix *SpatialIndex) OnResize(width, height int) {
	ix.Resize(width, height)
}

var _ Handlers = (*SpatialIndex)(nil)
var _ Surface = (*SpatialIndex)(nil)
var _ Surface = (*Container)(nil)
