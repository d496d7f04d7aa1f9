package retained

import (
	"fmt"
	"log/slog"
	"slices"
	"weak"
)

// DefaultCellSize is the spatial hash cell edge used when none is given.
const DefaultCellSize = 256

// Cell is a spatial hash key: (floor(x/cellSize), floor(y/cellSize)).
type Cell struct {
	X, Y int
}

// indexEntry is the index's bookkeeping for one member widget.
type indexEntry struct {
	cells    []Cell
	listener ListenerID
}

// ============================================================================
// Spatial Index
// ============================================================================

// SpatialIndex routes window events to top-level widgets. Widgets are
// bucketed by the grid cells their bounding box overlaps, so pointer events
// only reach the widgets near the pointer.
//
// A press captures every widget it reaches: until the next release, drags
// and the release go to those widgets wherever the pointer is.
//
// SpatialIndex implements Handlers (it subscribes itself to the window) and
// Surface (top-level containers are placed on it).
type SpatialIndex struct {
	window   Window
	cellSize int
	sink     Sink

	buckets map[Cell][]*Widget
	entries map[*Widget]*indexEntry
	order   []*Widget // add order, for broadcasts
	active  []*Widget // capture set

	root          *ClipFrame
	width, height int

	enabled        bool
	mouseX, mouseY int

	hoverRefresh bool
	hoverPending bool
	refreshing   bool
	depth        int // dispatch nesting
}

// IndexOption configures a SpatialIndex.
type IndexOption func(*SpatialIndex)

// WithCellSize sets the grid cell edge length.
func WithCellSize(size int) IndexOption {
	return func(ix *SpatialIndex) { ix.cellSize = size }
}

// WithBatch sets the shared sink widgets without one are attached to.
func WithBatch(s Sink) IndexOption {
	return func(ix *SpatialIndex) { ix.sink = s }
}

// WithHoverRefresh controls whether the index re-sends a motion event at
// the last pointer position after a widget moves. On by default.
func WithHoverRefresh(enabled bool) IndexOption {
	return func(ix *SpatialIndex) { ix.hoverRefresh = enabled }
}

// NewSpatialIndex creates an index subscribed to window. A nil window gives
// a detached index driven by calling its handler methods directly.
func NewSpatialIndex(window Window, opts ...IndexOption) (*SpatialIndex, error) {
	ix := &SpatialIndex{
		window:       window,
		cellSize:     DefaultCellSize,
		buckets:      make(map[Cell][]*Widget),
		entries:      make(map[*Widget]*indexEntry),
		enabled:      true,
		hoverRefresh: true,
	}
	for _, opt := range opts {
		opt(ix)
	}
	if ix.cellSize < 1 {
		return nil, fmt.Errorf("cell size %d: %w", ix.cellSize, ErrInvalidCellSize)
	}
	if ix.sink == nil {
		ix.sink = NewBatch(nil)
	}
	if window != nil {
		ix.width, ix.height = window.Size()
		ix.mouseX, ix.mouseY = window.MousePosition()
	}
	ix.root = NewRootFrame(ix.width, ix.height)
	if window != nil {
		window.PushHandlers(ix)
	}
	return ix, nil
}

// ============================================================================
// Membership
// ============================================================================

// Add registers widgets and indexes them under every cell their bounding
// box covers. Widgets already present are skipped. A widget held by a
// container or another index is detached from it first.
func (ix *SpatialIndex) Add(widgets ...*Widget) {
	for _, w := range widgets {
		if w == nil {
			continue
		}
		if _, ok := ix.entries[w]; ok {
			continue
		}
		if w.Parent() != nil || w.Index() != nil {
			w.Detach()
		}

		e := &indexEntry{cells: ix.cellsOf(w)}
		ix.entries[w] = e
		ix.order = append(ix.order, w)
		for _, c := range e.cells {
			ix.buckets[c] = append(ix.buckets[c], w)
		}
		w.index = weak.Make(ix)
		e.listener = w.On(EventReposition, ix.repositioned)
		if w.sink == nil {
			w.SetSink(ix.sink)
		}
		slogger().Debug("index add",
			slog.String("widget", w.String()),
			slog.Int("cells", len(e.cells)))

		// Containers now compose with the window frame.
		w.refresh()
	}
}

// Remove unregisters widgets. Absent widgets are skipped.
func (ix *SpatialIndex) Remove(widgets ...*Widget) {
	for _, w := range widgets {
		e, ok := ix.entries[w]
		if !ok {
			continue
		}
		for _, c := range e.cells {
			ix.unbucket(c, w)
		}
		delete(ix.entries, w)
		ix.order = deleteWidget(ix.order, w)
		ix.active = deleteWidget(ix.active, w)
		w.Off(e.listener)
		w.index = weak.Pointer[SpatialIndex]{}
		if w.sink == ix.sink {
			w.SetSink(nil)
		}
		slogger().Debug("index remove", slog.String("widget", w.String()))
		w.rederive()
	}
}

// repositioned re-buckets a member after its geometry changed.
func (ix *SpatialIndex) repositioned(w *Widget, _ Event) {
	e, ok := ix.entries[w]
	if !ok {
		return
	}
	ix.reindex(w, e)
	ix.scheduleHoverRefresh()
}

// reindex moves w to its current cell range in two phases: compute the new
// range, then apply only the difference. Cells present in both are left
// untouched so w keeps its position in those buckets.
func (ix *SpatialIndex) reindex(w *Widget, e *indexEntry) {
	next := ix.cellsOf(w)
	stale := cellDiff(e.cells, next)
	fresh := cellDiff(next, e.cells)
	for _, c := range stale {
		ix.unbucket(c, w)
	}
	for _, c := range fresh {
		ix.buckets[c] = append(ix.buckets[c], w)
	}
	e.cells = next
	if len(stale) > 0 || len(fresh) > 0 {
		slogger().Debug("index reindex",
			slog.String("widget", w.String()),
			slog.Int("left", len(stale)),
			slog.Int("joined", len(fresh)))
	}
}

func (ix *SpatialIndex) unbucket(c Cell, w *Widget) {
	b := deleteWidget(ix.buckets[c], w)
	if len(b) == 0 {
		delete(ix.buckets, c)
		return
	}
	ix.buckets[c] = b
}

// cellsOf returns the inclusive cell range covered by w's bounding box, row
// by row.
func (ix *SpatialIndex) cellsOf(w *Widget) []Cell {
	box := w.AABB()
	lo := ix.CellAt(box.MinX, box.MinY)
	hi := ix.CellAt(box.MaxX, box.MaxY)
	cells := make([]Cell, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1))
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			cells = append(cells, Cell{X: cx, Y: cy})
		}
	}
	return cells
}

// cellDiff returns the cells of a that are not in b.
func cellDiff(a, b []Cell) []Cell {
	if len(b) == 0 {
		return a
	}
	in := make(map[Cell]struct{}, len(b))
	for _, c := range b {
		in[c] = struct{}{}
	}
	var out []Cell
	for _, c := range a {
		if _, ok := in[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

func deleteWidget(s []*Widget, w *Widget) []*Widget {
	if i := slices.Index(s, w); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

// ============================================================================
// Queries
// ============================================================================

// CellAt returns the cell containing (x, y).
func (ix *SpatialIndex) CellAt(x, y int) Cell {
	return Cell{X: floorDiv(x, ix.cellSize), Y: floorDiv(y, ix.cellSize)}
}

// CellSize returns the grid cell edge length.
func (ix *SpatialIndex) CellSize() int { return ix.cellSize }

// Len returns the number of registered widgets.
func (ix *SpatialIndex) Len() int { return len(ix.order) }

// Contains reports whether w is registered.
func (ix *SpatialIndex) Contains(w *Widget) bool {
	_, ok := ix.entries[w]
	return ok
}

// Widgets returns the registered widgets in add order.
func (ix *SpatialIndex) Widgets() []*Widget { return slices.Clone(ix.order) }

// CellsOf returns the cells w is currently bucketed under, or nil if it is
// not registered.
func (ix *SpatialIndex) CellsOf(w *Widget) []Cell {
	e, ok := ix.entries[w]
	if !ok {
		return nil
	}
	return slices.Clone(e.cells)
}

// WidgetsAt returns the members of the bucket containing (x, y): the
// widgets a pointer event at that point is routed to.
func (ix *SpatialIndex) WidgetsAt(x, y int) []*Widget {
	return slices.Clone(ix.buckets[ix.CellAt(x, y)])
}

// Active returns the current capture set in press order.
func (ix *SpatialIndex) Active() []*Widget { return slices.Clone(ix.active) }

// Sink returns the shared draw sink.
func (ix *SpatialIndex) Sink() Sink { return ix.sink }

// Size returns the window size. It satisfies Surface.
func (ix *SpatialIndex) Size() (width, height int) { return ix.width, ix.height }

// Frame returns the window root frame. It satisfies Surface.
func (ix *SpatialIndex) Frame() *ClipFrame { return ix.root }

// MousePosition returns the last pointer position the index saw.
func (ix *SpatialIndex) MousePosition() (x, y int) { return ix.mouseX, ix.mouseY }

// Enabled reports whether the index is subscribed to its window.
func (ix *SpatialIndex) Enabled() bool { return ix.enabled }

// ============================================================================
// Window Lifecycle
// ============================================================================

// Draw issues the shared sink's draw calls.
func (ix *SpatialIndex) Draw() error {
	if ix.sink == nil {
		return nil
	}
	return ix.sink.Draw()
}

// SetEnabled detaches the index from its window or reattaches it. The grid
// is kept while disabled. Reattaching synthesizes a motion at the window's
// pointer position so hover state catches up.
func (ix *SpatialIndex) SetEnabled(enabled bool) {
	if ix.enabled == enabled {
		return
	}
	ix.enabled = enabled
	slogger().Info("index enabled changed", slog.Bool("enabled", enabled))
	if !enabled {
		if ix.window != nil {
			ix.window.RemoveHandlers(ix)
		}
		return
	}
	if ix.window != nil {
		ix.window.PushHandlers(ix)
		ix.mouseX, ix.mouseY = ix.window.MousePosition()
	}
	ix.OnMouseMotion(ix.mouseX, ix.mouseY, 0, 0)
}

// Resize updates the window frame, re-derives every member against it and
// broadcasts the new size.
func (ix *SpatialIndex) Resize(width, height int) {
	ix.width, ix.height = width, height
	ix.root.Compose(nil, 0, 0, width, height)

	ix.depth++
	snapshot := acquireWidgetSlice(len(ix.order))
	copy(snapshot, ix.order)
	for _, w := range snapshot {
		if ix.Contains(w) {
			w.refresh()
		}
	}
	releaseWidgetSlice(snapshot)
	ix.depth--

	ix.broadcast(&ResizeEvent{Width: width, Height: height})
}

// scheduleHoverRefresh re-sends a motion at the last pointer position, once
// the outermost dispatch has returned.
func (ix *SpatialIndex) scheduleHoverRefresh() {
	if !ix.hoverRefresh || !ix.enabled || ix.refreshing {
		return
	}
	if ix.depth > 0 {
		ix.hoverPending = true
		return
	}
	ix.refreshHover()
}

func (ix *SpatialIndex) refreshHover() {
	ix.refreshing = true
	defer func() { ix.refreshing = false }()
	ix.OnMouseMotion(ix.mouseX, ix.mouseY, 0, 0)
}
