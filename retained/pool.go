package retained

import "sync"

// ============================================================================
// Snapshot Pooling
// ============================================================================
//
// Dispatch never iterates a live bucket, child list or active set: handlers
// may add, remove or move widgets while an event is being delivered. Every
// iteration copies the members into a pooled slice first.
//
// Usage:
//   snapshot := acquireWidgetSlice(len(bucket))
//   copy(snapshot, bucket)
//   ... dispatch ...
//   releaseWidgetSlice(snapshot)

// widgetSlicePool pools []*Widget snapshots.
var widgetSlicePool = sync.Pool{
	New: func() any {
		// Most cells hold a handful of widgets.
		s := make([]*Widget, 0, 16)
		return &s
	},
}

// acquireWidgetSlice returns a slice with len == n. The caller must hand it
// back with releaseWidgetSlice.
func acquireWidgetSlice(n int) []*Widget {
	p := widgetSlicePool.Get().(*[]*Widget)
	if cap(*p) < n {
		widgetSlicePool.Put(p)
		return make([]*Widget, n, n*2)
	}
	return (*p)[:n]
}

// releaseWidgetSlice returns a snapshot to the pool. The slice must not be
// used afterwards.
func releaseWidgetSlice(s []*Widget) {
	if s == nil {
		return
	}
	// Drop references so pooled slices do not keep widgets alive.
	clear(s)
	// Oversized snapshots are left to the GC.
	if cap(s) <= 256 {
		s = s[:0]
		widgetSlicePool.Put(&s)
	}
}
