package retained

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// AnimationID uniquely identifies an animation.
type AnimationID uint64

var nextAnimationID atomic.Uint64

func newAnimationID() AnimationID {
	return AnimationID(nextAnimationID.Add(1))
}

// EasingFunc maps time progress (0-1) to value progress (0-1).
type EasingFunc func(t float64) float64

// Common easing functions
var (
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	EaseInQuad EasingFunc = func(t float64) float64 { return t * t }

	EaseOutQuad EasingFunc = func(t float64) float64 { return t * (2 - t) }

	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	}

	// EaseOutCubic - smooth deceleration (good for UI)
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t--
		return t*t*t + 1
	}

	// EaseOutBack - slight overshoot then settle
	EaseOutBack EasingFunc = func(t float64) float64 {
		c1 := 1.70158
		c3 := c1 + 1
		return 1 + c3*(t-1)*(t-1)*(t-1) + c1*(t-1)*(t-1)
	}
)

// EasingByName returns a named easing, or EaseOutCubic for unknown names.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "ease-in":
		return EaseInQuad
	case "ease-out":
		return EaseOutQuad
	case "ease-in-out":
		return EaseInOutQuad
	case "back":
		return EaseOutBack
	}
	return EaseOutCubic
}

// Animation is a running tween on a widget.
type Animation struct {
	id         AnimationID
	widget     *Widget
	startTime  time.Time
	duration   time.Duration
	update     func(progress float64) // eased progress 0-1
	onComplete func()
	easing     EasingFunc
	loop       bool
	cancelled  atomic.Bool
}

// ID returns the animation's identifier.
func (a *Animation) ID() AnimationID { return a.id }

// Widget returns the animated widget.
func (a *Animation) Widget() *Widget { return a.widget }

// Cancel stops the animation at its current value.
func (a *Animation) Cancel() { a.cancelled.Store(true) }

// IsCancelled reports whether Cancel was called.
func (a *Animation) IsCancelled() bool { return a.cancelled.Load() }

// AnimationRegistry holds running animations. Tick must be called from the
// goroutine that owns the widgets; HasActive and Count may be called from
// any goroutine, so a frame timer can decide whether to wake the loop.
type AnimationRegistry struct {
	mu         sync.RWMutex
	animations map[AnimationID]*Animation
	order      []AnimationID
	now        func() time.Time

	onActiveChange func(hasActive bool)
}

// NewAnimationRegistry creates an empty registry on the wall clock.
func NewAnimationRegistry() *AnimationRegistry {
	return &AnimationRegistry{
		animations: make(map[AnimationID]*Animation),
		now:        time.Now,
	}
}

// SetClock replaces the time source new animations start from.
func (r *AnimationRegistry) SetClock(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

// OnActiveChange sets the callback run when the registry goes from idle to
// active or back.
func (r *AnimationRegistry) OnActiveChange(fn func(hasActive bool)) {
	r.mu.Lock()
	r.onActiveChange = fn
	r.mu.Unlock()
}

// Add registers an animation.
func (r *AnimationRegistry) Add(anim *Animation) {
	r.mu.Lock()
	wasEmpty := len(r.animations) == 0
	if _, ok := r.animations[anim.id]; !ok {
		r.order = append(r.order, anim.id)
	}
	r.animations[anim.id] = anim
	callback := r.onActiveChange
	r.mu.Unlock()

	if wasEmpty && callback != nil {
		callback(true)
	}
}

// Remove unregisters an animation without running its completion.
func (r *AnimationRegistry) Remove(id AnimationID) {
	r.mu.Lock()
	_, ok := r.animations[id]
	r.remove(id)
	isEmpty := len(r.animations) == 0
	callback := r.onActiveChange
	r.mu.Unlock()

	if ok && isEmpty && callback != nil {
		callback(false)
	}
}

func (r *AnimationRegistry) remove(id AnimationID) {
	delete(r.animations, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// HasActive reports whether any animation is running.
func (r *AnimationRegistry) HasActive() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.animations) > 0
}

// Count returns the number of running animations.
func (r *AnimationRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.animations)
}

// Tick advances every animation to now, in start order, and drops the
// finished ones. Updates and completions run outside the lock, so they may
// start new animations. It reports whether any animation is still running.
func (r *AnimationRegistry) Tick(now time.Time) bool {
	r.mu.Lock()
	running := make([]*Animation, 0, len(r.order))
	for _, id := range r.order {
		running = append(running, r.animations[id])
	}
	r.mu.Unlock()

	var done, completed []*Animation
	for _, anim := range running {
		if anim.cancelled.Load() {
			done = append(done, anim)
			continue
		}
		elapsed := now.Sub(anim.startTime)
		if elapsed >= anim.duration {
			if anim.loop {
				anim.startTime = now
				elapsed = 0
			} else {
				anim.apply(1)
				done = append(done, anim)
				completed = append(completed, anim)
				continue
			}
		}
		t := 1.0
		if anim.duration > 0 {
			t = min(1, float64(elapsed)/float64(anim.duration))
		}
		anim.apply(t)
	}

	r.mu.Lock()
	for _, anim := range done {
		r.remove(anim.id)
	}
	hasActive := len(r.animations) > 0
	callback := r.onActiveChange
	r.mu.Unlock()

	for _, anim := range completed {
		if anim.onComplete != nil {
			anim.onComplete()
		}
	}
	if len(done) > 0 && !hasActive && callback != nil {
		callback(false)
	}
	return hasActive
}

func (a *Animation) apply(t float64) {
	if a.update != nil {
		a.update(a.easing(t))
	}
}

// ============================================================================
// Animation Builder API
// ============================================================================

// AnimationBuilder provides a fluent API for creating animations.
type AnimationBuilder struct {
	widget     *Widget
	registry   *AnimationRegistry
	duration   time.Duration
	easing     EasingFunc
	loop       bool
	onComplete func()
}

// Animate starts building an animation of w, run by registry.
func (w *Widget) Animate(registry *AnimationRegistry) *AnimationBuilder {
	return &AnimationBuilder{
		widget:   w,
		registry: registry,
		duration: 300 * time.Millisecond,
		easing:   EaseOutCubic,
	}
}

// Duration sets how long the animation runs.
func (b *AnimationBuilder) Duration(d time.Duration) *AnimationBuilder {
	b.duration = d
	return b
}

// Easing sets the easing function.
func (b *AnimationBuilder) Easing(fn EasingFunc) *AnimationBuilder {
	if fn != nil {
		b.easing = fn
	}
	return b
}

// Loop makes the animation repeat until cancelled.
func (b *AnimationBuilder) Loop() *AnimationBuilder {
	b.loop = true
	return b
}

// OnComplete sets a callback for when the animation finishes.
func (b *AnimationBuilder) OnComplete(fn func()) *AnimationBuilder {
	b.onComplete = fn
	return b
}

// Position moves the widget from its current position to (x, y).
func (b *AnimationBuilder) Position(x, y int) *Animation {
	fromX, fromY := b.widget.Position()
	return b.PositionFromTo(fromX, fromY, x, y)
}

// PositionFromTo moves the widget between two positions.
func (b *AnimationBuilder) PositionFromTo(fromX, fromY, toX, toY int) *Animation {
	w := b.widget
	return b.Custom(func(p float64) {
		w.SetPosition(lerp(fromX, toX, p), lerp(fromY, toY, p))
	})
}

// Size resizes the widget from its current size to width x height.
func (b *AnimationBuilder) Size(width, height int) *Animation {
	fromW, fromH := b.widget.Size()
	return b.SizeFromTo(fromW, fromH, width, height)
}

// SizeFromTo resizes the widget between two sizes. Overshooting easings
// are clamped at zero.
func (b *AnimationBuilder) SizeFromTo(fromW, fromH, toW, toH int) *Animation {
	w := b.widget
	return b.Custom(func(p float64) {
		// Clamped sizes are never negative, so SetSize cannot fail.
		_ = w.SetSize(max(0, lerp(fromW, toW, p)), max(0, lerp(fromH, toH, p)))
	})
}

// Custom creates an animation with a custom update function receiving the
// eased progress.
func (b *AnimationBuilder) Custom(update func(progress float64)) *Animation {
	b.registry.mu.RLock()
	now := b.registry.now
	b.registry.mu.RUnlock()

	anim := &Animation{
		id:         newAnimationID(),
		widget:     b.widget,
		startTime:  now(),
		duration:   b.duration,
		easing:     b.easing,
		loop:       b.loop,
		onComplete: b.onComplete,
		update:     update,
	}
	b.registry.Add(anim)
	return anim
}

// lerp interpolates between two integers, rounding to nearest.
func lerp(a, b int, t float64) int {
	return a + int(math.Round(float64(b-a)*t))
}
