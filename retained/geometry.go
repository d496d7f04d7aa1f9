package retained

import "fmt"

// Rect is an axis-aligned rectangle with its origin at (X, Y).
type Rect struct {
	X, Y int
	W, H int
}

// MaxX returns the right edge.
func (r Rect) MaxX() int { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() int { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether (x, y) lies inside the half-open rectangle
// [X, X+W) x [Y, Y+H).
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o. Disjoint rectangles yield a
// zero-sized rectangle anchored at the clamped origin, never a negative size.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.MaxX(), o.MaxX()), min(r.MaxY(), o.MaxY())
	return Rect{X: x0, Y: y0, W: max(x1-x0, 0), H: max(y1-y0, 0)}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// AABB is a bounding box given by its min and max corners.
type AABB struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Rect converts the box back to origin + size form.
func (b AABB) Rect() Rect {
	return Rect{X: b.MinX, Y: b.MinY, W: b.MaxX - b.MinX, H: b.MaxY - b.MinY}
}

// floorDiv divides rounding toward negative infinity, so that cells left of
// or above the origin get negative keys instead of collapsing into cell 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
