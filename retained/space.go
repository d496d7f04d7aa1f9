package retained

import "fmt"

// Space is the empty area around a widget on each side, used for margins
// and padding.
type Space struct {
	Top, Right, Bottom, Left int
}

// NewSpace builds a Space from 1 to 4 non-negative values, in the usual
// box order:
//   - 1 value: all four sides
//   - 2 values: top and bottom, then left and right
//   - 3 values: top, then left and right, then bottom
//   - 4 values: top, right, bottom, left
func NewSpace(values ...int) (Space, error) {
	for _, v := range values {
		if v < 0 {
			return Space{}, fmt.Errorf("space %v: values must be non-negative: %w", values, ErrInvalidSpace)
		}
	}
	switch len(values) {
	case 1:
		v := values[0]
		return Space{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return Space{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 3:
		return Space{Top: values[0], Right: values[1], Bottom: values[2], Left: values[1]}, nil
	case 4:
		return Space{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	}
	return Space{}, fmt.Errorf("space: expected 1 to 4 values, got %d: %w", len(values), ErrInvalidSpace)
}

// Horizontal returns Left + Right.
func (s Space) Horizontal() int { return s.Left + s.Right }

// Vertical returns Top + Bottom.
func (s Space) Vertical() int { return s.Top + s.Bottom }

func (s Space) String() string {
	return fmt.Sprintf("space(%d, %d, %d, %d)", s.Top, s.Right, s.Bottom, s.Left)
}
