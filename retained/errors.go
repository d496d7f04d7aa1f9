package retained

import "errors"

// Validation and capability errors. Callers match them with errors.Is; the
// returned errors wrap these sentinels with the offending values.
var (
	// ErrNegativeSize is returned when a widget or container is given a
	// negative width or height.
	ErrNegativeSize = errors.New("retained: negative size")

	// ErrInvalidSpace is returned by NewSpace for a wrong number of values
	// or a negative value.
	ErrInvalidSpace = errors.New("retained: invalid space")

	// ErrInvalidCellSize is returned when a spatial index is configured
	// with a cell size below 1.
	ErrInvalidCellSize = errors.New("retained: invalid cell size")

	// ErrNotImplemented is returned by generic accessors that only make
	// sense for concrete widget kinds, such as Value on a plain widget.
	ErrNotImplemented = errors.New("retained: not implemented for this widget kind")

	// ErrNilImage is returned when a sprite is created without an image.
	ErrNilImage = errors.New("retained: nil image")
)
