package tensor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/minigrad/internal/operators"
)

// Shape represents the dimensions of a tensor.
type Shape []int

// Strides holds the per-dimension storage offsets of a tensor.
type Strides []int

// NumElements returns the total number of elements described by the shape.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	return operators.ProdInts(s)
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String renders the shape as a tuple, e.g. "(3, 5)".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ParseShape parses a comma separated list of positive dimensions, e.g. "5,1,5".
func ParseShape(text string) (Shape, error) {
	text = strings.Trim(strings.TrimSpace(text), "()")
	if text == "" {
		return Shape{}, nil
	}
	fields := strings.Split(text, ",")
	shape := make(Shape, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue // Allow a trailing comma, as in "(3,)".
		}
		d, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid dimension %q: %w", f, err)
		}
		shape = append(shape, d)
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return shape, nil
}

// ParseStrides parses a comma separated list of non-negative strides,
// e.g. "0,1". A zero stride repeats the same storage along a dimension.
func ParseStrides(text string) (Strides, error) {
	text = strings.Trim(strings.TrimSpace(text), "()")
	strides := Strides{}
	for _, f := range strings.Split(text, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		st, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid stride %q: %w", f, err)
		}
		if st < 0 {
			return nil, fmt.Errorf("invalid stride %d (must be >= 0)", st)
		}
		strides = append(strides, st)
	}
	return strides, nil
}

// StridesFromShape calculates canonical row-major strides for the shape:
// the last dimension has stride 1 and every other stride is the product of
// the sizes to its right.
func StridesFromShape(s Shape) Strides {
	strides := make(Strides, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// ShapeBroadcast implements NumPy-style broadcasting rules.
//
// Shapes are aligned at their right edge, the shorter one is padded on the
// left with size-1 dimensions, and each aligned pair (a, b) yields max(a, b).
// A pair where both sizes differ and neither is 1 fails with ErrBroadcast.
//
// Examples:
//
//	(1,)       + (5, 5)       → (5, 5)
//	(5, 1, 5, 1) + (1, 5, 1, 5) → (5, 5, 5, 5)
//	(2, 5)     + (5,)         → (2, 5)
//	(5, 2)     + (5,)         → error
func ShapeBroadcast(a, b Shape) (Shape, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
		case bDim == 1:
			result[maxLen-1-i] = aDim
		default:
			return nil, newIndexingError(ErrBroadcast,
				"shapes %v and %v not compatible (dimension %d: %d vs %d)", a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, nil
}
