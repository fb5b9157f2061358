// Package tensor implements the strided array layer of minigrad: flat float64
// storage plus shape/stride metadata, index/position translation and
// NumPy-style broadcasting.
package tensor

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// TensorData is a strided view over a Storage buffer.
//
// The element at multi-index i lives at storage position Σ i[d]*strides[d].
// Several TensorData may alias the same Storage (see Permute).
type TensorData struct {
	storage *Storage
	shape   Shape
	strides Strides
	size    int
}

// New creates a TensorData over data with the given shape.
// If strides is nil, canonical row-major strides are used.
//
// The data slice is not copied: the tensor takes ownership of it.
func New(data []float64, shape Shape, strides Strides) (*TensorData, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid shape")
	}
	if strides == nil {
		strides = StridesFromShape(shape)
	}
	if len(strides) != len(shape) {
		return nil, newIndexingError(ErrStrideMismatch, "len of strides %v must match %v", strides, shape)
	}
	if len(data) != shape.NumElements() {
		return nil, newIndexingError(ErrStorageSize, "storage has %d elements, shape %v needs %d",
			len(data), shape, shape.NumElements())
	}
	return newView(newStorage(data), shape.Clone(), slices.Clone(strides)), nil
}

// newView creates a TensorData referencing an existing storage.
func newView(storage *Storage, shape Shape, strides Strides) *TensorData {
	storage.addRef()
	return &TensorData{
		storage: storage,
		shape:   shape,
		strides: strides,
		size:    shape.NumElements(),
	}
}

// Shape returns the tensor's shape.
func (t *TensorData) Shape() Shape {
	return t.shape
}

// Strides returns the tensor's strides.
func (t *TensorData) Strides() Strides {
	return t.strides
}

// Size returns the number of elements.
func (t *TensorData) Size() int {
	return t.size
}

// Dims returns the number of dimensions.
func (t *TensorData) Dims() int {
	return len(t.shape)
}

// Storage returns the shared buffer.
func (t *TensorData) Storage() *Storage {
	return t.storage
}

// IsContiguous reports whether strides are non-increasing from left to
// right, i.e. outer dimensions have strides at least as big as inner ones.
func (t *TensorData) IsContiguous() bool {
	for i := 1; i < len(t.strides); i++ {
		if t.strides[i] > t.strides[i-1] {
			return false
		}
	}
	return true
}

// Index validates a multi-index and returns its storage position.
func (t *TensorData) Index(index ...int) (int, error) {
	if len(index) != len(t.shape) {
		return 0, newIndexingError(ErrRankMismatch, "index %v must be size of %v", index, t.shape)
	}
	for i, ind := range index {
		if ind < 0 {
			return 0, newIndexingError(ErrNegativeIndex, "negative indexing for %v not supported", index)
		}
		if ind >= t.shape[i] {
			return 0, newIndexingError(ErrIndexOutOfRange, "index %v out of range %v", index, t.shape)
		}
	}
	return IndexToPosition(index, t.strides), nil
}

// Get returns the element at index.
func (t *TensorData) Get(index ...int) (float64, error) {
	pos, err := t.Index(index...)
	if err != nil {
		return 0, err
	}
	return t.storage.data[pos], nil
}

// Set writes val at index. The write is visible through every view sharing
// the same storage.
func (t *TensorData) Set(val float64, index ...int) error {
	pos, err := t.Index(index...)
	if err != nil {
		return err
	}
	t.storage.data[pos] = val
	return nil
}

// At returns the element at an index already known to be valid.
func (t *TensorData) At(index []int) float64 {
	return t.storage.data[IndexToPosition(index, t.strides)]
}

// Item returns the single element of a size-1 tensor.
func (t *TensorData) Item() float64 {
	if t.size != 1 {
		panic(fmt.Sprintf("Item: tensor of shape %v has %d elements", t.shape, t.size))
	}
	return t.storage.data[IndexToPosition(make([]int, len(t.shape)), t.strides)]
}

// Indices iterates over every multi-index of the tensor in row-major order.
// The yielded slice is owned by the iterator: clone it to keep it.
func (t *TensorData) Indices() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		index := make([]int, len(t.shape))
		for pos := 0; pos < t.size; pos++ {
			Count(pos, t.shape, index)
			if !yield(index) {
				return
			}
		}
	}
}

// Sample returns a uniformly random valid index.
func (t *TensorData) Sample(r *rand.Rand) []int {
	index := make([]int, len(t.shape))
	for i, s := range t.shape {
		index[i] = r.IntN(s)
	}
	return index
}

// Permute returns a view over the same storage with dimensions reordered:
// dimension i of the result is dimension order[i] of t.
func (t *TensorData) Permute(order ...int) (*TensorData, error) {
	if !isPermutation(order, len(t.shape)) {
		return nil, newIndexingError(ErrInvalidPermutation,
			"must give a position to each dimension, shape %v order %v", t.shape, order)
	}
	shape := make(Shape, len(order))
	strides := make(Strides, len(order))
	for i, o := range order {
		shape[i] = t.shape[o]
		strides[i] = t.strides[o]
	}
	return newView(t.storage, shape, strides), nil
}

// View returns a view with a new shape over the same storage. Only
// contiguous tensors with canonical strides can be viewed.
func (t *TensorData) View(shape Shape) (*TensorData, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid shape")
	}
	if shape.NumElements() != t.size {
		return nil, newIndexingError(ErrStorageSize, "cannot view %v as %v", t.shape, shape)
	}
	if !slices.Equal(t.strides, StridesFromShape(t.shape)) {
		return nil, newIndexingError(ErrStrideMismatch, "cannot view non-contiguous tensor with strides %v", t.strides)
	}
	return newView(t.storage, shape.Clone(), StridesFromShape(shape)), nil
}

// Contiguous returns a copy of t laid out with canonical row-major strides.
func (t *TensorData) Contiguous() *TensorData {
	data := make([]float64, t.size)
	i := 0
	for index := range t.Indices() {
		data[i] = t.At(index)
		i++
	}
	return newView(newStorage(data), t.shape.Clone(), StridesFromShape(t.shape))
}

// ToSlice returns the elements in row-major order.
func (t *TensorData) ToSlice() []float64 {
	return t.Contiguous().storage.data
}

// String renders the tensor as nested bracketed rows.
func (t *TensorData) String() string {
	var sb strings.Builder
	for index := range t.Indices() {
		var open string
		for i := len(index) - 1; i >= 0; i-- {
			if index[i] != 0 {
				break
			}
			open = "\n" + strings.Repeat("\t", i) + "[" + open
		}
		sb.WriteString(open)
		fmt.Fprintf(&sb, "%3.2f", t.At(index))

		var closing string
		for i := len(index) - 1; i >= 0; i-- {
			if index[i] != t.shape[i]-1 {
				break
			}
			closing += "]"
		}
		if closing != "" {
			sb.WriteString(closing)
		} else {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

// isPermutation reports whether order is a permutation of 0..n-1.
func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, o := range order {
		if o < 0 || o >= n || seen[o] {
			return false
		}
		seen[o] = true
	}
	return true
}
