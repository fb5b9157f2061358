package tensor

import (
	"math/rand/v2"
	"slices"
)

// FromSlice creates a contiguous tensor holding a copy of data.
//
// Example:
//
//	t, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromSlice(data []float64, shape Shape) (*TensorData, error) {
	return New(slices.Clone(data), shape, nil)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *TensorData {
	return Full(shape, 0)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *TensorData {
	return Full(shape, 1)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64) *TensorData {
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = value
	}
	t, err := New(data, shape, nil)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	return t
}

// Scalar creates a 0-dimensional tensor.
func Scalar(value float64) *TensorData {
	return Full(Shape{}, value)
}

// Rand creates a tensor with values drawn uniformly from [-1, 1).
func Rand(shape Shape, r *rand.Rand) *TensorData {
	t := Zeros(shape)
	data := t.storage.data
	for i := range data {
		data[i] = 2*r.Float64() - 1
	}
	return t
}
