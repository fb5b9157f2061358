// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand/v2"

	"github.com/born-ml/minigrad/internal/tensor"
)

// TensorData is a strided view over a Storage buffer.
type TensorData = tensor.TensorData

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Strides holds the per-dimension storage offsets of a tensor.
type Strides = tensor.Strides

// Storage is the flat buffer shared by tensor views.
type Storage = tensor.Storage

// IndexingError describes an invalid index, layout or broadcast.
type IndexingError = tensor.IndexingError

// Error sentinels.
var (
	ErrIndexing           = tensor.ErrIndexing
	ErrRankMismatch       = tensor.ErrRankMismatch
	ErrIndexOutOfRange    = tensor.ErrIndexOutOfRange
	ErrNegativeIndex      = tensor.ErrNegativeIndex
	ErrStrideMismatch     = tensor.ErrStrideMismatch
	ErrInvalidPermutation = tensor.ErrInvalidPermutation
	ErrStorageSize        = tensor.ErrStorageSize
	ErrBroadcast          = tensor.ErrBroadcast
)

// New creates a TensorData over data, taking ownership of it. Nil strides
// mean canonical row-major strides.
func New(data []float64, shape Shape, strides Strides) (*TensorData, error) {
	return tensor.New(data, shape, strides)
}

// FromSlice creates a contiguous tensor holding a copy of data.
func FromSlice(data []float64, shape Shape) (*TensorData, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *TensorData {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *TensorData {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64) *TensorData {
	return tensor.Full(shape, value)
}

// Scalar creates a 0-dimensional tensor.
func Scalar(value float64) *TensorData {
	return tensor.Scalar(value)
}

// Rand creates a tensor with values drawn uniformly from [-1, 1).
func Rand(shape Shape, r *rand.Rand) *TensorData {
	return tensor.Rand(shape, r)
}

// ParseShape parses a shape such as "5,1,5" or "(2, 3)".
func ParseShape(text string) (Shape, error) {
	return tensor.ParseShape(text)
}

// ParseStrides parses a comma separated list of non-negative strides.
func ParseStrides(text string) (Strides, error) {
	return tensor.ParseStrides(text)
}

// StridesFromShape returns canonical row-major strides for shape.
func StridesFromShape(shape Shape) Strides {
	return tensor.StridesFromShape(shape)
}

// ShapeBroadcast returns the broadcast union of two shapes.
func ShapeBroadcast(a, b Shape) (Shape, error) {
	return tensor.ShapeBroadcast(a, b)
}

// IndexToPosition converts a multi-index into a storage position.
func IndexToPosition(index []int, strides Strides) int {
	return tensor.IndexToPosition(index, strides)
}

// Count converts an ordinal into a multi-index of shape.
func Count(position int, shape Shape, outIndex []int) {
	tensor.Count(position, shape, outIndex)
}

// BroadcastIndex maps an index of a broadcast shape to an index of shape.
func BroadcastIndex(bigIndex []int, bigShape, shape Shape, outIndex []int) {
	tensor.BroadcastIndex(bigIndex, bigShape, shape, outIndex)
}

// Map applies fn element-wise.
func Map(fn func(float64) float64, in *TensorData) *TensorData {
	return tensor.Map(fn, in)
}

// Zip combines a and b element-wise with broadcasting.
func Zip(fn func(float64, float64) float64, a, b *TensorData) (*TensorData, error) {
	return tensor.Zip(fn, a, b)
}

// ReduceDim folds dimension dim of a, keeping it with size 1.
func ReduceDim(fn func(acc, x float64) float64, start float64, a *TensorData, dim int) (*TensorData, error) {
	return tensor.ReduceDim(fn, start, a, dim)
}

// BroadcastTo expands a to shape.
func BroadcastTo(a *TensorData, shape Shape) (*TensorData, error) {
	return tensor.BroadcastTo(a, shape)
}

// SumTo sums a broadcast tensor back down to shape.
func SumTo(a *TensorData, shape Shape) (*TensorData, error) {
	return tensor.SumTo(a, shape)
}
