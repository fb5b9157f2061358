// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides strided float64 arrays with NumPy-style
// broadcasting.
//
// # Overview
//
// A TensorData is a view over a flat Storage buffer described by a shape
// and per-dimension strides. Several views may share the same storage
// (see TensorData.Permute).
//
// # Basic Usage
//
//	t, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	if err != nil { ... }
//	v, _ := t.Get(1, 2)               // 6
//	tt, _ := t.Permute(1, 0)          // shape (3, 2), same storage
//	u, _ := tensor.Zip(add, t, bias)  // broadcasting
//
// # Broadcasting
//
// Shapes are aligned at the right; a dimension of size 1 (or a missing
// leading dimension) is stretched to match the other operand:
//
//	(3, 1) + (4,)    → (3, 4)
//	(5, 2) + (5,)    → error (ErrBroadcast)
//
// # Errors
//
// Every indexing or broadcasting failure is an *IndexingError for which
// errors.Is(err, ErrIndexing) holds, together with a kind sentinel such as
// ErrIndexOutOfRange or ErrBroadcast.
package tensor
