// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/tensor"
)

// TestTensorDataAPI verifies the TensorData alias exposes the expected API.
func TestTensorDataAPI(t *testing.T) {
	td, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3}, td.Shape())
	assert.Equal(t, tensor.Strides{3, 1}, td.Strides())
	v, err := td.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	_, err = td.Get(2, 0)
	assert.True(t, errors.Is(err, tensor.ErrIndexOutOfRange))
	assert.True(t, errors.Is(err, tensor.ErrIndexing))
}

// TestBroadcastAPI verifies broadcasting through the public package.
func TestBroadcastAPI(t *testing.T) {
	shape, err := tensor.ShapeBroadcast(tensor.Shape{3, 1}, tensor.Shape{4})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 4}, shape)

	_, err = tensor.ShapeBroadcast(tensor.Shape{5, 2}, tensor.Shape{5})
	var ie *tensor.IndexingError
	require.True(t, errors.As(err, &ie))
	assert.True(t, errors.Is(err, tensor.ErrBroadcast))
}
