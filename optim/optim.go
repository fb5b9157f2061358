// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/minigrad/internal/autodiff/ops"
	"github.com/born-ml/minigrad/internal/optim"
	"github.com/born-ml/minigrad/internal/scalar"
	"github.com/born-ml/minigrad/internal/tensor"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Descender computes one gradient descent update for a value type.
type Descender[V any] = optim.Descender[V]

// Parameter is a trainable value bound to a fresh graph on every iteration.
type Parameter[V any] = optim.Parameter[V]

// NewParameter creates a parameter holding value.
func NewParameter[V any](name string, value V) *Parameter[V] {
	return optim.NewParameter(name, value)
}

// SGD represents the plain gradient descent optimizer.
type SGD[V any] = optim.SGD[V]

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer using descend for the updates.
func NewSGD[V any](params []*Parameter[V], config SGDConfig, descend Descender[V]) *SGD[V] {
	return optim.NewSGD(params, config, descend)
}

// NewScalarSGD creates an SGD optimizer over scalar parameters.
func NewScalarSGD(params []*Parameter[float64], config SGDConfig) *SGD[float64] {
	return optim.NewSGD(params, config, scalar.Algebra{})
}

// NewTensorSGD creates an SGD optimizer over tensor parameters.
//
// Example:
//
//	w := optim.NewParameter("w", tensor.Zeros(tensor.Shape{1}))
//	opt := optim.NewTensorSGD([]*optim.Parameter[*tensor.TensorData]{w}, optim.SGDConfig{LR: 0.2})
func NewTensorSGD(params []*Parameter[*tensor.TensorData], config SGDConfig) *SGD[*tensor.TensorData] {
	return optim.NewSGD(params, config, ops.Algebra{})
}
