package optim

import (
	"k8s.io/klog/v2"
)

// SGD implements plain gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// Parameters whose bound leaf received no gradient are left unchanged.
type SGD[V any] struct {
	params  []*Parameter[V]
	lr      float64
	descend Descender[V]
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer. descend performs the update for the
// parameter value type (e.g. scalar.Algebra or ops.Algebra).
func NewSGD[V any](params []*Parameter[V], config SGDConfig, descend Descender[V]) *SGD[V] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD[V]{
		params:  params,
		lr:      config.LR,
		descend: descend,
	}
}

// Step updates every bound parameter from its leaf's derivative.
func (o *SGD[V]) Step() {
	for _, p := range o.params {
		leaf, ok := p.Leaf()
		if !ok {
			continue
		}
		grad, ok := leaf.Derivative()
		if !ok {
			klog.V(2).Infof("sgd: parameter %q has no gradient", p.name)
			continue
		}
		p.value = o.descend.Descend(p.value, grad, o.lr)
	}
}

// ZeroGrad clears the derivatives of the bound leaves.
func (o *SGD[V]) ZeroGrad() {
	for _, p := range o.params {
		if leaf, ok := p.Leaf(); ok {
			leaf.ZeroGrad()
		}
	}
}

// LR returns the learning rate.
func (o *SGD[V]) LR() float64 {
	return o.lr
}
