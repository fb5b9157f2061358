// Package optim implements plain gradient descent over autodiff parameters.
//
// Graph values are immutable, so trainable values live in Parameters
// outside the graph. Each iteration binds them to a fresh graph as leaves,
// runs forward and backward, and lets the optimizer write the updated
// values back into the Parameters.
//
// Example usage:
//
//	w := optim.NewParameter("w", 0.0)
//	opt := optim.NewSGD([]*optim.Parameter[float64]{w}, optim.SGDConfig{LR: 0.1}, scalar.Algebra{})
//
//	for range steps {
//	    g := scalar.NewGraph()
//	    x := scalar.Wrap(w.Bind(g))
//	    loss := x.Sub(scalar.Float(3)).Mul(...)
//	    if err := loss.Backward(); err != nil { ... }
//	    opt.Step()
//	}
package optim

import (
	"github.com/born-ml/minigrad/internal/autodiff"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies the gradients of the bound leaves to the parameters.
	Step()

	// ZeroGrad clears the derivatives of the bound leaves.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float64
}

// Descender computes one gradient descent update: value - lr·grad.
type Descender[V any] interface {
	Descend(value, grad V, lr float64) V
}

// Parameter is a trainable value that outlives the graphs it is used in.
type Parameter[V any] struct {
	name  string
	value V
	leaf  autodiff.Variable[V]
	bound bool
}

// NewParameter creates a parameter holding value.
func NewParameter[V any](name string, value V) *Parameter[V] {
	return &Parameter[V]{name: name, value: value}
}

// Name returns the parameter's name.
func (p *Parameter[V]) Name() string {
	return p.name
}

// Value returns the current value.
func (p *Parameter[V]) Value() V {
	return p.value
}

// Bind creates a leaf holding the current value on g and remembers it, so
// that the next Step reads its derivative.
func (p *Parameter[V]) Bind(g *autodiff.Graph[V]) autodiff.Variable[V] {
	p.leaf = g.Leaf(p.value, autodiff.WithName(p.name))
	p.bound = true
	return p.leaf
}

// Leaf returns the leaf created by the last Bind, if any.
func (p *Parameter[V]) Leaf() (autodiff.Variable[V], bool) {
	return p.leaf, p.bound
}
