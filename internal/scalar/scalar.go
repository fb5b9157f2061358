// Package scalar provides differentiable float64 values built on the
// autodiff engine.
//
// Usage:
//
//	g := scalar.NewGraph()
//	x := scalar.New(g, 2, autodiff.WithName("x"))
//	y := x.Mul(x).Add(scalar.Float(1)) // x² + 1
//	if err := y.Backward(); err != nil { ... }
//	x.Grad() // 4
package scalar

import (
	"fmt"

	"github.com/born-ml/minigrad/internal/autodiff"
)

// Operand is a Scalar or a raw constant created with Float.
type Operand = autodiff.Operand[float64]

// Graph is a computation graph over float64 values.
type Graph = autodiff.Graph[float64]

// Algebra sums float64 gradients and seeds backward passes with 1.
type Algebra struct{}

// Add returns a + b.
func (Algebra) Add(a, b float64) float64 { return a + b }

// OnesLike returns 1.
func (Algebra) OnesLike(float64) float64 { return 1 }

// Compatible implements autodiff.Algebra: every float64 fits.
func (Algebra) Compatible(_, _ float64) error { return nil }

// Descend returns value - lr·grad.
func (Algebra) Descend(value, grad, lr float64) float64 { return value - lr*grad }

// NewGraph creates an empty scalar graph.
func NewGraph() *Graph {
	return autodiff.NewGraph[float64](Algebra{})
}

// Float wraps a raw constant as an Operand.
func Float(v float64) Operand {
	return autodiff.Const(v)
}

// Scalar is a differentiable float64 tracked by a Graph.
type Scalar struct {
	autodiff.Variable[float64]
}

// New creates a leaf Scalar on g that requires a gradient by default.
func New(g *Graph, v float64, opts ...autodiff.LeafOption) Scalar {
	return Scalar{g.Leaf(v, opts...)}
}

// Constant creates a Scalar on g that never receives a gradient.
func Constant(g *Graph, v float64) Scalar {
	return Scalar{g.Constant(v)}
}

// Wrap returns the Scalar view of a Variable.
func Wrap(v autodiff.Variable[float64]) Scalar {
	return Scalar{v}
}

// Data returns the value.
func (s Scalar) Data() float64 {
	return s.Value()
}

// Grad returns the accumulated derivative, or 0 if none.
func (s Scalar) Grad() float64 {
	d, _ := s.Derivative()
	return d
}

func (s Scalar) apply(fn autodiff.Function[float64], args ...Operand) Scalar {
	return Scalar{s.Graph().Apply(fn, args...)}
}

// Add returns s + b.
func (s Scalar) Add(b Operand) Scalar { return s.apply(Add{}, s, b) }

// Sub returns s - b, computed as s + (-b).
func (s Scalar) Sub(b Operand) Scalar { return s.apply(Add{}, s, s.apply(Neg{}, b)) }

// Mul returns s · b.
func (s Scalar) Mul(b Operand) Scalar { return s.apply(Mul{}, s, b) }

// Div returns s / b, computed as s · (1/b). It panics if b is zero.
func (s Scalar) Div(b Operand) Scalar { return s.apply(Mul{}, s, s.apply(Inv{}, b)) }

// Neg returns -s.
func (s Scalar) Neg() Scalar { return s.apply(Neg{}, s) }

// LT returns 1 if s < b, else 0.
func (s Scalar) LT(b Operand) Scalar { return s.apply(LT{}, s, b) }

// GT returns 1 if s > b, else 0.
func (s Scalar) GT(b Operand) Scalar { return s.apply(LT{}, b, s) }

// EQ returns 1 if s == b, else 0.
func (s Scalar) EQ(b Operand) Scalar { return s.apply(EQ{}, s, b) }

// Log returns log(s + EPS).
func (s Scalar) Log() Scalar { return s.apply(Log{}, s) }

// Exp returns e^s.
func (s Scalar) Exp() Scalar { return s.apply(Exp{}, s) }

// Sigmoid returns σ(s).
func (s Scalar) Sigmoid() Scalar { return s.apply(Sigmoid{}, s) }

// ReLU returns max(s, 0).
func (s Scalar) ReLU() Scalar { return s.apply(ReLU{}, s) }

// String implements fmt.Stringer.
func (s Scalar) String() string {
	return fmt.Sprintf("Scalar(%f)", s.Data())
}
