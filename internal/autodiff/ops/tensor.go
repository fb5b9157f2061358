package ops

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/tensor"
)

// Tensor is a differentiable tensor tracked by a Graph.
//
// Binary methods broadcast their operands (NumPy rules) and panic if the
// shapes are incompatible; use Graph.TryApply to get an error instead.
type Tensor struct {
	autodiff.Variable[*tensor.TensorData]
}

// NewTensor creates a leaf Tensor on g that requires a gradient by default.
func NewTensor(g *Graph, data *tensor.TensorData, opts ...autodiff.LeafOption) Tensor {
	return Tensor{g.Leaf(data, opts...)}
}

// Constant creates a Tensor on g that never receives a gradient.
func Constant(g *Graph, data *tensor.TensorData) Tensor {
	return Tensor{g.Constant(data)}
}

// Wrap returns the Tensor view of a Variable.
func Wrap(v autodiff.Variable[*tensor.TensorData]) Tensor {
	return Tensor{v}
}

// Data returns the tensor value.
func (t Tensor) Data() *tensor.TensorData {
	return t.Value()
}

// Shape returns the shape of the value.
func (t Tensor) Shape() tensor.Shape {
	return t.Value().Shape()
}

// Grad returns the accumulated gradient, or nil if none.
func (t Tensor) Grad() *tensor.TensorData {
	d, ok := t.Derivative()
	if !ok {
		return nil
	}
	return d
}

func (t Tensor) apply(fn Function, args ...Operand) Tensor {
	return Tensor{t.Graph().Apply(fn, args...)}
}

// Add returns t + b.
func (t Tensor) Add(b Operand) Tensor { return t.apply(AddOp{}, t, b) }

// Sub returns t - b.
func (t Tensor) Sub(b Operand) Tensor { return t.apply(SubOp{}, t, b) }

// Mul returns t * b.
func (t Tensor) Mul(b Operand) Tensor { return t.apply(MulOp{}, t, b) }

// Div returns t * (1/b). It panics if b has a zero element.
func (t Tensor) Div(b Operand) Tensor { return t.apply(MulOp{}, t, t.apply(InvOp{}, b)) }

// Neg returns -t.
func (t Tensor) Neg() Tensor { return t.apply(NegOp{}, t) }

// Inv returns 1/t.
func (t Tensor) Inv() Tensor { return t.apply(InvOp{}, t) }

// LT returns t < b as 1 or 0.
func (t Tensor) LT(b Operand) Tensor { return t.apply(LTOp{}, t, b) }

// GT returns t > b as 1 or 0.
func (t Tensor) GT(b Operand) Tensor { return t.apply(LTOp{}, b, t) }

// EQ returns t == b as 1 or 0.
func (t Tensor) EQ(b Operand) Tensor { return t.apply(EQOp{}, t, b) }

// Log returns log(t + EPS).
func (t Tensor) Log() Tensor { return t.apply(LogOp{}, t) }

// Exp returns exp(t).
func (t Tensor) Exp() Tensor { return t.apply(ExpOp{}, t) }

// Sigmoid returns σ(t).
func (t Tensor) Sigmoid() Tensor { return t.apply(SigmoidOp{}, t) }

// ReLU returns max(t, 0).
func (t Tensor) ReLU() Tensor { return t.apply(ReLUOp{}, t) }

// Sum sums along dim, keeping it with size 1.
func (t Tensor) Sum(dim int) Tensor { return t.apply(SumOp{Dim: dim}, t) }

// SumAll sums every element into a 0-dimensional tensor.
func (t Tensor) SumAll() Tensor {
	out := t
	for dim := range t.Shape() {
		out = out.Sum(dim)
	}
	return out.View()
}

// Mean averages along dim, keeping it with size 1.
func (t Tensor) Mean(dim int) Tensor { return t.apply(MeanOp{Dim: dim}, t) }

// Permute reorders dimensions: dimension i of the result is dimension
// order[i] of t.
func (t Tensor) Permute(order ...int) Tensor {
	return t.apply(PermuteOp{Order: append([]int(nil), order...)}, t)
}

// View reshapes t.
func (t Tensor) View(shape ...int) Tensor {
	return t.apply(ViewOp{Shape: tensor.Shape(shape).Clone()}, t)
}

// String implements fmt.Stringer.
func (t Tensor) String() string {
	return t.Value().String()
}
