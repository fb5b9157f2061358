package ops

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/minigrad/internal/gradcheck"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/tensor"
)

// Func is a function of Tensors that can be checked with GradCheck.
type Func func(args ...Tensor) Tensor

// Eval evaluates f on constants holding inputs, without recording history,
// and returns the sum of the output elements.
func Eval(f Func, inputs ...*tensor.TensorData) float64 {
	g := NewGraph()
	g.StopRecording()
	args := make([]Tensor, len(inputs))
	for i, in := range inputs {
		args[i] = Constant(g, in)
	}
	return operators.Sum(f(args...).Data().ToSlice())
}

// CentralDifference approximates the derivative of sum(f(inputs...)) with
// respect to element index of inputs[arg]. inputs are not modified.
func CentralDifference(f Func, inputs []*tensor.TensorData, arg int, index []int, eps float64) float64 {
	x := inputs[arg].At(index)
	return gradcheck.CentralDifference(func(v ...float64) float64 {
		shifted := make([]*tensor.TensorData, len(inputs))
		copy(shifted, inputs)
		shifted[arg] = inputs[arg].Contiguous()
		if err := shifted[arg].Set(v[0], index...); err != nil {
			panic(err)
		}
		return Eval(f, shifted...)
	}, []float64{x}, 0, eps)
}

// GradCheck runs f on fresh leaves holding inputs, backpropagates from the
// sum of its output, and compares every element of every input gradient
// with its central difference estimate. It returns an error wrapping
// gradcheck.ErrMismatch on the first mismatch.
func GradCheck(f Func, inputs []*tensor.TensorData, opts ...gradcheck.Option) error {
	cfg := gradcheck.NewConfig(opts...)
	g := NewGraph()
	leaves := make([]Tensor, len(inputs))
	for i, in := range inputs {
		leaves[i] = NewTensor(g, in)
	}
	var out Tensor
	if exception := exceptions.Try(func() { out = f(leaves...).SumAll() }); exception != nil {
		return errors.Errorf("grad check: forward failed: %v", exception)
	}
	if err := out.Backward(); err != nil {
		return errors.WithMessage(err, "grad check")
	}

	for i, x := range leaves {
		grad := x.Grad()
		if grad == nil {
			grad = tensor.Zeros(x.Shape())
		}
		for index := range x.Data().Indices() {
			check := CentralDifference(f, inputs, i, index, cfg.Epsilon)
			actual := grad.At(index)
			klog.V(3).Infof("grad check: input %d %v: analytical=%g numerical=%g", i, index, actual, check)
			if err := cfg.Compare(x.Name(), actual, check); err != nil {
				return errors.WithMessagef(err, "grad check at index %v", index)
			}
		}
	}
	return nil
}
