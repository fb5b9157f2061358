package scalar

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/minigrad/internal/gradcheck"
)

// Func is a function of Scalars that can be checked with DerivativeCheck.
type Func func(args ...Scalar) Scalar

// Eval evaluates f on constants holding vals, without recording history.
func Eval(f Func, vals ...float64) float64 {
	g := NewGraph()
	g.StopRecording()
	args := make([]Scalar, len(vals))
	for i, v := range vals {
		args[i] = Constant(g, v)
	}
	return f(args...).Data()
}

// CentralDifference approximates the partial derivative of f with respect
// to vals[arg].
func CentralDifference(f Func, vals []float64, arg int, eps float64) float64 {
	return gradcheck.CentralDifference(func(v ...float64) float64 {
		return Eval(f, v...)
	}, vals, arg, eps)
}

// DerivativeCheck runs f on fresh leaves holding vals, backpropagates, and
// compares each leaf's derivative with its central difference estimate.
// It returns an error wrapping gradcheck.ErrMismatch on the first mismatch,
// and an error if the forward pass panics.
func DerivativeCheck(f Func, vals []float64, opts ...gradcheck.Option) error {
	cfg := gradcheck.NewConfig(opts...)
	g := NewGraph()
	leaves := make([]Scalar, len(vals))
	for i, v := range vals {
		leaves[i] = New(g, v)
	}
	var out Scalar
	if exception := exceptions.Try(func() { out = f(leaves...) }); exception != nil {
		return errors.Errorf("derivative check: forward failed: %v", exception)
	}
	if err := out.Backward(); err != nil {
		return errors.WithMessage(err, "derivative check")
	}

	for i, x := range leaves {
		check := CentralDifference(f, vals, i, cfg.Epsilon)
		klog.V(1).Infof("derivative check: arg %d at %v: analytical=%g numerical=%g", i, vals, x.Grad(), check)
		if err := cfg.Compare(x.Name(), x.Grad(), check); err != nil {
			return errors.WithMessagef(err, "derivative check at %v", vals)
		}
	}
	return nil
}
