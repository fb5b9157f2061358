package autodiff_test

import (
	"github.com/gomlx/exceptions"

	"github.com/born-ml/minigrad/internal/autodiff"
)

// floatAlgebra is the minimal float64 algebra used by the engine tests.
type floatAlgebra struct{}

func (floatAlgebra) Add(a, b float64) float64 { return a + b }
func (floatAlgebra) OnesLike(float64) float64 { return 1 }
func (floatAlgebra) Compatible(_, _ float64) error { return nil }

func newGraph() *autodiff.Graph[float64] {
	return autodiff.NewGraph[float64](floatAlgebra{})
}

// identity passes its argument through: Backward returns [d, d].
// It takes two arguments so every call fans the gradient out to both.
type identity struct{}

func (identity) Name() string { return "Temp" }

func (identity) Forward(_ *autodiff.Context, in ...float64) float64 { return in[0] }

func (identity) Backward(_ *autodiff.Context, d float64) []float64 { return []float64{d, d} }

// scaled saves a factor in Forward and returns [d, factor·d].
type scaled struct{ factor float64 }

func (scaled) Name() string { return "Temp2" }

func (s scaled) Forward(ctx *autodiff.Context, in ...float64) float64 {
	ctx.SaveForBackward(s.factor)
	return in[0]
}

func (scaled) Backward(ctx *autodiff.Context, d float64) []float64 {
	x := autodiff.Saved[float64](ctx, 0)
	return []float64{d, x * d}
}

// mul is a real binary product.
type mul struct{}

func (mul) Name() string { return "Mul" }

func (mul) Forward(ctx *autodiff.Context, in ...float64) float64 {
	ctx.SaveForBackward(in[0], in[1])
	return in[0] * in[1]
}

func (mul) Backward(ctx *autodiff.Context, d float64) []float64 {
	a, b := autodiff.Saved[float64](ctx, 0), autodiff.Saved[float64](ctx, 1)
	return []float64{b * d, a * d}
}

// failing panics in Backward.
type failing struct{}

func (failing) Name() string { return "Failing" }

func (failing) Forward(_ *autodiff.Context, in ...float64) float64 { return in[0] }

func (failing) Backward(*autodiff.Context, float64) []float64 {
	exceptions.Panicf("failing backward")
	return nil
}

// wrongArity returns a single gradient for two inputs.
type wrongArity struct{}

func (wrongArity) Name() string { return "WrongArity" }

func (wrongArity) Forward(_ *autodiff.Context, in ...float64) float64 { return in[0] + in[1] }

func (wrongArity) Backward(_ *autodiff.Context, d float64) []float64 { return []float64{d} }
