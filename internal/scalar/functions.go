package scalar

import (
	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/operators"
)

// Scalar functions. Each one is stateless; values needed by Backward are
// saved in the Context.

// Add computes a + b.
type Add struct{}

// Name implements autodiff.Function.
func (Add) Name() string { return "Add" }

// Forward computes a + b.
func (Add) Forward(_ *autodiff.Context, in ...float64) float64 {
	return operators.Add(in[0], in[1])
}

// Backward passes d to both inputs.
func (Add) Backward(_ *autodiff.Context, d float64) []float64 {
	return []float64{d, d}
}

// Mul computes a · b.
type Mul struct{}

// Name implements autodiff.Function.
func (Mul) Name() string { return "Mul" }

// Forward computes a · b.
func (Mul) Forward(ctx *autodiff.Context, in ...float64) float64 {
	ctx.SaveForBackward(in[0], in[1])
	return operators.Mul(in[0], in[1])
}

// Backward returns [b·d, a·d] from the saved inputs.
func (Mul) Backward(ctx *autodiff.Context, d float64) []float64 {
	a, b := autodiff.Saved[float64](ctx, 0), autodiff.Saved[float64](ctx, 1)
	return []float64{b * d, a * d}
}

// Inv computes 1/a. Forward panics with operators.ErrDivisionByZero on zero.
type Inv struct{}

// Name implements autodiff.Function.
func (Inv) Name() string { return "Inv" }

// Forward computes 1/a.
func (Inv) Forward(ctx *autodiff.Context, in ...float64) float64 {
	ctx.SaveForBackward(in[0])
	return operators.Inv(in[0])
}

// Backward returns -d/a² from the saved input.
func (Inv) Backward(ctx *autodiff.Context, d float64) []float64 {
	return []float64{operators.InvBack(autodiff.Saved[float64](ctx, 0), d)}
}

// Neg computes -a.
type Neg struct{}

// Name implements autodiff.Function.
func (Neg) Name() string { return "Neg" }

// Forward computes -a.
func (Neg) Forward(_ *autodiff.Context, in ...float64) float64 {
	return operators.Neg(in[0])
}

// Backward returns -d.
func (Neg) Backward(_ *autodiff.Context, d float64) []float64 {
	return []float64{-d}
}

// Sigmoid computes σ(a). Backward uses the saved output: σ' = σ(1-σ).
type Sigmoid struct{}

// Name implements autodiff.Function.
func (Sigmoid) Name() string { return "Sigmoid" }

// Forward computes σ(a).
func (Sigmoid) Forward(ctx *autodiff.Context, in ...float64) float64 {
	out := operators.Sigmoid(in[0])
	ctx.SaveForBackward(out)
	return out
}

// Backward returns σ(1-σ)·d from the saved output.
func (Sigmoid) Backward(ctx *autodiff.Context, d float64) []float64 {
	sigma := autodiff.Saved[float64](ctx, 0)
	return []float64{sigma * (1 - sigma) * d}
}

// ReLU computes max(a, 0).
type ReLU struct{}

// Name implements autodiff.Function.
func (ReLU) Name() string { return "ReLU" }

// Forward computes max(a, 0).
func (ReLU) Forward(ctx *autodiff.Context, in ...float64) float64 {
	ctx.SaveForBackward(in[0])
	return operators.ReLU(in[0])
}

// Backward passes d where the saved input is positive.
func (ReLU) Backward(ctx *autodiff.Context, d float64) []float64 {
	return []float64{operators.ReLUBack(autodiff.Saved[float64](ctx, 0), d)}
}

// Log computes log(a + EPS).
type Log struct{}

// Name implements autodiff.Function.
func (Log) Name() string { return "Log" }

// Forward computes log(a + EPS).
func (Log) Forward(ctx *autodiff.Context, in ...float64) float64 {
	ctx.SaveForBackward(in[0])
	return operators.Log(in[0])
}

// Backward returns d/(a + EPS) from the saved input.
func (Log) Backward(ctx *autodiff.Context, d float64) []float64 {
	return []float64{operators.LogBack(autodiff.Saved[float64](ctx, 0), d)}
}

// Exp computes e^a. Backward uses the saved output.
type Exp struct{}

// Name implements autodiff.Function.
func (Exp) Name() string { return "Exp" }

// Forward computes e^a.
func (Exp) Forward(ctx *autodiff.Context, in ...float64) float64 {
	out := operators.Exp(in[0])
	ctx.SaveForBackward(out)
	return out
}

// Backward returns e^a·d from the saved output.
func (Exp) Backward(ctx *autodiff.Context, d float64) []float64 {
	return []float64{d * autodiff.Saved[float64](ctx, 0)}
}

// LT computes 1 if a < b, else 0. Its gradient is zero everywhere.
type LT struct{}

// Name implements autodiff.Function.
func (LT) Name() string { return "LT" }

// Forward computes a < b as 1 or 0.
func (LT) Forward(_ *autodiff.Context, in ...float64) float64 {
	return operators.LT(in[0], in[1])
}

// Backward returns zero gradients.
func (LT) Backward(*autodiff.Context, float64) []float64 {
	return []float64{0, 0}
}

// EQ computes 1 if a == b, else 0. Its gradient is zero everywhere.
type EQ struct{}

// Name implements autodiff.Function.
func (EQ) Name() string { return "EQ" }

// Forward computes a == b as 1 or 0.
func (EQ) Forward(_ *autodiff.Context, in ...float64) float64 {
	return operators.EQ(in[0], in[1])
}

// Backward returns zero gradients.
func (EQ) Backward(*autodiff.Context, float64) []float64 {
	return []float64{0, 0}
}
