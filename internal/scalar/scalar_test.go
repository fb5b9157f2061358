package scalar_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/gradcheck"
	"github.com/born-ml/minigrad/internal/operators"
	"github.com/born-ml/minigrad/internal/scalar"
)

type oneArg struct {
	name string
	fn   scalar.Func
	ref  func(float64) float64
}

func oneArgFuncs() []oneArg {
	f := scalar.Float
	return []oneArg{
		{"neg", func(a ...scalar.Scalar) scalar.Scalar { return a[0].Neg() }, operators.Neg},
		{"addconstant", func(a ...scalar.Scalar) scalar.Scalar { return a[0].Add(f(5)) }, func(x float64) float64 { return x + 5 }},
		{"subconstant", func(a ...scalar.Scalar) scalar.Scalar { return a[0].Sub(f(5)) }, func(x float64) float64 { return x - 5 }},
		{"mult", func(a ...scalar.Scalar) scalar.Scalar { return a[0].Mul(f(5)) }, func(x float64) float64 { return 5 * x }},
		{"div", func(a ...scalar.Scalar) scalar.Scalar { return a[0].Div(f(5)) }, func(x float64) float64 { return x / 5 }},
		{"sig", func(a ...scalar.Scalar) scalar.Scalar { return a[0].Sigmoid() }, operators.Sigmoid},
		{
			"log",
			func(a ...scalar.Scalar) scalar.Scalar { return a[0].Add(f(100000)).Log() },
			func(x float64) float64 { return operators.Log(x + 100000) },
		},
		{
			"exp",
			func(a ...scalar.Scalar) scalar.Scalar { return a[0].Sub(f(100000)).Exp() },
			func(x float64) float64 { return operators.Exp(x - 100000) },
		},
		{
			"relu",
			func(a ...scalar.Scalar) scalar.Scalar { return a[0].Add(f(5.5)).ReLU() },
			func(x float64) float64 { return operators.ReLU(x + 5.5) },
		},
	}
}

type twoArg struct {
	name string
	fn   scalar.Func
	skip func(a, b float64) bool // Points too close to a discontinuity
}

func twoArgFuncs() []twoArg {
	f := scalar.Float
	never := func(_, _ float64) bool { return false }
	nearEdge := func(a, b float64) bool { return math.Abs(a+1.2-b) < 1e-3 }
	return []twoArg{
		{"add", func(a ...scalar.Scalar) scalar.Scalar { return a[0].Add(a[1]) }, never},
		{"gt", func(a ...scalar.Scalar) scalar.Scalar { return a[0].Add(f(1.2)).GT(a[1]) }, nearEdge},
		{"lt", func(a ...scalar.Scalar) scalar.Scalar { return a[0].Add(f(1.2)).LT(a[1]) }, nearEdge},
		{"mul", func(a ...scalar.Scalar) scalar.Scalar { return a[0].Mul(a[1]) }, never},
		{
			"div",
			func(a ...scalar.Scalar) scalar.Scalar { return a[0].Div(a[1].Add(f(5.5))) },
			func(_, b float64) bool { return math.Abs(b+5.5) < 1 },
		},
	}
}

// samples returns n deterministic values in [-100, 100).
func samples(n int, seed uint64) []float64 {
	r := rand.New(rand.NewPCG(seed, 3))
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = r.Float64()*200 - 100
	}
	return vals
}

func TestOneArg_Forward(t *testing.T) {
	for _, tt := range oneArgFuncs() {
		t.Run(tt.name, func(t *testing.T) {
			for _, x := range samples(20, 1) {
				got := scalar.Eval(tt.fn, x)
				assert.InDelta(t, tt.ref(x), got, 1e-2, "x=%g", x)
			}
		})
	}
}

func TestOneArg_Derivative(t *testing.T) {
	for _, tt := range oneArgFuncs() {
		t.Run(tt.name, func(t *testing.T) {
			for _, x := range samples(20, 2) {
				if tt.name == "relu" && math.Abs(x+5.5) < 1e-3 {
					continue
				}
				require.NoError(t, scalar.DerivativeCheck(tt.fn, []float64{x}))
			}
		})
	}
}

func TestTwoArg_Derivative(t *testing.T) {
	for _, tt := range twoArgFuncs() {
		t.Run(tt.name, func(t *testing.T) {
			as, bs := samples(20, 3), samples(20, 4)
			for i := range as {
				if tt.skip(as[i], bs[i]) {
					continue
				}
				require.NoError(t, scalar.DerivativeCheck(tt.fn, []float64{as[i], bs[i]}))
			}
		})
	}
}

func TestCentralDifference(t *testing.T) {
	mul := func(a ...scalar.Scalar) scalar.Scalar { return a[0].Mul(a[1]) }
	assert.InDelta(t, 10.0, scalar.CentralDifference(mul, []float64{5, 10}, 0, 1e-6), 1e-4)
	assert.InDelta(t, 5.0, scalar.CentralDifference(mul, []float64{5, 10}, 1, 1e-6), 1e-4)
}

func TestDerivativeCheck_Mismatch(t *testing.T) {
	// A function whose backward is deliberately wrong: forward x², backward 1.
	bad := func(a ...scalar.Scalar) scalar.Scalar {
		return scalar.Wrap(a[0].Graph().Apply(badSquare{}, a[0]))
	}
	err := scalar.DerivativeCheck(bad, []float64{3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gradcheck.ErrMismatch))
}

func TestDerivativeCheck_ForwardError(t *testing.T) {
	inv := func(a ...scalar.Scalar) scalar.Scalar {
		return scalar.Wrap(a[0].Graph().Apply(scalar.Inv{}, a[0]))
	}
	var err error
	require.NotPanics(t, func() { err = scalar.DerivativeCheck(inv, []float64{0}) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forward failed")
}

type badSquare struct{}

func (badSquare) Name() string { return "BadSquare" }

func (badSquare) Forward(_ *autodiff.Context, in ...float64) float64 { return in[0] * in[0] }

func (badSquare) Backward(_ *autodiff.Context, d float64) []float64 { return []float64{d} }

func TestScalar_Expression(t *testing.T) {
	g := scalar.NewGraph()
	x := scalar.New(g, 10, autodiff.WithName("x"))
	y := x.Add(scalar.Float(10)).Mul(scalar.Float(20))
	y.SetName("y")

	assert.Equal(t, 400.0, y.Data())
	assert.Equal(t, "y", y.Name())
	assert.Equal(t, "Scalar(400.000000)", y.String())

	require.NoError(t, y.Backward())
	assert.Equal(t, 20.0, x.Grad())
}

func TestScalar_SharedSubexpression(t *testing.T) {
	g := scalar.NewGraph()
	x := scalar.New(g, 3)
	y := scalar.New(g, 2)

	// z = (x·y) + (x·y)·x, dz/dx = y + 2xy = 14, dz/dy = x + x² = 12
	xy := x.Mul(y)
	z := xy.Add(xy.Mul(x))
	require.NoError(t, z.Backward())
	assert.InDelta(t, 14.0, x.Grad(), 1e-12)
	assert.InDelta(t, 12.0, y.Grad(), 1e-12)
}

func TestScalar_Comparisons(t *testing.T) {
	g := scalar.NewGraph()
	a := scalar.New(g, 1)
	b := scalar.New(g, 2)

	assert.Equal(t, 1.0, a.LT(b).Data())
	assert.Equal(t, 0.0, a.GT(b).Data())
	assert.Equal(t, 1.0, b.GT(a).Data())
	assert.Equal(t, 0.0, a.EQ(b).Data())
	assert.Equal(t, 1.0, a.EQ(scalar.Float(1)).Data())
}

func TestScalar_DivByZero(t *testing.T) {
	g := scalar.NewGraph()
	a := scalar.New(g, 1)

	_, err := g.TryApply(scalar.Inv{}, scalar.Float(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, operators.ErrDivisionByZero))
	assert.Panics(t, func() { a.Div(scalar.Float(0)) })
}

func TestScalar_ConstantHasNoGrad(t *testing.T) {
	g := scalar.NewGraph()
	x := scalar.New(g, 2)
	c := scalar.Constant(g, 3)
	require.NoError(t, x.Mul(c).Backward())
	assert.Equal(t, 3.0, x.Grad())
	assert.Equal(t, 0.0, c.Grad())
}
