package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/minigrad/internal/autodiff/ops"
	"github.com/born-ml/minigrad/internal/gradcheck"
	"github.com/born-ml/minigrad/internal/scalar"
	"github.com/born-ml/minigrad/internal/tensor"
)

type scalarCase struct {
	name  string
	arity int
	fn    scalar.Func
}

type tensorCase struct {
	name   string
	shapes []tensor.Shape
	fn     ops.Func
}

// Functions are shifted away from their singularities and kinks so that
// random points in [-1, 1) are always well conditioned.
func scalarCases() []scalarCase {
	f := scalar.Float
	return []scalarCase{
		{"neg", 1, func(a ...scalar.Scalar) scalar.Scalar { return a[0].Neg() }},
		{"sub", 1, func(a ...scalar.Scalar) scalar.Scalar { return a[0].Sub(f(5)) }},
		{"div", 1, func(a ...scalar.Scalar) scalar.Scalar { return a[0].Div(f(5)) }},
		{"sigmoid", 1, func(a ...scalar.Scalar) scalar.Scalar { return a[0].Sigmoid() }},
		{"log", 1, func(a ...scalar.Scalar) scalar.Scalar { return a[0].Add(f(2)).Log() }},
		{"exp", 1, func(a ...scalar.Scalar) scalar.Scalar { return a[0].Exp() }},
		{"relu", 1, func(a ...scalar.Scalar) scalar.Scalar { return a[0].Add(f(5.5)).ReLU() }},
		{"add", 2, func(a ...scalar.Scalar) scalar.Scalar { return a[0].Add(a[1]) }},
		{"mul", 2, func(a ...scalar.Scalar) scalar.Scalar { return a[0].Mul(a[1]) }},
		{"div2", 2, func(a ...scalar.Scalar) scalar.Scalar { return a[0].Div(a[1].Add(f(5.5))) }},
		{"composite", 2, func(a ...scalar.Scalar) scalar.Scalar {
			return a[0].Mul(a[1]).Add(a[0].Exp()).Sigmoid()
		}},
	}
}

func tensorCases() []tensorCase {
	f := ops.Float
	one := []tensor.Shape{{2, 3}}
	return []tensorCase{
		{"neg", one, func(a ...ops.Tensor) ops.Tensor { return a[0].Neg() }},
		{"sigmoid", one, func(a ...ops.Tensor) ops.Tensor { return a[0].Sigmoid() }},
		{"log", one, func(a ...ops.Tensor) ops.Tensor { return a[0].Add(f(2)).Log() }},
		{"exp", one, func(a ...ops.Tensor) ops.Tensor { return a[0].Exp() }},
		{"inv", one, func(a ...ops.Tensor) ops.Tensor { return a[0].Add(f(3)).Inv() }},
		{"sum", one, func(a ...ops.Tensor) ops.Tensor { return a[0].Mul(a[0]).Sum(1) }},
		{"mean", one, func(a ...ops.Tensor) ops.Tensor { return a[0].Exp().Mean(0) }},
		{"permute", one, func(a ...ops.Tensor) ops.Tensor { return a[0].Permute(1, 0).Sigmoid() }},
		{"mul-broadcast", []tensor.Shape{{3, 1}, {4}}, func(a ...ops.Tensor) ops.Tensor { return a[0].Mul(a[1]) }},
		{"sub-broadcast", []tensor.Shape{{2, 1, 3}, {4, 1}}, func(a ...ops.Tensor) ops.Tensor { return a[0].Sub(a[1]) }},
	}
}

// runGradCheck checks every built-in scalar and tensor function at random
// points and prints a summary.
func runGradCheck(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("gradcheck", flag.ContinueOnError)
	fs.SetOutput(w)
	seed := fs.Uint64("seed", 42, "Seed of the random points.")
	samples := fs.Int("samples", 10, "Number of random points per function.")
	eps := fs.Float64("eps", gradcheck.DefaultEpsilon, "Step of the central difference.")
	rtol := fs.Float64("rtol", gradcheck.DefaultRTol, "Relative tolerance.")
	atol := fs.Float64("atol", gradcheck.DefaultATol, "Absolute tolerance.")
	color := fs.Bool("color", true, "Colorize the output on terminals.")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "gradcheck")
	}
	opts := []gradcheck.Option{gradcheck.WithEpsilon(*eps), gradcheck.WithTolerance(*rtol, *atol)}
	r := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	st := newStyles(w, *color)

	var passed, failed int
	report := func(kind, name string, err error) {
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s %s/%s: %v\n", st.fail.Render("FAIL"), kind, name, err)
			return
		}
		passed++
		klog.V(1).Infof("ok %s/%s", kind, name)
	}

	for _, c := range scalarCases() {
		for range *samples {
			vals := make([]float64, c.arity)
			for i := range vals {
				vals[i] = 2*r.Float64() - 1
			}
			report("scalar", c.name, scalar.DerivativeCheck(c.fn, vals, opts...))
		}
	}
	for _, c := range tensorCases() {
		for range *samples {
			inputs := make([]*tensor.TensorData, len(c.shapes))
			for i, shape := range c.shapes {
				inputs[i] = tensor.Rand(shape, r)
			}
			report("tensor", c.name, ops.GradCheck(c.fn, inputs, opts...))
		}
	}

	label := st.pass.Render("PASS")
	if failed > 0 {
		label = st.fail.Render("FAIL")
	}
	fmt.Fprintf(w, "%s gradcheck: %d passed, %d failed\n", label, passed, failed)
	if failed > 0 {
		return errors.Errorf("gradcheck: %d checks failed", failed)
	}
	return nil
}
