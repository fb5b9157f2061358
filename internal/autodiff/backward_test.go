package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/autodiff"
)

func TestChainRule(t *testing.T) {
	g := newGraph()
	v := g.Leaf(0, autodiff.WithName("x"))
	c := g.Constant(0)

	varIn := autodiff.Input[float64]{ID: v.ID(), Variable: true}
	constIn := autodiff.Input[float64]{ID: c.ID(), Variable: true}
	rawIn := autodiff.Input[float64]{Value: 0}

	savedTen := func() *autodiff.Context {
		ctx := autodiff.NewContext(false)
		ctx.SaveForBackward(10.0)
		ctx.Seal()
		return ctx
	}

	tests := []struct {
		name   string
		fn     autodiff.Function[float64]
		ctx    *autodiff.Context
		inputs []autodiff.Input[float64]
		want   []float64 // Gradients of v, in order
	}{
		{"only constants", identity{}, nil, []autodiff.Input[float64]{constIn, rawIn}, nil},
		{"variable and constant", identity{}, nil, []autodiff.Input[float64]{varIn, constIn}, []float64{5}},
		{"saved value used", scaled{}, savedTen(), []autodiff.Input[float64]{constIn, varIn}, []float64{50}},
		{"right output used", scaled{}, savedTen(), []autodiff.Input[float64]{varIn, constIn}, []float64{5}},
		{"same variable twice", identity{}, nil, []autodiff.Input[float64]{varIn, varIn}, []float64{5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &autodiff.History[float64]{Fn: tt.fn, Ctx: tt.ctx, Inputs: tt.inputs}
			got := g.ChainRule(h, 5)
			require.Len(t, got, len(tt.want))
			for i, vg := range got {
				assert.Equal(t, v.ID(), vg.Variable.ID())
				assert.Equal(t, "x", vg.Variable.Name())
				assert.Equal(t, tt.want[i], vg.Grad)
			}
		})
	}
}

func TestChainRule_ArityMismatch(t *testing.T) {
	g := newGraph()
	v := g.Leaf(1)
	h := &autodiff.History[float64]{
		Fn:     wrongArity{},
		Inputs: []autodiff.Input[float64]{{ID: v.ID(), Variable: true}, {Value: 2}},
	}
	assert.Panics(t, func() { g.ChainRule(h, 1) })
}

func TestBackward_Chains(t *testing.T) {
	zero := autodiff.Const(0.0)

	t.Run("single step", func(t *testing.T) {
		g := newGraph()
		v := g.Leaf(0)
		v2 := g.Apply(identity{}, zero, v)
		require.NoError(t, v2.BackwardWith(5))
		d, ok := v.Derivative()
		require.True(t, ok)
		assert.Equal(t, 5.0, d)
	})

	t.Run("two steps", func(t *testing.T) {
		g := newGraph()
		v := g.Leaf(0)
		v2 := g.Apply(identity{}, zero, v)
		v3 := g.Apply(identity{}, zero, v2)
		require.NoError(t, v3.BackwardWith(5))
		d, _ := v.Derivative()
		assert.Equal(t, 5.0, d)
	})

	t.Run("diamond", func(t *testing.T) {
		g := newGraph()
		v1 := g.Leaf(0)
		v2 := g.Apply(identity{}, zero, v1)
		v3 := g.Apply(identity{}, zero, v1)
		v4 := g.Apply(identity{}, v2, v3)
		require.NoError(t, v4.BackwardWith(5))
		d, _ := v1.Derivative()
		assert.Equal(t, 10.0, d)
	})

	t.Run("diamond behind a chain", func(t *testing.T) {
		g := newGraph()
		v0 := g.Leaf(0)
		v1 := g.Apply(identity{}, zero, v0)
		v2 := g.Apply(identity{}, zero, v1)
		v3 := g.Apply(identity{}, zero, v1)
		v4 := g.Apply(identity{}, v2, v3)
		require.NoError(t, v4.BackwardWith(5))
		d, _ := v0.Derivative()
		assert.Equal(t, 10.0, d)

		// Intermediate nodes never receive a derivative.
		_, ok := v1.Derivative()
		assert.False(t, ok)
	})
}

func TestBackward_Product(t *testing.T) {
	g := newGraph()
	x := g.Leaf(3, autodiff.WithName("x"))
	y := g.Leaf(4, autodiff.WithName("y"))

	// z = x·y·x = x²y
	z := g.Apply(mul{}, g.Apply(mul{}, x, y), x)
	require.Equal(t, 36.0, z.Value())
	require.NoError(t, z.Backward())

	dx, _ := x.Derivative()
	dy, _ := y.Derivative()
	assert.Equal(t, 24.0, dx) // 2xy
	assert.Equal(t, 9.0, dy)  // x²
}

func TestBackward_AccumulatesAcrossPasses(t *testing.T) {
	g := newGraph()
	x := g.Leaf(2)
	z := g.Apply(mul{}, x, x)

	require.NoError(t, z.Backward())
	require.NoError(t, z.Backward())
	d, _ := x.Derivative()
	assert.Equal(t, 8.0, d)

	x.ZeroGrad()
	_, ok := x.Derivative()
	assert.False(t, ok)

	require.NoError(t, z.Backward())
	d, _ = x.Derivative()
	assert.Equal(t, 4.0, d)
}

func TestBackward_SkipsConstants(t *testing.T) {
	g := newGraph()
	x := g.Leaf(2)
	c := g.Constant(7)
	z := g.Apply(mul{}, x, c)
	require.NoError(t, z.Backward())

	d, _ := x.Derivative()
	assert.Equal(t, 7.0, d)
	_, ok := c.Derivative()
	assert.False(t, ok)
}

func TestBackward_ErrorLeavesDerivativesUntouched(t *testing.T) {
	g := newGraph()
	x := g.Leaf(2)
	y := g.Leaf(3)
	bad := g.Apply(failing{}, x)
	z := g.Apply(mul{}, bad, y)

	err := z.Backward()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing backward")

	_, ok := x.Derivative()
	assert.False(t, ok)
	_, ok = y.Derivative()
	assert.False(t, ok, "y is reached before the failure but must not be updated")
}

func TestBackward_ArityErrorReported(t *testing.T) {
	g := newGraph()
	x := g.Leaf(1)
	z := g.Apply(wrongArity{}, x, autodiff.Const(2.0))
	err := z.Backward()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WrongArity")
}

func TestTopologicalOrder(t *testing.T) {
	g := newGraph()
	zero := autodiff.Const(0.0)
	v0 := g.Leaf(0)
	c := g.Constant(1)
	v1 := g.Apply(identity{}, c, v0)
	v2 := g.Apply(identity{}, zero, v1)
	v3 := g.Apply(identity{}, zero, v1)
	v4 := g.Apply(identity{}, v2, v3)

	order := g.TopologicalOrder(v4)
	require.Len(t, order, 5, "constants are skipped and shared nodes appear once")
	assert.Equal(t, v4.ID(), order[0].ID())
	assert.Equal(t, v0.ID(), order[len(order)-1].ID())

	pos := make(map[autodiff.NodeID]int, len(order))
	for i, v := range order {
		pos[v.ID()] = i
	}
	for _, v := range order {
		h := v.History()
		if h == nil {
			continue
		}
		for _, in := range h.Inputs {
			if p, ok := pos[in.ID]; in.IsVariable() && ok {
				assert.Less(t, pos[v.ID()], p, "%s must come before its input", v.Name())
			}
		}
	}
}

func TestTopologicalOrder_Leaf(t *testing.T) {
	g := newGraph()
	x := g.Leaf(1)
	order := g.TopologicalOrder(x)
	require.Len(t, order, 1)
	assert.Equal(t, x.ID(), order[0].ID())
}
