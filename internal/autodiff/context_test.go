package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/autodiff"
)

func TestContext_SaveOnce(t *testing.T) {
	ctx := autodiff.NewContext(false)
	ctx.SaveForBackward(1.5, "x")

	assert.Equal(t, []any{1.5, "x"}, ctx.SavedValues())
	assert.Equal(t, 1.5, autodiff.Saved[float64](ctx, 0))
	assert.Equal(t, "x", autodiff.Saved[string](ctx, 1))

	assert.Panics(t, func() { ctx.SaveForBackward(2.0) }, "second save must panic")
}

func TestContext_Sealed(t *testing.T) {
	ctx := autodiff.NewContext(false)
	require.False(t, ctx.IsSealed())
	ctx.Seal()
	require.True(t, ctx.IsSealed())

	assert.Panics(t, func() { ctx.SaveForBackward(1.0) })
	assert.Empty(t, ctx.SavedValues())
}

func TestContext_NoGrad(t *testing.T) {
	ctx := autodiff.NewContext(true)
	assert.True(t, ctx.NoGrad())

	ctx.SaveForBackward(1.0, 2.0)
	assert.Empty(t, ctx.SavedValues(), "no-grad context must not keep values")
}

func TestSaved_Errors(t *testing.T) {
	ctx := autodiff.NewContext(false)
	ctx.SaveForBackward(3.0)

	assert.Panics(t, func() { autodiff.Saved[float64](ctx, 1) }, "missing index")
	assert.Panics(t, func() { autodiff.Saved[int](ctx, 0) }, "wrong type")
	assert.Panics(t, func() { autodiff.Saved[float64](nil, 0) }, "nil context")
}

func TestContext_SaveOnceWithoutValues(t *testing.T) {
	tests := []struct {
		name   string
		noGrad bool
		first  []any
	}{
		{"no-grad context", true, []any{1.0}},
		{"empty save", false, nil},
		{"empty save in no-grad context", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := autodiff.NewContext(tt.noGrad)
			ctx.SaveForBackward(tt.first...)
			assert.Panics(t, func() { ctx.SaveForBackward(2.0) })
			assert.Empty(t, ctx.SavedValues())
		})
	}
}

func TestContext_SavedValuesIsACopy(t *testing.T) {
	ctx := autodiff.NewContext(false)
	ctx.SaveForBackward(1.0, 2.0)
	ctx.Seal()

	values := ctx.SavedValues()
	values[0] = 100.0
	assert.Equal(t, 1.0, autodiff.Saved[float64](ctx, 0))
	assert.Equal(t, []any{1.0, 2.0}, ctx.SavedValues())
}
