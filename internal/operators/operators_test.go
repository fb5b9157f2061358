package operators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePoints = []float64{-100, -12.5, -1, -1e-3, 0, 1e-3, 0.5, 1, 7.25, 100}

func TestSameAsPrimitives(t *testing.T) {
	for _, x := range samplePoints {
		for _, y := range samplePoints {
			assert.Equal(t, x*y, Mul(x, y))
			assert.Equal(t, x+y, Add(x, y))
			assert.Equal(t, -x, Neg(x))
			assert.Equal(t, math.Max(x, y), Max(x, y))
			if x != 0 {
				assert.InDelta(t, 1.0/x, Inv(x), 1e-12)
			}
		}
	}
}

func TestRelationalOperators(t *testing.T) {
	for _, x := range samplePoints {
		for _, y := range samplePoints {
			switch {
			case x < y:
				assert.Equal(t, 1.0, LT(x, y))
				assert.Equal(t, 0.0, EQ(x, y))
			case x > y:
				assert.Equal(t, 0.0, LT(x, y))
				assert.Equal(t, 0.0, EQ(x, y))
			default:
				assert.Equal(t, 0.0, LT(x, y))
				assert.Equal(t, 1.0, EQ(x, y))
			}
		}
	}
}

func TestID(t *testing.T) {
	for _, x := range samplePoints {
		assert.Equal(t, x, ID(x))
	}
}

func TestSigmoid(t *testing.T) {
	assert.Equal(t, 0.5, Sigmoid(0))
	for _, x := range samplePoints {
		s := Sigmoid(x)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
		assert.InDelta(t, 1.0-s, Sigmoid(-x), 1e-9)
		assert.LessOrEqual(t, Sigmoid(x), Sigmoid(x+1.0))
	}

	// No overflow on either tail.
	assert.InDelta(t, 0.0, Sigmoid(-1000), 1e-12)
	assert.InDelta(t, 1.0, Sigmoid(1000), 1e-12)
	assert.False(t, math.IsNaN(Sigmoid(-1000)))
}

func TestReLU(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
		back float64
	}{
		{"positive", 3.5, 3.5, 2.0},
		{"zero", 0, 0, 0},
		{"negative", -3.5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReLU(tt.x))
			assert.Equal(t, tt.back, ReLUBack(tt.x, 2.0))
		})
	}
}

func TestLogAndBack(t *testing.T) {
	assert.InDelta(t, math.Log(EPS), Log(0), 1e-12)
	assert.False(t, math.IsInf(Log(0), 0))
	assert.InDelta(t, 0.0, Log(1-EPS), 1e-12)
	assert.InDelta(t, 5.0/(2+EPS), LogBack(2, 5), 1e-12)
	assert.False(t, math.IsInf(LogBack(0, 1), 0))
}

func TestInv(t *testing.T) {
	_, err := InvE(0)
	require.ErrorIs(t, err, ErrDivisionByZero)
	assert.PanicsWithError(t, ErrDivisionByZero.Error(), func() { Inv(0) })

	v, err := InvE(4)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	assert.InDelta(t, -3.0/4.0, InvBack(2, 3), 1e-12)
}

func TestExp(t *testing.T) {
	assert.Equal(t, 1.0, Exp(0))
	assert.InDelta(t, math.E, Exp(1), 1e-12)
}

func TestIsClose(t *testing.T) {
	assert.True(t, IsClose(1.0, 1.005))
	assert.False(t, IsClose(1.0, 1.02))
}

func TestMapZipReduce(t *testing.T) {
	ls := []float64{1, 2, 3, 4}

	assert.Equal(t, []float64{-1, -2, -3, -4}, NegList(ls))
	assert.Equal(t, []float64{2, 4, 6, 8}, AddLists(ls, ls))
	assert.Equal(t, 10.0, Sum(ls))
	assert.Equal(t, 24.0, Prod(ls))
	assert.Equal(t, 0.0, Sum(nil))
	assert.Equal(t, 1.0, Prod(nil))
	assert.Equal(t, 60, ProdInts([]int{3, 4, 5}))

	strs := Map(func(x float64) string {
		if x > 2 {
			return "big"
		}
		return "small"
	})(ls)
	assert.Equal(t, []string{"small", "small", "big", "big"}, strs)

	assert.Panics(t, func() { AddLists(ls, ls[:2]) })
}

func TestReduceIsLeftFold(t *testing.T) {
	// With a non-commutative fn the fold order is observable.
	sub := func(acc, x float64) float64 { return acc - x }
	assert.Equal(t, 10.0-1-2-3, Reduce(sub, 10.0)([]float64{1, 2, 3}))

	concat := func(acc string, x string) string { return "(" + acc + x + ")" }
	assert.Equal(t, "(((sa)b)c)", Reduce(concat, "s")([]string{"a", "b", "c"}))
}

func TestSumDistribute(t *testing.T) {
	ls1 := []float64{1.5, -2, 3.25}
	ls2 := []float64{0.5, 4, -1}
	assert.InDelta(t, Sum(ls1)+Sum(ls2), Sum(AddLists(ls1, ls2)), 1e-12)
}
