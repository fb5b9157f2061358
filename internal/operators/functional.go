package operators

import "fmt"

// Map returns a function applying fn to every element of a slice.
// The returned slice is always newly allocated.
func Map[T, R any](fn func(T) R) func([]T) []R {
	return func(ls []T) []R {
		out := make([]R, len(ls))
		for i, x := range ls {
			out[i] = fn(x)
		}
		return out
	}
}

// ZipWith returns a function combining two equally sized slices element by
// element. It panics if the lengths differ.
func ZipWith[A, B, R any](fn func(A, B) R) func([]A, []B) []R {
	return func(ls1 []A, ls2 []B) []R {
		if len(ls1) != len(ls2) {
			panic(fmt.Sprintf("zipWith: length mismatch %d vs %d", len(ls1), len(ls2)))
		}
		out := make([]R, len(ls1))
		for i := range ls1 {
			out[i] = fn(ls1[i], ls2[i])
		}
		return out
	}
}

// Reduce returns a left fold over a slice:
//
//	Reduce(fn, start)([x1, ..., xn]) = fn(...fn(fn(start, x1), x2)..., xn)
func Reduce[T, R any](fn func(R, T) R, start R) func([]T) R {
	return func(ls []T) R {
		acc := start
		for _, x := range ls {
			acc = fn(acc, x)
		}
		return acc
	}
}

// NegList negates every element of ls.
func NegList(ls []float64) []float64 {
	return Map(Neg)(ls)
}

// AddLists adds ls1 and ls2 element by element.
func AddLists(ls1, ls2 []float64) []float64 {
	return ZipWith(Add)(ls1, ls2)
}

// Sum adds up all elements of ls. An empty slice sums to 0.
func Sum(ls []float64) float64 {
	return Reduce(Add, 0.0)(ls)
}

// Prod multiplies all elements of ls. An empty slice has product 1.
func Prod(ls []float64) float64 {
	return Reduce(Mul, 1.0)(ls)
}

// ProdInts multiplies integer dimension sizes, used for shape sizes.
func ProdInts(ls []int) int {
	return Reduce(func(acc, x int) int { return acc * x }, 1)(ls)
}
