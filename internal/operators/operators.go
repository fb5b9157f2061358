// Package operators implements the scalar math primitives used by the
// autodiff engine, each paired (where differentiable) with its backward rule.
//
// All functions are pure. Log and the backward rules for Log and Inv add a
// small EPS to avoid domain errors at zero; Inv itself does not.
package operators

import (
	"errors"
	"math"
)

// EPS is the additive offset used by Log and LogBack.
const EPS = 1e-6

// ErrDivisionByZero is returned by InvE for an exact zero argument.
var ErrDivisionByZero = errors.New("division by zero")

// ID returns x unchanged.
func ID(x float64) float64 {
	return x
}

// Neg returns -x.
func Neg(x float64) float64 {
	return -x
}

// Add returns x + y.
func Add(x, y float64) float64 {
	return x + y
}

// Mul returns x * y.
func Mul(x, y float64) float64 {
	return x * y
}

// LT returns 1.0 if x < y, else 0.0.
func LT(x, y float64) float64 {
	if x < y {
		return 1.0
	}
	return 0.0
}

// EQ returns 1.0 if x == y, else 0.0.
func EQ(x, y float64) float64 {
	if x == y {
		return 1.0
	}
	return 0.0
}

// Max returns x if x > y, else y.
func Max(x, y float64) float64 {
	if x > y {
		return x
	}
	return y
}

// IsClose reports whether x and y differ by less than 1e-2.
func IsClose(x, y float64) bool {
	return math.Abs(x-y) < 1e-2
}

// Sigmoid computes 1 / (1 + e^-x).
//
// The formula is split at x >= 0 so that math.Exp never receives a large
// positive argument.
func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}

// ReLU returns x if x > 0, else 0.
func ReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0.0
}

// ReLUBack returns d if x > 0, else 0.
func ReLUBack(x, d float64) float64 {
	if x > 0 {
		return d
	}
	return 0.0
}

// Log computes log(x + EPS).
func Log(x float64) float64 {
	return math.Log(x + EPS)
}

// LogBack returns d / (x + EPS).
func LogBack(x, d float64) float64 {
	return d / (x + EPS)
}

// Exp computes e^x.
func Exp(x float64) float64 {
	return math.Exp(x)
}

// Inv computes 1/x. It panics with ErrDivisionByZero when x is exactly zero;
// use InvE to get the error instead.
func Inv(x float64) float64 {
	v, err := InvE(x)
	if err != nil {
		panic(err)
	}
	return v
}

// InvE computes 1/x, returning ErrDivisionByZero when x is exactly zero.
func InvE(x float64) (float64, error) {
	if x == 0 {
		return 0, ErrDivisionByZero
	}
	return 1.0 / x, nil
}

// InvBack returns -d / x².
func InvBack(x, d float64) float64 {
	return -(1.0 / (x * x)) * d
}
