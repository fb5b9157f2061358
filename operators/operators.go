// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package operators provides the scalar mathematical primitives used by the
// autodiff functions, and generic higher-order list helpers.
package operators

import "github.com/born-ml/minigrad/internal/operators"

// EPS is the offset used by Log and LogBack.
const EPS = operators.EPS

// ErrDivisionByZero is returned by InvE for a zero argument.
var ErrDivisionByZero = operators.ErrDivisionByZero

// Scalar primitives.
var (
	ID       = operators.ID
	Neg      = operators.Neg
	Add      = operators.Add
	Mul      = operators.Mul
	LT       = operators.LT
	EQ       = operators.EQ
	Max      = operators.Max
	IsClose  = operators.IsClose
	Sigmoid  = operators.Sigmoid
	ReLU     = operators.ReLU
	ReLUBack = operators.ReLUBack
	Log      = operators.Log
	LogBack  = operators.LogBack
	Exp      = operators.Exp
	Inv      = operators.Inv
	InvE     = operators.InvE
	InvBack  = operators.InvBack
)

// List helpers.
var (
	NegList  = operators.NegList
	AddLists = operators.AddLists
	Sum      = operators.Sum
	Prod     = operators.Prod
)

// Map lifts fn to a function over slices.
func Map[T, R any](fn func(T) R) func([]T) []R {
	return operators.Map(fn)
}

// ZipWith lifts fn to a function over two slices of equal length.
func ZipWith[A, B, R any](fn func(A, B) R) func([]A, []B) []R {
	return operators.ZipWith(fn)
}

// Reduce lifts fn to a left fold over slices starting at start.
func Reduce[T, R any](fn func(R, T) R, start R) func([]T) R {
	return operators.Reduce(fn, start)
}
