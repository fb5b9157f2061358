package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/born-ml/minigrad/internal/tensor"
)

func runBroadcast(w io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("broadcast: expected two shapes, e.g. 'broadcast 5,1 1,5'")
	}
	a, err := tensor.ParseShape(args[0])
	if err != nil {
		return errors.Wrapf(err, "broadcast: first shape %q", args[0])
	}
	b, err := tensor.ParseShape(args[1])
	if err != nil {
		return errors.Wrapf(err, "broadcast: second shape %q", args[1])
	}
	union, err := tensor.ShapeBroadcast(a, b)
	if err != nil {
		return errors.WithMessage(err, "broadcast")
	}
	fmt.Fprintf(w, "%v + %v -> %v\n", a, b, union)
	return nil
}

func runLayout(w io.Writer, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("layout: expected SHAPE [STRIDES], e.g. 'layout 3,5 1,3'")
	}
	shape, err := tensor.ParseShape(args[0])
	if err != nil {
		return errors.Wrapf(err, "layout: shape %q", args[0])
	}
	var strides tensor.Strides
	if len(args) == 2 {
		strides, err = tensor.ParseStrides(args[1])
		if err != nil {
			return errors.Wrapf(err, "layout: strides %q", args[1])
		}
	}

	td, err := tensor.New(make([]float64, shape.NumElements()), shape, strides)
	if err != nil {
		return errors.WithMessage(err, "layout")
	}
	fmt.Fprintf(w, "shape %v strides %v contiguous=%t\n", td.Shape(), tensor.Shape(td.Strides()), td.IsContiguous())
	for index := range td.Indices() {
		pos, _ := td.Index(index...)
		fmt.Fprintf(w, "  %v -> %d\n", tensor.Shape(index), pos)
	}
	return nil
}
