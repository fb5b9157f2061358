// Package main provides the minigrad CLI: derivative checks, tensor
// layout inspection and a small gradient descent demo.
//
// Usage:
//
//	minigrad version
//	minigrad gradcheck [-seed N] [-samples N] [-eps E] [-rtol R] [-atol A] [-color]
//	minigrad broadcast 5,1,5 1,5,1
//	minigrad layout 3,5 [1,3]
//	minigrad fit [-slope S] [-intercept B] [-steps N] [-lr LR] [-out FILE] [-progress]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const version = "v0.1.0"

func usage(w io.Writer) {
	fmt.Fprintf(w, "minigrad %s - minimal automatic differentiation\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                    Show version")
	fmt.Fprintln(w, "  gradcheck [flags]          Check every built-in function against central differences")
	fmt.Fprintln(w, "  broadcast SHAPE SHAPE      Print the broadcast of two shapes")
	fmt.Fprintln(w, "  layout SHAPE [STRIDES]     Print the index to position mapping of a layout")
	fmt.Fprintln(w, "  fit [flags]                Fit a line by gradient descent")
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() { usage(flag.CommandLine.Output()) }
	flag.Parse()
	defer klog.Flush()

	var err error
	if exception := exceptions.TryCatch[error](func() { err = run(os.Stdout, flag.Args()) }); exception != nil {
		err = exception
	}
	if err != nil {
		klog.Errorf("minigrad: %+v", err)
		klog.Flush()
		os.Exit(1)
	}
}

// run dispatches a subcommand, writing its output to w.
func run(w io.Writer, args []string) error {
	if len(args) == 0 {
		usage(w)
		return nil
	}
	switch cmd, rest := args[0], args[1:]; cmd {
	case "version":
		fmt.Fprintf(w, "minigrad %s\n", version)
		return nil
	case "gradcheck":
		return runGradCheck(w, rest)
	case "broadcast":
		return runBroadcast(w, rest)
	case "layout":
		return runLayout(w, rest)
	case "fit":
		return runFit(w, rest)
	default:
		usage(w)
		return errors.Errorf("unknown command %q", cmd)
	}
}
