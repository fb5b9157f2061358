package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/born-ml/minigrad/internal/autodiff/ops"
	"github.com/born-ml/minigrad/internal/optim"
	"github.com/born-ml/minigrad/internal/serialization"
	"github.com/born-ml/minigrad/internal/tensor"
)

// runFit fits y = slope·x + intercept by gradient descent on a fixed grid
// of points, optionally saving the fitted parameters.
func runFit(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("fit", flag.ContinueOnError)
	fs.SetOutput(w)
	slope := fs.Float64("slope", 2, "Slope of the target line.")
	intercept := fs.Float64("intercept", 1, "Intercept of the target line.")
	steps := fs.Int("steps", 200, "Number of gradient descent steps.")
	lr := fs.Float64("lr", 0.2, "Learning rate.")
	out := fs.String("out", "", "Save the fitted parameters to this SafeTensors file.")
	progress := fs.Bool("progress", false, "Show a progress bar on stderr.")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "fit")
	}
	if *steps <= 0 {
		return errors.Errorf("-steps must be positive, got %d", *steps)
	}

	xs := must.M1(tensor.FromSlice([]float64{-1, -0.5, 0, 0.5, 1}, tensor.Shape{5}))
	ys := tensor.Map(func(x float64) float64 { return *slope*x + *intercept }, xs)

	weight := optim.NewParameter("weight", tensor.Zeros(tensor.Shape{1}))
	bias := optim.NewParameter("bias", tensor.Zeros(tensor.Shape{1}))
	opt := optim.NewSGD([]*optim.Parameter[*tensor.TensorData]{weight, bias}, optim.SGDConfig{LR: *lr}, ops.Algebra{})

	var bar *progressbar.ProgressBar
	if *progress {
		bar = progressbar.NewOptions(*steps,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Fitting: "),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("steps"),
			progressbar.OptionSetTheme(progressbar.ThemeUnicode),
			progressbar.OptionClearOnFinish(),
		)
	}

	var loss float64
	for step := range *steps {
		g := ops.NewGraph()
		wt, bt := ops.Wrap(weight.Bind(g)), ops.Wrap(bias.Bind(g))
		diff := wt.Mul(ops.Raw(xs)).Add(bt).Sub(ops.Raw(ys))
		l := diff.Mul(diff).Mean(0)
		loss = l.Data().Item()
		if err := l.Backward(); err != nil {
			return errors.WithMessagef(err, "step %d", step)
		}
		opt.Step()
		klog.V(2).Infof("fit: step %d loss %g", step, loss)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	fmt.Fprintf(w, "weight=%.4f bias=%.4f loss=%.6g\n", weight.Value().Item(), bias.Value().Item(), loss)

	if *out == "" {
		return nil
	}
	params := map[string]*tensor.TensorData{
		weight.Name(): weight.Value(),
		bias.Name():   bias.Value(),
	}
	metadata := map[string]string{
		"run":   uuid.NewString(),
		"steps": strconv.Itoa(*steps),
		"lr":    strconv.FormatFloat(*lr, 'g', -1, 64),
	}
	if err := serialization.SaveFile(*out, params, metadata); err != nil {
		return err
	}
	info, err := os.Stat(*out)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %s", *out)
	}
	fmt.Fprintf(w, "saved %d tensors (%s) to %s\n", len(params), humanize.Bytes(uint64(info.Size())), *out)
	return nil
}
