// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides plain gradient descent over autodiff parameters.
//
// # Overview
//
// This package contains:
//   - Parameter: a trainable value that outlives the graphs it is bound to
//   - SGD: gradient descent, param = param - lr * gradient
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/minigrad/optim"
//	    "github.com/born-ml/minigrad/scalar"
//	)
//
//	func main() {
//	    w := optim.NewParameter("w", 0.0)
//	    opt := optim.NewScalarSGD([]*optim.Parameter[float64]{w}, optim.SGDConfig{LR: 0.1})
//
//	    for range 100 {
//	        g := scalar.NewGraph()
//	        x := scalar.Wrap(w.Bind(g))
//	        d := x.Sub(scalar.Float(3))
//	        if err := d.Mul(d).Backward(); err != nil {
//	            log.Fatal(err)
//	        }
//	        opt.Step()
//	    }
//	    fmt.Println(w.Value()) // ≈ 3
//	}
//
// Graph values are immutable: every iteration binds the parameters to a new
// graph and Step writes the updated values back into the parameters.
package optim
