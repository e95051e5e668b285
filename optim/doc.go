// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient descent over autodiff Variables.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//   - Minimize: the reset, forward, backward, step loop
//
// # Basic Usage
//
//	params := model.Parameters()
//	optimizer := optim.NewSGD(params, optim.SGDConfig{LR: 0.05, Momentum: 0.9})
//
//	history, err := optim.Minimize(loss, optimizer, 200)
//
// # Training Loop Pattern
//
//	for step := range steps {
//	    loss.Reset()
//	    if _, err := loss.Forward(); err != nil {
//	        return err
//	    }
//	    if err := autodiff.Backward(loss); err != nil {
//	        return err
//	    }
//	    optimizer.Step()
//	    optimizer.ZeroGrad()
//	}
package optim
