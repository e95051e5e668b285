// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks as autodiff graphs.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Sequential, Module interface
//   - Activations: Sigmoid, Tanh, Softplus, Exp
//   - Softmax over a column vector (max-shifted and naive)
//   - Loss functions: MSE, SSE, CrossEntropy, BinaryCrossEntropy
//   - Initialization: Xavier, Zeros
//
// Every layer and loss returns expressions over the inputs and parameters,
// so one autodiff.Backward on the loss fills every parameter derivative.
//
// # Basic Usage
//
//	rng := rand.New(rand.NewSource(1))
//	l1, _ := nn.NewLinear("fc1", 2, 4, rng)
//	l2, _ := nn.NewLinear("fc2", 4, 1, rng)
//	model := nn.NewSequential(l1, nn.Activation(nn.Tanh), l2)
//
//	out, _ := model.Forward(x)
//	loss, _ := nn.MSE(out, y)
//	_, _ = loss.Forward()
//	_ = autodiff.Backward(loss)
package nn
