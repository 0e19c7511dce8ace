// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package config collects the handful of options cmd/runec exposes on its
// command line and passes down into the compiler: the const-fn evaluation
// budget, whether to disable budget enforcement, and verbosity.
package config

import "github.com/runelang/rune-core/internal/interp"

// DefaultBudget mirrors internal/interp.DefaultBudget so callers can see
// the effective default without importing the interpreter package.
const DefaultBudget = interp.DefaultBudget

// Options configures one compile run.
type Options struct {
	// Budget caps the number of reduction steps a const fn evaluation may
	// take before interp.ErrBudgetExceeded is raised. Zero means unset and
	// is replaced by DefaultBudget at the call site.
	Budget uint

	// Unrestricted disables the budget check entirely, running const fns
	// to completion (or to a cycle error) no matter how long they take.
	// Intended for trusted, offline compilation, not for compiling
	// untrusted scripts.
	Unrestricted bool

	// Verbose raises logging to logrus.DebugLevel and mirrors the collected
	// diagnostic warnings to the log once assembly finishes.
	Verbose bool
}

// Default returns the options a bare `runec compile` invocation uses: the
// interpreter's default budget, budget enforcement on, normal verbosity.
func Default() Options {
	return Options{Budget: DefaultBudget}
}

// EffectiveBudget returns the budget EvalExpr should run with: o.Budget if
// set, DefaultBudget otherwise, or interp.UnboundedBudget if o.Unrestricted.
func (o Options) EffectiveBudget() uint64 {
	if o.Unrestricted {
		return interp.UnboundedBudget
	}

	if o.Budget == 0 {
		return DefaultBudget
	}

	return uint64(o.Budget)
}
