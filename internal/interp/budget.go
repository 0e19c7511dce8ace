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
package interp

import "math"

// DefaultBudget bounds the number of IR nodes a single const-evaluation may
// visit, guarding against runaway recursive const fns.
const DefaultBudget = 1_000_000

// UnboundedBudget disables step counting entirely (Take never fails). Only
// appropriate for trusted, offline compilation (config.Options.Unrestricted).
const UnboundedBudget uint64 = math.MaxUint64

// Budget is a simple step counter consulted before every node evaluation.
type Budget struct {
	remaining uint64
	unbounded bool
}

// NewBudget constructs a Budget with n steps remaining. n == UnboundedBudget
// disables the check, matching cycle detection (ErrConstCycle) as the only
// remaining guard against non-termination.
func NewBudget(n uint64) *Budget {
	return &Budget{remaining: n, unbounded: n == UnboundedBudget}
}

// Take consumes one step, returning ErrBudgetExceeded once none remain.
func (b *Budget) Take() error {
	if b.unbounded {
		return nil
	}

	if b.remaining == 0 {
		return ErrBudgetExceeded
	}

	b.remaining--

	return nil
}

// Remaining reports the number of steps left.
func (b *Budget) Remaining() uint64 {
	return b.remaining
}
