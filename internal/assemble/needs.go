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

// Package assemble implements the Assembler: it walks an HIR item tree and
// emits one Assembly (an ordered instruction stream plus constant pool),
// evaluating const items and const fn bodies along the way through
// internal/interp.
package assemble

// Needs is the three-valued hint every expression-emission path carries:
// whether the surrounding context requires the expression's value (Value),
// requires it along with type information the Assembler doesn't itself
// model (Type), or needs nothing at all (None).
type Needs int

// The three hint values.
const (
	NeedsNone Needs = iota
	NeedsType
	NeedsValue
)

// Value reports whether this hint requires a value on the stack: true for
// Type and Value, false for None.
func (n Needs) Value() bool {
	return n == NeedsType || n == NeedsValue
}
