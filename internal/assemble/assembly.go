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
package assemble

import (
	"fmt"

	"github.com/runelang/rune-core/internal/source"
	"github.com/runelang/rune-core/internal/value"
)

// Entry pairs one emitted Instruction with the source span it was emitted
// for, so a runtime fault can be reported against the originating text.
type Entry struct {
	Instr Instruction
	Span  source.Span
}

// Assembly is the Assembler's emitted artifact: an ordered instruction
// stream, a label table resolving jump targets to stream positions, and a
// deduplicated constant pool. Built once per compile unit and handed to the
// runtime immutable thereafter.
type Assembly struct {
	Entries []Entry
	Consts  []value.ConstValue
	Labels  map[string]int

	nextLabel int
}

// NewAssembly constructs an empty Assembly.
func NewAssembly() *Assembly {
	return &Assembly{Labels: make(map[string]int)}
}

// Emit appends one instruction to the stream.
func (a *Assembly) Emit(i Instruction, span source.Span) {
	a.Entries = append(a.Entries, Entry{Instr: i, Span: span})
}

// NewLabel allocates a fresh, uniquely-named label for a jump target not
// tied to a named item (loop starts/ends, if/else branches).
func (a *Assembly) NewLabel(prefix string) string {
	a.nextLabel++
	return fmt.Sprintf("%s$%d", prefix, a.nextLabel)
}

// MarkLabel records name as resolving to the current end of the stream.
func (a *Assembly) MarkLabel(name string, _ source.Span) {
	a.Labels[name] = len(a.Entries)
}

// InternConst returns the constant pool index for v, reusing an existing
// equal entry rather than duplicating it.
func (a *Assembly) InternConst(v value.ConstValue) int {
	for i, c := range a.Consts {
		if c.Equals(v) {
			return i
		}
	}

	a.Consts = append(a.Consts, v)

	return len(a.Consts) - 1
}
