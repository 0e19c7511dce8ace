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
	"github.com/runelang/rune-core/internal/hir"
	"github.com/runelang/rune-core/internal/path"
)

// Instruction is one entry in an Assembly's instruction stream.  Pop/PopN/
// Clean are the three this core names explicitly; the rest (arithmetic,
// control flow, call) are referenced only opaquely by the host runtime
// that eventually executes an Assembly.
type Instruction interface {
	isInstruction()
}

// Pop discards the single value on top of the stack.
type Pop struct{}

// PopN discards the top Count values.
type PopN struct{ Count int }

// Clean discards the Count values beneath the top of the stack, leaving
// the top value in place.
type Clean struct{ Count int }

// PushConst pushes the constant pool entry at Index.
type PushConst struct{ Index int }

// LoadLocal pushes a copy of the local stack slot at Slot.
type LoadLocal struct{ Slot int }

// StoreLocal pops the top value and stores it into the local slot at Slot.
type StoreLocal struct{ Slot int }

// BinaryOp pops two values and pushes the result of applying Op.
type BinaryOp struct{ Op hir.BinOp }

// UnaryOp pops one value and pushes the result of applying Op.
type UnaryOp struct{ Op hir.UnOp }

// MakeTuple pops Count values and pushes a tuple built from them.
type MakeTuple struct{ Count int }

// MakeVec pops Count values and pushes a vector built from them.
type MakeVec struct{ Count int }

// MakeObject pops len(Keys) values and pushes an object pairing them with
// Keys in order.
type MakeObject struct{ Keys []string }

// FieldGet pops a value and pushes the named field of it.
type FieldGet struct{ Name string }

// IndexGet pops an index then a target value, and pushes the target's
// element at that index.
type IndexGet struct{}

// ForNext advances the for-loop iterator left on the stack by emitFor,
// binding its next element to Var, or jumps to the loop's break label once
// the iterator is exhausted.  Opaque control flow, like Jump/JumpIfFalse.
type ForNext struct{ Var string }

// Jump unconditionally transfers control to Label.
type Jump struct{ Label string }

// JumpIfFalse pops a boolean and transfers control to Label if it is false.
type JumpIfFalse struct{ Label string }

// CallOp invokes an ordinary (non-const) fn after its Argc arguments have
// already been pushed.
type CallOp struct {
	Callee path.Item
	Argc   int
}

func (Pop) isInstruction()         {}
func (PopN) isInstruction()        {}
func (Clean) isInstruction()       {}
func (PushConst) isInstruction()   {}
func (LoadLocal) isInstruction()   {}
func (StoreLocal) isInstruction()  {}
func (BinaryOp) isInstruction()    {}
func (UnaryOp) isInstruction()     {}
func (MakeTuple) isInstruction()   {}
func (MakeVec) isInstruction()     {}
func (MakeObject) isInstruction()  {}
func (FieldGet) isInstruction()    {}
func (IndexGet) isInstruction()    {}
func (ForNext) isInstruction()     {}
func (Jump) isInstruction()        {}
func (JumpIfFalse) isInstruction() {}
func (CallOp) isInstruction()      {}
