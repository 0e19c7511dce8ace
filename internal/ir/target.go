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

// Package ir implements the reduced tree consumed by the constant
// evaluator: the IR Compiler's lowering target and the IR Interpreter's
// input.
package ir

import "github.com/runelang/rune-core/internal/source"

// Target is a place expression usable as the L-value of assignment and
// compound mutation within the interpreter.
type Target interface {
	isTarget()
	Span() source.Span
}

type targetBase struct {
	span source.Span
}

func (t targetBase) Span() source.Span { return t.span }
func (targetBase) isTarget()           {}

// Name is a place expression naming a local binding.
type Name struct {
	targetBase
	Ident string
}

// NewName constructs a Name target.
func NewName(span source.Span, ident string) *Name { return &Name{targetBase{span}, ident} }

// Field is a place expression naming a field of another target.
type Field struct {
	targetBase
	Base Target
	Name string
}

// NewField constructs a Field target.
func NewField(span source.Span, base Target, name string) *Field {
	return &Field{targetBase{span}, base, name}
}

// Index is a place expression naming an index of another target.
type Index struct {
	targetBase
	Base  Target
	Index uint
}

// NewIndex constructs an Index target.
func NewIndex(span source.Span, base Target, index uint) *Index {
	return &Index{targetBase{span}, base, index}
}
