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
package hir

import (
	"github.com/runelang/rune-core/internal/meta"
	"github.com/runelang/rune-core/internal/path"
	"github.com/runelang/rune-core/internal/source"
)

// Item is any top-level or nested declaration the Assembler walks: the
// leading-token dispatch table (`use | enum | struct | impl | (async) fn |
// mod | const | ident(macro-call)`) resolves each parsed form to one of
// these shapes before assembly begins.
type Item interface {
	Span() source.Span
	Path() path.Item
	isItem()
}

type itemBase struct {
	span source.Span
	path path.Item
}

func (b itemBase) Span() source.Span { return b.span }
func (b itemBase) Path() path.Item   { return b.path }
func (itemBase) isItem()             {}

// FnItem is an ordinary (non-const) function: its body may contain
// arbitrary side-effecting constructs.
type FnItem struct {
	itemBase
	Visibility meta.Visibility
	Args       []string
	Body       Expr
	DocComment string
}

// NewFnItem constructs a FnItem.
func NewFnItem(span source.Span, p path.Item, vis meta.Visibility, args []string, body Expr, doc string) *FnItem {
	return &FnItem{itemBase{span, p}, vis, args, body, doc}
}

// ConstItem is a top-level `const NAME = EXPR;` declaration.
type ConstItem struct {
	itemBase
	Visibility meta.Visibility
	Value      Expr
	DocComment string
}

// NewConstItem constructs a ConstItem.
func NewConstItem(span source.Span, p path.Item, vis meta.Visibility, value Expr, doc string) *ConstItem {
	return &ConstItem{itemBase{span, p}, vis, value, doc}
}

// ConstFnItem is a `const fn NAME(args) { body }` declaration: invokable
// by the IR Interpreter, unlike FnItem.
type ConstFnItem struct {
	itemBase
	Visibility meta.Visibility
	Args       []string
	Body       Expr
	DocComment string
}

// NewConstFnItem constructs a ConstFnItem.
func NewConstFnItem(span source.Span, p path.Item, vis meta.Visibility, args []string, body Expr, doc string) *ConstFnItem {
	return &ConstFnItem{itemBase{span, p}, vis, args, body, doc}
}

// ModuleItem groups nested items under one path component.
type ModuleItem struct {
	itemBase
	Visibility meta.Visibility
	Items      []Item
	DocComment string
}

// NewModuleItem constructs a ModuleItem.
func NewModuleItem(span source.Span, p path.Item, vis meta.Visibility, items []Item, doc string) *ModuleItem {
	return &ModuleItem{itemBase{span, p}, vis, items, doc}
}

// StructItem declares a named struct shape.  The Assembler only needs its
// existence (to register a Struct meta); field layout is a host/runtime
// concern outside this core.
type StructItem struct {
	itemBase
	Visibility meta.Visibility
	Fields     []string
}

// NewStructItem constructs a StructItem.
func NewStructItem(span source.Span, p path.Item, vis meta.Visibility, fields []string) *StructItem {
	return &StructItem{itemBase{span, p}, vis, fields}
}

// EnumItem declares a named enum with its variants.
type EnumItem struct {
	itemBase
	Visibility meta.Visibility
	Variants   []string
}

// NewEnumItem constructs an EnumItem.
func NewEnumItem(span source.Span, p path.Item, vis meta.Visibility, variants []string) *EnumItem {
	return &EnumItem{itemBase{span, p}, vis, variants}
}

// ImplItem declares an impl block attaching methods to a target type.
type ImplItem struct {
	itemBase
	Target path.Item
	Items  []Item
}

// NewImplItem constructs an ImplItem.
func NewImplItem(span source.Span, p, target path.Item, items []Item) *ImplItem {
	return &ImplItem{itemBase{span, p}, target, items}
}

// UseItem is a `use` import. The parser records it as written; it is not
// applied to name resolution and introduces no meta of its own.
type UseItem struct {
	itemBase
	Imported path.Item
}

// NewUseItem constructs a UseItem.
func NewUseItem(span source.Span, p, imported path.Item) *UseItem {
	return &UseItem{itemBase{span, p}, imported}
}

// MacroItem is a single-token-tree macro call in item position. The parser
// skips the macro's argument tokens and leaves Expansion nil; the
// Assembler registers a Macro meta for the call and does not assemble
// Expansion.
type MacroItem struct {
	itemBase
	Callee    path.Item
	Expansion Item // nil if the macro produced no items
}

// NewMacroItem constructs a MacroItem.
func NewMacroItem(span source.Span, p, callee path.Item, expansion Item) *MacroItem {
	return &MacroItem{itemBase{span, p}, callee, expansion}
}
