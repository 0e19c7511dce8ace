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

// Package meta holds the ItemMeta / Meta / Visibility data model that the
// Meta Store (query.Store) caches per item id.
package meta

import (
	"fmt"

	"github.com/runelang/rune-core/internal/ir"
	"github.com/runelang/rune-core/internal/pool"
	"github.com/runelang/rune-core/internal/value"
)

// Visibility controls which modules can see an item.
type Visibility int

// The supported visibility levels.
const (
	Private Visibility = iota
	Public
	PublicCrate
)

// ParamsHash digests a generic-argument sequence.  The zero value denotes
// no generics requested.
type ParamsHash uint64

// EmptyParams is the canonical hash for a non-generic item.
const EmptyParams ParamsHash = 0

// ItemMeta identifies where an item lives and what sees it.
type ItemMeta struct {
	Item       pool.ItemId
	Module     pool.ItemId
	Visibility Visibility
	SourceId   uint32
}

// Kind is the tag of the Meta sum type.
type Kind int

// The closed set of meta kinds.
const (
	KindFn Kind = iota
	KindConst
	KindConstFn
	KindStruct
	KindEnum
	KindVariant
	KindModule
	KindMacro
	KindImpl
)

func (k Kind) String() string {
	switch k {
	case KindFn:
		return "fn"
	case KindConst:
		return "const"
	case KindConstFn:
		return "const fn"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindVariant:
		return "variant"
	case KindModule:
		return "module"
	case KindMacro:
		return "macro"
	case KindImpl:
		return "impl"
	default:
		return "unknown"
	}
}

// Meta is the elaborated description of an item: its kind, its ItemMeta,
// and its parameters hash, plus whatever payload its kind carries.
//
// Fn and ConstFn are distinct kinds; only a ConstFn is invokable by the IR
// Interpreter.
type Meta struct {
	kind       Kind
	itemMeta   ItemMeta
	parameters ParamsHash

	// Payload, populated according to kind.
	constValue value.ConstValue // KindConst
	constFn    *ir.Fn           // KindConstFn
	variants   []string         // KindEnum
}

// NewFn constructs a Fn meta.
func NewFn(im ItemMeta, params ParamsHash) Meta {
	return Meta{kind: KindFn, itemMeta: im, parameters: params}
}

// NewConst constructs a Const meta carrying its already-evaluated value.
func NewConst(im ItemMeta, params ParamsHash, v value.ConstValue) Meta {
	return Meta{kind: KindConst, itemMeta: im, parameters: params, constValue: v}
}

// NewConstFn constructs a ConstFn meta carrying its IR body.
func NewConstFn(im ItemMeta, params ParamsHash, fn *ir.Fn) Meta {
	return Meta{kind: KindConstFn, itemMeta: im, parameters: params, constFn: fn}
}

// NewStruct constructs a Struct meta.
func NewStruct(im ItemMeta, params ParamsHash) Meta {
	return Meta{kind: KindStruct, itemMeta: im, parameters: params}
}

// NewEnum constructs an Enum meta carrying its variant names.
func NewEnum(im ItemMeta, params ParamsHash, variants []string) Meta {
	return Meta{kind: KindEnum, itemMeta: im, parameters: params, variants: variants}
}

// NewVariant constructs a Variant meta.
func NewVariant(im ItemMeta, params ParamsHash) Meta {
	return Meta{kind: KindVariant, itemMeta: im, parameters: params}
}

// NewModule constructs a Module meta.
func NewModule(im ItemMeta) Meta {
	return Meta{kind: KindModule, itemMeta: im}
}

// NewMacro constructs a Macro meta.
func NewMacro(im ItemMeta) Meta {
	return Meta{kind: KindMacro, itemMeta: im}
}

// NewImpl constructs an Impl meta.
func NewImpl(im ItemMeta, params ParamsHash) Meta {
	return Meta{kind: KindImpl, itemMeta: im, parameters: params}
}

// Kind returns this meta's kind tag.
func (m Meta) Kind() Kind { return m.kind }

// ItemMeta returns the common ItemMeta every kind carries.
func (m Meta) ItemMeta() ItemMeta { return m.itemMeta }

// Parameters returns this meta's parameters hash.
func (m Meta) Parameters() ParamsHash { return m.parameters }

// ConstValue returns the payload of a KindConst meta.  Panics otherwise.
func (m Meta) ConstValue() value.ConstValue {
	if m.kind != KindConst {
		panic(fmt.Sprintf("ConstValue() called on %s meta", m.kind))
	}

	return m.constValue
}

// ConstFn returns the payload of a KindConstFn meta.  Panics otherwise.
func (m Meta) ConstFn() *ir.Fn {
	if m.kind != KindConstFn {
		panic(fmt.Sprintf("ConstFn() called on %s meta", m.kind))
	}

	return m.constFn
}

// Variants returns the payload of a KindEnum meta.  Panics otherwise.
func (m Meta) Variants() []string {
	if m.kind != KindEnum {
		panic(fmt.Sprintf("Variants() called on %s meta", m.kind))
	}

	return m.variants
}

// IsCallable reports whether this kind denotes something addressable as a
// callable/value (used by the Query Engine to filter out Macro/Module
// kinds).
func (k Kind) IsCallable() bool {
	return k != KindMacro && k != KindModule
}
