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

// Package context defines the read-only surface an embedding host uses to
// register items the compiler does not itself parse — builtins, intrinsics,
// and anything else the host wants name resolution to see.
package context

import (
	"github.com/runelang/rune-core/internal/meta"
	"github.com/runelang/rune-core/internal/path"
)

// ContextMeta is one host-registered candidate for an item path.
type ContextMeta interface {
	// Kind reports the meta kind this candidate would elaborate to.
	Kind() meta.Kind
	// Parameters reports this candidate's generic-parameters hash.
	Parameters() meta.ParamsHash
	// Info renders a short human-readable description, used when the
	// Query Engine must report an ambiguity between several candidates.
	Info() string
}

// Context is the host lookup surface consulted by the Query Engine after
// the Meta Store itself has no cached answer.
type Context interface {
	// LookupMeta returns every host-registered candidate for item,
	// regardless of kind or parameters; the Query Engine does the
	// filtering.  An empty slice means the host knows nothing about item.
	LookupMeta(item path.Item) []ContextMeta
}

// staticEntry is the concrete ContextMeta used by StaticContext.
type staticEntry struct {
	kind   meta.Kind
	params meta.ParamsHash
	info   string
}

func (e staticEntry) Kind() meta.Kind             { return e.kind }
func (e staticEntry) Parameters() meta.ParamsHash { return e.params }
func (e staticEntry) Info() string                { return e.info }

// StaticContext is a fixed, map-backed Context, the shape a host embeds the
// compiler with: registering its builtins once, up front, before compiling
// any user source.
type StaticContext struct {
	entries map[string][]ContextMeta
}

// NewStaticContext constructs an empty StaticContext.
func NewStaticContext() *StaticContext {
	return &StaticContext{entries: make(map[string][]ContextMeta)}
}

// Register adds a host candidate for item.  Registering two candidates for
// the same item with the same parameters hash is legal here — it is the
// Query Engine's job to reject it as ambiguous at lookup time, not the
// Context's.
func (c *StaticContext) Register(item path.Item, kind meta.Kind, params meta.ParamsHash, info string) {
	key := item.String()
	c.entries[key] = append(c.entries[key], staticEntry{kind: kind, params: params, info: info})
}

// LookupMeta implements Context.
func (c *StaticContext) LookupMeta(item path.Item) []ContextMeta {
	return c.entries[item.String()]
}
