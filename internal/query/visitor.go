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
package query

import (
	"github.com/runelang/rune-core/internal/meta"
	"github.com/runelang/rune-core/internal/path"
	"github.com/runelang/rune-core/internal/source"
)

// CompileVisitor observes resolution and elaboration events as they occur.
// A caller that only cares about one or two events embeds NoopVisitor and
// overrides just those methods, rather than implementing the whole set.
type CompileVisitor interface {
	// RegisterMeta fires when a host Context candidate is copied into the
	// Meta Store.
	RegisterMeta(item path.Item, m meta.Meta)
	// VisitMeta fires on every successful lookup_meta resolution, naming
	// the source unit the reference occurred in and the span it occurred
	// at.
	VisitMeta(src source.SourceId, item path.Item, m meta.Meta, span source.Span)
	// VisitVariableUse is the hook for local (non-item) variable
	// references. Nothing in this module calls it.
	VisitVariableUse(name string, span source.Span)
	// VisitMod is the hook for module items. Nothing in this module calls
	// it.
	VisitMod(item path.Item)
	// VisitDocComment is the hook for item doc comments. Nothing in this
	// module calls it.
	VisitDocComment(item path.Item, text string)
}

// NoopVisitor implements CompileVisitor with no-op methods.  Embed it to
// pick only the hooks you need.
type NoopVisitor struct{}

func (NoopVisitor) RegisterMeta(path.Item, meta.Meta)                             {}
func (NoopVisitor) VisitMeta(source.SourceId, path.Item, meta.Meta, source.Span)  {}
func (NoopVisitor) VisitVariableUse(string, source.Span)                         {}
func (NoopVisitor) VisitMod(path.Item)                                           {}
func (NoopVisitor) VisitDocComment(path.Item, string)                            {}

var _ CompileVisitor = NoopVisitor{}
