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

// Package source provides the Span / SourceId data model shared by the
// lexer, parser, assembler and diagnostics renderer.
package source

import (
	"fmt"
	"strings"
)

// Span represents a contiguous, half-open slice `[start,end)` of some
// originating source text.  Rather than storing a string slice directly, we
// retain the physical indices so callers can recover enclosing lines, etc.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a new span whilst checking the internal invariant
// (start <= end) is maintained.
func NewSpan(start, end int) Span {
	if start > end {
		panic("invalid span: start > end")
	}

	return Span{start, end}
}

// Start returns the starting index of this span in the original string.
func (s Span) Start() int { return s.start }

// End returns one past the last index of this span in the original string.
func (s Span) End() int { return s.end }

// Length returns the number of characters covered by this span.
func (s Span) Length() int { return s.end - s.start }

// Union returns the smallest span enclosing both spans.
func (s Span) Union(other Span) Span {
	start := s.start
	if other.start < start {
		start = other.start
	}

	end := s.end
	if other.end > end {
		end = other.end
	}

	return Span{start, end}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.start, s.end)
}

// SourceId is an opaque integer identifying a source file within a compile
// unit.  It pairs with a Span to form a Location.
type SourceId uint32

// Location pairs a SourceId with a Span within that source.
type Location struct {
	Source SourceId
	Span   Span
}

// NewLocation constructs a Location from its parts.
func NewLocation(id SourceId, span Span) Location {
	return Location{id, span}
}

// Source is a single named unit of source text registered with a Registry.
type Source struct {
	Id   SourceId
	Name string
	Text string
}

// Registry maps SourceId to Source, assigning ids as sources are added.  It
// never reassigns an id once given, matching the interning discipline used
// elsewhere in this compiler (see internal/pool).
type Registry struct {
	sources []Source
}

// NewRegistry constructs an initially empty source registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a new source file, returning its freshly assigned id.
func (r *Registry) Add(name, text string) SourceId {
	id := SourceId(len(r.sources))
	r.sources = append(r.sources, Source{id, name, text})

	return id
}

// Get returns the Source for a given id.  Panics if the id is unknown,
// which would indicate an internal bug (ids are never fabricated outside
// this registry).
func (r *Registry) Get(id SourceId) Source {
	return r.sources[id]
}

// LineCol converts a byte offset within a source into a 1-based (line,
// column) pair, for use in diagnostic rendering.
func (r *Registry) LineCol(id SourceId, offset int) (line, col int) {
	text := r.Get(id).Text
	if offset > len(text) {
		offset = len(text)
	}

	line = 1 + strings.Count(text[:offset], "\n")
	lastNL := strings.LastIndex(text[:offset], "\n")
	col = offset - lastNL

	return line, col
}

// LineText returns the full text of the line containing the given offset,
// stripped of its trailing newline, for diagnostic highlighting.
func (r *Registry) LineText(id SourceId, offset int) string {
	text := r.Get(id).Text
	if offset > len(text) {
		offset = len(text)
	}

	start := strings.LastIndex(text[:offset], "\n") + 1

	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		return text[start:]
	}

	return text[start : offset+end]
}
