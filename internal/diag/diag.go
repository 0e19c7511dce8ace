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

// Package diag accumulates the Assembler's warnings and errors for one
// compile unit and renders them as source-highlighted text.
package diag

import (
	"fmt"
	"strings"

	"github.com/runelang/rune-core/internal/source"
)

// WarningKind is the closed set of warnings the Assembler can emit.
// Warnings never halt compilation.
type WarningKind int

// The supported warning kinds.
const (
	NotUsed WarningKind = iota
	LetPatternMightPanic
	BreakDoesNotProduceValue
	TemplateWithoutExpansions
)

func (k WarningKind) String() string {
	switch k {
	case NotUsed:
		return "value is never used"
	case LetPatternMightPanic:
		return "let pattern might panic on some inputs"
	case BreakDoesNotProduceValue:
		return "break does not produce a value, but the enclosing loop expects one"
	case TemplateWithoutExpansions:
		return "macro template produced no expansions"
	default:
		return "unknown warning"
	}
}

// Warning pairs a WarningKind with the span it was raised at and, if one
// was open, the innermost enclosing context span the Assembler was
// emitting when it fired.
type Warning struct {
	Kind    WarningKind
	Span    source.Span
	Context *source.Span
}

// Entry pairs an accumulated error with the span it occurred at and any
// enclosing context span, mirroring Warning's shape.
type Entry struct {
	Err     error
	Span    source.Span
	Context *source.Span
}

// Bag accumulates warnings and errors for one compile unit, plus the
// "current context span" stack the Assembler pushes onto as it descends
// into nested expressions (so an error deep inside a block can still
// report the enclosing statement).
type Bag struct {
	source   source.SourceId
	warnings []Warning
	errors   []Entry
	context  []source.Span
}

// NewBag constructs an empty Bag for diagnostics tied to src.
func NewBag(src source.SourceId) *Bag {
	return &Bag{source: src}
}

// PushContext opens a new innermost context span; errors/warnings raised
// before the matching PopContext record it alongside their own span.
func (b *Bag) PushContext(span source.Span) {
	b.context = append(b.context, span)
}

// PopContext closes the innermost context span.
func (b *Bag) PopContext() {
	b.context = b.context[:len(b.context)-1]
}

func (b *Bag) currentContext() *source.Span {
	if len(b.context) == 0 {
		return nil
	}

	span := b.context[len(b.context)-1]

	return &span
}

// Warn records a warning at span, tagged with whatever context span is
// currently open.
func (b *Bag) Warn(kind WarningKind, span source.Span) {
	b.warnings = append(b.warnings, Warning{Kind: kind, Span: span, Context: b.currentContext()})
}

// Error records err at span. Recording an error does not stop assembly of
// later items: the Assembler attempts every item regardless.
func (b *Bag) Error(err error, span source.Span) {
	b.errors = append(b.errors, Entry{Err: err, Span: span, Context: b.currentContext()})
}

// Warnings returns the accumulated warnings in emission order.
func (b *Bag) Warnings() []Warning {
	return b.warnings
}

// Errors returns the accumulated error entries in emission order.
func (b *Bag) Errors() []Entry {
	return b.errors
}

// ErrorCount reports how many errors have been recorded.
func (b *Bag) ErrorCount() int {
	return len(b.errors)
}

// WarningCount reports how many warnings have been recorded.
func (b *Bag) WarningCount() int {
	return len(b.warnings)
}

// HasErrors reports whether any error has been recorded. cmd/runec uses it
// to decide the exit status once the whole unit has been assembled.
func (b *Bag) HasErrors() bool {
	return len(b.errors) > 0
}

// Render produces a source-highlighted rendering of every accumulated
// error and warning, one block per diagnostic: the offending line, a
// caret underline beneath the span, and the message.
func (b *Bag) Render(registry *source.Registry) string {
	var sb strings.Builder

	for _, e := range b.errors {
		renderOne(&sb, registry, b.source, "error", e.Err.Error(), e.Span)
	}

	for _, w := range b.warnings {
		renderOne(&sb, registry, b.source, "warning", w.Kind.String(), w.Span)
	}

	return sb.String()
}

func renderOne(sb *strings.Builder, registry *source.Registry, src source.SourceId, severity, msg string, span source.Span) {
	line, col := registry.LineCol(src, span.Start())
	text := registry.LineText(src, span.Start())

	fmt.Fprintf(sb, "%s: %s\n", severity, msg)
	fmt.Fprintf(sb, "  --> %d:%d\n", line, col)
	fmt.Fprintf(sb, "  %s\n", text)

	underline := strings.Repeat(" ", col-1) + strings.Repeat("^", max(1, span.Length()))
	fmt.Fprintf(sb, "  %s\n", underline)
}
