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

// Package interp implements the IR Interpreter: the constant evaluator
// that walks an ir.Node tree to either produce a value.ConstValue (the
// outer, caching entry) or fail with a structured reason the assembler
// can surface to the user.
package interp

import (
	"errors"
	"fmt"

	"github.com/runelang/rune-core/internal/meta"
	"github.com/runelang/rune-core/internal/source"
	"github.com/runelang/rune-core/internal/value"
)

// ErrConstCycle is returned when evaluating an item requires evaluating
// itself, directly or transitively.
var ErrConstCycle = errors.New("const cycle detected")

// ErrBudgetExceeded is returned when an interpreter's step budget runs out
// mid-evaluation.
var ErrBudgetExceeded = errors.New("ir evaluation budget exceeded")

// ErrBreakOutsideOfLoop is returned when a break/continue with no
// enclosing loop reaches eval_expr.
var ErrBreakOutsideOfLoop = errors.New("break outside of loop")

// NotConstError is returned when an expression cannot be reduced to a
// constant (e.g. it contains a Side node, or resolve_var exhausts every
// ancestor without finding a binding).
type NotConstError struct {
	Span source.Span
}

func (e *NotConstError) Error() string { return "expression is not a compile-time constant" }

// UnsupportedMetaError is returned when resolve_var's ancestor search
// finds a meta for the requested path, but not one of Const kind.
type UnsupportedMetaError struct {
	Kind meta.Kind
}

func (e *UnsupportedMetaError) Error() string {
	return fmt.Sprintf("%s item cannot be used as a constant value", e.Kind)
}

// DivisionByZeroError is returned by an integer Div whose right operand is
// zero, in place of letting Go's raw `/` panic.
type DivisionByZeroError struct {
	Span source.Span
}

func (e *DivisionByZeroError) Error() string { return "division by zero" }

// MissingFieldError is returned when a Field target names a field an
// Object does not have.
type MissingFieldError struct {
	Field string
	Span  source.Span
}

func (e *MissingFieldError) Error() string { return fmt.Sprintf("no field %q", e.Field) }

// MissingIndexError is returned when an Index target is out of bounds for
// a Vec or Tuple.
type MissingIndexError struct {
	Index uint
	Span  source.Span
}

func (e *MissingIndexError) Error() string { return fmt.Sprintf("index %d out of range", e.Index) }

// ExpectedKindError is returned when a target or operator expects one
// value.Kind but receives another (e.g. indexing a non-sequence).
type ExpectedKindError struct {
	Expected, Actual value.Kind
	Span             source.Span
}

func (e *ExpectedKindError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Actual)
}

// UndefinedVariableError is returned when an assignment names a local that
// has no binding in scope. An unbound name in a read is resolved through
// resolveVar instead, which reports NotConst when no ancestor matches.
type UndefinedVariableError struct {
	Name string
	Span source.Span
}

func (e *UndefinedVariableError) Error() string { return fmt.Sprintf("undefined variable %q", e.Name) }

// UnsupportedArgumentCountError is returned by a const fn call whose
// argument count does not match the callee's formal parameter count.
type UnsupportedArgumentCountError struct {
	Expected, Actual int
}

func (e *UnsupportedArgumentCountError) Error() string {
	return fmt.Sprintf("expected %d argument(s), found %d", e.Expected, e.Actual)
}

// outcomeKind tags which arm of EvalOutcome is populated.
type outcomeKind int

const (
	outcomeError outcomeKind = iota
	outcomeNotConst
	outcomeBreak
	outcomeContinue
)

// EvalOutcome is the short-circuiting sum type threaded through every
// inner evaluation step: an ordinary error, a NotConst signal carrying
// the offending span, or a Break carrying its target label and optional
// value. Outer eval_expr converts NotConst into a NotConstError and a
// stray Break into ErrBreakOutsideOfLoop; Error propagates unchanged.
type EvalOutcome struct {
	kind  outcomeKind
	err   error
	span  source.Span
	label string
	value *value.IrValue
}

// Err wraps a plain error as an EvalOutcome.
func Err(err error) *EvalOutcome {
	if err == nil {
		return nil
	}

	return &EvalOutcome{kind: outcomeError, err: err}
}

// NotConst signals that the expression at span is not constant.
func NotConst(span source.Span) *EvalOutcome {
	return &EvalOutcome{kind: outcomeNotConst, span: span}
}

// Break signals a `break` targeting label (empty for unlabelled),
// optionally carrying v.
func Break(label string, v *value.IrValue) *EvalOutcome {
	return &EvalOutcome{kind: outcomeBreak, label: label, value: v}
}

// IsBreak reports whether this outcome is a Break, returning its label
// and value.
func (o *EvalOutcome) IsBreak() (string, *value.IrValue, bool) {
	if o == nil || o.kind != outcomeBreak {
		return "", nil, false
	}

	return o.label, o.value, true
}

// AsError renders this outcome as a plain error for the outer eval_expr
// boundary: Error forwards unchanged, NotConst becomes a NotConstError,
// and a stray (unclaimed) Break becomes ErrBreakOutsideOfLoop.
func (o *EvalOutcome) AsError() error {
	if o == nil {
		return nil
	}

	switch o.kind {
	case outcomeError:
		return o.err
	case outcomeNotConst:
		return &NotConstError{Span: o.span}
	case outcomeBreak, outcomeContinue:
		return ErrBreakOutsideOfLoop
	default:
		return nil
	}
}
