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
package interp

import (
	"github.com/runelang/rune-core/internal/ir"
	"github.com/runelang/rune-core/internal/value"
)

// getTarget reads the current value of t: Name clones straight from the
// nearest scope binding, Field/Index read their base (recursively) and
// then clone the requested field or element out of it.
func (in *Interpreter) getTarget(t ir.Target) (value.IrValue, *EvalOutcome) {
	switch tt := t.(type) {
	case *ir.Name:
		if v, ok := in.scope.Lookup(tt.Ident); ok {
			return v.Clone(), nil
		}

		return in.resolveVar(tt.Ident, tt.Span())
	case *ir.Field:
		base, outcome := in.getTarget(tt.Base)
		if outcome != nil {
			return value.IrValue{}, outcome
		}

		if base.Kind() != value.KindObject {
			return value.IrValue{}, Err(&ExpectedKindError{Expected: value.KindObject, Actual: base.Kind(), Span: tt.Span()})
		}

		payload, guard, err := base.Cell().Borrow()
		if err != nil {
			return value.IrValue{}, Err(err)
		}
		defer guard.Release()

		obj := payload.(*value.IrObject)

		fv, ok := obj.Get(tt.Name)
		if !ok {
			return value.IrValue{}, Err(&MissingFieldError{Field: tt.Name, Span: tt.Span()})
		}

		return fv.Clone(), nil
	case *ir.Index:
		base, outcome := in.getTarget(tt.Base)
		if outcome != nil {
			return value.IrValue{}, outcome
		}

		if base.Kind() != value.KindVec && base.Kind() != value.KindTuple {
			return value.IrValue{}, Err(&ExpectedKindError{Expected: value.KindVec, Actual: base.Kind(), Span: tt.Span()})
		}

		payload, guard, err := base.Cell().Borrow()
		if err != nil {
			return value.IrValue{}, Err(err)
		}
		defer guard.Release()

		elems := payload.([]value.IrValue)
		if int(tt.Index) >= len(elems) {
			return value.IrValue{}, Err(&MissingIndexError{Index: tt.Index, Span: tt.Span()})
		}

		return elems[tt.Index].Clone(), nil
	default:
		return value.IrValue{}, Err(&ExpectedKindError{Span: t.Span()})
	}
}

// setTarget overwrites the value t names.  Name always writes into the
// topmost (innermost) scope, shadowing rather than mutating any outer
// binding of the same name.
func (in *Interpreter) setTarget(t ir.Target, newVal value.IrValue) *EvalOutcome {
	switch tt := t.(type) {
	case *ir.Name:
		in.scope.DeclareTop(tt.Ident, newVal)
		return nil
	case *ir.Field:
		base, outcome := in.getTarget(tt.Base)
		if outcome != nil {
			return outcome
		}

		if base.Kind() != value.KindObject {
			return Err(&ExpectedKindError{Expected: value.KindObject, Actual: base.Kind(), Span: tt.Span()})
		}

		payload, guard, err := base.Cell().BorrowMut()
		if err != nil {
			return Err(err)
		}
		defer guard.Release()

		payload.(*value.IrObject).Set(tt.Name, newVal)

		return nil
	case *ir.Index:
		base, outcome := in.getTarget(tt.Base)
		if outcome != nil {
			return outcome
		}

		if base.Kind() != value.KindVec && base.Kind() != value.KindTuple {
			return Err(&ExpectedKindError{Expected: value.KindVec, Actual: base.Kind(), Span: tt.Span()})
		}

		payload, guard, err := base.Cell().BorrowMut()
		if err != nil {
			return Err(err)
		}
		defer guard.Release()

		elems := payload.([]value.IrValue)
		if int(tt.Index) >= len(elems) {
			return Err(&MissingIndexError{Index: tt.Index, Span: tt.Span()})
		}

		elems[tt.Index] = newVal

		return nil
	default:
		return Err(&ExpectedKindError{Span: t.Span()})
	}
}

// mutTarget implements `target op= rhs`: read the current value, combine
// it with rhs via op, and write the result back through setTarget.
func (in *Interpreter) mutTarget(t ir.Target, op ir.BinOp, rhs value.IrValue) *EvalOutcome {
	old, outcome := in.getTarget(t)
	if outcome != nil {
		return outcome
	}

	newVal, err := applyBinary(op, old, rhs, t.Span())
	if err != nil {
		return Err(err)
	}

	return in.setTarget(t, newVal)
}
