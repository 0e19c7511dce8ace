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
	"github.com/runelang/rune-core/internal/source"
	"github.com/runelang/rune-core/internal/value"
)

func applyBinary(op ir.BinOp, l, r value.IrValue, span source.Span) (value.IrValue, error) {
	switch op {
	case ir.Eq:
		return value.IrBool(scalarEquals(l, r)), nil
	case ir.Neq:
		return value.IrBool(!scalarEquals(l, r)), nil
	case ir.And:
		if err := expectBool(l, span); err != nil {
			return value.IrValue{}, err
		}

		if err := expectBool(r, span); err != nil {
			return value.IrValue{}, err
		}

		return value.IrBool(l.Scalar().AsBool() && r.Scalar().AsBool()), nil
	case ir.Or:
		if err := expectBool(l, span); err != nil {
			return value.IrValue{}, err
		}

		if err := expectBool(r, span); err != nil {
			return value.IrValue{}, err
		}

		return value.IrBool(l.Scalar().AsBool() || r.Scalar().AsBool()), nil
	}

	if l.Kind() == value.KindFloat || r.Kind() == value.KindFloat {
		lf, err := asFloat(l, span)
		if err != nil {
			return value.IrValue{}, err
		}

		rf, err := asFloat(r, span)
		if err != nil {
			return value.IrValue{}, err
		}

		return applyNumericFloat(op, lf, rf, span)
	}

	if err := expectInt(l, span); err != nil {
		return value.IrValue{}, err
	}

	if err := expectInt(r, span); err != nil {
		return value.IrValue{}, err
	}

	return applyNumericInt(op, l.Scalar().AsInt(), r.Scalar().AsInt(), span)
}

func applyNumericInt(op ir.BinOp, l, r int64, span source.Span) (value.IrValue, error) {
	switch op {
	case ir.Add:
		return value.IrInt(l + r), nil
	case ir.Sub:
		return value.IrInt(l - r), nil
	case ir.Mul:
		return value.IrInt(l * r), nil
	case ir.Div:
		if r == 0 {
			return value.IrValue{}, &DivisionByZeroError{Span: span}
		}

		return value.IrInt(l / r), nil
	case ir.Lt:
		return value.IrBool(l < r), nil
	case ir.Gt:
		return value.IrBool(l > r), nil
	case ir.Le:
		return value.IrBool(l <= r), nil
	case ir.Ge:
		return value.IrBool(l >= r), nil
	default:
		return value.IrValue{}, &ExpectedKindError{Expected: value.KindInt, Actual: value.KindInt, Span: span}
	}
}

func applyNumericFloat(op ir.BinOp, l, r float64, span source.Span) (value.IrValue, error) {
	switch op {
	case ir.Add:
		return value.IrFloat(l + r), nil
	case ir.Sub:
		return value.IrFloat(l - r), nil
	case ir.Mul:
		return value.IrFloat(l * r), nil
	case ir.Div:
		return value.IrFloat(l / r), nil
	case ir.Lt:
		return value.IrBool(l < r), nil
	case ir.Gt:
		return value.IrBool(l > r), nil
	case ir.Le:
		return value.IrBool(l <= r), nil
	case ir.Ge:
		return value.IrBool(l >= r), nil
	default:
		return value.IrValue{}, &ExpectedKindError{Expected: value.KindFloat, Actual: value.KindFloat, Span: span}
	}
}

func applyUnary(op ir.UnOp, v value.IrValue, span source.Span) (value.IrValue, error) {
	switch op {
	case ir.Not:
		if err := expectBool(v, span); err != nil {
			return value.IrValue{}, err
		}

		return value.IrBool(!v.Scalar().AsBool()), nil
	case ir.Neg:
		switch v.Kind() {
		case value.KindInt:
			return value.IrInt(-v.Scalar().AsInt()), nil
		case value.KindFloat:
			return value.IrFloat(-v.Scalar().AsFloat()), nil
		default:
			return value.IrValue{}, &ExpectedKindError{Expected: value.KindInt, Actual: v.Kind(), Span: span}
		}
	default:
		return value.IrValue{}, &ExpectedKindError{Span: span}
	}
}

func scalarEquals(l, r value.IrValue) bool {
	if l.Kind() != r.Kind() {
		return false
	}

	switch l.Kind() {
	case value.KindTuple, value.KindVec, value.KindObject:
		return l.Cell() == r.Cell()
	default:
		return l.Scalar().Equals(r.Scalar())
	}
}

func asFloat(v value.IrValue, span source.Span) (float64, error) {
	switch v.Kind() {
	case value.KindFloat:
		return v.Scalar().AsFloat(), nil
	case value.KindInt:
		return float64(v.Scalar().AsInt()), nil
	default:
		return 0, &ExpectedKindError{Expected: value.KindFloat, Actual: v.Kind(), Span: span}
	}
}

func expectInt(v value.IrValue, span source.Span) error {
	if v.Kind() != value.KindInt {
		return &ExpectedKindError{Expected: value.KindInt, Actual: v.Kind(), Span: span}
	}

	return nil
}

func expectBool(v value.IrValue, span source.Span) error {
	if v.Kind() != value.KindBool {
		return &ExpectedKindError{Expected: value.KindBool, Actual: v.Kind(), Span: span}
	}

	return nil
}
