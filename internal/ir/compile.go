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
package ir

import (
	"github.com/runelang/rune-core/internal/hir"
	"github.com/runelang/rune-core/internal/path"
	"github.com/runelang/rune-core/internal/value"
)

// KnownConstFn is consulted by Compile to determine whether a given call
// target is a known const fn. A caller wires this to the Query Engine.
type KnownConstFn func(callee path.Item) bool

// Compile lowers an HIR expression into an IR node. Each
// HIR shape maps to exactly one IR shape: literals become constants,
// identifiers become Name reads, field/index accesses become Field/Index
// reads, and so on.  isConstFn determines, for Call expressions, whether
// the callee resolves to a const fn; calls that don't lower to Side
// instead, since they compile but later fail at evaluation with NotConst.
func Compile(expr hir.Expr, isConstFn KnownConstFn) Node {
	switch e := expr.(type) {
	case *hir.Lit:
		return NewConst(e.Span(), e.Value)
	case *hir.Ident:
		return NewRead(e.Span(), NewName(e.Span(), e.Name))
	case *hir.Field:
		return NewRead(e.Span(), NewField(e.Span(), compileTarget(e.Target), e.Name))
	case *hir.Index:
		idx, ok := constIndex(e.Index)
		if !ok {
			return NewSide(e.Span())
		}

		return NewRead(e.Span(), NewIndex(e.Span(), compileTarget(e.Target), idx))
	case *hir.Binary:
		return NewBinary(e.Span(), BinOp(e.Op), Compile(e.Left, isConstFn), Compile(e.Right, isConstFn))
	case *hir.Unary:
		return NewUnary(e.Span(), UnOp(e.Op), Compile(e.Operand, isConstFn))
	case *hir.Block:
		stmts := make([]Stmt, len(e.Stmts))
		for i, s := range e.Stmts {
			stmts[i] = Stmt{Span: s.Span, Let: s.Let, Value: Compile(s.Value, isConstFn)}
		}

		return NewBlock(e.Span(), stmts)
	case *hir.If:
		var els Node
		if e.Else != nil {
			els = Compile(e.Else, isConstFn)
		}

		return NewIf(e.Span(), Compile(e.Cond, isConstFn), Compile(e.Then, isConstFn), els)
	case *hir.Match:
		arms := make([]MatchArm, len(e.Arms))
		for i, a := range e.Arms {
			arms[i] = MatchArm{Pattern: a.Pattern, Body: Compile(a.Body, isConstFn)}
		}

		return NewMatch(e.Span(), Compile(e.Scrutinee, isConstFn), arms)
	case *hir.Loop:
		return NewLoop(e.Span(), e.Label, Compile(e.Body, isConstFn))
	case *hir.While:
		return NewWhile(e.Span(), e.Label, Compile(e.Cond, isConstFn), Compile(e.Body, isConstFn))
	case *hir.For:
		return NewFor(e.Span(), e.Label, e.Var, Compile(e.Iter, isConstFn), Compile(e.Body, isConstFn))
	case *hir.Break:
		var v Node
		if e.Value != nil {
			v = Compile(e.Value, isConstFn)
		}

		return NewBreak(e.Span(), e.Label, v)
	case *hir.Continue:
		return NewContinue(e.Span(), e.Label)
	case *hir.Call:
		if !isConstFn(e.Callee) {
			return NewSide(e.Span())
		}

		args := make([]Node, len(e.Args))
		for i, a := range e.Args {
			args[i] = Compile(a, isConstFn)
		}

		return NewCall(e.Span(), e.Callee, args)
	case *hir.Assign:
		return NewAssign(e.Span(), compileTarget(e.Target), Compile(e.Value, isConstFn))
	case *hir.CompoundAssign:
		return NewCompoundAssign(e.Span(), compileTarget(e.Target), BinOp(e.Op), Compile(e.Value, isConstFn))
	case *hir.TupleLit:
		elems := make([]Node, len(e.Elems))
		for i, x := range e.Elems {
			elems[i] = Compile(x, isConstFn)
		}

		return NewTuple(e.Span(), elems)
	case *hir.VecLit:
		elems := make([]Node, len(e.Elems))
		for i, x := range e.Elems {
			elems[i] = Compile(x, isConstFn)
		}

		return NewVec(e.Span(), elems)
	case *hir.ObjectLit:
		values := make([]Node, len(e.Values))
		for i, x := range e.Values {
			values[i] = Compile(x, isConstFn)
		}

		return NewObject(e.Span(), e.Keys, values)
	case *hir.Side:
		return NewSide(e.Span())
	default:
		return NewSide(expr.Span())
	}
}

// compileTarget lowers an HIR expression known to be used as a place
// expression (the target of a field/index/assignment) into an IR Target.
func compileTarget(expr hir.Expr) Target {
	switch e := expr.(type) {
	case *hir.Ident:
		return NewName(e.Span(), e.Name)
	case *hir.Field:
		return NewField(e.Span(), compileTarget(e.Target), e.Name)
	case *hir.Index:
		idx, _ := constIndex(e.Index)
		return NewIndex(e.Span(), compileTarget(e.Target), idx)
	default:
		// Not a valid place expression; callers that evaluate this target
		// will surface a clear error rather than panicking here.
		return NewName(expr.Span(), "")
	}
}

// constIndex extracts a compile-time-known non-negative index from an HIR
// expression, as required since IR index targets are resolved statically.
func constIndex(expr hir.Expr) (uint, bool) {
	lit, ok := expr.(*hir.Lit)
	if !ok {
		return 0, false
	}

	if lit.Value.Kind() != value.KindInt {
		return 0, false
	}

	v := lit.Value.AsInt()
	if v < 0 {
		return 0, false
	}

	return uint(v), true
}
