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
	"errors"
	"fmt"

	"github.com/runelang/rune-core/internal/ir"
	"github.com/runelang/rune-core/internal/meta"
	"github.com/runelang/rune-core/internal/pool"
	"github.com/runelang/rune-core/internal/query"
	"github.com/runelang/rune-core/internal/scope"
	"github.com/runelang/rune-core/internal/source"
	"github.com/runelang/rune-core/internal/value"
)

// Interpreter evaluates IR trees down to constant values.  One Interpreter
// owns one consts cache (shared across every item in the compile unit it
// belongs to) and one step budget (shared across an item's own evaluation
// and every const fn it calls into, so that a recursive const fn cannot
// outrun the budget by spawning fresh ones per call).
type Interpreter struct {
	pool   *pool.Pool
	store  *query.Store
	cache  *ConstCache
	budget *Budget
	scope  *scope.Stack[value.IrValue]
	loops  *scope.Loops

	currentItem   pool.ItemId
	currentModule pool.ItemId
}

// New constructs an Interpreter for evaluating items owned by p, resolving
// cross-item references through store, sharing cache across the whole
// compile unit, and bounded by budget steps.
func New(p *pool.Pool, store *query.Store, cache *ConstCache, budget uint64) *Interpreter {
	return &Interpreter{
		pool:   p,
		store:  store,
		cache:  cache,
		budget: NewBudget(budget),
		scope:  scope.New[value.IrValue](),
		loops:  scope.NewLoops(),
	}
}

// SetCurrentItem points this interpreter at item (and its enclosing
// module) before evaluating that item's own IR.
func (in *Interpreter) SetCurrentItem(item, module pool.ItemId) {
	in.currentItem = item
	in.currentModule = module
}

// EvalExpr is the outer, caching entry point: eval_expr(ir, used).  It
// checks the consts cache for the interpreter's current item; on a
// cache hit it returns without re-entering the body at all (invariant:
// cache soundness, a second call never re-evaluates).
func (in *Interpreter) EvalExpr(node ir.Node) (value.ConstValue, error) {
	item := in.currentItem

	if v, ok := in.cache.Get(item); ok {
		return v, nil
	}

	if err := in.cache.Mark(item); err != nil {
		return value.ConstValue{}, err
	}

	iv, outcome := in.evalValue(node)
	if outcome != nil {
		return value.ConstValue{}, outcome.AsError()
	}

	cv, err := value.Snapshot(iv)
	if err != nil {
		return value.ConstValue{}, err
	}

	if err := in.cache.Insert(item, cv); err != nil {
		return value.ConstValue{}, err
	}

	return cv, nil
}

// evalValue is the inner evaluator: eval_value(ir, used).  Every node
// consumes one unit of budget before doing any work, bounding worst-case
// compile time for recursive const fns.
func (in *Interpreter) evalValue(node ir.Node) (value.IrValue, *EvalOutcome) {
	if err := in.budget.Take(); err != nil {
		return value.IrValue{}, Err(err)
	}

	switch n := node.(type) {
	case *ir.Const:
		return value.FromConst(n.Value), nil
	case *ir.Read:
		return in.getTarget(n.Target)
	case *ir.Binary:
		l, outcome := in.evalValue(n.Left)
		if outcome != nil {
			return value.IrValue{}, outcome
		}

		r, outcome := in.evalValue(n.Right)
		if outcome != nil {
			return value.IrValue{}, outcome
		}

		v, err := applyBinary(n.Op, l, r, n.Span())
		if err != nil {
			return value.IrValue{}, Err(err)
		}

		return v, nil
	case *ir.Unary:
		v, outcome := in.evalValue(n.Operand)
		if outcome != nil {
			return value.IrValue{}, outcome
		}

		out, err := applyUnary(n.Op, v, n.Span())
		if err != nil {
			return value.IrValue{}, Err(err)
		}

		return out, nil
	case *ir.Block:
		return in.evalBlock(n)
	case *ir.If:
		return in.evalIf(n)
	case *ir.Match:
		return in.evalMatch(n)
	case *ir.Loop:
		return in.evalLoop(n)
	case *ir.While:
		return in.evalWhile(n)
	case *ir.For:
		return in.evalFor(n)
	case *ir.Break:
		var v *value.IrValue

		if n.Value != nil {
			iv, outcome := in.evalValue(n.Value)
			if outcome != nil {
				return value.IrValue{}, outcome
			}

			v = &iv
		}

		return value.IrValue{}, Break(n.Label, v)
	case *ir.Continue:
		return value.IrValue{}, continueSignal(n.Label)
	case *ir.Call:
		return in.evalCall(n)
	case *ir.Assign:
		v, outcome := in.evalValue(n.Value)
		if outcome != nil {
			return value.IrValue{}, outcome
		}

		if outcome := in.setTarget(n.Target, v); outcome != nil {
			return value.IrValue{}, outcome
		}

		return value.IrUnit(), nil
	case *ir.CompoundAssign:
		rhs, outcome := in.evalValue(n.Value)
		if outcome != nil {
			return value.IrValue{}, outcome
		}

		if outcome := in.mutTarget(n.Target, n.Op, rhs); outcome != nil {
			return value.IrValue{}, outcome
		}

		return value.IrUnit(), nil
	case *ir.Tuple:
		elems, outcome := in.evalAll(n.Elems)
		if outcome != nil {
			return value.IrValue{}, outcome
		}

		return value.IrTuple(elems...), nil
	case *ir.Vec:
		elems, outcome := in.evalAll(n.Elems)
		if outcome != nil {
			return value.IrValue{}, outcome
		}

		return value.IrVec(elems...), nil
	case *ir.Object:
		obj := value.NewIrObject()

		for i, k := range n.Keys {
			v, outcome := in.evalValue(n.Values[i])
			if outcome != nil {
				return value.IrValue{}, outcome
			}

			obj.Set(k, v)
		}

		return value.IrObjectValue(obj), nil
	case *ir.Side:
		return value.IrValue{}, NotConst(n.Span())
	default:
		return value.IrValue{}, NotConst(node.Span())
	}
}

func (in *Interpreter) evalAll(nodes []ir.Node) ([]value.IrValue, *EvalOutcome) {
	out := make([]value.IrValue, len(nodes))

	for i, n := range nodes {
		v, outcome := in.evalValue(n)
		if outcome != nil {
			return nil, outcome
		}

		out[i] = v
	}

	return out, nil
}

func (in *Interpreter) evalBlock(n *ir.Block) (value.IrValue, *EvalOutcome) {
	g := in.scope.Push()
	defer in.scope.Pop(g)

	result := value.IrUnit()

	for _, stmt := range n.Stmts {
		v, outcome := in.evalValue(stmt.Value)
		if outcome != nil {
			return value.IrValue{}, outcome
		}

		if stmt.Let != "" {
			in.scope.Declare(stmt.Let, v)
			result = value.IrUnit()
		} else {
			result = v
		}
	}

	return result, nil
}

func (in *Interpreter) evalIf(n *ir.If) (value.IrValue, *EvalOutcome) {
	cond, outcome := in.evalValue(n.Cond)
	if outcome != nil {
		return value.IrValue{}, outcome
	}

	if err := expectBool(cond, n.Span()); err != nil {
		return value.IrValue{}, Err(err)
	}

	if cond.Scalar().AsBool() {
		return in.evalValue(n.Then)
	}

	if n.Else == nil {
		return value.IrUnit(), nil
	}

	return in.evalValue(n.Else)
}

func (in *Interpreter) evalMatch(n *ir.Match) (value.IrValue, *EvalOutcome) {
	scrutinee, outcome := in.evalValue(n.Scrutinee)
	if outcome != nil {
		return value.IrValue{}, outcome
	}

	cv, err := value.Snapshot(scrutinee)
	if err != nil {
		return value.IrValue{}, Err(err)
	}

	for _, arm := range n.Arms {
		if arm.Pattern == nil || arm.Pattern.Equals(cv) {
			return in.evalValue(arm.Body)
		}
	}

	return value.IrValue{}, Err(fmt.Errorf("no match arm selects %s", cv.String()))
}

func (in *Interpreter) evalLoop(n *ir.Loop) (value.IrValue, *EvalOutcome) {
	in.loops.Enter(scope.Frame{Label: n.Label, ExpectsValue: true})
	defer in.loops.Exit()

	for {
		_, outcome := in.evalValue(n.Body)
		if outcome == nil {
			continue
		}

		if label, v, ok := outcome.IsBreak(); ok && (label == "" || label == n.Label) {
			if v == nil {
				return value.IrUnit(), nil
			}

			return *v, nil
		}

		if label, ok := asContinue(outcome); ok && (label == "" || label == n.Label) {
			continue
		}

		return value.IrValue{}, outcome
	}
}

func (in *Interpreter) evalWhile(n *ir.While) (value.IrValue, *EvalOutcome) {
	in.loops.Enter(scope.Frame{Label: n.Label, ExpectsValue: true})
	defer in.loops.Exit()

	for {
		cond, outcome := in.evalValue(n.Cond)
		if outcome != nil {
			return value.IrValue{}, outcome
		}

		if err := expectBool(cond, n.Span()); err != nil {
			return value.IrValue{}, Err(err)
		}

		if !cond.Scalar().AsBool() {
			return value.IrUnit(), nil
		}

		_, outcome = in.evalValue(n.Body)
		if outcome == nil {
			continue
		}

		if label, v, ok := outcome.IsBreak(); ok && (label == "" || label == n.Label) {
			if v == nil {
				return value.IrUnit(), nil
			}

			return *v, nil
		}

		if label, ok := asContinue(outcome); ok && (label == "" || label == n.Label) {
			continue
		}

		return value.IrValue{}, outcome
	}
}

func (in *Interpreter) evalFor(n *ir.For) (value.IrValue, *EvalOutcome) {
	iter, outcome := in.evalValue(n.Iter)
	if outcome != nil {
		return value.IrValue{}, outcome
	}

	if iter.Kind() != value.KindVec && iter.Kind() != value.KindTuple {
		return value.IrValue{}, Err(&ExpectedKindError{Expected: value.KindVec, Actual: iter.Kind(), Span: n.Span()})
	}

	payload, guard, err := iter.Cell().Borrow()
	if err != nil {
		return value.IrValue{}, Err(err)
	}
	defer guard.Release()

	elems := append([]value.IrValue(nil), payload.([]value.IrValue)...)

	in.loops.Enter(scope.Frame{Label: n.Label, ExpectsValue: true})
	defer in.loops.Exit()

	for _, elem := range elems {
		g := in.scope.Push()
		in.scope.Declare(n.Var, elem)

		_, outcome := in.evalValue(n.Body)

		in.scope.Pop(g)

		if outcome == nil {
			continue
		}

		if label, v, ok := outcome.IsBreak(); ok && (label == "" || label == n.Label) {
			if v == nil {
				return value.IrUnit(), nil
			}

			return *v, nil
		}

		if label, ok := asContinue(outcome); ok && (label == "" || label == n.Label) {
			continue
		}

		return value.IrValue{}, outcome
	}

	return value.IrUnit(), nil
}

// evalCall invokes a known const fn from within an already-running
// evaluation: the callee's body runs under the same Interpreter, sharing
// this call's budget and consts cache, so a self-recursive const fn draws
// on the one budget the Interpreter was built with rather than resetting
// it on every nested call.
func (in *Interpreter) evalCall(n *ir.Call) (value.IrValue, *EvalOutcome) {
	calleeId := in.pool.Intern(n.Callee)

	m, err := in.store.LookupMeta(0, n.Span(), calleeId, false, meta.EmptyParams)
	if err != nil {
		return value.IrValue{}, Err(err)
	}

	if m.Kind() != meta.KindConstFn {
		return value.IrValue{}, Err(&UnsupportedMetaError{Kind: m.Kind()})
	}

	fn := m.ConstFn()
	if len(n.Args) != len(fn.Args) {
		return value.IrValue{}, Err(&UnsupportedArgumentCountError{Expected: len(fn.Args), Actual: len(n.Args)})
	}

	argVals, outcome := in.evalAll(n.Args)
	if outcome != nil {
		return value.IrValue{}, outcome
	}

	prevItem, prevModule := in.currentItem, in.currentModule
	in.currentItem = calleeId
	in.currentModule = in.pool.Intern(in.pool.Item(calleeId).Parent())

	g := in.scope.Push()
	for i, name := range fn.Args {
		in.scope.Declare(name, argVals[i])
	}

	result, outcome := in.evalValue(fn.Body)

	in.scope.Pop(g)
	in.currentItem, in.currentModule = prevItem, prevModule

	if outcome != nil {
		return value.IrValue{}, outcome
	}

	return result, nil
}

// resolveVar implements resolve_var: a bare identifier not bound in the
// lexical scope is looked up as `ancestor::ident` against every enclosing
// module of the current item, innermost first, consulting the consts
// cache before the Meta Store at each step. The search never falls
// through to sibling modules or re-enters lexical scope; exhausting every
// ancestor without a match means the expression is not constant. A
// QueryMeta failure other than "not found" (e.g. ErrConstCycle) is a real
// error, not evidence the ident isn't bound here, and is propagated
// immediately rather than masked by continuing the ancestor walk.
func (in *Interpreter) resolveVar(ident string, span source.Span) (value.IrValue, *EvalOutcome) {
	modulePath := in.pool.Item(in.currentModule)

	for {
		candidateId := in.pool.Intern(modulePath.Extend(ident))

		if cv, ok := in.cache.Get(candidateId); ok {
			return value.FromConst(cv), nil
		}

		m, err := in.store.QueryMeta(candidateId, true)

		switch {
		case err == nil:
			if m.Kind() != meta.KindConst {
				return value.IrValue{}, Err(&UnsupportedMetaError{Kind: m.Kind()})
			}

			return value.FromConst(m.ConstValue()), nil
		case !errors.Is(err, query.ErrItemNotFound):
			return value.IrValue{}, Err(err)
		}

		if modulePath.IsRoot() {
			break
		}

		modulePath = modulePath.Parent()
	}

	return value.IrValue{}, NotConst(span)
}

// asContinue reports whether outcome is an (unexported) continue signal
// and which label it targets.
func asContinue(o *EvalOutcome) (string, bool) {
	if o == nil || o.kind != outcomeContinue {
		return "", false
	}

	return o.label, true
}

// continueSignal builds the internal continue-loop outcome.  The formal
// EvalOutcome sum described for this evaluator is Error|NotConst|Break;
// Continue needs the identical short-circuit-and-match-a-loop-frame
// treatment, so it is modeled as a fourth, package-internal outcome kind
// rather than bolted onto Break.
func continueSignal(label string) *EvalOutcome {
	return &EvalOutcome{kind: outcomeContinue, label: label}
}
