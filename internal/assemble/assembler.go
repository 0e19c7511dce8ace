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
package assemble

import (
	"errors"
	"fmt"

	"github.com/runelang/rune-core/internal/context"
	"github.com/runelang/rune-core/internal/diag"
	"github.com/runelang/rune-core/internal/hir"
	"github.com/runelang/rune-core/internal/interp"
	"github.com/runelang/rune-core/internal/ir"
	"github.com/runelang/rune-core/internal/meta"
	"github.com/runelang/rune-core/internal/path"
	"github.com/runelang/rune-core/internal/pool"
	"github.com/runelang/rune-core/internal/query"
	"github.com/runelang/rune-core/internal/scope"
	"github.com/runelang/rune-core/internal/source"
	"github.com/runelang/rune-core/internal/value"
)

// Assembler iterates the HIR items of one compile unit and produces one
// Assembly. It also serves as the Query Engine's Elaborator: querying an
// item the Assembler hasn't elaborated yet evaluates it lazily (and, for
// a const, memoizes the result in the shared ConstCache so a cyclic
// reference is caught the same way a single const's self-reference is).
type Assembler struct {
	pool       *pool.Pool
	ctx        context.Context
	store      *query.Store
	constCache *interp.ConstCache
	index      map[string]hir.Item
	budget     uint64

	diags *diag.Bag
	srcID source.SourceId

	currentModule pool.ItemId
	locals        *scope.Stack[int]
	loops         *scope.Loops
	localCount    int
}

// NewAssembler constructs an Assembler. ctx is the host's registration
// surface, consulted by the Query Engine once the Meta Store itself has
// nothing cached for a path. The const-fn evaluation budget defaults to
// interp.DefaultBudget; override it with SetBudget.
func NewAssembler(p *pool.Pool, ctx context.Context) *Assembler {
	a := &Assembler{
		pool:       p,
		ctx:        ctx,
		constCache: interp.NewConstCache(),
		index:      make(map[string]hir.Item),
		budget:     interp.DefaultBudget,
	}
	a.store = query.NewStore(p, ctx, a, query.NoopVisitor{})

	return a
}

// SetBudget overrides the step budget given to every fresh interp.Interpreter
// this Assembler creates (interp.UnboundedBudget disables the check).
func (a *Assembler) SetBudget(n uint64) {
	a.budget = n
}

// Store exposes the Query Engine backing this Assembler, so a caller that
// has already run AssembleUnit can look up an individual item's resolved
// Meta directly (cmd/runec's `consts` driver does this to print every
// top-level const/const fn's value without re-walking the HIR itself).
func (a *Assembler) Store() *query.Store {
	return a.store
}

// Pool exposes the item-path interner backing this Assembler.
func (a *Assembler) Pool() *pool.Pool {
	return a.pool
}

// AssembleUnit elaborates and emits instructions for every item in items,
// returning the resulting Assembly and the diagnostics accumulated while
// doing so.
func (a *Assembler) AssembleUnit(src source.SourceId, items []hir.Item) (*Assembly, *diag.Bag) {
	a.srcID = src
	a.diags = diag.NewBag(src)
	a.indexItems(items)

	out := NewAssembly()

	for _, it := range items {
		a.assembleItem(out, it)
	}

	return out, a.diags
}

func (a *Assembler) indexItems(items []hir.Item) {
	for _, it := range items {
		a.index[it.Path().String()] = it

		switch v := it.(type) {
		case *hir.ModuleItem:
			a.indexItems(v.Items)
		case *hir.ImplItem:
			a.indexItems(v.Items)
		}
	}
}

// Elaborate implements query.Elaborator, lazily turning one parsed HIR item
// into its Meta on first query. It returns query.ErrItemNotFound when p
// isn't user source; any other error is a genuine elaboration failure
// (e.g. a const cycle) that must propagate as itself, not as "not found".
func (a *Assembler) Elaborate(p path.Item) (meta.Meta, error) {
	it, ok := a.index[p.String()]
	if !ok {
		return meta.Meta{}, query.ErrItemNotFound
	}

	id := a.pool.Intern(p)
	module := a.pool.Intern(p.Parent())

	// isConstFn (via resolveCallee) resolves bare call targets relative to
	// a.currentModule, so it must name this item's own module while its
	// body is being compiled, even if elaboration was re-entered partway
	// through assembling some other item.
	prevModule := a.currentModule
	a.currentModule = module

	defer func() { a.currentModule = prevModule }()

	switch v := it.(type) {
	case *hir.ConstItem:
		im := meta.ItemMeta{Item: id, Module: module, Visibility: v.Visibility, SourceId: uint32(a.srcID)}
		node := ir.Compile(v.Value, a.isConstFn)

		ev := interp.New(a.pool, a.store, a.constCache, a.budget)
		ev.SetCurrentItem(id, module)

		val, err := ev.EvalExpr(node)
		if err != nil {
			a.diags.Error(err, v.Span())
			return meta.Meta{}, err
		}

		return meta.NewConst(im, meta.EmptyParams, val), nil
	case *hir.ConstFnItem:
		im := meta.ItemMeta{Item: id, Module: module, Visibility: v.Visibility, SourceId: uint32(a.srcID)}
		fn := &ir.Fn{Args: v.Args, Body: ir.Compile(v.Body, a.isConstFn)}

		return meta.NewConstFn(im, meta.EmptyParams, fn), nil
	case *hir.FnItem:
		im := meta.ItemMeta{Item: id, Module: module, Visibility: v.Visibility, SourceId: uint32(a.srcID)}
		return meta.NewFn(im, meta.EmptyParams), nil
	case *hir.StructItem:
		im := meta.ItemMeta{Item: id, Module: module, Visibility: v.Visibility, SourceId: uint32(a.srcID)}
		return meta.NewStruct(im, meta.EmptyParams), nil
	case *hir.EnumItem:
		im := meta.ItemMeta{Item: id, Module: module, Visibility: v.Visibility, SourceId: uint32(a.srcID)}
		return meta.NewEnum(im, meta.EmptyParams, v.Variants), nil
	case *hir.ModuleItem:
		im := meta.ItemMeta{Item: id, Module: module, Visibility: v.Visibility, SourceId: uint32(a.srcID)}
		return meta.NewModule(im), nil
	case *hir.ImplItem:
		im := meta.ItemMeta{Item: id, Module: module, SourceId: uint32(a.srcID)}
		return meta.NewImpl(im, meta.EmptyParams), nil
	case *hir.MacroItem:
		im := meta.ItemMeta{Item: id, Module: module, SourceId: uint32(a.srcID)}
		return meta.NewMacro(im), nil
	default:
		return meta.Meta{}, query.ErrItemNotFound
	}
}

// isConstFn is wired into ir.Compile as the KnownConstFn predicate: a call
// target lowers to a real Call node only if it resolves to a const fn,
// otherwise to Side.
func (a *Assembler) isConstFn(callee path.Item) bool {
	_, m, err := a.resolveCallee(callee, source.Span{})
	return err == nil && m.Kind() == meta.KindConstFn
}

// resolveCallee resolves a call target the same way resolve_var resolves a
// bare identifier (spec.md §4.4): a path of depth greater than one is
// looked up exactly as written, but a bare single-component name is tried
// against `ancestor::name` for every module enclosing the call site,
// innermost first, since that is how the parser emits calls to sibling
// items in the same module (it has no import table to qualify them with).
func (a *Assembler) resolveCallee(callee path.Item, span source.Span) (pool.ItemId, meta.Meta, error) {
	if callee.Depth() != 1 {
		id := a.pool.Intern(callee)
		m, err := a.store.LookupMeta(a.srcID, span, id, false, meta.EmptyParams)

		return id, m, err
	}

	modulePath := a.pool.Item(a.currentModule)

	var lastErr error

	for {
		id := a.pool.Intern(modulePath.Join(callee))

		m, err := a.store.LookupMeta(a.srcID, span, id, false, meta.EmptyParams)
		if err == nil {
			return id, m, nil
		}

		lastErr = err

		var missing *query.MissingItem
		if !errors.As(err, &missing) {
			return id, meta.Meta{}, err
		}

		if modulePath.IsRoot() {
			return id, meta.Meta{}, lastErr
		}

		modulePath = modulePath.Parent()
	}
}

func (a *Assembler) assembleItem(out *Assembly, it hir.Item) {
	switch v := it.(type) {
	case *hir.ConstItem:
		id := a.pool.Intern(v.Path())

		m, err := a.store.QueryMeta(id, false)
		if err != nil {
			return
		}

		out.MarkLabel(v.Path().String(), v.Span())
		a.emit(out, PushConst{Index: out.InternConst(m.ConstValue())}, v.Span())
	case *hir.ConstFnItem:
		// Const fns have no standalone instruction stream; they are only
		// ever evaluated through call_const_fn.
	case *hir.FnItem:
		a.assembleFn(out, v.Path().String(), v.Args, v.Body, v.Span())
	case *hir.ModuleItem:
		for _, sub := range v.Items {
			a.assembleItem(out, sub)
		}
	case *hir.ImplItem:
		for _, sub := range v.Items {
			a.assembleItem(out, sub)
		}
	case *hir.StructItem, *hir.EnumItem, *hir.UseItem, *hir.MacroItem:
		// Registration only; these contribute no instructions.
	}
}

func (a *Assembler) assembleFn(out *Assembly, label string, args []string, body hir.Expr, span source.Span) {
	a.currentModule = a.pool.Intern(path.Parse(label).Parent())
	a.locals = scope.New[int]()
	a.loops = scope.NewLoops()
	a.localCount = 0

	out.MarkLabel(label, span)

	guard := a.locals.Push()
	for _, arg := range args {
		a.locals.Declare(arg, a.localCount)
		a.localCount++
	}

	a.emitExpr(out, body, NeedsValue)
	a.locals.Pop(guard)
}

func (a *Assembler) emit(out *Assembly, i Instruction, span source.Span) {
	out.Emit(i, span)
}

// locals_pop emits the cleanup for discarding n locals outright: Pop for a
// single slot, PopN for more than one, nothing at all for zero.
func (a *Assembler) locals_pop(out *Assembly, span source.Span, n int) { //nolint:revive
	switch {
	case n == 1:
		a.emit(out, Pop{}, span)
	case n > 1:
		a.emit(out, PopN{Count: n}, span)
	}
}

// locals_clean emits the cleanup for discarding n locals while preserving
// whatever value is already on top of the stack.
func (a *Assembler) locals_clean(out *Assembly, span source.Span, n int) { //nolint:revive
	if n == 0 {
		return
	}

	a.emit(out, Clean{Count: n}, span)
}

// clean_last_scope pops the scope, then cleans n locals the way needs
// demands: locals_clean if a value is wanted, locals_pop otherwise.
func (a *Assembler) clean_last_scope(out *Assembly, span source.Span, n int, needs Needs) { //nolint:revive
	if needs.Value() {
		a.locals_clean(out, span, n)
	} else {
		a.locals_pop(out, span, n)
	}
}

// callConstFn is the Assembler's call_const_fn operation: it validates the
// call by simply delegating to a fresh Interpreter's own evalCall (which
// performs the arity check), compiling and evaluating each argument in the
// caller's module first.  Unlike evalCall's in-evaluation call path (see
// DESIGN.md decision 3), this always gets its own Interpreter and budget,
// since it is reached only from ordinary (non-const) compiled code.
//
// Each argument, and the call itself, gets its own fresh Interpreter (and
// so its own empty ConstCache): EvalExpr's outer caching is keyed only by
// "current item", and every argument here shares the same current item
// (the caller's enclosing module, since a plain argument expression names
// no item of its own) — reusing one Interpreter across them would cache
// the first argument's value and silently hand it back for every
// following one.
func (a *Assembler) callConstFn(span source.Span, callee path.Item, callerModule pool.ItemId, argExprs []hir.Expr) (value.ConstValue, error) {
	argConsts := make([]ir.Node, len(argExprs))

	for i, e := range argExprs {
		node := ir.Compile(e, a.isConstFn)

		argEval := interp.New(a.pool, a.store, interp.NewConstCache(), a.budget)
		argEval.SetCurrentItem(callerModule, callerModule)

		v, err := argEval.EvalExpr(node)
		if err != nil {
			return value.ConstValue{}, err
		}

		argConsts[i] = ir.NewConst(node.Span(), v)
	}

	fresh := interp.New(a.pool, a.store, interp.NewConstCache(), a.budget)
	fresh.SetCurrentItem(callerModule, callerModule)

	return fresh.EvalExpr(ir.NewCall(span, callee, argConsts))
}

// ---- expression emission ----

func (a *Assembler) emitExpr(out *Assembly, e hir.Expr, needs Needs) {
	a.diags.PushContext(e.Span())
	defer a.diags.PopContext()

	switch ex := e.(type) {
	case *hir.Lit:
		a.emit(out, PushConst{Index: out.InternConst(ex.Value)}, ex.Span())
		a.adjust(out, needs, ex.Span())
	case *hir.Ident:
		a.emitIdent(out, ex, needs)
	case *hir.Field:
		a.emitExpr(out, ex.Target, NeedsValue)
		a.emit(out, FieldGet{Name: ex.Name}, ex.Span())
		a.adjust(out, needs, ex.Span())
	case *hir.Index:
		a.emitExpr(out, ex.Target, NeedsValue)
		a.emitExpr(out, ex.Index, NeedsValue)
		a.emit(out, IndexGet{}, ex.Span())
		a.adjust(out, needs, ex.Span())
	case *hir.Binary:
		a.emitExpr(out, ex.Left, NeedsValue)
		a.emitExpr(out, ex.Right, NeedsValue)
		a.emit(out, BinaryOp{Op: ex.Op}, ex.Span())
		a.adjust(out, needs, ex.Span())
	case *hir.Unary:
		a.emitExpr(out, ex.Operand, NeedsValue)
		a.emit(out, UnaryOp{Op: ex.Op}, ex.Span())
		a.adjust(out, needs, ex.Span())
	case *hir.Block:
		a.emitBlock(out, ex, needs)
	case *hir.If:
		a.emitIf(out, ex, needs)
	case *hir.Match:
		a.emitMatch(out, ex, needs)
	case *hir.Loop:
		a.emitLoop(out, ex, needs)
	case *hir.While:
		a.emitWhile(out, ex, needs)
	case *hir.For:
		a.emitFor(out, ex, needs)
	case *hir.Break:
		a.emitBreak(out, ex)
	case *hir.Continue:
		a.emitContinue(out, ex)
	case *hir.Call:
		a.emitCall(out, ex, needs)
	case *hir.Assign:
		a.emitAssign(out, ex, needs)
	case *hir.CompoundAssign:
		a.emitCompoundAssign(out, ex, needs)
	case *hir.TupleLit:
		for _, el := range ex.Elems {
			a.emitExpr(out, el, NeedsValue)
		}

		a.emit(out, MakeTuple{Count: len(ex.Elems)}, ex.Span())
		a.adjust(out, needs, ex.Span())
	case *hir.VecLit:
		for _, el := range ex.Elems {
			a.emitExpr(out, el, NeedsValue)
		}

		a.emit(out, MakeVec{Count: len(ex.Elems)}, ex.Span())
		a.adjust(out, needs, ex.Span())
	case *hir.ObjectLit:
		for _, el := range ex.Values {
			a.emitExpr(out, el, NeedsValue)
		}

		a.emit(out, MakeObject{Keys: ex.Keys}, ex.Span())
		a.adjust(out, needs, ex.Span())
	case *hir.Side:
		a.diags.Error(errors.New("expression has a non-constant side effect here"), ex.Span())
	default:
		a.diags.Error(fmt.Errorf("unsupported expression %T", e), e.Span())
	}
}

// adjust discards the one net value an emitted expression leaves on the
// stack when the surrounding context didn't ask for it.
func (a *Assembler) adjust(out *Assembly, needs Needs, span source.Span) {
	if !needs.Value() {
		a.locals_pop(out, span, 1)
	}
}

func (a *Assembler) emitIdent(out *Assembly, ex *hir.Ident, needs Needs) {
	if slot, ok := a.locals.Lookup(ex.Name); ok {
		a.emit(out, LoadLocal{Slot: slot}, ex.Span())
		a.adjust(out, needs, ex.Span())

		return
	}

	_, m, err := a.resolveCallee(path.New(ex.Name), ex.Span())
	if err != nil {
		a.diags.Error(err, ex.Span())
		return
	}

	if m.Kind() != meta.KindConst {
		a.diags.Error(&interp.UnsupportedMetaError{Kind: m.Kind()}, ex.Span())
		return
	}

	a.emit(out, PushConst{Index: out.InternConst(m.ConstValue())}, ex.Span())
	a.adjust(out, needs, ex.Span())
}

func (a *Assembler) emitBlock(out *Assembly, blk *hir.Block, needs Needs) {
	guard := a.locals.Push()

	var declaredNames []string

	reused := false

	for i, stmt := range blk.Stmts {
		last := i == len(blk.Stmts)-1

		if stmt.Let != "" {
			a.emitExpr(out, stmt.Value, NeedsValue)
			a.locals.Declare(stmt.Let, a.localCount)
			declaredNames = append(declaredNames, stmt.Let)
			a.localCount++

			continue
		}

		if last && needs.Value() {
			if id, ok := stmt.Value.(*hir.Ident); ok && len(declaredNames) > 0 && id.Name == declaredNames[len(declaredNames)-1] {
				reused = true
				continue
			}
		}

		stmtNeeds := Needs(NeedsNone)
		if last {
			stmtNeeds = needs
		}

		a.emitExpr(out, stmt.Value, stmtNeeds)
	}

	if len(blk.Stmts) == 0 && needs.Value() {
		a.emit(out, PushConst{Index: out.InternConst(value.Unit())}, blk.Span())
	}

	a.locals.Pop(guard)
	a.localCount -= len(declaredNames)

	n := len(declaredNames)
	if reused && n > 0 {
		n--
	}

	a.clean_last_scope(out, blk.Span(), n, needs)
}

func (a *Assembler) emitIf(out *Assembly, f *hir.If, needs Needs) {
	a.emitExpr(out, f.Cond, NeedsValue)

	elseLabel := out.NewLabel("if_else")
	endLabel := out.NewLabel("if_end")

	a.emit(out, JumpIfFalse{Label: elseLabel}, f.Span())
	a.emitExpr(out, f.Then, needs)
	a.emit(out, Jump{Label: endLabel}, f.Span())
	out.MarkLabel(elseLabel, f.Span())

	switch {
	case f.Else != nil:
		a.emitExpr(out, f.Else, needs)
	case needs.Value():
		a.emit(out, PushConst{Index: out.InternConst(value.Unit())}, f.Span())
	}

	out.MarkLabel(endLabel, f.Span())
}

func (a *Assembler) emitMatch(out *Assembly, m *hir.Match, needs Needs) {
	a.emitExpr(out, m.Scrutinee, NeedsValue)

	guard := a.locals.Push()
	a.locals.Declare("$scrutinee", a.localCount)

	tempSlot := a.localCount
	a.localCount++

	endLabel := out.NewLabel("match_end")

	for _, arm := range m.Arms {
		var nextLabel string

		if arm.Pattern != nil {
			nextLabel = out.NewLabel("match_arm")

			a.emit(out, LoadLocal{Slot: tempSlot}, m.Span())
			a.emit(out, PushConst{Index: out.InternConst(*arm.Pattern)}, m.Span())
			a.emit(out, BinaryOp{Op: hir.Eq}, m.Span())
			a.emit(out, JumpIfFalse{Label: nextLabel}, m.Span())
		}

		a.emitExpr(out, arm.Body, needs)
		a.emit(out, Jump{Label: endLabel}, m.Span())

		if arm.Pattern != nil {
			out.MarkLabel(nextLabel, m.Span())
		}
	}

	out.MarkLabel(endLabel, m.Span())

	a.locals.Pop(guard)
	a.localCount--

	a.clean_last_scope(out, m.Span(), 1, needs)
}

func (a *Assembler) emitLoop(out *Assembly, l *hir.Loop, needs Needs) {
	startLabel := out.NewLabel("loop_start")
	breakLabel := out.NewLabel("loop_break")

	a.loops.Enter(scope.Frame{
		Label: l.Label, StartLabel: startLabel, BreakLabel: breakLabel,
		ExpectsValue: needs.Value(), LocalCountAtEntry: a.localCount,
	})

	out.MarkLabel(startLabel, l.Span())
	a.emitExpr(out, l.Body, NeedsNone)
	a.emit(out, Jump{Label: startLabel}, l.Span())
	out.MarkLabel(breakLabel, l.Span())

	a.loops.Exit()
}

func (a *Assembler) emitWhile(out *Assembly, w *hir.While, needs Needs) {
	startLabel := out.NewLabel("while_start")
	breakLabel := out.NewLabel("while_break")

	out.MarkLabel(startLabel, w.Span())
	a.emitExpr(out, w.Cond, NeedsValue)
	a.emit(out, JumpIfFalse{Label: breakLabel}, w.Span())

	a.loops.Enter(scope.Frame{
		Label: w.Label, StartLabel: startLabel, BreakLabel: breakLabel,
		ExpectsValue: false, LocalCountAtEntry: a.localCount,
	})
	a.emitExpr(out, w.Body, NeedsNone)
	a.loops.Exit()

	a.emit(out, Jump{Label: startLabel}, w.Span())
	out.MarkLabel(breakLabel, w.Span())

	if needs.Value() {
		a.emit(out, PushConst{Index: out.InternConst(value.Unit())}, w.Span())
	}
}

func (a *Assembler) emitFor(out *Assembly, f *hir.For, needs Needs) {
	a.emitExpr(out, f.Iter, NeedsValue)

	guard := a.locals.Push()
	a.locals.Declare(f.Var, a.localCount)
	a.localCount++

	startLabel := out.NewLabel("for_start")
	breakLabel := out.NewLabel("for_break")

	out.MarkLabel(startLabel, f.Span())
	a.emit(out, ForNext{Var: f.Var}, f.Span())

	a.loops.Enter(scope.Frame{
		Label: f.Label, StartLabel: startLabel, BreakLabel: breakLabel,
		ExpectsValue: false, LocalCountAtEntry: a.localCount,
	})
	a.emitExpr(out, f.Body, NeedsNone)
	a.loops.Exit()

	a.emit(out, Jump{Label: startLabel}, f.Span())
	out.MarkLabel(breakLabel, f.Span())

	a.locals.Pop(guard)
	a.localCount--
	a.locals_pop(out, f.Span(), 1) // the iterable itself

	if needs.Value() {
		a.emit(out, PushConst{Index: out.InternConst(value.Unit())}, f.Span())
	}
}

func (a *Assembler) emitBreak(out *Assembly, br *hir.Break) {
	frame, ok := a.loops.Labelled(br.Label)
	if !ok {
		a.diags.Error(errors.New("break outside of loop"), br.Span())
		return
	}

	hasValue := br.Value != nil

	if frame.ExpectsValue && !hasValue {
		a.diags.Warn(diag.BreakDoesNotProduceValue, br.Span())
	}

	if hasValue {
		a.emitExpr(out, br.Value, NeedsValue)
	}

	n := a.localCount - frame.LocalCountAtEntry

	if frame.ExpectsValue && hasValue {
		a.locals_clean(out, br.Span(), n)
	} else {
		a.locals_pop(out, br.Span(), n)
	}

	a.emit(out, Jump{Label: frame.BreakLabel}, br.Span())
}

func (a *Assembler) emitContinue(out *Assembly, c *hir.Continue) {
	frame, ok := a.loops.Labelled(c.Label)
	if !ok {
		a.diags.Error(errors.New("continue outside of loop"), c.Span())
		return
	}

	n := a.localCount - frame.LocalCountAtEntry
	a.locals_pop(out, c.Span(), n)
	a.emit(out, Jump{Label: frame.StartLabel}, c.Span())
}

func (a *Assembler) emitCall(out *Assembly, call *hir.Call, needs Needs) {
	calleeID, m, err := a.resolveCallee(call.Callee, call.Span())
	if err != nil {
		a.diags.Error(err, call.Span())
		return
	}

	if m.Kind() == meta.KindConstFn {
		v, callErr := a.callConstFn(call.Span(), a.pool.Item(calleeID), a.currentModule, call.Args)
		if callErr != nil {
			a.diags.Error(callErr, call.Span())
			return
		}

		a.emit(out, PushConst{Index: out.InternConst(v)}, call.Span())
		a.adjust(out, needs, call.Span())

		return
	}

	for _, arg := range call.Args {
		a.emitExpr(out, arg, NeedsValue)
	}

	a.emit(out, CallOp{Callee: a.pool.Item(calleeID), Argc: len(call.Args)}, call.Span())
	a.adjust(out, needs, call.Span())
}

func (a *Assembler) emitAssign(out *Assembly, asg *hir.Assign, needs Needs) {
	ident, ok := asg.Target.(*hir.Ident)
	if !ok {
		a.diags.Error(errors.New("assignment target must be a variable"), asg.Span())
		return
	}

	slot, ok := a.locals.Lookup(ident.Name)
	if !ok {
		a.diags.Error(&interp.UndefinedVariableError{Name: ident.Name, Span: ident.Span()}, asg.Span())
		return
	}

	a.emitExpr(out, asg.Value, NeedsValue)
	a.emit(out, StoreLocal{Slot: slot}, asg.Span())

	if needs.Value() {
		a.emit(out, PushConst{Index: out.InternConst(value.Unit())}, asg.Span())
	}
}

func (a *Assembler) emitCompoundAssign(out *Assembly, asg *hir.CompoundAssign, needs Needs) {
	ident, ok := asg.Target.(*hir.Ident)
	if !ok {
		a.diags.Error(errors.New("assignment target must be a variable"), asg.Span())
		return
	}

	slot, ok := a.locals.Lookup(ident.Name)
	if !ok {
		a.diags.Error(&interp.UndefinedVariableError{Name: ident.Name, Span: ident.Span()}, asg.Span())
		return
	}

	a.emit(out, LoadLocal{Slot: slot}, asg.Span())
	a.emitExpr(out, asg.Value, NeedsValue)
	a.emit(out, BinaryOp{Op: asg.Op}, asg.Span())
	a.emit(out, StoreLocal{Slot: slot}, asg.Span())

	if needs.Value() {
		a.emit(out, PushConst{Index: out.InternConst(value.Unit())}, asg.Span())
	}
}
