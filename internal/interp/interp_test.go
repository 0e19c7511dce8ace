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
	"testing"

	"github.com/runelang/rune-core/internal/context"
	"github.com/runelang/rune-core/internal/ir"
	"github.com/runelang/rune-core/internal/meta"
	"github.com/runelang/rune-core/internal/path"
	"github.com/runelang/rune-core/internal/pool"
	"github.com/runelang/rune-core/internal/query"
	"github.com/runelang/rune-core/internal/source"
	"github.com/runelang/rune-core/internal/value"
)

var sp = source.NewSpan(0, 1)

type fakeElab struct {
	fns map[string]*ir.Fn
}

func (f *fakeElab) Elaborate(item path.Item) (meta.Meta, error) {
	fn, ok := f.fns[item.String()]
	if !ok {
		return meta.Meta{}, query.ErrItemNotFound
	}

	return meta.NewConstFn(meta.ItemMeta{}, meta.EmptyParams, fn), nil
}

func newTestInterpreter(t *testing.T, fns map[string]*ir.Fn) (*Interpreter, *pool.Pool) {
	t.Helper()

	p := pool.New()
	store := query.NewStore(p, context.NewStaticContext(), &fakeElab{fns: fns}, query.NoopVisitor{})
	in := New(p, store, NewConstCache(), DefaultBudget)

	return in, p
}

func TestEvalExprSimpleArithmetic(t *testing.T) {
	in, p := newTestInterpreter(t, nil)
	in.SetCurrentItem(p.Intern(path.New("a")), p.Intern(path.New()))

	body := ir.NewBinary(sp, ir.Add, ir.NewConst(sp, value.Int(2)), ir.NewConst(sp, value.Int(3)))

	cv, err := in.EvalExpr(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cv.AsInt() != 5 {
		t.Fatalf("expected 5, got %d", cv.AsInt())
	}
}

func TestEvalExprIntDivisionByZeroIsADiagnosableError(t *testing.T) {
	in, p := newTestInterpreter(t, nil)
	in.SetCurrentItem(p.Intern(path.New("a")), p.Intern(path.New()))

	body := ir.NewBinary(sp, ir.Div, ir.NewConst(sp, value.Int(1)), ir.NewConst(sp, value.Int(0)))

	_, err := in.EvalExpr(body)

	var divZero *DivisionByZeroError
	if !errors.As(err, &divZero) {
		t.Fatalf("expected DivisionByZeroError, got %v", err)
	}
}

func TestConstCacheMarkDetectsCycle(t *testing.T) {
	// const A = B; const B = A;
	p := pool.New()
	aId := p.Intern(path.New("A"))
	bId := p.Intern(path.New("B"))

	cache := NewConstCache()
	store := query.NewStore(p, context.NewStaticContext(), &fakeElab{}, query.NoopVisitor{})
	in := New(p, store, cache, DefaultBudget)

	aBody := ir.NewRead(sp, ir.NewName(sp, "__unused__"))
	_ = aBody

	// Simulate resolveVar-style re-entrancy directly through the cache:
	// marking A, then marking B while A is still marked, then re-entering A.
	if err := cache.Mark(aId); err != nil {
		t.Fatalf("unexpected error marking A: %v", err)
	}

	if err := cache.Mark(bId); err != nil {
		t.Fatalf("unexpected error marking B: %v", err)
	}

	if err := cache.Mark(aId); !errors.Is(err, ErrConstCycle) {
		t.Fatalf("expected ErrConstCycle re-marking A, got %v", err)
	}

	_ = in
}

func TestEvalExprConstFnCall(t *testing.T) {
	// const fn id(x) { x }
	idFn := &ir.Fn{Args: []string{"x"}, Body: ir.NewRead(sp, ir.NewName(sp, "x"))}

	in, p := newTestInterpreter(t, map[string]*ir.Fn{"id": idFn})
	in.SetCurrentItem(p.Intern(path.New("caller")), p.Intern(path.New()))

	call := ir.NewCall(sp, path.New("id"), []ir.Node{ir.NewConst(sp, value.Int(7))})

	cv, err := in.EvalExpr(call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cv.AsInt() != 7 {
		t.Fatalf("expected 7, got %d", cv.AsInt())
	}
}

func TestEvalExprBudgetExceeded(t *testing.T) {
	// const fn bad() { bad() }
	var badFn *ir.Fn
	badFn = &ir.Fn{Args: nil, Body: ir.NewCall(sp, path.New("bad"), nil)}

	p := pool.New()
	store := query.NewStore(p, context.NewStaticContext(), &fakeElab{fns: map[string]*ir.Fn{"bad": badFn}}, query.NoopVisitor{})
	in := New(p, store, NewConstCache(), DefaultBudget)
	in.SetCurrentItem(p.Intern(path.New("caller")), p.Intern(path.New()))

	call := ir.NewCall(sp, path.New("bad"), nil)

	_, err := in.EvalExpr(call)
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("expected ErrBudgetExceeded, got %v", err)
	}
}

func TestEvalExprIndexAccess(t *testing.T) {
	in, p := newTestInterpreter(t, nil)
	in.SetCurrentItem(p.Intern(path.New("a")), p.Intern(path.New()))

	vecLit := value.Vec(value.Int(10), value.Int(20), value.Int(30))

	block := ir.NewBlock(sp, []ir.Stmt{
		{Let: "v", Value: ir.NewConst(sp, vecLit)},
		{Value: ir.NewRead(sp, ir.NewIndex(sp, ir.NewName(sp, "v"), 1))},
	})

	cv, err := in.EvalExpr(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cv.AsInt() != 20 {
		t.Fatalf("expected 20, got %d", cv.AsInt())
	}
}

func TestEvalExprTargetRoundTrip(t *testing.T) {
	in, p := newTestInterpreter(t, nil)
	in.SetCurrentItem(p.Intern(path.New("a")), p.Intern(path.New()))

	// { let v = [1]; v.0 = 9; v.0 }
	block := ir.NewBlock(sp, []ir.Stmt{
		{Let: "v", Value: ir.NewConst(sp, value.Vec(value.Int(1)))},
		{Value: ir.NewAssign(sp, ir.NewIndex(sp, ir.NewName(sp, "v"), 0), ir.NewConst(sp, value.Int(9)))},
		{Value: ir.NewRead(sp, ir.NewIndex(sp, ir.NewName(sp, "v"), 0))},
	})

	cv, err := in.EvalExpr(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cv.AsInt() != 9 {
		t.Fatalf("expected round-tripped write to read back as 9, got %d", cv.AsInt())
	}
}

func TestEvalExprSideIsNotConst(t *testing.T) {
	in, p := newTestInterpreter(t, nil)
	in.SetCurrentItem(p.Intern(path.New("a")), p.Intern(path.New()))

	_, err := in.EvalExpr(ir.NewSide(sp))

	var nc *NotConstError
	if !errors.As(err, &nc) {
		t.Fatalf("expected NotConstError, got %v", err)
	}
}

func TestEvalLoopBreakWithValue(t *testing.T) {
	in, p := newTestInterpreter(t, nil)
	in.SetCurrentItem(p.Intern(path.New("a")), p.Intern(path.New()))

	// loop { break 42 }
	loop := ir.NewLoop(sp, "", ir.NewBreak(sp, "", ir.NewConst(sp, value.Int(42))))

	cv, err := in.EvalExpr(loop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cv.AsInt() != 42 {
		t.Fatalf("expected 42, got %d", cv.AsInt())
	}
}

func TestEvalWhileCountsDown(t *testing.T) {
	in, p := newTestInterpreter(t, nil)
	in.SetCurrentItem(p.Intern(path.New("a")), p.Intern(path.New()))

	// { let n = 3; while n > 0 { n -= 1 }; n }
	block := ir.NewBlock(sp, []ir.Stmt{
		{Let: "n", Value: ir.NewConst(sp, value.Int(3))},
		{Value: ir.NewWhile(sp, "",
			ir.NewBinary(sp, ir.Gt, ir.NewRead(sp, ir.NewName(sp, "n")), ir.NewConst(sp, value.Int(0))),
			ir.NewCompoundAssign(sp, ir.NewName(sp, "n"), ir.Sub, ir.NewConst(sp, value.Int(1))),
		)},
		{Value: ir.NewRead(sp, ir.NewName(sp, "n"))},
	})

	cv, err := in.EvalExpr(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cv.AsInt() != 0 {
		t.Fatalf("expected 0, got %d", cv.AsInt())
	}
}
