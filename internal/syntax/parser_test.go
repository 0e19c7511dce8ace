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
package syntax

import (
	"testing"

	"github.com/runelang/rune-core/internal/hir"
	"github.com/runelang/rune-core/internal/path"
)

func parse(t *testing.T, text string) []hir.Item {
	t.Helper()

	p := NewParser(text, path.New("root"))
	items := p.ParseItems()

	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	return items
}

func TestParsesSimpleConst(t *testing.T) {
	items := parse(t, "const N = 42;")

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	c, ok := items[0].(*hir.ConstItem)
	if !ok {
		t.Fatalf("expected *hir.ConstItem, got %T", items[0])
	}

	lit, ok := c.Value.(*hir.Lit)
	if !ok || lit.Value.AsInt() != 42 {
		t.Fatalf("expected literal 42, got %#v", c.Value)
	}
}

func TestParsesConstFnWithArithmetic(t *testing.T) {
	items := parse(t, "const fn add(a, b) { a + b }")

	fn, ok := items[0].(*hir.ConstFnItem)
	if !ok {
		t.Fatalf("expected *hir.ConstFnItem, got %T", items[0])
	}

	if len(fn.Args) != 2 || fn.Args[0] != "a" || fn.Args[1] != "b" {
		t.Fatalf("unexpected args: %v", fn.Args)
	}

	block, ok := fn.Body.(*hir.Block)
	if !ok || len(block.Stmts) != 1 {
		t.Fatalf("expected single-statement block, got %#v", fn.Body)
	}

	if _, ok := block.Stmts[0].Value.(*hir.Binary); !ok {
		t.Fatalf("expected a binary expression, got %#v", block.Stmts[0].Value)
	}
}

func TestParsesIfElseAndComparisons(t *testing.T) {
	items := parse(t, "const fn sign(x) { if x > 0 { 1 } else { 0 } }")

	fn := items[0].(*hir.ConstFnItem)
	block := fn.Body.(*hir.Block)

	ifExpr, ok := block.Stmts[0].Value.(*hir.If)
	if !ok {
		t.Fatalf("expected *hir.If, got %#v", block.Stmts[0].Value)
	}

	if ifExpr.Else == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParsesLoopBreakWithValue(t *testing.T) {
	items := parse(t, "const fn ans() { loop { break 42 } }")

	fn := items[0].(*hir.ConstFnItem)
	block := fn.Body.(*hir.Block)

	loop, ok := block.Stmts[0].Value.(*hir.Loop)
	if !ok {
		t.Fatalf("expected *hir.Loop, got %#v", block.Stmts[0].Value)
	}

	body := loop.Body.(*hir.Block)

	brk, ok := body.Stmts[0].Value.(*hir.Break)
	if !ok || brk.Value == nil {
		t.Fatalf("expected a break carrying a value, got %#v", body.Stmts[0].Value)
	}
}

func TestParsesIndexAndFieldAccess(t *testing.T) {
	items := parse(t, "const fn first(v) { v.0 }")

	fn := items[0].(*hir.ConstFnItem)
	block := fn.Body.(*hir.Block)

	idx, ok := block.Stmts[0].Value.(*hir.Index)
	if !ok {
		t.Fatalf("expected *hir.Index, got %#v", block.Stmts[0].Value)
	}

	lit := idx.Index.(*hir.Lit)
	if lit.Value.AsInt() != 0 {
		t.Fatalf("expected index 0, got %d", lit.Value.AsInt())
	}
}

func TestParsesCallExpression(t *testing.T) {
	items := parse(t, "const fn wrap() { add(1, 2) }")

	fn := items[0].(*hir.ConstFnItem)
	block := fn.Body.(*hir.Block)

	call, ok := block.Stmts[0].Value.(*hir.Call)
	if !ok {
		t.Fatalf("expected *hir.Call, got %#v", block.Stmts[0].Value)
	}

	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
}

func TestParsesVecAndTupleLiterals(t *testing.T) {
	items := parse(t, "const V = [1, 2, 3];\nconst T = (1, 2);")

	v := items[0].(*hir.ConstItem)
	if _, ok := v.Value.(*hir.VecLit); !ok {
		t.Fatalf("expected *hir.VecLit, got %#v", v.Value)
	}

	tup := items[1].(*hir.ConstItem)
	if _, ok := tup.Value.(*hir.TupleLit); !ok {
		t.Fatalf("expected *hir.TupleLit, got %#v", tup.Value)
	}
}

func TestParsesNestedModule(t *testing.T) {
	items := parse(t, "mod inner { const N = 1; }")

	mod, ok := items[0].(*hir.ModuleItem)
	if !ok {
		t.Fatalf("expected *hir.ModuleItem, got %T", items[0])
	}

	if len(mod.Items) != 1 {
		t.Fatalf("expected 1 nested item, got %d", len(mod.Items))
	}

	if mod.Path().String() != "root::inner" {
		t.Fatalf("expected nested path root::inner, got %s", mod.Path().String())
	}
}

func TestParsesStructAndEnum(t *testing.T) {
	items := parse(t, "struct Point { x, y }\nenum Color { Red, Green, Blue }")

	st := items[0].(*hir.StructItem)
	if len(st.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(st.Fields))
	}

	en := items[1].(*hir.EnumItem)
	if len(en.Variants) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(en.Variants))
	}
}

func TestMacroCallRequiresTrailingSeparator(t *testing.T) {
	p := NewParser("derive!(Clone)", path.New("root"))
	p.ParseItems()

	if len(p.Errors()) == 0 {
		t.Fatal("expected an error for a macro call missing its trailing separator")
	}
}

func TestWhileLoopParses(t *testing.T) {
	items := parse(t, "const fn countdown(n) { while n > 0 { n -= 1 } }")

	fn := items[0].(*hir.ConstFnItem)
	block := fn.Body.(*hir.Block)

	w, ok := block.Stmts[0].Value.(*hir.While)
	if !ok {
		t.Fatalf("expected *hir.While, got %#v", block.Stmts[0].Value)
	}

	body := w.Body.(*hir.Block)

	if _, ok := body.Stmts[0].Value.(*hir.CompoundAssign); !ok {
		t.Fatalf("expected a compound assignment, got %#v", body.Stmts[0].Value)
	}
}
