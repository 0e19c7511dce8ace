package ir

import (
	"testing"

	"github.com/runelang/rune-core/internal/hir"
	"github.com/runelang/rune-core/internal/path"
	"github.com/runelang/rune-core/internal/source"
	"github.com/runelang/rune-core/internal/value"
)

func noConstFns(path.Item) bool { return false }

func TestCompileLiteral(t *testing.T) {
	sp := source.NewSpan(0, 2)
	node := Compile(hir.NewLit(sp, value.Int(42)), noConstFns)

	c, ok := node.(*Const)
	if !ok {
		t.Fatalf("expected *Const, got %T", node)
	}

	if !c.Value.Equals(value.Int(42)) {
		t.Fatalf("got %v", c.Value)
	}
}

func TestCompileIdentBecomesNameRead(t *testing.T) {
	sp := source.NewSpan(0, 1)
	node := Compile(hir.NewIdent(sp, "x"), noConstFns)

	read, ok := node.(*Read)
	if !ok {
		t.Fatalf("expected *Read, got %T", node)
	}

	name, ok := read.Target.(*Name)
	if !ok || name.Ident != "x" {
		t.Fatalf("expected Name(x), got %#v", read.Target)
	}
}

func TestCompileCallToNonConstFnBecomesSide(t *testing.T) {
	sp := source.NewSpan(0, 5)
	call := hir.NewCall(sp, path.Parse("foo"), nil)

	node := Compile(call, noConstFns)
	if _, ok := node.(*Side); !ok {
		t.Fatalf("expected *Side for non-const-fn call, got %T", node)
	}
}

func TestCompileCallToConstFnBecomesCallNode(t *testing.T) {
	sp := source.NewSpan(0, 5)
	call := hir.NewCall(sp, path.Parse("id"), []hir.Expr{hir.NewLit(sp, value.Int(7))})

	node := Compile(call, func(p path.Item) bool { return p.Equals(path.Parse("id")) })

	c, ok := node.(*Call)
	if !ok {
		t.Fatalf("expected *Call, got %T", node)
	}

	if len(c.Args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(c.Args))
	}
}

func TestCompileIndexLiteralLowersToIndexTarget(t *testing.T) {
	sp := source.NewSpan(0, 5)
	idx := hir.NewIndex(sp, hir.NewIdent(sp, "v"), hir.NewLit(sp, value.Int(1)))

	node := Compile(idx, noConstFns)

	read, ok := node.(*Read)
	if !ok {
		t.Fatalf("expected *Read, got %T", node)
	}

	it, ok := read.Target.(*Index)
	if !ok || it.Index != 1 {
		t.Fatalf("expected Index(_, 1), got %#v", read.Target)
	}
}
