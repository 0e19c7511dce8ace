package meta

import (
	"testing"

	"github.com/runelang/rune-core/internal/ir"
	"github.com/runelang/rune-core/internal/pool"
	"github.com/runelang/rune-core/internal/source"
	"github.com/runelang/rune-core/internal/value"
)

func TestConstMetaCarriesValue(t *testing.T) {
	im := ItemMeta{Item: pool.ItemId(1), Module: pool.ItemId(0), Visibility: Public}
	m := NewConst(im, EmptyParams, value.Int(42))

	if m.Kind() != KindConst {
		t.Fatalf("expected KindConst, got %v", m.Kind())
	}

	if !m.ConstValue().Equals(value.Int(42)) {
		t.Fatalf("got %v", m.ConstValue())
	}
}

func TestConstFnMetaCarriesBody(t *testing.T) {
	sp := source.NewSpan(0, 1)
	body := ir.NewRead(sp, ir.NewName(sp, "x"))
	fn := &ir.Fn{Args: []string{"x"}, Body: body}

	im := ItemMeta{Item: pool.ItemId(2)}
	m := NewConstFn(im, EmptyParams, fn)

	if m.Kind() != KindConstFn {
		t.Fatalf("expected KindConstFn, got %v", m.Kind())
	}

	if m.ConstFn() != fn {
		t.Fatalf("expected same *ir.Fn back")
	}
}

func TestMetaKindIsCallable(t *testing.T) {
	if KindModule.IsCallable() {
		t.Fatalf("module should not be callable")
	}

	if KindMacro.IsCallable() {
		t.Fatalf("macro should not be callable")
	}

	if !KindConstFn.IsCallable() {
		t.Fatalf("const fn should be callable")
	}
}

func TestEnumMetaCarriesVariants(t *testing.T) {
	im := ItemMeta{Item: pool.ItemId(3)}
	m := NewEnum(im, EmptyParams, []string{"A", "B"})

	vs := m.Variants()
	if len(vs) != 2 || vs[0] != "A" || vs[1] != "B" {
		t.Fatalf("got %v", vs)
	}
}

func TestConstValueAccessorPanicsOnWrongKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()

	m := NewFn(ItemMeta{}, EmptyParams)
	m.ConstValue()
}
