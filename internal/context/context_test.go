package context

import (
	"testing"

	"github.com/runelang/rune-core/internal/meta"
	"github.com/runelang/rune-core/internal/path"
)

func TestStaticContextLookupMissing(t *testing.T) {
	c := NewStaticContext()

	if got := c.LookupMeta(path.Parse("m::f")); len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
}

func TestStaticContextLookupSingle(t *testing.T) {
	c := NewStaticContext()
	c.Register(path.Parse("m::f"), meta.KindFn, meta.EmptyParams, "m.f: builtin fn")

	got := c.LookupMeta(path.Parse("m::f"))
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}

	if got[0].Kind() != meta.KindFn {
		t.Fatalf("expected KindFn, got %v", got[0].Kind())
	}
}

func TestStaticContextAllowsDuplicateRegistration(t *testing.T) {
	c := NewStaticContext()
	c.Register(path.Parse("m::f"), meta.KindFn, meta.EmptyParams, "first")
	c.Register(path.Parse("m::f"), meta.KindFn, meta.EmptyParams, "second")

	got := c.LookupMeta(path.Parse("m::f"))
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates (ambiguity is the Query Engine's concern), got %d", len(got))
	}
}
