package query

import (
	"errors"
	"testing"

	"github.com/runelang/rune-core/internal/context"
	"github.com/runelang/rune-core/internal/meta"
	"github.com/runelang/rune-core/internal/path"
	"github.com/runelang/rune-core/internal/pool"
	"github.com/runelang/rune-core/internal/source"
	"github.com/runelang/rune-core/internal/value"
)

type fakeElaborator struct {
	items map[string]meta.Meta
}

func (f *fakeElaborator) Elaborate(item path.Item) (meta.Meta, error) {
	m, ok := f.items[item.String()]
	if !ok {
		return meta.Meta{}, ErrItemNotFound
	}

	return m, nil
}

func TestQueryMetaHitsUserSource(t *testing.T) {
	p := pool.New()
	id := p.Intern(path.Parse("m::x"))

	elab := &fakeElaborator{items: map[string]meta.Meta{
		"m::x": meta.NewConst(meta.ItemMeta{Item: id}, meta.EmptyParams, value.Int(1)),
	}}

	s := NewStore(p, context.NewStaticContext(), elab, NoopVisitor{})

	m, err := s.QueryMeta(id, true)
	if err != nil {
		t.Fatalf("expected hit, got error: %v", err)
	}

	if m.Kind() != meta.KindConst {
		t.Fatalf("got %v", m.Kind())
	}

	if !s.IsUsed(id) {
		t.Fatalf("expected used flag set")
	}
}

func TestLookupMetaFallsBackToContextOnMiss(t *testing.T) {
	p := pool.New()
	id := p.Intern(path.Parse("host::builtin"))

	ctx := context.NewStaticContext()
	ctx.Register(path.Parse("host::builtin"), meta.KindFn, meta.EmptyParams, "host::builtin: fn()")

	s := NewStore(p, ctx, &fakeElaborator{items: map[string]meta.Meta{}}, NoopVisitor{})

	m, err := s.LookupMeta(0, source.NewSpan(0, 1), id, false, meta.EmptyParams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Kind() != meta.KindFn {
		t.Fatalf("got %v", m.Kind())
	}
}

func TestLookupMetaAmbiguous(t *testing.T) {
	p := pool.New()
	id := p.Intern(path.Parse("m::f"))

	ctx := context.NewStaticContext()
	ctx.Register(path.Parse("m::f"), meta.KindFn, meta.EmptyParams, "candidate A")
	ctx.Register(path.Parse("m::f"), meta.KindFn, meta.EmptyParams, "candidate B")

	s := NewStore(p, ctx, &fakeElaborator{items: map[string]meta.Meta{}}, NoopVisitor{})

	_, err := s.LookupMeta(0, source.NewSpan(0, 1), id, false, meta.EmptyParams)

	var ambig *AmbiguousContextItem
	if !errors.As(err, &ambig) {
		t.Fatalf("expected AmbiguousContextItem, got %v", err)
	}

	if len(ambig.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ambig.Candidates))
	}
}

func TestLookupMetaMissing(t *testing.T) {
	p := pool.New()
	id := p.Intern(path.Parse("m::nope"))

	s := NewStore(p, context.NewStaticContext(), &fakeElaborator{items: map[string]meta.Meta{}}, NoopVisitor{})

	_, err := s.LookupMeta(0, source.NewSpan(0, 1), id, false, meta.EmptyParams)

	var missing *MissingItem
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingItem, got %v", err)
	}
}

func TestLookupMetaMissingParameters(t *testing.T) {
	p := pool.New()
	id := p.Intern(path.Parse("m::generic"))

	ctx := context.NewStaticContext()
	ctx.Register(path.Parse("m::generic"), meta.KindFn, meta.EmptyParams, "m::generic<int>")

	s := NewStore(p, ctx, &fakeElaborator{items: map[string]meta.Meta{}}, NoopVisitor{})

	_, err := s.LookupMeta(0, source.NewSpan(0, 1), id, true, meta.ParamsHash(99))

	var missing *MissingItemParameters
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingItemParameters, got %v", err)
	}
}

func TestLookupMetaFiltersOutModuleAndMacroKinds(t *testing.T) {
	p := pool.New()
	id := p.Intern(path.Parse("m"))

	ctx := context.NewStaticContext()
	ctx.Register(path.Parse("m"), meta.KindModule, meta.EmptyParams, "m: module")

	s := NewStore(p, ctx, &fakeElaborator{items: map[string]meta.Meta{}}, NoopVisitor{})

	_, err := s.LookupMeta(0, source.NewSpan(0, 1), id, false, meta.EmptyParams)

	var missing *MissingItem
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingItem (module filtered out), got %v", err)
	}
}
