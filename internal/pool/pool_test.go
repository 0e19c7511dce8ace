package pool

import (
	"testing"

	"github.com/runelang/rune-core/internal/path"
)

func TestInterningIsIdempotent(t *testing.T) {
	p := New()

	a := p.Intern(path.Parse("foo::bar"))
	b := p.Intern(path.Parse("foo::bar"))

	if a != b {
		t.Fatalf("expected same id for repeated intern, got %d and %d", a, b)
	}
}

func TestInterningIsInjective(t *testing.T) {
	p := New()

	ids := map[ItemId]string{}
	paths := []string{"foo", "foo::bar", "foo::baz", "bar::foo"}

	for _, s := range paths {
		id := p.Intern(path.Parse(s))
		if existing, ok := ids[id]; ok && existing != s {
			t.Fatalf("distinct paths %q and %q collided on id %d", existing, s, id)
		}

		ids[id] = s
	}

	if len(ids) != len(paths) {
		t.Fatalf("expected %d distinct ids, got %d", len(paths), len(ids))
	}
}

func TestItemRoundTrips(t *testing.T) {
	p := New()
	item := path.Parse("foo::bar")
	id := p.Intern(item)

	if !p.Item(id).Equals(item) {
		t.Fatal("expected interned item to round-trip")
	}
}

func TestIdSet(t *testing.T) {
	s := NewIdSet()

	if !s.Insert(3) {
		t.Fatal("expected first insert to report newly-added")
	}

	if s.Insert(3) {
		t.Fatal("expected second insert of same id to report already-present")
	}

	if !s.Contains(3) || s.Contains(4) {
		t.Fatal("membership test failed")
	}

	s.Remove(3)
	if s.Contains(3) {
		t.Fatal("expected id to be removed")
	}
}
