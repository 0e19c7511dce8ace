package path

import "testing"

func TestEqualityIsStructural(t *testing.T) {
	a := Parse("foo::bar")
	b := New("foo", "bar")

	if !a.Equals(b) {
		t.Fatal("expected structurally equal paths to compare equal")
	}

	c := New("foo", "baz")
	if a.Equals(c) {
		t.Fatal("expected different paths to compare unequal")
	}
}

func TestStringRoundTrip(t *testing.T) {
	p := Parse("foo::bar::baz")
	if p.String() != "foo::bar::baz" {
		t.Fatalf("got %q", p.String())
	}
}

func TestAncestors(t *testing.T) {
	p := Parse("foo::bar::baz")
	anc := p.Ancestors()

	want := []string{"foo::bar", "foo", ""}
	if len(anc) != len(want) {
		t.Fatalf("expected %d ancestors, got %d", len(want), len(anc))
	}

	for i, a := range anc {
		if a.String() != want[i] {
			t.Fatalf("ancestor %d: got %q, want %q", i, a.String(), want[i])
		}
	}
}

func TestJoinAndPrefixOf(t *testing.T) {
	root := Parse("foo")
	joined := root.Join(New("ident"))

	if joined.String() != "foo::ident" {
		t.Fatalf("got %q", joined.String())
	}

	if !root.PrefixOf(joined) {
		t.Fatal("expected root to be a prefix of joined")
	}
}
