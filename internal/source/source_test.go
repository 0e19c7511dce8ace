package source

import "testing"

func TestSpanInvariant(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for start > end")
		}
	}()

	NewSpan(5, 2)
}

func TestSpanUnion(t *testing.T) {
	a := NewSpan(2, 5)
	b := NewSpan(4, 9)

	u := a.Union(b)
	if u.Start() != 2 || u.End() != 9 {
		t.Fatalf("got %v", u)
	}
}

func TestRegistryLineCol(t *testing.T) {
	reg := NewRegistry()
	id := reg.Add("test.rn", "const A = 1\nconst B = 2\n")

	if id != 0 {
		t.Fatalf("expected first id to be 0, got %d", id)
	}

	line, col := reg.LineCol(id, 12)
	if line != 2 || col != 1 {
		t.Fatalf("expected (2,1), got (%d,%d)", line, col)
	}

	text := reg.LineText(id, 15)
	if text != "const B = 2" {
		t.Fatalf("got %q", text)
	}
}

func TestRegistryStableIds(t *testing.T) {
	reg := NewRegistry()
	a := reg.Add("a.rn", "const A = 1\n")
	b := reg.Add("b.rn", "const B = 2\n")

	if reg.Get(a).Name != "a.rn" || reg.Get(b).Name != "b.rn" {
		t.Fatal("ids did not round-trip to their sources")
	}
}
