package scope

import "testing"

func TestPushPopLIFO(t *testing.T) {
	s := New[int]()
	g1 := s.Push()
	s.Declare("a", 1)
	g2 := s.Push()
	s.Declare("b", 2)

	vals := s.Pop(g2)
	if len(vals) != 1 || vals[0] != 2 {
		t.Fatalf("got %v", vals)
	}

	vals = s.Pop(g1)
	if len(vals) != 1 || vals[0] != 1 {
		t.Fatalf("got %v", vals)
	}
}

func TestPopWrongGuardPanics(t *testing.T) {
	s := New[int]()
	g1 := s.Push()
	s.Push()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic popping out of order")
		}
	}()

	s.Pop(g1)
}

func TestLookupInnermostFirst(t *testing.T) {
	s := New[int]()
	s.Push()
	s.Declare("x", 1)
	s.Push()
	s.Declare("x", 2)

	v, ok := s.Lookup("x")
	if !ok || v != 2 {
		t.Fatalf("expected innermost binding 2, got %v ok=%v", v, ok)
	}
}

func TestDeclareTopShadowsOuter(t *testing.T) {
	s := New[int]()
	s.Push()
	s.Declare("x", 1)
	s.Push()

	s.DeclareTop("x", 99)

	v, ok := s.Lookup("x")
	if !ok || v != 99 {
		t.Fatalf("expected 99, got %v ok=%v", v, ok)
	}
}

func TestAssignFailsWhenUnbound(t *testing.T) {
	s := New[int]()
	s.Push()

	if s.Assign("missing", 1) {
		t.Fatalf("expected Assign to fail for unbound name")
	}
}

func TestLoopsLabelledSearch(t *testing.T) {
	l := NewLoops()
	l.Enter(Frame{Label: "outer", BreakLabel: "L1"})
	l.Enter(Frame{Label: "", BreakLabel: "L2"})

	inner, ok := l.Innermost()
	if !ok || inner.BreakLabel != "L2" {
		t.Fatalf("got %+v", inner)
	}

	outer, ok := l.Labelled("outer")
	if !ok || outer.BreakLabel != "L1" {
		t.Fatalf("got %+v", outer)
	}

	_, ok = l.Labelled("nonexistent")
	if ok {
		t.Fatalf("expected no match")
	}
}
