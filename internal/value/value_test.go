package value

import "testing"

func TestConstValueCloneIsUnshared(t *testing.T) {
	inner := Vec(Int(1), Int(2))
	outer := Tuple(inner, Int(3))

	clone := outer.Clone()

	// mutate the original's backing array through the slice AsVec returns
	// to confirm the clone did not alias storage.
	original := outer.AsTuple()[0].AsVec()
	original[0] = Int(99)

	if clone.AsTuple()[0].AsVec()[0].AsInt() != 1 {
		t.Fatal("clone observed mutation of original backing array")
	}
}

func TestConstValueEquals(t *testing.T) {
	a := Tuple(Int(1), String("x"))
	b := Tuple(Int(1), String("x"))
	c := Tuple(Int(1), String("y"))

	if !a.Equals(b) {
		t.Fatal("expected structurally equal tuples to compare equal")
	}

	if a.Equals(c) {
		t.Fatal("expected different tuples to compare unequal")
	}
}

func TestCellBorrowDiscipline(t *testing.T) {
	cell := NewCell([]IrValue{IrInt(1)})

	_, g1, err := cell.Borrow()
	if err != nil {
		t.Fatalf("first shared borrow failed: %v", err)
	}

	_, g2, err := cell.Borrow()
	if err != nil {
		t.Fatalf("second shared borrow failed: %v", err)
	}

	if _, _, err := cell.BorrowMut(); err != ErrBorrowConflict {
		t.Fatalf("expected exclusive borrow to conflict with outstanding shared borrows, got %v", err)
	}

	g1.Release()
	g2.Release()

	_, gm, err := cell.BorrowMut()
	if err != nil {
		t.Fatalf("exclusive borrow after release failed: %v", err)
	}

	if _, _, err := cell.Borrow(); err != ErrBorrowConflict {
		t.Fatalf("expected shared borrow to conflict with outstanding exclusive borrow, got %v", err)
	}

	gm.Release()

	if cell.IsBorrowed() {
		t.Fatal("expected cell to be unborrowed after release")
	}
}

func TestSnapshotFailsOnLiveBorrow(t *testing.T) {
	v := IrVec(IrInt(1), IrInt(2))

	_, guard, err := v.Cell().BorrowMut()
	if err != nil {
		t.Fatalf("borrow failed: %v", err)
	}

	if _, err := Snapshot(v); err == nil {
		t.Fatal("expected snapshot to fail while a borrow is outstanding")
	}

	guard.Release()

	cv, err := Snapshot(v)
	if err != nil {
		t.Fatalf("snapshot failed after release: %v", err)
	}

	if !cv.Equals(Vec(Int(1), Int(2))) {
		t.Fatalf("got %v", cv)
	}
}

func TestFromConstLiftsComposite(t *testing.T) {
	cv := Tuple(Int(1), Vec(Int(2), Int(3)))
	iv := FromConst(cv)

	out, err := Snapshot(iv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Equals(cv) {
		t.Fatalf("round trip mismatch: got %v want %v", out, cv)
	}
}
