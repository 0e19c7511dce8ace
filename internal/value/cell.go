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
package value

import "errors"

// ErrBorrowConflict is returned when an exclusive borrow is requested while
// another borrow (shared or exclusive) is outstanding, or a shared borrow is
// requested while an exclusive borrow is outstanding.  It surfaces to the
// interpreter as a normal evaluation error, never as a panic or deadlock.
var ErrBorrowConflict = errors.New("borrow conflict: value is already borrowed")

// borrowState tracks the dynamic (shared XOR exclusive) borrow discipline
// for a single Cell.  A positive count is a number of outstanding shared
// borrows; -1 denotes a single outstanding exclusive borrow.
type borrowState int

const free borrowState = 0
const exclusive borrowState = -1

// Cell is a shared, dynamically borrow-checked mutable container for a
// composite IrValue payload (Vec, Tuple or Object).  Aliased references to
// the same Cell observe each other's mutations, while the borrow discipline
// ensures a target read never observes a mid-mutation state of itself.
type Cell struct {
	state   borrowState
	payload any
}

// NewCell wraps a payload (either []IrValue for Vec/Tuple or *IrObject for
// Object) in a fresh, unborrowed Cell.
func NewCell(payload any) *Cell {
	return &Cell{free, payload}
}

// Guard represents an outstanding borrow of a Cell.  It must be released
// exactly once, which the interpreter does via a defer immediately after a
// successful borrow so that borrows never outlive the operation that
// opened them.
type Guard struct {
	cell     *Cell
	exclusiv bool
}

// Release ends this borrow.
func (g *Guard) Release() {
	if g == nil || g.cell == nil {
		return
	}

	if g.exclusiv {
		g.cell.state = free
	} else {
		g.cell.state--
	}

	g.cell = nil
}

// Borrow acquires a shared (read) borrow of this cell's payload.
func (c *Cell) Borrow() (any, *Guard, error) {
	if c.state == exclusive {
		return nil, nil, ErrBorrowConflict
	}

	c.state++

	return c.payload, &Guard{c, false}, nil
}

// BorrowMut acquires an exclusive (read-write) borrow of this cell's
// payload.
func (c *Cell) BorrowMut() (any, *Guard, error) {
	if c.state != free {
		return nil, nil, ErrBorrowConflict
	}

	c.state = exclusive

	return c.payload, &Guard{c, true}, nil
}

// Replace overwrites the cell's payload.  Caller must hold an exclusive
// borrow, or must own the cell outright (e.g. immediately after NewCell).
func (c *Cell) Replace(payload any) {
	c.payload = payload
}

// IsBorrowed reports whether any borrow (shared or exclusive) is currently
// outstanding.  Used by Snapshot to detect a live borrow.
func (c *Cell) IsBorrowed() bool {
	return c.state != free
}
