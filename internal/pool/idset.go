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
package pool

import "github.com/bits-and-blooms/bitset"

// IdSet is a compact set of ItemId, backed by a bitset since ids are dense
// small integers.  Used for the constant cache's "marked" set.
type IdSet struct {
	bits *bitset.BitSet
}

// NewIdSet constructs an empty id set.
func NewIdSet() *IdSet {
	return &IdSet{bitset.New(0)}
}

// Insert adds an id to the set.  Returns true if the id was not already
// present.
func (s *IdSet) Insert(id ItemId) bool {
	if s.bits.Test(uint(id)) {
		return false
	}

	s.bits.Set(uint(id))

	return true
}

// Contains checks whether the given id is a member of the set.
func (s *IdSet) Contains(id ItemId) bool {
	return s.bits.Test(uint(id))
}

// Remove deletes an id from the set, if present.
func (s *IdSet) Remove(id ItemId) {
	s.bits.Clear(uint(id))
}

// Len returns the number of ids currently in the set.
func (s *IdSet) Len() uint {
	return s.bits.Count()
}
