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
package interp

import (
	"github.com/runelang/rune-core/internal/pool"
	"github.com/runelang/rune-core/internal/value"
)

// ConstCache is the write-once consts cache shared by every item evaluated
// within one compile unit, plus the in-progress ("marked") set that
// detects cycles among const item values.
type ConstCache struct {
	marked *pool.IdSet
	values map[pool.ItemId]value.ConstValue
}

// NewConstCache constructs an empty ConstCache.
func NewConstCache() *ConstCache {
	return &ConstCache{marked: pool.NewIdSet(), values: make(map[pool.ItemId]value.ConstValue)}
}

// Get returns the cached value for item, if any.
func (c *ConstCache) Get(item pool.ItemId) (value.ConstValue, bool) {
	v, ok := c.values[item]
	return v, ok
}

// Mark records item as in-progress.  Marking an already-marked item is
// the direct evidence of a cycle: `const A = B; const B = A;` marks A,
// then (while evaluating A) marks B, then (while evaluating B) re-enters
// A and finds it already marked.
func (c *ConstCache) Mark(item pool.ItemId) error {
	if c.marked.Contains(item) {
		return ErrConstCycle
	}

	c.marked.Insert(item)

	return nil
}

// Insert stores item's final value.  An item already present here when
// Insert runs is also reported as ErrConstCycle: preserved deliberately
// as a second, nominally-redundant check alongside Mark (see DESIGN.md).
func (c *ConstCache) Insert(item pool.ItemId, v value.ConstValue) error {
	if _, ok := c.values[item]; ok {
		return ErrConstCycle
	}

	c.values[item] = v

	return nil
}
