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

// Package pool assigns stable integer identifiers to fully-qualified item
// paths, and provides bidirectional lookup between the two.
package pool

import (
	"sync"

	"github.com/runelang/rune-core/internal/path"
)

// ItemId is a stable identifier for an interned path.Item.  Ids are never
// reassigned for the lifetime of a Pool: the same path always interns to
// the same id, and a given id always maps back to the same path.
type ItemId uint32

// Pool interns item paths to stable integer ids.  A single Pool backs one
// compile unit; the evaluator is single-threaded and cooperative, so the
// mutex here guards against accidental reentrant misuse rather than any
// real concurrent access.
type Pool struct {
	mu    sync.Mutex
	ids   map[string]ItemId
	items []path.Item
}

// New constructs an empty, ready-to-use Pool.
func New() *Pool {
	return &Pool{ids: make(map[string]ItemId)}
}

// Intern assigns (or returns the existing) stable id for the given path.
// Interning is idempotent: interning the same path twice returns the same
// id both times.
func (p *Pool) Intern(item path.Item) ItemId {
	key := item.String()

	p.mu.Lock()
	defer p.mu.Unlock()

	if id, ok := p.ids[key]; ok {
		return id
	}

	id := ItemId(len(p.items))
	p.items = append(p.items, item)
	p.ids[key] = id

	return id
}

// Item returns the path interned under the given id.  Panics if the id was
// never produced by this Pool, which would indicate an internal bug (ids
// are never fabricated outside Intern).
func (p *Pool) Item(id ItemId) path.Item {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.items[id]
}

// Len returns the number of distinct paths interned so far.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.items)
}
