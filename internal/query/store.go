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
package query

import (
	"errors"

	"github.com/runelang/rune-core/internal/context"
	"github.com/runelang/rune-core/internal/meta"
	"github.com/runelang/rune-core/internal/path"
	"github.com/runelang/rune-core/internal/pool"
	"github.com/runelang/rune-core/internal/source"
)

// ErrItemNotFound is returned by an Elaborator (and by QueryMeta) when item
// does not correspond to anything the compiler itself parsed. Any other
// error an Elaborator returns is a genuine elaboration failure (e.g. a
// const cycle) and must propagate as itself, not be treated as "missing".
var ErrItemNotFound = errors.New("item not found")

// key uniquely identifies a cached meta: the item itself plus the generic
// parameters it was instantiated with.
type key struct {
	item   pool.ItemId
	params meta.ParamsHash
}

// Elaborator lazily produces a Meta for a user-source item the Store has
// not seen before. It returns ErrItemNotFound when item does not
// correspond to anything the compiler itself parsed (in which case the
// Store falls back to the host Context); any other error is a genuine
// elaboration failure and must be propagated as-is.
type Elaborator interface {
	Elaborate(item path.Item) (meta.Meta, error)
}

// Store is the Meta Store and Query Engine: a cache of elaborated item
// metadata, backed by an Elaborator for user source and a Context for
// host-registered items.
type Store struct {
	pool      *pool.Pool
	ctx       context.Context
	elab      Elaborator
	visitor   CompileVisitor
	cache     map[key]meta.Meta
	used      map[pool.ItemId]bool
}

// NewStore constructs a Store.  visitor may be NoopVisitor{}.
func NewStore(p *pool.Pool, ctx context.Context, elab Elaborator, visitor CompileVisitor) *Store {
	return &Store{
		pool:    p,
		ctx:     ctx,
		elab:    elab,
		visitor: visitor,
		cache:   make(map[key]meta.Meta),
		used:    make(map[pool.ItemId]bool),
	}
}

// QueryMeta returns the cached meta for item, elaborating it on first
// access if it corresponds to user source. markUsed records that this
// access came from reachable code, for dead-code diagnostics. A non-nil
// error is either ErrItemNotFound (item isn't user source — callers fall
// back to the host Context) or a genuine elaboration failure (e.g. a const
// cycle) that callers must propagate rather than treat as "missing".
func (s *Store) QueryMeta(item pool.ItemId, markUsed bool) (meta.Meta, error) {
	k := key{item: item, params: meta.EmptyParams}
	if markUsed {
		s.used[item] = true
	}

	if m, ok := s.cache[k]; ok {
		return m, nil
	}

	p := s.pool.Item(item)

	m, err := s.elab.Elaborate(p)
	if err != nil {
		return meta.Meta{}, err
	}

	s.cache[k] = m

	return m, nil
}

// InsertContextMeta records a host-registered candidate in the Meta Store
// as a Fn meta carrying the candidate's parameters hash, and fires the
// RegisterMeta hook. The candidate's Kind is not carried over.
func (s *Store) InsertContextMeta(item pool.ItemId, cm context.ContextMeta) meta.Meta {
	im := meta.ItemMeta{Item: item}
	m := meta.NewFn(im, cm.Parameters())

	s.cache[key{item: item, params: cm.Parameters()}] = m
	s.visitor.RegisterMeta(s.pool.Item(item), m)

	return m
}

// IsUsed reports whether item was ever queried with markUsed=true.
func (s *Store) IsUsed(item pool.ItemId) bool {
	return s.used[item]
}

// LookupMeta resolves item against hasGenerics/generics, following the
// six-step composite resolution algorithm: Meta Store first when no
// generics were supplied, then a full sweep of host Context candidates
// filtered by callability and parameters hash.  A successful resolution
// fires VisitMeta.
func (s *Store) LookupMeta(
	src source.SourceId,
	span source.Span,
	itemId pool.ItemId,
	hasGenerics bool,
	generics meta.ParamsHash,
) (meta.Meta, error) {
	itemPath := s.pool.Item(itemId)

	// Step 1: no generics requested → try the Meta Store (and, through it,
	// elaboration of user source) before anything else.
	if !hasGenerics {
		m, err := s.QueryMeta(itemId, true)

		switch {
		case err == nil:
			s.visitor.VisitMeta(src, itemPath, m, span)
			return m, nil
		case !errors.Is(err, ErrItemNotFound):
			return meta.Meta{}, err
		}
	}

	// Step 2: fetch every host-registered candidate for this path.
	candidates := s.ctx.LookupMeta(itemPath)

	want := generics
	if !hasGenerics {
		want = meta.EmptyParams
	}

	// Steps 3-4: drop non-callable kinds, then keep only matching params.
	matched := make([]context.ContextMeta, 0, len(candidates))

	for _, c := range candidates {
		if !c.Kind().IsCallable() {
			continue
		}

		if c.Parameters() != want {
			continue
		}

		matched = append(matched, c)
	}

	// Step 5: exactly one match resolves; two or more is ambiguous.
	switch len(matched) {
	case 1:
		m := s.InsertContextMeta(itemId, matched[0])
		s.visitor.VisitMeta(src, itemPath, m, span)

		return m, nil
	case 0:
		// falls through to step 6
	default:
		return meta.Meta{}, &AmbiguousContextItem{Item: itemPath, Candidates: matched}
	}

	// Step 6: nothing matched at all.
	if hasGenerics {
		return meta.Meta{}, &MissingItemParameters{Item: itemPath}
	}

	return meta.Meta{}, &MissingItem{Item: itemPath}
}
