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

// Package query implements composite item resolution: the Meta Store cache
// lookup chained with host Context consultation, plus the compile-observer
// visitor hooks fired on every successful resolution.
package query

import (
	"fmt"
	"strings"

	"github.com/runelang/rune-core/internal/context"
	"github.com/runelang/rune-core/internal/path"
)

// MissingItem is returned when lookup_meta finds no candidate at all for a
// path that carried no generics.
type MissingItem struct {
	Item path.Item
}

func (e *MissingItem) Error() string {
	return fmt.Sprintf("unknown item %q", e.Item.String())
}

// MissingItemParameters is returned when a path was resolved but no
// candidate matches the requested generic-parameters hash.
type MissingItemParameters struct {
	Item path.Item
}

func (e *MissingItemParameters) Error() string {
	return fmt.Sprintf("no instantiation of %q matches the requested type arguments", e.Item.String())
}

// AmbiguousContextItem is returned when two or more host-registered
// candidates remain after kind and parameters filtering.
type AmbiguousContextItem struct {
	Item       path.Item
	Candidates []context.ContextMeta
}

func (e *AmbiguousContextItem) Error() string {
	infos := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		infos[i] = c.Info()
	}

	return fmt.Sprintf("ambiguous reference to %q: %s", e.Item.String(), strings.Join(infos, "; "))
}
