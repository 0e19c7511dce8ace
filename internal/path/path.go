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

// Package path implements the Item path value type: an ordered sequence of
// name components (e.g. `foo::bar`), compared structurally rather than by
// textual form.
package path

import (
	"slices"
	"strings"
)

// Item is a path through the module tree, such as `foo::bar::baz`.  Two
// items are equal iff their component sequences are equal; the textual
// separator used to print them is not part of their identity.
type Item struct {
	components []string
}

// New constructs an Item from its ordered components.
func New(components ...string) Item {
	return Item{slices.Clone(components)}
}

// Parse splits a double-colon-separated path into an Item.  Used by the
// parser when lowering a path expression.
func Parse(text string) Item {
	if text == "" {
		return Item{}
	}

	return Item{strings.Split(text, "::")}
}

// Depth returns the number of components in this item.
func (i Item) Depth() int {
	return len(i.components)
}

// Components returns the ordered components of this item.  The returned
// slice must not be mutated by the caller.
func (i Item) Components() []string {
	return i.components
}

// Head returns the first (outermost) component.
func (i Item) Head() string {
	return i.components[0]
}

// Tail returns the last (innermost) component.
func (i Item) Tail() string {
	return i.components[len(i.components)-1]
}

// Parent returns this item with its last component removed.
func (i Item) Parent() Item {
	n := len(i.components)
	if n == 0 {
		return i
	}

	return Item{slices.Clone(i.components[:n-1])}
}

// Extend returns this item with an additional innermost component appended.
func (i Item) Extend(component string) Item {
	return Item{append(slices.Clone(i.components), component)}
}

// Join appends all of another item's components onto this one.  Used by
// the Assembler's resolveCallee to build `ancestor ++ callee` candidate
// paths.
func (i Item) Join(other Item) Item {
	return Item{append(slices.Clone(i.components), other.components...)}
}

// IsRoot determines whether this item has no components (the module root).
func (i Item) IsRoot() bool {
	return len(i.components) == 0
}

// Equals determines whether two items denote the same path, by structural
// comparison of their components (not their textual form).
func (i Item) Equals(other Item) bool {
	return slices.Equal(i.components, other.components)
}

// PrefixOf checks whether this item is a (non-strict) prefix of the other.
func (i Item) PrefixOf(other Item) bool {
	if len(i.components) > len(other.components) {
		return false
	}

	for k := range i.components {
		if i.components[k] != other.components[k] {
			return false
		}
	}

	return true
}

// Ancestors returns, from innermost to outermost (including the root),
// every prefix item strictly shorter than this one.
func (i Item) Ancestors() []Item {
	ancestors := make([]Item, 0, len(i.components))

	for n := len(i.components) - 1; n >= 0; n-- {
		ancestors = append(ancestors, Item{slices.Clone(i.components[:n])})
	}

	return ancestors
}

// String renders the item using the language's `::` path separator.
func (i Item) String() string {
	return strings.Join(i.components, "::")
}
