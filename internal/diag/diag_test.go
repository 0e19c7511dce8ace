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
package diag

import (
	"errors"
	"strings"
	"testing"

	"github.com/runelang/rune-core/internal/source"
)

func TestWarningsNeverSetHasErrors(t *testing.T) {
	b := NewBag(0)
	b.Warn(NotUsed, source.NewSpan(0, 1))

	if b.HasErrors() {
		t.Fatal("expected HasErrors to be false after only a warning")
	}

	if b.WarningCount() != 1 {
		t.Fatalf("expected 1 warning, got %d", b.WarningCount())
	}
}

func TestErrorSetsHasErrors(t *testing.T) {
	b := NewBag(0)
	b.Error(errors.New("boom"), source.NewSpan(0, 1))

	if !b.HasErrors() {
		t.Fatal("expected HasErrors to be true after recording an error")
	}
}

func TestContextStackTagsDiagnostics(t *testing.T) {
	b := NewBag(0)
	outer := source.NewSpan(0, 10)

	b.PushContext(outer)
	b.Warn(BreakDoesNotProduceValue, source.NewSpan(4, 5))
	b.PopContext()

	if len(b.context) != 0 {
		t.Fatalf("expected context stack to be empty after pop, got %d", len(b.context))
	}

	w := b.Warnings()[0]
	if w.Context == nil || *w.Context != outer {
		t.Fatalf("expected warning to carry the pushed context span")
	}
}

func TestRenderIncludesMessageAndCaret(t *testing.T) {
	registry := source.NewRegistry()
	id := registry.Add("test.rune", "const N = bad;\n")

	b := NewBag(id)
	b.Error(errors.New("undefined variable \"bad\""), source.NewSpan(10, 13))

	out := b.Render(registry)
	if !strings.Contains(out, "undefined variable") {
		t.Fatalf("expected rendered output to contain the error message, got %q", out)
	}

	if !strings.Contains(out, "^") {
		t.Fatalf("expected rendered output to contain a caret underline, got %q", out)
	}
}
