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
package main

import (
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/runelang/rune-core/internal/assemble"
	"github.com/runelang/rune-core/internal/config"
	"github.com/runelang/rune-core/internal/context"
	"github.com/runelang/rune-core/internal/diag"
	"github.com/runelang/rune-core/internal/hir"
	"github.com/runelang/rune-core/internal/path"
	"github.com/runelang/rune-core/internal/pool"
	"github.com/runelang/rune-core/internal/source"
	"github.com/runelang/rune-core/internal/syntax"
)

// getFlag gets an expected bool flag, exiting on a programmer error (an
// unregistered flag name), the same usage-error convention cobra itself
// uses for a bad flag definition.
func getFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return v
}

func getUint(cmd *cobra.Command, name string) uint {
	v, err := cmd.Flags().GetUint(name)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return v
}

// optionsFromFlags builds a config.Options from the persistent flags shared
// by every subcommand, raising logrus to DebugLevel when --verbose is set.
func optionsFromFlags(cmd *cobra.Command) config.Options {
	opts := config.Default()
	opts.Budget = getUint(cmd, "budget")
	opts.Unrestricted = getFlag(cmd, "unrestricted")
	opts.Verbose = getFlag(cmd, "verbose")

	if opts.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	return opts
}

// readItems reads and parses filename into its top-level items, rooted at
// module path "root" (this core has no notion of a package/crate name to
// derive the root module from — every compiled file is its own root).
// Parse errors are printed to stdout and terminate the process immediately,
// since an Assembler cannot be run against a tree it never received.
func readItems(filename string) (*source.Registry, source.SourceId, []hir.Item) {
	text, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	registry := source.NewRegistry()
	id := registry.Add(filename, string(text))

	p := syntax.NewParser(string(text), path.New("root"))
	items := p.ParseItems()

	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Println(e)
		}

		os.Exit(1)
	}

	return registry, id, items
}

// compileUnit runs the Assembler over filename's parsed items against an
// empty host Context: runec has no embedding host to supply intrinsics, so
// every `ext::`-style item it cannot resolve from the file itself surfaces
// as a compile error rather than silently resolving to nothing.
func compileUnit(cmd *cobra.Command, filename string) (
	*source.Registry, source.SourceId, []hir.Item, *assemble.Assembler, *assemble.Assembly, *diag.Bag,
) {
	opts := optionsFromFlags(cmd)

	registry, id, items := readItems(filename)

	log.Debugf("parsed %d top-level item(s) from %s", len(items), filename)

	a := assemble.NewAssembler(pool.New(), context.NewStaticContext())
	a.SetBudget(opts.EffectiveBudget())

	asm, bag := a.AssembleUnit(id, items)

	if opts.Verbose {
		for _, w := range bag.Warnings() {
			log.Warn(w.Kind.String())
		}
	}

	return registry, id, items, a, asm, bag
}

// renderAndExit prints any diagnostics in bag and exits non-zero if it
// contains errors. Warnings alone never cause a non-zero exit.
func renderAndExit(registry *source.Registry, bag *diag.Bag) {
	if rendered := bag.Render(registry); rendered != "" {
		fmt.Print(rendered)
	}

	if bag.HasErrors() {
		os.Exit(1)
	}
}

// diagSummary is the machine-readable shape of a Bag, used by --json.
type diagSummary struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func summarizeDiags(bag *diag.Bag) diagSummary {
	s := diagSummary{Errors: []string{}, Warnings: []string{}}

	for _, e := range bag.Errors() {
		s.Errors = append(s.Errors, e.Err.Error())
	}

	for _, w := range bag.Warnings() {
		s.Warnings = append(s.Warnings, w.Kind.String())
	}

	return s
}

// printJSON marshals v with segmentio/encoding's drop-in encoding/json
// replacement and writes it to stdout, one value per invocation.
func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	os.Stdout.Write(b)
	fmt.Println()
}

// exitOnErrors exits non-zero iff bag has recorded at least one error,
// mirroring renderAndExit's exit-code rule for callers that render the
// diagnostics themselves (e.g. as JSON) instead of via bag.Render.
func exitOnErrors(bag *diag.Bag) {
	if bag.HasErrors() {
		os.Exit(1)
	}
}

// isTerminal reports whether stdout is an interactive terminal, used only
// to decide a purely cosmetic decoration on the plain-text summary line;
// it never changes program behaviour or exit codes.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
