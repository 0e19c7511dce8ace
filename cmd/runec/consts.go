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

	"github.com/spf13/cobra"

	"github.com/runelang/rune-core/internal/assemble"
	"github.com/runelang/rune-core/internal/hir"
)

var constsCmd = &cobra.Command{
	Use:   "consts <file>",
	Short: "Evaluate every top-level const and print its value.",
	Long: `A thin driver over the IR Interpreter: compiles file, then prints
the evaluated value of every top-level const item and the argument list
of every top-level const fn (const fns take arguments, so they have no
single standalone value to print).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry, _, items, a, _, bag := compileUnit(cmd, args[0])

		renderAndExit(registry, bag)

		printConsts(a, items)
	},
}

func printConsts(a *assemble.Assembler, items []hir.Item) {
	for _, it := range items {
		switch v := it.(type) {
		case *hir.ConstItem:
			id := a.Pool().Intern(v.Path())

			m, err := a.Store().QueryMeta(id, false)
			if err != nil {
				continue
			}

			fmt.Fprintf(os.Stdout, "%s = %s\n", v.Path().String(), m.ConstValue().String())
		case *hir.ConstFnItem:
			id := a.Pool().Intern(v.Path())

			m, err := a.Store().QueryMeta(id, false)
			if err != nil {
				continue
			}

			fmt.Fprintf(os.Stdout, "%s(%v) <const fn, not evaluated standalone>\n", v.Path().String(), m.ConstFn().Args)
		case *hir.ModuleItem:
			printConsts(a, v.Items)
		case *hir.ImplItem:
			printConsts(a, v.Items)
		}
	}
}

func init() {
	rootCmd.AddCommand(constsCmd)
}
