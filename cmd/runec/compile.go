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
)

// compileSummary is the --json shape of a successful compile.
type compileSummary struct {
	File         string      `json:"file"`
	Instructions int         `json:"instructions"`
	Constants    int         `json:"constants"`
	Labels       int         `json:"labels"`
	Diagnostics  diagSummary `json:"diagnostics"`
}

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Resolve, assemble and report a script's assembly shape.",
	Long: `Run the lexer, parser and assembler over a single script file. On
success prints the emitted instruction count and constant pool size; on
failure renders diagnostics and exits non-zero.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry, _, _, _, asm, bag := compileUnit(cmd, args[0])

		if getFlag(cmd, "json") {
			printJSON(compileSummary{
				File:         args[0],
				Instructions: len(asm.Entries),
				Constants:    len(asm.Consts),
				Labels:       len(asm.Labels),
				Diagnostics:  summarizeDiags(bag),
			})
			exitOnErrors(bag)

			return
		}

		renderAndExit(registry, bag)

		prefix := ""
		if isTerminal() {
			prefix = "✓ "
		}

		fmt.Fprintf(os.Stdout, "%s%d instruction(s), %d constant(s), %d label(s)\n",
			prefix, len(asm.Entries), len(asm.Consts), len(asm.Labels))
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("json", false, "print the compile summary as JSON instead of plain text")
}
