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
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Compile a script and report diagnostics only.",
	Long: `Like compile, but suppresses the Assembly summary and prints only
diagnostics (errors and warnings). The exit code reflects whether any
errors were produced; warnings never cause a non-zero exit.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry, _, _, _, _, bag := compileUnit(cmd, args[0])

		if getFlag(cmd, "json") {
			printJSON(summarizeDiags(bag))
			exitOnErrors(bag)

			return
		}

		renderAndExit(registry, bag)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "print diagnostics as JSON instead of plain text")
}
