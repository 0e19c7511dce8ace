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
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command when runec is invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "runec",
	Short: "Compile scripts to their assembly form.",
	Long:  "A compiler toolbox for the language implemented by this core: lex, parse, resolve, assemble.",
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Uint("budget", 0, "override the const-fn evaluation budget (0 uses the default)")
	rootCmd.PersistentFlags().Bool("unrestricted", false, "disable the const-fn evaluation budget entirely")
}

// Execute runs the root command. Called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
