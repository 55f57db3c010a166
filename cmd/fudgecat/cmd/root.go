// Copyright 2024 The fudge-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fudgemsg/fudge-go/fudge"
	"github.com/fudgemsg/fudge-go/fudgetaxonomy"
)

var (
	taxonomyFile string
	taxonomyID   int16
	compress     bool
	verbose      bool

	// fctx is built once in PersistentPreRunE and shared by every
	// subcommand's RunE.
	fctx *fudge.Context
)

var rootCmd = &cobra.Command{
	Use:   "fudgecat",
	Short: "Encode, decode and inspect Fudge messages",
	Long: `fudgecat is a command-line tool for the Fudge message encoding: a
self-describing, hierarchical, binary message format.

It converts a YAML field list into a wire-format envelope (encode),
turns a wire-format envelope back into YAML (decode), and walks an
envelope's stream elements without printing field values
(inspect), for looking at malformed or oversized input.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			fudge.SetVerbosity(fudge.LogDebug)
		}
		if taxonomyFile == "" {
			fctx = fudge.NewContext()
			return nil
		}
		taxonomies, err := fudgetaxonomy.LoadFile(taxonomyFile)
		if err != nil {
			return fmt.Errorf("loading taxonomy file: %w", err)
		}
		fctx = fudge.NewContextWithTaxonomies(taxonomies)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fudgecat:", err)
		os.Exit(1)
	}
}

// RootCmd returns the root cobra.Command, for tests driving it directly
// via SetArgs/SetIn/SetOut rather than through Execute's os.Exit path.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&taxonomyFile, "taxonomy", "", "path to a taxonomy bundle YAML file (see fudgetaxonomy)")
	rootCmd.PersistentFlags().Int16Var(&taxonomyID, "taxonomy-id", 0, "taxonomy id to resolve names/ordinals against")
	rootCmd.PersistentFlags().BoolVar(&compress, "compress", false, "wrap the encoded stream in LZ4 framing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostic detail (unknown type ids tolerated on read, lazy sub-message decode errors)")
}
