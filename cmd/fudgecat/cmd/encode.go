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

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fudgemsg/fudge-go/cmd/fudgecat/internal/msgio"
)

var (
	encodeInputFile  string
	encodeOutputFile string
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build an envelope from a YAML field-list document",
	Long: `encode reads a YAML document describing an envelope's header and
field list and writes the corresponding wire-format envelope.

	processingDirectives: 0
	schemaVersion: 0
	taxonomyId: 0
	fields:
	  - name: greeting
	    type: string
	    value: hello
	  - ordinal: 2
	    type: int
	    value: 42
	  - name: nested
	    fields:
	      - name: x
	        type: int
	        value: 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := openInput(encodeInputFile, cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading input document: %w", err)
		}
		var doc msgio.Doc
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parsing input document: %w", err)
		}
		if cmd.Flags().Changed("taxonomy-id") {
			doc.TaxonomyID = taxonomyID
		}

		msg, err := msgio.Build(fctx, doc.Fields)
		if err != nil {
			return fmt.Errorf("building message: %w", err)
		}

		out, closeOut, err := openOutput(encodeOutputFile, cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("opening output: %w", err)
		}

		w := fctx.NewWriter(out)
		writeErr := fctx.WriteMessageEnvelope(w, doc.ProcessingDirectives, doc.SchemaVersion, doc.TaxonomyID, msg)
		closeErr := closeOut()
		if writeErr != nil {
			return fmt.Errorf("writing envelope: %w", writeErr)
		}
		return closeErr
	},
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeInputFile, "in", "i", "", "input YAML document (default stdin)")
	encodeCmd.Flags().StringVarP(&encodeOutputFile, "out", "o", "", "output envelope file (default stdout)")
	rootCmd.AddCommand(encodeCmd)
}
