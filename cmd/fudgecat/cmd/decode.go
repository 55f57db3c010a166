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

var decodeInputFile string

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Render a wire-format envelope as a YAML field-list document",
	RunE: func(cmd *cobra.Command, args []string) error {
		encoded, err := openInput(decodeInputFile, cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading envelope: %w", err)
		}

		taxonomyID, msg, err := fctx.DecodeMessage(encoded)
		if err != nil {
			return fmt.Errorf("decoding envelope: %w", err)
		}

		doc := msgio.Doc{TaxonomyID: taxonomyID}
		for _, f := range msgio.FromMessage(msg) {
			doc.Fields = append(doc.Fields, msgio.FieldSpec{
				Name: f.Name, Ordinal: f.Ordinal, Type: f.Type, Value: f.Value, Fields: decodedToSpec(f.Fields),
			})
		}

		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("rendering YAML: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

// decodedToSpec mirrors a decoded sub-message's field tree back into
// the same FieldSpec shape encode consumes. Type is the decoded wire
// type's name, so decode output re-encodes only where every field is a
// sub-message or has a type name encode accepts; byteArray, the
// primitive arrays, date and time fields are not accepted by encode.
func decodedToSpec(fields []msgio.DecodedField) []msgio.FieldSpec {
	if fields == nil {
		return nil
	}
	out := make([]msgio.FieldSpec, len(fields))
	for i, f := range fields {
		out[i] = msgio.FieldSpec{Name: f.Name, Ordinal: f.Ordinal, Type: f.Type, Value: f.Value, Fields: decodedToSpec(f.Fields)}
	}
	return out
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeInputFile, "in", "i", "", "input envelope file (default stdin)")
	rootCmd.AddCommand(decodeCmd)
}
