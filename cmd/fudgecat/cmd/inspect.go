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
	"strings"

	"github.com/spf13/cobra"

	"github.com/fudgemsg/fudge-go/fudge"
)

var inspectInputFile string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Walk an envelope's stream elements without printing field values",
	Long: `inspect drives a StreamReader directly and prints one line per
stream element (envelope header, simple field, sub-message start/end)
indented by nesting depth, showing each field's name/ordinal and type
but not its value. Each line is written as its element is read, so for
a malformed or partially-corrupt envelope the output covers every
element up to the point of failure before the error is returned.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		encoded, err := openInput(inspectInputFile, cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading envelope: %w", err)
		}

		r := fctx.NewReader(encoded)
		depth := 0
		out := cmd.OutOrStdout()
		for {
			el, err := r.Next()
			if err != nil {
				return fmt.Errorf("at depth %d: %w", depth, err)
			}
			indent := strings.Repeat("  ", depth)
			switch el {
			case fudge.ElementMessageEnvelope:
				pd, sv, taxID, total, _ := r.EnvelopeHeader()
				fmt.Fprintf(out, "envelope processingDirectives=%d schemaVersion=%d taxonomyId=%d totalSize=%d\n",
					pd, sv, taxID, total)
			case fudge.ElementSimpleField:
				fmt.Fprintf(out, "%sfield %s type=%s\n", indent, describeFieldID(r), r.FieldType().Name)
			case fudge.ElementSubMessageFieldStart:
				fmt.Fprintf(out, "%ssubmessage %s {\n", indent, describeFieldID(r))
				depth++
			case fudge.ElementSubMessageFieldEnd:
				depth--
				fmt.Fprintf(out, "%s}\n", strings.Repeat("  ", depth))
			case fudge.ElementNone:
				return nil
			}
		}
	},
}

func describeFieldID(r *fudge.StreamReader) string {
	switch {
	case r.FieldName() != nil && r.FieldOrdinal() != nil:
		return fmt.Sprintf("name=%q ordinal=%d", *r.FieldName(), *r.FieldOrdinal())
	case r.FieldName() != nil:
		return fmt.Sprintf("name=%q", *r.FieldName())
	case r.FieldOrdinal() != nil:
		return fmt.Sprintf("ordinal=%d", *r.FieldOrdinal())
	default:
		return "(anonymous)"
	}
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectInputFile, "in", "i", "", "input envelope file (default stdin)")
	rootCmd.AddCommand(inspectCmd)
}
