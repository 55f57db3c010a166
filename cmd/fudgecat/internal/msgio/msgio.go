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

// Package msgio converts between fudgecat's YAML field-list documents
// and fudge.Message values, in both directions: building a message to
// encode, and rendering a decoded message back out as YAML.
package msgio

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/fudgemsg/fudge-go/fudge"
)

// Doc is the top-level shape of a fudgecat YAML input document, one
// envelope's worth of header fields plus its field list.
type Doc struct {
	ProcessingDirectives uint8       `yaml:"processingDirectives"`
	SchemaVersion        uint8       `yaml:"schemaVersion"`
	TaxonomyID           int16       `yaml:"taxonomyId"`
	Fields               []FieldSpec `yaml:"fields"`
}

// FieldSpec is one field of an input document. A spec with a non-empty
// Fields list builds a sub-message field; otherwise Type names the
// scalar wire type Value should be converted to.
type FieldSpec struct {
	Name    *string     `yaml:"name,omitempty"`
	Ordinal *int16      `yaml:"ordinal,omitempty"`
	Type    string      `yaml:"type,omitempty"`
	Value   any         `yaml:"value,omitempty"`
	Fields  []FieldSpec `yaml:"fields,omitempty"`
}

// Build constructs a MutableMessage from specs against ctx's type
// dictionary, recursing into nested sub-message specs.
func Build(ctx *fudge.Context, specs []FieldSpec) (fudge.MutableMessage, error) {
	msg := ctx.NewMutableMessage()
	if err := buildInto(msg, specs); err != nil {
		return nil, err
	}
	return msg, nil
}

func buildInto(parent fudge.MutableMessage, specs []FieldSpec) error {
	for i, spec := range specs {
		if spec.Fields != nil {
			sub := parent.AddSubMessage(spec.Name, spec.Ordinal)
			if err := buildInto(sub, spec.Fields); err != nil {
				return fmt.Errorf("field %d (%s): %w", i, spec.label(), err)
			}
			continue
		}
		value, err := convertValue(spec.Type, spec.Value)
		if err != nil {
			return fmt.Errorf("field %d (%s): %w", i, spec.label(), err)
		}
		if err := parent.Add(spec.Name, spec.Ordinal, value); err != nil {
			return fmt.Errorf("field %d (%s): %w", i, spec.label(), err)
		}
	}
	return nil
}

func (s FieldSpec) label() string {
	if s.Name != nil {
		return *s.Name
	}
	if s.Ordinal != nil {
		return fmt.Sprintf("ordinal %d", *s.Ordinal)
	}
	return "anonymous"
}

// convertValue coerces a YAML-decoded scalar (bool, int, float64,
// string) into the exact Go runtime type fudge's default type
// dictionary resolves to a wire type, per the scalar type name named in
// a field spec.
func convertValue(typeName string, raw any) (any, error) {
	switch typeName {
	case "indicator":
		return fudge.Indicator{}, nil
	case "boolean":
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("boolean field needs a bool value, got %T", raw)
		}
		return b, nil
	case "byte":
		n, err := toInt64(raw)
		return int8(n), err
	case "short":
		n, err := toInt64(raw)
		return int16(n), err
	case "int":
		n, err := toInt64(raw)
		return int32(n), err
	case "long":
		n, err := toInt64(raw)
		return n, err
	case "float":
		f, err := toFloat64(raw)
		return float32(f), err
	case "double":
		return toFloat64(raw)
	case "string":
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("string field needs a string value, got %T", raw)
		}
		return s, nil
	case "bytearray":
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("bytearray field needs a hex string, got %T", raw)
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("decoding hex bytearray: %w", err)
		}
		return b, nil
	case "datetime":
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("datetime field needs an RFC3339 string, got %T", raw)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("parsing datetime: %w", err)
		}
		return t, nil
	case "":
		return nil, fmt.Errorf("scalar field is missing a type")
	default:
		return nil, fmt.Errorf("unknown scalar type %q", typeName)
	}
}

func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("expected an integer value, got %T", raw)
	}
}

func toFloat64(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected a numeric value, got %T", raw)
	}
}

// DecodedField mirrors FieldSpec as output: the shape a decoded message
// renders into for YAML output, the other direction of the same
// grammar Build consumes.
type DecodedField struct {
	Name    *string        `yaml:"name,omitempty"`
	Ordinal *int16         `yaml:"ordinal,omitempty"`
	Type    string         `yaml:"type"`
	Value   any            `yaml:"value,omitempty"`
	Fields  []DecodedField `yaml:"fields,omitempty"`
}

// FromMessage renders every field of msg, recursing into sub-message
// fields (whether backed by an *EncodedMessage still partly undecoded,
// or an in-memory MutableMessage), forcing full decode of anything
// still lazy.
func FromMessage(msg fudge.Message) []DecodedField {
	fields := msg.Fields()
	out := make([]DecodedField, len(fields))
	for i, f := range fields {
		df := DecodedField{Name: f.Name, Ordinal: f.Ordinal}
		if f.Type != nil {
			df.Type = f.Type.Name
		}
		if sub, ok := f.Value.(fudge.Message); ok {
			df.Fields = FromMessage(sub)
		} else {
			df.Value = renderValue(f.Value)
		}
		out[i] = df
	}
	return out
}

// renderValue converts a decoded field value into something yaml.v3
// marshals cleanly: byte slices as hex, and the package's date/time
// primaries as RFC3339 text rather than their raw struct fields.
func renderValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return hex.EncodeToString(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case fudge.DateTime:
		return time.Date(int(val.Date.Year), time.Month(val.Date.Month), int(val.Date.Day),
			0, 0, 0, int(val.Time.Nanos), time.UTC).Format(time.RFC3339Nano)
	case fudge.Indicator:
		return nil
	default:
		return v
	}
}
