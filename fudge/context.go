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

package fudge

import "io"

// Context is the process-scope binding of a TypeDictionary and a
// TaxonomyResolver, plus factories for readers and writers over
// caller-supplied byte sinks and sources (§4.9). It is immutable after
// construction and safe for concurrent use by many streams; the
// readers, writers and messages it produces are not.
type Context struct {
	Dict     *TypeDictionary
	Resolver TaxonomyResolver
}

// NewContext builds a Context with the default type dictionary
// (built-in types plus this package's built-in secondary types) and no
// taxonomy resolver.
func NewContext() *Context {
	return &Context{Dict: NewDefaultTypeDictionary(), Resolver: NoTaxonomyResolver}
}

// NewContextWithTaxonomies builds a Context whose resolver serves the
// given taxonomyID -> Taxonomy set.
func NewContextWithTaxonomies(taxonomies map[int16]Taxonomy) *Context {
	return &Context{Dict: NewDefaultTypeDictionary(), Resolver: NewMapResolver(taxonomies)}
}

// NewWriter builds a StreamWriter over sink using this context's
// dictionary.
func (c *Context) NewWriter(sink io.Writer) *StreamWriter {
	return NewStreamWriter(c.Dict, sink)
}

// NewReader builds a StreamReader over a fully-buffered envelope.
func (c *Context) NewReader(encoded []byte) *StreamReader {
	return NewStreamReader(c.Dict, encoded)
}

// NewMutableMessage builds an empty MutableMessage bound to this
// context's dictionary.
func (c *Context) NewMutableMessage() MutableMessage {
	return NewMutableMessage(c.Dict)
}

// taxonomyFor resolves taxonomyID against the context's resolver,
// returning nil if none is bound.
func (c *Context) taxonomyFor(taxonomyID int16) Taxonomy {
	if c.Resolver == nil {
		return nil
	}
	tax, ok := c.Resolver.Resolve(taxonomyID)
	if !ok {
		return nil
	}
	return tax
}

// WriteMessageEnvelope resolves taxonomyID against this context's
// resolver and writes msg as a complete envelope to w, substituting
// ordinals for names wherever the resolved taxonomy allows it.
func (c *Context) WriteMessageEnvelope(w *StreamWriter, processingDirectives, schemaVersion byte, taxonomyID int16, msg Message) error {
	return WriteMessageEnvelope(w, c.taxonomyFor(taxonomyID), processingDirectives, schemaVersion, taxonomyID, msg)
}

// DecodeMessage reads a full envelope from encoded and returns its
// taxonomy id and top-level fields as a Message. Top-level fields are
// eagerly decoded; any sub-message field is wrapped as a lazily-decoded
// *EncodedMessage over its own byte sub-range rather than recursed into,
// per §4.8's "not eagerly parsed" rule for nested containers.
//
// When this context's resolver knows the envelope's taxonomy, a field
// that carries only a name or only an ordinal on the wire is completed
// with the counterpart the taxonomy recovers, per §4.4's reverse-lookup
// rule. A field carrying neither, or one a resolved taxonomy has no
// binding for, is returned exactly as read.
func (c *Context) DecodeMessage(encoded []byte) (taxonomyID int16, msg Message, err error) {
	r := c.NewReader(encoded)
	el, err := r.Next()
	if err != nil {
		return 0, nil, err
	}
	if el != ElementMessageEnvelope {
		return 0, nil, stateViolation("decodeMessage", "expected MessageEnvelope, got %s", el)
	}
	_, _, taxonomyID, _, _ = r.EnvelopeHeader()
	tax := c.taxonomyFor(taxonomyID)

	var fields []Field
	for {
		el, err := r.Next()
		if err != nil {
			return 0, nil, err
		}
		switch el {
		case ElementSimpleField:
			f := Field{Type: r.FieldType(), Value: r.FieldValue(), Name: r.FieldName(), Ordinal: r.FieldOrdinal()}
			fields = append(fields, f.resolveCounterpart(tax))
		case ElementSubMessageFieldStart:
			name, ordinal, wt := r.FieldName(), r.FieldOrdinal(), r.FieldType()
			skipped, err := r.SkipMessageField()
			if err != nil {
				return 0, nil, err
			}
			f := Field{Type: wt, Value: NewEncodedMessageWithTaxonomy(c.Dict, tax, skipped), Name: name, Ordinal: ordinal}
			fields = append(fields, f.resolveCounterpart(tax))
		case ElementNone:
			return taxonomyID, newEagerMessage(fields), nil
		default:
			return 0, nil, stateViolation("decodeMessage", "unexpected stream element %s", el)
		}
	}
}
