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

/*
Package fudge implements the Fudge message encoding: a self-describing,
hierarchical, binary message format.

A message is an ordered sequence of fields. Each field carries a typed
value and may be identified by a name, a numeric ordinal, both, or
neither. Messages may nest as the value of a sub-message field. A
taxonomy may substitute compact ordinals for names on the wire while
preserving a logical, named schema.

The wire format is described in full in the envelope and field encoding
functions of this package; see Context, StreamReader and StreamWriter for
the main entry points. Encoding always goes through a Context, which
binds a TypeDictionary and a TaxonomyResolver and hands out readers and
writers over caller-supplied byte sinks and sources:

	ctx := fudge.NewContext()
	msg := ctx.NewMutableMessage()
	msg.Add(fudge.Name("greeting"), nil, "hello")

	var buf bytes.Buffer
	w := ctx.NewWriter(&buf)
	if err := ctx.WriteMessageEnvelope(w, 0, 0, 0, msg); err != nil {
		// handle err
	}

Decoding is symmetric: a StreamReader pulls MESSAGE_ENVELOPE, SIMPLE_FIELD
and SUBMESSAGE_FIELD_START/END elements out of a byte slice, or
Context.DecodeMessage drives a StreamReader to completion and returns an
eager top-level Message whose sub-message fields are EncodedMessage
values that decode lazily on first access.
*/
package fudge
