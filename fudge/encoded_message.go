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

// EncodedMessage is an immutable, lazily-decoded Message backed by a
// range of already-received bytes. Fields are decoded one at a time as
// callers ask for them; a message that is only routed or measured, never
// inspected, never pays the decode cost. Modeled on EncodedFudgeMsg.java.
//
// It is not safe for concurrent traversal: decoding advances shared
// internal state (the field buffer and underlying reader).
type EncodedMessage struct {
	dict *TypeDictionary
	tax  Taxonomy

	data     []byte
	fields   []Field
	reader   *StreamReader
	complete bool

	// err is the first decode error this message's range produced, if
	// any. Once set it is permanent and every further decode attempt
	// returns it immediately: a corrupted range must not look like one
	// that simply ran out of fields (§7: MalformedFrame and IoFailure
	// "are fatal to the current stream"). Exposed to callers via Err.
	err error
}

// NewEncodedMessage wraps encoded — the byte range of a sub-message's
// field concatenation, with no envelope header, field header or length
// prefix of its own — as a lazily-decoded Message.
func NewEncodedMessage(dict *TypeDictionary, encoded []byte) *EncodedMessage {
	return NewEncodedMessageWithTaxonomy(dict, nil, encoded)
}

// NewEncodedMessageWithTaxonomy is NewEncodedMessage, but fields decoded
// from encoded (including nested sub-messages) have their name/ordinal
// counterpart resolved against tax as they are decoded, per §4.4. A
// sub-message's enclosing envelope taxonomy governs its fields too, so
// Context.DecodeMessage threads its resolved taxonomy down through every
// EncodedMessage it wraps.
func NewEncodedMessageWithTaxonomy(dict *TypeDictionary, tax Taxonomy, encoded []byte) *EncodedMessage {
	return &EncodedMessage{dict: dict, tax: tax, data: encoded, complete: len(encoded) == 0}
}

func (m *EncodedMessage) streamReader() *StreamReader {
	if m.reader == nil {
		m.reader = newFieldStreamReader(m.dict, m.data)
	}
	return m.reader
}

// decodeNext pulls one more field from the underlying reader, appending
// it to the decoded list. Returns ok=false once the range is exhausted
// or a prior call has already latched a decode error into m.err.
func (m *EncodedMessage) decodeNext() (Field, bool, error) {
	if m.err != nil {
		return Field{}, false, m.err
	}
	if m.complete {
		return Field{}, false, nil
	}
	r := m.streamReader()
	el, err := r.Next()
	if err != nil {
		m.err = err
		return Field{}, false, err
	}
	switch el {
	case ElementSimpleField:
		f := Field{Type: r.FieldType(), Value: r.FieldValue(), Name: r.FieldName(), Ordinal: r.FieldOrdinal()}.resolveCounterpart(m.tax)
		m.fields = append(m.fields, f)
		return f, true, nil
	case ElementSubMessageFieldStart:
		name, ordinal, wt := r.FieldName(), r.FieldOrdinal(), r.FieldType()
		skipped, err := r.SkipMessageField()
		if err != nil {
			m.err = err
			return Field{}, false, err
		}
		sub := NewEncodedMessageWithTaxonomy(m.dict, m.tax, skipped)
		f := Field{Type: wt, Value: sub, Name: name, Ordinal: ordinal}.resolveCounterpart(m.tax)
		m.fields = append(m.fields, f)
		return f, true, nil
	case ElementNone:
		m.complete = true
		return Field{}, false, nil
	default:
		err := stateViolation("decodeNext", "unexpected stream element %s", el)
		m.err = err
		return Field{}, false, err
	}
}

// decodeUpTo ensures at least n fields are decoded (or the range is
// exhausted).
func (m *EncodedMessage) decodeUpTo(n int) error {
	for len(m.fields) < n && !m.complete {
		if _, ok, err := m.decodeNext(); err != nil {
			return err
		} else if !ok {
			break
		}
	}
	return nil
}

// decodeAll forces full decode of the remaining range.
func (m *EncodedMessage) decodeAll() error {
	for !m.complete {
		if _, ok, err := m.decodeNext(); err != nil {
			return err
		} else if !ok {
			break
		}
	}
	return nil
}

// NumFields forces full decode and returns the number of fields decoded.
// If the range is corrupted partway through, this silently reports
// however many fields decoded cleanly before the failure; callers that
// need to distinguish that from a legitimately short message must check
// Err() afterwards.
func (m *EncodedMessage) NumFields() int {
	if err := m.decodeAll(); err != nil {
		debugf(LogDebug, "EncodedMessage.NumFields: decode error after %d fields: %v", len(m.fields), err)
	}
	return len(m.fields)
}

// IsEmpty decodes at most one field. See NumFields for how a decode
// error partway through is reported: as if the range had ended.
func (m *EncodedMessage) IsEmpty() bool {
	if len(m.fields) > 0 {
		return false
	}
	if m.complete {
		return true
	}
	if err := m.decodeUpTo(1); err != nil {
		debugf(LogDebug, "EncodedMessage.IsEmpty: %v", err)
	}
	return len(m.fields) == 0
}

// ByIndex decodes up to index i. See NumFields for how a decode error
// partway through is reported: as if the range had ended before i.
func (m *EncodedMessage) ByIndex(i int) (Field, bool) {
	if i < 0 {
		return Field{}, false
	}
	if err := m.decodeUpTo(i + 1); err != nil {
		debugf(LogDebug, "EncodedMessage.ByIndex: %v", err)
	}
	if i >= len(m.fields) {
		return Field{}, false
	}
	return m.fields[i], true
}

// ByName decodes until a match is found or the range (or Err) ends.
func (m *EncodedMessage) ByName(name string) (Field, bool) {
	for i := 0; ; i++ {
		f, ok := m.decodedOrNext(i)
		if !ok {
			return Field{}, false
		}
		if f.HasName() && f.NameOrEmpty() == name {
			return f, true
		}
	}
}

// AllByName forces full decode. See NumFields for how a decode error
// partway through is reported: as if the range had ended there.
func (m *EncodedMessage) AllByName(name string) []Field {
	if err := m.decodeAll(); err != nil {
		debugf(LogDebug, "EncodedMessage.AllByName: decode error after %d fields: %v", len(m.fields), err)
	}
	var out []Field
	for _, f := range m.fields {
		if f.HasName() && f.NameOrEmpty() == name {
			out = append(out, f)
		}
	}
	return out
}

// ByOrdinal decodes until a match is found or the range (or Err) ends.
func (m *EncodedMessage) ByOrdinal(ordinal int16) (Field, bool) {
	for i := 0; ; i++ {
		f, ok := m.decodedOrNext(i)
		if !ok {
			return Field{}, false
		}
		if f.HasOrdinal() && *f.Ordinal == ordinal {
			return f, true
		}
	}
}

// AllByOrdinal forces full decode. See NumFields for how a decode error
// partway through is reported: as if the range had ended there.
func (m *EncodedMessage) AllByOrdinal(ordinal int16) []Field {
	if err := m.decodeAll(); err != nil {
		debugf(LogDebug, "EncodedMessage.AllByOrdinal: decode error after %d fields: %v", len(m.fields), err)
	}
	var out []Field
	for _, f := range m.fields {
		if f.HasOrdinal() && *f.Ordinal == ordinal {
			out = append(out, f)
		}
	}
	return out
}

// decodedOrNext returns the field at index i, decoding one more field if
// it isn't yet in the buffer.
func (m *EncodedMessage) decodedOrNext(i int) (Field, bool) {
	if i < len(m.fields) {
		return m.fields[i], true
	}
	f, ok, err := m.decodeNext()
	if err != nil {
		debugf(LogDebug, "EncodedMessage: decode error at field %d: %v", i, err)
		return Field{}, false
	}
	return f, ok
}

// Fields forces full decode. See NumFields for how a decode error
// partway through is reported: as if the range had ended there.
func (m *EncodedMessage) Fields() []Field {
	if err := m.decodeAll(); err != nil {
		debugf(LogDebug, "EncodedMessage.Fields: decode error after %d fields: %v", len(m.fields), err)
	}
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Err returns the first error encountered while lazily decoding this
// message's byte range, or nil if none has occurred. Every other
// accessor on EncodedMessage treats a decode failure the same way it
// treats a legitimately exhausted range — returning false, zero, or an
// empty slice — so a caller that needs to tell "this message has N
// fields" apart from "this message's range is corrupted after field N"
// (spec.md §7: MalformedFrame and IoFailure "are fatal to the current
// stream") must check Err after traversal.
func (m *EncodedMessage) Err() error {
	return m.err
}

// encodedBytes satisfies fudgeEncodedBytes, letting SizeCalculator
// shortcut straight to len(data) instead of summing decoded fields.
// The shortcut only holds when taxonomy is the same one (or absence of
// one) m was decoded with: decoding under m.tax may have resolved a
// wire ordinal's name counterpart onto a field (field.go's
// resolveCounterpart), and re-encoding that field under a different
// taxonomy would emit a different name/ordinal combination than the
// original bytes, so len(data) would understate the real size.
func (m *EncodedMessage) encodedBytes(taxonomy Taxonomy) ([]byte, bool) {
	if taxonomy != m.tax {
		return nil, false
	}
	return m.data, true
}

// GetFudgeEncoded returns the original byte range this message was
// built from.
func (m *EncodedMessage) GetFudgeEncoded() []byte {
	return m.data
}
