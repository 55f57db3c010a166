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

// MutableMessage is the builder-side view of a message: fields are
// appended in insertion order and may be removed by name or ordinal,
// per §6's add/remove/addSubMessage/ensureSubMessage/clear surface. It
// embeds Message so a MutableMessage can be read back and handed
// straight to a writer once built; per §3's lifecycle note it is
// "effectively frozen once handed to a writer" by convention, not by
// the type system.
type MutableMessage interface {
	Message

	// Add resolves value's wire type via the dictionary and appends a
	// field. name and/or ordinal may be nil.
	Add(name *string, ordinal *int16, value any) error
	// AddTyped appends a field with an explicitly chosen wire type,
	// bypassing dictionary resolution.
	AddTyped(name *string, ordinal *int16, t *WireType, value any)
	// AddSubMessage appends a new, empty sub-message field and returns
	// it for the caller to populate.
	AddSubMessage(name *string, ordinal *int16) MutableMessage
	// EnsureSubMessage returns the first existing sub-message field
	// matching name/ordinal, or appends a new one if none matches.
	EnsureSubMessage(name *string, ordinal *int16) MutableMessage
	// RemoveByName deletes every field with the given name.
	RemoveByName(name string)
	// RemoveByOrdinal deletes every field with the given ordinal.
	RemoveByOrdinal(ordinal int16)
	// Clear removes every field.
	Clear()
}

type mutableMessage struct {
	dict   *TypeDictionary
	fields []Field
}

// NewMutableMessage builds an empty, mutable message whose Add resolves
// values against dict.
func NewMutableMessage(dict *TypeDictionary) MutableMessage {
	return &mutableMessage{dict: dict}
}

func (m *mutableMessage) NumFields() int { return len(m.fields) }
func (m *mutableMessage) IsEmpty() bool  { return len(m.fields) == 0 }

func (m *mutableMessage) ByIndex(i int) (Field, bool) {
	if i < 0 || i >= len(m.fields) {
		return Field{}, false
	}
	return m.fields[i], true
}

func (m *mutableMessage) ByName(name string) (Field, bool) {
	for _, f := range m.fields {
		if f.HasName() && f.NameOrEmpty() == name {
			return f, true
		}
	}
	return Field{}, false
}

func (m *mutableMessage) AllByName(name string) []Field {
	var out []Field
	for _, f := range m.fields {
		if f.HasName() && f.NameOrEmpty() == name {
			out = append(out, f)
		}
	}
	return out
}

func (m *mutableMessage) ByOrdinal(ordinal int16) (Field, bool) {
	for _, f := range m.fields {
		if f.HasOrdinal() && *f.Ordinal == ordinal {
			return f, true
		}
	}
	return Field{}, false
}

func (m *mutableMessage) AllByOrdinal(ordinal int16) []Field {
	var out []Field
	for _, f := range m.fields {
		if f.HasOrdinal() && *f.Ordinal == ordinal {
			out = append(out, f)
		}
	}
	return out
}

func (m *mutableMessage) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

func (m *mutableMessage) Add(name *string, ordinal *int16, value any) error {
	wt, encoded, err := m.dict.EncodeValue(value)
	if err != nil {
		return err
	}
	m.fields = append(m.fields, Field{Type: wt, Value: encoded, Name: name, Ordinal: ordinal})
	return nil
}

func (m *mutableMessage) AddTyped(name *string, ordinal *int16, t *WireType, value any) {
	m.fields = append(m.fields, Field{Type: t, Value: value, Name: name, Ordinal: ordinal})
}

func (m *mutableMessage) AddSubMessage(name *string, ordinal *int16) MutableMessage {
	sub := &mutableMessage{dict: m.dict}
	msgType, ok := m.dict.ByID(TypeFudgeMsg)
	if !ok {
		panic("fudge: registry missing sub-message type")
	}
	m.fields = append(m.fields, Field{Type: msgType, Value: sub, Name: name, Ordinal: ordinal})
	return sub
}

func (m *mutableMessage) EnsureSubMessage(name *string, ordinal *int16) MutableMessage {
	for _, f := range m.fields {
		if fieldMatches(f, name, ordinal) {
			if sub, ok := f.Value.(MutableMessage); ok {
				return sub
			}
		}
	}
	return m.AddSubMessage(name, ordinal)
}

func fieldMatches(f Field, name *string, ordinal *int16) bool {
	if name != nil {
		if !f.HasName() || f.NameOrEmpty() != *name {
			return false
		}
	}
	if ordinal != nil {
		if !f.HasOrdinal() || *f.Ordinal != *ordinal {
			return false
		}
	}
	return name != nil || ordinal != nil
}

func (m *mutableMessage) RemoveByName(name string) {
	m.fields = filterFields(m.fields, func(f Field) bool {
		return !(f.HasName() && f.NameOrEmpty() == name)
	})
}

func (m *mutableMessage) RemoveByOrdinal(ordinal int16) {
	m.fields = filterFields(m.fields, func(f Field) bool {
		return !(f.HasOrdinal() && *f.Ordinal == ordinal)
	})
}

func (m *mutableMessage) Clear() {
	m.fields = nil
}

func filterFields(fields []Field, keep func(Field) bool) []Field {
	out := fields[:0]
	for _, f := range fields {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
