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

import "reflect"

// Message is an ordered, read-only sequence of fields. Duplicate names
// and ordinals are permitted; order is always insertion order (§3).
// Both the eager in-memory implementation (this file) and the
// encoded-backed lazy container (encoded_message.go) satisfy it.
type Message interface {
	// NumFields returns the number of fields currently visible. For a
	// lazy container this forces full decode.
	NumFields() int
	// IsEmpty reports whether the message has zero fields. A lazy
	// container only needs to decode at most one field to answer this.
	IsEmpty() bool
	// ByIndex returns the field at position i in insertion order.
	ByIndex(i int) (Field, bool)
	// ByName returns the first field with the given name.
	ByName(name string) (Field, bool)
	// AllByName returns every field with the given name, in insertion
	// order.
	AllByName(name string) []Field
	// ByOrdinal returns the first field with the given ordinal.
	ByOrdinal(ordinal int16) (Field, bool)
	// AllByOrdinal returns every field with the given ordinal, in
	// insertion order.
	AllByOrdinal(ordinal int16) []Field
	// Fields returns a snapshot of every field, in insertion order. For
	// a lazy container this forces full decode.
	Fields() []Field
}

// eagerMessage is the in-memory Message implementation: a flat field
// list, scanned in order for name/ordinal lookup, modeled on the
// duplicate-tolerant "first match wins, AllByX returns every match"
// semantics of the original FudgeMsg field list.
type eagerMessage struct {
	fields []Field
}

// newEagerMessage wraps a field slice as a Message. Ownership of fields
// passes to the returned Message; callers must not mutate the slice
// afterwards.
func newEagerMessage(fields []Field) *eagerMessage {
	return &eagerMessage{fields: fields}
}

func (m *eagerMessage) NumFields() int { return len(m.fields) }
func (m *eagerMessage) IsEmpty() bool  { return len(m.fields) == 0 }

func (m *eagerMessage) ByIndex(i int) (Field, bool) {
	if i < 0 || i >= len(m.fields) {
		return Field{}, false
	}
	return m.fields[i], true
}

func (m *eagerMessage) ByName(name string) (Field, bool) {
	for _, f := range m.fields {
		if f.HasName() && f.NameOrEmpty() == name {
			return f, true
		}
	}
	return Field{}, false
}

func (m *eagerMessage) AllByName(name string) []Field {
	var out []Field
	for _, f := range m.fields {
		if f.HasName() && f.NameOrEmpty() == name {
			out = append(out, f)
		}
	}
	return out
}

func (m *eagerMessage) ByOrdinal(ordinal int16) (Field, bool) {
	for _, f := range m.fields {
		if f.HasOrdinal() && *f.Ordinal == ordinal {
			return f, true
		}
	}
	return Field{}, false
}

func (m *eagerMessage) AllByOrdinal(ordinal int16) []Field {
	var out []Field
	for _, f := range m.fields {
		if f.HasOrdinal() && *f.Ordinal == ordinal {
			out = append(out, f)
		}
	}
	return out
}

func (m *eagerMessage) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// GetValueByName looks up the first field named name and converts its
// value to target via dict, per §6's getValue(targetClass, name). It
// returns ok=false both when no such field exists and when dict cannot
// convert the field's value to target: per spec.md §7, "ConversionFailure
// on a typed getter returns null (or the documented absence sentinel)
// rather than throwing."
func GetValueByName(dict *TypeDictionary, msg Message, name string, target reflect.Type) (any, bool) {
	f, ok := msg.ByName(name)
	if !ok {
		return nil, false
	}
	v, err := dict.Convert(target, f.Value)
	if err != nil {
		return nil, false
	}
	return v, true
}

// GetValueByOrdinal looks up the first field with the given ordinal and
// converts its value to target via dict. See GetValueByName for the
// ok=false cases.
func GetValueByOrdinal(dict *TypeDictionary, msg Message, ordinal int16, target reflect.Type) (any, bool) {
	f, ok := msg.ByOrdinal(ordinal)
	if !ok {
		return nil, false
	}
	v, err := dict.Convert(target, f.Value)
	if err != nil {
		return nil, false
	}
	return v, true
}
