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

// Field is an immutable {type, value, name?, ordinal?} tuple. Name and
// Ordinal are independently optional; a Field may carry both, either, or
// neither. Equality compares all four components.
type Field struct {
	Type    *WireType
	Value   any
	Name    *string
	Ordinal *int16
}

// HasName reports whether the field carries a name.
func (f Field) HasName() bool { return f.Name != nil }

// HasOrdinal reports whether the field carries an ordinal.
func (f Field) HasOrdinal() bool { return f.Ordinal != nil }

// NameOrEmpty returns the field's name, or "" if it has none.
func (f Field) NameOrEmpty() string {
	if f.Name == nil {
		return ""
	}
	return *f.Name
}

// Equal reports whether f and other have the same type id, value, name
// and ordinal (two fields with a nil Type count as the same type). Values
// of a comparable Go type (bools, numerics, strings) are compared with
// ==; slices such as []byte and the primitive arrays are compared
// element by element via the reflect fallback below.
func (f Field) Equal(other Field) bool {
	if (f.Name == nil) != (other.Name == nil) {
		return false
	}
	if f.Name != nil && *f.Name != *other.Name {
		return false
	}
	if (f.Ordinal == nil) != (other.Ordinal == nil) {
		return false
	}
	if f.Ordinal != nil && *f.Ordinal != *other.Ordinal {
		return false
	}
	if f.Type == nil || other.Type == nil {
		if f.Type != other.Type {
			return false
		}
	} else if f.Type.ID != other.Type.ID {
		return false
	}
	return valuesEqual(f.Value, other.Value)
}

// valuesEqual compares two field values. Primitive arrays (slices) are
// not comparable with ==, so this falls back to reflect.DeepEqual for any
// non-comparable value. Sub-message values are pointers, so two of the
// same concrete type compare by identity.
func valuesEqual(a, b any) bool {
	at := reflect.TypeOf(a)
	if at != nil && at.Comparable() && reflect.TypeOf(b) == at {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Name builds a *string, for callers constructing a Field literal.
func Name(s string) *string { return &s }

// Ordinal builds a *int16, for callers constructing a Field literal.
func Ordinal(v int16) *int16 { return &v }

// resolveCounterpart fills in whichever of Name/Ordinal the wire omitted,
// using tax to recover the other half of the binding. A field that
// already carries both, or that carries neither, is returned unchanged:
// there is nothing to resolve in the first case and nothing to resolve
// from in the second. tax may be nil, in which case f is returned as-is.
func (f Field) resolveCounterpart(tax Taxonomy) Field {
	if tax == nil {
		return f
	}
	switch {
	case f.Ordinal != nil && f.Name == nil:
		if name, ok := tax.NameFor(*f.Ordinal); ok {
			f.Name = Name(name)
		}
	case f.Name != nil && f.Ordinal == nil:
		if ord, ok := tax.OrdinalFor(*f.Name); ok {
			f.Ordinal = Ordinal(ord)
		}
	}
	return f
}
