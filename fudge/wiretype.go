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

// TypeID identifies a wire type on the wire: a single unsigned byte.
type TypeID byte

// Built-in type ids. Ids 0-31 are reserved for fixed-width primitives
// and primitive arrays, per the wire format's type-id table; ids 32 and
// above cover strings, canonical-length byte arrays, date/time, the
// sub-message type and anything added later. Ordering and values are
// fixed once frozen by a Context and must not be reassigned.
const (
	TypeIndicator TypeID = 0
	TypeBoolean   TypeID = 1
	TypeByte      TypeID = 2
	TypeShort     TypeID = 3
	TypeInt       TypeID = 4
	TypeLong      TypeID = 5
	TypeFloat     TypeID = 6
	TypeDouble    TypeID = 7

	TypeShortArray  TypeID = 8
	TypeIntArray    TypeID = 9
	TypeLongArray   TypeID = 10
	TypeFloatArray  TypeID = 11
	TypeDoubleArray TypeID = 12
	TypeByteArray   TypeID = 13

	TypeString   TypeID = 32
	TypeDate     TypeID = 33
	TypeTime     TypeID = 34
	TypeDateTime TypeID = 35
	TypeFudgeMsg TypeID = 36

	TypeByteArray4   TypeID = 37
	TypeByteArray8   TypeID = 38
	TypeByteArray16  TypeID = 39
	TypeByteArray20  TypeID = 40
	TypeByteArray32  TypeID = 41
	TypeByteArray64  TypeID = 42
	TypeByteArray128 TypeID = 43
	TypeByteArray256 TypeID = 44
	TypeByteArray512 TypeID = 45
)

// sizeVariable is the WireType.FixedSize sentinel for variable-width
// types.
const sizeVariable = -1

// WireType is a registry entry: a tagged variant over the fixed set of
// built-in wire types plus an "other" (unknown) variant, per the
// tagged-variant modeling note in the wire format's design notes (avoid
// open/virtual-dispatch type hierarchies).
type WireType struct {
	ID    TypeID
	Name  string
	Class reflect.Type // the Go type a value of this wire type holds, for TypeDictionary lookups; nil for "other"

	// FixedSize is the wire size in bytes for fixed-width types, or
	// sizeVariable (-1) for variable-width types.
	FixedSize int

	read  func(r *readCursor, declaredSize int) (any, error)
	write func(w *writeBuffer, value any) error
	size  func(value any, taxonomy Taxonomy) (int, error)
}

// IsVariableWidth reports whether values of this type need a size prefix
// on the wire.
func (t *WireType) IsVariableWidth() bool { return t.FixedSize == sizeVariable }

// Size returns the number of value-payload bytes value would occupy.
// Valid for variable-width types only.
func (t *WireType) Size(value any, taxonomy Taxonomy) (int, error) {
	if !t.IsVariableWidth() {
		return t.FixedSize, nil
	}
	return t.size(value, taxonomy)
}

// Read decodes a value of this type from r. declaredSize is the number
// of payload bytes the field prefix/size-field declared (used by
// variable-width and "other" types); fixed-width types ignore it.
func (t *WireType) Read(r *readCursor, declaredSize int) (any, error) {
	return t.read(r, declaredSize)
}

// Write encodes value's wire representation (payload only, no prefix/type
// id/size header) to w.
func (t *WireType) Write(w *writeBuffer, value any) error {
	return t.write(w, value)
}
