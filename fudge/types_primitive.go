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

import (
	"reflect"
	"strconv"
	"unicode/utf8"
)

// Indicator is the zero-sized value of the indicator wire type: its
// presence on a field is the entire datum (§3, §9 "zero-sized tagged
// variant").
type Indicator struct{}

// Date is the primary wire representation of a calendar date: a
// fixed-width 4-byte value (2-byte signed year, 1-byte month, 1-byte
// day). Applications normally work with time.Time via the DateTime
// secondary-type adapter (see secondary.go) rather than this type
// directly.
type Date struct {
	Year  int16
	Month uint8
	Day   uint8
}

// Time is the primary wire representation of a time of day: a
// fixed-width 8-byte value, nanoseconds since midnight.
type Time struct {
	Nanos int64
}

// DateTime is the primary wire representation combining Date and Time
// into a fixed-width 12-byte value.
type DateTime struct {
	Date Date
	Time Time
}

func builtinWireTypes() []*WireType {
	return []*WireType{
		indicatorType(),
		booleanType(),
		byteType(),
		shortType(),
		intType(),
		longType(),
		floatType(),
		doubleType(),
		shortArrayType(),
		intArrayType(),
		longArrayType(),
		floatArrayType(),
		doubleArrayType(),
		byteArrayType(),
		stringType(),
		dateType(),
		timeType(),
		dateTimeType(),
		subMessageType(),
		fixedByteArrayType(TypeByteArray4, 4),
		fixedByteArrayType(TypeByteArray8, 8),
		fixedByteArrayType(TypeByteArray16, 16),
		fixedByteArrayType(TypeByteArray20, 20),
		fixedByteArrayType(TypeByteArray32, 32),
		fixedByteArrayType(TypeByteArray64, 64),
		fixedByteArrayType(TypeByteArray128, 128),
		fixedByteArrayType(TypeByteArray256, 256),
		fixedByteArrayType(TypeByteArray512, 512),
	}
}

func indicatorType() *WireType {
	return &WireType{
		ID: TypeIndicator, Name: "indicator", Class: reflect.TypeOf(Indicator{}), FixedSize: 0,
		read:  func(r *readCursor, _ int) (any, error) { return Indicator{}, nil },
		write: func(w *writeBuffer, _ any) error { return nil },
	}
}

func booleanType() *WireType {
	return &WireType{
		ID: TypeBoolean, Name: "boolean", Class: reflect.TypeOf(false), FixedSize: 1,
		read: func(r *readCursor, _ int) (any, error) {
			b, err := r.readByte("readBoolean")
			if err != nil {
				return nil, err
			}
			return b != 0, nil
		},
		write: func(w *writeBuffer, v any) error {
			b, ok := v.(bool)
			if !ok {
				return unknownType("writeBoolean", "value %T is not a bool", v)
			}
			if b {
				w.writeByte(1)
			} else {
				w.writeByte(0)
			}
			return nil
		},
	}
}

func byteType() *WireType {
	return &WireType{
		ID: TypeByte, Name: "byte", Class: reflect.TypeOf(int8(0)), FixedSize: 1,
		read: func(r *readCursor, _ int) (any, error) {
			b, err := r.readByte("readByte")
			return int8(b), err
		},
		write: func(w *writeBuffer, v any) error {
			i, ok := v.(int8)
			if !ok {
				return unknownType("writeByte", "value %T is not an int8", v)
			}
			w.writeByte(byte(i))
			return nil
		},
	}
}

func shortType() *WireType {
	return &WireType{
		ID: TypeShort, Name: "short", Class: reflect.TypeOf(int16(0)), FixedSize: 2,
		read: func(r *readCursor, _ int) (any, error) { return r.readInt16("readShort") },
		write: func(w *writeBuffer, v any) error {
			i, ok := v.(int16)
			if !ok {
				return unknownType("writeShort", "value %T is not an int16", v)
			}
			w.writeInt16(i)
			return nil
		},
	}
}

func intType() *WireType {
	return &WireType{
		ID: TypeInt, Name: "int", Class: reflect.TypeOf(int32(0)), FixedSize: 4,
		read: func(r *readCursor, _ int) (any, error) { return r.readInt32("readInt") },
		write: func(w *writeBuffer, v any) error {
			i, ok := v.(int32)
			if !ok {
				return unknownType("writeInt", "value %T is not an int32", v)
			}
			w.writeInt32(i)
			return nil
		},
	}
}

func longType() *WireType {
	return &WireType{
		ID: TypeLong, Name: "long", Class: reflect.TypeOf(int64(0)), FixedSize: 8,
		read: func(r *readCursor, _ int) (any, error) { return r.readInt64("readLong") },
		write: func(w *writeBuffer, v any) error {
			i, ok := v.(int64)
			if !ok {
				return unknownType("writeLong", "value %T is not an int64", v)
			}
			w.writeInt64(i)
			return nil
		},
	}
}

func floatType() *WireType {
	return &WireType{
		ID: TypeFloat, Name: "float", Class: reflect.TypeOf(float32(0)), FixedSize: 4,
		read: func(r *readCursor, _ int) (any, error) { return r.readFloat32("readFloat") },
		write: func(w *writeBuffer, v any) error {
			f, ok := v.(float32)
			if !ok {
				return unknownType("writeFloat", "value %T is not a float32", v)
			}
			w.writeFloat32(f)
			return nil
		},
	}
}

func doubleType() *WireType {
	return &WireType{
		ID: TypeDouble, Name: "double", Class: reflect.TypeOf(float64(0)), FixedSize: 8,
		read: func(r *readCursor, _ int) (any, error) { return r.readFloat64("readDouble") },
		write: func(w *writeBuffer, v any) error {
			f, ok := v.(float64)
			if !ok {
				return unknownType("writeDouble", "value %T is not a float64", v)
			}
			w.writeFloat64(f)
			return nil
		},
	}
}

// --- primitive arrays -------------------------------------------------

func shortArrayType() *WireType {
	return &WireType{
		ID: TypeShortArray, Name: "shortArray", Class: reflect.TypeOf([]int16(nil)), FixedSize: sizeVariable,
		size: func(v any, _ Taxonomy) (int, error) {
			a, ok := v.([]int16)
			if !ok {
				return 0, unknownType("sizeShortArray", "value %T is not a []int16", v)
			}
			return len(a) * 2, nil
		},
		read: func(r *readCursor, declaredSize int) (any, error) {
			n := declaredSize / 2
			out := make([]int16, n)
			for i := range out {
				v, err := r.readInt16("readShortArray")
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		},
		write: func(w *writeBuffer, v any) error {
			a, ok := v.([]int16)
			if !ok {
				return unknownType("writeShortArray", "value %T is not a []int16", v)
			}
			for _, e := range a {
				w.writeInt16(e)
			}
			return nil
		},
	}
}

func intArrayType() *WireType {
	return &WireType{
		ID: TypeIntArray, Name: "intArray", Class: reflect.TypeOf([]int32(nil)), FixedSize: sizeVariable,
		size: func(v any, _ Taxonomy) (int, error) {
			a, ok := v.([]int32)
			if !ok {
				return 0, unknownType("sizeIntArray", "value %T is not a []int32", v)
			}
			return len(a) * 4, nil
		},
		read: func(r *readCursor, declaredSize int) (any, error) {
			n := declaredSize / 4
			out := make([]int32, n)
			for i := range out {
				v, err := r.readInt32("readIntArray")
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		},
		write: func(w *writeBuffer, v any) error {
			a, ok := v.([]int32)
			if !ok {
				return unknownType("writeIntArray", "value %T is not a []int32", v)
			}
			for _, e := range a {
				w.writeInt32(e)
			}
			return nil
		},
	}
}

func longArrayType() *WireType {
	return &WireType{
		ID: TypeLongArray, Name: "longArray", Class: reflect.TypeOf([]int64(nil)), FixedSize: sizeVariable,
		size: func(v any, _ Taxonomy) (int, error) {
			a, ok := v.([]int64)
			if !ok {
				return 0, unknownType("sizeLongArray", "value %T is not a []int64", v)
			}
			return len(a) * 8, nil
		},
		read: func(r *readCursor, declaredSize int) (any, error) {
			n := declaredSize / 8
			out := make([]int64, n)
			for i := range out {
				v, err := r.readInt64("readLongArray")
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		},
		write: func(w *writeBuffer, v any) error {
			a, ok := v.([]int64)
			if !ok {
				return unknownType("writeLongArray", "value %T is not a []int64", v)
			}
			for _, e := range a {
				w.writeInt64(e)
			}
			return nil
		},
	}
}

func floatArrayType() *WireType {
	return &WireType{
		ID: TypeFloatArray, Name: "floatArray", Class: reflect.TypeOf([]float32(nil)), FixedSize: sizeVariable,
		size: func(v any, _ Taxonomy) (int, error) {
			a, ok := v.([]float32)
			if !ok {
				return 0, unknownType("sizeFloatArray", "value %T is not a []float32", v)
			}
			return len(a) * 4, nil
		},
		read: func(r *readCursor, declaredSize int) (any, error) {
			n := declaredSize / 4
			out := make([]float32, n)
			for i := range out {
				v, err := r.readFloat32("readFloatArray")
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		},
		write: func(w *writeBuffer, v any) error {
			a, ok := v.([]float32)
			if !ok {
				return unknownType("writeFloatArray", "value %T is not a []float32", v)
			}
			for _, e := range a {
				w.writeFloat32(e)
			}
			return nil
		},
	}
}

func doubleArrayType() *WireType {
	return &WireType{
		ID: TypeDoubleArray, Name: "doubleArray", Class: reflect.TypeOf([]float64(nil)), FixedSize: sizeVariable,
		size: func(v any, _ Taxonomy) (int, error) {
			a, ok := v.([]float64)
			if !ok {
				return 0, unknownType("sizeDoubleArray", "value %T is not a []float64", v)
			}
			return len(a) * 8, nil
		},
		read: func(r *readCursor, declaredSize int) (any, error) {
			n := declaredSize / 8
			out := make([]float64, n)
			for i := range out {
				v, err := r.readFloat64("readDoubleArray")
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return out, nil
		},
		write: func(w *writeBuffer, v any) error {
			a, ok := v.([]float64)
			if !ok {
				return unknownType("writeDoubleArray", "value %T is not a []float64", v)
			}
			for _, e := range a {
				w.writeFloat64(e)
			}
			return nil
		},
	}
}

func byteArrayType() *WireType {
	return &WireType{
		ID: TypeByteArray, Name: "byteArray", Class: reflect.TypeOf([]byte(nil)), FixedSize: sizeVariable,
		size: func(v any, _ Taxonomy) (int, error) {
			a, ok := v.([]byte)
			if !ok {
				return 0, unknownType("sizeByteArray", "value %T is not a []byte", v)
			}
			return len(a), nil
		},
		read: func(r *readCursor, declaredSize int) (any, error) {
			b, err := r.readBytes(declaredSize, "readByteArray")
			if err != nil {
				return nil, err
			}
			out := make([]byte, len(b))
			copy(out, b)
			return out, nil
		},
		write: func(w *writeBuffer, v any) error {
			a, ok := v.([]byte)
			if !ok {
				return unknownType("writeByteArray", "value %T is not a []byte", v)
			}
			w.writeBytes(a)
			return nil
		},
	}
}

// fixedByteArrayType builds one of the canonical fixed-length byte-array
// wire types (4/8/16/20/32/64/128/256/512 bytes, per §4.2's type id
// table). Values are always exactly n bytes; a shorter or longer slice is
// a write-time error rather than being silently padded or truncated.
func fixedByteArrayType(id TypeID, n int) *WireType {
	name := "byteArray" + strconv.Itoa(n)
	return &WireType{
		ID: id, Name: name, Class: nil, FixedSize: n,
		read: func(r *readCursor, _ int) (any, error) {
			b, err := r.readBytes(n, "read"+name)
			if err != nil {
				return nil, err
			}
			out := make([]byte, n)
			copy(out, b)
			return out, nil
		},
		write: func(w *writeBuffer, v any) error {
			a, ok := v.([]byte)
			if !ok {
				return unknownType("write"+name, "value %T is not a []byte", v)
			}
			if len(a) != n {
				return overflowf("write"+name, "value has %d bytes, want exactly %d", len(a), n)
			}
			w.writeBytes(a)
			return nil
		},
	}
}

func stringType() *WireType {
	return &WireType{
		ID: TypeString, Name: "string", Class: reflect.TypeOf(""), FixedSize: sizeVariable,
		size: func(v any, _ Taxonomy) (int, error) {
			s, ok := v.(string)
			if !ok {
				return 0, unknownType("sizeString", "value %T is not a string", v)
			}
			return len(s), nil
		},
		read: func(r *readCursor, declaredSize int) (any, error) {
			b, err := r.readBytes(declaredSize, "readString")
			if err != nil {
				return nil, err
			}
			if !utf8.Valid(b) {
				return nil, malformedf("readString", "value is not valid UTF-8")
			}
			return string(b), nil
		},
		write: func(w *writeBuffer, v any) error {
			s, ok := v.(string)
			if !ok {
				return unknownType("writeString", "value %T is not a string", v)
			}
			w.writeBytes([]byte(s))
			return nil
		},
	}
}

// --- date / time -------------------------------------------------------

func dateType() *WireType {
	return &WireType{
		ID: TypeDate, Name: "date", Class: reflect.TypeOf(Date{}), FixedSize: 4,
		read: func(r *readCursor, _ int) (any, error) { return readDate(r) },
		write: func(w *writeBuffer, v any) error {
			d, ok := v.(Date)
			if !ok {
				return unknownType("writeDate", "value %T is not a Date", v)
			}
			writeDate(w, d)
			return nil
		},
	}
}

func timeType() *WireType {
	return &WireType{
		ID: TypeTime, Name: "time", Class: reflect.TypeOf(Time{}), FixedSize: 8,
		read: func(r *readCursor, _ int) (any, error) {
			n, err := r.readInt64("readTime")
			return Time{Nanos: n}, err
		},
		write: func(w *writeBuffer, v any) error {
			t, ok := v.(Time)
			if !ok {
				return unknownType("writeTime", "value %T is not a Time", v)
			}
			w.writeInt64(t.Nanos)
			return nil
		},
	}
}

func dateTimeType() *WireType {
	return &WireType{
		ID: TypeDateTime, Name: "datetime", Class: reflect.TypeOf(DateTime{}), FixedSize: 12,
		read: func(r *readCursor, _ int) (any, error) {
			d, err := readDate(r)
			if err != nil {
				return nil, err
			}
			n, err := r.readInt64("readDateTime")
			if err != nil {
				return nil, err
			}
			return DateTime{Date: d, Time: Time{Nanos: n}}, nil
		},
		write: func(w *writeBuffer, v any) error {
			dt, ok := v.(DateTime)
			if !ok {
				return unknownType("writeDateTime", "value %T is not a DateTime", v)
			}
			writeDate(w, dt.Date)
			w.writeInt64(dt.Time.Nanos)
			return nil
		},
	}
}

func readDate(r *readCursor) (Date, error) {
	year, err := r.readInt16("readDate")
	if err != nil {
		return Date{}, err
	}
	month, err := r.readByte("readDate")
	if err != nil {
		return Date{}, err
	}
	day, err := r.readByte("readDate")
	if err != nil {
		return Date{}, err
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

func writeDate(w *writeBuffer, d Date) {
	w.writeInt16(d.Year)
	w.writeByte(d.Month)
	w.writeByte(d.Day)
}

// --- sub-message ---------------------------------------------------------

// subMessageType registers the FUDGE_MSG type id so the registry and
// size calculator recognize it, but its read/write function fields are
// never invoked: a sub-message field's bytes are a concatenation of
// fields, not a value this package's single-value codec can decode on
// its own, so the stream reader/writer (reader.go, writer.go) and the
// lazy container (encoded_message.go) special-case TypeFudgeMsg and
// recurse directly rather than calling WireType.Read/Write.
func subMessageType() *WireType {
	return &WireType{
		ID: TypeFudgeMsg, Name: "message", Class: nil, FixedSize: sizeVariable,
		size: func(_ any, _ Taxonomy) (int, error) {
			return 0, stateViolation("sizeSubMessage", "sub-message size is computed by calculateMessageSize, not WireType.Size")
		},
		read: func(_ *readCursor, _ int) (any, error) {
			return nil, stateViolation("readSubMessage", "sub-message decoding is handled by the stream reader, not WireType.Read")
		},
		write: func(_ *writeBuffer, _ any) error {
			return stateViolation("writeSubMessage", "sub-message encoding is handled by the stream writer, not WireType.Write")
		},
	}
}
