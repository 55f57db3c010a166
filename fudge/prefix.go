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

// The field prefix is a single byte, laid out MSB to LSB:
//
//	bit 7    fixedWidth flag
//	bits 6-5 variableWidthSizeCode: 00 fixed (no size), 01 one-byte size,
//	         10 two-byte size, 11 four-byte size
//	bit 4    hasOrdinal
//	bit 3    hasName
//	bits 2-0 reserved, always 0

const (
	prefixFixedWidthMask = 0x80
	prefixSizeCodeMask   = 0x60
	prefixSizeCodeShift  = 5
	prefixOrdinalMask    = 0x10
	prefixNameMask       = 0x08

	sizeCodeFixed = 0
	sizeCode1     = 1
	sizeCode2     = 2
	sizeCode4     = 4
)

// composeFieldPrefix builds a field prefix byte. valueSize is ignored
// when fixedWidth is true. The variable-width size code is chosen as the
// smallest that fits valueSize: <=255 one byte, <=32767 two bytes,
// otherwise four bytes.
func composeFieldPrefix(fixedWidth bool, valueSize int, hasOrdinal, hasName bool) byte {
	var b byte
	if fixedWidth {
		b |= prefixFixedWidthMask
	} else {
		b |= sizeCodeBits(variableWidthSizeCode(valueSize))
	}
	if hasOrdinal {
		b |= prefixOrdinalMask
	}
	if hasName {
		b |= prefixNameMask
	}
	return b
}

// variableWidthSizeCode returns the byte width (1, 2 or 4) needed to
// encode valueSize as a variable-width size prefix.
func variableWidthSizeCode(valueSize int) int {
	switch {
	case valueSize <= MaxFixedVariableSize:
		return sizeCode1
	case valueSize <= MaxShortVariableSize:
		return sizeCode2
	default:
		return sizeCode4
	}
}

// sizeCodeBits maps a byte-width (1, 2, 4) to its two-bit wire encoding
// (01, 10, 11) shifted into place.
func sizeCodeBits(byteWidth int) byte {
	var code byte
	switch byteWidth {
	case sizeCode1:
		code = 1
	case sizeCode2:
		code = 2
	case sizeCode4:
		code = 3
	default:
		panic("fudge: invalid variable-width size code")
	}
	return code << prefixSizeCodeShift
}

func isFixedWidth(prefix byte) bool {
	return prefix&prefixFixedWidthMask != 0
}

func hasOrdinal(prefix byte) bool {
	return prefix&prefixOrdinalMask != 0
}

func hasName(prefix byte) bool {
	return prefix&prefixNameMask != 0
}

// fieldWidthByteCount returns the width, in bytes, of the variable-width
// size prefix that follows this field's type id: 0 if the field is fixed
// width, otherwise 1, 2 or 4.
func fieldWidthByteCount(prefix byte) int {
	if isFixedWidth(prefix) {
		return sizeCodeFixed
	}
	switch (prefix & prefixSizeCodeMask) >> prefixSizeCodeShift {
	case 1:
		return 1
	case 2:
		return 2
	case 3:
		return 4
	default:
		// Fixed-width bit clear but size code 00: malformed on the wire.
		// The reader rejects it when readVariableSize is asked for a
		// width of 0.
		return 0
	}
}

// fieldPrefix is the decomposed form of a field prefix byte.
type fieldPrefix struct {
	FixedWidth       bool
	VariableSizeCode int // 0 (fixed(no size)), 1, 2 or 4 byte-widths
	HasOrdinal       bool
	HasName          bool
}

// decodeFieldPrefix decomposes a prefix byte, per the bit layout above.
// It never fails: bits 2-0 are ignored on read (reserved, must be zero on
// write). With fixedWidth=true any size code bits are ignored and
// VariableSizeCode is 0; with fixedWidth=false and size code 00,
// VariableSizeCode is also 0, which the caller treats as malformed.
func decodeFieldPrefix(b byte) fieldPrefix {
	return fieldPrefix{
		FixedWidth:       isFixedWidth(b),
		VariableSizeCode: fieldWidthByteCount(b),
		HasOrdinal:       hasOrdinal(b),
		HasName:          hasName(b),
	}
}
