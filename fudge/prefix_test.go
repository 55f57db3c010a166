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

import "testing"

func TestComposeFieldPrefix(t *testing.T) {
	cases := []struct {
		fixedWidth        bool
		valueSize         int
		hasOrdinal        bool
		hasName           bool
		want              byte
	}{
		{false, 10, false, false, 0x20},
		{false, 1024, false, false, 0x40},
		{false, 32768, false, false, 0x60},
		{true, 0, true, true, 0x98},
	}
	for _, c := range cases {
		got := composeFieldPrefix(c.fixedWidth, c.valueSize, c.hasOrdinal, c.hasName)
		if got != c.want {
			t.Errorf("composeFieldPrefix(%v, %d, %v, %v) = 0x%02x, want 0x%02x",
				c.fixedWidth, c.valueSize, c.hasOrdinal, c.hasName, got, c.want)
		}
	}
}

func TestDecodeFieldPrefixChecks(t *testing.T) {
	if hasName(0x20) {
		t.Error("0x20 should not have a name")
	}
	if !hasName(0x98) {
		t.Error("0x98 should have a name")
	}
	if isFixedWidth(0x20) {
		t.Error("0x20 should not be fixed width")
	}
	if !isFixedWidth(0x98) {
		t.Error("0x98 should be fixed width")
	}
	if hasOrdinal(0x20) {
		t.Error("0x20 should not have an ordinal")
	}
	if !hasOrdinal(0x98) {
		t.Error("0x98 should have an ordinal")
	}
}

func TestFieldWidthByteCount(t *testing.T) {
	cases := []struct {
		prefix byte
		want   int
	}{
		{0x98, 0},
		{0x20, 1},
		{0x40, 2},
		{0x60, 4},
	}
	for _, c := range cases {
		if got := fieldWidthByteCount(c.prefix); got != c.want {
			t.Errorf("fieldWidthByteCount(0x%02x) = %d, want %d", c.prefix, got, c.want)
		}
	}
}

func TestPrefixBijection(t *testing.T) {
	sizes := []int{0, 1, 10, 255, 256, 1024, 32767, 32768, 100000}
	for _, fixed := range []bool{false, true} {
		for _, ord := range []bool{false, true} {
			for _, name := range []bool{false, true} {
				for _, size := range sizes {
					b := composeFieldPrefix(fixed, size, ord, name)
					d := decodeFieldPrefix(b)
					if d.FixedWidth != fixed || d.HasOrdinal != ord || d.HasName != name {
						t.Fatalf("round trip mismatch for fixed=%v size=%d ord=%v name=%v: got %+v",
							fixed, size, ord, name, d)
					}
					if !fixed {
						wantWidth := variableWidthSizeCode(size)
						if d.VariableSizeCode != wantWidth {
							t.Fatalf("size code mismatch for size=%d: got %d want %d", size, d.VariableSizeCode, wantWidth)
						}
					}
				}
			}
		}
	}
}
