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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMessageEnvelopeSizeSingleBooleanField(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	boolType, ok := dict.ByID(TypeBoolean)
	require.True(t, ok)

	msg := newEagerMessage([]Field{
		{Type: boolType, Value: true, Name: Name("b")},
	})

	var c SizeCalculator
	n, err := c.CalculateMessageEnvelopeSize(nil, msg)
	require.NoError(t, err)
	// 8 (envelope) + 2 (prefix+typeId) + 1 (name length) + 1 ("b") + 1 (bool payload)
	assert.Equal(t, 13, n)
}

func TestCalculateFieldSizeTaxonomySubstitution(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	intType, ok := dict.ByID(TypeInt)
	require.True(t, ok)
	tax := NewMapTaxonomy(map[string]int16{"x": 7})

	var c SizeCalculator
	withTax, err := c.CalculateFieldSize(tax, Name("x"), nil, intType, int32(42))
	require.NoError(t, err)
	withOrdinal, err := c.CalculateFieldSize(nil, nil, Ordinal(7), intType, int32(42))
	require.NoError(t, err)
	assert.Equal(t, withOrdinal, withTax)
}

func TestCalculateMessageSizeNested(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	intType, _ := dict.ByID(TypeInt)
	msgType, _ := dict.ByID(TypeFudgeMsg)

	inner := newEagerMessage([]Field{
		{Type: intType, Value: int32(1)},
		{Type: intType, Value: int32(2)},
	})
	outer := newEagerMessage([]Field{
		{Type: msgType, Value: inner, Name: Name("sub")},
	})

	var c SizeCalculator
	innerSize, err := c.CalculateMessageSize(nil, inner)
	require.NoError(t, err)
	assert.Equal(t, 12, innerSize) // 2 * (2 prefix/type + 4 int)

	n, err := c.CalculateFieldSizeOf(nil, outer.fields[0])
	require.NoError(t, err)
	// 2 (prefix+typeId) + 1 (name len) + 3 ("sub") + innerSize, variable width <=255 so +1
	assert.Equal(t, 2+1+3+1+innerSize, n)
}

func TestCalculateFieldSizeRejectsOversizedValue(t *testing.T) {
	oversized := &WireType{
		ID:        TypeByteArray,
		Name:      "oversizedTestType",
		FixedSize: sizeVariable,
		size: func(value any, taxonomy Taxonomy) (int, error) {
			return MaxVariableSize + 1, nil
		},
	}

	var c SizeCalculator
	_, err := c.CalculateFieldSize(nil, nil, nil, oversized, []byte{1})
	require.Error(t, err)
	var werr *WireError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, KindEncodingOverflow, werr.Kind)
}
