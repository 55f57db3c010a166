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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMessageEnvelopeSingleBooleanField(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	boolType, _ := dict.ByID(TypeBoolean)
	msg := newEagerMessage([]Field{{Type: boolType, Value: true, Name: Name("b")}})

	var buf bytes.Buffer
	w := NewStreamWriter(dict, &buf)
	require.NoError(t, WriteMessageEnvelope(w, nil, 0, 0, 0, msg))
	assert.Equal(t, WriterDone, w.State())
	assert.Equal(t, 13, buf.Len())

	got := buf.Bytes()
	assert.Equal(t, byte(0), got[0]) // processingDirectives
	assert.Equal(t, byte(0), got[1]) // schemaVersion
	assert.Equal(t, []byte{0, 0}, got[2:4])
	assert.Equal(t, int32(13), int32(got[4])<<24|int32(got[5])<<16|int32(got[6])<<8|int32(got[7]))
	assert.Equal(t, byte(0x88), got[8])  // prefix: fixed width, hasName
	assert.Equal(t, byte(TypeBoolean), got[9])
	assert.Equal(t, byte(1), got[10]) // name length
	assert.Equal(t, byte('b'), got[11])
	assert.Equal(t, byte(1), got[12]) // bool payload: true
}

func TestWriteFieldIndicatorWithOrdinal(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	indType, _ := dict.ByID(TypeIndicator)
	msg := newEagerMessage([]Field{{Type: indType, Value: Indicator{}, Ordinal: Ordinal(5)}})

	var buf bytes.Buffer
	w := NewStreamWriter(dict, &buf)
	require.NoError(t, WriteMessageEnvelope(w, nil, 0, 0, 0, msg))

	fieldBytes := buf.Bytes()[8:]
	require.Len(t, fieldBytes, 4)
	assert.Equal(t, byte(0x90), fieldBytes[0]) // fixed width, hasOrdinal
	assert.Equal(t, byte(TypeIndicator), fieldBytes[1])
	assert.Equal(t, []byte{0, 5}, fieldBytes[2:4])
}

func TestWriteFieldTaxonomySubstitutesOrdinalForName(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	intType, _ := dict.ByID(TypeInt)
	tax := NewMapTaxonomy(map[string]int16{"x": 7})
	msg := newEagerMessage([]Field{{Type: intType, Value: int32(42), Name: Name("x")}})

	var buf bytes.Buffer
	w := NewStreamWriter(dict, &buf)
	require.NoError(t, WriteMessageEnvelope(w, tax, 0, 0, 0, msg))

	fieldBytes := buf.Bytes()[8:]
	assert.Equal(t, byte(0x90), fieldBytes[0]) // fixed width, hasOrdinal, no name
	assert.Equal(t, byte(TypeInt), fieldBytes[1])
	assert.Equal(t, []byte{0, 7}, fieldBytes[2:4])
}

func TestWriteFieldBudgetOverflow(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	intType, _ := dict.ByID(TypeInt)
	var buf bytes.Buffer
	w := NewStreamWriter(dict, &buf)
	require.NoError(t, w.WriteEnvelopeHeader(0, 0, 0, EnvelopeHeaderSize+2))
	err := w.WriteField(nil, Field{Type: intType, Value: int32(1)})
	require.Error(t, err)
	var werr *WireError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, KindEncodingOverflow, werr.Kind)
}

func TestWriteFieldRejectsOversizedValue(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	oversized := &WireType{
		ID:        TypeByteArray,
		Name:      "oversizedTestType",
		FixedSize: sizeVariable,
		size: func(value any, taxonomy Taxonomy) (int, error) {
			return MaxVariableSize + 1, nil
		},
		write: func(w *writeBuffer, value any) error { return nil },
	}

	var buf bytes.Buffer
	w := NewStreamWriter(dict, &buf)
	require.NoError(t, w.WriteEnvelopeHeader(0, 0, 0, EnvelopeHeaderSize+2))
	err := w.WriteField(nil, Field{Type: oversized, Value: []byte{1}})
	require.Error(t, err)
	var werr *WireError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, KindEncodingOverflow, werr.Kind)
	assert.Equal(t, EnvelopeHeaderSize, buf.Len(), "no bytes beyond the envelope header should be written for a field that fails size validation")
}

func TestWriteMessageEnvelopeRejectsTotalSizeBeyondInt32(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	oversized := &WireType{
		ID:        TypeByteArray,
		Name:      "oversizedTestType",
		FixedSize: sizeVariable,
		size: func(value any, taxonomy Taxonomy) (int, error) {
			return MaxVariableSize, nil
		},
	}
	msg := newEagerMessage([]Field{
		{Type: oversized, Value: []byte{1}},
		{Type: oversized, Value: []byte{1}},
	})

	var buf bytes.Buffer
	w := NewStreamWriter(dict, &buf)
	err := WriteMessageEnvelope(w, nil, 0, 0, 0, msg)
	require.Error(t, err)
	var werr *WireError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, KindEncodingOverflow, werr.Kind)
	assert.Equal(t, 0, buf.Len())
}

func TestWriteNestedSubMessage(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	intType, _ := dict.ByID(TypeInt)
	msgType, _ := dict.ByID(TypeFudgeMsg)

	inner := newEagerMessage([]Field{
		{Type: intType, Value: int32(1)},
		{Type: intType, Value: int32(2)},
	})
	outer := newEagerMessage([]Field{{Type: msgType, Value: inner, Name: Name("sub")}})

	var buf bytes.Buffer
	w := NewStreamWriter(dict, &buf)
	require.NoError(t, WriteMessageEnvelope(w, nil, 0, 0, 0, outer))

	var c SizeCalculator
	total, err := c.CalculateMessageEnvelopeSize(nil, outer)
	require.NoError(t, err)
	assert.Equal(t, total, buf.Len())
}
