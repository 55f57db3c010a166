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

package msgio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fudgemsg/fudge-go/fudge"
)

func name(s string) *string { return &s }

func TestBuildAndFromMessageRoundTrip(t *testing.T) {
	ctx := fudge.NewContext()
	specs := []FieldSpec{
		{Name: name("greeting"), Type: "string", Value: "hello"},
		{Ordinal: fudge.Ordinal(2), Type: "int", Value: 42},
		{Name: name("nested"), Fields: []FieldSpec{
			{Name: name("x"), Type: "long", Value: 7},
		}},
	}

	msg, err := Build(ctx, specs)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := ctx.NewWriter(&buf)
	require.NoError(t, ctx.WriteMessageEnvelope(w, 0, 0, 0, msg))

	_, decoded, err := ctx.DecodeMessage(buf.Bytes())
	require.NoError(t, err)

	fields := FromMessage(decoded)
	require.Len(t, fields, 3)
	assert.Equal(t, "greeting", *fields[0].Name)
	assert.Equal(t, "hello", fields[0].Value)
	assert.Equal(t, int16(2), *fields[1].Ordinal)
	assert.Equal(t, int32(42), fields[1].Value)
	require.Len(t, fields[2].Fields, 1)
	assert.Equal(t, "x", *fields[2].Fields[0].Name)
	assert.Equal(t, int64(7), fields[2].Fields[0].Value)
}

func TestBuildRejectsUnknownScalarType(t *testing.T) {
	ctx := fudge.NewContext()
	_, err := Build(ctx, []FieldSpec{{Name: name("bad"), Type: "wat", Value: 1}})
	assert.Error(t, err)
}

func TestConvertValueByteArrayHex(t *testing.T) {
	v, err := convertValue("bytearray", "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, v)
}

func TestConvertValueDatetime(t *testing.T) {
	v, err := convertValue("datetime", "2026-08-02T15:04:05Z")
	require.NoError(t, err)
	_, ok := v.(interface{ IsZero() bool })
	assert.True(t, ok)
}
