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

func TestContextEncodeDecodeRoundTrip(t *testing.T) {
	ctx := NewContext()
	msg := ctx.NewMutableMessage()
	require.NoError(t, msg.Add(Name("greeting"), nil, "hello"))
	require.NoError(t, msg.Add(nil, Ordinal(2), int32(42)))

	var buf bytes.Buffer
	w := ctx.NewWriter(&buf)
	require.NoError(t, ctx.WriteMessageEnvelope(w, 0, 0, 0, msg))

	taxonomyID, decoded, err := ctx.DecodeMessage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, int16(0), taxonomyID)
	assert.Equal(t, 2, decoded.NumFields())

	f, ok := decoded.ByName("greeting")
	require.True(t, ok)
	assert.Equal(t, "hello", f.Value)

	f2, ok := decoded.ByOrdinal(2)
	require.True(t, ok)
	assert.Equal(t, int32(42), f2.Value)
}

func TestContextWithTaxonomyRoundTrip(t *testing.T) {
	tax := NewMapTaxonomy(map[string]int16{"x": 7})
	ctx := NewContextWithTaxonomies(map[int16]Taxonomy{3: tax})

	msg := ctx.NewMutableMessage()
	require.NoError(t, msg.Add(Name("x"), nil, int32(42)))

	var buf bytes.Buffer
	w := ctx.NewWriter(&buf)
	require.NoError(t, ctx.WriteMessageEnvelope(w, 0, 0, 3, msg))

	_, decoded, err := ctx.DecodeMessage(buf.Bytes())
	require.NoError(t, err)
	f, ok := decoded.ByOrdinal(7)
	require.True(t, ok)
	// The wire carries ordinal 7 alone; the bound taxonomy recovers "x"
	// as its counterpart on the way back out.
	require.True(t, f.HasName())
	assert.Equal(t, "x", f.NameOrEmpty())
	assert.Equal(t, int32(42), f.Value)
}

func TestContextDecodeResolvesCounterpartThroughNestedSubMessage(t *testing.T) {
	tax := NewMapTaxonomy(map[string]int16{"outer": 1, "inner": 2})
	ctx := NewContextWithTaxonomies(map[int16]Taxonomy{5: tax})

	msg := ctx.NewMutableMessage()
	sub := msg.AddSubMessage(Name("outer"), nil)
	require.NoError(t, sub.Add(Name("inner"), nil, int32(9)))

	var buf bytes.Buffer
	w := ctx.NewWriter(&buf)
	require.NoError(t, ctx.WriteMessageEnvelope(w, 0, 0, 5, msg))

	_, decoded, err := ctx.DecodeMessage(buf.Bytes())
	require.NoError(t, err)
	outer, ok := decoded.ByOrdinal(1)
	require.True(t, ok)
	assert.Equal(t, "outer", outer.NameOrEmpty())

	inner, ok := outer.Value.(*EncodedMessage).ByOrdinal(2)
	require.True(t, ok)
	assert.Equal(t, "inner", inner.NameOrEmpty())
	assert.Equal(t, int32(9), inner.Value)
}
