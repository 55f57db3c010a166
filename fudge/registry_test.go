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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinRegistryCoversAllTypeIDs(t *testing.T) {
	ids := []TypeID{
		TypeIndicator, TypeBoolean, TypeByte, TypeShort, TypeInt, TypeLong, TypeFloat, TypeDouble,
		TypeShortArray, TypeIntArray, TypeLongArray, TypeFloatArray, TypeDoubleArray, TypeByteArray,
		TypeString, TypeDate, TypeTime, TypeDateTime, TypeFudgeMsg,
		TypeByteArray4, TypeByteArray8, TypeByteArray16, TypeByteArray20,
		TypeByteArray32, TypeByteArray64, TypeByteArray128, TypeByteArray256, TypeByteArray512,
	}
	seen := make(map[TypeID]bool)
	for _, id := range ids {
		wt, ok := builtinRegistry.ByID(id)
		require.Truef(t, ok, "type id %d missing from registry", id)
		assert.Equal(t, id, wt.ID)
		assert.False(t, seen[id], "duplicate id %d in test table", id)
		seen[id] = true
	}
}

func TestBuiltinRegistryByClass(t *testing.T) {
	wt, ok := builtinRegistry.ByClass(reflect.TypeOf(int32(0)))
	require.True(t, ok)
	assert.Equal(t, TypeInt, wt.ID)
}

func TestFixedByteArrayRoundTrip(t *testing.T) {
	wt, ok := builtinRegistry.ByID(TypeByteArray4)
	require.True(t, ok)
	w := newWriteBuffer(0)
	require.NoError(t, wt.Write(w, []byte{1, 2, 3, 4}))
	r := newReadCursor(w.Bytes())
	v, err := wt.Read(r, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, v)

	require.Error(t, wt.Write(newWriteBuffer(0), []byte{1, 2, 3}))
}
