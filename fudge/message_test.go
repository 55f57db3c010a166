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

func TestGetValueByNameConvertsThroughDictionary(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	msg := newEagerMessage([]Field{
		{Type: mustWireType(dict, TypeInt), Value: int32(7), Name: Name("count")},
	})

	v, ok := GetValueByName(dict, msg, "count", reflect.TypeOf(int32(0)))
	require.True(t, ok)
	assert.Equal(t, int32(7), v)
}

func TestGetValueByNameMissingField(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	msg := newEagerMessage(nil)

	v, ok := GetValueByName(dict, msg, "missing", reflect.TypeOf(int32(0)))
	require.False(t, ok)
	assert.Nil(t, v)
}

func TestGetValueByNameConversionFailureReturnsFalseNotError(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	msg := newEagerMessage([]Field{
		{Type: mustWireType(dict, TypeInt), Value: int32(7), Name: Name("count")},
	})

	// int32 has no registered conversion path to string: a genuine
	// ConversionFailure, which per spec.md §7 must come back as the
	// absence sentinel rather than an error.
	v, ok := GetValueByName(dict, msg, "count", reflect.TypeOf(""))
	require.False(t, ok)
	assert.Nil(t, v)
}

func TestGetValueByOrdinalConvertsThroughDictionary(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	msg := newEagerMessage([]Field{
		{Type: mustWireType(dict, TypeString), Value: "hi", Ordinal: Ordinal(3)},
	})

	v, ok := GetValueByOrdinal(dict, msg, 3, reflect.TypeOf(""))
	require.True(t, ok)
	assert.Equal(t, "hi", v)
}

func TestGetValueByOrdinalMissingField(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	msg := newEagerMessage(nil)

	v, ok := GetValueByOrdinal(dict, msg, 9, reflect.TypeOf(""))
	require.False(t, ok)
	assert.Nil(t, v)
}

func TestGetValueByOrdinalConversionFailureReturnsFalseNotError(t *testing.T) {
	dict := NewDefaultTypeDictionary()
	msg := newEagerMessage([]Field{
		{Type: mustWireType(dict, TypeString), Value: "hi", Ordinal: Ordinal(3)},
	})

	// string has no registered conversion path to int32.
	v, ok := GetValueByOrdinal(dict, msg, 3, reflect.TypeOf(int32(0)))
	require.False(t, ok)
	assert.Nil(t, v)
}

func mustWireType(dict *TypeDictionary, id TypeID) *WireType {
	wt, ok := dict.ByID(id)
	if !ok {
		panic("fudge: test type id not registered")
	}
	return wt
}
