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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeDictionaryPrimaryLookup(t *testing.T) {
	d := NewDefaultTypeDictionary()
	wt, value, err := d.EncodeValue(int32(42))
	require.NoError(t, err)
	assert.Equal(t, TypeInt, wt.ID)
	assert.Equal(t, int32(42), value)
}

func TestTypeDictionaryUnregisteredClass(t *testing.T) {
	d := NewDefaultTypeDictionary()
	type custom struct{ X int }
	_, _, err := d.EncodeValue(custom{X: 1})
	require.Error(t, err)
	var werr *WireError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, KindUnknownType, werr.Kind)
}

func TestTypeDictionarySecondaryTimeRoundTrip(t *testing.T) {
	d := NewDefaultTypeDictionary()
	in := time.Date(2020, time.March, 15, 13, 45, 30, 0, time.UTC)

	wt, primaryValue, err := d.EncodeValue(in)
	require.NoError(t, err)
	assert.Equal(t, TypeDateTime, wt.ID)

	back, err := d.Convert(reflect.TypeOf(time.Time{}), primaryValue)
	require.NoError(t, err)
	assert.True(t, in.Equal(back.(time.Time)))

	assert.True(t, d.CanConvert(reflect.TypeOf(time.Time{}), primaryValue))
}

func TestTypeDictionaryCanConvertNoPath(t *testing.T) {
	d := NewDefaultTypeDictionary()
	assert.False(t, d.CanConvert(reflect.TypeOf(int64(0)), "not an int64"))
}

func TestWireTypeForPrimaryAndSecondaryClasses(t *testing.T) {
	d := NewDefaultTypeDictionary()

	wt, ok := d.WireTypeFor(reflect.TypeOf(int32(0)))
	require.True(t, ok)
	assert.Equal(t, TypeInt, wt.ID)

	wt, ok = d.WireTypeFor(reflect.TypeOf(time.Time{}))
	require.True(t, ok)
	assert.Equal(t, TypeDateTime, wt.ID)

	_, ok = d.WireTypeFor(reflect.TypeOf(struct{ X int }{}))
	assert.False(t, ok)
}

// applicationDuration is an application-defined secondary type: a
// duration in whole seconds, stored on the wire as a long.
type applicationDuration time.Duration

func TestNewTypeDictionaryStartsWithNoSecondaryTypes(t *testing.T) {
	d := NewTypeDictionary()

	_, ok := d.WireTypeFor(reflect.TypeOf(applicationDuration(0)))
	assert.False(t, ok, "a bare TypeDictionary has no secondary types registered")

	longType, ok := d.ByID(TypeLong)
	require.True(t, ok)

	d.RegisterSecondaryType(
		reflect.TypeOf(applicationDuration(0)),
		longType,
		func(v any) (any, error) { return int64(time.Duration(v.(applicationDuration)) / time.Second), nil },
		func(v any) (any, error) { return applicationDuration(time.Duration(v.(int64)) * time.Second), nil },
	)

	wt, primaryValue, err := d.EncodeValue(applicationDuration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, TypeLong, wt.ID)
	assert.Equal(t, int64(90), primaryValue)

	back, err := d.Convert(reflect.TypeOf(applicationDuration(0)), primaryValue)
	require.NoError(t, err)
	assert.Equal(t, applicationDuration(90*time.Second), back)
}
