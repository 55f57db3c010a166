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

func TestMapTaxonomyIsABijection(t *testing.T) {
	tax := NewMapTaxonomy(map[string]int16{"price": 1, "quantity": 2})

	name, ok := tax.NameFor(1)
	require.True(t, ok)
	assert.Equal(t, "price", name)

	ord, ok := tax.OrdinalFor("quantity")
	require.True(t, ok)
	assert.Equal(t, int16(2), ord)

	_, ok = tax.NameFor(99)
	assert.False(t, ok)
	_, ok = tax.OrdinalFor("missing")
	assert.False(t, ok)
}

func TestNewMapTaxonomyPanicsOnDuplicateOrdinal(t *testing.T) {
	assert.Panics(t, func() {
		NewMapTaxonomy(map[string]int16{"a": 1, "b": 1})
	})
}

func TestMapResolverResolvesRegisteredIDs(t *testing.T) {
	tax := NewMapTaxonomy(map[string]int16{"x": 1})
	resolver := NewMapResolver(map[int16]Taxonomy{3: tax})

	got, ok := resolver.Resolve(3)
	require.True(t, ok)
	assert.Same(t, tax, got)

	_, ok = resolver.Resolve(4)
	assert.False(t, ok)
}

func TestMapResolverCopiesInputMap(t *testing.T) {
	src := map[int16]Taxonomy{3: NewMapTaxonomy(map[string]int16{"x": 1})}
	resolver := NewMapResolver(src)

	delete(src, 3)

	_, ok := resolver.Resolve(3)
	assert.True(t, ok, "resolver must not alias the caller's map")
}

func TestNoTaxonomyResolverNeverResolves(t *testing.T) {
	_, ok := NoTaxonomyResolver.Resolve(0)
	assert.False(t, ok)
}
