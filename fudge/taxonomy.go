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

import "strconv"

// Taxonomy maps field ordinals to names and back within a single
// taxonomy id. A stream writer uses it to drop a field's name when the
// ordinal alone lets a reader recover it; a stream reader uses it to
// recover the name a writer elided. Implementations must be a bijection
// within the scope of one taxonomy: distinct ordinals never share a
// name and vice versa.
type Taxonomy interface {
	// NameFor returns the name bound to ordinal, and whether a binding
	// exists.
	NameFor(ordinal int16) (string, bool)
	// OrdinalFor returns the ordinal bound to name, and whether a
	// binding exists.
	OrdinalFor(name string) (int16, bool)
}

// TaxonomyResolver looks up a Taxonomy by its 16-bit taxonomy id, as
// carried in the envelope header. A resolver that knows nothing about a
// given id returns ok=false; callers then fall back to writing/reading
// fields with their names intact.
type TaxonomyResolver interface {
	Resolve(taxonomyID int16) (Taxonomy, bool)
}

// MapTaxonomy is an in-memory Taxonomy backed by a name<->ordinal map,
// built once and treated as immutable thereafter.
type MapTaxonomy struct {
	byOrdinal map[int16]string
	byName    map[string]int16
}

// NewMapTaxonomy builds a MapTaxonomy from a name->ordinal map. It
// panics if the map is not a bijection (a duplicate ordinal appears
// under two names): taxonomies are loaded once at startup from trusted
// configuration, so a malformed taxonomy is a programming error, not a
// runtime condition callers need to recover from.
func NewMapTaxonomy(nameToOrdinal map[string]int16) *MapTaxonomy {
	t := &MapTaxonomy{
		byOrdinal: make(map[int16]string, len(nameToOrdinal)),
		byName:    make(map[string]int16, len(nameToOrdinal)),
	}
	for name, ord := range nameToOrdinal {
		if existing, ok := t.byOrdinal[ord]; ok {
			panic("fudge: taxonomy ordinal " + strconv.Itoa(int(ord)) + " bound to both " + existing + " and " + name)
		}
		t.byOrdinal[ord] = name
		t.byName[name] = ord
	}
	return t
}

func (t *MapTaxonomy) NameFor(ordinal int16) (string, bool) {
	name, ok := t.byOrdinal[ordinal]
	return name, ok
}

func (t *MapTaxonomy) OrdinalFor(name string) (int16, bool) {
	ord, ok := t.byName[name]
	return ord, ok
}

// MapResolver is a TaxonomyResolver backed by a fixed taxonomyID->Taxonomy
// map, as loaded from a taxonomy bundle (see fudgetaxonomy) at context
// construction time.
type MapResolver struct {
	taxonomies map[int16]Taxonomy
}

// NewMapResolver builds a MapResolver from a complete set of taxonomies.
func NewMapResolver(taxonomies map[int16]Taxonomy) *MapResolver {
	cp := make(map[int16]Taxonomy, len(taxonomies))
	for id, tax := range taxonomies {
		cp[id] = tax
	}
	return &MapResolver{taxonomies: cp}
}

func (r *MapResolver) Resolve(taxonomyID int16) (Taxonomy, bool) {
	tax, ok := r.taxonomies[taxonomyID]
	return tax, ok
}

// NoTaxonomyResolver never resolves a taxonomy; writers using it always
// carry field names on the wire and readers never substitute them.
var NoTaxonomyResolver TaxonomyResolver = noTaxonomyResolver{}

type noTaxonomyResolver struct{}

func (noTaxonomyResolver) Resolve(int16) (Taxonomy, bool) { return nil, false }
