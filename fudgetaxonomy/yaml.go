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

// Package fudgetaxonomy loads Fudge taxonomy bundles from YAML files: a
// simple, auditable persistence format for the name<->ordinal bindings a
// fudge.Context resolves by taxonomy id. Taxonomy persistence formats are
// explicitly external to the wire codec itself; this package is one
// concrete choice among many a caller could plug into
// fudge.NewContextWithTaxonomies.
package fudgetaxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fudgemsg/fudge-go/fudge"
)

// Bundle is the on-disk shape of a taxonomy YAML file: one entry per
// taxonomy id, each a flat name -> ordinal map.
//
//	taxonomies:
//	  3:
//	    price: 1
//	    quantity: 2
//	  7:
//	    x: 1
type Bundle struct {
	Taxonomies map[int16]map[string]int16 `yaml:"taxonomies"`
}

// LoadFile reads path and builds a taxonomyID -> fudge.Taxonomy map
// suitable for fudge.NewContextWithTaxonomies. It is the only loader in
// this package: there are no fallbacks or environment-variable
// overrides, so a caller's choice of file is the sole source of truth.
func LoadFile(path string) (map[int16]fudge.Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fudgetaxonomy: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a taxonomyID -> fudge.Taxonomy map from YAML bundle
// bytes. A taxonomy whose YAML binds two names to the same ordinal is a
// malformed file, reported as an error rather than the panic
// fudge.NewMapTaxonomy raises for a programmatically-built map.
func Parse(data []byte) (out map[int16]fudge.Taxonomy, err error) {
	var bundle Bundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("fudgetaxonomy: parsing bundle: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("fudgetaxonomy: %v", r)
		}
	}()
	built := make(map[int16]fudge.Taxonomy, len(bundle.Taxonomies))
	for id, nameToOrdinal := range bundle.Taxonomies {
		built[id] = fudge.NewMapTaxonomy(nameToOrdinal)
	}
	return built, nil
}
