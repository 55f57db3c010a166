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

import "reflect"

// Registry is an immutable TypeID -> *WireType lookup table, built once
// and frozen. A TypeDictionary embeds a Registry for primary types and
// layers secondary-type conversions on top of it.
type Registry struct {
	byID    map[TypeID]*WireType
	byClass map[reflect.Type]*WireType
}

// newBuiltinRegistry constructs the Registry covering every built-in
// type id. It is called once, at package init, and the result is never
// mutated afterwards: Context values share the same built-in registry
// and layer per-context secondary types on top via TypeDictionary.
func newBuiltinRegistry() *Registry {
	r := &Registry{
		byID:    make(map[TypeID]*WireType, 32),
		byClass: make(map[reflect.Type]*WireType, 32),
	}
	for _, t := range builtinWireTypes() {
		r.add(t)
	}
	return r
}

func (r *Registry) add(t *WireType) {
	if _, exists := r.byID[t.ID]; exists {
		panic("fudge: duplicate wire type id registered: " + t.Name)
	}
	r.byID[t.ID] = t
	if t.Class != nil {
		// First registration for a Go type wins. Secondary adapters are
		// never added here: TypeDictionary keeps them separately and
		// consults them only when this primary lookup misses.
		if _, exists := r.byClass[t.Class]; !exists {
			r.byClass[t.Class] = t
		}
	}
}

// ByID looks up a wire type by its on-wire id.
func (r *Registry) ByID(id TypeID) (*WireType, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// ByClass looks up the wire type whose natural Go representation is rt.
func (r *Registry) ByClass(rt reflect.Type) (*WireType, bool) {
	t, ok := r.byClass[rt]
	return t, ok
}

var builtinRegistry = newBuiltinRegistry()
