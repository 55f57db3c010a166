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

// secondaryAdapter is a pair of pure conversion functions binding a
// secondary Go type to one of the registry's primary wire types (§4.3,
// §9 "avoid open inheritance chains"). toPrimary converts an
// application value to the primary type's representation; fromPrimary
// converts back.
type secondaryAdapter struct {
	secondary reflect.Type
	primary   *WireType
	toPrimary func(any) (any, error)
	fromPrimary func(any) (any, error)
}

// TypeDictionary maps a value's runtime Go type to a wire type, and
// converts field values between a requested Go type and whatever is
// actually stored. It wraps the built-in Registry and layers
// application-registered secondary types on top without mutating it.
type TypeDictionary struct {
	registry   *Registry
	secondary  map[reflect.Type]secondaryAdapter
}

// NewTypeDictionary builds a TypeDictionary over the built-in registry
// with no secondary types registered.
func NewTypeDictionary() *TypeDictionary {
	return &TypeDictionary{
		registry:  builtinRegistry,
		secondary: make(map[reflect.Type]secondaryAdapter),
	}
}

// NewDefaultTypeDictionary builds a TypeDictionary with this package's
// built-in secondary types (currently time.Time <-> DateTime) already
// registered; see secondary.go.
func NewDefaultTypeDictionary() *TypeDictionary {
	d := NewTypeDictionary()
	registerBuiltinSecondaryTypes(d)
	return d
}

// RegisterSecondaryType binds a Go type to a primary wire type via a
// pair of adapter functions. Registering the same Go type again
// replaces the previous binding: "a class resolves to the most recently
// registered matching type" (§4.3).
func (d *TypeDictionary) RegisterSecondaryType(secondary reflect.Type, primary *WireType, toPrimary, fromPrimary func(any) (any, error)) {
	d.secondary[secondary] = secondaryAdapter{
		secondary: secondary, primary: primary, toPrimary: toPrimary, fromPrimary: fromPrimary,
	}
}

// WireTypeFor resolves the wire type that should encode a value of rt's
// runtime type: a direct primary match if one is registered, otherwise
// the primary type a registered secondary adapter targets. Returns
// ok=false for an unregistered class, per §4.3's "lookups on
// unregistered classes return null" policy.
func (d *TypeDictionary) WireTypeFor(rt reflect.Type) (*WireType, bool) {
	if wt, ok := d.registry.ByClass(rt); ok {
		return wt, true
	}
	if adapter, ok := d.secondary[rt]; ok {
		return adapter.primary, true
	}
	return nil, false
}

// ByID resolves a wire type by its on-wire id.
func (d *TypeDictionary) ByID(id TypeID) (*WireType, bool) {
	return d.registry.ByID(id)
}

// EncodeValue converts an application value to the representation its
// resolved wire type's Read/Write operate on: the identity for a
// primary value, or the secondary adapter's toPrimary result otherwise.
func (d *TypeDictionary) EncodeValue(v any) (*WireType, any, error) {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return nil, nil, unknownType("encodeValue", "nil value has no wire type")
	}
	if wt, ok := d.registry.ByClass(rt); ok {
		return wt, v, nil
	}
	if adapter, ok := d.secondary[rt]; ok {
		primaryValue, err := adapter.toPrimary(v)
		if err != nil {
			return nil, nil, unknownType("encodeValue", "converting %T to primary type: %v", v, err)
		}
		return adapter.primary, primaryValue, nil
	}
	return nil, nil, unknownType("encodeValue", "no wire type registered for %T", v)
}

// CanConvert reports whether a decoded value can be converted to target,
// either because it already has that Go type, or via a registered
// secondary adapter's fromPrimary function for target.
func (d *TypeDictionary) CanConvert(target reflect.Type, value any) bool {
	_, err := d.Convert(target, value)
	return err == nil
}

// Convert adapts value (as decoded off the wire, so typically a primary
// representation) to target's Go type. It supports the direct identity
// path and the primary->secondary path described in §4.3; it does not
// support secondary->secondary conversion (transitive only through a
// shared primary).
func (d *TypeDictionary) Convert(target reflect.Type, value any) (any, error) {
	rt := reflect.TypeOf(value)
	if rt == target {
		return value, nil
	}
	if adapter, ok := d.secondary[target]; ok {
		converted, err := adapter.fromPrimary(value)
		if err != nil {
			return nil, newErr(KindConversionFailure, "convert", err)
		}
		return converted, nil
	}
	return nil, newErr(KindConversionFailure, "convert", errConvNoPath(rt, target))
}

func errConvNoPath(from, to reflect.Type) error {
	return &conversionPathError{from: from, to: to}
}

type conversionPathError struct {
	from, to reflect.Type
}

func (e *conversionPathError) Error() string {
	return "no conversion path from " + e.from.String() + " to " + e.to.String()
}
