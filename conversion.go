// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"reflect"
)

// fromDomain returns the Layer in which every field, skip fields included,
// is present with a copy of the value of the given struct value.
func fromDomain(schema *Schema, value reflect.Value) *Layer {
	layer := Empty(schema)
	for i, field := range schema.fields {
		fieldValue := value.Field(field.index)
		if field.Nest {
			layer.slots[i].nested = fromDomain(field.nested, fieldValue)

			continue
		}
		layer.set(i, clone(fieldValue).Interface())
	}

	return layer
}

// toDomain writes a copy of the layer into the given addressable struct value.
// An absent field is set to the zero value of its type.
// Unexported fields keep their current value.
func toDomain(layer *Layer, value reflect.Value) {
	for i, field := range layer.schema.fields {
		fieldValue := value.Field(field.index)
		s := layer.slots[i]
		switch {
		case field.Nest:
			toDomain(s.nested, fieldValue)
		case s.present && s.value != nil:
			fieldValue.Set(clone(reflect.ValueOf(s.value)))
		default:
			fieldValue.SetZero()
		}
	}
}

func cloneAny(value any) any {
	if value == nil {
		return nil
	}

	return clone(reflect.ValueOf(value)).Interface()
}

// clone returns a deep copy of the slices, maps, arrays and pointers in value,
// so a layer never shares memory with the values it is built from or converted to.
// Structs reached through a pointer or an element are copied shallowly.
func clone(value reflect.Value) reflect.Value {
	switch value.Kind() {
	case reflect.Slice:
		if value.IsNil() {
			return value
		}
		cloned := reflect.MakeSlice(value.Type(), value.Len(), value.Len())
		if !holdsReference(value.Type().Elem()) {
			reflect.Copy(cloned, value)

			return cloned
		}
		for i := range value.Len() {
			cloned.Index(i).Set(clone(value.Index(i)))
		}

		return cloned
	case reflect.Array:
		cloned := reflect.New(value.Type()).Elem()
		for i := range value.Len() {
			cloned.Index(i).Set(clone(value.Index(i)))
		}

		return cloned
	case reflect.Map:
		if value.IsNil() {
			return value
		}
		cloned := reflect.MakeMapWithSize(value.Type(), value.Len())
		for iter := value.MapRange(); iter.Next(); {
			cloned.SetMapIndex(iter.Key(), clone(iter.Value()))
		}

		return cloned
	case reflect.Pointer:
		if value.IsNil() {
			return value
		}
		cloned := reflect.New(value.Type().Elem())
		cloned.Elem().Set(clone(value.Elem()))

		return cloned
	default:
		return value
	}
}

func holdsReference(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Pointer, reflect.Interface:
		return true
	default:
		return false
	}
}
