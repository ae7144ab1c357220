// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"strings"
)

// Layer holds what one source knows about a configuration type.
// Every scalar field is either present with a value or absent,
// and every nest field holds the Layer of the nested type.
//
// A Layer is immutable. Merge returns a new Layer.
// Layers are created by Empty and the Loader methods. The zero Layer
// belongs to no schema: it is empty and cannot be merged or converted.
type Layer struct {
	schema *Schema
	slots  []slot
}

type slot struct {
	value   any
	present bool
	nested  *Layer
}

// Empty returns the Layer of the schema in which every field is absent.
func Empty(schema *Schema) *Layer {
	layer := &Layer{
		schema: schema,
		slots:  make([]slot, len(schema.fields)),
	}
	for i, field := range schema.fields {
		if field.Nest {
			layer.slots[i].nested = Empty(field.nested)
		}
	}

	return layer
}

// Merge combines the layer with the other layer of the same schema.
// For each field, the value of the layer wins if present,
// otherwise the value of the other layer is used.
// Nest fields are merged recursively.
//
// It panics if the layers have different schemas, or if either has no schema.
func (l *Layer) Merge(other *Layer) *Layer {
	if other == nil {
		return l
	}
	if l == nil {
		return other
	}
	if l.schema == nil || other.schema == nil {
		panic(errNoSchema)
	}
	if l.schema != other.schema {
		panic("cannot merge layers of " + l.schema.typ.String() + " and " + other.schema.typ.String())
	}

	merged := &Layer{
		schema: l.schema,
		slots:  make([]slot, len(l.slots)),
	}
	for i, field := range l.schema.fields {
		switch {
		case field.Nest:
			merged.slots[i].nested = l.slots[i].nested.Merge(other.slots[i].nested)
		case l.slots[i].present:
			merged.slots[i] = l.slots[i]
		default:
			merged.slots[i] = other.slots[i]
		}
	}

	return merged
}

// Schema returns the schema of the layer.
func (l *Layer) Schema() *Schema {
	return l.schema
}

// IsEmpty reports whether no field is present, recursively.
func (l *Layer) IsEmpty() bool {
	if l == nil || l.schema == nil {
		return true
	}

	for i, field := range l.schema.fields {
		if field.Nest {
			if !l.slots[i].nested.IsEmpty() {
				return false
			}

			continue
		}
		if l.slots[i].present {
			return false
		}
	}

	return true
}

// Get returns the value of the field at the given path and reports whether it is present.
// The path is the file keys joined by `.`, e.g. `db.host`.
// Each key also matches the Go field name case-insensitively.
// A nest field returns its *Layer, and a scalar field returns a copy of its value.
func (l *Layer) Get(path string) (any, bool) {
	if l == nil || l.schema == nil {
		return nil, false
	}

	keys := strings.Split(path, ".")
	layer := l
	for {
		i := layer.indexOf(keys[0])
		if i < 0 {
			return nil, false
		}
		s := layer.slots[i]
		if len(keys) == 1 {
			if s.nested != nil {
				return s.nested, true
			}

			return cloneAny(s.value), s.present
		}
		if s.nested == nil {
			return nil, false
		}
		layer, keys = s.nested, keys[1:]
	}
}

func (l *Layer) indexOf(key string) int {
	for i, field := range l.schema.fields {
		if field.FileKey() == key {
			return i
		}
	}
	for i, field := range l.schema.fields {
		if strings.EqualFold(field.Name, key) {
			return i
		}
	}

	return -1
}

// Values returns the present values as a nested map keyed by file keys.
// Nest fields without any present value are omitted.
// The values are copies, so changing them does not change the layer.
func (l *Layer) Values() map[string]any {
	values := make(map[string]any)
	if l == nil || l.schema == nil {
		return values
	}
	for i, field := range l.schema.fields {
		s := l.slots[i]
		switch {
		case field.Nest:
			if nested := s.nested.Values(); len(nested) > 0 {
				values[field.FileKey()] = nested
			}
		case s.present:
			values[field.FileKey()] = cloneAny(s.value)
		}
	}

	return values
}

func (l *Layer) set(index int, value any) {
	l.slots[index].value = value
	l.slots[index].present = true
}

const errNoSchema = "cannot use a layer without schema, create it with strata.Empty or a Loader"
