// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/nil-go/strata/internal/convert"
	"github.com/nil-go/strata/internal/tag"
)

// Schema is the validated description of a configuration type:
// its type level attributes and one FieldSpec per exported field.
//
// A Schema is built once per type and tag name, and it is immutable.
// To get the Schema of a type, call [Register] or [SchemaOf].
type Schema struct {
	typ        reflect.Type
	attributes StructAttributes
	fields     []FieldSpec
}

// StructAttributes is the normalized record of the type level attributes,
// declared on a blank field, e.g. _ struct{} with the tag strata:"prefix=APP,default_path=app.toml".
// A nil pointer means the attribute is not set.
type StructAttributes struct {
	Prefix    *string
	Separator *string
	Rename    *string

	Path        *string
	PathEnv     *string
	DefaultPath *string
}

// FieldSpec describes how one field of a configuration type is resolved.
// A nil pointer means the attribute is not set.
type FieldSpec struct {
	Name string
	Type reflect.Type

	Skip bool
	Nest bool

	Key       *string
	Prefix    *string
	Separator *string
	Rename    *string

	index  int
	envKey string
	nested *Schema
}

// Register builds the Schema of the configuration type T
// with the tag name from the given Option(s).
//
// It is the place to fail fast on an invalid configuration type,
// e.g. from a test or an init function.
func Register[T any](opts ...Option) (*Schema, error) {
	option := apply(opts)

	return SchemaOf(reflect.TypeFor[T](), option.tagName)
}

// SchemaOf returns the Schema of the given struct type
// with attributes read from the given tag name.
// The result, including a *BuildError, is cached for the process lifetime.
func SchemaOf(typ reflect.Type, tagName string) (*Schema, error) {
	if tagName == "" {
		tagName = defaultTagName
	}
	key := registryKey{typ: typ, tagName: tagName}
	if entry, ok := registry.Load(key); ok {
		return entry.(registryEntry).schema, entry.(registryEntry).err //nolint:forcetypeassert
	}

	schema, err := buildSchema(typ, tagName)
	entry, _ := registry.LoadOrStore(key, registryEntry{schema: schema, err: err})

	return entry.(registryEntry).schema, entry.(registryEntry).err //nolint:forcetypeassert
}

func buildSchema(typ reflect.Type, tagName string) (*Schema, error) {
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, &BuildError{Type: typ, Err: errNotStruct}
	}

	schema := &Schema{typ: typ}
	var errs []error

	// Type level attributes come first since they are the fallback of fields.
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.Name != "_" {
			continue
		}
		attributes, err := tag.Parse(field.Tag.Get(tagName), tag.Struct)
		if err != nil {
			errs = append(errs, fmt.Errorf("type attributes: %w", err))
		}
		schema.attributes = StructAttributes{
			Prefix:      attributes.Prefix,
			Separator:   attributes.Separator,
			Rename:      attributes.Name,
			Path:        attributes.Path,
			PathEnv:     attributes.PathEnv,
			DefaultPath: attributes.DefaultPath,
		}
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.Name == "_" || !field.IsExported() {
			continue
		}

		spec, err := schema.buildField(field, i, tagName)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", field.Name, err))

			continue
		}
		schema.fields = append(schema.fields, spec)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, &BuildError{Type: typ, Err: err}
	}

	return schema, nil
}

func (s *Schema) buildField(field reflect.StructField, index int, tagName string) (FieldSpec, error) {
	attributes, err := tag.Parse(field.Tag.Get(tagName), tag.Field)
	if err != nil {
		return FieldSpec{}, err
	}

	spec := FieldSpec{
		Name:      field.Name,
		Type:      field.Type,
		Skip:      attributes.Skip,
		Nest:      attributes.Nest,
		Key:       attributes.Key,
		Prefix:    attributes.Prefix,
		Separator: attributes.Separator,
		Rename:    attributes.Name,
		index:     index,
	}

	switch {
	case spec.Skip:
	case spec.Nest:
		// A struct can not contain itself by value, so the recursion always ends.
		if field.Type.Kind() != reflect.Struct {
			return FieldSpec{}, fmt.Errorf("%w, got %s", errNestNotStruct, field.Type)
		}
		nested, err := SchemaOf(field.Type, tagName)
		if err != nil {
			var buildErr *BuildError
			if errors.As(err, &buildErr) {
				err = buildErr.Err
			}

			return FieldSpec{}, fmt.Errorf("nested type %s: %w", field.Type, err)
		}
		spec.nested = nested
	default:
		if !parser.Parsable(field.Type) {
			return FieldSpec{}, fmt.Errorf("%w: %s", errNotParsable, field.Type)
		}
		spec.envKey = envKey(spec, s.attributes)
	}

	return spec, nil
}

// envKey derives the environment variable name of a scalar field.
// An explicit key is used verbatim. Otherwise the field prefix, or the type
// prefix, is joined with the uppercased field name by the field separator,
// or the type separator, or `_`. Without prefix it is the uppercased field name.
func envKey(field FieldSpec, attributes StructAttributes) string {
	if field.Key != nil {
		return *field.Key
	}

	name := strings.ToUpper(tag.SnakeCase(field.Name))
	prefix := first(field.Prefix, attributes.Prefix, "")
	if prefix == "" {
		return name
	}

	return strings.ToUpper(prefix) + first(field.Separator, attributes.Separator, "_") + name
}

func first(field, typ *string, fallback string) string {
	switch {
	case field != nil:
		return *field
	case typ != nil:
		return *typ
	default:
		return fallback
	}
}

// Type returns the configuration type.
func (s *Schema) Type() reflect.Type {
	return s.typ
}

// Name returns the display name of the configuration type,
// which is the 'name' attribute of the type, or the type name.
func (s *Schema) Name() string {
	if s.attributes.Rename != nil {
		return *s.attributes.Rename
	}

	return s.typ.Name()
}

// Attributes returns the type level attributes.
func (s *Schema) Attributes() StructAttributes {
	return s.attributes
}

// Fields returns the specs of the exported fields in declaration order.
func (s *Schema) Fields() []FieldSpec {
	fields := make([]FieldSpec, len(s.fields))
	copy(fields, s.fields)

	return fields
}

// EnvKey returns the environment variable name of the field.
// It is empty for a nest or skip field, which is not looked up directly.
func (f FieldSpec) EnvKey() string {
	return f.envKey
}

// FileKey returns the key of the field in the config file,
// which is the 'name' attribute, or the snake case of the field name.
func (f FieldSpec) FileKey() string {
	if f.Rename != nil {
		return *f.Rename
	}

	return tag.SnakeCase(f.Name)
}

// Nested returns the Schema of a nest field, or nil for other fields.
func (f FieldSpec) Nested() *Schema {
	return f.nested
}

type (
	registryKey struct {
		typ     reflect.Type
		tagName string
	}
	registryEntry struct {
		schema *Schema
		err    error
	}
)

var (
	registry sync.Map //nolint:gochecknoglobals
	// parser decides which field types are scalars, i.e. parsable from text.
	parser = convert.New() //nolint:gochecknoglobals

	errNotStruct     = errors.New("configuration type must be a struct")
	errNestNotStruct = errors.New("'nest' requires a struct type")
	errNotParsable   = errors.New("type cannot be parsed from text, mark the field with 'nest' or 'skip'")
)
