// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/nil-go/strata/internal/maps"
)

// fromValues decodes the values loaded from a config file into a Layer.
// Keys match the file key of fields exactly first, then case-insensitively.
// Skip fields are never read from the file.
//
// It fails if any value cannot be decoded into its field type,
// or if the value of a nest field is not a table.
func fromValues(schema *Schema, values map[string]any, decodeHook mapstructure.DecodeHookFunc, path string) (*Layer, error) {
	layer := Empty(schema)
	var errs []error
	for i, field := range schema.fields {
		if field.Skip {
			continue
		}

		key := field.FileKey()
		value, ok := maps.Lookup(values, key)
		if !ok {
			continue
		}

		if field.Nest {
			table, ok := value.(map[string]any)
			if !ok {
				errs = append(errs, fmt.Errorf("'%s%s': %w, got %T", path, key, errNotTable, value))

				continue
			}
			nested, err := fromValues(field.nested, table, decodeHook, path+key+".")
			if err != nil {
				errs = append(errs, err)

				continue
			}
			layer.slots[i].nested = nested

			continue
		}

		decoded, err := decode(value, field.Type, decodeHook)
		if err != nil {
			errs = append(errs, fmt.Errorf("'%s%s': %w", path, key, err))

			continue
		}
		layer.set(i, decoded)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return layer, nil
}

func decode(value any, typ reflect.Type, decodeHook mapstructure.DecodeHookFunc) (any, error) {
	target := reflect.New(typ)
	decoder, err := mapstructure.NewDecoder(
		&mapstructure.DecoderConfig{
			Result:           target.Interface(),
			WeaklyTypedInput: true,
			DecodeHook:       decodeHook,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("new decoder: %w", err)
	}
	if err := decoder.Decode(value); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return target.Elem().Interface(), nil
}

var errNotTable = errors.New("expected a table")
