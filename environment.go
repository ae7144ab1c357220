// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"log/slog"

	"github.com/nil-go/strata/internal/convert"
)

// fromEnvironment looks up the environment variable of every scalar field.
// A variable that is not set, or whose value cannot be parsed into the field type,
// leaves the field absent.
func fromEnvironment(schema *Schema, environment Environment, converter *convert.Converter, logger *slog.Logger) *Layer {
	layer := Empty(schema)
	for i, field := range schema.fields {
		switch {
		case field.Skip:
		case field.Nest:
			layer.slots[i].nested = fromEnvironment(field.nested, environment, converter, logger)
		default:
			text, ok := environment.Lookup(field.envKey)
			if !ok {
				continue
			}
			value, err := converter.Parse(text, field.Type)
			if err != nil {
				logger.Debug(
					"Ignored environment variable since its value cannot be parsed.",
					"name", field.envKey,
					"type", field.Type.String(),
					"error", err,
				)

				continue
			}
			layer.set(i, value)
		}
	}

	return layer
}
