// Copyright (c) 2024 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"errors"
	"strings"

	"github.com/nil-go/strata/internal/credential"
)

// Explain provides information about how Loader resolves each field:
// the source of the loaded value and the values offered by lower precedence sources.
// It blurs sensitive information.
func (l *Loader[T]) Explain() string {
	l.nocopy.Check()

	environment := l.env()
	explanation := &strings.Builder{}

	layers := []sourceLayer{{layer: fromEnvironment(l.schema, environment, l.converter, l.logger), env: true}}
	fileLayer, path, err := l.fileLayer(environment)
	switch {
	case err == nil:
		layers = append(layers, sourceLayer{layer: fileLayer, name: "file:" + path})
	case errors.Is(err, ErrNoFilePath):
		explanation.WriteString("No config file is selected.\n\n")
	default:
		explanation.WriteString("Config file is ignored: ")
		explanation.WriteString(err.Error())
		explanation.WriteString("\n\n")
	}
	layers = append(layers, sourceLayer{layer: l.defaults, name: "default"})

	explain(explanation, l.schema, layers, "")

	return explanation.String()
}

type sourceLayer struct {
	layer *Layer
	name  string
	env   bool
}

func explain(explanation *strings.Builder, schema *Schema, layers []sourceLayer, path string) {
	for i, field := range schema.fields {
		key := path + field.FileKey()
		if field.Nest {
			nested := make([]sourceLayer, len(layers))
			for j, source := range layers {
				nested[j] = source
				nested[j].layer = source.layer.slots[i].nested
			}
			explain(explanation, field.nested, nested, key+".")

			continue
		}

		type sourceValue struct {
			source string
			value  any
		}
		var values []sourceValue
		for _, source := range layers {
			if s := source.layer.slots[i]; s.present {
				name := source.name
				if source.env {
					name = "env:" + field.envKey
				}
				values = append(values, sourceValue{source: name, value: s.value})
			}
		}

		explanation.WriteString(key)
		if len(values) == 0 {
			explanation.WriteString(" has no configuration.\n\n")

			continue
		}
		explanation.WriteString(" has value[")
		explanation.WriteString(credential.Blur(key, values[0].value))
		explanation.WriteString("] that is loaded by loader[")
		explanation.WriteString(values[0].source)
		explanation.WriteString("].\n")
		if len(values) > 1 {
			explanation.WriteString("Here are other value(loader)s:\n")
			for _, value := range values[1:] {
				explanation.WriteString("  - ")
				explanation.WriteString(credential.Blur(key, value.value))
				explanation.WriteString("(")
				explanation.WriteString(value.source)
				explanation.WriteString(")\n")
			}
		}
		explanation.WriteString("\n")
	}
}
