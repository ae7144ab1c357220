// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package tag parses struct tags into normalized attribute records.
//
// A tag is a comma separated list of entries. An entry is either a flag
// (`nest`, `skip`) or a `name=value` pair. The value is taken verbatim,
// including surrounding spaces.
package tag

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Scope tells Parse which entries are allowed.
type Scope int

const (
	// Field is the scope of a struct field.
	Field Scope = iota
	// Struct is the scope of the blank `_` field that annotates the type.
	Struct
)

// Attributes is the normalized record of a tag.
// A nil string pointer means the entry is not set.
type Attributes struct {
	Skip bool
	Nest bool

	Key       *string
	Prefix    *string
	Separator *string
	Name      *string

	Path        *string
	PathEnv     *string
	DefaultPath *string
}

// Parse parses the tag and reports all structural problems at once.
func Parse(tag string, scope Scope) (Attributes, error) {
	var (
		attributes Attributes
		errs       []error
	)

	for _, entry := range strings.Split(tag, ",") {
		name, value, hasValue := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if name == "" && !hasValue {
			continue
		}

		switch name {
		case "skip", "nest":
			if scope != Field {
				errs = append(errs, fmt.Errorf("unsupported attribute '%s' on type", name)) //nolint:err113

				continue
			}
			if hasValue {
				errs = append(errs, fmt.Errorf("attribute '%s' does not take a value", name)) //nolint:err113

				continue
			}
			if name == "skip" {
				attributes.Skip = true
			} else {
				attributes.Nest = true
			}
		default:
			target := attributes.target(name, scope)
			if target == nil {
				errs = append(errs, fmt.Errorf("unsupported attribute '%s'", name)) //nolint:err113

				continue
			}
			if !hasValue {
				errs = append(errs, fmt.Errorf("expected a string for '%s'", name)) //nolint:err113

				continue
			}
			*target = &value
		}
	}

	if attributes.Path != nil && attributes.DefaultPath != nil {
		errs = append(errs, errPathWithDefaultPath)
	}
	if attributes.Skip && attributes.Nest {
		errs = append(errs, errSkipWithNest)
	}

	return attributes, errors.Join(errs...)
}

func (a *Attributes) target(name string, scope Scope) **string {
	switch name {
	case "prefix":
		return &a.Prefix
	case "separator":
		return &a.Separator
	case "name":
		return &a.Name
	}

	if scope == Field {
		if name == "key" {
			return &a.Key
		}

		return nil
	}

	switch name {
	case "path":
		return &a.Path
	case "path_env":
		return &a.PathEnv
	case "default_path":
		return &a.DefaultPath
	default:
		return nil
	}
}

// SnakeCase converts a Go identifier into its snake_case form,
// keeping acronyms together, e.g. `DBHost` becomes `db_host`.
func SnakeCase(name string) string {
	runes := []rune(name)
	builder := strings.Builder{}
	builder.Grow(len(name) + 4) //nolint:mnd

	for i, r := range runes {
		if !unicode.IsUpper(r) {
			builder.WriteRune(r)

			continue
		}

		if i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				builder.WriteRune('_')
			}
		}
		builder.WriteRune(unicode.ToLower(r))
	}

	return builder.String()
}

var (
	errPathWithDefaultPath = errors.New("'path' and 'default_path' attributes cannot be used alongside each other")
	errSkipWithNest        = errors.New("'skip' and 'nest' attributes cannot be used alongside each other")
)
