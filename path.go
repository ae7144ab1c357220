// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

// resolvePath selects the config file from the type attributes.
//
// The file named by $path_env wins if it exists.
// Otherwise 'path' must exist, while 'default_path' is used only if it exists.
// The returned path is empty if no file is selected.
// Only an unresolvable 'path' is an error.
func resolvePath(attributes StructAttributes, environment Environment, exists func(string) bool) (string, error) {
	var envValue string
	if attributes.PathEnv != nil {
		if value, ok := environment.Lookup(*attributes.PathEnv); ok && value != "" {
			if exists(value) {
				return value, nil
			}
			envValue = value
		}
	}

	switch {
	case attributes.Path != nil:
		if exists(*attributes.Path) {
			return *attributes.Path, nil
		}
		err := &UnresolvablePathError{Path: *attributes.Path, EnvValue: envValue}
		if attributes.PathEnv != nil {
			err.PathEnv = *attributes.PathEnv
		}

		return "", err
	case attributes.DefaultPath != nil:
		if exists(*attributes.DefaultPath) {
			return *attributes.DefaultPath, nil
		}

		return "", nil
	default:
		return "", nil
	}
}
