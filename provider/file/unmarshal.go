// Copyright (c) 2024 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package file

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/titanous/json5"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/nil-go/strata/internal/maps"
)

// Unmarshaler returns the unmarshal function for the extension of the given path,
// or nil if the extension is not supported.
// A path without extension is parsed as TOML.
func Unmarshaler(path string) func([]byte, any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".toml":
		return toml.Unmarshal
	case ".json":
		return json.Unmarshal
	case ".yaml", ".yml":
		return yaml.Unmarshal
	case ".json5":
		return json5.Unmarshal
	case ".ini":
		return unmarshalINI
	default:
		return nil
	}
}

// unmarshalINI parses INI content into a *map[string]any.
// Keys of the default section are top level keys,
// and a section named "a.b" becomes the nested map at a -> b.
func unmarshalINI(bytes []byte, out any) error {
	file, err := ini.Load(bytes)
	if err != nil {
		return err
	}

	values := make(map[string]any)
	for _, section := range file.Sections() {
		var path []string
		if name := section.Name(); name != ini.DefaultSection {
			path = strings.Split(name, ".")
		}
		for key, value := range section.KeysHash() {
			maps.Insert(values, append(path[:len(path):len(path)], key), value)
		}
	}

	switch o := out.(type) {
	case *map[string]any:
		*o = values
	default:
		// Fall back to JSON for other targets.
		bytes, err := json.Marshal(values)
		if err != nil {
			return err
		}

		return json.Unmarshal(bytes, out)
	}

	return nil
}
