// Copyright (c) 2023 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

/*
Package strata loads a strongly typed configuration from three layered sources:
environment variables, an optional config file and the default value,
in order of precedence. Loading never fails because of missing configuration.

The configuration type is a struct annotated with `strata` tags.
Type level attributes are declared on a blank field:

	type Config struct {
		_ struct{} `strata:"prefix=APP,path_env=APP_CONFIG,default_path=app.toml"`

		Address string
		Port    int           `strata:"separator=__"`
		Debug   bool          `strata:"key=DEBUG_MODE"`
		Timeout time.Duration `strata:"name=request_timeout"`
		DB      Database      `strata:"nest"`
		Version string        `strata:"skip"`
	}

Each scalar field is looked up from the environment variable derived from its name,
e.g. APP_ADDRESS and APP__PORT above, and from the key of its snake case name
in the config file. Nest fields are resolved recursively with the attributes
of the nested type. Skip fields always come from the default value.

The config file is selected by the 'path', 'path_env' and 'default_path' attributes,
and its format is inferred from the extension: TOML, JSON, YAML, INI or JSON5.

Each source is represented as a [Layer], and layers are combined with [Layer.Merge].
[Loader.Explain] reports which source each field is loaded from.
*/
package strata
