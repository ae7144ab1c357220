// Copyright (c) 2023 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package env provides immutable snapshots of environment variables.
//
// A snapshot is taken once and never observes later changes of the process
// environment, so loading configuration from it is deterministic and safe
// to run in parallel with code that calls os.Setenv.
//
// Snapshots can be taken from:
//   - the process environment with New,
//   - a plain map with FromMap,
//   - dotenv files with Read.
package env

import (
	"fmt"
	"os"
	"slices"
	"strings"

	cenv "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env is an immutable snapshot of environment variables.
//
// The zero Env is an empty snapshot.
type Env struct {
	_      [0]func() // Ensure it's incomparable.
	source string
	values map[string]string
}

// New takes a snapshot of the process environment with the given Option(s).
func New(opts ...Option) Env {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}

	values := cenv.ToMap(os.Environ())
	if option.prefix != "" {
		for name := range values {
			if !strings.HasPrefix(name, option.prefix) {
				delete(values, name)
			}
		}
	}

	source := "env"
	if option.prefix != "" {
		source += ":" + option.prefix
	}

	return Env{source: source, values: values}
}

// FromMap takes a snapshot of the given variables.
func FromMap(values map[string]string) Env {
	snapshot := make(map[string]string, len(values))
	for name, value := range values {
		snapshot[name] = value
	}

	return Env{source: "map", values: snapshot}
}

// Read takes a snapshot of the variables defined in the given dotenv files.
// Variables in later files override those in earlier ones.
// It reads `.env` in the current working directory if no path is given.
func Read(paths ...string) (Env, error) {
	values, err := godotenv.Read(paths...)
	if err != nil {
		return Env{}, fmt.Errorf("read dotenv: %w", err)
	}

	source := "dotenv"
	if len(paths) > 0 {
		source += ":" + strings.Join(paths, ",")
	}

	return Env{source: source, values: values}, nil
}

// Lookup returns the value of the variable with the given name
// and whether it is set. A variable set to an empty value is set.
func (e Env) Lookup(name string) (string, bool) {
	value, ok := e.values[name]

	return value, ok
}

// With returns a new snapshot holding the variables of both snapshots.
// Variables of other override those of e.
func (e Env) With(other Env) Env {
	values := make(map[string]string, len(e.values)+len(other.values))
	for name, value := range e.values {
		values[name] = value
	}
	for name, value := range other.values {
		values[name] = value
	}

	source := e.source
	if other.source != "" {
		if source != "" {
			source += "+"
		}
		source += other.source
	}

	return Env{source: source, values: values}
}

// Names returns the sorted names of all variables in the snapshot.
func (e Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func (e Env) String() string {
	if e.source == "" {
		return "env"
	}

	return e.source
}
