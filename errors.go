// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrBuild is matched by every *BuildError.
	ErrBuild = errors.New("invalid configuration type")
	// ErrUnresolvablePath is matched by every *UnresolvablePathError.
	ErrUnresolvablePath = errors.New("unresolvable config file path")
	// ErrNoFilePath is returned by Loader.FileLayer when no file is selected.
	ErrNoFilePath = errors.New("no config file path")
)

// BuildError reports structural problems of a configuration type,
// e.g. an unknown tag attribute or both 'path' and 'default_path' on one type.
// It is returned when the schema of the type is built, never while loading.
type BuildError struct {
	Type reflect.Type
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("invalid configuration type %s: %v", e.Type, e.Err)
}

func (e *BuildError) Unwrap() []error {
	return []error{ErrBuild, e.Err}
}

// UnresolvablePathError reports that the mandatory config file does not exist.
//
// PathEnv and EnvValue are set if the type also declares 'path_env',
// in which case neither candidate exists.
type UnresolvablePathError struct {
	Path     string
	PathEnv  string
	EnvValue string
}

func (e *UnresolvablePathError) Error() string {
	if e.PathEnv == "" {
		return fmt.Sprintf("config file '%s' does not exist", e.Path)
	}
	if e.EnvValue == "" {
		return fmt.Sprintf("config file '%s' does not exist and $%s is not set", e.Path, e.PathEnv)
	}

	return fmt.Sprintf("neither config file '%s' from $%s nor '%s' exists", e.EnvValue, e.PathEnv, e.Path)
}

func (e *UnresolvablePathError) Is(target error) bool {
	return target == ErrUnresolvablePath //nolint:errorlint,err113
}

// FileIOError reports that the resolved config file cannot be read.
type FileIOError struct {
	Path string
	Err  error
}

func (e *FileIOError) Error() string {
	return fmt.Sprintf("read config file '%s': %v", e.Path, e.Err)
}

func (e *FileIOError) Unwrap() error {
	return e.Err
}

// FileFormatError reports that the resolved config file cannot be decoded.
type FileFormatError struct {
	Path string
	Err  error
}

func (e *FileFormatError) Error() string {
	return fmt.Sprintf("decode config file '%s': %v", e.Path, e.Err)
}

func (e *FileFormatError) Unwrap() error {
	return e.Err
}
