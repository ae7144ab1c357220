// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/nil-go/strata/internal"
	"github.com/nil-go/strata/internal/convert"
	"github.com/nil-go/strata/provider/env"
	"github.com/nil-go/strata/provider/file"
)

// Loader loads the configuration type T from the environment,
// the config file and the default value, in order of precedence.
//
// A Loader is safe for concurrent use.
// To create a new Loader, call [New].
type Loader[T any] struct {
	nocopy internal.NoCopy[Loader[T]]

	schema   *Schema
	defaults *Layer

	// Options.
	logger       *slog.Logger
	fileLogger   *slog.Logger
	environment  Environment
	fs           fs.FS
	decodeHook   mapstructure.DecodeHookFunc
	defaultValue T
	converter    *convert.Converter
}

// New creates a Loader for T with the given Option(s).
//
// It fails with a *BuildError if T is not a valid configuration type,
// or if the default value provided by WithDefault is not a T.
func New[T any](opts ...Option) (*Loader[T], error) {
	option := apply(opts)

	schema, err := SchemaOf(reflect.TypeFor[T](), option.tagName)
	if err != nil {
		return nil, err
	}

	loader := &Loader[T]{
		schema:      schema,
		logger:      option.logger.WithGroup("strata"),
		fileLogger:  option.logger,
		environment: option.environment,
		fs:          option.fs,
		decodeHook:  option.decodeHook,
		converter:   convert.New(convert.WithSeparator(option.listSeparator)),
	}
	switch value := option.defaultValue.(type) {
	case nil:
		loader.defaultValue = defaultOf[T]()
	case T:
		loader.defaultValue = value
	default:
		return nil, &BuildError{
			Type: schema.typ,
			Err:  fmt.Errorf("%w: got %T", errDefaultType, option.defaultValue),
		}
	}
	loader.defaults = fromDomain(schema, reflect.ValueOf(&loader.defaultValue).Elem())

	return loader, nil
}

// defaultOf returns the result of the Default method of T,
// with either value or pointer receiver, or the zero value of T.
func defaultOf[T any]() T {
	var value T
	switch d := any(value).(type) {
	case interface{ Default() T }:
		return d.Default()
	default:
		if d, ok := any(&value).(interface{ Default() T }); ok {
			return d.Default()
		}

		return value
	}
}

// Load loads the configuration.
//
// The config file overrides the default value, and the environment overrides both.
// Any failure of reading or decoding the config file is logged
// and the load proceeds without the file.
// It only fails with an *UnresolvablePathError when the mandatory 'path' does not exist.
func (l *Loader[T]) Load() (T, error) {
	l.nocopy.Check()

	environment := l.env()
	fileLayer, _, err := l.fileLayer(environment)
	switch {
	case errors.Is(err, ErrUnresolvablePath):
		var zero T

		return zero, err
	case errors.Is(err, ErrNoFilePath):
		fileLayer = l.defaults
	case err != nil:
		l.logger.Warn("Config file is ignored since it cannot be loaded.", "error", err)
		fileLayer = l.defaults
	}

	merged := fileLayer.Merge(l.defaults)
	final := fromEnvironment(l.schema, environment, l.converter, l.logger).Merge(merged)

	return l.convert(final), nil
}

// FileLayer resolves and loads the config file, and returns the decoded Layer
// without falling back. It is for diagnosing why a file does not take effect.
//
// It returns ErrNoFilePath if no file is selected, *UnresolvablePathError
// if the mandatory 'path' does not exist, *FileIOError if the file cannot be read,
// and *FileFormatError if the file cannot be decoded.
func (l *Loader[T]) FileLayer() (*Layer, error) {
	l.nocopy.Check()

	layer, _, err := l.fileLayer(l.env())

	return layer, err
}

func (l *Loader[T]) fileLayer(environment Environment) (*Layer, string, error) {
	path, err := resolvePath(l.schema.attributes, environment, func(path string) bool {
		return file.Exists(l.fs, path)
	})
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return nil, "", ErrNoFilePath
	}
	l.logger.Debug("Config file has been resolved.", "type", l.schema.Name(), "file", path)

	values, err := file.New(path, file.WithFS(l.fs), file.WithLogger(l.fileLogger)).Load()
	switch {
	case errors.Is(err, file.ErrFormat):
		return nil, path, &FileFormatError{Path: path, Err: err}
	case err != nil:
		return nil, path, &FileIOError{Path: path, Err: err}
	}

	layer, err := fromValues(l.schema, values, l.decodeHook, "")
	if err != nil {
		return nil, path, &FileFormatError{Path: path, Err: err}
	}

	return layer, path, nil
}

// DefaultLayer returns the Layer of the default value, in which every field is present.
func (l *Loader[T]) DefaultLayer() *Layer {
	return l.defaults
}

// EnvLayer returns the Layer looked up from the environment.
func (l *Loader[T]) EnvLayer() *Layer {
	l.nocopy.Check()

	return fromEnvironment(l.schema, l.env(), l.converter, l.logger)
}

// LayerOf returns the Layer in which every field is present with the value of the given T.
func (l *Loader[T]) LayerOf(value T) *Layer {
	return fromDomain(l.schema, reflect.ValueOf(&value).Elem())
}

// Convert converts the layer into T.
// The unexported fields and the absent fields take the value from the default value,
// while an absent field of the default value is the zero value.
//
// It panics if the layer is not of the schema of T.
func (l *Loader[T]) Convert(layer *Layer) T {
	if layer == nil || layer.schema == nil {
		panic(errNoSchema)
	}
	if layer.schema != l.schema {
		panic("cannot convert layer of " + layer.schema.typ.String() + " to " + l.schema.typ.String())
	}

	return l.convert(layer.Merge(l.defaults))
}

func (l *Loader[T]) convert(layer *Layer) T {
	value := l.defaultValue
	toDomain(layer, reflect.ValueOf(&value).Elem())

	return value
}

// Schema returns the schema of T.
func (l *Loader[T]) Schema() *Schema {
	return l.schema
}

func (l *Loader[T]) env() Environment {
	if l.environment != nil {
		return l.environment
	}

	return env.New()
}

// Load loads T with a new Loader created with the given Option(s).
func Load[T any](opts ...Option) (T, error) {
	loader, err := New[T](opts...)
	if err != nil {
		var zero T

		return zero, err
	}

	return loader.Load()
}

// MustLoad is like Load but panics if the configuration cannot be loaded.
func MustLoad[T any](opts ...Option) T {
	value, err := Load[T](opts...)
	if err != nil {
		panic(err.Error())
	}

	return value
}

var errDefaultType = errors.New("default value must be the configuration type")
