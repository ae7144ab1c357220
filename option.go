// Copyright (c) 2023 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"io/fs"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
)

// WithEnvironment provides the environment that variables are looked up from.
//
// By default, it takes a snapshot of the process environment on each Load.
func WithEnvironment(environment Environment) Option {
	return func(options *options) {
		options.environment = environment
	}
}

// WithDefault provides the default value of the configuration,
// which is the lowest precedence layer.
// The type of the value must be the configuration type.
//
// By default, it uses the result of the `Default() T` method if the
// configuration type has one, or the zero value.
func WithDefault[T any](value T) Option {
	return func(options *options) {
		options.defaultValue = value
	}
}

// WithLogger provides the slog.Logger for Loader.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithTagName provides the tag name that attributes are read from.
//
// The default tag name is `strata`.
func WithTagName(tagName string) Option {
	return func(options *options) {
		options.tagName = tagName
	}
}

// WithFS provides the fs.FS that config files are resolved and read from.
//
// By default, it uses the OS file system.
func WithFS(fs fs.FS) Option {
	return func(options *options) {
		options.fs = fs
	}
}

// WithDecodeHook provides the decode hook for mapstructure
// when decoding values from the config file.
//
// The default decode hook handles time.Duration, comma separated slices
// and types implementing encoding.TextUnmarshaler.
func WithDecodeHook(decodeHook mapstructure.DecodeHookFunc) Option {
	return func(options *options) {
		options.decodeHook = decodeHook
	}
}

// WithListSeparator provides the separator between items
// when a slice field is read from a text value,
// i.e. an environment variable or a string in the config file.
//
// The default separator is `,`. It has no effect on the config file
// if a decode hook is provided with WithDecodeHook.
func WithListSeparator(separator string) Option {
	return func(options *options) {
		options.listSeparator = separator
	}
}

// Option configures a Loader with specific options.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	environment   Environment
	defaultValue  any
	tagName       string
	fs            fs.FS
	decodeHook    mapstructure.DecodeHookFunc
	listSeparator string
}

func apply(opts []Option) options {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	if option.tagName == "" {
		option.tagName = defaultTagName
	}
	if option.listSeparator == "" {
		option.listSeparator = defaultListSeparator
	}
	if option.decodeHook == nil {
		option.decodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(option.listSeparator),
			mapstructure.TextUnmarshallerHookFunc(),
		)
	}

	return *option
}

const (
	defaultTagName       = "strata"
	defaultListSeparator = ","
)
