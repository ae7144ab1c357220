// Copyright (c) 2025 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package convert

import "reflect"

// WithSeparator provides the separator between items
// when parsing text into a slice.
//
// The default separator is `,`.
func WithSeparator(separator string) Option {
	return func(options *options) {
		if separator != "" {
			options.separator = separator
		}
	}
}

// WithHook provides a custom parser for the type T.
// Hooks take precedence over the built-in parsing in the order provided.
func WithHook[T any, FN func(string) (T, error) | func(string, *T) error](fn FN) Option {
	switch hookFunc := any(fn).(type) {
	case func(string) (T, error):
		return withHook(newHook(hookFunc))
	case func(string, *T) error:
		return withHook(newHook(func(text string) (T, error) {
			var t T
			err := hookFunc(text, &t)

			return t, err
		}))
	default:
		return func(*options) {}
	}
}

func withHook(h hook) Option {
	return func(options *options) {
		options.hooks = append(options.hooks, h)
	}
}

func newHook[T any](parse func(string) (T, error)) hook {
	return hook{
		toType: reflect.TypeFor[T](),
		hook: func(text string, toVal reflect.Value) error {
			t, err := parse(text)
			if err != nil {
				return err
			}
			toVal.Set(reflect.ValueOf(&t).Elem())

			return nil
		},
	}
}

type (
	// Option configures a Converter with specific options.
	Option  func(*options)
	options Converter
)
