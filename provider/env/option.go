// Copyright (c) 2025 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package env

// WithPrefix provides the prefix used when taking the snapshot.
// Only environment variables with names that start with the prefix are kept.
//
// For example, if the prefix is "APP_", only environment variables whose names start with "APP_" are kept.
// By default, it has no prefix which keeps all environment variables.
func WithPrefix(prefix string) Option {
	return func(options *options) {
		options.prefix = prefix
	}
}

type (
	// Option configures how New takes the snapshot.
	Option  func(*options)
	options struct {
		prefix string
	}
)
