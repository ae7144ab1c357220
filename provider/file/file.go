// Copyright (c) 2024 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package file loads configuration from a file.
//
// File reads the file with the given path, from the OS file system or the
// given fs.FS, and returns a nested map[string]any that is parsed with the
// unmarshal function selected by the file extension:
//   - .toml (or no extension): TOML
//   - .json: JSON
//   - .yaml, .yml: YAML
//   - .ini: INI, sections become nested keys
//   - .json5: JSON5
//
// Read failures are returned as they are, while failures to parse the
// content wrap ErrFormat so callers can tell them apart.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// File is a loader that loads configuration from a file.
//
// To create a new File, call [New].
type File struct {
	logger    *slog.Logger
	fs        fs.FS
	path      string
	unmarshal func([]byte, any) error
}

// New creates a File with the given path and Option(s).
//
// It panics if the path is empty.
func New(path string, opts ...Option) File {
	if path == "" {
		panic("cannot create File with empty path")
	}

	option := &options{
		path: path,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("strata.file")
	if option.unmarshal == nil {
		option.unmarshal = Unmarshaler(path)
	}

	return File(*option)
}

// Load reads and parses the file.
func (f File) Load() (map[string]any, error) {
	bytes, err := f.read()
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if f.unmarshal == nil {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, f.path)
	}

	var out map[string]any
	if err := f.unmarshal(bytes, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if out == nil {
		// Empty file.
		out = make(map[string]any)
	}
	f.logger.Debug("Config file has been loaded.", "file", f.path, "keys", len(out))

	return out, nil
}

// Exists reports whether the file exists.
func (f File) Exists() bool {
	return Exists(f.fs, f.path)
}

func (f File) read() ([]byte, error) {
	if f.fs == nil {
		return os.ReadFile(f.path)
	}

	return fs.ReadFile(f.fs, f.path)
}

func (f File) String() string {
	return "file:" + f.path
}

// Exists reports whether the path exists in fsys,
// or in the OS file system if fsys is nil.
func Exists(fsys fs.FS, path string) bool {
	if path == "" {
		return false
	}

	var err error
	if fsys == nil {
		_, err = os.Stat(path)
	} else {
		_, err = fs.Stat(fsys, path)
	}

	return err == nil
}

var (
	// ErrFormat is wrapped by errors that fail to parse the file content.
	ErrFormat = errors.New("unmarshal")
	// ErrUnsupportedFormat is returned for a file extension without unmarshal function.
	// It also matches ErrFormat.
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported file format", ErrFormat)
)
