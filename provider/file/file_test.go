// Copyright (c) 2024 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package file_test

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/nil-go/strata/provider/file"
)

func TestFile_Load(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		path        string
		opts        []file.Option
		expected    map[string]any
		err         string
		errIs       error
	}{
		{
			description: "toml",
			path:        "testdata/config.toml",
			expected: map[string]any{
				"name": "svc",
				"port": int64(8080),
				"db":   map[string]any{"host": "localhost"},
			},
		},
		{
			description: "json",
			path:        "testdata/config.json",
			expected: map[string]any{
				"name": "svc",
				"port": float64(8080),
				"db":   map[string]any{"host": "localhost"},
			},
		},
		{
			description: "yaml",
			path:        "testdata/config.yaml",
			expected: map[string]any{
				"name": "svc",
				"port": 8080,
				"db":   map[string]any{"host": "localhost"},
			},
		},
		{
			description: "json5",
			path:        "testdata/config.json5",
			expected: map[string]any{
				"name": "svc",
				"port": float64(8080),
				"db":   map[string]any{"host": "localhost"},
			},
		},
		{
			description: "ini",
			path:        "testdata/config.ini",
			expected: map[string]any{
				"name": "svc",
				"port": "8080",
				"db": map[string]any{
					"host": "localhost",
					"tls":  map[string]any{"cert": "server.pem"},
				},
			},
		},
		{
			description: "empty file",
			path:        "testdata/empty.toml",
			expected:    map[string]any{},
		},
		{
			description: "not exist",
			path:        "not_found.toml",
			err:         "read file: open not_found.toml: no such file or directory",
			errIs:       fs.ErrNotExist,
		},
		{
			description: "syntax error",
			path:        "testdata/broken.toml",
			errIs:       file.ErrFormat,
		},
		{
			description: "unsupported format",
			path:        "testdata/config.ron",
			opts: []file.Option{
				file.WithFS(fstest.MapFS{"testdata/config.ron": {Data: []byte("()")}}),
			},
			err:   `unmarshal: unsupported file format "testdata/config.ron"`,
			errIs: file.ErrUnsupportedFormat,
		},
		{
			description: "unmarshal error",
			path:        "testdata/config.json",
			opts: []file.Option{
				file.WithUnmarshal(func([]byte, any) error {
					return errors.New("unmarshal error")
				}),
			},
			err:   "unmarshal: unmarshal error",
			errIs: file.ErrFormat,
		},
		{
			description: "fs",
			path:        "app.toml",
			opts: []file.Option{
				file.WithFS(fstest.MapFS{"app.toml": {Data: []byte(`k = "v"`)}}),
			},
			expected: map[string]any{"k": "v"},
		},
		{
			description: "fs (not exist)",
			path:        "app.toml",
			opts: []file.Option{
				file.WithFS(fstest.MapFS{}),
			},
			errIs: fs.ErrNotExist,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			values, err := file.New(testcase.path, testcase.opts...).Load()
			if testcase.err != "" || testcase.errIs != nil {
				require.Error(t, err)
				if testcase.err != "" {
					require.EqualError(t, err, testcase.err)
				}
				if testcase.errIs != nil {
					require.ErrorIs(t, err, testcase.errIs)
				}

				return
			}
			require.NoError(t, err)
			require.Equal(t, testcase.expected, values)
		})
	}
}

func TestFile_Load_formatIsNotIO(t *testing.T) {
	t.Parallel()

	_, err := file.New("testdata/broken.toml").Load()
	require.ErrorIs(t, err, file.ErrFormat)
	require.NotErrorIs(t, err, fs.ErrNotExist)

	_, err = file.New("testdata/absent.toml").Load()
	require.NotErrorIs(t, err, file.ErrFormat)
}

func TestExists(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"conf/app.toml": {Data: []byte("")}}

	require.True(t, file.Exists(nil, "testdata/config.toml"))
	require.False(t, file.Exists(nil, "testdata/absent.toml"))
	require.False(t, file.Exists(nil, ""))
	require.True(t, file.Exists(fsys, "conf/app.toml"))
	require.False(t, file.Exists(fsys, "testdata/config.toml"))
	require.True(t, file.New("conf/app.toml", file.WithFS(fsys)).Exists())
}

func TestUnmarshaler(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"a.toml", "a", "a.json", "a.yaml", "a.YML", "a.json5", "a.ini"} {
		require.NotNil(t, file.Unmarshaler(path), path)
	}
	for _, path := range []string{"a.ron", "a.txt"} {
		require.Nil(t, file.Unmarshaler(path), path)
	}
}

func TestFile_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "file:config.toml", file.New("config.toml").String())
}

func TestNew_panic(t *testing.T) {
	t.Parallel()

	require.PanicsWithValue(t, "cannot create File with empty path", func() {
		file.New("")
	})
}
