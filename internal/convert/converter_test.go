// Copyright (c) 2024 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package convert_test

import (
	"errors"
	"net/netip"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nil-go/strata/internal/assert"
	"github.com/nil-go/strata/internal/convert"
)

func TestConverter_Parse(t *testing.T) { //nolint:maintidx
	t.Parallel()

	testcases := []struct {
		description string
		opts        []convert.Option
		text        string
		typ         reflect.Type
		expected    any
		err         string
	}{
		{
			description: "nil type",
			text:        "1",
			err:         "cannot parse into nil type",
		},
		{
			description: "string",
			text:        "World",
			typ:         reflect.TypeFor[string](),
			expected:    "World",
		},
		{
			description: "empty string",
			text:        "",
			typ:         reflect.TypeFor[string](),
			expected:    "",
		},
		{
			description: "bool",
			text:        "true",
			typ:         reflect.TypeFor[bool](),
			expected:    true,
		},
		{
			description: "invalid bool",
			text:        "yes",
			typ:         reflect.TypeFor[bool](),
			err:         `cannot parse 'yes' as bool: strconv.ParseBool: parsing "yes": invalid syntax`,
		},
		{
			description: "int",
			text:        "-20",
			typ:         reflect.TypeFor[int](),
			expected:    -20,
		},
		{
			description: "int with leading zero",
			text:        "08",
			typ:         reflect.TypeFor[int32](),
			expected:    int32(8),
		},
		{
			description: "empty int",
			text:        "",
			typ:         reflect.TypeFor[int](),
			err:         `cannot parse '' as int: strconv.ParseInt: parsing "": invalid syntax`,
		},
		{
			description: "int overflow",
			text:        "300",
			typ:         reflect.TypeFor[int8](),
			err:         `cannot parse '300' as int: strconv.ParseInt: parsing "300": value out of range`,
		},
		{
			description: "uint",
			text:        "2000",
			typ:         reflect.TypeFor[uint64](),
			expected:    uint64(2000),
		},
		{
			description: "negative uint",
			text:        "-1",
			typ:         reflect.TypeFor[uint](),
			err:         `cannot parse '-1' as uint: strconv.ParseUint: parsing "-1": invalid syntax`,
		},
		{
			description: "float",
			text:        "2.5",
			typ:         reflect.TypeFor[float64](),
			expected:    2.5,
		},
		{
			description: "complex",
			text:        "1+2i",
			typ:         reflect.TypeFor[complex128](),
			expected:    complex(1, 2),
		},
		{
			description: "duration",
			text:        "2s",
			typ:         reflect.TypeFor[time.Duration](),
			expected:    2 * time.Second,
		},
		{
			description: "invalid duration",
			text:        "2",
			typ:         reflect.TypeFor[time.Duration](),
			err:         `cannot parse '2' as duration: time: missing unit in duration "2"`,
		},
		{
			description: "text unmarshaler",
			text:        "127.0.0.1",
			typ:         reflect.TypeFor[netip.Addr](),
			expected:    netip.MustParseAddr("127.0.0.1"),
		},
		{
			description: "pointer",
			text:        "v",
			typ:         reflect.TypeFor[*string](),
			expected:    pointer("v"),
		},
		{
			description: "slice",
			text:        "8080, 8081",
			typ:         reflect.TypeFor[[]uint32](),
			expected:    []uint32{8080, 8081},
		},
		{
			description: "empty slice",
			text:        "",
			typ:         reflect.TypeFor[[]string](),
			expected:    []string{},
		},
		{
			description: "slice with invalid item",
			text:        "1,a",
			typ:         reflect.TypeFor[[]int](),
			err:         `[1]: cannot parse 'a' as int: strconv.ParseInt: parsing "a": invalid syntax`,
		},
		{
			description: "bytes",
			text:        "raw",
			typ:         reflect.TypeFor[[]byte](),
			expected:    []byte("raw"),
		},
		{
			description: "custom separator",
			opts:        []convert.Option{convert.WithSeparator(";")},
			text:        "a;b",
			typ:         reflect.TypeFor[[]string](),
			expected:    []string{"a", "b"},
		},
		{
			description: "hook",
			opts: []convert.Option{
				convert.WithHook[[]string](func(text string) ([]string, error) {
					return strings.Fields(text), nil
				}),
			},
			text:     "a b",
			typ:      reflect.TypeFor[[]string](),
			expected: []string{"a", "b"},
		},
		{
			description: "hook with pointer",
			opts: []convert.Option{
				convert.WithHook[time.Duration](func(text string, d *time.Duration) error {
					if text != "forever" {
						return errors.New("unknown duration")
					}
					*d = time.Duration(1<<63 - 1)

					return nil
				}),
			},
			text:     "forever",
			typ:      reflect.TypeFor[time.Duration](),
			expected: time.Duration(1<<63 - 1),
		},
		{
			description: "unsupported type",
			text:        "{}",
			typ:         reflect.TypeFor[map[string]string](),
			err:         "unsupported type: map[string]string",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			value, err := convert.New(testcase.opts...).Parse(testcase.text, testcase.typ)
			if testcase.err != "" {
				assert.EqualError(t, err, testcase.err)

				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testcase.expected, value)
		})
	}
}

func TestConverter_Parsable(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		typ         reflect.Type
		expected    bool
	}{
		{description: "nil", typ: nil},
		{description: "string", typ: reflect.TypeFor[string](), expected: true},
		{description: "uint8", typ: reflect.TypeFor[uint8](), expected: true},
		{description: "duration", typ: reflect.TypeFor[time.Duration](), expected: true},
		{description: "time", typ: reflect.TypeFor[time.Time](), expected: true},
		{description: "pointer", typ: reflect.TypeFor[*bool](), expected: true},
		{description: "slice", typ: reflect.TypeFor[[]float32](), expected: true},
		{description: "bytes", typ: reflect.TypeFor[[]byte](), expected: true},
		{description: "nested slice", typ: reflect.TypeFor[[][]string]()},
		{description: "map", typ: reflect.TypeFor[map[string]string]()},
		{description: "struct", typ: reflect.TypeFor[struct{ A string }]()},
		{description: "uintptr", typ: reflect.TypeFor[uintptr]()},
		{description: "func", typ: reflect.TypeFor[func()]()},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testcase.expected, convert.New().Parsable(testcase.typ))
		})
	}
}

func pointer[T any](v T) *T {
	return &v
}
