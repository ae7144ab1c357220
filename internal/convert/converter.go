// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package convert parses text, e.g. the value of an environment variable,
// into a value of the given type.
//
// Parsing is strict: the whole text must be a valid literal of the target
// type. There is no weak conversion like treating an empty string as zero.
package convert

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type Converter struct {
	hooks     []hook
	separator string
}

// New creates a Converter with the given Option(s).
// It always parses time.Duration with time.ParseDuration
// unless another hook for time.Duration is provided.
func New(opts ...Option) *Converter {
	option := &options{
		separator: ",",
	}
	for _, opt := range opts {
		opt(option)
	}
	WithHook[time.Duration](parseDuration)(option)

	return (*Converter)(option)
}

// Parse parses text into a value of typ.
func (c Converter) Parse(text string, typ reflect.Type) (any, error) {
	if typ == nil {
		return nil, errNilType
	}

	toVal := reflect.New(typ).Elem()
	if err := c.parse(text, toVal); err != nil {
		return nil, err
	}

	return toVal.Interface(), nil
}

// Parsable reports whether Parse supports typ.
func (c Converter) Parsable(typ reflect.Type) bool {
	if typ == nil {
		return false
	}

	for _, h := range c.hooks {
		if h.toType == typ {
			return true
		}
	}
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		return true
	}

	switch typ.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Pointer:
		return c.Parsable(typ.Elem())
	case reflect.Slice:
		elem := typ.Elem()
		if elem.Kind() == reflect.Uint8 {
			return true
		}

		return elem.Kind() != reflect.Slice && c.Parsable(elem)
	default:
		return false
	}
}

func (c Converter) parse(text string, toVal reflect.Value) error { //nolint:cyclop
	for _, h := range c.hooks {
		if h.toType == toVal.Type() {
			return h.hook(text, toVal)
		}
	}

	if unmarshaler, ok := toVal.Addr().Interface().(encoding.TextUnmarshaler); ok {
		if err := unmarshaler.UnmarshalText([]byte(text)); err != nil {
			return fmt.Errorf("cannot parse '%s' as %s: %w", text, toVal.Type(), err)
		}

		return nil
	}

	switch {
	case toVal.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("cannot parse '%s' as bool: %w", text, err)
		}
		toVal.SetBool(b)
	case toVal.CanInt():
		i, err := strconv.ParseInt(text, 10, toVal.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse '%s' as int: %w", text, err)
		}
		toVal.SetInt(i)
	case toVal.CanUint() && toVal.Kind() != reflect.Uintptr:
		u, err := strconv.ParseUint(text, 10, toVal.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse '%s' as uint: %w", text, err)
		}
		toVal.SetUint(u)
	case toVal.CanFloat():
		f, err := strconv.ParseFloat(text, toVal.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse '%s' as float: %w", text, err)
		}
		toVal.SetFloat(f)
	case toVal.CanComplex():
		f, err := strconv.ParseComplex(text, toVal.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse '%s' as complex: %w", text, err)
		}
		toVal.SetComplex(f)
	case toVal.Kind() == reflect.String:
		toVal.SetString(text)
	case toVal.Kind() == reflect.Pointer:
		elem := reflect.New(toVal.Type().Elem())
		if err := c.parse(text, elem.Elem()); err != nil {
			return err
		}
		toVal.Set(elem)
	case toVal.Kind() == reflect.Slice:
		return c.parseSlice(text, toVal)
	default:
		return fmt.Errorf("unsupported type: %s", toVal.Type()) //nolint:err113
	}

	return nil
}

func (c Converter) parseSlice(text string, toVal reflect.Value) error {
	if toVal.Type().Elem().Kind() == reflect.Uint8 {
		toVal.SetBytes([]byte(text))

		return nil
	}

	if text == "" {
		toVal.Set(reflect.MakeSlice(toVal.Type(), 0, 0))

		return nil
	}

	items := strings.Split(text, c.separator)
	slice := reflect.MakeSlice(toVal.Type(), len(items), len(items))
	errs := make([]error, 0, len(items))
	for i, item := range items {
		if err := c.parse(strings.TrimSpace(item), slice.Index(i)); err != nil {
			errs = append(errs, fmt.Errorf("[%d]: %w", i, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	toVal.Set(slice)

	return nil
}

var (
	errNilType = errors.New("cannot parse into nil type")

	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

type hook struct {
	toType reflect.Type
	hook   func(text string, toVal reflect.Value) error
}

func parseDuration(text string) (time.Duration, error) {
	d, err := time.ParseDuration(text)
	if err != nil {
		return 0, fmt.Errorf("cannot parse '%s' as duration: %w", text, err)
	}

	return d, nil
}
