// Copyright (c) 2024 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package internal

import (
	"reflect"
	"sync/atomic"
)

// NoCopy panics on use after the value holding it has been copied.
// The first Check records the address of the receiver.
type NoCopy[T any] struct {
	addr atomic.Pointer[NoCopy[T]]
}

func (c *NoCopy[T]) Check() {
	if c.addr.CompareAndSwap(nil, c) {
		return
	}

	if c.addr.Load() != c {
		panic("illegal use of " + reflect.TypeFor[T]().Name() + " copied by value")
	}
}
