// Copyright (c) 2023 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

// Environment is the interface that wraps the basic Lookup method.
//
// Lookup returns the value of the environment variable with the given name
// and reports whether it is set. An empty value is still a set value.
//
// Loader reads the environment only through this interface,
// so a snapshot like [github.com/nil-go/strata/provider/env.Env]
// makes loading independent of the live process environment.
type Environment interface {
	Lookup(name string) (string, bool)
}
