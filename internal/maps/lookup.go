// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

import "strings"

// Lookup returns the value of the given key in values.
// The exact key wins. Otherwise the first key equal under Unicode
// case-folding is used, in sorted key order so the result is stable.
// A nil value is treated as missing.
func Lookup(values map[string]any, key string) (any, bool) {
	if value, ok := values[key]; ok {
		return value, value != nil
	}

	var (
		matched string
		found   bool
	)
	for k := range values {
		if strings.EqualFold(k, key) && (!found || k < matched) {
			matched, found = k, true
		}
	}
	if !found {
		return nil, false
	}
	value := values[matched]

	return value, value != nil
}
