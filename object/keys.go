/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package object

import (
	"slices"
	"strconv"
)

// maxIndex is the exclusive upper bound of canonical index keys.
const maxIndex = 1<<32 - 1

// IsIndex reports whether key is a canonical array index ("0", "3", "42"
// but not "03", "-1" or "4294967295"). Index keys sort numerically ahead of
// all other keys.
func IsIndex(key string) bool {
	_, ok := index(key)
	return ok
}

// IndexKey returns the canonical key for index i.
func IndexKey(i uint32) string {
	return strconv.FormatUint(uint64(i), 10)
}

func index(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n >= maxIndex {
		return 0, false
	}
	return n, true
}

// orderKeys returns keys with index keys first in ascending numeric order,
// followed by the remaining keys in their given order.
func orderKeys(keys []string) []string {
	idx := make([]string, 0)
	rest := make([]string, 0, len(keys))
	for _, k := range keys {
		if IsIndex(k) {
			idx = append(idx, k)
			continue
		}
		rest = append(rest, k)
	}
	slices.SortFunc(idx, func(a, b string) int {
		x, _ := index(a)
		y, _ := index(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	})
	return append(idx, rest...)
}

// sortedKeys returns the keys of props in definition order: index keys
// ascending, then the rest lexically. Go maps carry no insertion order, so a
// batch is always defined in this canonical order.
func sortedKeys(props Properties) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return orderKeys(keys)
}
