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

package strategy

import (
	"maps"
	"reflect"

	"dirpx.dev/rolex/apis"
	"dirpx.dev/rolex/object"
	uref "dirpx.dev/rolex/utils/reflect"
)

// NewStaticStrategy creates an apis.Strategy over a fixed table of members.
// Keys are normalized, so T and *T address the same entry; keys that do not
// normalize are dropped.
func NewStaticStrategy(members map[reflect.Type]object.Properties) apis.Strategy {
	table := make(map[reflect.Type]object.Properties, len(members))
	for t, props := range members {
		nt, err := uref.Normalize(t)
		if err != nil {
			continue
		}
		table[nt] = maps.Clone(props)
	}
	return &staticStrategy{table: table}
}

// staticStrategy consults an explicit table (reflection-free lookup).
type staticStrategy struct {
	table map[reflect.Type]object.Properties
}

// Ensure staticStrategy implements apis.Strategy.
var _ apis.Strategy = (*staticStrategy)(nil)

// TryMembers looks up t in the table.
func (s *staticStrategy) TryMembers(t reflect.Type) (object.Properties, bool) {
	if t == nil || len(s.table) == 0 {
		return nil, false
	}
	nt, err := uref.Normalize(t)
	if err != nil {
		return nil, false
	}
	props, ok := s.table[nt]
	if !ok {
		return nil, false
	}
	return maps.Clone(props), true
}
