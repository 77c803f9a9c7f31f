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

package registry

import (
	"reflect"
	"slices"

	"dirpx.dev/rolex/apis"
)

// Roles is the insertion-ordered role map accepted by New.
type Roles = apis.Roles

// NewRoles returns an empty Roles map.
func NewRoles() *Roles {
	return apis.NewRoles()
}

// ParseRoles converts a dynamically typed role map into Roles.
//
// Accepted inputs are *Roles and Roles (order kept), map[string]reflect.Type
// and map[string]any (keys sorted, as Go maps carry no order). In a
// map[string]any a reflect.Type value is used as is and any other non-nil
// value stands for its own dynamic type. Absent input and sequences are
// rejected with apis.ErrInvalidArgument.
func ParseRoles(v any) (*Roles, error) {
	switch x := v.(type) {
	case nil:
		return nil, apis.NewArgumentError("build", "roles", "must not be nil")
	case *Roles:
		if x == nil {
			return nil, apis.NewArgumentError("build", "roles", "must not be nil")
		}
		return x, nil
	case Roles:
		return &x, nil
	case map[string]reflect.Type:
		if x == nil {
			return nil, apis.NewArgumentError("build", "roles", "must not be nil")
		}
		out := NewRoles()
		for _, k := range sortedNames(x) {
			out.Set(k, x[k])
		}
		return out, nil
	case map[string]any:
		if x == nil {
			return nil, apis.NewArgumentError("build", "roles", "must not be nil")
		}
		out := NewRoles()
		for _, k := range sortedNames(x) {
			out.Set(k, typeOf(x[k]))
		}
		return out, nil
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return nil, apis.NewArgumentError("build", "roles", "must be a mapping, not a sequence (%T)", v)
	default:
		return nil, apis.NewArgumentError("build", "roles", "must be a mapping of role names to types, got %T", v)
	}
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

func typeOf(v any) reflect.Type {
	if t, ok := v.(reflect.Type); ok {
		return t
	}
	return reflect.TypeOf(v)
}
