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
	"sync"

	"dirpx.dev/rolex/apis"
	"dirpx.dev/rolex/object"
)

// NewReflectStrategy creates an apis.Strategy that derives behavior from a
// type's method set, with memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback. Every exported method of *T
// (or of the interface itself) becomes a hidden, writable, configurable
// *object.Method member.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// membersCache caches method-derived members by type.
var membersCache sync.Map // key: reflect.Type, val: object.Properties

// TryMembers returns the method members of t. It handles every non-nil type.
func (reflectStrategy) TryMembers(t reflect.Type) (object.Properties, bool) {
	if t == nil {
		return nil, false
	}
	return maps.Clone(byMethods(t)), true
}

// byMethods builds the member set for t with memoization.
func byMethods(t reflect.Type) object.Properties {
	if v, ok := membersCache.Load(t); ok {
		return v.(object.Properties)
	}

	set := t
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer {
		// The pointer method set includes value-receiver methods.
		set = reflect.PointerTo(t)
	}

	props := make(object.Properties, set.NumMethod())
	for i := 0; i < set.NumMethod(); i++ {
		m := set.Method(i)
		if !m.IsExported() {
			continue
		}
		props[m.Name] = object.Descriptor{
			Value:        object.NewMethod(t, m),
			Writable:     true,
			Configurable: true,
		}
	}

	v, _ := membersCache.LoadOrStore(t, props)
	return v.(object.Properties)
}
