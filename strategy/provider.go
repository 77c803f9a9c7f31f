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
	"reflect"

	"dirpx.dev/rolex/apis"
	"dirpx.dev/rolex/object"
)

var providerType = reflect.TypeOf((*apis.BehaviorProvider)(nil)).Elem()

// NewProviderStrategy creates an apis.Strategy that uses apis.BehaviorProvider.
func NewProviderStrategy() apis.Strategy {
	return &providerStrategy{}
}

// providerStrategy is a fast path: if *T implements apis.BehaviorProvider,
// its Behavior() is the member set and the chain stops.
type providerStrategy struct{}

// Ensure providerStrategy implements apis.Strategy.
var _ apis.Strategy = (*providerStrategy)(nil)

// TryMembers calls Behavior() on a zero *T when *T implements apis.BehaviorProvider.
func (*providerStrategy) TryMembers(t reflect.Type) (object.Properties, bool) {
	if t == nil || t.Kind() == reflect.Interface {
		// No instance can be made of an interface type.
		return nil, false
	}
	if !reflect.PointerTo(t).Implements(providerType) {
		return nil, false
	}
	p := reflect.New(t).Interface().(apis.BehaviorProvider)
	props := p.Behavior()
	if props == nil {
		props = object.Properties{}
	}
	return props, true
}
