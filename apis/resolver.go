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

package apis

import (
	"reflect"

	"dirpx.dev/rolex/object"
)

// Resolver coordinates strategies to produce the members of a type's
// behavior object.
// Typical chain: ProviderStrategy -> ReflectStrategy.
type Resolver interface {
	// Members returns the behavior members of t, or nil if no strategy
	// handled it.
	Members(t reflect.Type) object.Properties
}
