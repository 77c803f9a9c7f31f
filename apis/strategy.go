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

// Strategy is a pluggable source of a type's shared behavior. A Resolver can
// chain multiple strategies in order (e.g., Provider -> Reflect).
type Strategy interface {
	// TryMembers returns the members of t's behavior object.
	// It returns (props, true) if handled; otherwise (nil, false) to fall through.
	TryMembers(t reflect.Type) (props object.Properties, handled bool)
}

// BehaviorProvider lets a type declare its shared behavior explicitly
// instead of having it derived from its method set. It is called on a zero
// value of *T.
type BehaviorProvider interface {
	Behavior() object.Properties
}
