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

// Registry is a fixed, ordered set of roles. It is built once; afterwards
// only the role delegates change, never the set of roles or their order.
type Registry interface {
	// Apply links targets[i] to the delegate of the i-th role, walking the
	// targets from last to first. More targets than roles, nil targets and
	// targets that would close a delegation cycle are rejected with
	// ErrInvalidArgument before any link is rewritten.
	Apply(targets ...*object.Object) error
	// Role returns the role registered under name.
	Role(name string) (Role, bool)
	// Roles returns the roles in registration order.
	Roles() []Role
	// Names returns the role names in registration order.
	Names() []string
	// Count returns the number of roles.
	Count() int
	// Config returns the descriptor defaults of the registry.
	Config() Config
}

// Role is a named delegate bound to a Go type's shared behavior.
type Role interface {
	// Name returns the role name.
	Name() string
	// Index returns the role's position in registration order.
	Index() int
	// Type returns the type whose behavior the delegate inherits.
	Type() reflect.Type
	// Delegate returns the shared delegate objects are linked to by Apply.
	Delegate() *object.Object
	// DefineProperty defines a member on the delegate. Configurable and
	// Enumerable are replaced by the registry defaults.
	DefineProperty(name string, d object.Descriptor) error
	// DefineProperties defines every member of props on the delegate in one
	// batch, replacing Configurable and Enumerable as DefineProperty does.
	DefineProperties(props object.Properties) error
}
