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

// Prototypes maps Go types to their shared behavior objects. A type has at
// most one behavior object per table, created on first use.
type Prototypes interface {
	// Prototype returns the behavior object of t, creating it if needed.
	// t is normalized first, so T and *T share one object.
	Prototype(t reflect.Type) (*object.Object, error)
	// Lookup returns the behavior object of t if it already exists.
	Lookup(t reflect.Type) (*object.Object, bool)
	// Adopt installs an existing behavior object, keeping its identity.
	// It is a no-op if t already has one.
	Adopt(t reflect.Type, proto *object.Object) error
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of behavior objects.
	Count() int
	// Reset drops all behavior objects.
	Reset()
}

// Entry is a single (type, behavior object) association in a Prototypes snapshot.
type Entry struct {
	// Type is the normalized type.
	Type reflect.Type
	// Prototype is its behavior object.
	Prototype *object.Object
}
