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

// Package rolex builds registries of named roles whose delegates carry the
// shared behavior of Go types, and attaches those delegates to objects by
// position.
//
// # Model
//
// Objects (package object) hold own members and a single delegation link.
// A lookup that misses on an object continues on its prototype, then on the
// prototype's prototype, and so on. Every named Go type has one shared
// behavior object per prototype table; by default its members are the
// type's exported methods (hidden, callable through Object.Call with the
// receiver as first argument), or whatever the type declares through
// apis.BehaviorProvider.
//
// A registry is built once from an ordered role map. Each role gets a
// delegate object whose prototype is the behavior object of the role type:
//
//	roles := registry.NewRoles()
//	roles.Set("reader", reflect.TypeOf(Reader{}))
//	roles.Set("writer", reflect.TypeOf(Writer{}))
//
//	reg, err := rolex.Build(roles)
//	if err != nil {
//		return err
//	}
//
//	r, w := object.New(), object.New()
//	_ = reg.Apply(r, w)                  // r -> reader delegate, w -> writer delegate
//	r.InstanceOf(reflect.TypeOf(Reader{})) // true
//
// Members defined through a role land on its delegate and are visible at
// once to every object linked to it, before or after the definition:
//
//	reader, _ := reg.Role("reader")
//	_ = reader.DefineProperty("limit", object.Descriptor{Value: 10})
//	r.Get("limit") // 10
//
// Configurable and Enumerable of such members always come from the
// registry defaults (config.WithConfigurable, config.WithEnumerable), both
// true unless set otherwise.
//
// # Global state
//
// The package keeps a read-mostly snapshot holding the base Config, the
// Builder, the Resolver that populates behavior objects and the prototype
// table. Readers load it atomically; writers (SetConfig, SetBuilder,
// SetResolver, SetPrototypes, SetAll) serialize on a mutex and publish a
// new snapshot. Explicitly set resolvers and prototype tables are pinned
// and survive SetBuilder until unpinned. Replacing the builder or the
// resolver carries the existing behavior objects over, so objects already
// linked keep resolving through the same prototypes.
//
// Extend adds members to the behavior object of a type for every registry
// built on the global table:
//
//	_ = rolex.Extend(reflect.TypeOf(Reader{}), object.Properties{
//		"kind": object.Data("reader"),
//	})
//
// # Scope
//
// rolex does not detach delegates, rename roles, or accept more targets in
// Apply than there are roles.
package rolex
