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

// Builder composes the resolver, the prototype table and role registries.
// Implementations may migrate state from previous instances (prev), or ignore them.
type Builder interface {
	// BuildResolver constructs the Resolver used to populate behavior objects.
	BuildResolver() Resolver
	// BuildPrototypes constructs a Prototypes table on top of res. It may
	// adopt the behavior objects of prev so that existing objects keep
	// resolving to the same prototypes.
	BuildPrototypes(res Resolver, prev Prototypes) Prototypes
	// BuildRegistry constructs a role Registry for roles over protos.
	BuildRegistry(roles *Roles, cfg Config, protos Prototypes) (Registry, error)
}
