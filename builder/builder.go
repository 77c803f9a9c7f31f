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

package builder

import (
	"reflect"

	"dirpx.dev/rolex/apis"
	"dirpx.dev/rolex/logging"
	"dirpx.dev/rolex/object"
	"dirpx.dev/rolex/prototype"
	"dirpx.dev/rolex/registry"
	"dirpx.dev/rolex/resolver"
	"dirpx.dev/rolex/strategy"
)

// Option configures a builder.
type Option func(*builder)

// WithMembers declares the behavior members of t explicitly. Declared types
// skip both the BehaviorProvider and the method-set strategies.
func WithMembers(t reflect.Type, props object.Properties) Option {
	return func(b *builder) {
		if t == nil {
			return
		}
		if b.members == nil {
			b.members = make(map[reflect.Type]object.Properties)
		}
		b.members[t] = props
	}
}

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// builder holds the explicitly declared members, if any.
type builder struct {
	members map[reflect.Type]object.Properties
}

// BuildResolver builds the strategy chain: declared members, then
// BehaviorProvider, then the method set.
func (b *builder) BuildResolver() apis.Resolver {
	return resolver.New(
		strategy.NewStaticStrategy(b.members),
		strategy.NewProviderStrategy(),
		strategy.NewReflectStrategy(),
	)
}

// BuildPrototypes builds a new table over res. If a previous table is
// provided, its behavior objects are adopted so that objects linked to them
// keep resolving through the same prototypes.
func (b *builder) BuildPrototypes(res apis.Resolver, prev apis.Prototypes) apis.Prototypes {
	next := prototype.New(res)
	if prev == nil {
		return next
	}
	log := logging.GetLogger("builder")
	for _, e := range prev.Entries() {
		if err := next.Adopt(e.Type, e.Prototype); err != nil {
			log.Warn().Err(err).Stringer("type", e.Type).Msg("Behavior object not migrated")
		}
	}
	return next
}

// BuildRegistry builds a role registry over protos.
func (b *builder) BuildRegistry(roles *apis.Roles, cfg apis.Config, protos apis.Prototypes) (apis.Registry, error) {
	return registry.New(roles, cfg, protos)
}
