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

package rolex

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/rolex/apis"
	"dirpx.dev/rolex/builder"
	"dirpx.dev/rolex/config"
	"dirpx.dev/rolex/logging"
	"dirpx.dev/rolex/object"
	"dirpx.dev/rolex/registry"
)

// init initializes the global state.
func init() {
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.res = b.BuildResolver()
	s.protos = b.BuildPrototypes(s.res, nil)
	s.bld = b
	st.Store(s)
}

var (
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("rolex: builder returned nil resolver")
	// ErrNilPrototypes is returned when a builder returns a nil prototype table.
	ErrNilPrototypes = errors.New("rolex: builder returned nil prototypes")
)

// Build creates a role registry from roles using the global builder and
// prototype table. roles may be any input registry.ParseRoles accepts.
// Options are applied on top of the global configuration.
func Build(roles any, opts ...config.Option) (apis.Registry, error) {
	rs, err := registry.ParseRoles(roles)
	if err != nil {
		log := logging.GetLogger("rolex")
		log.Warn().Err(err).Msg("Build rejected")
		return nil, err
	}
	s := st.Load()
	cfg := config.NewConfig(append([]config.Option{config.WithConfig(s.cfg)}, opts...)...)
	return s.bld.BuildRegistry(rs, cfg, s.protos)
}

// MustBuild is like Build but panics on error.
func MustBuild(roles any, opts ...config.Option) apis.Registry {
	reg, err := Build(roles, opts...)
	if err != nil {
		panic(err)
	}
	return reg
}

// PrototypeOf returns the shared behavior object of t from the global table.
func PrototypeOf(t reflect.Type) (*object.Object, error) {
	return st.Load().protos.Prototype(t)
}

// Extend defines props on the shared behavior object of t. Every object
// whose chain reaches that behavior object sees the new members at once.
func Extend(t reflect.Type, props object.Properties) error {
	if props == nil {
		return apis.NewArgumentError("extend", "props", "must not be nil")
	}
	proto, err := PrototypeOf(t)
	if err != nil {
		return fmt.Errorf("rolex(extend): %w", err)
	}
	return proto.DefineProperties(props)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration used as the base of Build.
// Registries already built keep their own defaults.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	next := *old
	next.cfg = cfg
	st.Store(&next)
}

// LoadConfig reads the global configuration from an optional YAML file and
// the environment (see config.Load) and installs it.
func LoadConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	SetConfig(cfg)
	return nil
}

// SetAll explicitly sets all global state components.
//
// Nil arguments are rebuilt from scratch with the (possibly new) builder,
// without migrating the previous prototype table; non-nil ones are pinned.
//
// This is a convenience wrapper around the global state, mainly for tests.
func SetAll(cfg *apis.Config, res apis.Resolver, protos apis.Prototypes, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Resolver
	nres, pres := res, res != nil
	if nres == nil {
		nres = nbld.BuildResolver()
	}

	// Prototypes (fresh table, nothing migrated)
	nprotos, pprotos := protos, protos != nil
	if nprotos == nil {
		nprotos = nbld.BuildPrototypes(nres, nil)
	}

	// Ensure non-nil layers and store the new state atomically.
	st.Store(mustState(&state{
		cfg:     ncfg,
		bld:     nbld,
		res:     nres,
		protos:  nprotos,
		pres:    pres,
		pprotos: pprotos,
	}))
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds the unpinned layers.
// Existing behavior objects are carried into the new prototype table.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new res and protos based on the new bld and old state.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver()
	}
	nprotos := old.protos
	if !old.pprotos {
		nprotos = b.BuildPrototypes(nres, old.protos)
	}

	// Ensure non-nil layers and store the new state atomically.
	next := *old
	next.bld, next.res, next.protos = b, nres, nprotos
	st.Store(mustState(&next))
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets and pins the global resolver. An unpinned prototype
// table is rebuilt over it, keeping the existing behavior objects; only
// types seen for the first time are populated by res.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Rebuild protos over the new res, keeping existing behavior objects.
	nprotos := old.protos
	if !old.pprotos {
		nprotos = old.bld.BuildPrototypes(res, old.protos)
	}

	// Ensure non-nil layers and store the new state atomically.
	next := *old
	next.res, next.protos, next.pres = res, nprotos, true
	st.Store(mustState(&next))
}

// Prototypes returns the global prototype table.
func Prototypes() apis.Prototypes {
	return st.Load().protos
}

// SetPrototypes sets and pins the global prototype table.
func SetPrototypes(protos apis.Prototypes) {
	if protos == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Copy the old state and store the new one atomically.
	next := *st.Load()
	next.protos, next.pprotos = protos, true
	st.Store(&next)
}

// IsResolverPinned returns whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// UnpinResolver lets SetBuilder rebuild the resolver again.
func UnpinResolver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.pres = false
	st.Store(&next)
}

// IsPrototypesPinned returns whether the global prototype table is pinned.
func IsPrototypesPinned() bool {
	return st.Load().pprotos
}

// UnpinPrototypes lets SetBuilder and SetResolver rebuild the prototype
// table again.
func UnpinPrototypes() {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.pprotos = false
	st.Store(&next)
}

// mustState panics if a builder produced an incomplete snapshot.
func mustState(s *state) *state {
	if s.res == nil {
		panic(ErrNilResolver)
	}
	if s.protos == nil {
		panic(ErrNilPrototypes)
	}
	return s
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers copy it, change the copy and swap it in.
type state struct {
	// cfg is the base configuration of Build.
	cfg apis.Config
	// bld builds resolvers, prototype tables and registries.
	bld apis.Builder
	// res populates new behavior objects.
	res apis.Resolver
	// protos is the global prototype table.
	protos apis.Prototypes
	// pres indicates whether res is pinned.
	pres bool
	// pprotos indicates whether protos is pinned.
	pprotos bool
}
