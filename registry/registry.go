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

// Package registry implements the role registry: a fixed, ordered set of
// named delegates, each inheriting the shared behavior of a Go type, and
// the positional Apply that links objects to them.
package registry

import (
	"fmt"
	"reflect"
	"strconv"

	"dirpx.dev/rolex/apis"
	"dirpx.dev/rolex/logging"
	"dirpx.dev/rolex/object"
	uref "dirpx.dev/rolex/utils/reflect"
)

// New builds a Registry with one role per entry of roles, in insertion
// order. Each role delegate inherits from the behavior object protos holds
// for the role type. cfg is copied; later changes to the caller's value
// have no effect.
func New(roles *Roles, cfg apis.Config, protos apis.Prototypes) (apis.Registry, error) {
	log := logging.GetLogger("registry")

	if roles == nil {
		err := apis.NewArgumentError("build", "roles", "must not be nil")
		log.Warn().Err(err).Msg("Registry rejected")
		return nil, err
	}
	if protos == nil {
		err := apis.NewArgumentError("build", "protos", "must not be nil")
		log.Warn().Err(err).Msg("Registry rejected")
		return nil, err
	}

	r := &registry{
		cfg:    cfg,
		roles:  make([]*role, 0, roles.Len()),
		byName: make(map[string]*role, roles.Len()),
	}
	for pair := roles.Oldest(); pair != nil; pair = pair.Next() {
		name, typ := pair.Key, pair.Value
		if name == "" {
			err := apis.NewArgumentError("build", "roles", "role %d has an empty name", len(r.roles))
			log.Warn().Err(err).Msg("Registry rejected")
			return nil, err
		}
		if typ == nil {
			err := apis.NewArgumentError("build", "roles["+name+"]", "must be a type, got nil")
			log.Warn().Err(err).Msg("Registry rejected")
			return nil, err
		}
		proto, err := protos.Prototype(typ)
		if err != nil {
			argErr := apis.NewArgumentError("build", "roles["+name+"]", "has no behavior object (%v)", typ)
			log.Warn().Err(err).Str("role", name).Msg("Registry rejected")
			return nil, fmt.Errorf("%w: %w", argErr, err)
		}

		rl := &role{
			name:     name,
			index:    len(r.roles),
			typ:      proto.Type(),
			delegate: object.NewWithPrototype(proto),
			cfg:      &r.cfg,
		}
		r.roles = append(r.roles, rl)
		r.byName[name] = rl
	}

	log.Debug().
		Strs("roles", r.Names()).
		Bool("configurable", cfg.Configurable).
		Bool("enumerable", cfg.Enumerable).
		Msg("Registry built")
	return r, nil
}

// registry is the apis.Registry implementation. Its role table is immutable
// after New returns.
type registry struct {
	// cfg holds the descriptor defaults for every role.
	cfg apis.Config
	// roles in registration order.
	roles []*role
	// byName indexes roles by name.
	byName map[string]*role
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Apply links targets[i] to the delegate of the i-th role. Targets are
// linked from last to first, so an object passed twice ends up with the
// delegate of its first position.
func (r *registry) Apply(targets ...*object.Object) error {
	log := logging.GetLogger("registry")
	done := logging.LogOperationStart(log, "apply")
	defer done()

	if len(targets) > len(r.roles) {
		err := apis.NewArgumentError("apply", "targets", "got %d objects for %d roles", len(targets), len(r.roles))
		log.Warn().Err(err).Msg("Apply rejected")
		return err
	}
	for i, t := range targets {
		if t == nil {
			err := apis.NewArgumentError("apply", "targets["+strconv.Itoa(i)+"]", "must not be nil")
			log.Warn().Err(err).Msg("Apply rejected")
			return err
		}
	}

	// Final links: the first position of a target wins.
	planned := make(map[*object.Object]*object.Object, len(targets))
	for i := len(targets) - 1; i >= 0; i-- {
		planned[targets[i]] = r.roles[i].delegate
	}
	for i, t := range targets {
		if closesCycle(t, planned) {
			err := apis.NewArgumentError("apply", "targets["+strconv.Itoa(i)+"]",
				"would close a delegation cycle through role %q", r.roles[i].name)
			log.Warn().Err(err).Msg("Apply rejected")
			return err
		}
	}

	// Detach first; every intermediate chain is then a part of the final one.
	for t := range planned {
		_ = t.SetPrototype(nil)
	}
	for i := len(targets) - 1; i >= 0; i-- {
		rl := r.roles[i]
		if planned[targets[i]] != rl.delegate {
			// Duplicate target: an earlier position owns the link.
			continue
		}
		if err := targets[i].SetPrototype(rl.delegate); err != nil {
			return fmt.Errorf("rolex(apply): role %q: %w", rl.name, err)
		}
		log.Trace().
			Str("role", rl.name).
			Str("target", targets[i].ID()).
			Msg("Delegate assigned")
	}
	return nil
}

// closesCycle reports whether t reaches itself once every link in planned
// is in place.
func closesCycle(t *object.Object, planned map[*object.Object]*object.Object) bool {
	next := func(o *object.Object) *object.Object {
		if p, ok := planned[o]; ok {
			return p
		}
		return o.Prototype()
	}
	seen := make(map[*object.Object]struct{})
	for cur := next(t); cur != nil; cur = next(cur) {
		if cur == t {
			return true
		}
		if _, ok := seen[cur]; ok {
			return false
		}
		seen[cur] = struct{}{}
	}
	return false
}

// Role returns the role registered under name.
func (r *registry) Role(name string) (apis.Role, bool) {
	rl, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return rl, true
}

// Roles returns the roles in registration order.
func (r *registry) Roles() []apis.Role {
	out := make([]apis.Role, len(r.roles))
	for i, rl := range r.roles {
		out[i] = rl
	}
	return out
}

// Names returns the role names in registration order.
func (r *registry) Names() []string {
	out := make([]string, len(r.roles))
	for i, rl := range r.roles {
		out[i] = rl.name
	}
	return out
}

// Count returns the number of roles.
func (r *registry) Count() int {
	return len(r.roles)
}

// Config returns the descriptor defaults.
func (r *registry) Config() apis.Config {
	return r.cfg
}

// role is a named delegate. Only the delegate's members change after
// construction.
type role struct {
	name     string
	index    int
	typ      reflect.Type
	delegate *object.Object
	cfg      *apis.Config
}

// Ensure role implements apis.Role.
var _ apis.Role = (*role)(nil)

func (rl *role) Name() string { return rl.name }
func (rl *role) Index() int { return rl.index }
func (rl *role) Type() reflect.Type { return rl.typ }
func (rl *role) Delegate() *object.Object { return rl.delegate }

// String implements fmt.Stringer.
func (rl *role) String() string {
	return fmt.Sprintf("role(%s #%d %s)", rl.name, rl.index, uref.TypeName(rl.typ))
}

// DefineProperty defines name on the delegate from a copy of d whose
// Configurable and Enumerable come from the registry defaults.
func (rl *role) DefineProperty(name string, d object.Descriptor) error {
	if name == "" {
		return apis.NewArgumentError("defineProperty", "name", "must not be empty")
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w: %w", apis.NewArgumentError("defineProperty", "descriptor", "is malformed for %q", name), err)
	}

	if err := rl.delegate.DefineProperty(name, rl.forced(d)); err != nil {
		return err
	}
	log := logging.GetLogger("registry")
	log.Debug().
		Str("role", rl.name).
		Str("member", name).
		Msg("Member defined")
	return nil
}

// DefineProperties defines every member of props on the delegate in one
// all-or-nothing batch, forcing attributes as DefineProperty does.
func (rl *role) DefineProperties(props object.Properties) error {
	if props == nil {
		return apis.NewArgumentError("defineProperties", "props", "must not be nil")
	}
	out := make(object.Properties, len(props))
	for name, d := range props {
		if name == "" {
			return apis.NewArgumentError("defineProperties", "props", "contains an empty name")
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("%w: %w", apis.NewArgumentError("defineProperties", "props["+name+"]", "is malformed"), err)
		}
		out[name] = rl.forced(d)
	}

	if err := rl.delegate.DefineProperties(out); err != nil {
		return err
	}
	log := logging.GetLogger("registry")
	log.Debug().
		Str("role", rl.name).
		Int("members", len(out)).
		Msg("Members defined")
	return nil
}

func (rl *role) forced(d object.Descriptor) object.Descriptor {
	return d.WithAttributes(rl.cfg.Configurable, rl.cfg.Enumerable)
}
