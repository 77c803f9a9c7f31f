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

// Package prototype holds the table of shared behavior objects, one per
// named Go type.
package prototype

import (
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/rolex/apis"
	"dirpx.dev/rolex/logging"
	"dirpx.dev/rolex/object"
	uref "dirpx.dev/rolex/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = uref.ErrNilType
	// ErrTypeNotNamed is returned for types that do not normalize to a named type.
	ErrTypeNotNamed = uref.ErrTypeNotNamed
)

// New constructs a Prototypes table whose behavior objects are populated
// through res. A nil res yields empty behavior objects.
func New(res apis.Resolver) apis.Prototypes {
	return &table{res: res}
}

// table is a Prototypes implementation backed by sync.Map.
type table struct {
	// res produces the initial members of new behavior objects.
	res apis.Resolver
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps normalized reflect.Type to its behavior object.
	m sync.Map // map[reflect.Type]*object.Object
	// count tracks the number of behavior objects.
	count int
}

// Prototype returns the behavior object of the named type underneath t,
// building it on first use.
func (p *table) Prototype(t reflect.Type) (*object.Object, error) {
	nt, err := uref.Normalize(t)
	if err != nil {
		return nil, err
	}

	// Fast read path.
	if v, ok := p.m.Load(nt); ok {
		return v.(*object.Object), nil
	}

	// Members are resolved outside the lock: a BehaviorProvider may itself
	// ask the table for another prototype.
	proto := object.NewBehavior(nt)
	if p.res != nil {
		if props := p.res.Members(nt); len(props) > 0 {
			if err := proto.DefineProperties(props); err != nil {
				return nil, fmt.Errorf("rolex(prototype): members of %s: %w", uref.TypeName(nt), err)
			}
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if v, ok := p.m.Load(nt); ok {
		return v.(*object.Object), nil
	}
	p.m.Store(nt, proto)
	p.count++

	log := logging.GetLogger("prototype")
	log.Debug().
		Str("type", uref.TypeName(nt)).
		Str("id", proto.ID()).
		Int("members", len(proto.OwnKeys())).
		Msg("Behavior object created")
	return proto, nil
}

// Lookup returns the behavior object of t if one exists.
func (p *table) Lookup(t reflect.Type) (*object.Object, bool) {
	nt, err := uref.Normalize(t)
	if err != nil {
		return nil, false
	}
	if v, ok := p.m.Load(nt); ok {
		return v.(*object.Object), true
	}
	return nil, false
}

// Adopt installs proto as the behavior object of t unless t already has
// one. proto must describe the same normalized type.
func (p *table) Adopt(t reflect.Type, proto *object.Object) error {
	if proto == nil {
		return apis.NewArgumentError("adopt", "proto", "must not be nil")
	}
	nt, err := uref.Normalize(t)
	if err != nil {
		return err
	}
	if proto.Type() != nt {
		return apis.NewArgumentError("adopt", "proto", "describes %v, not %s", proto.Type(), uref.TypeName(nt))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.m.Load(nt); ok {
		return nil
	}
	p.m.Store(nt, proto)
	p.count++
	return nil
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (p *table) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, p.Count())
	p.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:      key.(reflect.Type),
			Prototype: value.(*object.Object),
		})
		return true
	})
	return entries
}

// Count returns the number of behavior objects.
func (p *table) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Reset drops all behavior objects. Objects already linked to them keep
// their chains; new lookups build fresh behavior objects.
func (p *table) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m.Clear()
	p.count = 0
}
