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

package object

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"

	uref "dirpx.dev/rolex/utils/reflect"
)

var (
	// ErrNotConfigurable is returned when a permanent member would be redefined.
	ErrNotConfigurable = errors.New("object: member is not configurable")
	// ErrNotWritable is returned when assigning to a read-only member.
	ErrNotWritable = errors.New("object: member is not writable")
	// ErrCyclicPrototype is returned when a prototype link would close a cycle.
	ErrCyclicPrototype = errors.New("object: cyclic prototype chain")
	// ErrInvalidDescriptor is returned for accessor descriptors that also
	// carry a value or the writable attribute.
	ErrInvalidDescriptor = errors.New("object: accessor descriptor cannot carry a value or be writable")
	// ErrNotCallable is returned by Call for members that are not functions.
	ErrNotCallable = errors.New("object: member is not callable")
	// ErrNoReceiver is returned when a Method is called without a receiver.
	ErrNoReceiver = errors.New("object: method call requires a receiver")
)

// Object is a dynamic object with own members and a prototype link.
//
// Member lookup starts at the object and falls back along the prototype
// chain: resolve(o, k) = o.own[k] ?? resolve(o.proto, k). Each Object guards
// its own state; getters and setters run without any lock held.
type Object struct {
	// id is a stable identifier used in logs.
	id string
	// typ is set on behavior objects: the type whose shared behavior they hold.
	typ reflect.Type

	mu    sync.RWMutex
	proto *Object
	props map[string]Descriptor
	// keys holds own keys in insertion order.
	keys []string
}

// New returns an empty object with no prototype.
func New() *Object {
	return &Object{
		id:    uuid.NewString(),
		props: make(map[string]Descriptor),
	}
}

// NewWithPrototype returns an empty object whose prototype is p.
func NewWithPrototype(p *Object) *Object {
	o := New()
	o.proto = p
	return o
}

// NewBehavior returns the empty shared behavior object of type t.
// Objects whose chain contains it are instances of t.
func NewBehavior(t reflect.Type) *Object {
	o := New()
	o.typ = t
	return o
}

// ID returns the object's stable identifier.
func (o *Object) ID() string {
	return o.id
}

// Type returns the type a behavior object describes, or nil.
func (o *Object) Type() reflect.Type {
	return o.typ
}

// String implements fmt.Stringer.
func (o *Object) String() string {
	if o.typ != nil {
		return "behavior(" + o.typ.String() + ")#" + o.id
	}
	return "object#" + o.id
}

// Prototype returns the object's prototype, or nil.
func (o *Object) Prototype() *Object {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.proto
}

// SetPrototype replaces the prototype link. Own members are unaffected.
func (o *Object) SetPrototype(p *Object) error {
	if p == o || o.IsPrototypeOf(p) {
		return ErrCyclicPrototype
	}
	o.mu.Lock()
	o.proto = p
	o.mu.Unlock()
	return nil
}

// IsPrototypeOf reports whether o appears in x's prototype chain.
func (o *Object) IsPrototypeOf(x *Object) bool {
	if x == nil {
		return false
	}
	for p := x.Prototype(); p != nil; p = p.Prototype() {
		if p == o {
			return true
		}
	}
	return false
}

// InstanceOf reports whether the behavior object of t is in o's chain.
// Pointer types are unwrapped to their named element type.
func (o *Object) InstanceOf(t reflect.Type) bool {
	nt, err := uref.Normalize(t)
	if err != nil {
		return false
	}
	for p := o.Prototype(); p != nil; p = p.Prototype() {
		if p.typ == nt {
			return true
		}
	}
	return false
}

// Constructor returns the type of the nearest behavior object in o's chain,
// starting with o itself, or nil.
func (o *Object) Constructor() reflect.Type {
	for p := o; p != nil; p = p.Prototype() {
		if p.typ != nil {
			return p.typ
		}
	}
	return nil
}

// own returns o's own descriptor for key together with o's prototype.
func (o *Object) own(key string) (Descriptor, *Object, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	d, ok := o.props[key]
	return d, o.proto, ok
}

// lookup finds key along the chain starting at o.
func (o *Object) lookup(key string) (Descriptor, *Object, bool) {
	for cur := o; cur != nil; {
		d, next, ok := cur.own(key)
		if ok {
			return d, cur, true
		}
		cur = next
	}
	return Descriptor{}, nil, false
}

// GetOwnProperty returns the descriptor of an own member.
func (o *Object) GetOwnProperty(key string) (Descriptor, bool) {
	d, _, ok := o.own(key)
	return d, ok
}

// HasOwn reports whether key is an own member of o.
func (o *Object) HasOwn(key string) bool {
	_, _, ok := o.own(key)
	return ok
}

// Has reports whether key resolves anywhere along o's chain.
func (o *Object) Has(key string) bool {
	_, _, ok := o.lookup(key)
	return ok
}

// Get resolves key along the chain. Accessors are called with this = o.
func (o *Object) Get(key string) (any, bool) {
	d, _, ok := o.lookup(key)
	if !ok {
		return nil, false
	}
	if d.IsAccessor() {
		if d.Getter == nil {
			return nil, true
		}
		return d.Getter(o), true
	}
	return d.Value, true
}

// Set assigns v to key the way plain assignment does: an own writable member
// is updated, an inherited setter is called with this = o, an inherited
// read-only member blocks the write, and otherwise a new own member is
// created on o.
func (o *Object) Set(key string, v any) error {
	d, _, ok := o.lookup(key)
	if ok {
		if d.IsAccessor() {
			if d.Setter == nil {
				return fmt.Errorf("%w: %q has no setter", ErrNotWritable, key)
			}
			d.Setter(o, v)
			return nil
		}
		if !d.Writable {
			return fmt.Errorf("%w: %q", ErrNotWritable, key)
		}
	}
	return o.assign(key, v)
}

// assign writes an own data member.
func (o *Object) assign(key string, v any) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if d, ok := o.props[key]; ok {
		if d.IsAccessor() || !d.Writable {
			return fmt.Errorf("%w: %q", ErrNotWritable, key)
		}
		d.Value = v
		o.props[key] = d
		return nil
	}
	o.put(key, Data(v))
	return nil
}

// Delete removes an own member. It reports false, leaving the member in
// place, when the member is not configurable. Missing keys report true.
func (o *Object) Delete(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	d, ok := o.props[key]
	if !ok {
		return true
	}
	if !d.Configurable {
		return false
	}
	delete(o.props, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
	return true
}

// DefineProperty defines or redefines an own member from d.
func (o *Object) DefineProperty(key string, d Descriptor) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w: %q", err, key)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if cur, ok := o.props[key]; ok && !compatible(cur, d) {
		return fmt.Errorf("%w: cannot redefine %q", ErrNotConfigurable, key)
	}
	o.put(key, d)
	return nil
}

// DefineProperties defines every member of props. Either all members are
// defined or, when one of them is rejected, none is.
func (o *Object) DefineProperties(props Properties) error {
	keys := sortedKeys(props)
	for _, k := range keys {
		if err := props[k].Validate(); err != nil {
			return fmt.Errorf("%w: %q", err, k)
		}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, k := range keys {
		if cur, ok := o.props[k]; ok && !compatible(cur, props[k]) {
			return fmt.Errorf("%w: cannot redefine %q", ErrNotConfigurable, k)
		}
	}
	for _, k := range keys {
		o.put(k, props[k])
	}
	return nil
}

// put stores d under key. Callers hold o.mu.
func (o *Object) put(key string, d Descriptor) {
	if _, ok := o.props[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.props[key] = d
}

// Keys returns o's own enumerable keys.
func (o *Object) Keys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	keys := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		if o.props[k].Enumerable {
			keys = append(keys, k)
		}
	}
	return orderKeys(keys)
}

// OwnKeys returns all of o's own keys, enumerable or not.
func (o *Object) OwnKeys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return orderKeys(slices.Clone(o.keys))
}

// EnumerableKeys returns the enumerable keys visible through o: own keys
// first, then inherited ones. A key is reported once, and a hidden own
// member hides an enumerable inherited one of the same name.
func (o *Object) EnumerableKeys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for cur := o; cur != nil; cur = cur.Prototype() {
		cur.mu.RLock()
		for _, k := range orderKeys(slices.Clone(cur.keys)) {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			if cur.props[k].Enumerable {
				keys = append(keys, k)
			}
		}
		cur.mu.RUnlock()
	}
	return keys
}

// Call invokes the member at key. Func members receive this = o and args;
// Method members take args[0] as the receiver.
func (o *Object) Call(key string, args ...any) ([]any, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not defined", ErrNotCallable, key)
	}
	switch fn := v.(type) {
	case Func:
		res, err := fn(o, args...)
		return []any{res}, err
	case func(*Object, ...any) (any, error):
		res, err := fn(o, args...)
		return []any{res}, err
	case *Method:
		if len(args) == 0 {
			return nil, ErrNoReceiver
		}
		return fn.Call(args[0], args[1:]...)
	}
	return nil, fmt.Errorf("%w: %q holds %T", ErrNotCallable, key, v)
}
