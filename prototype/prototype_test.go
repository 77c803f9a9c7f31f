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

package prototype_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/rolex/apis"
	"dirpx.dev/rolex/object"
	"dirpx.dev/rolex/prototype"
	"dirpx.dev/rolex/resolver"
	"dirpx.dev/rolex/strategy"
)

type Dog struct{ name string }

func (d *Dog) Bark() string { return d.name + ": woof" }

type Broken struct{}

func (*Broken) Behavior() object.Properties {
	return object.Properties{"bad": {Value: 1, Getter: func(*object.Object) any { return 2 }}}
}

func newTable() apis.Prototypes {
	return prototype.New(resolver.New(strategy.NewProviderStrategy(), strategy.NewReflectStrategy()))
}

func TestPrototype_MemoizedAndNormalized(t *testing.T) {
	protos := newTable()

	p1, err := protos.Prototype(reflect.TypeOf(Dog{}))
	if err != nil {
		t.Fatalf("Prototype(Dog): unexpected error: %v", err)
	}
	// pointer -> same named type -> same object
	p2, err := protos.Prototype(reflect.TypeOf(&Dog{}))
	if err != nil {
		t.Fatalf("Prototype(*Dog): unexpected error: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("Prototype(Dog) and Prototype(*Dog) differ: %s vs %s", p1, p2)
	}
	if p1.Type() != reflect.TypeOf(Dog{}) {
		t.Fatalf("Type() = %v, want Dog", p1.Type())
	}
	if protos.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", protos.Count())
	}
}

func TestPrototype_MembersFromResolver(t *testing.T) {
	protos := newTable()
	p, err := protos.Prototype(reflect.TypeOf(Dog{}))
	if err != nil {
		t.Fatalf("Prototype: %v", err)
	}

	if !p.HasOwn("Bark") {
		t.Fatal("behavior object lacks Bark")
	}
	if len(p.Keys()) != 0 {
		t.Fatalf("method members must be hidden, Keys() = %v", p.Keys())
	}

	inst := object.NewWithPrototype(p)
	out, err := inst.Call("Bark", &Dog{name: "rex"})
	if err != nil {
		t.Fatalf("Call(Bark): %v", err)
	}
	if len(out) != 1 || out[0] != "rex: woof" {
		t.Fatalf("Call(Bark) = %v", out)
	}
}

func TestPrototype_NilResolver(t *testing.T) {
	p, err := prototype.New(nil).Prototype(reflect.TypeOf(Dog{}))
	if err != nil {
		t.Fatalf("Prototype: %v", err)
	}
	if len(p.OwnKeys()) != 0 {
		t.Fatalf("OwnKeys() = %v, want none", p.OwnKeys())
	}
}

func TestPrototype_Errors(t *testing.T) {
	protos := newTable()

	if _, err := protos.Prototype(nil); !errors.Is(err, prototype.ErrNilType) {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if _, err := protos.Prototype(reflect.TypeOf([]Dog{})); !errors.Is(err, prototype.ErrTypeNotNamed) {
		t.Fatalf("slice type: want ErrTypeNotNamed, got %v", err)
	}
	if _, err := protos.Prototype(reflect.TypeOf(Broken{})); !errors.Is(err, object.ErrInvalidDescriptor) {
		t.Fatalf("malformed behavior: want ErrInvalidDescriptor, got %v", err)
	}
	if protos.Count() != 0 {
		t.Fatalf("failed builds must not be stored, Count() = %d", protos.Count())
	}
}

func TestAdopt(t *testing.T) {
	protos := newTable()
	typ := reflect.TypeOf(Dog{})

	own := object.NewBehavior(typ)
	if err := protos.Adopt(reflect.TypeOf(&Dog{}), own); err != nil {
		t.Fatalf("Adopt: unexpected error: %v", err)
	}
	if got, _ := protos.Prototype(typ); got != own {
		t.Fatal("Prototype did not return the adopted object")
	}

	// second adoption is a no-op
	if err := protos.Adopt(typ, object.NewBehavior(typ)); err != nil {
		t.Fatalf("Adopt again: unexpected error: %v", err)
	}
	if got, _ := protos.Lookup(typ); got != own {
		t.Fatal("existing behavior object was replaced")
	}

	if err := protos.Adopt(typ, nil); !errors.Is(err, apis.ErrInvalidArgument) {
		t.Fatalf("nil proto: want ErrInvalidArgument, got %v", err)
	}
	if err := protos.Adopt(reflect.TypeOf(Broken{}), own); !errors.Is(err, apis.ErrInvalidArgument) {
		t.Fatalf("mismatched proto: want ErrInvalidArgument, got %v", err)
	}
}

func TestEntriesAndReset(t *testing.T) {
	protos := newTable()

	_, _ = protos.Prototype(reflect.TypeOf(&Dog{}))
	_, _ = protos.Prototype(reflect.TypeOf(T1{}))

	entries := protos.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries len = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Prototype.Type() != e.Type {
			t.Fatalf("entry %v holds behavior of %v", e.Type, e.Prototype.Type())
		}
	}

	old, _ := protos.Lookup(reflect.TypeOf(Dog{}))
	protos.Reset()

	if protos.Count() != 0 {
		t.Fatalf("after Reset, Count() = %d, want 0", protos.Count())
	}
	if p, ok := protos.Lookup(reflect.TypeOf(Dog{})); ok || p != nil {
		t.Fatalf("Lookup after Reset: got (%v,%v), want (nil,false)", p, ok)
	}
	fresh, _ := protos.Prototype(reflect.TypeOf(Dog{}))
	if fresh == old {
		t.Fatal("Reset did not drop the behavior object")
	}
}

func TestLookupNilAndUnknown(t *testing.T) {
	protos := newTable()

	if p, ok := protos.Lookup(nil); ok || p != nil {
		t.Fatalf("Lookup(nil): got (%v,%v), want (nil,false)", p, ok)
	}
	if p, ok := protos.Lookup(reflect.TypeOf(&Dog{})); ok || p != nil {
		t.Fatalf("Lookup(unknown): got (%v,%v), want (nil,false)", p, ok)
	}
}
