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
	"reflect"
	"runtime"
	"strconv"
	"sync"
	"testing"

	"dirpx.dev/rolex/apis"
	"dirpx.dev/rolex/builder"
	"dirpx.dev/rolex/config"
	"dirpx.dev/rolex/object"
	"dirpx.dev/rolex/prototype"
	"dirpx.dev/rolex/registry"
)

// Reset to a clean snapshot using the given builder.
// Pins are reset because we pass nil res/protos.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config) {
	tb.Helper()
	SetAll(&cfg, nil, nil, b)
}

// ---------------------- Test doubles (mocks) ----------------------

type mockResolver struct{ id string }

func (r *mockResolver) Members(reflect.Type) object.Properties {
	return object.Properties{"resolver": object.Data(r.id)}
}

type mockBuilder struct {
	mu            sync.Mutex
	resCounter    int
	protoCounter  int
	lastPrevCount int
	lastRes       apis.Resolver
}

func (b *mockBuilder) BuildResolver() apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resCounter++
	return &mockResolver{id: "res#" + strconv.Itoa(b.resCounter)}
}

func (b *mockBuilder) BuildPrototypes(res apis.Resolver, prev apis.Prototypes) apis.Prototypes {
	b.mu.Lock()
	b.protoCounter++
	b.lastRes = res
	b.lastPrevCount = -1
	if prev != nil {
		b.lastPrevCount = prev.Count()
	}
	b.mu.Unlock()
	return builder.New().BuildPrototypes(res, prev)
}

func (b *mockBuilder) BuildRegistry(roles *apis.Roles, cfg apis.Config, protos apis.Prototypes) (apis.Registry, error) {
	return builder.New().BuildRegistry(roles, cfg, protos)
}

type Walker struct{}

func (Walker) Walk() string { return "walking" }

type Swimmer struct{}

func (Swimmer) Swim() string { return "swimming" }

// ---------------------- Tests ----------------------

func TestBuild_DefaultsAndOrder(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig())

	roles := registry.NewRoles()
	roles.Set("walker", reflect.TypeOf(Walker{}))
	roles.Set("swimmer", reflect.TypeOf(Swimmer{}))

	reg, err := Build(roles)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := reg.Names(); len(got) != 2 || got[0] != "walker" || got[1] != "swimmer" {
		t.Fatalf("Names() = %v", got)
	}
	if reg.Config() != config.DefaultConfig() {
		t.Fatalf("Config() = %+v, want defaults", reg.Config())
	}

	w, s := object.New(), object.New()
	if err := reg.Apply(w, s); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !w.InstanceOf(reflect.TypeOf(Walker{})) || !s.InstanceOf(reflect.TypeOf(Swimmer{})) {
		t.Fatal("Apply linked the wrong behavior")
	}
	out, err := s.Call("Swim", Swimmer{})
	if err != nil || out[0] != "swimming" {
		t.Fatalf("Call(Swim) = (%v, %v)", out, err)
	}
}

func TestBuild_OptionsOverGlobalConfig(t *testing.T) {
	resetWithBuilder(t, builder.New(), apis.Config{Configurable: false, Enumerable: true})

	reg, err := Build(map[string]reflect.Type{"walker": reflect.TypeOf(Walker{})})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if reg.Config() != (apis.Config{Configurable: false, Enumerable: true}) {
		t.Fatalf("global config not used: %+v", reg.Config())
	}

	reg, err = Build(map[string]reflect.Type{"walker": reflect.TypeOf(Walker{})}, config.WithConfigurable(true), config.WithEnumerable(false))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if reg.Config() != (apis.Config{Configurable: true, Enumerable: false}) {
		t.Fatalf("options not applied: %+v", reg.Config())
	}
}

func TestBuild_Boundaries(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig())

	for _, in := range []any{nil, []int{1, 2}, "roles"} {
		if _, err := Build(in); !errors.Is(err, apis.ErrInvalidArgument) {
			t.Fatalf("Build(%#v): want ErrInvalidArgument, got %v", in, err)
		}
	}

	reg, err := Build(map[string]reflect.Type{})
	if err != nil {
		t.Fatalf("Build(empty): %v", err)
	}
	if err := reg.Apply(); err != nil {
		t.Fatalf("Apply() on empty registry: %v", err)
	}
	if err := reg.Apply(object.New()); !errors.Is(err, apis.ErrInvalidArgument) {
		t.Fatalf("Apply(x) on empty registry: want ErrInvalidArgument, got %v", err)
	}
}

func TestMustBuild_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("MustBuild(nil) did not panic")
		}
	}()
	MustBuild(nil)
}

func TestExtend_VisibleThroughEveryRegistry(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig())

	r1 := MustBuild(map[string]reflect.Type{"a": reflect.TypeOf(Walker{})})
	r2 := MustBuild(map[string]reflect.Type{"b": reflect.TypeOf(&Walker{})})

	p, q := object.New(), object.New()
	if err := r1.Apply(p); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := r2.Apply(q); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if err := Extend(reflect.TypeOf(Walker{}), object.Properties{"legs": object.Data(2)}); err != nil {
		t.Fatalf("Extend: %v", err)
	}
	for _, o := range []*object.Object{p, q} {
		if v, _ := o.Get("legs"); v != 2 {
			t.Fatalf("legs = %v, want 2", v)
		}
	}

	if err := Extend(reflect.TypeOf(Walker{}), nil); !errors.Is(err, apis.ErrInvalidArgument) {
		t.Fatalf("Extend(nil): want ErrInvalidArgument, got %v", err)
	}
	if err := Extend(reflect.TypeOf([]Walker{}), object.Properties{}); !errors.Is(err, prototype.ErrTypeNotNamed) {
		t.Fatalf("Extend([]Walker): want ErrTypeNotNamed, got %v", err)
	}
}

func TestSetConfig_AffectsOnlyNewRegistries(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig())

	before := MustBuild(map[string]reflect.Type{"a": reflect.TypeOf(Walker{})})
	SetConfig(apis.Config{Configurable: false, Enumerable: false})
	after := MustBuild(map[string]reflect.Type{"a": reflect.TypeOf(Walker{})})

	if before.Config() != config.DefaultConfig() {
		t.Fatalf("existing registry changed: %+v", before.Config())
	}
	if after.Config() != (apis.Config{}) {
		t.Fatalf("new registry ignored SetConfig: %+v", after.Config())
	}
	if Config() != (apis.Config{}) {
		t.Fatalf("Config() = %+v", Config())
	}
}

func TestLoadConfig(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig())
	t.Setenv("ROLEX_ENUMERABLE", "false")

	if err := LoadConfig(""); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if Config() != (apis.Config{Configurable: true, Enumerable: false}) {
		t.Fatalf("Config() = %+v", Config())
	}

	t.Setenv("ROLEX_ENUMERABLE", "maybe")
	if err := LoadConfig(""); !errors.Is(err, apis.ErrInvalidArgument) {
		t.Fatalf("LoadConfig(bad env): want ErrInvalidArgument, got %v", err)
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	b1 := &mockBuilder{}
	resetWithBuilder(t, b1, config.DefaultConfig())

	proto, err := PrototypeOf(reflect.TypeOf(Walker{}))
	if err != nil {
		t.Fatalf("PrototypeOf: %v", err)
	}
	res1, protos1 := Resolver(), Prototypes()

	b2 := &mockBuilder{}
	SetBuilder(b2)

	if Builder() != b2 {
		t.Fatal("builder not replaced")
	}
	if Resolver() == res1 {
		t.Fatal("resolver was not rebuilt on SetBuilder (unpinned)")
	}
	if Prototypes() == protos1 {
		t.Fatal("prototypes were not rebuilt on SetBuilder (unpinned)")
	}
	if b2.lastPrevCount != 1 {
		t.Fatalf("builder saw %d previous prototypes, want 1", b2.lastPrevCount)
	}
	if got, _ := PrototypeOf(reflect.TypeOf(Walker{})); got != proto {
		t.Fatal("behavior object identity lost across SetBuilder")
	}

	// Pin both layers: a new builder must not touch them.
	pinnedRes := &mockResolver{id: "pinned"}
	SetResolver(pinnedRes)
	pinnedProtos := prototype.New(pinnedRes)
	SetPrototypes(pinnedProtos)
	if !IsResolverPinned() || !IsPrototypesPinned() {
		t.Fatal("explicit Set* did not pin")
	}

	SetBuilder(&mockBuilder{})
	if Resolver() != pinnedRes || Prototypes() != pinnedProtos {
		t.Fatal("pinned layers were rebuilt")
	}

	SetBuilder(nil)
	if Resolver() != pinnedRes {
		t.Fatal("SetBuilder(nil) must be a no-op")
	}
}

func TestSetResolver_RebuildsUnpinnedPrototypes(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	old, _ := PrototypeOf(reflect.TypeOf(Walker{}))

	res := &mockResolver{id: "custom"}
	SetResolver(res)

	if Resolver() != res || !IsResolverPinned() {
		t.Fatal("resolver not set and pinned")
	}
	b.mu.Lock()
	lastRes := b.lastRes
	b.mu.Unlock()
	if lastRes != res {
		t.Fatal("prototypes not rebuilt over the new resolver")
	}

	if got, _ := PrototypeOf(reflect.TypeOf(Walker{})); got != old {
		t.Fatal("existing behavior object not carried over")
	}
	fresh, _ := PrototypeOf(reflect.TypeOf(Swimmer{}))
	if v, _ := fresh.Get("resolver"); v != "custom" {
		t.Fatalf("new behavior object not populated by the new resolver: %v", v)
	}

	SetResolver(nil)
	if Resolver() != res {
		t.Fatal("SetResolver(nil) must be a no-op")
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, config.DefaultConfig())

	SetResolver(&mockResolver{id: "pinned"})
	SetPrototypes(prototype.New(nil))
	pinnedRes, pinnedProtos := Resolver(), Prototypes()

	UnpinResolver()
	UnpinPrototypes()
	if IsResolverPinned() || IsPrototypesPinned() {
		t.Fatal("unpin did not clear the flags")
	}

	SetBuilder(&mockBuilder{})
	if Resolver() == pinnedRes || Prototypes() == pinnedProtos {
		t.Fatal("unpinned layers were not rebuilt")
	}
}

func TestSetAll_PinsExplicitLayers(t *testing.T) {
	res := &mockResolver{id: "explicit"}
	protos := prototype.New(res)
	cfg := apis.Config{Configurable: true}
	SetAll(&cfg, res, protos, builder.New())

	if Resolver() != res || Prototypes() != protos || Config() != cfg {
		t.Fatal("SetAll did not install the given layers")
	}
	if !IsResolverPinned() || !IsPrototypesPinned() {
		t.Fatal("SetAll did not pin explicit layers")
	}

	resetWithBuilder(t, builder.New(), config.DefaultConfig())
	if IsResolverPinned() || IsPrototypesPinned() {
		t.Fatal("SetAll with nil layers must unpin")
	}
	if Prototypes().Count() != 0 {
		t.Fatal("SetAll must start from an empty prototype table")
	}
}

func TestBuild_Concurrent_With_SetBuilder(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig())

	workers := runtime.GOMAXPROCS(0) * 2
	var wg sync.WaitGroup
	wg.Add(workers + 1)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			SetBuilder(builder.New())
			SetConfig(config.NewConfig(config.WithEnumerable(i%2 == 0)))
		}
	}()

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				reg, err := Build(map[string]reflect.Type{"walker": reflect.TypeOf(Walker{})})
				if err != nil {
					t.Errorf("Build: %v", err)
					return
				}
				o := object.New()
				if err := reg.Apply(o); err != nil {
					t.Errorf("Apply: %v", err)
					return
				}
				if !o.InstanceOf(reflect.TypeOf(Walker{})) {
					t.Error("object lost its behavior")
					return
				}
			}
		}()
	}
	wg.Wait()

	resetWithBuilder(t, builder.New(), config.DefaultConfig())
}
