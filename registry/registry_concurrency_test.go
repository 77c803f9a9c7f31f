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

package registry_test

import (
	"runtime"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rolex/config"
	"dirpx.dev/rolex/object"
	"dirpx.dev/rolex/registry"
)

// TestConcurrentApplyAndDefine verifies that Apply, member definition and
// delegated lookups are race-free under concurrent use.
func TestConcurrentApplyAndDefine(t *testing.T) {
	reg, err := registry.New(roles("A", TypeA{}, "B", TypeB{}), config.DefaultConfig(), newProtos())
	require.NoError(t, err)
	ra, _ := reg.Role("A")
	rb, _ := reg.Role("B")

	workers := runtime.GOMAXPROCS(0) * 4
	wg := sync.WaitGroup{}

	// Writers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				name := "m" + strconv.Itoa(i%16)
				if !assert.NoError(t, ra.DefineProperty(name, object.Descriptor{Value: id}), name) {
					return
				}
			}
		}(w)
	}

	// Appliers and readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				a, b := object.New(), object.New()
				if !assert.NoError(t, reg.Apply(a, b)) {
					return
				}
				if !assert.Same(t, ra.Delegate(), a.Prototype()) || !assert.Same(t, rb.Delegate(), b.Prototype()) {
					return
				}
				_, _ = a.Get("m" + strconv.Itoa(i%16))
				_ = a.EnumerableKeys()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, ra.Delegate().OwnKeys(), 16)
}
