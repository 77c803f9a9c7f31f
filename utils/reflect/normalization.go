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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"strings"
	"sync"
)

// MaxUnwrap limits how many pointer levels Normalize strips.
const MaxUnwrap = 8

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrTypeNotNamed indicates that the provided type (after unwrapping
	// pointers) is not a named type (e.g., anonymous struct, func, []T).
	ErrTypeNotNamed = errors.New("reflect: type is not named")
)

// Normalize strips pointer levels from t and returns the named type
// underneath, so that T and *T share one behavior object. Unnamed types
// (anonymous structs, slices, maps, funcs) are rejected.
func Normalize(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	for i := 0; i < MaxUnwrap && t.Kind() == reflect.Pointer && t.Name() == ""; i++ {
		t = t.Elem()
	}
	if t.Name() == "" {
		return nil, ErrTypeNotNamed
	}
	return t, nil
}

// typeNameCache caches TypeName results by type.
var typeNameCache sync.Map // key: reflect.Type, val: string

// TypeName returns a stable "pkg.Type" label for t (generic instantiation
// parameters stripped, builtins unqualified), or "" if t cannot be
// normalized.
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if v, ok := typeNameCache.Load(t); ok {
		return v.(string)
	}
	base, err := Normalize(t)
	if err != nil {
		typeNameCache.Store(t, "")
		return ""
	}
	name := stripTypeParams(base.Name())
	if p := base.PkgPath(); p != "" {
		name = path.Base(p) + "." + name
	}
	typeNameCache.Store(t, name)
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
