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
	"fmt"
	"reflect"
)

// Func is a member callable through Object.Call with this bound to the
// object the call was made on.
type Func func(this *Object, args ...any) (any, error)

// Method is a Go method exposed as a member of a type's behavior object.
// It is unbound: the receiver is supplied at call time.
type Method struct {
	// Name is the Go method name.
	Name string
	// Receiver is the type that owns the method.
	Receiver reflect.Type
	// Type is the method signature without the receiver.
	Type reflect.Type
}

// NewMethod describes method m of recv.
func NewMethod(recv reflect.Type, m reflect.Method) *Method {
	sig := m.Type
	if recv.Kind() != reflect.Interface {
		// Method expressions carry the receiver as first input; drop it.
		in := make([]reflect.Type, 0, sig.NumIn()-1)
		for i := 1; i < sig.NumIn(); i++ {
			in = append(in, sig.In(i))
		}
		out := make([]reflect.Type, 0, sig.NumOut())
		for i := 0; i < sig.NumOut(); i++ {
			out = append(out, sig.Out(i))
		}
		sig = reflect.FuncOf(in, out, sig.IsVariadic())
	}
	return &Method{Name: m.Name, Receiver: recv, Type: sig}
}

// String returns "Receiver.Name".
func (m *Method) String() string {
	return m.Receiver.String() + "." + m.Name
}

// Call invokes the method on recv with args and returns its results.
func (m *Method) Call(recv any, args ...any) ([]any, error) {
	if recv == nil {
		return nil, ErrNoReceiver
	}
	fn := reflect.ValueOf(recv).MethodByName(m.Name)
	if !fn.IsValid() {
		return nil, fmt.Errorf("%w: %T has no method %s", ErrNotCallable, recv, m.Name)
	}
	ft := fn.Type()
	if (!ft.IsVariadic() && len(args) != ft.NumIn()) || (ft.IsVariadic() && len(args) < ft.NumIn()-1) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrNotCallable, m, ft.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		want := paramType(ft, i)
		if a == nil {
			switch want.Kind() {
			case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
				in[i] = reflect.Zero(want)
				continue
			}
			return nil, fmt.Errorf("%w: %s argument %d cannot be nil", ErrNotCallable, m, i)
		}
		v := reflect.ValueOf(a)
		if !v.Type().AssignableTo(want) {
			return nil, fmt.Errorf("%w: %s argument %d: %s is not assignable to %s", ErrNotCallable, m, i, v.Type(), want)
		}
		in[i] = v
	}
	out := fn.Call(in)
	res := make([]any, len(out))
	for i, v := range out {
		res[i] = v.Interface()
	}
	return res, nil
}

// paramType returns the type argument i must be assignable to.
func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}
