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

// Package object implements the dynamic objects roles delegate through.
//
// An Object owns a set of members, each described by a Descriptor, and a
// prototype link. Reads that miss the object's own members continue along
// the prototype chain, so members added to a shared prototype become visible
// to every object linked to it without copying:
//
//	shared := object.New()
//	a := object.NewWithPrototype(shared)
//	_ = shared.DefineProperty("greeting", object.Descriptor{Value: "hi", Enumerable: true})
//	v, _ := a.Get("greeting") // "hi"
//
// Descriptors follow the usual attribute rules: a member that is not
// configurable can neither be deleted nor redefined incompatibly, a member
// that is not writable rejects assignment, and only enumerable members are
// listed by Keys. Accessor members call their Getter and Setter with the
// object the access started from.
//
// Behavior objects (NewBehavior) additionally carry the Go type they
// describe; InstanceOf and Constructor consult them.
package object
