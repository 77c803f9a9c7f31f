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

// Getter computes the value of an accessor member. this is the object the
// lookup started from, not the object that owns the accessor.
type Getter func(this *Object) any

// Setter receives assignments to an accessor member. this is the object the
// assignment targeted.
type Setter func(this *Object, v any)

// Descriptor describes a single member of an Object.
//
// A descriptor is an accessor descriptor when Getter or Setter is set and a
// data descriptor otherwise. Attributes left at their zero value are false,
// so a bare Descriptor{Value: v} yields a read-only, hidden, permanent member.
type Descriptor struct {
	// Value is the member value of a data descriptor.
	Value any
	// Getter is called on reads of an accessor member.
	Getter Getter
	// Setter is called on assignments to an accessor member.
	Setter Setter
	// Writable allows assignment to a data member.
	Writable bool
	// Enumerable makes the member visible to Keys and EnumerableKeys.
	Enumerable bool
	// Configurable allows the member to be deleted or redefined.
	Configurable bool
}

// Properties maps member keys to descriptors for batch definition.
type Properties map[string]Descriptor

// IsAccessor reports whether d describes an accessor member.
func (d Descriptor) IsAccessor() bool {
	return d.Getter != nil || d.Setter != nil
}

// Validate rejects descriptors mixing accessor and data attributes.
func (d Descriptor) Validate() error {
	if d.IsAccessor() && (d.Value != nil || d.Writable) {
		return ErrInvalidDescriptor
	}
	return nil
}

// WithAttributes returns a copy of d with Configurable and Enumerable
// replaced. The receiver is left untouched.
func (d Descriptor) WithAttributes(configurable, enumerable bool) Descriptor {
	d.Configurable = configurable
	d.Enumerable = enumerable
	return d
}

// Data returns a writable, enumerable, configurable data descriptor, the
// shape produced by plain assignment.
func Data(v any) Descriptor {
	return Descriptor{Value: v, Writable: true, Enumerable: true, Configurable: true}
}

// compatible reports whether next may replace cur under the redefinition
// rules for a non-configurable member.
func compatible(cur, next Descriptor) bool {
	if cur.Configurable {
		return true
	}
	if next.Configurable || next.Enumerable != cur.Enumerable {
		return false
	}
	if cur.IsAccessor() || next.IsAccessor() {
		// Accessor functions cannot be compared; a permanent accessor is frozen.
		return false
	}
	if cur.Writable {
		return true
	}
	return !next.Writable && sameValue(cur.Value, next.Value)
}
