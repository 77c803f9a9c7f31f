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

package apis

import (
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Roles maps role names to source types. Insertion order is significant:
// it fixes the position each role takes in Registry.Apply.
type Roles = orderedmap.OrderedMap[string, reflect.Type]

// NewRoles returns an empty Roles map.
func NewRoles() *Roles {
	return orderedmap.New[string, reflect.Type]()
}
