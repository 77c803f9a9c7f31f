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

// Config carries the descriptor defaults of a role registry. It is resolved
// once when a registry is built and passed by value afterwards.
type Config struct {
	// Configurable is forced onto every member defined through a role.
	// When true, members may later be redefined or deleted from the delegate.
	Configurable bool

	// Enumerable is forced onto every member defined through a role.
	// When true, members are listed when the delegate is inspected.
	Enumerable bool
}
