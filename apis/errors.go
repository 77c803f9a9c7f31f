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
	"errors"
	"fmt"
)

// ErrInvalidArgument is the single error kind raised by input validation.
// Match it with errors.Is.
var ErrInvalidArgument = errors.New("rolex: invalid argument")

// ArgumentError describes a rejected argument.
type ArgumentError struct {
	// Op is the operation that rejected the argument (e.g. "build", "apply").
	Op string
	// Arg names the argument.
	Arg string
	// Reason says what was wrong with it.
	Reason string
}

// NewArgumentError returns an ArgumentError with a formatted reason.
func NewArgumentError(op, arg, format string, args ...any) *ArgumentError {
	return &ArgumentError{Op: op, Arg: arg, Reason: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("rolex(%s): argument `%s` %s", e.Op, e.Arg, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
