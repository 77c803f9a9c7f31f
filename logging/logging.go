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

// Package logging holds the structured logger used across rolex.
//
// The library logs nothing until a logger is installed with SetupLogger or
// SetLogger; components obtain scoped loggers with GetLogger.
package logging

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// base is the logger components derive from. Disabled by default.
var base atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	base.Store(&nop)
}

// SetupLogger installs a console logger writing to w at the level implied
// by verbosity: 0 warn, 1 info, 2 debug, 3+ trace. Debug and trace also
// record the caller.
func SetupLogger(verbosity int, w io.Writer) {
	var level zerolog.Level
	switch verbosity {
	case 0:
		level = zerolog.WarnLevel
	case 1:
		level = zerolog.InfoLevel
	case 2:
		level = zerolog.DebugLevel
	default:
		level = zerolog.TraceLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    true,
	}
	ctx := zerolog.New(console).Level(level).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	logger := ctx.Logger()
	base.Store(&logger)

	logger.Debug().Int("verbosity", verbosity).Msg("Logger initialized")
}

// SetLogger installs l as the base logger.
func SetLogger(l zerolog.Logger) {
	base.Store(&l)
}

// Disable silences all rolex logging.
func Disable() {
	SetLogger(zerolog.Nop())
}

// Logger returns the base logger.
func Logger() zerolog.Logger {
	return *base.Load()
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return base.Load().With().Str("component", name).Logger()
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Trace().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Trace().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
