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

package config

import (
	"dirpx.dev/rolex/apis"
)

const (
	// DefaultConfigurable represents the default for Configurable.
	// When true, members defined through a role may be overwritten later.
	DefaultConfigurable = true
	// DefaultEnumerable represents the default for Enumerable.
	// When true, delegates can be inspected for the members defined on them.
	DefaultEnumerable = true
)

// NewConfig constructs an apis.Config from the given options.
// Options that are not supplied keep their defaults; any explicit value,
// including false, is honored.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Configurable: DefaultConfigurable,
		Enumerable:   DefaultEnumerable,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithConfigurable sets the Configurable option.
func WithConfigurable(configurable bool) Option {
	return func(c *apis.Config) {
		c.Configurable = configurable
	}
}

// WithEnumerable sets the Enumerable option.
func WithEnumerable(enumerable bool) Option {
	return func(c *apis.Config) {
		c.Enumerable = enumerable
	}
}

// WithConfig replaces the whole configuration with cfg.
func WithConfig(cfg apis.Config) Option {
	return func(c *apis.Config) {
		*c = cfg
	}
}
