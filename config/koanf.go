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
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cast"

	"dirpx.dev/rolex/apis"
)

const (
	// KeyConfigurable is the configuration key of the Configurable default.
	KeyConfigurable = "configurable"
	// KeyEnumerable is the configuration key of the Enumerable default.
	KeyEnumerable = "enumerable"
	// EnvPrefix prefixes environment overrides (ROLEX_CONFIGURABLE -> configurable).
	EnvPrefix = "ROLEX_"
)

// FromMap resolves a configuration from a loosely typed option map.
// Missing keys, nil values and empty strings keep their defaults; every other value must be
// coercible to a boolean ("false" and 0 count as an explicit false).
func FromMap(m map[string]any) (apis.Config, error) {
	if len(m) == 0 {
		return DefaultConfig(), nil
	}
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return DefaultConfig(), fmt.Errorf("rolex(config): failed to load options: %w", err)
	}
	return fromKoanf(k)
}

// Load resolves a configuration from defaults, then the YAML file at path
// (skipped when path is empty), then ROLEX_* environment variables.
func Load(path string) (apis.Config, error) {
	k := koanf.New(".")

	// 1. Load from file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return DefaultConfig(), fmt.Errorf("rolex(config): failed to load %s: %w", path, err)
		}
	}

	// 2. Load from ENV (ROLEX_ENUMERABLE -> enumerable)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return DefaultConfig(), fmt.Errorf("rolex(config): failed to load env vars: %w", err)
	}

	return fromKoanf(k)
}

// fromKoanf overlays the keys present in k onto the defaults.
func fromKoanf(k *koanf.Koanf) (apis.Config, error) {
	cfg := DefaultConfig()
	fields := []struct {
		key string
		dst *bool
	}{
		{KeyConfigurable, &cfg.Configurable},
		{KeyEnumerable, &cfg.Enumerable},
	}
	for _, f := range fields {
		raw := k.Get(f.key)
		if raw == nil || raw == "" {
			continue
		}
		v, err := cast.ToBoolE(raw)
		if err != nil {
			return DefaultConfig(), apis.NewArgumentError("config", f.key, "must be a boolean: %v", err)
		}
		*f.dst = v
	}
	return cfg, nil
}
