// Copyright (C) 2025 modcore contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the resolver's CLI/environment configuration:
// the module path list, the disable-modules and use-builtin-strategy
// switches, an optional out-of-process strategy path, and the
// MODULES_DEBUG category list (spec.md section 7).
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"go.rgst.io/modcore/internal/diag"
)

// debugEnvVar is the environment variable that enables category-based
// debug tracing in internal/diag.
const debugEnvVar = "MODULES_DEBUG"

// Config is the resolver's configuration, whether it came from CLI
// flags, a manifest file on disk, or the environment.
type Config struct {
	// ModulePath is the ordered list of directories searched for
	// modules, mirroring javac's --module-path.
	ModulePath []string `yaml:"modulePath,omitempty"`

	// DisableModules globally disables module processing; every module
	// declaration is rejected with module.decl.not.permitted.
	DisableModules bool `yaml:"disableModules,omitempty"`

	// UseBuiltinStrategy forces the built-in "zero" resolver strategy
	// even if StrategyPath is also set.
	UseBuiltinStrategy bool `yaml:"useBuiltinStrategy,omitempty"`

	// StrategyPath is the path to an out-of-process resolver strategy
	// plugin executable.
	StrategyPath string `yaml:"strategyPath,omitempty"`
}

// Load reads a manifest from path, if non-empty. It does not read the
// environment; MODULES_DEBUG is parsed separately by DebugCategories.
// A missing path is not an error: an empty Config is returned so CLI
// flags remain the sole source of configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, nil
			}
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	return cfg, nil
}

// DebugCategories returns the diag.Category list requested by the
// MODULES_DEBUG environment variable, a comma-separated list such as
// "resolve,location" (or "all").
func DebugCategories() []diag.Category {
	raw := os.Getenv(debugEnvVar)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	cats := make([]diag.Category, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cats = append(cats, diag.Category(p))
		}
	}
	return cats
}
