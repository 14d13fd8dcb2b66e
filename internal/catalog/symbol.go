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

// Package catalog implements the module symbol and the two-level
// name/version catalog that indexes them, with alias registration from
// view directives and version-query resolution.
package catalog

import (
	"strings"

	"go.rgst.io/modcore/internal/location"
	"go.rgst.io/modcore/pkg/directive"
	"go.rgst.io/modcore/pkg/names"
)

// Completer reads module metadata (source or compiled) for a symbol's
// location and attaches the resulting name, version, and directives.
// It is supplied by the driver, which knows how to reach the syntax
// parser and the class reader; the catalog only calls it.
type Completer func(sym *ModuleSymbol) error

// ModuleSymbol is the unique per-location representation of a module:
// its identity, its frozen directive list, and its nested views.
type ModuleSymbol struct {
	Name       names.Name
	Version    names.Version
	Directives []directive.Directive
	SourceFile string
	Location   location.Location

	frozen    bool
	completer Completer
}

// Unnamed reports whether the symbol represents the unnamed module
// (neither a source nor compiled module-info was found for its
// location).
func (s *ModuleSymbol) Unnamed() bool {
	return s.Name.IsEmpty()
}

// Frozen reports whether the symbol's directive list has been frozen.
func (s *ModuleSymbol) Frozen() bool { return s.frozen }

// Freeze locks the symbol's directive list, per spec.md section 4.1
// step 5. Freezing is idempotent.
func (s *ModuleSymbol) Freeze(directives []directive.Directive) {
	if s.frozen {
		return
	}
	s.Directives = directives
	s.frozen = true
}

// IsPlatform reports whether s is a platform module (spec.md glossary):
// its own name carries the platform prefix, or one of the aliases it
// provides through a view does.
func (s *ModuleSymbol) IsPlatform() bool {
	if strings.HasPrefix(s.Name.String(), PlatformPrefix) {
		return true
	}
	for _, v := range s.Views() {
		for _, d := range v.Directives {
			if pm, ok := d.(directive.ProvidesModule); ok && strings.HasPrefix(pm.Alias.Name.String(), PlatformPrefix) {
				return true
			}
		}
	}
	return false
}

// Views returns the View directives declared at the top level of the
// symbol's directive list.
func (s *ModuleSymbol) Views() []*directive.View {
	var out []*directive.View
	for _, d := range s.Directives {
		if v, ok := d.(directive.View); ok {
			vv := v
			out = append(out, &vv)
		}
	}
	return out
}
