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

// Package directive implements the tagged-variant directive model for
// module declarations: requires-module, requires-service,
// provides-module, provides-service, permits, exports, entrypoint, and
// view. It is a closed sum type dispatched with a type switch rather
// than a visitor over a class hierarchy.
package directive

import "go.rgst.io/modcore/pkg/names"

// Flag is a modifier on a requires directive.
type Flag string

const (
	// Reexport re-exports a required module's exports to this module's
	// own consumers.
	Reexport Flag = "REEXPORT"
	// Optional downgrades an unresolved requirement to a silently
	// omitted edge instead of a resolution failure.
	Optional Flag = "OPTIONAL"
	// Local restricts visibility of the requirement to this module.
	Local Flag = "LOCAL"
	// Synthesized marks a requirement the visitor added automatically
	// (the implicit base-module dependency).
	Synthesized Flag = "SYNTHESIZED"
	// Synthetic marks a requirement that was not written in source but
	// is not the synthesized base requirement either.
	Synthetic Flag = "SYNTHETIC"
)

// FlagSet is a small set of Flag values.
type FlagSet map[Flag]struct{}

// NewFlagSet builds a FlagSet from the given flags.
func NewFlagSet(flags ...Flag) FlagSet {
	s := make(FlagSet, len(flags))
	for _, f := range flags {
		s[f] = struct{}{}
	}
	return s
}

// Has reports whether the set contains f.
func (s FlagSet) Has(f Flag) bool {
	_, ok := s[f]
	return ok
}

// Kind identifies which directive variant a Directive is.
type Kind int

const (
	KindRequiresModule Kind = iota
	KindRequiresService
	KindProvidesModule
	KindProvidesService
	KindPermits
	KindExports
	KindEntrypoint
	KindView
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRequiresModule:
		return "requires-module"
	case KindRequiresService:
		return "requires-service"
	case KindProvidesModule:
		return "provides-module"
	case KindProvidesService:
		return "provides-service"
	case KindPermits:
		return "permits"
	case KindExports:
		return "exports"
	case KindEntrypoint:
		return "entrypoint"
	case KindView:
		return "view"
	default:
		return "unknown"
	}
}

// Directive is the sum type of all module-declaration directives. Use
// a type switch on the concrete variant below; Kind() is provided for
// cases that only need the tag (e.g. duplicate detection keyed on
// (Kind, target name)).
type Directive interface {
	// Kind returns which variant this directive is.
	Kind() Kind

	// Target returns the name that duplicate-detection should key on
	// (spec.md invariant 2: at most one directive per (Kind, target)).
	Target() string

	directiveMarker()
}

// RequiresModule is a `requires module Q` directive.
type RequiresModule struct {
	Query names.ModuleQuery
	Flags FlagSet
}

func (RequiresModule) Kind() Kind           { return KindRequiresModule }
func (d RequiresModule) Target() string     { return d.Query.Name.String() }
func (RequiresModule) directiveMarker()     {}

// RequiresService is a `requires service S` directive.
type RequiresService struct {
	Service names.Name
	Flags   FlagSet
}

func (RequiresService) Kind() Kind       { return KindRequiresService }
func (d RequiresService) Target() string { return d.Service.String() }
func (RequiresService) directiveMarker() {}

// ProvidesModule is a `provides module X[@V]` directive: an alias for
// this module under another (name, version).
type ProvidesModule struct {
	Alias names.ModuleId
}

func (ProvidesModule) Kind() Kind       { return KindProvidesModule }
func (d ProvidesModule) Target() string { return d.Alias.Name.String() }
func (ProvidesModule) directiveMarker() {}

// ProvidesService is a `provides service S with Impl` directive.
type ProvidesService struct {
	Service names.Name
	Impl    names.Name
}

func (ProvidesService) Kind() Kind       { return KindProvidesService }
func (d ProvidesService) Target() string { return d.Service.String() }
func (ProvidesService) directiveMarker() {}

// Permits is a `permits M` directive.
type Permits struct {
	ModuleName names.Name
}

func (Permits) Kind() Kind       { return KindPermits }
func (d Permits) Target() string { return d.ModuleName.String() }
func (Permits) directiveMarker() {}

// Exports is an `exports P` directive.
type Exports struct {
	PackageName names.Name
}

func (Exports) Kind() Kind       { return KindExports }
func (d Exports) Target() string { return d.PackageName.String() }
func (Exports) directiveMarker() {}

// Entrypoint is an `entrypoint C` directive. Spec.md allows at most
// one per directive scope; Target is constant since there is no
// per-target disambiguation for entrypoints.
type Entrypoint struct {
	ClassName names.Name
}

func (Entrypoint) Kind() Kind       { return KindEntrypoint }
func (Entrypoint) Target() string   { return "" }
func (Entrypoint) directiveMarker() {}

// View is a `view V { ... }` directive: a named sub-declaration that
// may alias the module and expose a subset of its services/exports,
// but may not itself declare requires and may not nest.
type View struct {
	Name       names.Name
	Directives []Directive
}

func (View) Kind() Kind       { return KindView }
func (d View) Target() string { return d.Name.String() }
func (View) directiveMarker() {}
