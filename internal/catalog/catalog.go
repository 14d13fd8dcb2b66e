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

package catalog

import (
	"github.com/hashicorp/go-multierror"

	"go.rgst.io/modcore/internal/diag"
	"go.rgst.io/modcore/internal/location"
	"go.rgst.io/modcore/pkg/directive"
	"go.rgst.io/modcore/pkg/names"
)

// nullVersionKey is the distinguished sentinel a null (unversioned)
// Version is stored under, so the name->version index never needs a
// null-keyed map entry.
const nullVersionKey = "\x00null"

// BaseModuleName and LegacyPlatformAlias are the platform-reserved
// names registered by RegisterPlatformDefaults.
var (
	BaseModuleName      = names.Intern("modcore.base")
	LegacyPlatformAlias = names.Intern("modcore.base.legacy")
)

// PlatformPrefix is the well-known name prefix reserved for platform
// modules (spec.md glossary: "Platform module: a module whose name is
// reserved by the platform ... or that aliases such a name").
const PlatformPrefix = "modcore."

// Catalog is the two-level name -> version -> symbol index described
// in spec.md section 4.2, plus a by-location index enforcing
// invariant 1 (at most one symbol per search-root location).
type Catalog struct {
	log *diag.Log

	byLocation map[string]*ModuleSymbol
	byName     map[names.Name]map[string]*ModuleSymbol
}

// New returns an empty Catalog that reports diagnostics through log.
func New(log *diag.Log) *Catalog {
	return &Catalog{
		log:        log,
		byLocation: make(map[string]*ModuleSymbol),
		byName:     make(map[names.Name]map[string]*ModuleSymbol),
	}
}

// Enter returns the unique symbol for loc, creating an empty one with
// a deferred completer if this is the first time loc is seen.
func (c *Catalog) Enter(loc location.Location, completer Completer) *ModuleSymbol {
	key := loc.Name()
	if sym, ok := c.byLocation[key]; ok {
		return sym
	}
	sym := &ModuleSymbol{Location: loc, completer: completer}
	c.byLocation[key] = sym
	return sym
}

// Lookup returns the symbol already entered for loc, if any.
func (c *Catalog) Lookup(loc location.Location) (*ModuleSymbol, bool) {
	sym, ok := c.byLocation[loc.Name()]
	return sym, ok
}

// Complete runs sym's completer at most once, and only if the symbol
// has no name yet. Per spec.md section 4.2, a symbol for which neither
// a source nor a compiled module-info exists becomes the unnamed module
// (Name left empty) rather than erroring.
func (c *Catalog) Complete(sym *ModuleSymbol) error {
	if !sym.Name.IsEmpty() || sym.completer == nil {
		return nil
	}
	// Drop the completer before running it, so a symbol it leaves
	// unnamed is not completed again on a later call.
	completer := sym.completer
	sym.completer = nil
	return completer(sym)
}

func versionKey(v names.Version) string {
	if v.IsZero() {
		return nullVersionKey
	}
	return v.String()
}

// Register adds (sym.Name, sym.Version) -> sym to the name/version
// index, and for every ProvidesModule directive found inside a view
// declared by sym, registers the alias under its own (name, version).
// A collision with an existing mapping is reported as
// duplicate.definition and the first registration wins.
func (c *Catalog) Register(sym *ModuleSymbol) error {
	var result *multierror.Error

	if err := c.registerOne(sym.Name, sym.Version, sym); err != nil {
		result = multierror.Append(result, err)
	}

	for _, v := range sym.Views() {
		for _, d := range v.Directives {
			pm, ok := d.(directive.ProvidesModule)
			if !ok {
				continue
			}
			if err := c.registerOne(pm.Alias.Name, pm.Alias.Version, sym); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}

	return result.ErrorOrNil()
}

func (c *Catalog) registerOne(name names.Name, version names.Version, sym *ModuleSymbol) error {
	versions, ok := c.byName[name]
	if !ok {
		versions = make(map[string]*ModuleSymbol)
		c.byName[name] = versions
	}

	key := versionKey(version)
	if existing, ok := versions[key]; ok && existing != sym {
		return c.log.Report(diag.DuplicateDefinition, "name", name.String())
	}
	versions[key] = sym
	return nil
}

// Resolve implements the version-query resolution rules of spec.md
// section 4.2.
func (c *Catalog) Resolve(q names.ModuleQuery) (*ModuleSymbol, error) {
	versions, ok := c.byName[q.Name]
	if !ok || len(versions) == 0 {
		return nil, c.log.Report(diag.NoVersionAvailable, "name", q.Name.String())
	}

	if q.VQ.IsAny() {
		if len(versions) > 1 {
			return nil, c.log.Report(diag.NoUniqueVersionAvailable, "name", q.Name.String())
		}
		for _, sym := range versions {
			return sym, nil
		}
	}

	for key, sym := range versions {
		if key == nullVersionKey {
			if q.VQ.Matches(names.Version{}) {
				return sym, nil
			}
			continue
		}
		if q.VQ.Matches(sym.Version) {
			return sym, nil
		}
	}
	return nil, c.log.Report(diag.RequiredVersionNotAvailable, "name", q.Name.String(), "query", q.VQ.String())
}

// RegisterPlatformDefaults inserts the platform-reserved names (the
// base module and a legacy-platform alias) if they are not already
// present, each backed by a distinguished empty-directive symbol at a
// dedicated platform location.
func (c *Catalog) RegisterPlatformDefaults() error {
	var result *multierror.Error

	for _, n := range []names.Name{BaseModuleName, LegacyPlatformAlias} {
		if _, ok := c.byName[n]; ok {
			continue
		}
		sym := &ModuleSymbol{
			Name:     n,
			Location: &location.PathLocation{LocName: "<platform:" + n.String() + ">"},
		}
		sym.Freeze(nil)
		c.byLocation[sym.Location.Name()] = sym
		if err := c.registerOne(n, names.Version{}, sym); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// AllSymbols returns every distinct symbol entered into the catalog so
// far (spec.md section 2: "driver completes ... every enumerated
// module"), in unspecified order: every symbol reachable by location,
// whether or not it has been name/version-registered yet.
func (c *Catalog) AllSymbols() []*ModuleSymbol {
	out := make([]*ModuleSymbol, 0, len(c.byLocation))
	for _, sym := range c.byLocation {
		out = append(out, sym)
	}
	return out
}
