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

// Package driver implements the resolver driver state machine
// (spec.md section 4.5): it wires the visitor, catalog, graph
// resolver, location merger, and file manager together, handling
// re-entrance while a resolve is in progress.
package driver

import (
	"go.rgst.io/modcore/internal/catalog"
	"go.rgst.io/modcore/internal/diag"
	"go.rgst.io/modcore/internal/filemanager"
	"go.rgst.io/modcore/internal/graph"
	"go.rgst.io/modcore/internal/location"
	"go.rgst.io/modcore/internal/slicesext"
	"go.rgst.io/modcore/internal/strategy"
	"go.rgst.io/modcore/internal/visitor"
	"go.rgst.io/modcore/pkg/names"
)

// State is the driver's resolution state.
type State int

const (
	Initial State = iota
	Resolving
	Resolved
)

// ClassReader is the capability exposed to the class reader (spec.md
// section 6.2): the final merged search location.
type ClassReader interface {
	SetPathLocation(loc location.Location)
}

// Options configures a new Driver.
type Options struct {
	Catalog         *catalog.Catalog
	Log             *diag.Log
	FileManager     filemanager.FileManager
	Merger          *location.Merger
	Strategy        strategy.Strategy
	Grammar         names.VersionGrammar
	ClassReader     ClassReader
	ModulesDisabled bool

	// Completer completes a module symbol the file manager discovered
	// on the module path but that no compilation unit declared (spec.md
	// section 4.2: a compiled module-info read off disk). Optional; a
	// symbol left without one settles as the unnamed module.
	Completer catalog.Completer
}

// Driver orchestrates one compilation's module resolution.
type Driver struct {
	state State

	catalog     *catalog.Catalog
	log         *diag.Log
	fm          filemanager.FileManager
	merger      *location.Merger
	strategy    strategy.Strategy
	grammar     names.VersionGrammar
	classReader ClassReader
	disabled    bool
	completer   catalog.Completer
}

// New returns a Driver in the Initial state.
func New(opts Options) *Driver {
	return &Driver{
		catalog:     opts.Catalog,
		log:         opts.Log,
		fm:          opts.FileManager,
		merger:      opts.Merger,
		strategy:    opts.Strategy,
		grammar:     opts.Grammar,
		classReader: opts.ClassReader,
		disabled:    opts.ModulesDisabled,
		completer:   opts.Completer,
	}
}

// State returns the driver's current state.
func (d *Driver) State() State { return d.state }

// Enter runs the visitor over units and, depending on the driver's
// current state, either performs the full resolve (INITIAL), treats
// the call as a re-entrant update (RESOLVING), or is a no-op
// (RESOLVED). It returns whether the compilation may proceed.
func (d *Driver) Enter(units []visitor.CompilationUnit, vopts visitor.Options) (bool, error) {
	if d.disabled {
		return d.rejectModuleDecls(units), nil
	}

	if d.fm == nil && hasModuleInfo(units) {
		for _, u := range units {
			if u.IsModuleInfo() {
				d.log.ForSourceFile(u.SourceFile()).Report(diag.ModuleFileManagerRequired)
			}
		}
		return false, nil
	}

	vopts.Catalog = d.catalog
	vopts.Log = d.log
	vopts.Grammar = d.grammar
	vopts.FileManager = d.fm

	roots, err := visitor.Visit(units, vopts)
	if err != nil {
		return false, err
	}

	switch d.state {
	case Initial:
		d.state = Resolving
		ok, err := d.resolve(vopts, roots)
		d.state = Resolved
		return ok, err
	case Resolving:
		// Re-entrant: completing a module triggered parsing of more
		// compilation units. The visitor above already attached their
		// locations/symbols; nothing further is needed.
		return true, nil
	default: // Resolved
		return true, nil
	}
}

// hasModuleInfo reports whether any unit declares a module.
func hasModuleInfo(units []visitor.CompilationUnit) bool {
	for _, u := range units {
		if u.IsModuleInfo() {
			return true
		}
	}
	return false
}

// rejectModuleDecls implements the "modules globally disabled" path:
// every module declaration is rejected with module.decl.not.permitted
// and the compilation proceeds without any module processing.
func (d *Driver) rejectModuleDecls(units []visitor.CompilationUnit) bool {
	for _, u := range units {
		if u.IsModuleInfo() {
			d.log.ForSourceFile(u.SourceFile()).Report(diag.ModuleDeclNotPermitted)
		}
	}
	return true
}

func (d *Driver) resolve(vopts visitor.Options, roots []location.Location) (bool, error) {
	var rootSyms []*catalog.ModuleSymbol
	for _, r := range roots {
		if sym, ok := d.catalog.Lookup(r); ok {
			rootSyms = append(rootSyms, sym)
		}
	}

	if err := d.enumerateModules(vopts); err != nil {
		return false, err
	}

	if err := d.catalog.RegisterPlatformDefaults(); err != nil {
		return false, err
	}

	allSyms := d.catalog.AllSymbols()
	for _, sym := range allSyms {
		if err := d.catalog.Complete(sym); err != nil {
			return false, err
		}
	}
	for _, sym := range allSyms {
		if sym.Unnamed() {
			// The unnamed module has no (name, version) identity to
			// register under; registering it anyway would collide every
			// other unnamed module onto the same empty-name bucket.
			continue
		}
		// Registration errors are already reported as diagnostics by
		// Register; the first symbol registered for a given (name,
		// version) still wins, so resolution can continue.
		_ = d.catalog.Register(sym)
	}

	g, err := graph.New(d.catalog, d.log, allSyms)
	if err != nil {
		return false, err
	}

	resolved, ok := d.tryStrategy(rootSyms, allSyms)
	if !ok {
		resolved = g.Resolve(rootSyms)
	}

	locs, err := d.augmentLocations(resolved)
	if err != nil {
		return false, err
	}
	d.classReader.SetPathLocation(d.merger.Merge(locs))
	return true, nil
}

// enumerateModules asks the file manager for every module location
// reachable from the search root and enters/completes each one
// (spec.md section 2: "driver asks the file manager to enumerate
// module locations reachable from the search roots → driver completes
// ... every enumerated module"). Locations the visitor already entered
// while walking source (same Name()) come back as the same symbol from
// catalog.Enter, so this is a no-op for them; it only adds symbols for
// module roots with no corresponding source compilation unit.
func (d *Driver) enumerateModules(vopts visitor.Options) error {
	if d.fm == nil {
		return nil
	}

	searchRoot := vopts.SingleModuleLocation
	if vopts.Mode == visitor.MultiModule {
		searchRoot = vopts.ModulePathParent
	}
	if searchRoot == nil {
		return nil
	}

	discovered, err := d.fm.GetModuleLocations(searchRoot)
	if err != nil {
		return err
	}

	for _, loc := range discovered {
		sym := d.catalog.Enter(loc, d.completer)
		if err := d.catalog.Complete(sym); err != nil {
			return err
		}
	}
	return nil
}

// augmentLocations applies the platform-path prepend/append segments
// around the first and last platform module in resolved (spec.md
// section 4.4, "Platform augmentation"), deferring to the file
// manager's own AugmentPlatformLocation for the actual prepend/append.
func (d *Driver) augmentLocations(resolved []*catalog.ModuleSymbol) ([]location.Location, error) {
	firstPlatform, lastPlatform := -1, -1
	for i, sym := range resolved {
		if sym.IsPlatform() {
			if firstPlatform == -1 {
				firstPlatform = i
			}
			lastPlatform = i
		}
	}

	locs := make([]location.Location, 0, len(resolved))
	for i, sym := range resolved {
		isFirst, isLast := i == firstPlatform, i == lastPlatform
		if d.fm == nil || (!isFirst && !isLast) {
			locs = append(locs, sym.Location)
			continue
		}

		augmented, err := d.fm.AugmentPlatformLocation(sym.Location, isFirst, isLast)
		if err != nil {
			return nil, err
		}
		locs = append(locs, augmented...)
	}
	return locs, nil
}

// tryStrategy delegates resolution to the pluggable strategy, if one
// is configured and willing to handle it.
func (d *Driver) tryStrategy(roots, allSyms []*catalog.ModuleSymbol) ([]*catalog.ModuleSymbol, bool) {
	if d.strategy == nil {
		return nil, false
	}

	rootIds := symbolsToIds(roots)
	allIds := symbolsToIds(allSyms)

	ids, ok := d.strategy.Resolve(rootIds, allIds)
	if !ok {
		return nil, false
	}

	byId := slicesext.Map(allSyms, func(sym *catalog.ModuleSymbol) string {
		return names.ModuleId{Name: sym.Name, Version: sym.Version}.String()
	})

	out := make([]*catalog.ModuleSymbol, 0, len(ids))
	for _, id := range ids {
		if sym, ok := byId[id.String()]; ok {
			out = append(out, sym)
		}
	}
	return out, true
}

func symbolsToIds(syms []*catalog.ModuleSymbol) []names.ModuleId {
	out := make([]names.ModuleId, len(syms))
	for i, s := range syms {
		out[i] = names.ModuleId{Name: s.Name, Version: s.Version}
	}
	return out
}
