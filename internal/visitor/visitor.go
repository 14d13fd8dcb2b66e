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

// Package visitor implements the module-declaration visitor: it walks
// parsed compilation units (owned by the syntax parser, an external
// collaborator represented here only by the CompilationUnit/DeclNode
// boundary interfaces), canonicalizes their module declarations into
// the directive.Directive model, enforces per-module well-formedness,
// and attaches the result to a catalog.ModuleSymbol.
package visitor

import (
	"go.rgst.io/modcore/internal/catalog"
	"go.rgst.io/modcore/internal/diag"
	"go.rgst.io/modcore/internal/filemanager"
	"go.rgst.io/modcore/internal/location"
	"go.rgst.io/modcore/pkg/directive"
	"go.rgst.io/modcore/pkg/names"
)

// DeclKind discriminates the directive shapes a parsed module
// declaration tree can hold.
type DeclKind int

const (
	DeclPermits DeclKind = iota
	DeclProvidesModule
	DeclProvidesService
	DeclRequiresModule
	DeclRequiresService
	DeclExports
	DeclEntrypoint
	DeclView
)

// DeclNode is one node of a parsed module declaration, as produced by
// the syntax parser. Name/Version/Flags are interpreted according to
// Kind; Children holds a view's nested directives.
type DeclNode interface {
	Kind() DeclKind
	Name() string
	Version() string
	Impl() string // ProvidesService's implementation name
	Flags() []string
	Children() []DeclNode
}

// ModuleDecl is the root of a parsed module declaration.
type ModuleDecl interface {
	Name() string
	Version() string
	Directives() []DeclNode
}

// CompilationUnit is a parsed source file that may contain a module
// declaration.
type CompilationUnit interface {
	SourceFile() string
	IsModuleInfo() bool
	Decl() ModuleDecl

	// For multi-module mode: the package declared by the unit and a
	// representative file object used to locate its module root.
	Package() string
	FileObject() location.FileObject

	SetLocation(loc location.Location)
}

// Mode selects how compilation-unit locations are derived.
type Mode int

const (
	SingleModule Mode = iota
	MultiModule
)

// Options configures one Visit call.
type Options struct {
	Mode Mode

	// SingleModuleLocation is the join of the class-path and
	// source-path locations, used in SingleModule mode.
	SingleModuleLocation location.Location

	// ModulePathParent is the parent location searched for module
	// roots in MultiModule mode.
	ModulePathParent location.Location

	FileManager filemanager.FileManager
	Catalog     *catalog.Catalog
	Log         *diag.Log
	Grammar     names.VersionGrammar
}

// flagOf translates a raw requires flag token into directive.Flag; an
// unrecognized token is ignored.
func flagOf(token string) (directive.Flag, bool) {
	switch token {
	case string(directive.Reexport):
		return directive.Reexport, true
	case string(directive.Optional):
		return directive.Optional, true
	case string(directive.Local):
		return directive.Local, true
	default:
		return "", false
	}
}

// scope accumulates the directive list for one nesting level (the
// module itself, or a single view), tracking duplicate (kind, target)
// pairs per spec.md invariant 2.
type scope struct {
	log            *diag.Log
	isView         bool
	seen           map[string]bool
	directives     []directive.Directive
	requiresBase   *bool
	moduleName     names.Name
	enclosingNames map[string]bool // view names already declared at this module
	grammar        names.VersionGrammar
}

func dupKey(kind directive.Kind, target string) string {
	return kind.String() + "\x00" + target
}

func (s *scope) addIfNew(d directive.Directive, key Key, dupDiag diag.Key, args ...any) {
	if s.seen[string(key)] {
		s.log.Report(dupDiag, args...)
		return
	}
	s.seen[string(key)] = true
	s.directives = append(s.directives, d)
}

// Key is a small alias to keep addIfNew's signature readable.
type Key string

// Visit walks units, populating the catalog with module symbols and
// their canonical directive lists. It returns the set of
// single-module-mode root locations encountered (empty in multi-module
// mode, where roots are obtained directly from the file manager).
func Visit(units []CompilationUnit, opts Options) ([]location.Location, error) {
	var roots []location.Location
	seenRoots := make(map[string]bool)

	for _, unit := range units {
		loc, err := locateUnit(unit, opts)
		if err != nil {
			continue
		}
		unit.SetLocation(loc)

		if opts.Mode == SingleModule {
			if !seenRoots[loc.Name()] {
				seenRoots[loc.Name()] = true
				roots = append(roots, loc)
			}
		}

		if !unit.IsModuleInfo() {
			continue
		}

		visitModuleDecl(unit, loc, opts)
	}

	return roots, nil
}

func locateUnit(unit CompilationUnit, opts Options) (location.Location, error) {
	if opts.Mode == SingleModule {
		return opts.SingleModuleLocation, nil
	}

	loc, err := opts.FileManager.GetModuleLocation(opts.ModulePathParent, unit.FileObject(), unit.Package())
	if err != nil {
		opts.Log.ForSourceFile(unit.SourceFile()).Report(diag.FileInWrongDirectory, "file", unit.FileObject().Path)
		return nil, err
	}
	return loc, nil
}

func visitModuleDecl(unit CompilationUnit, loc location.Location, opts Options) {
	log := opts.Log.ForSourceFile(unit.SourceFile())
	decl := unit.Decl()

	sym := opts.Catalog.Enter(loc, nil)
	target := sym
	if !sym.Name.IsEmpty() {
		log.Report(diag.ModuleAlreadyDefined, "location", loc.Name())
		// Preserve invariant 1: keep the first symbol in the catalog, and
		// continue processing into a fresh, detached throwaway so the
		// rest of the walk doesn't panic on a half-written symbol.
		target = &catalog.ModuleSymbol{Location: loc}
	}

	version, _ := opts.Grammar.Parse(decl.Version())
	target.Name = names.Intern(decl.Name())
	target.Version = version
	target.SourceFile = unit.SourceFile()

	requiresBase := !target.Name.Equal(catalog.BaseModuleName)
	s := &scope{
		log:            log,
		seen:           make(map[string]bool),
		requiresBase:   &requiresBase,
		moduleName:     target.Name,
		enclosingNames: make(map[string]bool),
		grammar:        opts.Grammar,
	}

	walkDirectives(decl.Directives(), s)

	if requiresBase {
		s.directives = append(s.directives, directive.RequiresModule{
			Query: names.ModuleQuery{Name: catalog.BaseModuleName, VQ: names.AnyVersion},
			Flags: directive.NewFlagSet(directive.Synthesized),
		})
	}

	target.Freeze(s.directives)
}

func walkDirectives(nodes []DeclNode, s *scope) {
	for _, n := range nodes {
		switch n.Kind() {
		case DeclPermits:
			d := directive.Permits{ModuleName: names.Intern(n.Name())}
			s.addIfNew(d, Key(dupKey(d.Kind(), d.Target())), diag.DuplPermits, "name", n.Name())

		case DeclProvidesModule:
			version, _ := s.grammar.Parse(n.Version())
			alias := names.ModuleId{Name: names.Intern(n.Name()), Version: version}
			d := directive.ProvidesModule{Alias: alias}
			s.addIfNew(d, Key(dupKey(d.Kind(), d.Target())), diag.DuplProvides, "name", n.Name())
			if alias.Name.Equal(s.moduleBase()) {
				*s.requiresBase = false
			}

		case DeclProvidesService:
			d := directive.ProvidesService{Service: names.Intern(n.Name()), Impl: names.Intern(n.Impl())}
			s.addIfNew(d, Key(dupKey(d.Kind(), d.Target())), diag.DuplProvides, "service", n.Name())

		case DeclRequiresModule:
			if s.isView {
				s.log.Report(diag.RequiresNotAllowedInView, "name", n.Name())
				continue
			}
			var flags []directive.Flag
			for _, tok := range n.Flags() {
				if f, ok := flagOf(tok); ok {
					flags = append(flags, f)
				}
			}
			d := directive.RequiresModule{
				Query: names.ModuleQuery{Name: names.Intern(n.Name()), VQ: names.AnyVersion},
				Flags: directive.NewFlagSet(flags...),
			}
			s.addIfNew(d, Key(dupKey(d.Kind(), d.Target())), diag.DuplRequires, "name", n.Name())
			if names.Intern(n.Name()).Equal(s.moduleBase()) {
				*s.requiresBase = false
			}

		case DeclRequiresService:
			if s.isView {
				s.log.Report(diag.RequiresNotAllowedInView, "service", n.Name())
				continue
			}
			d := directive.RequiresService{Service: names.Intern(n.Name())}
			s.addIfNew(d, Key(dupKey(d.Kind(), d.Target())), diag.DuplRequires, "service", n.Name())

		case DeclExports:
			d := directive.Exports{PackageName: names.Intern(n.Name())}
			s.addIfNew(d, Key(dupKey(d.Kind(), d.Target())), diag.DuplProvides, "package", n.Name())

		case DeclEntrypoint:
			d := directive.Entrypoint{ClassName: names.Intern(n.Name())}
			s.addIfNew(d, Key(dupKey(d.Kind(), d.Target())), diag.DuplEntrypoint, "class", n.Name())

		case DeclView:
			if s.isView {
				s.log.Report(diag.NestedViewNotAllowed, "name", n.Name())
				continue
			}
			if s.enclosingNames[n.Name()] || n.Name() == s.moduleName.String() {
				s.log.Report(diag.DuplView, "name", n.Name())
				continue
			}
			s.enclosingNames[n.Name()] = true

			child := &scope{
				log:            s.log,
				isView:         true,
				seen:           make(map[string]bool),
				requiresBase:   s.requiresBase,
				moduleName:     s.moduleName,
				enclosingNames: s.enclosingNames,
				grammar:        s.grammar,
			}
			walkDirectives(n.Children(), child)

			viewName := names.Intern(n.Name())
			d := directive.View{Name: viewName, Directives: child.directives}
			s.directives = append(s.directives, d)
			if viewName.Equal(s.moduleBase()) {
				*s.requiresBase = false
			}
		}
	}
}

func (s *scope) moduleBase() names.Name { return catalog.BaseModuleName }
