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

package visitor_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"go.rgst.io/modcore/internal/catalog"
	"go.rgst.io/modcore/internal/diag"
	"go.rgst.io/modcore/internal/location"
	"go.rgst.io/modcore/internal/visitor"
	"go.rgst.io/modcore/internal/visitor/visitortest"
	"go.rgst.io/modcore/pkg/directive"
	"go.rgst.io/modcore/pkg/names"
	"go.rgst.io/modcore/pkg/slogext"
)

func newOpts(cat *catalog.Catalog) visitor.Options {
	return visitor.Options{
		Mode:                  visitor.SingleModule,
		SingleModuleLocation:  &location.PathLocation{LocName: "root"},
		Catalog:               cat,
		Log:                   diag.NewLog(slogext.New()),
		Grammar:               names.StrictGrammar{},
	}
}

// S1: module M {} synthesizes RequiresModule(base, {SYNTHESIZED}).
func TestSingleModuleSynthesizesBaseRequirement(t *testing.T) {
	cat := catalog.New(diag.NewLog(slogext.New()))
	unit := &visitortest.Unit{Source: "M.modinfo", IsDecl: true, D: &visitortest.ModuleDecl{N: "M"}}

	_, err := visitor.Visit([]visitor.CompilationUnit{unit}, newOpts(cat))
	assert.NilError(t, err)

	sym, ok := cat.Lookup(&location.PathLocation{LocName: "root"})
	assert.Assert(t, ok)
	assert.Equal(t, len(sym.Directives), 1)
	rm, ok := sym.Directives[0].(directive.RequiresModule)
	assert.Assert(t, ok)
	assert.Equal(t, rm.Query.Name.String(), catalog.BaseModuleName.String())
	assert.Assert(t, rm.Flags.Has(directive.Synthesized))
}

// S4: module declares `provides X@1` twice.
func TestDuplicateProvidesKeepsFirstOnly(t *testing.T) {
	cat := catalog.New(diag.NewLog(slogext.New()))
	decl := &visitortest.ModuleDecl{
		N: "M",
		Ds: []visitor.DeclNode{
			&visitortest.Decl{K: visitor.DeclProvidesModule, N: "X", V: "1"},
			&visitortest.Decl{K: visitor.DeclProvidesModule, N: "X", V: "1"},
		},
	}
	unit := &visitortest.Unit{Source: "M.modinfo", IsDecl: true, D: decl}

	_, err := visitor.Visit([]visitor.CompilationUnit{unit}, newOpts(cat))
	assert.NilError(t, err)

	sym, ok := cat.Lookup(&location.PathLocation{LocName: "root"})
	assert.Assert(t, ok)

	provides := 0
	for _, d := range sym.Directives {
		if d.Kind() == directive.KindProvidesModule {
			provides++
		}
	}
	assert.Equal(t, provides, 1)
}

// S5: `module M { view V { requires N; } }` drops the requires.
func TestRequiresInViewIsRejected(t *testing.T) {
	cat := catalog.New(diag.NewLog(slogext.New()))
	decl := &visitortest.ModuleDecl{
		N: "M",
		Ds: []visitor.DeclNode{
			&visitortest.Decl{
				K: visitor.DeclView,
				N: "V",
				Nested: []visitor.DeclNode{
					&visitortest.Decl{K: visitor.DeclRequiresModule, N: "N"},
				},
			},
		},
	}
	unit := &visitortest.Unit{Source: "M.modinfo", IsDecl: true, D: decl}

	_, err := visitor.Visit([]visitor.CompilationUnit{unit}, newOpts(cat))
	assert.NilError(t, err)

	sym, ok := cat.Lookup(&location.PathLocation{LocName: "root"})
	assert.Assert(t, ok)

	var view *directive.View
	for _, d := range sym.Directives {
		if v, ok := d.(directive.View); ok {
			view = &v
		}
	}
	assert.Assert(t, view != nil)
	assert.Equal(t, len(view.Directives), 0)
}

func TestSingleModuleRootsDeduplicated(t *testing.T) {
	cat := catalog.New(diag.NewLog(slogext.New()))
	opts := newOpts(cat)

	u1 := &visitortest.Unit{Source: "a.go", IsDecl: false}
	u2 := &visitortest.Unit{Source: "b.go", IsDecl: false}

	roots, err := visitor.Visit([]visitor.CompilationUnit{u1, u2}, opts)
	assert.NilError(t, err)
	assert.Equal(t, len(roots), 1)
}
