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

// Package visitortest provides fake CompilationUnit/DeclNode
// implementations for tests that exercise the visitor without a real
// syntax parser.
package visitortest

import (
	"go.rgst.io/modcore/internal/location"
	"go.rgst.io/modcore/internal/visitor"
)

// Decl is a fake visitor.DeclNode.
type Decl struct {
	K        visitor.DeclKind
	N        string
	V        string
	I        string
	F        []string
	Nested   []visitor.DeclNode
}

func (d *Decl) Kind() visitor.DeclKind     { return d.K }
func (d *Decl) Name() string               { return d.N }
func (d *Decl) Version() string            { return d.V }
func (d *Decl) Impl() string               { return d.I }
func (d *Decl) Flags() []string            { return d.F }
func (d *Decl) Children() []visitor.DeclNode { return d.Nested }

// ModuleDecl is a fake visitor.ModuleDecl.
type ModuleDecl struct {
	N   string
	V   string
	Ds  []visitor.DeclNode
}

func (m *ModuleDecl) Name() string                  { return m.N }
func (m *ModuleDecl) Version() string                { return m.V }
func (m *ModuleDecl) Directives() []visitor.DeclNode { return m.Ds }

// Unit is a fake visitor.CompilationUnit backed by a single module
// declaration (or none, for a non-module-info unit).
type Unit struct {
	Source  string
	IsDecl  bool
	D       *ModuleDecl
	Pkg     string
	File    location.FileObject
	loc     location.Location
}

func (u *Unit) SourceFile() string                { return u.Source }
func (u *Unit) IsModuleInfo() bool                { return u.IsDecl }
func (u *Unit) Decl() visitor.ModuleDecl          { return u.D }
func (u *Unit) Package() string                   { return u.Pkg }
func (u *Unit) FileObject() location.FileObject   { return u.File }
func (u *Unit) SetLocation(loc location.Location) { u.loc = loc }
func (u *Unit) Location() location.Location       { return u.loc }
