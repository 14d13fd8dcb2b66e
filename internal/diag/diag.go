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

// Package diag implements the stable diagnostic keys of the module
// resolver core, a source-file-scoped logger, and debug category
// tracing controlled by MODULES_DEBUG.
package diag

import "go.rgst.io/modcore/pkg/slogext"

// Key is one of the seventeen stable diagnostic keys the core reports.
type Key string

const (
	ModuleAlreadyDefined        Key = "module.already.defined"
	DuplRequires                Key = "dupl.requires"
	DuplProvides                Key = "dupl.provides"
	DuplPermits                 Key = "dupl.permits"
	DuplView                    Key = "dupl.view"
	DuplEntrypoint              Key = "dupl.entrypoint"
	RequiresNotAllowedInView     Key = "requires.not.allowed.in.view"
	NestedViewNotAllowed         Key = "nested.view.not.allowed"
	ModuleFileManagerRequired    Key = "module.file.manager.required"
	FileInWrongDirectory         Key = "file.in.wrong.directory"
	NoVersionAvailable           Key = "no.version.available"
	NoUniqueVersionAvailable     Key = "no.unique.version.available"
	RequiredVersionNotAvailable  Key = "required.version.not.available"
	DuplicateDefinition          Key = "duplicate.definition"
	ModuleLibraryNotFound        Key = "module.library.not.found"
	CannotOpenModuleLibrary      Key = "cannot.open.module.library"
	ModuleDeclNotPermitted       Key = "module.decl.not.permitted"
)

// Category is a debug tracing category, enabled selectively via
// MODULES_DEBUG.
type Category string

const (
	CategoryInitialRootLocations Category = "initialRootLocns"
	CategoryResolve              Category = "resolve"
	CategoryAll                  Category = "all"
	CategoryLocation             Category = "location"
	CategoryRequires             Category = "requires"
)

// Diagnostic is one reported, non-fatal finding: a stable key, the
// source file it's scoped to (if any), and human-readable arguments.
type Diagnostic struct {
	Key        Key
	SourceFile string
	Args       []any
}

// Error implements the error interface so a Diagnostic can be wrapped
// or collected alongside ordinary errors (e.g. in a multierror.Append
// call) without a separate type.
func (d Diagnostic) Error() string {
	msg := string(d.Key)
	if d.SourceFile != "" {
		msg = d.SourceFile + ": " + msg
	}
	return msg
}

// Log scopes diagnostic reporting to a single source file, matching
// the visitor's per-compilation-unit log scoping (spec.md section
// 4.1) and the category-based debug tracing of spec.md section 7.
type Log struct {
	logger     slogext.Logger
	sourceFile string
	debug      map[Category]struct{}
}

// NewLog creates a Log backed by logger, with debug tracing enabled
// for the given categories (pass CategoryAll to enable everything).
func NewLog(logger slogext.Logger, categories ...Category) *Log {
	debug := make(map[Category]struct{}, len(categories))
	for _, c := range categories {
		debug[c] = struct{}{}
	}
	return &Log{logger: logger, debug: debug}
}

// ForSourceFile returns a copy of the Log scoped to sourceFile.
func (l *Log) ForSourceFile(sourceFile string) *Log {
	return &Log{logger: l.logger, sourceFile: sourceFile, debug: l.debug}
}

// Report emits a non-fatal diagnostic.
func (l *Log) Report(key Key, args ...any) Diagnostic {
	d := Diagnostic{Key: key, SourceFile: l.sourceFile, Args: args}
	fields := make([]any, 0, len(args)+2)
	fields = append(fields, "key", string(key))
	if l.sourceFile != "" {
		fields = append(fields, "source", l.sourceFile)
	}
	fields = append(fields, args...)
	l.logger.With(fields...).Warn("diagnostic")
	return d
}

// Enabled reports whether debug tracing is enabled for category,
// either directly or via CategoryAll.
func (l *Log) Enabled(category Category) bool {
	if _, ok := l.debug[CategoryAll]; ok {
		return true
	}
	_, ok := l.debug[category]
	return ok
}

// Debugf logs a trace message only if category is enabled.
func (l *Log) Debugf(category Category, format string, args ...any) {
	if !l.Enabled(category) {
		return
	}
	l.logger.Debugf(format, args...)
}
