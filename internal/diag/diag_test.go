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

package diag_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"go.rgst.io/modcore/internal/diag"
	"go.rgst.io/modcore/pkg/slogext"
)

func TestReportReturnsScopedDiagnostic(t *testing.T) {
	log := diag.NewLog(slogext.New()).ForSourceFile("Foo.modinfo")

	d := log.Report(diag.ModuleAlreadyDefined, "name", "Foo")
	assert.Equal(t, d.Key, diag.ModuleAlreadyDefined)
	assert.Equal(t, d.SourceFile, "Foo.modinfo")
	assert.DeepEqual(t, d.Args, []any{"name", "Foo"})
}

func TestDiagnosticErrorIncludesSourceFile(t *testing.T) {
	d := diag.Diagnostic{Key: diag.DuplRequires, SourceFile: "Bar.modinfo"}
	assert.Equal(t, d.Error(), "Bar.modinfo: dupl.requires")
}

func TestDiagnosticErrorWithoutSourceFile(t *testing.T) {
	d := diag.Diagnostic{Key: diag.NoVersionAvailable}
	assert.Equal(t, d.Error(), "no.version.available")
}

func TestEnabledRespectsCategoryAll(t *testing.T) {
	log := diag.NewLog(slogext.New(), diag.CategoryAll)
	assert.Assert(t, log.Enabled(diag.CategoryResolve))
	assert.Assert(t, log.Enabled(diag.CategoryLocation))
}

func TestEnabledRespectsSpecificCategory(t *testing.T) {
	log := diag.NewLog(slogext.New(), diag.CategoryResolve)
	assert.Assert(t, log.Enabled(diag.CategoryResolve))
	assert.Assert(t, !log.Enabled(diag.CategoryLocation))
}

func TestForSourceFileInheritsDebugCategories(t *testing.T) {
	log := diag.NewLog(slogext.New(), diag.CategoryRequires).ForSourceFile("A.modinfo")
	assert.Assert(t, log.Enabled(diag.CategoryRequires))
}
