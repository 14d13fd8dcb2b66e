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

package filemanager_test

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"gotest.tools/v3/assert"

	"go.rgst.io/modcore/internal/filemanager"
	"go.rgst.io/modcore/internal/location"
)

// filesystemer is implemented by the concrete file managers so tests
// can populate the in-memory layout before resolving against it.
type filesystemer interface {
	Filesystem() billy.Filesystem
}

func TestMultiModuleFileManagerEnumeratesModuleRoots(t *testing.T) {
	fm := filemanager.NewMemFileManager(filemanager.Multiple)
	fs := fm.(filesystemer).Filesystem()

	assert.NilError(t, fs.MkdirAll("/src/mod.a", 0o755))
	assert.NilError(t, fs.MkdirAll("/src/mod.b", 0o755))

	root := &location.PathLocation{LocName: "module-path", Dirs: []string{"/src"}}
	locs, err := fm.GetModuleLocations(root)
	assert.NilError(t, err)
	assert.Equal(t, len(locs), 2)
}

func TestSingleModuleFileManagerReturnsParentUnchanged(t *testing.T) {
	fm := filemanager.NewMemFileManager(filemanager.Single)
	root := &location.PathLocation{LocName: "module-path", Dirs: []string{"/src"}}

	locs, err := fm.GetModuleLocations(root)
	assert.NilError(t, err)
	assert.Equal(t, len(locs), 1)
	assert.Equal(t, locs[0], location.Location(root))
}

func TestGetModuleLocationMapsFileToModuleRoot(t *testing.T) {
	fm := filemanager.NewMemFileManager(filemanager.Multiple)
	fs := fm.(filesystemer).Filesystem()
	assert.NilError(t, fs.MkdirAll("/src/mod.a", 0o755))

	root := &location.PathLocation{LocName: "module-path", Dirs: []string{"/src"}}
	file := location.FileObject{Path: "/src/mod.a/com/example/Foo.class", Kind: location.Class}

	loc, err := fm.GetModuleLocation(root, file, "com.example")
	assert.NilError(t, err)
	assert.Equal(t, loc.Name(), "mod.a")
}

func TestGetModuleLocationRejectsFileOutsideParent(t *testing.T) {
	fm := filemanager.NewMemFileManager(filemanager.Multiple)
	root := &location.PathLocation{LocName: "module-path", Dirs: []string{"/src"}}
	file := location.FileObject{Path: "/elsewhere/Foo.class", Kind: location.Class}

	_, err := fm.GetModuleLocation(root, file, "")
	assert.Error(t, err, filemanager.ErrInvalidFileObject.Error())
}

func TestAugmentPlatformLocationPrependsOnFirstAppendsOnLast(t *testing.T) {
	fm := filemanager.NewMemFileManager(filemanager.Single)
	prepend := &location.PathLocation{LocName: "platform.prepend"}
	appendLoc := &location.PathLocation{LocName: "platform.append"}
	fm.(filemanager.PlatformConfigurable).SetPlatformLocations(prepend, appendLoc)

	base := &location.PathLocation{LocName: "platform.base"}

	first, err := fm.AugmentPlatformLocation(base, true, false)
	assert.NilError(t, err)
	assert.Equal(t, len(first), 2)
	assert.Equal(t, first[0].Name(), "platform.prepend")

	last, err := fm.AugmentPlatformLocation(base, false, true)
	assert.NilError(t, err)
	assert.Equal(t, len(last), 2)
	assert.Equal(t, last[1].Name(), "platform.append")

	middle, err := fm.AugmentPlatformLocation(base, false, false)
	assert.NilError(t, err)
	assert.Equal(t, len(middle), 1)
}
