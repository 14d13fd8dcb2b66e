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

package location_test

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"go.rgst.io/modcore/internal/location"
)

func TestFlattenedLocationListReturnsOnlyMatchingKind(t *testing.T) {
	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "Foo.class"), nil, 0o644))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "Foo.src"), nil, 0o644))

	flat := &location.FlattenedLocation{
		LocName: "<merged-path>",
		Entries: []location.DirEntry{{Dir: dir, Mask: location.KindSet(location.Class, location.Source)}},
	}

	classes, err := flat.List("", location.KindSet(location.Class), false)
	assert.NilError(t, err)
	assert.Equal(t, len(classes), 1)
	assert.Equal(t, classes[0].Kind, location.Class)
}

func TestFlattenedLocationInferBinaryNameStripsExtensionAndDots(t *testing.T) {
	flat := &location.FlattenedLocation{
		Entries: []location.DirEntry{{Dir: "/src", Mask: location.KindSet(location.Source)}},
	}

	name, ok := flat.InferBinaryName(location.FileObject{Path: "/src/com/example/Foo.java"})
	assert.Assert(t, ok)
	assert.Equal(t, name, "com.example.Foo")
}

func TestFlattenedLocationInferBinaryNameRejectsFileOutsideEntries(t *testing.T) {
	flat := &location.FlattenedLocation{
		Entries: []location.DirEntry{{Dir: "/src", Mask: location.KindSet(location.Source)}},
	}

	_, ok := flat.InferBinaryName(location.FileObject{Path: "/elsewhere/Foo.java"})
	assert.Assert(t, !ok)
}

func TestCompositeLocationListConcatenatesMembersInOrder(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dirA, "A.class"), nil, 0o644))
	assert.NilError(t, os.WriteFile(filepath.Join(dirB, "B.class"), nil, 0o644))

	composite := &location.CompositeLocation{
		Members: []location.Location{
			&location.FlattenedLocation{Entries: []location.DirEntry{{Dir: dirA, Mask: location.KindSet(location.Class)}}},
			&location.FlattenedLocation{Entries: []location.DirEntry{{Dir: dirB, Mask: location.KindSet(location.Class)}}},
		},
	}

	files, err := composite.List("", location.KindSet(location.Class), false)
	assert.NilError(t, err)
	assert.Equal(t, len(files), 2)
	assert.Equal(t, files[0].Path, filepath.Join(dirA, "A.class"))
	assert.Equal(t, files[1].Path, filepath.Join(dirB, "B.class"))
}

func TestCompositeLocationInferBinaryNameReturnsFirstNonNullMapping(t *testing.T) {
	composite := &location.CompositeLocation{
		Members: []location.Location{
			&location.FlattenedLocation{Entries: []location.DirEntry{{Dir: "/other", Mask: location.KindSet(location.Source)}}},
			&location.FlattenedLocation{Entries: []location.DirEntry{{Dir: "/src", Mask: location.KindSet(location.Source)}}},
		},
	}

	name, ok := composite.InferBinaryName(location.FileObject{Path: "/src/Foo.java"})
	assert.Assert(t, ok)
	assert.Equal(t, name, "Foo")
}

func TestCompositeLocationListSkipsNonListableMembers(t *testing.T) {
	composite := &location.CompositeLocation{
		Members: []location.Location{
			&location.PathLocation{LocName: "opaque"},
		},
	}

	files, err := composite.List("", location.KindSet(location.Class), false)
	assert.NilError(t, err)
	assert.Equal(t, len(files), 0)
}
