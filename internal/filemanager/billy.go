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

package filemanager

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"go.rgst.io/modcore/internal/location"
)

// billyFileManager implements FileManager on top of a go-billy
// filesystem, so the same logic backs both a real on-disk module
// layout (OSFileManager) and an in-memory one built by tests
// (MemFileManager).
type billyFileManager struct {
	fs     billy.Filesystem
	mode   ModuleMode
	merger *location.Merger

	platformPrepend location.Location
	platformAppend  location.Location
}

// NewOSFileManager returns a FileManager rooted at root on the real
// filesystem.
func NewOSFileManager(root string, mode ModuleMode) FileManager {
	return &billyFileManager{
		fs:     osfs.New(root),
		mode:   mode,
		merger: location.NewMerger(),
	}
}

// NewMemFileManager returns a FileManager backed by an in-memory
// filesystem, for tests that need a module layout without touching
// disk.
func NewMemFileManager(mode ModuleMode) FileManager {
	return &billyFileManager{
		fs:     memfs.New(),
		mode:   mode,
		merger: location.NewMerger(),
	}
}

// Filesystem exposes the underlying billy.Filesystem so tests can
// populate a layout before resolving against it.
func (b *billyFileManager) Filesystem() billy.Filesystem { return b.fs }

// SetPlatformLocations configures the locations prepended/appended by
// AugmentPlatformLocation around the first/last platform module.
func (b *billyFileManager) SetPlatformLocations(prepend, appendLoc location.Location) {
	b.platformPrepend = prepend
	b.platformAppend = appendLoc
}

// Join implements FileManager.
func (b *billyFileManager) Join(locs []location.Location) location.Location {
	return b.merger.Merge(locs)
}

// GetModuleLocation implements FileManager.
func (b *billyFileManager) GetModuleLocation(parent location.Location, file location.FileObject, _ string) (location.Location, error) {
	parentDir, err := dirOf(parent)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(parentDir, file.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, ErrInvalidFileObject
	}

	if b.mode == Single {
		return parent, nil
	}

	parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
	if len(parts) == 0 || parts[0] == "" {
		return nil, ErrInvalidFileObject
	}
	moduleDir := parts[0]
	return &location.PathLocation{
		LocName: moduleDir,
		Dirs:    []string{filepath.Join(parentDir, moduleDir)},
	}, nil
}

// GetModuleLocations implements FileManager.
func (b *billyFileManager) GetModuleLocations(parent location.Location) ([]location.Location, error) {
	if b.mode == Single {
		return []location.Location{parent}, nil
	}

	parentDir, err := dirOf(parent)
	if err != nil {
		return nil, err
	}

	entries, err := b.fs.ReadDir(parentDir)
	if err != nil {
		return nil, err
	}

	var out []location.Location
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		out = append(out, &location.PathLocation{
			LocName: e.Name(),
			Dirs:    []string{filepath.Join(parentDir, e.Name())},
		})
	}
	return out, nil
}

// GetModuleMode implements FileManager.
func (b *billyFileManager) GetModuleMode() ModuleMode { return b.mode }

// AugmentPlatformLocation implements FileManager.
func (b *billyFileManager) AugmentPlatformLocation(loc location.Location, isFirst, isLast bool) ([]location.Location, error) {
	out := []location.Location{}
	if isFirst && b.platformPrepend != nil {
		out = append(out, b.platformPrepend)
	}
	out = append(out, loc)
	if isLast && b.platformAppend != nil {
		out = append(out, b.platformAppend)
	}
	return out, nil
}

// dirOf extracts the single root directory a location addresses, the
// only shape this file manager's standard/path locations take.
func dirOf(loc location.Location) (string, error) {
	switch l := loc.(type) {
	case *location.PathLocation:
		if len(l.Dirs) != 1 {
			return "", ErrInvalidFileObject
		}
		return l.Dirs[0], nil
	case *location.StandardLocation:
		if len(l.Dirs) != 1 {
			return "", ErrInvalidFileObject
		}
		return l.Dirs[0], nil
	default:
		return "", ErrInvalidFileObject
	}
}
