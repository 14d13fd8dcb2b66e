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

// Package filemanager implements the module-aware file-manager
// collaborator the resolver core depends on: mapping source files to
// module roots, enumerating module roots under a parent, and joining
// locations into the merged search path the class reader uses.
package filemanager

import (
	"fmt"

	"go.rgst.io/modcore/internal/location"
)

// ModuleMode describes whether a parent location holds exactly one
// module (SINGLE) or a directory of module roots (MULTIPLE).
type ModuleMode int

const (
	Single ModuleMode = iota
	Multiple
)

// ErrInvalidFileObject is returned by GetModuleLocation when file does
// not live under parent.
var ErrInvalidFileObject = fmt.Errorf("filemanager: file object does not belong to the given parent location")

// PlatformConfigurable is implemented by file managers that support
// configuring the prepend/append locations used by
// AugmentPlatformLocation.
type PlatformConfigurable interface {
	SetPlatformLocations(prepend, appendLoc location.Location)
}

// FileManager is the capability set the resolver core depends on, per
// the external collaborator boundary: real I/O happens here, never in
// the core packages.
type FileManager interface {
	// Join produces a composite Location; the core's own merger
	// delegates into this for the final result.
	Join(locs []location.Location) location.Location

	// GetModuleLocation maps a source file inside parent to the unique
	// module-root location that contains it.
	GetModuleLocation(parent location.Location, file location.FileObject, pkg string) (location.Location, error)

	// GetModuleLocations enumerates all module-root locations under
	// parent.
	GetModuleLocations(parent location.Location) ([]location.Location, error)

	// GetModuleMode reports whether parent locations are single- or
	// multi-module directories.
	GetModuleMode() ModuleMode

	// AugmentPlatformLocation applies the platform-path prepend/append
	// segments around a base platform location.
	AugmentPlatformLocation(loc location.Location, isFirst, isLast bool) ([]location.Location, error)
}
