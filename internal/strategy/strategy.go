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

// Package strategy defines the pluggable resolver strategy interface
// (spec.md section 6.3) and the built-in "zero" strategy used when no
// external strategy is configured or loading one fails.
package strategy

import "go.rgst.io/modcore/pkg/names"

// Strategy is the optional interface a resolver run may delegate to
// instead of running the core's own graph/SCC resolution.
type Strategy interface {
	// Resolve returns the visible module list for roots given every
	// named module on the search path, or (nil, false) to decline and
	// fall back to the core resolver.
	Resolve(roots []names.ModuleId, allNamed []names.ModuleId) ([]names.ModuleId, bool)

	// IsPackageVisible reports whether package is visible from module.
	IsPackageVisible(module names.ModuleId, pkg names.Name) bool
}

// Zero is the built-in strategy: it always declines, deferring to the
// core's own graph resolution, and treats every package as visible.
type Zero struct{}

// Resolve implements Strategy.
func (Zero) Resolve([]names.ModuleId, []names.ModuleId) ([]names.ModuleId, bool) {
	return nil, false
}

// IsPackageVisible implements Strategy.
func (Zero) IsPackageVisible(names.ModuleId, names.Name) bool {
	return true
}
