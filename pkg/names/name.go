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

// Package names implements the interned identifiers used throughout
// the module resolver: Name, Version, VersionQuery, ModuleId, and
// ModuleQuery.
package names

import "sync"

// Name is an interned identifier. Equality is pointer equality on the
// underlying *nameEntry; ordering is lexicographic on the string form.
type Name struct {
	e *nameEntry
}

type nameEntry struct {
	s string
}

var (
	internMu    sync.Mutex
	internTable = make(map[string]*nameEntry)
)

// Intern returns the canonical Name for s, creating it if it hasn't
// been seen before.
func Intern(s string) Name {
	internMu.Lock()
	defer internMu.Unlock()

	e, ok := internTable[s]
	if !ok {
		e = &nameEntry{s: s}
		internTable[s] = e
	}
	return Name{e: e}
}

// IsEmpty returns true for the zero Name (no entry interned).
func (n Name) IsEmpty() bool {
	return n.e == nil
}

// String returns the underlying string form of the name.
func (n Name) String() string {
	if n.e == nil {
		return ""
	}
	return n.e.s
}

// Equal returns true iff n and o refer to the same interned entry.
func (n Name) Equal(o Name) bool {
	return n.e == o.e
}

// Less orders two names lexicographically by their string form.
func (n Name) Less(o Name) bool {
	return n.String() < o.String()
}
