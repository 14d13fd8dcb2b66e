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

package names

import (
	blangsemver "github.com/blang/semver/v4"
	mastersemver "github.com/Masterminds/semver/v3"
)

// Version is an opaque value produced by a VersionGrammar. A zero
// Version (the result of parsing "" with any VersionGrammar) represents "unversioned"
// and is stored in catalogs under a distinguished sentinel so that
// maps never need a null key.
//
// Version deliberately keeps both a canonical string form (the only
// thing spec-mandated Equal/String care about) and, when the input was
// real semver, enough structure for the real ordering used by
// RangeGrammar. Two Versions are Equal iff their string forms are
// equal; this is independent of whether the underlying semver parsed.
type Version struct {
	raw    string
	master *mastersemver.Version
	blang  *blangsemver.Version
}

// IsZero reports whether v is the unversioned sentinel.
func (v Version) IsZero() bool {
	return v.raw == ""
}

// String returns the canonical string form of the version.
func (v Version) String() string {
	return v.raw
}

// Equal implements the spec's version equality: two versions are
// equal iff their string forms are equal.
func (v Version) Equal(o Version) bool {
	return v.raw == o.raw
}

// Compare returns -1, 0, or 1 if v is less than, equal to, or greater
// than o, using real semantic-version ordering. The second return
// value is false if either version did not parse as semver, in which
// case no ordering is available (falls back to string equality via
// Equal only).
func (v Version) Compare(o Version) (cmp int, ok bool) {
	if v.blang == nil || o.blang == nil {
		return 0, false
	}
	return v.blang.Compare(*o.blang), true
}

// Hash returns a stable hash for use as a map key fallback; callers
// should prefer the distinguished sentinel key over hashing directly.
func (v Version) Hash() uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(v.raw); i++ {
		h ^= uint64(v.raw[i])
		h *= 1099511628211
	}
	return h
}

// VersionGrammar parses a version string into a Version. Different
// grammars may disagree about whether two versions are ordered; they
// never disagree about Equal, which is always string-form equality.
type VersionGrammar interface {
	// Parse parses a raw version string. An empty string always yields
	// the unversioned sentinel, regardless of grammar.
	Parse(raw string) (Version, error)
}

// StrictGrammar is the default VersionGrammar. It accepts any
// non-empty string as a version (faithfully matching the "opaque
// value" language of the spec) and additionally attempts to parse it
// as a semantic version with Masterminds/semver and blang/semver,
// keeping whichever parses succeed. VersionQuery equality checks
// compare only the string form; the blang parse backs Compare. A
// non-semver string is still a valid, comparable Version, just one
// with no ordering.
type StrictGrammar struct{}

// Parse implements VersionGrammar.
func (StrictGrammar) Parse(raw string) (Version, error) {
	if raw == "" {
		return Version{}, nil
	}
	v := Version{raw: raw}
	if sv, err := mastersemver.NewVersion(raw); err == nil {
		v.master = sv
	}
	if bv, err := blangsemver.ParseTolerant(raw); err == nil {
		v.blang = &bv
	}
	return v, nil
}

// RangeGrammar is the Open-Question-2 opt-in grammar: it behaves like
// StrictGrammar for parsing, but VersionQuery built against it exposes
// real ">=" range semantics (via Version.Compare) instead of the
// faithfully-reproduced prefix-strip-equality default. See
// SPEC_FULL.md section 9.
type RangeGrammar struct{}

// Parse implements VersionGrammar.
func (RangeGrammar) Parse(raw string) (Version, error) {
	return StrictGrammar{}.Parse(raw)
}
