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

import "strings"

// ModuleId identifies a module by name and an optional version. Two
// ModuleIds are equal iff their names are equal and either both
// versions are the unversioned sentinel or both versions are Equal.
type ModuleId struct {
	Name    Name
	Version Version
}

// Equal implements ModuleId equality per the spec: names equal, and
// versions equal or both null.
func (id ModuleId) Equal(o ModuleId) bool {
	if !id.Name.Equal(o.Name) {
		return false
	}
	if id.Version.IsZero() && o.Version.IsZero() {
		return true
	}
	return id.Version.Equal(o.Version)
}

// Hash returns a stable combined hash, matching the spec's
// 43*name.hash + (version?.hash ?? 0) formula.
func (id ModuleId) Hash() uint64 {
	h := nameHash(id.Name)
	if id.Version.IsZero() {
		return 43*h + 0
	}
	return 43*h + id.Version.Hash()
}

func nameHash(n Name) uint64 {
	var h uint64 = 14695981039346656037
	s := n.String()
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

// String returns "name" or "name@version".
func (id ModuleId) String() string {
	if id.Version.IsZero() {
		return id.Name.String()
	}
	return id.Name.String() + "@" + id.Version.String()
}

// ParseModuleId parses the "name[@version]" surface form into a
// ModuleId, using grammar to parse the version portion if present.
func ParseModuleId(s string, grammar VersionGrammar) (ModuleId, error) {
	name, rest, hasVersion := splitNameVersion(s)
	id := ModuleId{Name: Intern(name)}
	if hasVersion {
		v, err := grammar.Parse(rest)
		if err != nil {
			return ModuleId{}, err
		}
		id.Version = v
	}
	return id, nil
}

// ModuleQuery is a (name, version-query) pair used in requires
// clauses.
type ModuleQuery struct {
	Name Name
	VQ   VersionQuery
}

// Matches reports whether the candidate id satisfies this query: its
// name must equal and its version must match the version query.
func (q ModuleQuery) Matches(id ModuleId) bool {
	if !q.Name.Equal(id.Name) {
		return false
	}
	return q.VQ.Matches(id.Version)
}

// String returns the surface form of the query.
func (q ModuleQuery) String() string {
	if q.VQ.IsAny() {
		return q.Name.String()
	}
	return q.Name.String() + "@" + q.VQ.String()
}

// ParseModuleQuery parses the "name[@version-query]" surface form.
func ParseModuleQuery(s string, grammar VersionGrammar) (ModuleQuery, error) {
	name, rest, hasVersion := splitNameVersion(s)
	q := ModuleQuery{Name: Intern(name), VQ: AnyVersion}
	if hasVersion {
		vq, err := ParseVersionQuery(rest, grammar)
		if err != nil {
			return ModuleQuery{}, err
		}
		q.VQ = vq
	}
	return q, nil
}

// splitNameVersion splits "name[@version]" into its parts.
func splitNameVersion(s string) (name, version string, hasVersion bool) {
	if i := strings.IndexByte(s, '@'); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}
