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

// QueryKind discriminates the three forms a VersionQuery can take.
type QueryKind int

const (
	// QueryAny matches any version. If more than one version exists for
	// a name, resolving against it is ambiguous.
	QueryAny QueryKind = iota
	// QueryAtLeast matches a version whose string form equals the
	// suffix after stripping a leading ">=". This is deliberately not a
	// real range comparison under StrictGrammar; see Version.Compare and
	// RangeGrammar for the opt-in real-ordering variant.
	QueryAtLeast
	// QueryExact matches a version by exact equality.
	QueryExact
)

// VersionQuery is either "any version" (nil in the spec's terms),
// ">=V", or a bare version string.
type VersionQuery struct {
	kind QueryKind

	// suffix is the literal string compared against a candidate
	// version's String() for QueryAtLeast under the faithful (non
	// range-aware) default.
	suffix string

	// exact is the parsed version for QueryExact.
	exact Version

	// atLeast and rangeAware back the RangeGrammar opt-in: when
	// rangeAware is true, QueryAtLeast uses Version.Compare instead of
	// string equality.
	atLeast    Version
	rangeAware bool
}

// AnyVersion is the query that matches any version.
var AnyVersion = VersionQuery{kind: QueryAny}

// ParseVersionQuery parses the surface form of a version query: empty
// for "any", ">=V" for at-least, or a bare version string for exact.
func ParseVersionQuery(s string, grammar VersionGrammar) (VersionQuery, error) {
	if s == "" {
		return AnyVersion, nil
	}

	if strings.HasPrefix(s, ">=") {
		suffix := strings.TrimPrefix(s, ">=")
		q := VersionQuery{kind: QueryAtLeast, suffix: suffix}
		if _, ok := grammar.(RangeGrammar); ok {
			v, err := grammar.Parse(suffix)
			if err != nil {
				return VersionQuery{}, err
			}
			q.atLeast = v
			q.rangeAware = true
		}
		return q, nil
	}

	v, err := grammar.Parse(s)
	if err != nil {
		return VersionQuery{}, err
	}
	return VersionQuery{kind: QueryExact, exact: v}, nil
}

// IsAny reports whether this query is the "any version" form.
func (q VersionQuery) IsAny() bool {
	return q.kind == QueryAny
}

// Matches reports whether the candidate version satisfies this query.
func (q VersionQuery) Matches(v Version) bool {
	switch q.kind {
	case QueryAny:
		return true
	case QueryAtLeast:
		if q.rangeAware {
			if c, ok := v.Compare(q.atLeast); ok {
				return c >= 0
			}
		}
		return v.String() == q.suffix
	case QueryExact:
		return v.Equal(q.exact)
	default:
		return false
	}
}

// String returns the surface form of the query.
func (q VersionQuery) String() string {
	switch q.kind {
	case QueryAny:
		return ""
	case QueryAtLeast:
		return ">=" + q.suffix
	case QueryExact:
		return q.exact.String()
	default:
		return ""
	}
}
