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

package names_test

import (
	"testing"

	"go.rgst.io/modcore/pkg/names"
	"gotest.tools/v3/assert"
)

func TestEmptyVersionIsZero(t *testing.T) {
	v, err := names.StrictGrammar{}.Parse("")
	assert.NilError(t, err)
	assert.Assert(t, v.IsZero())
}

func TestVersionEqualByStringForm(t *testing.T) {
	g := names.StrictGrammar{}
	a, _ := g.Parse("1.2.3")
	b, _ := g.Parse("1.2.3")
	c, _ := g.Parse("1.2.4")
	assert.Assert(t, a.Equal(b))
	assert.Assert(t, !a.Equal(c))
}

func TestVersionCompareRequiresSemver(t *testing.T) {
	g := names.StrictGrammar{}
	a, _ := g.Parse("1.2.3")
	b, _ := g.Parse("not-a-version")

	_, ok := a.Compare(b)
	assert.Assert(t, !ok)

	c, _ := g.Parse("1.3.0")
	cmp, ok := a.Compare(c)
	assert.Assert(t, ok)
	assert.Assert(t, cmp < 0)
}

// TestAtLeastQueryIsPrefixStripEquality ensures the Open Question
// about ">=" is faithfully reproduced under StrictGrammar: it is
// literal equality against the suffix, not a real range comparison.
func TestAtLeastQueryIsPrefixStripEquality(t *testing.T) {
	g := names.StrictGrammar{}
	q, err := names.ParseVersionQuery(">=1.2.3", g)
	assert.NilError(t, err)

	v120, _ := g.Parse("1.2.0")
	v123, _ := g.Parse("1.2.3")
	v200, _ := g.Parse("2.0.0")

	assert.Assert(t, !q.Matches(v120))
	assert.Assert(t, q.Matches(v123))
	assert.Assert(t, !q.Matches(v200)) // faithful: NOT a real >= comparison
}

// TestAtLeastQueryIsRealOrderingUnderRangeGrammar exercises the
// Open-Question-2 opt-in: RangeGrammar gives ">=" real ordering.
func TestAtLeastQueryIsRealOrderingUnderRangeGrammar(t *testing.T) {
	g := names.RangeGrammar{}
	q, err := names.ParseVersionQuery(">=1.2.3", g)
	assert.NilError(t, err)

	v123, _ := g.Parse("1.2.3")
	v200, _ := g.Parse("2.0.0")
	v100, _ := g.Parse("1.0.0")

	assert.Assert(t, q.Matches(v123))
	assert.Assert(t, q.Matches(v200))
	assert.Assert(t, !q.Matches(v100))
}

func TestExactVersionQuery(t *testing.T) {
	g := names.StrictGrammar{}
	q, err := names.ParseVersionQuery("1.2.3", g)
	assert.NilError(t, err)

	v123, _ := g.Parse("1.2.3")
	v124, _ := g.Parse("1.2.4")
	assert.Assert(t, q.Matches(v123))
	assert.Assert(t, !q.Matches(v124))
}

func TestAnyVersionQueryMatchesEverything(t *testing.T) {
	g := names.StrictGrammar{}
	q, err := names.ParseVersionQuery("", g)
	assert.NilError(t, err)
	assert.Assert(t, q.IsAny())

	v, _ := g.Parse("9.9.9")
	assert.Assert(t, q.Matches(v))
}
