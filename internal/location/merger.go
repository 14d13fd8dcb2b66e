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

package location

import (
	"sync"

	"github.com/mitchellh/hashstructure/v2"
)

// hasSourcePath reports whether any of locs is a SourcePath standard
// location, which changes the file-kind mask a class-path location
// contributes when both appear in the same merge.
func hasSourcePath(locs []Location) bool {
	for _, l := range locs {
		if sl, ok := l.(*StandardLocation); ok && sl.StdKind == SourcePath {
			return true
		}
	}
	return false
}

// maskFor returns the file-kind mask a standard location contributes
// to a flattened run, per the rule in spec.md section 4.4: class-path
// contributes classes and sources, unless a source-path is also
// present in the input, in which case it contributes classes only.
func maskFor(kind StandardKind, sourcePathPresent bool) FileKindSet {
	switch kind {
	case SourcePath:
		return KindSet(Source)
	case ClassPath:
		if sourcePathPresent {
			return KindSet(Class)
		}
		return KindSet(Class, Source)
	default: // PlatformClassPath, AnnotationProcessorPath
		return KindSet(Class)
	}
}

// Merger joins ordered lists of locations into a single composite
// location, coalescing contiguous standard/path runs and preserving
// extended locations unchanged, per spec.md section 4.4.
type Merger struct {
	mu    sync.Mutex
	cache map[uint64]Location
}

// NewMerger returns a ready-to-use Merger.
func NewMerger() *Merger {
	return &Merger{cache: make(map[uint64]Location)}
}

// Merge produces a composite Location from locs. A single input
// location is returned unchanged. The result is memoized by the
// ordered list of location names.
func (m *Merger) Merge(locs []Location) Location {
	if len(locs) == 1 {
		return locs[0]
	}
	if len(locs) == 0 {
		return &CompositeLocation{LocName: "<empty>"}
	}

	key, err := m.cacheKey(locs)
	if err == nil {
		m.mu.Lock()
		if cached, ok := m.cache[key]; ok {
			m.mu.Unlock()
			return cached
		}
		m.mu.Unlock()
	}

	result := m.merge(locs)

	if err == nil {
		m.mu.Lock()
		m.cache[key] = result
		m.mu.Unlock()
	}
	return result
}

func (m *Merger) cacheKey(locs []Location) (uint64, error) {
	names := make([]string, len(locs))
	for i, l := range locs {
		names[i] = l.Name()
	}
	return hashstructure.Hash(names, hashstructure.FormatV2, nil)
}

func (m *Merger) merge(locs []Location) Location {
	sourcePathPresent := hasSourcePath(locs)

	var result []Location
	var run []DirEntry

	flush := func() {
		if len(run) == 0 {
			return
		}
		result = append(result, &FlattenedLocation{
			LocName: "<merged-path>",
			Entries: append([]DirEntry(nil), run...),
		})
		run = nil
	}

	for _, loc := range locs {
		switch l := loc.(type) {
		case *StandardLocation:
			mask := maskFor(l.StdKind, sourcePathPresent)
			for _, d := range l.Dirs {
				run = append(run, DirEntry{Dir: d, Mask: mask})
			}
		case *PathLocation:
			for _, d := range l.Dirs {
				run = append(run, DirEntry{Dir: d, Mask: KindSet(Class, Source)})
			}
		case *FlattenedLocation:
			run = append(run, l.Entries...)
		default:
			// Opaque/extended location: break the run and preserve it
			// unchanged, in order.
			flush()
			result = append(result, loc)
		}
	}
	flush()

	if len(result) == 1 {
		return result[0]
	}
	return &CompositeLocation{LocName: "<composite>", Members: result}
}
