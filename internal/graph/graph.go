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

// Package graph builds the directed module-dependency graph from a
// catalog and a root set, runs Tarjan's strongly-connected-components
// algorithm over an arena-indexed node slice, and emits the reachable
// modules in the dependency-respecting order spec.md section 4.3
// describes: if A requires B, A precedes B.
package graph

import (
	"github.com/hashicorp/go-multierror"

	"go.rgst.io/modcore/internal/catalog"
	"go.rgst.io/modcore/internal/diag"
	"go.rgst.io/modcore/pkg/directive"
)

// node is one arena slot. index/lowlink/active/scc are Tarjan's
// working state, reset at the start of every Resolve.
type node struct {
	sym *catalog.ModuleSymbol

	edges []int // indices of required nodes, resolved from the catalog

	index   int
	lowlink int
	active  bool
	scc     int // -1 until assigned
}

// Graph is the arena of nodes built from a catalog's symbols.
type Graph struct {
	nodes  []*node
	bySym  map[*catalog.ModuleSymbol]int
}

// New builds a Graph over modules, resolving each module's
// RequiresModule directives against cat to form edges. An
// unresolvable non-optional requirement is reported against cat's log
// and recorded as a resolution failure, and every such failure is
// returned together in one aggregated error; OPTIONAL requirements
// that fail to resolve are omitted as edges.
func New(cat *catalog.Catalog, log *diag.Log, modules []*catalog.ModuleSymbol) (*Graph, error) {
	g := &Graph{bySym: make(map[*catalog.ModuleSymbol]int, len(modules))}
	for _, sym := range modules {
		g.ensureNode(sym)
	}

	var result *multierror.Error
	for _, sym := range modules {
		from := g.bySym[sym]
		for _, d := range sym.Directives {
			rm, ok := d.(directive.RequiresModule)
			if !ok {
				continue
			}

			target, err := cat.Resolve(rm.Query)
			if err != nil {
				if rm.Flags.Has(directive.Optional) {
					continue
				}
				result = multierror.Append(result, err)
				continue
			}
			to := g.ensureNode(target)
			g.nodes[from].edges = append(g.nodes[from].edges, to)
		}
	}

	return g, result.ErrorOrNil()
}

func (g *Graph) ensureNode(sym *catalog.ModuleSymbol) int {
	if idx, ok := g.bySym[sym]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, &node{sym: sym, index: -1, scc: -1})
	g.bySym[sym] = idx
	return idx
}

// stackFrame is one level of the explicit DFS stack used by Tarjan's
// algorithm, so deep module graphs can't overflow the goroutine stack.
type stackFrame struct {
	node     int
	edgeIdx  int
}

// Resolve runs Tarjan's SCC algorithm starting from roots and returns
// every module reachable from them, ordered so that if A requires B,
// A precedes B (the reverse of the platform-first convention; callers
// re-reverse when building the class search location).
func (g *Graph) Resolve(roots []*catalog.ModuleSymbol) []*catalog.ModuleSymbol {
	var (
		nextIndex int
		tarjanStk []int // node indices currently on the Tarjan stack
		sccOrder  [][]int
	)

	// Resolve may be called more than once against the same arena (spec.md
	// section 8 invariant 5, determinism); reset Tarjan's working state so
	// each call starts fresh.
	for _, n := range g.nodes {
		n.index = -1
		n.lowlink = 0
		n.active = false
		n.scc = -1
	}

	for _, root := range roots {
		rootIdx, ok := g.bySym[root]
		if !ok {
			continue
		}
		if g.nodes[rootIdx].index != -1 {
			continue
		}
		g.strongConnect(rootIdx, &nextIndex, &tarjanStk, &sccOrder)
	}

	// sccOrder is in Tarjan creation order, which completes an SCC only
	// after everything it depends on: dependencies first. Reversing it
	// yields "requirer before requirement".
	var result []*catalog.ModuleSymbol
	for i := len(sccOrder) - 1; i >= 0; i-- {
		for _, idx := range sccOrder[i] {
			result = append(result, g.nodes[idx].sym)
		}
	}
	return result
}

// strongConnect is an iterative (explicit-stack) Tarjan visit rooted
// at start, appending each completed SCC's member indices to sccOrder.
func (g *Graph) strongConnect(start int, nextIndex *int, tarjanStk *[]int, sccOrder *[][]int) {
	var work []stackFrame
	push := func(n int) {
		g.nodes[n].index = *nextIndex
		g.nodes[n].lowlink = *nextIndex
		*nextIndex++
		g.nodes[n].active = true
		*tarjanStk = append(*tarjanStk, n)
		work = append(work, stackFrame{node: n, edgeIdx: 0})
	}

	push(start)

	for len(work) > 0 {
		top := &work[len(work)-1]
		n := top.node

		if top.edgeIdx < len(g.nodes[n].edges) {
			w := g.nodes[n].edges[top.edgeIdx]
			top.edgeIdx++

			switch {
			case g.nodes[w].index == -1:
				push(w)
			case g.nodes[w].active:
				if g.nodes[w].index < g.nodes[n].lowlink {
					g.nodes[n].lowlink = g.nodes[w].index
				}
			}
			continue
		}

		// All edges from n explored; pop n's frame.
		work = work[:len(work)-1]
		if len(work) > 0 {
			parent := &work[len(work)-1]
			if g.nodes[n].lowlink < g.nodes[parent.node].lowlink {
				g.nodes[parent.node].lowlink = g.nodes[n].lowlink
			}
		}

		if g.nodes[n].lowlink == g.nodes[n].index {
			var members []int
			for {
				top := (*tarjanStk)[len(*tarjanStk)-1]
				*tarjanStk = (*tarjanStk)[:len(*tarjanStk)-1]
				g.nodes[top].active = false
				g.nodes[top].scc = len(*sccOrder)
				members = append(members, top)
				if top == n {
					break
				}
			}
			*sccOrder = append(*sccOrder, members)
		}
	}
}
