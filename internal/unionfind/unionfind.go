// Package unionfind implements a fixed-size disjoint-set structure used by
// both the connected-component extractor (merging label equivalences during
// the row-major labeling sweep) and the link builder (merging validated
// left/right links into line candidates).
package unionfind

// UnionFind is an integer-indexed parent array over [0,n). Find applies full
// path compression; per SPEC_FULL.md's carry of the original's design note
// (§9 "Recursive path compression"), compression is iterative: a first pass
// walks to the root, a second pass rewrites every visited node's parent to
// that root, so there is no recursion depth tied to chain length.
type UnionFind struct {
	parent []int
}

// New returns a UnionFind over [0,n) with every element its own root.
func New(n int) *UnionFind {
	uf := &UnionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

// Len returns n, the number of elements.
func (uf *UnionFind) Len() int { return len(uf.parent) }

// Find returns the root of x's set, compressing every edge on the path from
// x to the root.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		next := uf.parent[x]
		uf.parent[x] = root
		x = next
	}
	return root
}

// Union merges the sets containing a and b. Following spec.md §3's literal
// rule, parent[find(a)] is set to find(b); no rank heuristic is applied, so
// the resulting tree shape is exactly what repeated calls in label-sweep or
// link-grouping order produce.
func (uf *UnionFind) Union(a, b int) {
	ra, rb := uf.Find(a), uf.Find(b)
	if ra == rb {
		return
	}
	uf.parent[ra] = rb
}

// Connected reports whether a and b are in the same set.
func (uf *UnionFind) Connected(a, b int) bool {
	return uf.Find(a) == uf.Find(b)
}
