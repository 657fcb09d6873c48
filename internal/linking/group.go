package linking

import "github.com/deepteams/scribo/internal/unionfind"

// Groups is a UnionFind over component ids induced by a set of validated
// links (spec.md §3 "ObjectGroup"); GroupID(c) = Find(c).
type Groups struct {
	uf *unionfind.UnionFind
}

// Group builds the equivalence classes from the surviving links: for each
// link s -> t (t != s), Union(s, t).
func Group(links Links) *Groups {
	n := len(links.Link)
	uf := unionfind.New(n)
	for s := 1; s < n; s++ {
		if t := links.Link[s]; t != uint32(s) {
			uf.Union(s, int(t))
		}
	}
	return &Groups{uf: uf}
}

// GroupID returns the equivalence class representative for component id c.
func (g *Groups) GroupID(c uint32) uint32 { return uint32(g.uf.Find(int(c))) }

// Len returns the id-space size (N+1, background included).
func (g *Groups) Len() int { return g.uf.Len() }
