package unionfind

import "testing"

func TestFindIsIdempotentAfterUnions(t *testing.T) {
	uf := New(10)
	uf.Union(1, 2)
	uf.Union(3, 4)
	uf.Union(2, 4)
	uf.Union(7, 8)

	for x := 0; x < 10; x++ {
		root := uf.Find(x)
		if got := uf.Find(root); got != root {
			t.Errorf("Find(Find(%d)) = %d, want %d", x, got, root)
		}
	}
}

func TestUnionConnectsTransitively(t *testing.T) {
	uf := New(5)
	uf.Union(0, 1)
	uf.Union(1, 2)
	if !uf.Connected(0, 2) {
		t.Error("0 and 2 should be connected through 1")
	}
	if uf.Connected(0, 3) {
		t.Error("0 and 3 should not be connected")
	}
}

func TestSelfLoopAtRoot(t *testing.T) {
	uf := New(3)
	for i := 0; i < 3; i++ {
		r := uf.Find(i)
		if uf.parent[r] != r {
			t.Errorf("root %d is not a self-loop", r)
		}
	}
}

func TestNoUnionsEachElementIsOwnRoot(t *testing.T) {
	uf := New(4)
	for i := 0; i < 4; i++ {
		if uf.Find(i) != i {
			t.Errorf("Find(%d) = %d, want %d (no unions performed)", i, uf.Find(i), i)
		}
	}
}
