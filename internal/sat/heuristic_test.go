package sat

import (
	"math/rand"
	"testing"
)

func buildClauses(t *testing.T, clauses [][]Literal) *clauseStore {
	t.Helper()
	cs := newClauseStore()
	for _, lits := range clauses {
		if _, ok := cs.Push(lits); !ok {
			t.Fatalf("Push(%v) failed", lits)
		}
	}
	return cs
}

func TestSeedHeuristic_MOM(t *testing.T) {
	p0, p1, p2 := PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)
	n0 := NegativeLiteral(0)
	cs := buildClauses(t, [][]Literal{{p0, p1}, {n0, p1}, {p1, p2}})

	h := newTestHeap(3)
	seedHeuristic(ModeVSIDS|ModeMOM, cs, h, 3, nil)

	if got := h.Top(); got != 1 {
		t.Errorf("Top() = %d, want 1 (appears in every clause)", got)
	}
	if got, want := h.SignCount(0), 0; got != want {
		t.Errorf("SignCount(0) = %d, want %d (one positive, one negative occurrence)", got, want)
	}
}

func TestSeedHeuristic_JW(t *testing.T) {
	p0, p1, p2 := PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)
	cs := buildClauses(t, [][]Literal{{p0, p1}, {p1, p2}})

	h := newTestHeap(3)
	seedHeuristic(ModeVSIDS|ModeJW, cs, h, 3, nil)

	if got := h.Top(); got != 1 {
		t.Errorf("Top() = %d, want 1 (appears in both clauses)", got)
	}
}

func TestSeedHeuristic_Random_BumpsAllEqually(t *testing.T) {
	cs := newClauseStore()
	h := newTestHeap(3)
	seedHeuristic(ModeVSIDS, cs, h, 3, rand.New(rand.NewSource(7)))

	if got, want := h.Size(), 3; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
	for v := 0; v < 3; v++ {
		if got, want := h.SignCount(v), 1; got != want {
			t.Errorf("SignCount(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestSeedHeuristic_Plain_StillRandomSeeds(t *testing.T) {
	// ModePlain carries neither MOM nor JW, so it falls through to the same
	// random initializer as bare ModeVSIDS; only conflict-time decay is
	// gated on the VSIDS bit, not seeding.
	p0 := PositiveLiteral(0)
	cs := buildClauses(t, [][]Literal{{p0, PositiveLiteral(1)}})
	h := newTestHeap(2)
	seedHeuristic(ModePlain, cs, h, 2, rand.New(rand.NewSource(3)))

	if got, want := h.Size(), 2; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
	for v := 0; v < 2; v++ {
		if got, want := h.SignCount(v), 1; got != want {
			t.Errorf("SignCount(%d) = %d, want %d", v, got, want)
		}
	}
}
