package sat

import "math/rand"

// Mode selects which static policy seeds the priority heap before the main
// search loop begins (spec.md §4.8, §6). The bit values mirror the external
// CLI's mnemonic bitmask: VSIDS=4, MOM=8, JW=16. Any other bit is reserved
// and ignored (spec.md §9: "mode value 29 ... treat extra bits as
// reserved").
type Mode uint8

const (
	// ModePlain runs BCP with no decayed branching heuristic: decayAll is
	// never invoked, so whatever priority a variable is seeded with stays
	// fixed for the rest of the solve (still subject to conflict-analysis
	// bumps, per spec.md §9's "phase selection" note — the decay gate and
	// the seeding policy are independent knobs).
	ModePlain Mode = 0
	// ModeVSIDS enables per-conflict priority decay (decayAll is called once
	// per conflict analysis pass). It composes with ModeMOM/ModeJW; by
	// itself it leaves seeding to the random initializer.
	ModeVSIDS Mode = 1 << 2
	// ModeMOM seeds with Maximum-Occurrences-in-clauses-of-Minimum-size.
	// Takes priority over ModeJW if both are set.
	ModeMOM Mode = 1 << 3
	// ModeJW seeds with the Jeroslow-Wang score. Ignored if ModeMOM is set.
	ModeJW Mode = 1 << 4
)

// clauseSzThreshold bounds which clauses the MOM initializer treats as
// "small" (spec.md §4.8).
const clauseSzThreshold = 10

// seedHeuristic seeds every variable's initial priority and sign-count, then
// heapifies. Every variable must already have been admitted to heap via
// Expand before this runs (spec.md §4.8: "after seeding, heapify"). Exactly
// one of the three static initializers runs, MOM taking priority over JW
// over random, mirroring the original reference's if/else-if/else — none of
// the three is gated on the VSIDS bit; only decay is (see the decay
// parameter of analyzer.Analyze). rng is consulted only for the random
// initializer; a nil rng falls back to a fresh source seeded with 1.
func seedHeuristic(mode Mode, cs *clauseStore, heap *varHeap, numVars int, rng *rand.Rand) {
	switch {
	case mode&ModeMOM != 0:
		seedMOM(cs, heap)
	case mode&ModeJW != 0:
		seedJW(cs, heap)
	default:
		seedRandom(numVars, heap, rng)
	}

	heap.Heapify()
}

// seedMOM bumps every literal's variable by 1 (sign-count by the literal's
// polarity) for every clause no larger than clauseSzThreshold.
func seedMOM(cs *clauseStore, heap *varHeap) {
	for c := ClauseID(0); int(c) < cs.NumClauses(); c++ {
		if cs.Size(c) > clauseSzThreshold {
			continue
		}
		for i := 0; i < cs.Size(c); i++ {
			l := cs.Literal(c, i)
			heap.BumpPriority(l.VarID(), 1, l.IsPositive())
		}
	}
}

// seedJW bumps every literal's variable by 2^-|c| for every clause,
// regardless of size.
func seedJW(cs *clauseStore, heap *varHeap) {
	for c := ClauseID(0); int(c) < cs.NumClauses(); c++ {
		size := cs.Size(c)
		weight := jwWeight(size)
		for i := 0; i < size; i++ {
			l := cs.Literal(c, i)
			heap.BumpPriority(l.VarID(), weight, l.IsPositive())
		}
	}
}

func jwWeight(clauseSize int) float64 {
	w := 1.0
	for i := 0; i < clauseSize; i++ {
		w /= 2
	}
	return w
}

// seedRandom draws a single r in [0,1) and bumps every variable's priority
// by r with a uniformly positive sign-count (spec.md §4.8: "bump every
// variable's initial priority by r with sign-count +1").
func seedRandom(numVars int, heap *varHeap, rng *rand.Rand) {
	r := rng
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}
	v := r.Float64()
	for i := 0; i < numVars; i++ {
		heap.BumpPriority(i, v, true)
	}
}
