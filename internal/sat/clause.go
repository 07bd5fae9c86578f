package sat

import "sync"

// ClauseID identifies a clause within a ClauseStore. It is the clause's
// index in the store's append-only arena.
type ClauseID int

// noClause is the sentinel meaning "no antecedent" (a decision, or a
// top-level unit).
const noClause ClauseID = -1

// clause is an immutable (except for its watch indices) literal array plus
// the two watch positions described in spec.md §3. Learned clauses and
// input clauses share the same representation and arena; neither is ever
// removed once pushed.
type clause struct {
	lits   []Literal
	w0, w1 int
}

// clauseStore is the append-only clause arena (spec.md §4.1). Clauses grow
// monotonically during a solve; backtracking never shrinks the arena.
type clauseStore struct {
	clauses []clause
}

// litSlicePools buckets literal-slice allocations by capacity class so that
// clause creation (both for the initial formula and for every learned
// clause) avoids a fresh allocation per clause. Clauses are never removed
// from the store, so unlike the teacher's pool (sat/clauses_alloc.go) there
// is no freeSlice counterpart: slices are taken from the pool and never
// returned to it.
const nLitPools = 6

var litSlicePools [nLitPools]sync.Pool

func init() {
	for i := 0; i < nLitPools; i++ {
		capa := 1 << (i + 1)
		litSlicePools[i].New = func() any {
			s := make([]Literal, 0, capa)
			return &s
		}
	}
}

func litPoolIndex(capa int) int {
	idx := 0
	for (1<<(idx+1)) < capa && idx < nLitPools-1 {
		idx++
	}
	return idx
}

func allocLits(lits []Literal) []Literal {
	ref := litSlicePools[litPoolIndex(len(lits))].Get().(*[]Literal)
	s := (*ref)[:0]
	s = append(s, lits...)
	*ref = s
	return s
}

// newClauseStore returns an empty clause arena.
func newClauseStore() *clauseStore {
	return &clauseStore{}
}

// NumClauses returns the number of clauses pushed so far, original and
// learned alike.
func (cs *clauseStore) NumClauses() int {
	return len(cs.clauses)
}

// Push appends a clause with initial watch slots 0 and size/2. It fails only
// if lits has fewer than two literals: the caller (Solver.AddClause, or
// conflict analysis for learned clauses) is responsible for extracting unit
// clauses and detecting empty ones before calling Push.
func (cs *clauseStore) Push(lits []Literal) (ClauseID, bool) {
	if len(lits) < 2 {
		return noClause, false
	}
	id := ClauseID(len(cs.clauses))
	cs.clauses = append(cs.clauses, clause{
		lits: allocLits(lits),
		w0:   0,
		w1:   len(lits) / 2,
	})
	return id, true
}

// Size returns the number of literals in clause c.
func (cs *clauseStore) Size(c ClauseID) int {
	return len(cs.clauses[c].lits)
}

// Literal returns the i-th literal of clause c.
func (cs *clauseStore) Literal(c ClauseID, i int) Literal {
	return cs.clauses[c].lits[i]
}

// Literals returns the full literal slice of clause c. Callers must not
// retain or mutate the slice beyond the watch-rotation performed by
// AdvanceWatch.
func (cs *clauseStore) Literals(c ClauseID) []Literal {
	return cs.clauses[c].lits
}

// WatchedLiteral returns the literal currently held in watch slot k (0 or
// 1) of clause c.
func (cs *clauseStore) WatchedLiteral(c ClauseID, k int) Literal {
	cl := &cs.clauses[c]
	if k == 0 {
		return cl.lits[cl.w0]
	}
	return cl.lits[cl.w1]
}

// WatchIndex returns the literal-array index currently occupied by watch
// slot k of clause c.
func (cs *clauseStore) WatchIndex(c ClauseID, k int) int {
	cl := &cs.clauses[c]
	if k == 0 {
		return cl.w0
	}
	return cl.w1
}

// SetWatchIndex moves watch slot k of clause c to literal-array index i.
func (cs *clauseStore) SetWatchIndex(c ClauseID, k, i int) {
	cl := &cs.clauses[c]
	if k == 0 {
		cl.w0 = i
	} else {
		cl.w1 = i
	}
}

// AdvanceWatch rotates watch slot k of clause c to the next position
// (modulo the clause's size) and returns the literal now watched by slot
// k. It does not skip the position occupied by the other watcher: the
// caller compares against WatchIndex(c, k^1) itself and discards that
// candidate, the same division of labor as the original reference's
// watchNext/watchSame pair (original_source/src/solver.h). This keeps the
// rotation a plain cyclic advance, so calling it exactly size(c) times
// with no candidate accepted always returns slot k to its starting
// position — callers rely on that to leave an exhausted watcher exactly
// where it began rather than drifting onto a stale literal.
func (cs *clauseStore) AdvanceWatch(c ClauseID, k int) Literal {
	cl := &cs.clauses[c]
	size := len(cl.lits)
	if k == 0 {
		cl.w0 = (cl.w0 + 1) % size
		return cl.lits[cl.w0]
	}
	cl.w1 = (cl.w1 + 1) % size
	return cl.lits[cl.w1]
}
