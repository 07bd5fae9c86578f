// Package sat implements a Conflict-Driven Clause Learning (CDCL) Boolean
// satisfiability solver: two-watched-literal propagation, 1UIP conflict
// analysis with self-subsumption minimization, and a lazily decayed
// priority heap for branching. Grounded on the original reference solver
// (original_source/src/solver.cpp, solver.h, heap.h) and expressed in the
// teacher's own idiom of flat, index-addressed pools.
package sat

import (
	"context"
	"math/rand"
	"time"
)

// Status reports the outcome of a Solve call.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusSatisfiable
	StatusUnsatisfiable
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusSatisfiable:
		return "satisfiable"
	case StatusUnsatisfiable:
		return "unsatisfiable"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Options configures a Solver.
type Options struct {
	// Mode selects the branching heuristic (spec.md §4.8, §6).
	Mode Mode
	// Timeout bounds wall-clock solving time; <= 0 means no timeout.
	Timeout time.Duration
	// MaxConflicts bounds the number of conflicts before giving up; < 0
	// means unbounded. A solve that hits this bound reports StatusTimeout,
	// the same as a wall-clock timeout: both are "gave up, not UNSAT".
	MaxConflicts int64
}

// Solver is a single CDCL solver instance. It is not safe for concurrent
// use except for Cancel, which may be called from another goroutine while
// Solve is running (spec.md §5).
type Solver struct {
	opts Options

	cs   *clauseStore
	wp   *watchPool
	tr   *trail
	heap *varHeap
	prop *propagator
	an   *analyzer
	rng  *rand.Rand

	numVars   int
	unsat     bool // true once trivially falsified at load time
	conflicts int64
	decisions int64
	status    Status

	cancelled boolFlag
}

// NewSolver returns an empty Solver ready for AddVariable/AddClause calls.
func NewSolver(opts Options) *Solver {
	cs := newClauseStore()
	wp := newWatchPool()
	tr := newTrail()
	heap := newVarHeap()
	return &Solver{
		opts: opts,
		cs:   cs,
		wp:   wp,
		tr:   tr,
		heap: heap,
		prop: newPropagator(cs, wp, tr),
		an:   newAnalyzer(cs, tr, heap),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// AddVariable declares one new Boolean variable and returns its id (0-based;
// DIMACS-style 1-based ids are the concern of internal/dimacs, not of this
// package).
func (s *Solver) AddVariable() int {
	v := s.numVars
	s.numVars++
	s.tr.Expand()
	s.wp.Expand()
	s.heap.Expand()
	s.an.Expand()
	return v
}

// NumVariables returns the number of variables declared so far.
func (s *Solver) NumVariables() int {
	return s.numVars
}

// NumClauses returns the number of clauses currently in the store,
// original and learned alike.
func (s *Solver) NumClauses() int {
	return s.cs.NumClauses()
}

// Conflicts returns the number of conflicts encountered by the most recent
// (or in-progress) Solve call.
func (s *Solver) Conflicts() int64 {
	return s.conflicts
}

// Decisions returns the number of branching decisions made by the most
// recent (or in-progress) Solve call.
func (s *Solver) Decisions() int64 {
	return s.decisions
}

// AddClause adds a clause over previously declared variables. It simplifies
// the clause against whatever has already been forced to a value at level
// 0: a literal already satisfied drops the whole clause (it is redundant),
// a literal already falsified is removed from it, and a clause containing
// both polarities of the same variable (a tautology) is dropped outright
// (spec.md §8 scenario E6, §14). A clause that simplifies to empty marks
// the solver permanently unsatisfiable; one that simplifies to a single
// literal is asserted immediately, which — because every earlier clause is
// already watching live literals — propagates through them exactly as it
// would during search, reproducing spec.md §4.10's batch preprocessing
// pass incrementally rather than as a separate step.
//
// AddClause panics if any literal names an undeclared variable.
func (s *Solver) AddClause(lits []Literal) error {
	for _, l := range lits {
		if v := l.VarID(); v < 0 || v >= s.numVars {
			panic("sat: clause references an undeclared variable")
		}
	}
	if s.unsat {
		return nil
	}

	filtered := make([]Literal, 0, len(lits))
	polarity := make(map[int]bool, len(lits))
	satisfied := false
	for _, l := range lits {
		switch s.tr.LitValue(l) {
		case True:
			satisfied = true
		case False:
			continue
		}
		v := l.VarID()
		if p, ok := polarity[v]; ok {
			if p != l.IsPositive() {
				satisfied = true // tautology: both polarities present
			}
			continue
		}
		polarity[v] = l.IsPositive()
		filtered = append(filtered, l)
	}
	if satisfied {
		return nil
	}

	switch len(filtered) {
	case 0:
		s.unsat = true
	case 1:
		l := filtered[0]
		if !s.prop.Set(l.VarID(), l.IsPositive(), noClause) {
			s.unsat = true
		}
	default:
		id, ok := s.cs.Push(filtered)
		if !ok {
			panic("sat: clause simplification produced an invalid arity")
		}
		s.wp.Attach(s.cs, id)
	}
	return nil
}

// Cancel requests that an in-progress Solve stop at its next safe point. It
// is safe to call from a goroutine other than the one running Solve.
func (s *Solver) Cancel() {
	s.cancelled.set()
}

// Solve runs the main search loop (spec.md §4.10) to completion, timeout,
// or cancellation.
func (s *Solver) Solve(ctx context.Context) Status {
	if s.unsat {
		s.status = StatusUnsatisfiable
		return s.status
	}

	seedHeuristic(s.opts.Mode, s.cs, s.heap, s.numVars, s.rng)

	var deadline time.Time
	hasDeadline := s.opts.Timeout > 0
	if hasDeadline {
		deadline = time.Now().Add(s.opts.Timeout)
	}

	s.status = s.search(ctx, deadline, hasDeadline)
	return s.status
}

// Result reports the solution in the conceptual form of spec.md §6: on SAT,
// a (numVars+1)-length vector whose index 0 is an unused sentinel and
// indices 1..numVars hold the signed DIMACS-style literal assigned to each
// variable; on UNSAT, a single zero; on timeout, a single -1.
func (s *Solver) Result() []int {
	switch s.status {
	case StatusSatisfiable:
		res := make([]int, s.numVars+1)
		for v := 0; v < s.numVars; v++ {
			lit := v + 1
			if s.tr.VarValue(v) == False {
				lit = -lit
			}
			res[v+1] = lit
		}
		return res
	case StatusUnsatisfiable:
		return []int{0}
	case StatusTimeout:
		return []int{-1}
	default:
		return nil
	}
}

// search is the body of spec.md §4.10's main loop, rewritten with a
// labeled continue in place of the reference's inner/outer goto-by-loop
// structure.
func (s *Solver) search(ctx context.Context, deadline time.Time, hasDeadline bool) Status {
	decayEnabled := s.opts.Mode&ModeVSIDS != 0

decisionLoop:
	for {
		if s.cancelled.isSet() {
			return StatusTimeout
		}
		if hasDeadline && time.Now().After(deadline) {
			return StatusTimeout
		}
		select {
		case <-ctx.Done():
			return StatusTimeout
		default:
		}

		vid, phase, ok := s.pickUnassignedVar()
		if !ok {
			return StatusSatisfiable
		}
		s.decisions++

		s.tr.BeginDecisionLevel()
		curVid, curSign, curSrc := vid, phase, noClause

		for {
			if s.prop.Set(curVid, curSign, curSrc) {
				continue decisionLoop
			}

			conflict := s.prop.Conflict()
			if conflict == noClause {
				return StatusUnsatisfiable
			}

			s.conflicts++
			if s.opts.MaxConflicts >= 0 && s.conflicts > s.opts.MaxConflicts {
				return StatusTimeout
			}

			res := s.an.Analyze(conflict, s.tr.DecisionLevel(), decayEnabled)
			switch res.outcome {
			case learnUnsat:
				return StatusUnsatisfiable
			case learnAssignment:
				s.backtrack(0)
				s.prop.Reset()
				if !s.prop.Set(res.vid, res.sign, noClause) {
					return StatusUnsatisfiable
				}
				continue decisionLoop
			default: // learnClause
				s.wp.Attach(s.cs, res.src)
				s.backtrack(res.backlv)
				s.prop.Reset()
				curVid, curSign, curSrc = res.vid, res.sign, res.src
			}
		}
	}
}

// pickUnassignedVar implements spec.md §4.9: pop from the heap until the
// popped variable is unassigned, and derive the branching phase from its
// sign-count. ok is false once the heap is exhausted (every variable
// assigned — the formula is satisfied).
func (s *Solver) pickUnassignedVar() (vid int, phase bool, ok bool) {
	for s.heap.Size() > 0 {
		v := s.heap.Pop()
		if s.tr.VarValue(v) == Unassigned {
			return v, s.heap.SignCount(v) > 0, true
		}
	}
	return 0, false, false
}

// backtrack implements spec.md §4.5: every variable unassigned above level
// L is restored to the priority heap as it is undone.
func (s *Solver) backtrack(level int) {
	s.tr.UndoAbove(level, func(v int) {
		s.heap.Restore(v)
	})
}
