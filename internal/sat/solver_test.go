package sat

import (
	"context"
	"testing"
)

func newTestSolver(numVars int, mode Mode) *Solver {
	s := NewSolver(Options{Mode: mode, MaxConflicts: -1})
	for i := 0; i < numVars; i++ {
		s.AddVariable()
	}
	return s
}

// TestSolver_E1 mirrors spec.md §8 scenario E1: a single unit clause.
func TestSolver_E1_UnitClauseIsSatisfiable(t *testing.T) {
	s := newTestSolver(1, ModeVSIDS)
	mustAddClause(t, s, PositiveLiteral(0))

	if got, want := s.Solve(context.Background()), StatusSatisfiable; got != want {
		t.Fatalf("Solve() = %v, want %v", got, want)
	}
	res := s.Result()
	if len(res) != 2 || res[1] != 1 {
		t.Errorf("Result() = %v, want [_, 1]", res)
	}
}

// TestSolver_E2 mirrors spec.md §8 scenario E2: two unit clauses that
// contradict each other.
func TestSolver_E2_ContradictingUnitsIsUnsatisfiable(t *testing.T) {
	s := newTestSolver(1, ModeVSIDS)
	mustAddClause(t, s, PositiveLiteral(0))
	mustAddClause(t, s, NegativeLiteral(0))

	if got, want := s.Solve(context.Background()), StatusUnsatisfiable; got != want {
		t.Fatalf("Solve() = %v, want %v", got, want)
	}
	if got, want := s.Result(), []int{0}; len(got) != len(want) || got[0] != want[0] {
		t.Errorf("Result() = %v, want %v", got, want)
	}
}

// TestSolver_E3 mirrors spec.md §8 scenario E3.
func TestSolver_E3_ThreeClausesSatisfiable(t *testing.T) {
	s := newTestSolver(3, ModeVSIDS|ModeMOM)
	mustAddClause(t, s, PositiveLiteral(0), PositiveLiteral(1))
	mustAddClause(t, s, NegativeLiteral(0), PositiveLiteral(2))
	mustAddClause(t, s, NegativeLiteral(1), NegativeLiteral(2))

	if got, want := s.Solve(context.Background()), StatusSatisfiable; got != want {
		t.Fatalf("Solve() = %v, want %v", got, want)
	}
	assertModel(t, s, [][]int{{1, 2}, {-1, 3}, {-2, -3}})
}

// TestSolver_E4 mirrors spec.md §8 scenario E4: pigeonhole PHP(3,2), 3
// pigeons into 2 holes, standard encoding. Variable v(p,h) = p*2+h, 0-based
// (p in 0..2, h in 0..1).
func TestSolver_E4_PigeonholeIsUnsatisfiable(t *testing.T) {
	s := newTestSolver(6, ModeVSIDS|ModeJW)
	v := func(p, h int) int { return p*2 + h }

	// Every pigeon sits in at least one hole.
	for p := 0; p < 3; p++ {
		mustAddClause(t, s, PositiveLiteral(v(p, 0)), PositiveLiteral(v(p, 1)))
	}
	// No hole holds two pigeons.
	for h := 0; h < 2; h++ {
		for p1 := 0; p1 < 3; p1++ {
			for p2 := p1 + 1; p2 < 3; p2++ {
				mustAddClause(t, s, NegativeLiteral(v(p1, h)), NegativeLiteral(v(p2, h)))
			}
		}
	}

	if got, want := s.Solve(context.Background()), StatusUnsatisfiable; got != want {
		t.Fatalf("Solve() = %v, want %v", got, want)
	}
}

// TestSolver_E5 mirrors spec.md §8 scenario E5: an unsatisfiable core over
// two variables, plus two unconstrained variables that cannot rescue it.
func TestSolver_E5_UnsatisfiableCoreWithUnconstrainedVars(t *testing.T) {
	s := newTestSolver(4, ModeVSIDS)
	mustAddClause(t, s, PositiveLiteral(0), PositiveLiteral(1))
	mustAddClause(t, s, NegativeLiteral(0), PositiveLiteral(1))
	mustAddClause(t, s, PositiveLiteral(0), NegativeLiteral(1))
	mustAddClause(t, s, NegativeLiteral(0), NegativeLiteral(1))

	if got, want := s.Solve(context.Background()), StatusUnsatisfiable; got != want {
		t.Fatalf("Solve() = %v, want %v", got, want)
	}
}

// TestSolver_E6 mirrors spec.md §8 scenario E6: a tautological clause is
// treated as already satisfied, leaving the rest of the formula to decide
// satisfiability.
func TestSolver_E6_TautologyIsIgnored(t *testing.T) {
	s := newTestSolver(1, ModeVSIDS)
	mustAddClause(t, s, PositiveLiteral(0), NegativeLiteral(0))

	if got, want := s.NumClauses(), 0; got != want {
		t.Fatalf("NumClauses() = %d, want %d (tautology must not be stored)", got, want)
	}
	if got, want := s.Solve(context.Background()), StatusSatisfiable; got != want {
		t.Fatalf("Solve() = %v, want %v", got, want)
	}
}

// TestSolver_DecisionsAndConflictsAreTracked exercises the Decisions and
// Conflicts accessors against the pigeonhole instance of E4, which cannot
// be resolved by load-time unit propagation alone and so must branch and
// backtrack at least once.
func TestSolver_DecisionsAndConflictsAreTracked(t *testing.T) {
	s := newTestSolver(6, ModeVSIDS|ModeJW)
	v := func(p, h int) int { return p*2 + h }
	for p := 0; p < 3; p++ {
		mustAddClause(t, s, PositiveLiteral(v(p, 0)), PositiveLiteral(v(p, 1)))
	}
	for h := 0; h < 2; h++ {
		for p1 := 0; p1 < 3; p1++ {
			for p2 := p1 + 1; p2 < 3; p2++ {
				mustAddClause(t, s, NegativeLiteral(v(p1, h)), NegativeLiteral(v(p2, h)))
			}
		}
	}

	if got, want := s.Solve(context.Background()), StatusUnsatisfiable; got != want {
		t.Fatalf("Solve() = %v, want %v", got, want)
	}
	if s.Decisions() == 0 {
		t.Errorf("Decisions() = 0, want > 0 for an instance with no forced units")
	}
	if s.Conflicts() == 0 {
		t.Errorf("Conflicts() = 0, want > 0 for an instance refuted by search")
	}
}

func TestSolver_AddClauseOnUndeclaredVariablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("AddClause with an out-of-range variable: want panic, got none")
		}
	}()
	s := newTestSolver(1, ModeVSIDS)
	s.AddClause([]Literal{PositiveLiteral(5)})
}

func mustAddClause(t *testing.T, s *Solver, lits ...Literal) {
	t.Helper()
	if err := s.AddClause(lits); err != nil {
		t.Fatalf("AddClause(%v) = %v, want nil", lits, err)
	}
}

// assertModel checks that the solver's result satisfies every clause in
// clauses, expressed as signed 1-based DIMACS-style literals.
func assertModel(t *testing.T, s *Solver, clauses [][]int) {
	t.Helper()
	res := s.Result()
	for _, clause := range clauses {
		ok := false
		for _, lit := range clause {
			v := lit
			if v < 0 {
				v = -v
			}
			if res[v] == lit {
				ok = true
				break
			}
		}
		if !ok {
			t.Errorf("clause %v not satisfied by model %v", clause, res)
		}
	}
}
