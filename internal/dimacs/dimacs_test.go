package dimacs

import (
	"testing"

	"github.com/halvorsen-dev/cdclsat/internal/sat"
)

// recorder implements ClauseSink without running the solver, so tests can
// inspect exactly what LoadDIMACS parsed.
type recorder struct {
	variables int
	clauses   [][]sat.Literal
}

func (r *recorder) AddVariable() int {
	r.variables++
	return r.variables - 1
}

func (r *recorder) AddClause(lits []sat.Literal) error {
	clause := make([]sat.Literal, len(lits))
	copy(clause, lits)
	r.clauses = append(r.clauses, clause)
	return nil
}

func literalsEqual(a, b []sat.Literal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoadDIMACS_PlainText(t *testing.T) {
	got := &recorder{}
	if err := LoadDIMACS("testdata/test_instance.cnf", false, got); err != nil {
		t.Fatalf("LoadDIMACS() = %v, want nil", err)
	}
	if got.variables != 3 {
		t.Errorf("variables = %d, want 3", got.variables)
	}
	want := [][]sat.Literal{
		{sat.PositiveLiteral(0), sat.PositiveLiteral(1)},
		{sat.NegativeLiteral(0), sat.PositiveLiteral(2)},
		{sat.NegativeLiteral(1), sat.NegativeLiteral(2)},
	}
	if len(got.clauses) != len(want) {
		t.Fatalf("clauses = %v, want %v", got.clauses, want)
	}
	for i := range want {
		if !literalsEqual(got.clauses[i], want[i]) {
			t.Errorf("clause %d = %v, want %v", i, got.clauses[i], want[i])
		}
	}
}

func TestLoadDIMACS_Gzip(t *testing.T) {
	got := &recorder{}
	if err := LoadDIMACS("testdata/test_instance.cnf.gz", true, got); err != nil {
		t.Fatalf("LoadDIMACS() = %v, want nil", err)
	}
	if got.variables != 3 {
		t.Errorf("variables = %d, want 3", got.variables)
	}
	if len(got.clauses) != 3 {
		t.Errorf("clauses = %v, want 3 entries", got.clauses)
	}
}

func TestLoadDIMACS_MissingFile(t *testing.T) {
	got := &recorder{}
	if err := LoadDIMACS("testdata/does-not-exist.cnf", false, got); err == nil {
		t.Errorf("LoadDIMACS() = nil, want an error")
	}
}

func TestLoadDIMACS_GzipFlagOnPlainFile(t *testing.T) {
	got := &recorder{}
	if err := LoadDIMACS("testdata/test_instance.cnf", true, got); err == nil {
		t.Errorf("LoadDIMACS() = nil, want an error (not a gzip stream)")
	}
}

func TestLoadDIMACS_IntoRealSolver(t *testing.T) {
	s := sat.NewSolver(sat.Options{Mode: sat.ModeVSIDS, MaxConflicts: -1})
	if err := LoadDIMACS("testdata/test_instance.cnf", false, s); err != nil {
		t.Fatalf("LoadDIMACS() = %v, want nil", err)
	}
	if got, want := s.NumVariables(), 3; got != want {
		t.Fatalf("NumVariables() = %d, want %d", got, want)
	}
	if got, want := s.NumClauses(), 3; got != want {
		t.Fatalf("NumClauses() = %d, want %d", got, want)
	}
}

func TestReadModels(t *testing.T) {
	models, err := ReadModels("testdata/models.dimacs")
	if err != nil {
		t.Fatalf("ReadModels() = %v, want nil", err)
	}
	want := [][]bool{
		{true, true, false},
		{false, true, true},
	}
	if len(models) != len(want) {
		t.Fatalf("models = %v, want %v", models, want)
	}
	for i := range want {
		if len(models[i]) != len(want[i]) {
			t.Fatalf("model %d = %v, want %v", i, models[i], want[i])
		}
		for j := range want[i] {
			if models[i][j] != want[i][j] {
				t.Errorf("model %d[%d] = %v, want %v", i, j, models[i][j], want[i][j])
			}
		}
	}
}
