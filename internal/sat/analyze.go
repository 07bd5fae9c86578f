package sat

// outcome enumerates what a conflict analysis pass decided to do, mirroring
// the reference's LEARN_UNSAT / LEARN_ASSIGNMENT / LEARN_CLAUSE trio
// (original_source/src/solver.h).
type outcome int

const (
	learnUnsat outcome = iota
	learnAssignment
	learnClause
)

// analysisResult bundles what the main search loop needs after a
// non-UNSAT conflict analysis: the next variable/phase/antecedent to
// assert, and (for learnClause) the backjump target level.
type analysisResult struct {
	outcome outcome
	vid     int
	sign    bool
	src     ClauseID
	backlv  int
}

// analyzer performs first-UIP conflict analysis, self-subsumption
// minimization, and backjump-level computation (spec.md §4.6). One instance
// is built per solve and reused across every conflict — the marker table
// is cleared in O(1) rather than rebuilt. Grounded closely on the original
// reference's firstUIP/_resolve/minimizeLearntCls/isFromUIP
// (original_source/src/solver.cpp, src/solver.h), with its hand-rolled reset
// vectors replaced by the teacher's markerTable idiom.
type analyzer struct {
	cs   *clauseStore
	tr   *trail
	heap *varHeap

	seen   *markerTable // variable -> polarity (0/1) while marked, -1 otherwise
	learnt []Literal
}

func newAnalyzer(cs *clauseStore, tr *trail, heap *varHeap) *analyzer {
	return &analyzer{cs: cs, tr: tr, heap: heap, seen: newMarkerTable(0)}
}

// Expand grows the analyzer's per-variable marker table for one newly
// declared variable.
func (an *analyzer) Expand() {
	an.seen.Expand()
}

func polarityCode(positive bool) int {
	if positive {
		return 1
	}
	return 0
}

// resolve implements spec.md §4.6 step 1 against clause c, excluding
// variable exclude (-1 excludes nothing). It returns the number of
// variables newly marked at decisionLevel, or ok=false if a literal's
// variable was already marked with the opposite polarity — a malformed
// antecedent, reported as immediate UNSAT (spec.md §7).
func (an *analyzer) resolve(c ClauseID, exclude, decisionLevel int) (count int, ok bool) {
	size := an.cs.Size(c)
	for i := 0; i < size; i++ {
		lit := an.cs.Literal(c, i)
		v := lit.VarID()
		if v == exclude {
			continue
		}
		sign := polarityCode(lit.IsPositive())
		if an.seen.Get(v) == sign {
			continue
		}
		if an.seen.Get(v) != -1 {
			return 0, false
		}
		an.seen.Set(v, sign)
		an.heap.BumpPriority(v, bumpDelta, lit.IsPositive())
		if an.tr.Level(v) == decisionLevel {
			count++
		} else {
			an.learnt = append(an.learnt, lit)
		}
	}
	return count, true
}

// Analyze runs 1UIP resolution and minimization over conflict at the
// current decision level, and reports what the main loop should do next. If
// decay is set, the priority heap's decay tick advances first (spec.md
// §4.7, gated on the VSIDS mode bit — see Mode).
func (an *analyzer) Analyze(conflict ClauseID, decisionLevel int, decay bool) analysisResult {
	if decay {
		an.heap.DecayAll()
	}

	an.seen.Clear()
	an.learnt = an.learnt[:0]

	todo, ok := an.resolve(conflict, -1, decisionLevel)
	if !ok {
		return analysisResult{outcome: learnUnsat}
	}

	top := an.tr.Len() - 1
	for todo > 1 {
		for an.seen.Get(an.tr.At(top).VarID()) == -1 {
			top--
		}
		v := an.tr.At(top).VarID()
		n, ok := an.resolve(an.tr.Reason(v), v, decisionLevel)
		if !ok {
			return analysisResult{outcome: learnUnsat}
		}
		todo += n - 1
		top--
	}

	for an.seen.Get(an.tr.At(top).VarID()) == -1 {
		top--
	}
	uipVar := an.tr.At(top).VarID()
	uip := NegativeLiteral(uipVar)
	if an.tr.VarValue(uipVar) == False {
		uip = PositiveLiteral(uipVar)
	}
	an.learnt = append(an.learnt, uip)

	an.minimize()

	return an.finish()
}

// minimize implements spec.md §4.6's self-subsumption pass: a non-UIP
// literal is dropped if every other literal of its antecedent is "derived
// from the UIP" per fromUIP.
func (an *analyzer) minimize() {
	an.seen.Clear()

	for _, l := range an.learnt {
		an.seen.Set(l.VarID(), polarityCode(l.IsPositive()))
	}

	del := make([]bool, len(an.learnt))
	removed := 0
	for i := len(an.learnt) - 2; i >= 0; i-- {
		v := an.learnt[i].VarID()
		src := an.tr.Reason(v)
		if src == noClause {
			continue
		}
		subsumed := true
		size := an.cs.Size(src)
		for j := 0; j < size; j++ {
			lit := an.cs.Literal(src, j)
			if lit.VarID() != v && !an.fromUIP(lit.VarID(), polarityCode(lit.IsPositive())) {
				subsumed = false
				break
			}
		}
		if subsumed {
			del[i] = true
			removed++
		}
	}

	if removed == 0 {
		return
	}
	j := 0
	for i, l := range an.learnt {
		if !del[i] {
			an.learnt[j] = l
			j++
		}
	}
	an.learnt = an.learnt[:j]
}

// fromUIP reports whether literal (v, sign) is entailed by the UIP: either
// it has no antecedent (false, and not a decision other than the UIP
// itself), or every other literal of its antecedent is itself fromUIP.
// Results are memoized in the same marker table minimize() seeded with the
// learned clause's own literals.
func (an *analyzer) fromUIP(v, sign int) bool {
	if cached := an.seen.Get(v); cached != -1 {
		return cached == sign
	}
	src := an.tr.Reason(v)
	if src == noClause {
		an.seen.Set(v, 2)
		return false
	}
	size := an.cs.Size(src)
	for i := 0; i < size; i++ {
		lit := an.cs.Literal(src, i)
		nv := lit.VarID()
		if nv != v && !an.fromUIP(nv, polarityCode(lit.IsPositive())) {
			an.seen.Set(v, 2)
			return false
		}
	}
	an.seen.Set(v, sign)
	return true
}

// finish computes the backjump level and, unless the result degenerates to
// a top-level unit, pushes the learned clause and reports its UIP.
func (an *analyzer) finish() analysisResult {
	backlv := 0
	towatch := -1
	for i := 0; i < len(an.learnt)-1; i++ {
		if lv := an.tr.Level(an.learnt[i].VarID()); lv > backlv {
			backlv = lv
			towatch = i
		}
	}

	uip := an.learnt[len(an.learnt)-1]

	if len(an.learnt) == 1 || backlv == 0 {
		return analysisResult{
			outcome: learnAssignment,
			vid:     uip.VarID(),
			sign:    uip.IsPositive(),
			src:     noClause,
			backlv:  0,
		}
	}

	id, ok := an.cs.Push(an.learnt)
	if !ok {
		panic("analyzer: learned clause has fewer than two literals after minimization")
	}
	an.cs.SetWatchIndex(id, 0, towatch)
	an.cs.SetWatchIndex(id, 1, len(an.learnt)-1)

	return analysisResult{
		outcome: learnClause,
		vid:     uip.VarID(),
		sign:    uip.IsPositive(),
		src:     id,
		backlv:  backlv,
	}
}
