package sat

// propagator implements Boolean Constraint Propagation over the
// two-watched-literal scheme (spec.md §4.4). It holds no state beyond the
// pending-propagation queue and the last conflict: the clause store, watch pool and trail are
// shared with the rest of the solver. Grounded on the original reference's
// `solver::set` (original_source/src/solver.cpp), reimplemented iteratively
// per spec.md §9 ("an iterative implementation using an explicit
// propagation queue over the trail is equivalent and preferable") using the
// same index-addressed `queue[T]` the teacher uses for its own worklists
// (queue.go).
type propagator struct {
	cs      *clauseStore
	wp      *watchPool
	tr      *trail
	pending *queue[int] // trail indices not yet used to drive watcher traversal

	conflict ClauseID // valid only immediately after Set returns false
}

func newPropagator(cs *clauseStore, wp *watchPool, tr *trail) *propagator {
	return &propagator{cs: cs, wp: wp, tr: tr, pending: newQueue[int](64), conflict: noClause}
}

// Conflict returns the clause that falsified during the last failing Set,
// or noClause if the failure was a direct contradiction with no antecedent
// (spec.md §4.4: "for the head of a decision level, src = NONE is forced").
func (p *propagator) Conflict() ClauseID {
	return p.conflict
}

// Set asserts variable v to val with antecedent src (noClause for a
// decision, or a preprocessing-time unit) and drives BCP to a fixed point.
// If v is already assigned, Set succeeds iff the existing value agrees.
func (p *propagator) Set(v int, val bool, src ClauseID) bool {
	p.conflict = noClause
	if cur := p.tr.VarValue(v); cur != Unassigned {
		return cur == Lift(val)
	}
	p.enqueue(v, val, src)
	return p.drain()
}

// Reset discards any pending, not-yet-traversed assignments. Called after a
// conflict aborts BCP partway through, before the solver backjumps: entries
// already on the trail are unwound by trail.UndoAbove, but any trail index
// still sitting in the pending queue above the backjump level must not be
// traversed once the trail has moved on.
func (p *propagator) Reset() {
	p.pending.Clear()
}

func (p *propagator) enqueue(v int, val bool, src ClauseID) {
	lit := NegativeLiteral(v)
	if val {
		lit = PositiveLiteral(v)
	}
	p.tr.Assign(lit, src)
	p.pending.Push(p.tr.Len() - 1)
}

// drain processes every queued trail position, in trail order, until the
// queue empties or a conflict is found.
func (p *propagator) drain() bool {
	for !p.pending.IsEmpty() {
		idx := p.pending.Pop()
		asserted := p.tr.At(idx)
		if !p.traverse(asserted.Opposite()) {
			return false
		}
	}
	return true
}

// traverse walks the watcher list for falsified (the literal just driven to
// False) and resolves every watcher on it, per spec.md §4.4. The list may be
// mutated mid-traversal (Case A splices a watcher to a different list), so
// `next` is captured before any splice and the loop stops after the watcher
// that was last in the list when traversal began, never revisiting a
// watcher moved away in the current pass (spec.md §5 "ordering guarantees").
func (p *propagator) traverse(falsified Literal) bool {
	head := p.wp.Head(falsified)
	if head == noWatcher {
		return true
	}
	w := head
	last := p.wp.watchers[head].prev
	for {
		next := p.wp.Next(w)
		if !p.resolveWatcher(falsified, w) {
			return false
		}
		if w == last {
			return true
		}
		w = next
	}
}

// resolveWatcher implements one step of spec.md §4.4's numbered procedure
// for watcher w, currently watching falsified at slot k of clause c.
func (p *propagator) resolveWatcher(falsified Literal, w watcherID) bool {
	c := p.wp.Clause(w)
	k := p.wp.Slot(w)
	otherIdx := p.cs.WatchIndex(c, k^1)
	otherLit := p.cs.WatchedLiteral(c, k^1)

	size := p.cs.Size(c)
	for i := 0; i < size; i++ {
		cand := p.cs.AdvanceWatch(c, k)
		if p.cs.WatchIndex(c, k) == otherIdx {
			// The rotation landed on the position the other watcher
			// already occupies; it cannot also become this slot's
			// position, so the iteration is spent without a check.
			continue
		}
		if p.tr.LitValue(cand) != False {
			// Case A: a new non-blocking watchable literal.
			p.wp.MoveTo(falsified, cand, w)
			return true
		}
	}

	// Case B: no replacement found; fall back to the other watched literal.
	switch p.tr.LitValue(otherLit) {
	case Unassigned:
		p.enqueue(otherLit.VarID(), otherLit.IsPositive(), c)
		return true
	case False:
		p.conflict = c
		return false
	default: // True: the clause is already satisfied; leave w in place.
		return true
	}
}
