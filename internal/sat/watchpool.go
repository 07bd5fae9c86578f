package sat

// watcherID indexes a watcherInfo record within the global watcher pool.
type watcherID int

// noWatcher is the sentinel for an empty watch list / absent link.
const noWatcher watcherID = -1

// watcherInfo is a node of the circular doubly linked watch list described
// in spec.md §3/§9: a clause, the watch slot (0 or 1) it occupies in that
// clause, and the prev/next links threading it into whichever list it
// currently belongs to. Grounded on the original reference's
// `WatcherInfo`/`appendListWatcher`/`swapListWatcher` (original_source
// src/solver.h, src/solver.cpp) expressed with the teacher's own idiom of
// flat, index-addressed record pools (internal/sat/clause_allocpool.go,
// queue.go) instead of pointers, so that splicing a watcher between lists
// never allocates.
type watcherInfo struct {
	clause ClauseID
	slot   int
	prev   watcherID
	next   watcherID
}

// watchPool owns every watcherInfo ever created during a solve (append-only,
// like the clause arena) plus the two per-variable list heads, pos[v] and
// neg[v], of spec.md §3.
type watchPool struct {
	watchers []watcherInfo
	pos      []watcherID
	neg      []watcherID
}

func newWatchPool() *watchPool {
	return &watchPool{}
}

// Expand grows the per-variable head tables for one newly declared variable.
func (wp *watchPool) Expand() {
	wp.pos = append(wp.pos, noWatcher)
	wp.neg = append(wp.neg, noWatcher)
}

// headPtr returns a pointer to the list head that watches literal l.
func (wp *watchPool) headPtr(l Literal) *watcherID {
	v := l.VarID()
	if l.IsPositive() {
		return &wp.pos[v]
	}
	return &wp.neg[v]
}

// Head returns the list head that watches literal l, or noWatcher if empty.
func (wp *watchPool) Head(l Literal) watcherID {
	return *wp.headPtr(l)
}

// Next returns the watcher following w within its current list. Callers
// must capture Next before mutating the list, since splicing w elsewhere
// invalidates its own next pointer (spec.md §4.4).
func (wp *watchPool) Next(w watcherID) watcherID {
	return wp.watchers[w].next
}

// Clause returns the clause that watcher w belongs to.
func (wp *watchPool) Clause(w watcherID) ClauseID {
	return wp.watchers[w].clause
}

// Slot returns the watch slot (0 or 1) that watcher w occupies in its
// clause.
func (wp *watchPool) Slot(w watcherID) int {
	return wp.watchers[w].slot
}

// append links e as the new last element of the circular list anchored at
// *head (O(1), no allocation).
func (wp *watchPool) append(head *watcherID, e watcherID) {
	if *head == noWatcher {
		*head = e
		wp.watchers[e].prev = e
		wp.watchers[e].next = e
		return
	}
	prev := wp.watchers[*head].prev
	wp.watchers[e].next = *head
	wp.watchers[e].prev = prev
	wp.watchers[prev].next = e
	wp.watchers[*head].prev = e
}

// NewWatcher allocates a fresh watcher record for (c, slot) and links it
// into the list watching literal l. It returns the new watcher's id.
func (wp *watchPool) NewWatcher(c ClauseID, slot int, l Literal) watcherID {
	id := watcherID(len(wp.watchers))
	wp.watchers = append(wp.watchers, watcherInfo{clause: c, slot: slot})
	wp.append(wp.headPtr(l), id)
	return id
}

// Attach registers the two initial watchers for clause c against whichever
// literals currently sit in its watch slots 0 and 1. Called once, right
// after the clause is pushed onto the clause store.
func (wp *watchPool) Attach(cs *clauseStore, c ClauseID) {
	wp.NewWatcher(c, 0, cs.WatchedLiteral(c, 0))
	wp.NewWatcher(c, 1, cs.WatchedLiteral(c, 1))
}

// MoveTo unlinks watcher w from the list watching oldLit and appends it to
// the list watching newLit, in O(1).
func (wp *watchPool) MoveTo(oldLit, newLit Literal, w watcherID) {
	from := wp.headPtr(oldLit)
	if w == *from {
		if wp.watchers[w].next == w {
			*from = noWatcher
		} else {
			*from = wp.watchers[w].next
		}
	}
	p := wp.watchers[w].prev
	n := wp.watchers[w].next
	wp.watchers[p].next = n
	wp.watchers[n].prev = p

	wp.append(wp.headPtr(newLit), w)
}
