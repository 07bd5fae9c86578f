package sat

import "math"

// decayFactor is the fixed per-tick multiplicative decay applied to every
// variable's priority (spec.md §3, §4.7, §9 "Lazy exponential decay").
const decayFactor = 0.9

// bumpDelta is the fixed amount conflict analysis adds to a variable's
// priority each time it is resolved upon (spec.md §4.6, step 1: "bump v's
// priority by (1 − decayFactor) = 0.1").
const bumpDelta = 1 - decayFactor

// heapEntry is one slot of the priority heap's backing array: a raw
// priority, the variable it belongs to, and the decay tick at which the
// priority was last normalized.
type heapEntry struct {
	pri       float64
	v         int
	lastEvalT uint64
}

// varHeap is a binary max-heap over variables keyed by a lazily decayed
// priority, plus a per-variable sign-count used to pick the branching phase
// (spec.md §3 "Priority heap", §4.7, §4.9). It is a bespoke structure: none
// of the retrieved example repos' heap libraries expose per-comparison lazy
// decay (the teacher's own ordering.go instead rescales eagerly via a
// shared scoreInc, which cannot reproduce the epoch-indexed semantics spec.md
// requires — see DESIGN.md). It is built the way the teacher builds its own
// array-backed structures (queue.go's ring buffer, clause_allocpool.go's
// index-addressed pools): flat slices addressed by index, no pointers,
// amortized allocation-free mutation. The heap shape itself — a 1-indexed
// array-as-heap with a var->index mapping and a parallel sign-count array —
// is carried over directly from the original reference's heap.h, translated
// to Go's conventional 0-indexed array-as-heap layout.
type varHeap struct {
	arr       []heapEntry
	mapping   []int // var -> index in arr
	signCount []int // per variable

	size int // number of array slots currently inside the heap
	nowT uint64
}

func newVarHeap() *varHeap {
	return &varHeap{}
}

// Expand appends a new variable to the heap's backing storage with zero
// priority. The variable is not yet heap-ordered until Heapify runs;
// between Expand and Heapify its priority may be built up with
// BumpPriority (used by the static initializers of spec.md §4.8).
func (h *varHeap) Expand() {
	idx := len(h.arr)
	h.arr = append(h.arr, heapEntry{v: idx})
	h.mapping = append(h.mapping, idx)
	h.signCount = append(h.signCount, 0)
}

// Heapify admits every variable appended since the last Heapify into the
// heap proper, in index order, via repeated sift-up. Called once after the
// heuristic initializer seeds priorities (spec.md §4.8).
func (h *varHeap) Heapify() {
	for h.size < len(h.arr) {
		h.siftUp(h.size)
		h.size++
	}
}

// Size returns the number of variables currently in the heap. Variables
// assigned by propagation stay in the heap until popped, so this can exceed
// the number of unassigned variables.
func (h *varHeap) Size() int {
	return h.size
}

// Top returns the variable with the highest current priority without
// removing it.
func (h *varHeap) Top() int {
	return h.arr[0].v
}

// Pop removes and returns the variable with the highest current priority.
func (h *varHeap) Pop() int {
	v := h.arr[0].v
	h.swapEntry(0, h.size-1)
	h.size--
	h.siftDown(0)
	return v
}

// Restore re-admits a previously popped variable at its current (decayed)
// priority. Used by the solver on backtrack, per spec.md §4.5.
func (h *varHeap) Restore(v int) {
	id := h.mapping[v]
	if id < h.size {
		return // already in the heap
	}
	h.size++
	last := h.size - 1
	if id != last {
		h.swapEntry(id, last)
	}
	h.siftUp(last)
}

// SignCount returns the running polarity balance for v: positive means v
// has more often been bumped with positive polarity than negative.
func (h *varHeap) SignCount(v int) int {
	return h.signCount[v]
}

// BumpPriority adds delta to v's priority (after lazily normalizing it for
// the current decay epoch) and adjusts its sign-count by +1/-1 according to
// sign. It is used both to seed initial priorities (spec.md §4.8, where v is
// not yet in the heap and the sift is a no-op) and to bump priorities during
// conflict analysis (spec.md §4.6).
func (h *varHeap) BumpPriority(v int, delta float64, sign bool) {
	id := h.mapping[v]
	h.addPri(id, delta)
	if sign {
		h.signCount[v]++
	} else {
		h.signCount[v]--
	}
	if id < h.size {
		h.siftUp(id)
	}
}

// DecayAll advances the decay tick. No entry is touched immediately;
// priorities are renormalized lazily on next access (spec.md §4.7, §9).
func (h *varHeap) DecayAll() {
	h.nowT++
}

// getPri returns the up-to-date (decay-normalized) priority at array index
// id, updating the stored value and its eval tick so repeated reads in the
// same epoch are O(1).
func (h *varHeap) getPri(id int) float64 {
	e := &h.arr[id]
	if e.lastEvalT != h.nowT {
		e.pri *= math.Pow(decayFactor, float64(h.nowT-e.lastEvalT))
		e.lastEvalT = h.nowT
	}
	return e.pri
}

func (h *varHeap) addPri(id int, delta float64) {
	h.arr[id].pri = h.getPri(id) + delta
}

func (h *varHeap) swapEntry(a, b int) {
	h.mapping[h.arr[a].v] = b
	h.mapping[h.arr[b].v] = a
	h.arr[a], h.arr[b] = h.arr[b], h.arr[a]
}

func (h *varHeap) siftUp(id int) {
	for id > 0 {
		parent := (id - 1) / 2
		if h.getPri(parent) >= h.getPri(id) {
			break
		}
		h.swapEntry(parent, id)
		id = parent
	}
}

func (h *varHeap) siftDown(id int) {
	for {
		l, r := 2*id+1, 2*id+2
		largest := id
		if l < h.size && h.getPri(l) > h.getPri(largest) {
			largest = l
		}
		if r < h.size && h.getPri(r) > h.getPri(largest) {
			largest = r
		}
		if largest == id {
			break
		}
		h.swapEntry(id, largest)
		id = largest
	}
}
