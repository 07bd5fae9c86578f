package sat

// markerTable is an epoch-versioned integer array providing O(1) Clear. It
// generalizes the teacher's ResetSet (a presence-only set) to store an
// arbitrary small integer per slot, which conflict analysis uses to record a
// literal's polarity (0/1) or the "not derived from the UIP" sentinel (2)
// without ever walking the table to reset it between conflicts.
type markerTable struct {
	values []int
	epoch  []uint32
	nowT   uint32
}

// newMarkerTable returns a table with capacity for n variable ids.
func newMarkerTable(n int) *markerTable {
	return &markerTable{
		values: make([]int, n),
		epoch:  make([]uint32, n),
		nowT:   1,
	}
}

// Expand grows the table by one slot, e.g. when a new variable is declared.
func (m *markerTable) Expand() {
	m.values = append(m.values, 0)
	m.epoch = append(m.epoch, 0)
}

// Get returns the value last Set for i during the current epoch, or -1 if i
// has not been Set since the last Clear.
func (m *markerTable) Get(i int) int {
	if m.epoch[i] != m.nowT {
		return -1
	}
	return m.values[i]
}

// Set records x as the value for i in the current epoch.
func (m *markerTable) Set(i, x int) {
	m.values[i] = x
	m.epoch[i] = m.nowT
}

// Clear discards every entry in O(1) by advancing the epoch counter.
func (m *markerTable) Clear() {
	m.nowT++
	if m.nowT == 0 { // wrapped around a 32-bit counter; reset explicitly.
		m.nowT = 1
		for i := range m.epoch {
			m.epoch[i] = 0
		}
	}
}
