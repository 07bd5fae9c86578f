package sat

import "sync/atomic"

// boolFlag is a monotonic cancellation flag: set once, read many times from
// any goroutine (spec.md §5, "a monotonic cancellation flag ... enabling
// the caller to abort solving from another thread").
type boolFlag struct {
	v atomic.Bool
}

func (f *boolFlag) set() {
	f.v.Store(true)
}

func (f *boolFlag) isSet() bool {
	return f.v.Load()
}
