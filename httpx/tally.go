package httpx

import (
	"sync/atomic"
	"time"

	"github.com/adeilh/go-rakh-status/httpx/statusclass"
)

// ClassTally counts observed status codes per status class. The zero value
// is ready to use and safe for concurrent callers.
type ClassTally struct {
	counts [statusclass.ServerError + 1]atomic.Uint64
}

// TallySnapshot is a point-in-time copy of a ClassTally.
type TallySnapshot struct {
	TakenAt time.Time
	Counts  map[statusclass.Class]uint64
}

// Total sums the counts of every class.
func (s TallySnapshot) Total() uint64 {
	var n uint64
	for _, v := range s.Counts {
		n += v
	}
	return n
}

// NewClassTally returns an empty tally.
func NewClassTally() *ClassTally { return &ClassTally{} }

// Observe classifies code, records it and returns its class.
func (t *ClassTally) Observe(code int) StatusClass {
	class := statusclass.ClassOf(code)
	t.counts[class].Add(1)
	return class
}

// Count returns the number of observations recorded for class.
func (t *ClassTally) Count(class StatusClass) uint64 {
	if !class.Valid() {
		return 0
	}
	return t.counts[class].Load()
}

// Snapshot copies the current counters. Classes that were never observed
// are omitted.
func (t *ClassTally) Snapshot() TallySnapshot {
	snap := TallySnapshot{TakenAt: time.Now().UTC(), Counts: make(map[statusclass.Class]uint64)}
	for _, class := range statusclass.All() {
		if n := t.counts[class].Load(); n > 0 {
			snap.Counts[class] = n
		}
	}
	return snap
}

// Reset zeroes every counter and returns the values it replaced.
func (t *ClassTally) Reset() TallySnapshot {
	snap := TallySnapshot{TakenAt: time.Now().UTC(), Counts: make(map[statusclass.Class]uint64)}
	for _, class := range statusclass.All() {
		if n := t.counts[class].Swap(0); n > 0 {
			snap.Counts[class] = n
		}
	}
	return snap
}
