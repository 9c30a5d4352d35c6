// Package timeline implements TimeTravelStore: an in-memory, time-ordered
// sequence of snapshots supporting nearest-time seek and independent
// forking.
package timeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/tx2pack/tx2pack/errs"
	"github.com/tx2pack/tx2pack/snapshot"
)

// TimeEntry pairs a world time with the snapshot recorded at that time.
type TimeEntry struct {
	TimeSeconds float64
	Snapshot    *snapshot.PackedSnapshot
}

// Store keeps entries sorted by TimeSeconds ascending; ties are appended
// after existing equal-time entries, preserving insertion order (stable).
type Store struct {
	entries []TimeEntry
}

// New creates an empty TimeTravelStore.
func New() *Store {
	return &Store{}
}

// Record inserts (t, snap) at its sorted position. NaN times are rejected.
func (s *Store) Record(t float64, snap *snapshot.PackedSnapshot) error {
	if math.IsNaN(t) {
		return fmt.Errorf("%w: time must not be NaN", errs.ErrInvalidFormat)
	}

	i := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].TimeSeconds > t })
	s.entries = append(s.entries, TimeEntry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = TimeEntry{TimeSeconds: t, Snapshot: snap}

	return nil
}

// SeekToTime returns the entry whose time is closest to target, preferring
// the earlier of two equidistant entries. False if the store is empty.
func (s *Store) SeekToTime(target float64) (TimeEntry, bool) {
	if len(s.entries) == 0 {
		return TimeEntry{}, false
	}

	i := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].TimeSeconds >= target })

	switch {
	case i == 0:
		return s.entries[0], true
	case i == len(s.entries):
		return s.entries[len(s.entries)-1], true
	default:
		before := s.entries[i-1]
		after := s.entries[i]
		if target-before.TimeSeconds <= after.TimeSeconds-target {
			return before, true
		}

		return after, true
	}
}

// ForkAtTime clones the snapshot returned by SeekToTime. The clone shares
// no mutable state with the store, so later Record/Prune calls never
// affect it.
func (s *Store) ForkAtTime(target float64) (*snapshot.PackedSnapshot, bool) {
	entry, ok := s.SeekToTime(target)
	if !ok {
		return nil, false
	}

	return cloneSnapshot(entry.Snapshot), true
}

// PruneBefore deletes all entries with TimeSeconds < t.
func (s *Store) PruneBefore(t float64) {
	i := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].TimeSeconds >= t })
	s.entries = append([]TimeEntry{}, s.entries[i:]...)
}

// PruneAfter deletes all entries with TimeSeconds > t.
func (s *Store) PruneAfter(t float64) {
	i := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].TimeSeconds > t })
	s.entries = append([]TimeEntry{}, s.entries[:i]...)
}

// Range returns entries with a <= time <= b.
func (s *Store) Range(a, b float64) []TimeEntry {
	lo := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].TimeSeconds >= a })
	hi := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].TimeSeconds > b })
	if lo >= hi {
		return nil
	}

	out := make([]TimeEntry, hi-lo)
	copy(out, s.entries[lo:hi])

	return out
}

// Len returns the number of recorded entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Snapshot returns a read-only copy of every recorded entry in time order,
// for inspection and debugging without exposing the internal slice.
func (s *Store) Snapshot() []TimeEntry {
	out := make([]TimeEntry, len(s.entries))
	copy(out, s.entries)

	return out
}
