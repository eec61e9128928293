package trace

import (
	"errors"
	"fmt"
	"sort"

	"github.com/surfkit/layertrace/snapshot"
)

// Sentinel errors for trace queries.
var (
	// ErrEmptyTrace indicates a query on a trace with no entries.
	ErrEmptyTrace = errors.New("trace: trace has no entries")
	// ErrOutOfOrder indicates entries were supplied in non-ascending
	// elapsed-time order.
	ErrOutOfOrder = errors.New("trace: entries out of order")
	// ErrEntryNotFound indicates no entry matches the query.
	ErrEntryNotFound = errors.New("trace: entry not found")
)

// Trace is an ordered sequence of per-frame snapshots covering a capture
// interval. Entries are strictly ascending in elapsed time.
//
// A Trace is immutable after New and safe for concurrent reads.
type Trace struct {
	entries []*snapshot.Snapshot
}

// New builds a Trace from entries already ordered by elapsed timestamp.
// Returns ErrOutOfOrder when two consecutive entries violate strict
// ascending order. An empty trace is valid; queries on it fail with
// ErrEmptyTrace.
func New(entries ...*snapshot.Snapshot) (*Trace, error) {
	for i := 1; i < len(entries); i++ {
		if entries[i].ElapsedTimestamp <= entries[i-1].ElapsedTimestamp {
			return nil, fmt.Errorf("%w: entry %d (%dns) does not follow entry %d (%dns)",
				ErrOutOfOrder, i, entries[i].ElapsedTimestamp, i-1, entries[i-1].ElapsedTimestamp)
		}
	}
	return &Trace{entries: append([]*snapshot.Snapshot(nil), entries...)}, nil
}

// Len returns the number of entries.
func (t *Trace) Len() int { return len(t.entries) }

// Entries returns a copy of the entry slice in capture order.
func (t *Trace) Entries() []*snapshot.Snapshot {
	return append([]*snapshot.Snapshot(nil), t.entries...)
}

// First returns the earliest entry.
func (t *Trace) First() (*snapshot.Snapshot, error) {
	if len(t.entries) == 0 {
		return nil, ErrEmptyTrace
	}
	return t.entries[0], nil
}

// Last returns the latest entry.
func (t *Trace) Last() (*snapshot.Snapshot, error) {
	if len(t.entries) == 0 {
		return nil, ErrEmptyTrace
	}
	return t.entries[len(t.entries)-1], nil
}

// EntryAt returns the entry captured exactly at the given elapsed time.
// Complexity: O(log n).
func (t *Trace) EntryAt(elapsed int64) (*snapshot.Snapshot, error) {
	if len(t.entries) == 0 {
		return nil, ErrEmptyTrace
	}
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].ElapsedTimestamp >= elapsed
	})
	if i < len(t.entries) && t.entries[i].ElapsedTimestamp == elapsed {
		return t.entries[i], nil
	}
	return nil, fmt.Errorf("%w: no entry at elapsed %dns", ErrEntryNotFound, elapsed)
}

// EntryAtOrBefore returns the latest entry captured at or before the given
// elapsed time, the usual way to answer "what was on screen at time t".
// Complexity: O(log n).
func (t *Trace) EntryAtOrBefore(elapsed int64) (*snapshot.Snapshot, error) {
	if len(t.entries) == 0 {
		return nil, ErrEmptyTrace
	}
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].ElapsedTimestamp > elapsed
	})
	if i == 0 {
		return nil, fmt.Errorf("%w: trace starts after elapsed %dns", ErrEntryNotFound, elapsed)
	}
	return t.entries[i-1], nil
}

// ByVsync returns the entry with the given vsync id.
// Complexity: O(n); vsync ids are not guaranteed monotonic across dumps.
func (t *Trace) ByVsync(id int64) (*snapshot.Snapshot, error) {
	if len(t.entries) == 0 {
		return nil, ErrEmptyTrace
	}
	for _, e := range t.entries {
		if e.VsyncID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: no entry with vsync %d", ErrEntryNotFound, id)
}

// Slice returns the sub-trace of entries with from <= elapsed <= to.
// The result shares entry pointers with t but never its slice storage.
func (t *Trace) Slice(from, to int64) *Trace {
	lo := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].ElapsedTimestamp >= from
	})
	hi := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].ElapsedTimestamp > to
	})
	if lo >= hi {
		return &Trace{}
	}
	return &Trace{entries: append([]*snapshot.Snapshot(nil), t.entries[lo:hi]...)}
}
