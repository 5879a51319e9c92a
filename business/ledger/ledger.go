// Package ledger owns the rolling emotion record buffer and its durable CSV
// renditions: full snapshots, eviction archives, periodic summaries and voice
// segments.
package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hopelabs/goFerWatch/business/emotion"
)

type Ledger struct {
	mu      sync.Mutex
	records []emotion.Record
}

func New() *Ledger {
	return &Ledger{}
}

// Append adds a record at the end. Timestamps must be non-decreasing in
// append order; a regressing record is rejected and the ledger unchanged.
func (l *Ledger) Append(r emotion.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n := len(l.records); n > 0 && r.Timestamp < l.records[n-1].Timestamp {
		return fmt.Errorf("ledger: timestamp regression: %v after %v", r.Timestamp, l.records[n-1].Timestamp)
	}

	l.records = append(l.records, r)
	return nil
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Snapshot returns a copy of the current records; readers never observe
// later mutation.
func (l *Ledger) Snapshot() []emotion.Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]emotion.Record, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
}

// SizeManage applies the rolling-buffer policy. When the ledger exceeds
// maxRows, records older than now-bufferSeconds are evicted and returned for
// archiving. If the recent set alone still exceeds maxRows, only the maxRows
// newest survive; the overflow count is returned as trimmed and that data is
// gone (deliberate loss, never archived). Relative order of survivors is
// untouched.
func (l *Ledger) SizeManage(now float64, maxRows int, bufferSeconds float64) (evicted []emotion.Record, trimmed int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.records) <= maxRows {
		return nil, 0
	}

	cutoff := now - bufferSeconds
	idx := sort.Search(len(l.records), func(i int) bool {
		return l.records[i].Timestamp >= cutoff
	})

	evicted = make([]emotion.Record, idx)
	copy(evicted, l.records[:idx])

	recent := l.records[idx:]
	if len(recent) > maxRows {
		trimmed = len(recent) - maxRows
		recent = recent[trimmed:]
	}

	survivors := make([]emotion.Record, len(recent))
	copy(survivors, recent)
	l.records = survivors

	return evicted, trimmed
}
