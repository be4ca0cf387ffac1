// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger holds the mutable mapping from an active search keyword to
// its accumulated result bucket. The keyword is identity, not just a label:
// disambiguation and empty-result recovery rename it mid-session, and the
// bucket must survive the rename. Rebind is the only sanctioned way to do
// that rename.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shakeelsaga/sourcefolio/pkg/types"
)

var (
	// ErrDuplicateKey is returned by Create when the key is already live.
	ErrDuplicateKey = errors.New("duplicate keyword")

	// ErrKeyNotFound is returned by Rebind when the old key is not live.
	ErrKeyNotFound = errors.New("keyword not found")
)

// Entry pairs a live keyword with its bucket, in input order.
type Entry struct {
	Key    string
	Bucket *types.Bucket
}

// Ledger is an insertion-ordered map of keyword to bucket. It is mutated
// only from the single session control goroutine, so it carries no lock.
//
// The order slice never shrinks: a merge leaves an empty string in the
// vacated slot so that positions of the remaining keys stay stable while a
// caller iterates by index.
type Ledger struct {
	order   []string
	buckets map[string]*types.Bucket
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{buckets: make(map[string]*types.Bucket)}
}

// Create inserts key with an empty bucket at the chosen detail level.
// Callers must dedupe input first; a live duplicate is a contract violation.
func (l *Ledger) Create(key string, detail types.DetailLevel) error {
	if _, ok := l.buckets[key]; ok {
		return fmt.Errorf("%q: %w", key, ErrDuplicateKey)
	}
	l.order = append(l.order, key)
	l.buckets[key] = &types.Bucket{Detail: detail}
	return nil
}

// Get returns the bucket for key, if key is live.
func (l *Ledger) Get(key string) (*types.Bucket, bool) {
	b, ok := l.buckets[key]
	return b, ok
}

// Rebind atomically moves the bucket from oldKey to newKey, keeping oldKey's
// position in input order. If newKey is already live the two entries collapse
// into one at newKey's position: newKey's bucket keeps its attempted slots and
// inherits oldKey's where its own are unset, so neither side's collected work
// is discarded. The vacated slot stays in the order as a hole so the
// positions of the other keys do not shift.
func (l *Ledger) Rebind(oldKey, newKey string) error {
	if oldKey == newKey {
		return nil
	}
	moved, ok := l.buckets[oldKey]
	if !ok {
		return fmt.Errorf("%q: %w", oldKey, ErrKeyNotFound)
	}

	if existing, ok := l.buckets[newKey]; ok {
		existing.Merge(moved)
		delete(l.buckets, oldKey)
		l.vacateSlot(oldKey)
		return nil
	}

	delete(l.buckets, oldKey)
	l.buckets[newKey] = moved
	for i, k := range l.order {
		if k == oldKey {
			l.order[i] = newKey
			break
		}
	}
	return nil
}

func (l *Ledger) vacateSlot(key string) {
	for i, k := range l.order {
		if k == key {
			l.order[i] = ""
			return
		}
	}
}

// Len returns the number of live keywords.
func (l *Ledger) Len() int { return len(l.buckets) }

// Slots returns the number of order positions, vacated ones included.
// Slots never shrinks during a session, so indexing 0..Slots()-1 visits
// every key exactly once even while rebinds happen mid-iteration.
func (l *Ledger) Slots() int { return len(l.order) }

// KeyAt returns the keyword at position i, or "" for a slot vacated by a
// merge. The position is stable across rebinds, which makes index iteration
// a live view of the ledger.
func (l *Ledger) KeyAt(i int) string { return l.order[i] }

// Keys returns the live keywords in input order.
func (l *Ledger) Keys() []string {
	keys := make([]string, 0, len(l.buckets))
	for _, k := range l.order {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Snapshot returns the ordered entries for export. The buckets are shared,
// not copied: by the time exporters run, the session no longer mutates them.
func (l *Ledger) Snapshot() []Entry {
	entries := make([]Entry, 0, len(l.buckets))
	for _, k := range l.order {
		if k != "" {
			entries = append(entries, Entry{Key: k, Bucket: l.buckets[k]})
		}
	}
	return entries
}

// HasData reports whether any live bucket holds usable data.
func (l *Ledger) HasData() bool {
	for _, b := range l.buckets {
		if b.HasData() {
			return true
		}
	}
	return false
}
