// Package store holds the in-memory lawyer collection.
package store

import (
	"sync"

	"github.com/JonMunkholm/lawdir/internal/core"
)

// Memory is a concurrency-safe, insertion-ordered collection of records.
// Identifiers are assigned monotonically and never reused.
type Memory struct {
	mu      sync.RWMutex
	records []core.Record
	index   map[int]int // id -> position in records
	nextID  int
}

var _ core.Repository = (*Memory)(nil)

// NewMemory returns a store seeded with records. Seed identifiers are kept;
// new identifiers continue after the highest one.
func NewMemory(seed []core.Record) *Memory {
	m := &Memory{nextID: 1}
	m.Replace(seed)
	return m
}

// List returns a copy of every record in insertion order.
func (m *Memory) List() []core.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot()
}

// Get returns the record with the given id.
func (m *Memory) Get(id int) (core.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pos, ok := m.index[id]
	if !ok {
		return core.Record{}, core.ErrNotFound
	}
	return m.records[pos].Clone(), nil
}

// Len returns the number of records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Add appends a draft and returns the stored record.
func (m *Memory) Add(d core.Draft) core.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendLocked(d).Clone()
}

// Patch applies a partial update in place.
func (m *Memory) Patch(id int, p core.Patch) (core.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pos, ok := m.index[id]
	if !ok {
		return core.Record{}, core.ErrNotFound
	}
	updated := p.Apply(m.records[pos])
	updated.ID = id
	m.records[pos] = updated
	return updated.Clone(), nil
}

// Delete removes a single record.
func (m *Memory) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.index[id]; !ok {
		return core.ErrNotFound
	}
	m.removeLocked(map[int]bool{id: true})
	return nil
}

// DeleteMany removes every listed id that exists and returns how many were removed.
func (m *Memory) DeleteMany(ids []int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	drop := make(map[int]bool, len(ids))
	for _, id := range ids {
		if _, ok := m.index[id]; ok {
			drop[id] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}
	m.removeLocked(drop)
	return len(drop)
}

// Commit runs plan against a snapshot under the write lock and appends the
// drafts it returns. Nothing is appended when plan fails.
func (m *Memory) Commit(plan func(existing []core.Record) ([]core.Draft, error)) ([]core.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	drafts, err := plan(m.snapshot())
	if err != nil {
		return nil, err
	}
	out := make([]core.Record, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, m.appendLocked(d).Clone())
	}
	return out, nil
}

// Replace swaps the whole collection. Records without an id, or whose id is
// already used in the batch, get a fresh one. nextID never moves backwards.
func (m *Memory) Replace(records []core.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	maxID := 0
	for _, r := range records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	if maxID+1 > m.nextID {
		m.nextID = maxID + 1
	}

	m.records = make([]core.Record, 0, len(records))
	m.index = make(map[int]int, len(records))
	for _, r := range records {
		rec := r.Clone()
		if _, dup := m.index[rec.ID]; rec.ID <= 0 || dup {
			rec.ID = m.nextID
			m.nextID++
		}
		m.index[rec.ID] = len(m.records)
		m.records = append(m.records, rec)
	}
}

func (m *Memory) appendLocked(d core.Draft) core.Record {
	rec := d.WithID(m.nextID)
	m.nextID++
	m.index[rec.ID] = len(m.records)
	m.records = append(m.records, rec)
	return rec
}

func (m *Memory) removeLocked(drop map[int]bool) {
	kept := m.records[:0]
	for _, r := range m.records {
		if !drop[r.ID] {
			kept = append(kept, r)
		}
	}
	// clear the tail so dropped records can be collected
	for i := len(kept); i < len(m.records); i++ {
		m.records[i] = core.Record{}
	}
	m.records = kept
	m.index = make(map[int]int, len(kept))
	for i, r := range kept {
		m.index[r.ID] = i
	}
}

func (m *Memory) snapshot() []core.Record {
	out := make([]core.Record, len(m.records))
	for i, r := range m.records {
		out[i] = r.Clone()
	}
	return out
}
