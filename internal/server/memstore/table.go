// Package memstore provides the mutex-guarded tables behind the reference
// server's repositories.
package memstore

import (
	"sync"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/identity"
)

// Table is a concurrency-safe map of rows keyed by id. Keys are compared in
// normalized form, so ids differing only in case or surrounding blanks
// address the same row. List and Find visit rows in insertion order.
type Table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[string]T)}
}

// Insert adds a row. An existing id yields common.ErrAlreadyExists.
func (t *Table[T]) Insert(id string, row T) error {
	key := identity.Normalize(id)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[key]; ok {
		return common.ErrAlreadyExists
	}
	t.rows[key] = row
	t.order = append(t.order, key)
	return nil
}

// InsertUnique adds a row unless conflict reports true for an existing row.
// The check and the insert happen under one lock.
func (t *Table[T]) InsertUnique(id string, row T, conflict func(existing T) bool) error {
	key := identity.Normalize(id)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[key]; ok {
		return common.ErrAlreadyExists
	}
	for _, k := range t.order {
		if conflict(t.rows[k]) {
			return common.ErrAlreadyExists
		}
	}
	t.rows[key] = row
	t.order = append(t.order, key)
	return nil
}

// Get returns the row for id or common.ErrNotFound.
func (t *Table[T]) Get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[identity.Normalize(id)]
	if !ok {
		var zero T
		return zero, common.ErrNotFound
	}
	return row, nil
}

// Update applies fn to a copy of the row and stores the result when fn
// returns nil. The whole read-modify-write runs under the write lock.
func (t *Table[T]) Update(id string, fn func(row *T) error) (T, error) {
	key := identity.Normalize(id)

	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[key]
	if !ok {
		var zero T
		return zero, common.ErrNotFound
	}
	if err := fn(&row); err != nil {
		var zero T
		return zero, err
	}
	t.rows[key] = row
	return row, nil
}

// Delete removes the row for id or returns common.ErrNotFound.
func (t *Table[T]) Delete(id string) error {
	key := identity.Normalize(id)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[key]; !ok {
		return common.ErrNotFound
	}
	t.remove(key)
	return nil
}

// DeleteWhere removes every row matching pred and returns how many went.
func (t *Table[T]) DeleteWhere(pred func(T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.order[:0]
	n := 0
	for _, k := range t.order {
		if pred(t.rows[k]) {
			delete(t.rows, k)
			n++
			continue
		}
		kept = append(kept, k)
	}
	t.order = kept
	return n
}

// List returns the rows matching pred, or all rows when pred is nil.
func (t *Table[T]) List(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.order))
	for _, k := range t.order {
		row := t.rows[k]
		if pred == nil || pred(row) {
			out = append(out, row)
		}
	}
	return out
}

// Find returns the first row matching pred.
func (t *Table[T]) Find(pred func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, k := range t.order {
		if row := t.rows[k]; pred(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

func (t *Table[T]) remove(key string) {
	delete(t.rows, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

// Page returns the zero-based page of items holding size rows. A size of
// zero or less returns items unchanged.
func Page[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	pages := len(items) / size
	if len(items)%size != 0 {
		pages++
	}
	if page < 0 || page >= pages {
		return []T{}
	}
	start := page * size
	return items[start:min(start+size, len(items))]
}
