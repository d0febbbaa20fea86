package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/dbx"
	"github.com/dmitrijs2005/skillshare/internal/identity"
)

// Collection stores rows of T as JSON documents. Ids are normalized the same
// way the in-memory tables do it. Writes that read other rows (unique
// checks, DeleteWhere) hold a per-collection advisory lock for the whole
// transaction.
type Collection[T any] struct {
	db   *sql.DB
	name string
	idOf func(T) string
}

func NewCollection[T any](db *sql.DB, name string, idOf func(T) string) *Collection[T] {
	return &Collection[T]{db: db, name: name, idOf: idOf}
}

const (
	insertQuery = `INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO NOTHING`
	getQuery       = `SELECT body FROM documents WHERE collection = $1 AND id = $2`
	getForUpdate   = getQuery + ` FOR UPDATE`
	listQuery      = `SELECT body FROM documents WHERE collection = $1 ORDER BY seq`
	updateQuery    = `UPDATE documents SET body = $3, updated_at = now() WHERE collection = $1 AND id = $2`
	deleteQuery    = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	lockCollection = `SELECT pg_advisory_xact_lock(hashtext($1))`
)

// Create inserts row. An existing id yields common.ErrAlreadyExists.
func (c *Collection[T]) Create(ctx context.Context, row T) error {
	return c.insert(ctx, c.db, row)
}

// CreateUnique inserts row unless conflict reports true for a stored row.
func (c *Collection[T]) CreateUnique(ctx context.Context, row T, conflict func(existing T) bool) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, lockCollection, c.name); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		rows, err := c.list(ctx, tx)
		if err != nil {
			return err
		}
		for _, existing := range rows {
			if conflict(existing) {
				return common.ErrAlreadyExists
			}
		}
		return c.insert(ctx, tx, row)
	})
}

func (c *Collection[T]) insert(ctx context.Context, db dbx.DBTX, row T) error {
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	res, err := db.ExecContext(ctx, insertQuery, c.name, identity.Normalize(c.idOf(row)), body)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrAlreadyExists
	}
	return nil
}

// Get returns the row for id or common.ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	return c.get(ctx, c.db, getQuery, id)
}

func (c *Collection[T]) get(ctx context.Context, db dbx.DBTX, query, id string) (T, error) {
	var zero T
	var body []byte
	err := db.QueryRowContext(ctx, query, c.name, identity.Normalize(id)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, common.ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("db error: %w", err)
	}
	return c.decode(body)
}

// List returns the rows matching filter in insertion order, or all rows when
// filter is nil.
func (c *Collection[T]) List(ctx context.Context, filter func(T) bool) ([]T, error) {
	rows, err := c.list(ctx, c.db)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return rows, nil
	}
	out := rows[:0]
	for _, r := range rows {
		if filter(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Find returns the first row matching pred or common.ErrNotFound.
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) (T, error) {
	rows, err := c.List(ctx, pred)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(rows) == 0 {
		var zero T
		return zero, common.ErrNotFound
	}
	return rows[0], nil
}

func (c *Collection[T]) list(ctx context.Context, db dbx.DBTX) ([]T, error) {
	rows, err := db.QueryContext(ctx, listQuery, c.name)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		row, err := c.decode(body)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// Update applies fn to the stored row and saves the result when fn returns
// nil. The row is locked for the read-modify-write.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(row *T) error) (T, error) {
	return c.UpdateUnique(ctx, id, fn, nil)
}

// UpdateUnique is Update that also fails with common.ErrAlreadyExists when
// conflict reports true for the updated row and any other stored row.
func (c *Collection[T]) UpdateUnique(ctx context.Context, id string, fn func(row *T) error, conflict func(next, other T) bool) (T, error) {
	var updated T
	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if conflict != nil {
			if _, err := tx.ExecContext(ctx, lockCollection, c.name); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}
		row, err := c.get(ctx, tx, getForUpdate, id)
		if err != nil {
			return err
		}
		if err := fn(&row); err != nil {
			return err
		}
		if conflict != nil {
			others, err := c.list(ctx, tx)
			if err != nil {
				return err
			}
			for _, o := range others {
				if !identity.SameID(c.idOf(o), id) && conflict(row, o) {
					return common.ErrAlreadyExists
				}
			}
		}
		body, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.name, err)
		}
		if _, err := tx.ExecContext(ctx, updateQuery, c.name, identity.Normalize(id), body); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		updated = row
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Delete removes the row for id or returns common.ErrNotFound.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, deleteQuery, c.name, identity.Normalize(id))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteWhere removes every row matching pred and returns how many went.
func (c *Collection[T]) DeleteWhere(ctx context.Context, pred func(T) bool) (int, error) {
	n := 0
	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, lockCollection, c.name); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		rows, err := c.list(ctx, tx)
		if err != nil {
			return err
		}
		for _, r := range rows {
			if !pred(r) {
				continue
			}
			if _, err := tx.ExecContext(ctx, deleteQuery, c.name, identity.Normalize(c.idOf(r))); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (c *Collection[T]) decode(body []byte) (T, error) {
	var row T
	if err := json.Unmarshal(body, &row); err != nil {
		return row, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return row, nil
}
