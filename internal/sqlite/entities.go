package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

const selectEntity = `SELECT entity_id, title, excerpt, raw_content, permalink,
    thumbnail_url, schema_type, created_at, updated_at FROM entities`

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GetEntity returns the entity with the given ID.
func (b *Backend) GetEntity(ctx context.Context, id string) (*types.Entity, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return getEntity(ctx, b.db, id)
}

// PutEntity creates or replaces an entity. A new entity gets a UUID v7 and
// creation time; a replaced one keeps its original creation time. e is
// updated in place with the stored ID and timestamps.
func (b *Backend) PutEntity(ctx context.Context, e *types.Entity) (string, error) {
	if e == nil {
		return "", types.ErrInvalidEntity
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrStoreDetached
	}

	if err := b.stampLocked(ctx, e); err != nil {
		return "", err
	}
	if err := b.writeLocked(ctx, []*types.Entity{e}); err != nil {
		return "", err
	}
	return e.ID, nil
}

// PutEntities creates or replaces every entity in one transaction and one
// entities.jsonl rewrite. Either all entities are stored or none are.
// Returns the IDs used, in input order.
func (b *Backend) PutEntities(ctx context.Context, entities []*types.Entity) ([]string, error) {
	for i, e := range entities {
		if e == nil {
			return nil, fmt.Errorf("entity %d: %w", i, types.ErrInvalidEntity)
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if len(entities) == 0 {
		return []string{}, nil
	}

	ids := make([]string, len(entities))
	for i, e := range entities {
		if err := b.stampLocked(ctx, e); err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		ids[i] = e.ID
	}
	if err := b.writeLocked(ctx, entities); err != nil {
		return nil, err
	}
	return ids, nil
}

// stampLocked assigns a missing ID and sets the timestamps, keeping the
// creation time of an entity that is already stored. It must run outside a
// transaction: the store holds a single connection.
func (b *Backend) stampLocked(ctx context.Context, e *types.Entity) error {
	now := b.now().UTC()
	if e.ID == "" {
		e.ID = generateID()
		e.CreatedAt = now
	} else {
		existing, err := getEntity(ctx, b.db, e.ID)
		switch {
		case err == nil:
			e.CreatedAt = existing.CreatedAt
		case errors.Is(err, types.ErrEntityNotFound):
			if e.CreatedAt.IsZero() {
				e.CreatedAt = now
			}
		default:
			return err
		}
	}
	e.UpdatedAt = now
	return nil
}

// writeLocked stores entities in one transaction, then persists.
func (b *Backend) writeLocked(ctx context.Context, entities []*types.Entity) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entities {
		if err := writeEntityTx(ctx, tx, e); err != nil {
			return fmt.Errorf("persisting entity %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entities: %w", err)
	}
	return b.persistLocked(ctx)
}

// DeleteEntity removes the entity with its categories and metadata.
func (b *Backend) DeleteEntity(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM entities WHERE entity_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrEntityNotFound
	}
	if err := deleteChildrenTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entity deletion: %w", err)
	}
	return b.persistLocked(ctx)
}

// ListEntities returns entities ordered by creation time, oldest first.
// The result is never nil.
func (b *Backend) ListEntities(ctx context.Context, filter types.EntityFilter) ([]*types.Entity, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return listEntities(ctx, b.db, filter)
}

// SetMeta sets one metadata value. An empty value deletes the key.
func (b *Backend) SetMeta(ctx context.Context, id, key, value string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if strings.TrimSpace(key) == "" {
		return types.ErrInvalidMetaKey
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE entities SET updated_at = ? WHERE entity_id = ?",
		formatTime(b.now()), id,
	)
	if err != nil {
		return fmt.Errorf("touching entity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrEntityNotFound
	}

	if value == "" {
		_, err = tx.ExecContext(ctx, "DELETE FROM entity_meta WHERE entity_id = ? AND meta_key = ?", id, key)
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO entity_meta (entity_id, meta_key, value) VALUES (?, ?, ?)
            ON CONFLICT (entity_id, meta_key) DO UPDATE SET value = excluded.value`,
			id, key, value,
		)
	}
	if err != nil {
		return fmt.Errorf("setting metadata %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing metadata: %w", err)
	}
	return b.persistLocked(ctx)
}

// writeEntityTx inserts e or updates the existing row in place, then
// replaces its categories and metadata.
func writeEntityTx(ctx context.Context, tx *sql.Tx, e *types.Entity) error {
	args := []any{
		e.Title, e.Excerpt, e.RawContent, e.Permalink, e.ThumbnailURL, e.SchemaType,
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt), e.ID,
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE entities SET title = ?, excerpt = ?, raw_content = ?, permalink = ?,
            thumbnail_url = ?, schema_type = ?, created_at = ?, updated_at = ?
            WHERE entity_id = ?`,
		args...,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entities (title, excerpt, raw_content, permalink, thumbnail_url,
                schema_type, created_at, updated_at, entity_id)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			args...,
		); err != nil {
			return err
		}
	}

	if err := deleteChildrenTx(ctx, tx, e.ID); err != nil {
		return err
	}
	for i, c := range e.Categories {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO entity_categories (entity_id, ordinal, name) VALUES (?, ?, ?)",
			e.ID, i, c,
		); err != nil {
			return fmt.Errorf("inserting category: %w", err)
		}
	}
	for k, v := range e.Meta {
		if k == "" || v == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO entity_meta (entity_id, meta_key, value) VALUES (?, ?, ?)",
			e.ID, k, v,
		); err != nil {
			return fmt.Errorf("inserting metadata: %w", err)
		}
	}
	return nil
}

func deleteChildrenTx(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM entity_categories WHERE entity_id = ?", id); err != nil {
		return fmt.Errorf("deleting categories: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM entity_meta WHERE entity_id = ?", id); err != nil {
		return fmt.Errorf("deleting metadata: %w", err)
	}
	return nil
}

func getEntity(ctx context.Context, q querier, id string) (*types.Entity, error) {
	row := q.QueryRowContext(ctx, selectEntity+" WHERE entity_id = ?", id)
	e, err := scanEntity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting entity %s: %w", id, err)
	}
	if err := hydrateChildren(ctx, q, e); err != nil {
		return nil, err
	}
	return e, nil
}

func listEntities(ctx context.Context, q querier, filter types.EntityFilter) ([]*types.Entity, error) {
	query := selectEntity
	var args []any
	if filter.SchemaType != "" {
		query += " WHERE schema_type = ?"
		args = append(args, filter.SchemaType)
	}
	query += " ORDER BY created_at, rowid"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	results := []*types.Entity{}
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating entity: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}
	rows.Close()

	for _, e := range results {
		if err := hydrateChildren(ctx, q, e); err != nil {
			return nil, err
		}
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*types.Entity, error) {
	var e types.Entity
	var createdAt, updatedAt string
	if err := row.Scan(
		&e.ID, &e.Title, &e.Excerpt, &e.RawContent, &e.Permalink,
		&e.ThumbnailURL, &e.SchemaType, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

// hydrateChildren loads categories in ordinal order and the metadata map.
func hydrateChildren(ctx context.Context, q querier, e *types.Entity) error {
	rows, err := q.QueryContext(ctx,
		"SELECT name FROM entity_categories WHERE entity_id = ? ORDER BY ordinal", e.ID)
	if err != nil {
		return fmt.Errorf("loading categories for %s: %w", e.ID, err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("scanning category: %w", err)
		}
		e.Categories = append(e.Categories, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating categories for %s: %w", e.ID, err)
	}
	rows.Close()

	rows, err = q.QueryContext(ctx,
		"SELECT meta_key, value FROM entity_meta WHERE entity_id = ?", e.ID)
	if err != nil {
		return fmt.Errorf("loading metadata for %s: %w", e.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return fmt.Errorf("scanning metadata: %w", err)
		}
		e.SetMeta(k, v)
	}
	return rows.Err()
}
