package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// loadEntities reads entities.jsonl from dataDir into the SQLite tables in one
// transaction. Malformed lines and records without an ID are skipped; a later
// record with the same ID replaces the earlier one. Unknown fields are
// ignored.
func loadEntities(ctx context.Context, db *sql.DB, dataDir string) (int, error) {
	records, err := readJSONL(filepath.Join(dataDir, entitiesFile))
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := 0
	for _, rec := range records {
		var ej entityJSON
		if err := json.Unmarshal(rec, &ej); err != nil {
			continue
		}
		if strings.TrimSpace(ej.EntityID) == "" {
			continue
		}
		e := fromEntityJSON(ej)
		if err := writeEntityTx(ctx, tx, e); err != nil {
			return 0, fmt.Errorf("loading entity %s: %w", e.ID, err)
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

func fromEntityJSON(ej entityJSON) *types.Entity {
	return &types.Entity{
		ID:           ej.EntityID,
		Title:        ej.Title,
		Excerpt:      ej.Excerpt,
		RawContent:   ej.RawContent,
		Permalink:    ej.Permalink,
		ThumbnailURL: ej.ThumbnailURL,
		SchemaType:   ej.SchemaType,
		Categories:   ej.Categories,
		Meta:         ej.Meta,
		CreatedAt:    parseTime(ej.CreatedAt),
		UpdatedAt:    parseTime(ej.UpdatedAt),
	}
}
