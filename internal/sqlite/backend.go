// Package sqlite implements types.EntityStore with SQLite as the query engine
// and entities.jsonl as the source of truth.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// dbFile is the SQLite cache inside DataDir. It is recreated on every Attach.
const dbFile = "ldmark.db"

// Backend is the SQLite entity store.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	log      zerolog.Logger

	// dirty is set when a write has not reached entities.jsonl yet. Only
	// the on_close sync strategy leaves it set between calls.
	dirty bool

	now func() time.Time
}

var _ types.EntityStore = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for load and flush events.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Backend) { b.log = log }
}

// NewBackend creates a detached backend. Call Attach before use.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach validates config, creates DataDir, builds a fresh SQLite database
// and loads entities.jsonl into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	if err := initJSONL(filepath.Join(dataDir, entitiesFile)); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// One connection keeps writers from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	for _, stmt := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	n, err := loadEntities(ctx, db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.dirty = false
	b.attached = true
	b.log.Debug().Str("data_dir", dataDir).Int("entities", n).Msg("store attached")
	return nil
}

// Detach flushes pending writes and closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.dirty {
		if err := b.flushLocked(context.Background()); err != nil {
			return fmt.Errorf("flush pending writes: %w", err)
		}
	}
	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	b.attached = false
	return nil
}

// generateID returns a new UUID v7, falling back to v4.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// persistLocked records a completed write. With the immediate strategy the
// JSONL file is rewritten now; with on_close it is deferred to Detach.
// The caller must hold b.mu for writing.
func (b *Backend) persistLocked(ctx context.Context) error {
	b.dirty = true
	if b.config.Sync == types.SyncOnClose {
		return nil
	}
	if err := b.flushLocked(ctx); err != nil {
		return fmt.Errorf("persisting %s: %w", entitiesFile, err)
	}
	return nil
}

// flushLocked rewrites entities.jsonl from the database.
func (b *Backend) flushLocked(ctx context.Context) error {
	entities, err := listEntities(ctx, b.db, types.EntityFilter{})
	if err != nil {
		return err
	}
	records := make([]json.RawMessage, 0, len(entities))
	for _, e := range entities {
		rec, err := json.Marshal(toEntityJSON(e))
		if err != nil {
			return fmt.Errorf("encoding entity %s: %w", e.ID, err)
		}
		records = append(records, rec)
	}
	if err := writeJSONL(filepath.Join(b.dataDir, entitiesFile), records); err != nil {
		return err
	}
	b.dirty = false
	b.log.Debug().Int("entities", len(records)).Msg("entities flushed")
	return nil
}
