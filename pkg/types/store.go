package types

import "context"

// EntityStore gives read access to content entities and the writes the CLI
// and tests need to populate them. Generators only ever see the *Entity
// snapshots it returns.
type EntityStore interface {
	// GetEntity returns the entity with the given ID.
	// Returns ErrEntityNotFound if no entity exists with that ID.
	GetEntity(ctx context.Context, id string) (*Entity, error)

	// PutEntity creates or replaces an entity. When e.ID is empty a new
	// UUID v7 is generated. Returns the ID used.
	PutEntity(ctx context.Context, e *Entity) (string, error)

	// DeleteEntity removes the entity and its metadata.
	// Returns ErrEntityNotFound if no entity exists with that ID.
	DeleteEntity(ctx context.Context, id string) error

	// ListEntities returns entities matching filter ordered by creation time.
	ListEntities(ctx context.Context, filter EntityFilter) ([]*Entity, error)

	// SetMeta sets one metadata value. An empty value deletes the key.
	SetMeta(ctx context.Context, id, key, value string) error
}

// EntityFilter narrows ListEntities. Zero values match everything.
type EntityFilter struct {
	SchemaType string
	Limit      int
}
