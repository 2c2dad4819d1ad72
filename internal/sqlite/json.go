package sqlite

import (
	"time"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// entityJSON is one line of entities.jsonl. Categories and metadata are
// embedded so a single file holds the whole store.
type entityJSON struct {
	EntityID     string            `json:"entity_id"`
	Title        string            `json:"title"`
	Excerpt      string            `json:"excerpt"`
	RawContent   string            `json:"raw_content"`
	Permalink    string            `json:"permalink"`
	ThumbnailURL string            `json:"thumbnail_url,omitempty"`
	SchemaType   string            `json:"schema_type,omitempty"`
	Categories   []string          `json:"categories,omitempty"`
	Meta         map[string]string `json:"meta,omitempty"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

func toEntityJSON(e *types.Entity) entityJSON {
	return entityJSON{
		EntityID:     e.ID,
		Title:        e.Title,
		Excerpt:      e.Excerpt,
		RawContent:   e.RawContent,
		Permalink:    e.Permalink,
		ThumbnailURL: e.ThumbnailURL,
		SchemaType:   e.SchemaType,
		Categories:   e.Categories,
		Meta:         e.Meta,
		CreatedAt:    formatTime(e.CreatedAt),
		UpdatedAt:    formatTime(e.UpdatedAt),
	}
}

// timeLayout has fixed-width fractional seconds so stored timestamps sort
// lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts RFC 3339 with or without fractional seconds. Unparseable
// values yield the zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
