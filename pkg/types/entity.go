package types

import (
	"strings"
	"time"
)

// Entity is a read-only snapshot of one piece of content: the source every
// generator builds a document from.
type Entity struct {
	ID           string            `json:"id" yaml:"id" toml:"id"`
	Title        string            `json:"title" yaml:"title" toml:"title"`
	Excerpt      string            `json:"excerpt" yaml:"excerpt" toml:"excerpt"`
	RawContent   string            `json:"raw_content" yaml:"raw_content" toml:"raw_content"`
	Permalink    string            `json:"permalink" yaml:"permalink" toml:"permalink"`
	ThumbnailURL string            `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty" toml:"thumbnail_url"`
	SchemaType   string            `json:"schema_type,omitempty" yaml:"schema_type,omitempty" toml:"schema_type"`
	Categories   []string          `json:"categories,omitempty" yaml:"categories,omitempty" toml:"categories"`
	Meta         map[string]string `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta"`
	CreatedAt    time.Time         `json:"created_at" yaml:"-" toml:"-"`
	UpdatedAt    time.Time         `json:"updated_at" yaml:"-" toml:"-"`
}

// MetaValue returns the metadata value for key with surrounding whitespace
// removed. Absent keys yield "".
func (e *Entity) MetaValue(key string) string {
	if e == nil || e.Meta == nil {
		return ""
	}
	return strings.TrimSpace(e.Meta[key])
}

// FirstCategory returns the first non-blank taxonomy term, or "".
func (e *Entity) FirstCategory() string {
	if e == nil {
		return ""
	}
	for _, c := range e.Categories {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

// SetMeta stores a metadata value, allocating the map on first use.
func (e *Entity) SetMeta(key, value string) {
	if e.Meta == nil {
		e.Meta = make(map[string]string)
	}
	e.Meta[key] = value
}
