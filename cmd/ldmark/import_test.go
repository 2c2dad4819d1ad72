package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"entities.json", formatJSON},
		{"entities.JSON", formatJSON},
		{"entities.jsonl", formatJSONL},
		{"entities.ndjson", formatJSONL},
		{"entities.yaml", formatYAML},
		{"entities.yml", formatYAML},
		{"entities.toml", formatTOML},
		{"entities.csv", ""},
		{"-", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, formatForPath(tt.path))
		})
	}
}

func TestParseEntities(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		want   []string // titles
	}{
		{
			name:   "json array",
			format: formatJSON,
			input:  `[{"id":"a","title":"First"},null,{"title":"Second"}]`,
			want:   []string{"First", "Second"},
		},
		{
			name:   "json object",
			format: formatJSON,
			input:  `{"id":"a","title":"Only"}`,
			want:   []string{"Only"},
		},
		{
			name:   "json empty",
			format: formatJSON,
			input:  "  \n",
			want:   nil,
		},
		{
			name:   "jsonl",
			format: formatJSONL,
			input:  "{\"title\":\"First\"}\n\n{\"title\":\"Second\"}\n",
			want:   []string{"First", "Second"},
		},
		{
			name:   "yaml sequence",
			format: formatYAML,
			input:  "- title: First\n- title: Second\n",
			want:   []string{"First", "Second"},
		},
		{
			name:   "yaml documents",
			format: formatYAML,
			input:  "title: First\n---\ntitle: Second\n",
			want:   []string{"First", "Second"},
		},
		{
			name:   "toml tables",
			format: formatTOML,
			input:  "[[entity]]\ntitle = \"First\"\n\n[[entity]]\ntitle = \"Second\"\n",
			want:   []string{"First", "Second"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities, err := parseEntities([]byte(tt.input), tt.format)
			require.NoError(t, err)
			var titles []string
			for _, e := range entities {
				titles = append(titles, e.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestParseEntitiesFields(t *testing.T) {
	yamlInput := `
- id: widget
  title: Widget
  excerpt: Short
  raw_content: <p>A widget.</p>
  permalink: https://x/w
  thumbnail_url: https://x/w.png
  schema_type: Product
  categories: [Tools, Hardware]
  meta:
    _product_price: "19.99"
    _product_brand: Acme
`
	tomlInput := `
[[entity]]
id = "widget"
title = "Widget"
excerpt = "Short"
raw_content = "<p>A widget.</p>"
permalink = "https://x/w"
thumbnail_url = "https://x/w.png"
schema_type = "Product"
categories = ["Tools", "Hardware"]

[entity.meta]
_product_price = "19.99"
_product_brand = "Acme"
`
	jsonInput := `[{"id":"widget","title":"Widget","excerpt":"Short","raw_content":"<p>A widget.</p>",
"permalink":"https://x/w","thumbnail_url":"https://x/w.png","schema_type":"Product",
"categories":["Tools","Hardware"],"meta":{"_product_price":"19.99","_product_brand":"Acme"}}]`

	want := types.Entity{
		ID:           "widget",
		Title:        "Widget",
		Excerpt:      "Short",
		RawContent:   "<p>A widget.</p>",
		Permalink:    "https://x/w",
		ThumbnailURL: "https://x/w.png",
		SchemaType:   "Product",
		Categories:   []string{"Tools", "Hardware"},
		Meta:         map[string]string{"_product_price": "19.99", "_product_brand": "Acme"},
	}

	for format, input := range map[string]string{
		formatYAML: yamlInput,
		formatTOML: tomlInput,
		formatJSON: jsonInput,
	} {
		t.Run(format, func(t *testing.T) {
			entities, err := parseEntities([]byte(input), format)
			require.NoError(t, err)
			require.Len(t, entities, 1)
			assert.Equal(t, want, *entities[0])
		})
	}
}

func TestParseEntitiesErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
	}{
		{"unknown format", "xml", "<entity/>"},
		{"bad json", formatJSON, `[{"title":}]`},
		{"bad jsonl line", formatJSONL, "{\"title\":\"ok\"}\nnot json\n"},
		{"yaml scalar", formatYAML, "just a string\n"},
		{"bad toml", formatTOML, "[[entity]\ntitle = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseEntities([]byte(tt.input), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestImportCommand(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "entities.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[entity]]
id = "widget"
title = "Widget"
raw_content = "A widget."
permalink = "https://x/w"
schema_type = "Product"
[entity.meta]
_product_price = "19.99"

[[entity]]
id = "acme"
title = "Acme"
schema_type = "Organization"
`), 0o644))

	res := c.run(t, "entity", "import", path)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "imported 2 entities\n", res.stdout)

	res = c.run(t, "generate", "-", "widget")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"price":"19.99"`)

	// Importing again replaces rather than duplicates.
	res = c.run(t, "--json", "entity", "import", path)
	require.Equal(t, exitSuccess, res.code, res.stderr)
	var ids []string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &ids))
	assert.Equal(t, []string{"widget", "acme"}, ids)

	res = c.run(t, "--json", "entity", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	var all []types.Entity
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &all))
	assert.Len(t, all, 2)
}

func TestImportFromStdin(t *testing.T) {
	c := newCLI(t)

	res := c.runWithInput(t, "- title: Piped\n", "entity", "import", "-")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "pass --format")

	res = c.runWithInput(t, "- title: Piped\n", "entity", "import", "--format", "yaml", "-")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "imported 1 entities\n", res.stdout)
}

func TestImportRejectsUnknownType(t *testing.T) {
	c := newCLI(t)
	res := c.runWithInput(t, `[{"title":"X","schema_type":"Nope"}]`, "entity", "import", "--format", "json", "-")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "type not found")

	res = c.run(t, "--json", "entity", "list")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Equal(t, "[]\n", res.stdout)
}

func TestParseMetaPairs(t *testing.T) {
	meta, err := parseMetaPairs([]string{"a=1", " b =x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y", "c": ""}, meta)

	meta, err = parseMetaPairs(nil)
	require.NoError(t, err)
	assert.Nil(t, meta)

	_, err = parseMetaPairs([]string{"=v"})
	assert.Error(t, err)
}
