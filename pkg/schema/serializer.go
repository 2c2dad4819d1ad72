package schema

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// Script tag wrapping used by ToScriptTag.
const (
	scriptOpen  = `<script type="application/ld+json">`
	scriptClose = `</script>`
)

// ToJSON encodes doc with keys in document order. When pretty is set the
// output is indented by two spaces.
func ToJSON(doc *types.Document, pretty bool) (string, error) {
	if doc == nil {
		doc = types.NewDocument()
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	if !pretty {
		return string(data), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", fmt.Errorf("indenting document: %w", err)
	}
	return buf.String(), nil
}

// ToScriptTag encodes doc and wraps it in a JSON-LD script element for
// embedding in rendered markup.
func ToScriptTag(doc *types.Document, pretty bool) (string, error) {
	body, err := ToJSON(doc, pretty)
	if err != nil {
		return "", err
	}
	if pretty {
		return scriptOpen + "\n" + body + "\n" + scriptClose, nil
	}
	return scriptOpen + body + scriptClose, nil
}

// ParseDocument decodes a JSON object into a Document, keeping key order.
// Returns an error wrapping types.ErrNotObject when the root is not an
// object.
func ParseDocument(data []byte) (*types.Document, error) {
	doc := types.NewDocument()
	if err := doc.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return doc, nil
}
