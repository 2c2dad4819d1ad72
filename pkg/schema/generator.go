package schema

import (
	"strings"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// Built-in schema type names. Each equals the @type its generator emits.
const (
	TypeProduct       = "Product"
	TypeService       = "Service"
	TypeOrganization  = "Organization"
	TypeLocalBusiness = "LocalBusiness"
	TypePerson        = "Person"
	TypeEvent         = "Event"
	TypeArticle       = "Article"
	TypeRecipe        = "Recipe"
	TypeFAQPage       = "FAQPage"
)

// defaultCurrency is the priceCurrency written when an offer has a price but
// no currency metadata. Types opt in per offer mapping.
const defaultCurrency = "EUR"

// fieldMapping ties one schema property to its source.
type fieldMapping struct {
	key     string // schema property written
	metaKey string // entity metadata read; may be empty when fallback is set

	// convert turns the raw string into the written value. A blank result
	// omits the property.
	convert func(string) any

	// fallback supplies the raw value when the metadata is blank.
	fallback func(*types.Entity) string

	// def is written when neither metadata nor fallback yield a value.
	def string
}

// value resolves the mapping against e, ignoring def. Returns nil when the
// property should be omitted.
func (f fieldMapping) value(e *types.Entity) any {
	raw := ""
	if f.metaKey != "" {
		raw = e.MetaValue(f.metaKey)
	}
	if raw == "" && f.fallback != nil {
		raw = strings.TrimSpace(f.fallback(e))
	}
	if raw == "" {
		return nil
	}
	if f.convert == nil {
		return raw
	}
	v := f.convert(raw)
	if types.IsBlank(v) {
		return nil
	}
	return v
}

// nestedMapping builds one nested schema.org object.
type nestedMapping struct {
	key      string // schema property holding the object
	typeName string // nested @type, empty for none

	// anchor names the field that must resolve for the object to exist.
	// Empty means any field resolving is enough.
	anchor string

	fields []fieldMapping
}

// definition is everything that distinguishes one schema type.
type definition struct {
	typeName   string
	properties func() types.Properties
	fields     []fieldMapping
	nested     []nestedMapping
}

// generator implements types.Generator over a definition.
type generator struct {
	def definition
}

var _ types.Generator = (*generator)(nil)

func newGenerator(def definition) *generator {
	return &generator{def: def}
}

func (g *generator) TypeName() string {
	return g.def.typeName
}

func (g *generator) Properties() types.Properties {
	return g.def.properties()
}

// Generate seeds the document from the entity, then writes scalar fields and
// nested objects in declaration order.
func (g *generator) Generate(e *types.Entity) *types.Document {
	if e == nil {
		e = &types.Entity{}
	}
	doc := seedDocument(g.def.typeName, e)
	for _, f := range g.def.fields {
		writeField(doc, e, f)
	}
	for _, n := range g.def.nested {
		if nd := buildNested(e, n); nd != nil {
			doc.Set(n.key, nd)
		}
	}
	return doc
}

func (g *generator) Validate(doc *types.Document) error {
	return ValidateDocument(g.Properties(), doc)
}

// seedDocument writes the keys every generated document carries.
func seedDocument(typeName string, e *types.Entity) *types.Document {
	doc := types.NewDocument().
		Set(types.KeyContext, types.SchemaOrgContext).
		Set(types.KeyType, typeName).
		Set("name", strings.TrimSpace(e.Title)).
		Set("description", entityDescription(e)).
		Set("url", strings.TrimSpace(e.Permalink))
	if thumb := strings.TrimSpace(e.ThumbnailURL); thumb != "" {
		doc.Set("image", thumb)
	}
	return doc
}

// entityDescription prefers the excerpt and falls back to the body text with
// markup removed.
func entityDescription(e *types.Entity) string {
	if excerpt := strings.TrimSpace(e.Excerpt); excerpt != "" {
		return excerpt
	}
	return StripTags(e.RawContent)
}

// writeField sets f on doc when it resolves or has a default. Reports
// whether anything was written.
func writeField(doc *types.Document, e *types.Entity, f fieldMapping) bool {
	v := f.value(e)
	if v == nil && f.def != "" {
		v = f.def
	}
	if v == nil {
		return false
	}
	doc.Set(f.key, v)
	return true
}

// buildNested returns the nested object for n, or nil when its anchor does
// not resolve.
func buildNested(e *types.Entity, n nestedMapping) *types.Document {
	if !anchored(e, n) {
		return nil
	}
	nd := types.NewDocument()
	if n.typeName != "" {
		nd.Set(types.KeyType, n.typeName)
	}
	for _, f := range n.fields {
		writeField(nd, e, f)
	}
	return nd
}

func anchored(e *types.Entity, n nestedMapping) bool {
	for _, f := range n.fields {
		if n.anchor != "" && f.key != n.anchor {
			continue
		}
		if f.value(e) != nil {
			return true
		}
	}
	return false
}
