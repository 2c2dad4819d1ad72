package schema

import (
	"fmt"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// ValidateDocument checks doc against props. Every required top-level
// property must be present and non-blank; then each present object property
// is checked the same way against its nested descriptors. Arrays of objects
// are checked element by element. The first violation is returned as a
// *types.ValidationError.
func ValidateDocument(props types.Properties, doc *types.Document) error {
	return validateObject(props, doc, "")
}

func validateObject(props types.Properties, doc *types.Document, prefix string) error {
	for _, p := range props {
		if !p.Required {
			continue
		}
		v, _ := doc.Get(p.Name)
		if types.IsBlank(v) {
			return types.MissingProperty(joinPath(prefix, p.Name))
		}
	}

	for _, p := range props {
		if p.Kind != types.KindObject || len(p.Properties) == 0 {
			continue
		}
		v, _ := doc.Get(p.Name)
		if types.IsBlank(v) {
			continue
		}
		if err := validateNested(p, v, joinPath(prefix, p.Name)); err != nil {
			return err
		}
	}
	return nil
}

func validateNested(p types.Property, v any, path string) error {
	switch tv := v.(type) {
	case *types.Document:
		return validateObject(p.Properties, tv, path)
	case []any:
		for i, item := range tv {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			nd, ok := item.(*types.Document)
			if !ok {
				return types.InvalidType(itemPath, "an object")
			}
			if err := validateObject(p.Properties, nd, itemPath); err != nil {
				return err
			}
		}
		return nil
	default:
		return types.InvalidType(path, "an object")
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
