package types

// Generator describes one schema.org type and builds documents of that type.
type Generator interface {
	// TypeName returns the schema.org @type the generator emits.
	TypeName() string

	// Properties returns the type's property descriptors. The result is
	// independent of any entity and is a fresh value on every call.
	Properties() Properties

	// Generate builds a document from e. It never fails: missing optional
	// data yields a smaller document.
	Generate(e *Entity) *Document

	// Validate checks doc against the required flags of Properties. doc need
	// not have been produced by Generate. It returns nil or the first
	// violation as a *ValidationError.
	Validate(doc *Document) error
}
