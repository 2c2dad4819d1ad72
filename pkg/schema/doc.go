// Package schema turns content entities into schema.org JSON-LD documents.
//
// A Registry maps schema.org type names to generator constructors. Each
// built-in generator is a table of property descriptors plus a table of
// metadata field mappings run through one shared engine: seed the document
// from the entity, write every optional field whose metadata is non-empty,
// and materialize nested objects only when their anchor field is present.
// Validation walks the same property descriptors, so any document, generated
// or hand-written, can be checked against a type's required fields.
package schema
