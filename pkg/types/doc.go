// Package types defines the data model shared by the ldmark packages: property
// descriptors, ordered JSON-LD documents, entity snapshots, the Generator and
// EntityStore interfaces, and the standard error values.
package types
