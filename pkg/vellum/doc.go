// Package vellum maps application-defined attributes onto documents in a
// schemaless document store. A Schema is an immutable table of Field
// descriptors; a Document is a per-instance value map validated and
// marshalled through that table; a Collection binds a Schema to a
// store.Driver and provides save, remove, and find operations.
//
// Values are coerced eagerly on assignment. A value that cannot be
// coerced is kept as assigned and surfaces as a validation failure, so
// partially-built, currently-invalid documents can exist transiently.
// Validation never panics and never returns early: every failure is
// collected on the document's Errors and reported together.
package vellum

// Version is the vellum library version.
const Version = "0.2.0"
