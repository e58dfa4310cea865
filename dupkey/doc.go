// Package dupkey decodes key-value documents into records whose fields may
// appear more than once, under several aliased keys, or not at all.
//
// A record type is described by a Schema: an ordered list of Field entries,
// each with a canonical name, its accepted keys and a use-default flag. A
// Schema compiled together with a Policy yields a Plan, which resolves one
// document per call in a single forward pass over its keys:
//
//   - FirstWins keeps the first value seen for a field and skips the rest.
//   - LastWins overwrites the captured value on every match.
//   - Unknown keys are read and discarded.
//   - A field without a captured value takes its type's zero value when it
//     uses defaults, otherwise the document fails with a MissingFieldError.
//
// Schemas and Plans are immutable once built and may be shared by any number
// of concurrent scans. Documents are read through the Cursor interface; the
// document package provides JSON, YAML and BSON cursors.
//
// Go struct types are bound either at runtime through Decoder, or at build
// time by the dupkey-gen command, which emits a specialized DecodeDuplicates
// method for types marked with //dupkey:first or //dupkey:last.
package dupkey
