// Package plan provides the pipeline that turns marked Go types into
// compiled decoding plans consumed by code generation.
//
// Pipeline:
//  1. Analyze packages → marked types
//  2. For each marked type:
//     - Map the marker to a duplicate resolution policy
//     - Build one dupkey.Field per decodable struct field from its tags
//     - Validate the field set into a dupkey.Schema and compile it
//  3. Emit diagnostics (unnamed fields, unknown directives, shared keys)
//
// Types with configuration errors are reported and left out of the plan, so
// no decoder is ever generated from an invalid description.
package plan
