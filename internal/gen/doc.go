// Package gen provides deterministic Go code generation for duplicate-aware
// decoders.
//
// Generation approach uses text/template + go/format for readable,
// allocation-light Go code. One file is written per package, next to its
// sources.
//
// Codegen patterns:
//   - One local variable per field, plus a presence flag where needed
//   - A single pass over the document with one case per field
//   - First-wins fields skip values once captured
//   - Missing required fields checked after the pass
//   - The receiver assigned only after every field resolved
//   - Optional encoding/json, yaml.v3 and bson unmarshaler adapters
package gen
