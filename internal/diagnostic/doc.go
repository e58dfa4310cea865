// Package diagnostic provides structured warnings and errors for the
// decoder generator.
//
// Key capabilities:
//   - Configuration errors per record type and field, with stable codes
//   - Warnings for declarations that generate but look unintended
//   - Conversion of dupkey configuration errors into diagnostics
package diagnostic
