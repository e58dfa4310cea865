// Package match provides name normalization and edit distance for
// "did you mean" suggestions on misspelled directives and record names.
//
// Key functions:
//   - NormalizeIdent: folds case and separators out of identifiers
//   - Distance, Similarity: rune-wise Levenshtein distance and its [0, 1] score
//   - Suggest: picks the closest known name
package match
