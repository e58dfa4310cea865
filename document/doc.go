// Package document provides cursors over key-value documents for the dupkey
// resolver. Every cursor walks the top-level pairs of one object in source
// order and keeps repeated keys, which generic map decoding would collapse or
// reject.
//
//   - JSON streams tokens from an io.Reader with encoding/json.
//   - Sonic walks an in-memory JSON string with bytedance/sonic's ast.
//   - YAML walks a gopkg.in/yaml.v3 mapping node.
//   - BSON walks a raw BSON document with the mongo-driver bson package.
package document

import "errors"

// ErrNotObject is returned when the document is not an object or mapping.
var ErrNotObject = errors.New("document is not an object")

// ErrTrailingData is returned when input follows the top-level object.
var ErrTrailingData = errors.New("document has data after the top-level object")
