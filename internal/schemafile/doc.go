// Package schemafile provides YAML record schemas for documents that have no
// Go type: parsing, validation, compilation to dupkey plans, and decoding into
// ordered records.
//
// # Schema Overview
//
// The schema file has the following structure:
//
//	version: "1"
//	policy: last            # first | last, the default for every record
//	records:
//	  - name: dog
//	    policy: first       # optional per-record override
//	    fields:
//	      - name: breed
//	        alias: type     # string or list
//	        rename: [kind]
//	        default: false
//	        type: string    # string|number|integer|bool|array|object|any
//
// Unknown keys anywhere in the file are rejected, so a misspelled directive
// never passes silently.
//
// # Defaults
//
// A field with default: true that is absent from a document resolves to the
// zero value of its type: "", 0, false, an empty array, an empty object, or
// null for any.
package schemafile
