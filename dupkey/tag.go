package dupkey

import (
	"errors"
	"reflect"
	"strings"
)

// TagKey is the struct tag holding field directives.
const TagKey = "dupkey"

const embeddedHint = `embedded field needs a json:"name" tag, or declare it as a named field`

// FieldFromTag builds the Field for one Go struct field.
//
// The Go field name is the canonical identifier. A json tag name that differs
// from it is accepted as a rename, and the dupkey tag contributes further
// directives. ok is false for fields that take no part in decoding
// (unexported or tagged json:"-"). An exported embedded field without a json
// name has no identifier and is rejected.
func FieldFromTag(goName string, exported, embedded bool, tag reflect.StructTag) (f Field, ok bool, err error) {
	jsonTag, hasJSON := tag.Lookup("json")
	if hasJSON && jsonTag == "-" {
		return Field{}, false, nil
	}

	jsonName, _, _ := strings.Cut(jsonTag, ",")

	if !exported {
		return Field{}, false, nil
	}

	identifier := goName
	if embedded {
		// Embedded fields are positional; only an explicit json name gives
		// them a key to be matched by.
		identifier = jsonName
		jsonName = ""
		if identifier == "" {
			return Field{}, false, &ConfigError{
				Field:  goName,
				Reason: ErrUnnamedField,
				Detail: embeddedHint,
			}
		}
	}

	var directives []Directive
	if jsonName != "" && jsonName != identifier {
		directives = append(directives, Directive{Kind: DirectiveRename, Value: jsonName})
	}

	directives = append(directives, ParseDirectives(tag.Get(TagKey))...)

	f, err = NewField(identifier, directives...)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) && ce.Field == "" {
			ce.Field = goName
		}

		return Field{}, false, err
	}

	return f, true, nil
}
