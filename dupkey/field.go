package dupkey

import (
	"fmt"
	"slices"
	"strings"
)

// Directive kinds understood by NewField.
const (
	DirectiveAlias   = "alias"
	DirectiveRename  = "rename"
	DirectiveDefault = "default"
)

// Directive is one raw annotation attached to a field, such as
// alias=type or default.
type Directive struct {
	Kind  string
	Value string
}

func (d Directive) String() string {
	if d.Value == "" {
		return d.Kind
	}

	return d.Kind + "=" + d.Value
}

// ParseDirectives splits a comma separated directive list like
// "alias=b,alias=c,default". Kinds are not checked here; NewField rejects the
// ones it does not know.
func ParseDirectives(s string) []Directive {
	var out []Directive

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		kind, value, _ := strings.Cut(part, "=")
		out = append(out, Directive{
			Kind:  strings.TrimSpace(kind),
			Value: strings.Trim(strings.TrimSpace(value), `'"`),
		})
	}

	return out
}

// Field describes how one record field is matched in a document.
type Field struct {
	// Name is the canonical identifier. It is always Keys[0].
	Name string
	// Keys lists every accepted key: the canonical name, then aliases and
	// renames in declaration order.
	Keys []string
	// UseDefault makes an absent field resolve to its type's zero value.
	UseDefault bool
}

// NewField normalizes a field identifier and its directives into a Field.
// The identifier is always the first accepted key; each alias or rename
// directive appends one more. An empty identifier or an unknown directive is
// a ConfigError.
func NewField(identifier string, directives ...Directive) (Field, error) {
	if identifier == "" {
		return Field{}, &ConfigError{Reason: ErrUnnamedField}
	}

	f := Field{
		Name: identifier,
		Keys: []string{identifier},
	}

	for _, d := range directives {
		switch d.Kind {
		case DirectiveAlias, DirectiveRename:
			if d.Value == "" {
				return Field{}, &ConfigError{
					Field:  identifier,
					Reason: ErrUnknownDirective,
					Detail: fmt.Sprintf("%s requires a key name", d.Kind),
				}
			}
			f.Keys = append(f.Keys, d.Value)
		case DirectiveDefault:
			if d.Value != "" {
				return Field{}, &ConfigError{
					Field:  identifier,
					Reason: ErrUnknownDirective,
					Detail: fmt.Sprintf("%s takes no value, got %q", d.Kind, d.Value),
				}
			}
			f.UseDefault = true
		default:
			return Field{}, &ConfigError{
				Field:  identifier,
				Reason: ErrUnknownDirective,
				Detail: d.String(),
			}
		}
	}

	return f, nil
}

// Accepts reports whether key selects this field.
func (f Field) Accepts(key string) bool {
	return slices.Contains(f.Keys, key)
}

func (f Field) clone() Field {
	f.Keys = slices.Clone(f.Keys)
	return f
}
