package schemafile

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"dupkey-generator/internal/common"
)

// CurrentVersion is the only schema file version understood.
const CurrentVersion = "1"

// File is the root of a schema file.
type File struct {
	Version string      `yaml:"version"`
	Policy  string      `yaml:"policy,omitempty"`
	Records []RecordDef `yaml:"records"`
}

// RecordDef describes one record.
type RecordDef struct {
	Name   string     `yaml:"name"`
	Policy string     `yaml:"policy,omitempty"`
	Fields []FieldDef `yaml:"fields"`
}

// FieldDef describes one record field and the keys it accepts.
type FieldDef struct {
	Name    string        `yaml:"name"`
	Alias   StringOrArray `yaml:"alias,omitempty,flow"`
	Rename  StringOrArray `yaml:"rename,omitempty,flow"`
	Default bool          `yaml:"default,omitempty"`
	Type    ValueType     `yaml:"type,omitempty"`
}

// ValueType is the declared type of a field's value.
type ValueType string

const (
	TypeString  ValueType = "string"
	TypeNumber  ValueType = "number"
	TypeInteger ValueType = "integer"
	TypeBool    ValueType = "bool"
	TypeArray   ValueType = "array"
	TypeObject  ValueType = "object"
	TypeAny     ValueType = "any"
)

var valueTypes = []ValueType{TypeString, TypeNumber, TypeInteger, TypeBool, TypeArray, TypeObject, TypeAny}

// Valid reports whether t is a known type. The empty type means any.
func (t ValueType) Valid() bool {
	return t == "" || slices.Contains(valueTypes, t)
}

// StringOrArray is a YAML value written either as one string or as a list.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.ShortTag())
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// IsMultiple returns true if the array has more than one element.
func (s StringOrArray) IsMultiple() bool {
	return common.IsMultiple(s)
}
