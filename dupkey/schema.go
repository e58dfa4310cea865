package dupkey

import "fmt"

// Schema is the ordered, immutable field list of one record type.
type Schema struct {
	name   string
	fields []Field
	keys   map[string]int
}

// NewSchema validates fields and builds a Schema.
//
// Every accepted key must belong to a single field: a key or canonical name
// claimed by two fields is rejected with ErrDuplicateKey rather than left to
// declaration order. A key repeated within one field is allowed.
func NewSchema(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		keys:   make(map[string]int),
	}

	for i, f := range fields {
		if f.Name == "" || len(f.Keys) == 0 || f.Keys[0] != f.Name {
			return nil, &ConfigError{Type: name, Field: f.Name, Reason: ErrUnnamedField}
		}

		for _, key := range f.Keys {
			if owner, taken := s.keys[key]; taken && owner != i {
				return nil, &ConfigError{
					Type:   name,
					Field:  f.Name,
					Reason: ErrDuplicateKey,
					Detail: fmt.Sprintf("key %q already accepted by field %s", key, s.fields[owner].Name),
				}
			}
			s.keys[key] = i
		}

		s.fields = append(s.fields, f.clone())
	}

	return s, nil
}

// Name returns the record type name the schema was built for.
func (s *Schema) Name() string { return s.name }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Field returns a copy of the i-th field.
func (s *Schema) Field(i int) Field { return s.fields[i].clone() }

// Fields returns a copy of all fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.clone()
	}

	return out
}

// Lookup returns the index of the field accepting key.
func (s *Schema) Lookup(key string) (int, bool) {
	i, ok := s.keys[key]
	return i, ok
}
