package schemafile

import (
	"bytes"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"dupkey-generator/dupkey"
)

// RecordPlan is one compiled record. It is safe for concurrent use.
type RecordPlan struct {
	plan  *dupkey.Plan
	types []ValueType
}

// Name returns the record name.
func (rp *RecordPlan) Name() string { return rp.plan.Schema().Name() }

// Plan returns the compiled dupkey plan.
func (rp *RecordPlan) Plan() *dupkey.Plan { return rp.plan }

// Decode resolves one document into a Record.
func (rp *RecordPlan) Decode(cur dupkey.Cursor) (*Record, error) {
	slots, err := rp.plan.Resolve(cur, rp.alloc)
	if err != nil {
		return nil, err
	}

	schema := rp.plan.Schema()
	rec := &Record{Entries: make([]Entry, len(slots))}

	for i, slot := range slots {
		e := Entry{Name: schema.Field(i).Name}
		if slot.Set {
			e.Value = deref(slot.Value)
			e.Key = slot.Key
		} else {
			e.Value = zeroValue(rp.types[i])
			e.Defaulted = true
		}
		rec.Entries[i] = e
	}

	return rec, nil
}

func (rp *RecordPlan) alloc(i int) any {
	switch rp.types[i] {
	case TypeString:
		return new(string)
	case TypeNumber:
		return new(float64)
	case TypeInteger:
		return new(int64)
	case TypeBool:
		return new(bool)
	case TypeArray:
		return new([]any)
	case TypeObject:
		return new(map[string]any)
	default:
		return new(any)
	}
}

func deref(p any) any {
	switch v := p.(type) {
	case *string:
		return *v
	case *float64:
		return *v
	case *int64:
		return *v
	case *bool:
		return *v
	case *[]any:
		return *v
	case *map[string]any:
		return *v
	case *any:
		return *v
	default:
		return p
	}
}

func zeroValue(t ValueType) any {
	switch t {
	case TypeString:
		return ""
	case TypeNumber:
		return float64(0)
	case TypeInteger:
		return int64(0)
	case TypeBool:
		return false
	case TypeArray:
		return []any{}
	case TypeObject:
		return map[string]any{}
	default:
		return nil
	}
}

// Record is a decoded document, with one entry per schema field in schema
// order.
type Record struct {
	Entries []Entry
}

// Entry is one resolved field.
type Entry struct {
	Name  string
	Value any
	// Key is the document key that supplied Value; empty when defaulted.
	Key       string
	Defaulted bool
}

// Get returns the value of the named field.
func (r *Record) Get(name string) (any, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}

	return nil, false
}

// MarshalJSON writes the record as an object in schema order. Nested
// objects have sorted keys.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, e := range r.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := sonic.ConfigStd.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := sonic.ConfigStd.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML writes the record as a mapping in schema order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, e := range r.Entries {
		var key, val yaml.Node
		if err := key.Encode(e.Name); err != nil {
			return nil, err
		}
		if err := val.Encode(e.Value); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, &key, &val)
	}

	return node, nil
}
