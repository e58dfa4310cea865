package dupkey

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"sync"

	"dupkey-generator/document"
)

// Decoder binds the struct type T to a Plan built from its field tags.
// It is the runtime counterpart of a generated DecodeDuplicates method.
type Decoder[T any] struct {
	b *binding
}

type binding struct {
	plan  *Plan
	index [][]int
	types []reflect.Type
}

type bindingKey struct {
	t      reflect.Type
	policy Policy
}

var bindings sync.Map // bindingKey -> *binding

// NewDecoder compiles the Plan for T under policy. Plans are cached per type
// and policy, so repeated calls are cheap.
func NewDecoder[T any](policy Policy) (*Decoder[T], error) {
	b, err := bind(reflect.TypeFor[T](), policy)
	if err != nil {
		return nil, err
	}

	return &Decoder[T]{b: b}, nil
}

// Plan returns the compiled plan.
func (d *Decoder[T]) Plan() *Plan { return d.b.plan }

// Decode resolves one document from cur into a new T.
func (d *Decoder[T]) Decode(cur Cursor) (T, error) {
	var out T
	if err := d.DecodeInto(cur, &out); err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}

// DecodeInto resolves one document from cur into dst. dst is only written
// once every field has resolved; on error it is left untouched.
func (d *Decoder[T]) DecodeInto(cur Cursor, dst *T) error {
	slots, err := d.b.plan.Resolve(cur, d.alloc)
	if err != nil {
		return err
	}

	v := reflect.ValueOf(dst).Elem()
	for i, slot := range slots {
		fv := v.FieldByIndex(d.b.index[i])
		if slot.Set {
			fv.Set(reflect.ValueOf(slot.Value).Elem())
		} else {
			fv.SetZero()
		}
	}

	return nil
}

func (d *Decoder[T]) alloc(i int) any {
	return reflect.New(d.b.types[i]).Interface()
}

// DecodeJSON resolves a JSON object read from r.
func (d *Decoder[T]) DecodeJSON(r io.Reader) (T, error) {
	return d.Decode(document.NewJSON(r))
}

// DecodeYAML resolves a YAML mapping document.
func (d *Decoder[T]) DecodeYAML(data []byte) (T, error) {
	cur, err := document.ParseYAML(bytes.NewReader(data))
	if err != nil {
		var zero T
		return zero, ReadError("", err)
	}

	return d.Decode(cur)
}

// DecodeBSON resolves a BSON document.
func (d *Decoder[T]) DecodeBSON(data []byte) (T, error) {
	return d.Decode(document.NewBSON(data))
}

func bind(t reflect.Type, policy Policy) (*binding, error) {
	key := bindingKey{t: t, policy: policy}
	if cached, ok := bindings.Load(key); ok {
		return cached.(*binding), nil
	}

	if t.Kind() != reflect.Struct {
		return nil, &ConfigError{Type: t.String(), Reason: ErrNotStruct, Detail: t.Kind().String()}
	}

	b := &binding{}

	var fields []Field
	for i := range t.NumField() {
		sf := t.Field(i)

		f, ok, err := FieldFromTag(sf.Name, sf.IsExported(), sf.Anonymous, sf.Tag)
		if err != nil {
			var ce *ConfigError
			if errors.As(err, &ce) {
				ce.Type = t.String()
			}
			return nil, err
		}
		if !ok {
			continue
		}

		fields = append(fields, f)
		b.index = append(b.index, sf.Index)
		b.types = append(b.types, sf.Type)
	}

	schema, err := NewSchema(t.String(), fields...)
	if err != nil {
		return nil, err
	}

	b.plan, err = Compile(schema, policy)
	if err != nil {
		return nil, err
	}

	actual, _ := bindings.LoadOrStore(key, b)

	return actual.(*binding), nil
}
