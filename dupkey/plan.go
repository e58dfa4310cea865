package dupkey

// Cursor walks the top-level key-value pairs of one document in source order.
//
// NextKey returns the next key, or ok == false once the document is
// exhausted. After every key exactly one of ReadValue or SkipValue must be
// called before the next NextKey.
type Cursor interface {
	NextKey() (key string, ok bool, err error)
	// ReadValue decodes the current value into dst, which is a pointer.
	ReadValue(dst any) error
	// SkipValue consumes the current value without storing it.
	SkipValue() error
}

// Allocator returns fresh storage for a value of the i-th schema field. The
// result must be a pointer accepted by the cursor's ReadValue.
type Allocator func(field int) any

// Slot is the resolved state of one field after a scan.
type Slot struct {
	// Value is the pointer returned by the Allocator for the winning capture,
	// or nil when the field was absent.
	Value any
	// Key is the accepted key that supplied Value.
	Key string
	// Set reports whether a value was captured. An unset slot only survives
	// finalization for fields that use defaults.
	Set bool
}

// Plan is a Schema compiled with a duplicate resolution Policy. A Plan is
// read-only and safe for concurrent use.
type Plan struct {
	schema *Schema
	policy Policy
}

// Compile binds schema to policy.
func Compile(schema *Schema, policy Policy) (*Plan, error) {
	if !policy.Valid() {
		return nil, &ConfigError{Type: schema.Name(), Reason: ErrInvalidPolicy, Detail: policy.String()}
	}

	return &Plan{schema: schema, policy: policy}, nil
}

// Schema returns the compiled schema.
func (p *Plan) Schema() *Schema { return p.schema }

// Policy returns the compiled policy.
func (p *Plan) Policy() Policy { return p.policy }

// partialRecord is the per-scan staging area. It is owned by one Resolve
// call and dropped on failure.
type partialRecord struct {
	slots []Slot
}

// Resolve scans every pair of cur once and resolves all fields.
//
// Matched values are read into storage obtained from alloc. Under FirstWins a
// value for an already captured field is skipped; under LastWins it replaces
// the previous capture. Unknown keys are skipped. A reader failure aborts the
// scan with a ValueReadError, and an unset field without UseDefault fails
// finalization with a MissingFieldError.
func (p *Plan) Resolve(cur Cursor, alloc Allocator) ([]Slot, error) {
	rec := partialRecord{slots: make([]Slot, p.schema.Len())}

	if err := p.scan(cur, alloc, &rec); err != nil {
		return nil, err
	}

	return p.finalize(&rec)
}

func (p *Plan) scan(cur Cursor, alloc Allocator, rec *partialRecord) error {
	for {
		key, ok, err := cur.NextKey()
		if err != nil {
			return ReadError("", err)
		}
		if !ok {
			return nil
		}

		i, known := p.schema.Lookup(key)
		if !known || (p.policy == FirstWins && rec.slots[i].Set) {
			if err := cur.SkipValue(); err != nil {
				return ReadError(key, err)
			}
			continue
		}

		dst := alloc(i)
		if err := cur.ReadValue(dst); err != nil {
			return ValueError(p.schema.fields[i].Name, key, err)
		}

		rec.slots[i] = Slot{Value: dst, Key: key, Set: true}
	}
}

func (p *Plan) finalize(rec *partialRecord) ([]Slot, error) {
	for i, slot := range rec.slots {
		f := p.schema.fields[i]
		if !slot.Set && !f.UseDefault {
			return nil, MissingField(f.Name)
		}
	}

	return rec.slots, nil
}
