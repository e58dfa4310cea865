package document

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// BSON is a cursor over a raw BSON document. BSON keeps every element in
// wire order, including repeated keys.
type BSON struct {
	raw     bson.Raw
	started bool
	elems   []bson.RawElement
	next    int
	cur     bson.RawElement
}

// NewBSON returns a cursor over the BSON document in data. It fits the
// bson.Unmarshaler hook.
func NewBSON(data []byte) *BSON {
	return &BSON{raw: bson.Raw(data)}
}

// NextKey implements dupkey.Cursor.
func (c *BSON) NextKey() (string, bool, error) {
	if !c.started {
		c.started = true

		elems, err := c.raw.Elements()
		if err != nil {
			return "", false, fmt.Errorf("%w: %v", ErrNotObject, err)
		}
		c.elems = elems
	}

	if c.next >= len(c.elems) {
		return "", false, nil
	}

	c.cur = c.elems[c.next]
	c.next++

	key, err := c.cur.KeyErr()
	if err != nil {
		return "", false, err
	}

	return key, true, nil
}

// ReadValue implements dupkey.Cursor.
func (c *BSON) ReadValue(dst any) error {
	v, err := c.cur.ValueErr()
	if err != nil {
		return err
	}

	return v.Unmarshal(dst)
}

// SkipValue implements dupkey.Cursor.
func (c *BSON) SkipValue() error {
	_, err := c.cur.ValueErr()
	return err
}
