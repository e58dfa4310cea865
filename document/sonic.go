package document

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
)

// ErrInvalidJSON is returned by Sonic for malformed input.
var ErrInvalidJSON = errors.New("invalid JSON")

// Sonic is a cursor over an in-memory JSON object parsed lazily by sonic.
// Values are decoded with sonic from their raw JSON text.
type Sonic struct {
	src     string
	started bool
	it      ast.ObjectIterator
	pair    ast.Pair
}

// NewSonic returns a cursor over the JSON object in src.
func NewSonic(src string) *Sonic {
	return &Sonic{src: src}
}

// NextKey implements dupkey.Cursor.
func (c *Sonic) NextKey() (string, bool, error) {
	if !c.started {
		if err := c.start(); err != nil {
			return "", false, err
		}
	}

	if !c.it.Next(&c.pair) {
		return "", false, nil
	}

	return c.pair.Key, true, nil
}

func (c *Sonic) start() error {
	c.started = true

	// The lazy iterator stops silently on a syntax error, so the whole input
	// is validated up front.
	if !sonic.ValidString(c.src) {
		return ErrInvalidJSON
	}

	root, err := sonic.GetFromString(c.src)
	if err != nil {
		return err
	}

	c.it, err = root.Properties()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotObject, err)
	}

	return nil
}

// ReadValue implements dupkey.Cursor.
func (c *Sonic) ReadValue(dst any) error {
	raw, err := c.pair.Value.Raw()
	if err != nil {
		return err
	}

	return sonic.UnmarshalString(raw, dst)
}

// SkipValue implements dupkey.Cursor.
func (c *Sonic) SkipValue() error {
	return c.pair.Value.Check()
}
