package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type jsonState int

const (
	jsonStart jsonState = iota
	jsonObject
	jsonDone
)

// JSON is a streaming cursor over a JSON object. Values are decoded straight
// from the token stream, so the document is never buffered as a whole.
type JSON struct {
	dec   *json.Decoder
	state jsonState
}

// NewJSON returns a cursor reading one JSON object from r.
func NewJSON(r io.Reader) *JSON {
	return &JSON{dec: json.NewDecoder(r)}
}

// NewJSONBytes returns a cursor over the JSON object in data.
func NewJSONBytes(data []byte) *JSON {
	return NewJSON(bytes.NewReader(data))
}

// IsJSONNull reports whether data is the JSON literal null. By encoding/json
// convention an UnmarshalJSON receiving null leaves its target unchanged.
func IsJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// NextKey implements dupkey.Cursor.
func (c *JSON) NextKey() (string, bool, error) {
	switch c.state {
	case jsonDone:
		return "", false, nil
	case jsonStart:
		tok, err := c.token()
		if err != nil {
			return "", false, err
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return "", false, fmt.Errorf("%w: starts with %v", ErrNotObject, tok)
		}
		c.state = jsonObject
	}

	if !c.dec.More() {
		// closing brace
		if _, err := c.token(); err != nil {
			return "", false, err
		}
		if err := c.expectEOF(); err != nil {
			return "", false, err
		}
		c.state = jsonDone

		return "", false, nil
	}

	tok, err := c.token()
	if err != nil {
		return "", false, err
	}

	key, ok := tok.(string)
	if !ok {
		return "", false, fmt.Errorf("document: expected object key, got %v", tok)
	}

	return key, true, nil
}

// ReadValue implements dupkey.Cursor.
func (c *JSON) ReadValue(dst any) error {
	return c.dec.Decode(dst)
}

// SkipValue implements dupkey.Cursor.
func (c *JSON) SkipValue() error {
	var raw json.RawMessage
	return c.dec.Decode(&raw)
}

// expectEOF requires the input to end after the closing brace, so a
// document followed by anything else fails as a whole.
func (c *JSON) expectEOF() error {
	tok, err := c.dec.Token()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return fmt.Errorf("%w: found %v", ErrTrailingData, tok)
	}
}

func (c *JSON) token() (json.Token, error) {
	tok, err := c.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}

	return tok, err
}
