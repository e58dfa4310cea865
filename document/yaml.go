package document

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAML is a cursor over a yaml.v3 mapping node. Document nodes and aliases
// are followed to the mapping they stand for; an empty document has no keys.
type YAML struct {
	node    *yaml.Node
	started bool
	next    int // index of the next key node in node.Content
}

// NewYAML returns a cursor over node. It fits the yaml.Unmarshaler hook:
//
//	func (r *T) UnmarshalYAML(value *yaml.Node) error {
//		return r.DecodeDuplicates(document.NewYAML(value))
//	}
func NewYAML(node *yaml.Node) *YAML {
	return &YAML{node: node}
}

// ParseYAML reads one YAML document from r and returns a cursor over it.
// Parsing into a node keeps repeated keys, which yaml.v3 would reject when
// decoding straight into a map or struct.
func ParseYAML(r io.Reader) (*YAML, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return NewYAML(&node), nil
}

// NextKey implements dupkey.Cursor.
func (c *YAML) NextKey() (string, bool, error) {
	if !c.started {
		if err := c.start(); err != nil {
			return "", false, err
		}
	}

	if c.node == nil || c.next >= len(c.node.Content) {
		return "", false, nil
	}

	keyNode := c.node.Content[c.next]
	if keyNode.Kind != yaml.ScalarNode {
		return "", false, fmt.Errorf("document: line %d: mapping key is not a scalar", keyNode.Line)
	}

	return keyNode.Value, true, nil
}

func (c *YAML) start() error {
	c.started = true

	n := c.node
	for n != nil {
		switch n.Kind {
		case 0:
			// empty document
			c.node = nil
			return nil
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				c.node = nil
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		case yaml.MappingNode:
			c.node = n
			return nil
		default:
			return fmt.Errorf("%w: line %d: %s", ErrNotObject, n.Line, n.ShortTag())
		}
	}

	c.node = nil

	return nil
}

// ReadValue implements dupkey.Cursor.
func (c *YAML) ReadValue(dst any) error {
	v, err := c.value()
	if err != nil {
		return err
	}

	return v.Decode(dst)
}

// SkipValue implements dupkey.Cursor.
func (c *YAML) SkipValue() error {
	_, err := c.value()
	return err
}

func (c *YAML) value() (*yaml.Node, error) {
	i := c.next + 1
	if c.node == nil || i >= len(c.node.Content) {
		return nil, io.ErrUnexpectedEOF
	}

	c.next += 2

	return c.node.Content[i], nil
}
