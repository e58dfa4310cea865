package dupkey

import (
	"errors"
	"fmt"
	"strings"
)

// Reasons carried by ConfigError. Match them with errors.Is.
var (
	ErrUnnamedField     = errors.New("field has no name to match document keys against")
	ErrUnknownDirective = errors.New("unsupported directive")
	ErrDuplicateKey     = errors.New("accepted key is claimed by more than one field")
	ErrInvalidPolicy    = errors.New("invalid duplicate resolution policy")
	ErrNotStruct        = errors.New("record type must be a struct")
)

// ConfigError reports a problem with a record description. It is raised while
// building a Field, Schema or Plan, before any document is read.
type ConfigError struct {
	Type   string // record type or schema name, if known
	Field  string // field identifier, if known
	Reason error
	Detail string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("dupkey: configuration")
	if e.Type != "" {
		b.WriteString(" of ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	if e.Reason != nil {
		b.WriteString(e.Reason.Error())
	} else {
		b.WriteString("invalid record description")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Reason }

// MissingFieldError reports a field without a captured value that does not
// fall back to its default.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("dupkey: missing field %q", e.Field)
}

// ValueReadError wraps a failure of the document reader. Field and Key are
// empty when the document structure itself could not be read.
type ValueReadError struct {
	Field string
	Key   string
	Err   error
}

func (e *ValueReadError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("dupkey: reading field %q from key %q: %v", e.Field, e.Key, e.Err)
	case e.Key != "":
		return fmt.Sprintf("dupkey: reading key %q: %v", e.Key, e.Err)
	default:
		return fmt.Sprintf("dupkey: reading document: %v", e.Err)
	}
}

func (e *ValueReadError) Unwrap() error { return e.Err }

// MissingField returns the error for an unresolved field. Generated decoders
// call it during finalization.
func MissingField(name string) error {
	return &MissingFieldError{Field: name}
}

// ValueError wraps err as the failure to read the value of key into field.
func ValueError(field, key string, err error) error {
	return &ValueReadError{Field: field, Key: key, Err: err}
}

// ReadError wraps a failure to advance the document cursor. key is the key
// whose value was being skipped, or empty.
func ReadError(key string, err error) error {
	return &ValueReadError{Key: key, Err: err}
}
