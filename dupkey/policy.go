package dupkey

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Policy -output=policy_string.go

// Policy selects which captured value survives when a field is matched more
// than once in the same document.
type Policy int

const (
	_ Policy = iota // zero value is not a valid policy

	// FirstWins keeps the value of the first matching key in document order.
	FirstWins
	// LastWins keeps the value of the last matching key in document order.
	LastWins
)

// Valid reports whether p is one of the declared policies.
func (p Policy) Valid() bool {
	return p == FirstWins || p == LastWins
}

// ParsePolicy parses the textual form of a policy as used in configuration
// files and command line flags.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first", "first-wins", "firstwins", "keep-first":
		return FirstWins, nil
	case "last", "last-wins", "lastwins", "keep-last":
		return LastWins, nil
	default:
		return 0, &ConfigError{Reason: ErrInvalidPolicy, Detail: fmt.Sprintf("%q", s)}
	}
}
