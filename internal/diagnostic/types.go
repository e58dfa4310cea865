package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"dupkey-generator/dupkey"
	"dupkey-generator/internal/common"
	"dupkey-generator/internal/match"
)

// Diagnostic codes.
const (
	CodeUnnamedField     = "UNNAMED_FIELD"
	CodeUnknownDirective = "UNKNOWN_DIRECTIVE"
	CodeDuplicateKey     = "DUPLICATE_KEY"
	CodeNotStruct        = "NOT_STRUCT"
	CodeInvalidPolicy    = "INVALID_POLICY"
	CodeRepeatedKey      = "REPEATED_KEY"
	CodeNoFields         = "NO_FIELDS"
	CodeSkippedField     = "SKIPPED_FIELD"
	CodeConfig           = "CONFIG"
)

// Diagnostics holds all diagnostic information from planning.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Type identifies which record type this relates to (if any).
	Type string
	// Field identifies which field this relates to (if any).
	Field string
	// Pos is the source position, "file:line", if known.
	Pos string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, field string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Field:    field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, field string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Field:    field,
	})
}

// AddConfigError records a dupkey configuration error. Errors of other kinds
// are recorded under CodeConfig.
func (d *Diagnostics) AddConfigError(err error, typeName, pos string) {
	diag := Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeConfig,
		Message:  err.Error(),
		Type:     typeName,
		Pos:      pos,
	}

	var ce *dupkey.ConfigError
	if errors.As(err, &ce) {
		diag.Code = codeFor(ce.Reason)
		diag.Field = ce.Field
		diag.Message = ce.Reason.Error()
		if ce.Detail != "" {
			diag.Message += ": " + ce.Detail
		}
		if diag.Code == CodeUnknownDirective {
			diag.Message += directiveHint(ce.Detail)
		}
	}

	d.Errors = append(d.Errors, diag)
}

var directiveKinds = []string{dupkey.DirectiveAlias, dupkey.DirectiveRename, dupkey.DirectiveDefault}

// directiveHint suggests the closest known kind for a misspelled directive.
func directiveHint(detail string) string {
	kind, _, _ := strings.Cut(detail, "=")
	if kind == "" || strings.ContainsRune(kind, ' ') {
		return ""
	}
	if s, ok := match.Suggest(kind, directiveKinds); ok {
		return fmt.Sprintf(" (did you mean %q?)", s)
	}

	return ""
}

func codeFor(reason error) string {
	switch {
	case errors.Is(reason, dupkey.ErrUnnamedField):
		return CodeUnnamedField
	case errors.Is(reason, dupkey.ErrUnknownDirective):
		return CodeUnknownDirective
	case errors.Is(reason, dupkey.ErrDuplicateKey):
		return CodeDuplicateKey
	case errors.Is(reason, dupkey.ErrNotStruct):
		return CodeNotStruct
	case errors.Is(reason, dupkey.ErrInvalidPolicy):
		return CodeInvalidPolicy
	default:
		return CodeConfig
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos != "" {
		prefix = append(prefix, d.Pos)
	}

	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
