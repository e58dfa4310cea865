package schemafile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"dupkey-generator/dupkey"
	"dupkey-generator/internal/diagnostic"
	"dupkey-generator/internal/match"
)

// ErrRecordNotFound is returned by Set.Record for an unknown record name.
var ErrRecordNotFound = errors.New("record not found")

// Options controls how record policies are chosen. Zero policies are unset.
type Options struct {
	// DefaultPolicy applies to records when neither they nor the file
	// declare one.
	DefaultPolicy dupkey.Policy
	// OverridePolicy, when set, replaces every declared policy.
	OverridePolicy dupkey.Policy
}

// Set is a compiled schema file.
type Set struct {
	records []*RecordPlan
	byName  map[string]*RecordPlan
}

// Compile validates f and compiles every record. It fails on the first
// configuration error; use Validate to collect all of them.
func Compile(f *File, opts Options) (*Set, error) {
	if f.Version != CurrentVersion {
		return nil, &dupkey.ConfigError{Reason: errUnsupportedVersion, Detail: fmt.Sprintf("%q", f.Version)}
	}

	s := &Set{byName: make(map[string]*RecordPlan, len(f.Records))}

	for i := range f.Records {
		rec := &f.Records[i]
		if _, dup := s.byName[rec.Name]; dup {
			return nil, &dupkey.ConfigError{Type: rec.Name, Reason: errDuplicateRecord}
		}

		rp, err := compileRecord(f, rec, opts)
		if err != nil {
			return nil, err
		}

		s.records = append(s.records, rp)
		s.byName[rec.Name] = rp
	}

	return s, nil
}

// Validate reports every configuration problem of f.
func Validate(f *File, opts Options) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeConfig, "schema file is nil", "", "")
		return res
	}

	if f.Version != CurrentVersion {
		res.AddError(diagnostic.CodeConfig, fmt.Sprintf("unsupported version %q", f.Version), "", "")
	}

	seen := make(map[string]struct{}, len(f.Records))
	for i := range f.Records {
		rec := &f.Records[i]

		if _, dup := seen[rec.Name]; dup {
			res.AddError(diagnostic.CodeConfig, errDuplicateRecord.Error(), rec.Name, "")
			continue
		}
		seen[rec.Name] = struct{}{}

		if _, err := compileRecord(f, rec, opts); err != nil {
			res.AddConfigError(err, rec.Name, "")
			continue
		}

		if len(rec.Fields) == 0 {
			res.AddWarning(diagnostic.CodeNoFields, "record has no fields", rec.Name, "")
		}
	}

	return res
}

var (
	errUnsupportedVersion = errors.New("unsupported schema version")
	errDuplicateRecord    = errors.New("record declared more than once")
	errUnnamedRecord      = errors.New("record has no name")
	errUnknownType        = errors.New("unknown field type")
)

func compileRecord(f *File, rec *RecordDef, opts Options) (*RecordPlan, error) {
	if rec.Name == "" {
		return nil, &dupkey.ConfigError{Reason: errUnnamedRecord}
	}

	policy, err := recordPolicy(f, rec, opts)
	if err != nil {
		return nil, err
	}

	fields := make([]dupkey.Field, 0, len(rec.Fields))
	types := make([]ValueType, 0, len(rec.Fields))

	for _, fd := range rec.Fields {
		if !fd.Type.Valid() {
			return nil, &dupkey.ConfigError{
				Type:   rec.Name,
				Field:  fd.Name,
				Reason: errUnknownType,
				Detail: fmt.Sprintf("%q (want one of %s)", fd.Type, typeList()),
			}
		}

		field, err := dupkey.NewField(fd.Name, directives(&fd)...)
		if err != nil {
			var ce *dupkey.ConfigError
			if errors.As(err, &ce) {
				ce.Type = rec.Name
			}

			return nil, err
		}

		fields = append(fields, field)
		types = append(types, fd.Type)
	}

	schema, err := dupkey.NewSchema(rec.Name, fields...)
	if err != nil {
		return nil, err
	}

	plan, err := dupkey.Compile(schema, policy)
	if err != nil {
		return nil, err
	}

	return &RecordPlan{plan: plan, types: types}, nil
}

// recordPolicy picks the override, the record's own policy, the file policy
// and the default, in that order.
func recordPolicy(f *File, rec *RecordDef, opts Options) (dupkey.Policy, error) {
	if opts.OverridePolicy.Valid() {
		return opts.OverridePolicy, nil
	}

	for _, declared := range []string{rec.Policy, f.Policy} {
		if declared == "" {
			continue
		}

		p, err := dupkey.ParsePolicy(declared)
		if err != nil {
			var ce *dupkey.ConfigError
			if errors.As(err, &ce) {
				ce.Type = rec.Name
			}

			return 0, err
		}

		return p, nil
	}

	if opts.DefaultPolicy.Valid() {
		return opts.DefaultPolicy, nil
	}

	return 0, &dupkey.ConfigError{Type: rec.Name, Reason: dupkey.ErrInvalidPolicy, Detail: "no policy declared"}
}

func directives(fd *FieldDef) []dupkey.Directive {
	var out []dupkey.Directive

	for _, a := range fd.Alias {
		out = append(out, dupkey.Directive{Kind: dupkey.DirectiveAlias, Value: a})
	}

	for _, r := range fd.Rename {
		out = append(out, dupkey.Directive{Kind: dupkey.DirectiveRename, Value: r})
	}

	if fd.Default {
		out = append(out, dupkey.Directive{Kind: dupkey.DirectiveDefault})
	}

	return out
}

func typeList() string {
	names := make([]string, len(valueTypes))
	for i, t := range valueTypes {
		names[i] = string(t)
	}

	return strings.Join(names, ", ")
}

// Names returns the record names in declaration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.records))
	for i, rp := range s.records {
		out[i] = rp.Name()
	}

	return out
}

// Record looks a record up by name. Besides the exact name, a Go style
// qualified name matches by its last path element ("dogs.Dog" for
// "example.com/dogs.Dog") or by the bare type name when that is unambiguous.
func (s *Set) Record(name string) (*RecordPlan, error) {
	if rp, ok := s.byName[name]; ok {
		return rp, nil
	}

	var matches []*RecordPlan
	var candidates []string
	for _, rp := range s.records {
		full := rp.Name()
		short := full[strings.LastIndex(full, "/")+1:]
		bare := short[strings.LastIndex(short, ".")+1:]

		if name == short || name == bare {
			matches = append(matches, rp)
		}
		if strings.Contains(name, ".") {
			candidates = append(candidates, short)
		} else {
			candidates = append(candidates, bare)
		}
	}

	if len(matches) == 1 {
		return matches[0], nil
	}

	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, rp := range matches {
			names[i] = rp.Name()
		}
		slices.Sort(names)

		return nil, fmt.Errorf("%w: %q is ambiguous between %s", ErrRecordNotFound, name, strings.Join(names, ", "))
	}

	if hint, ok := match.Suggest(name, candidates); ok {
		return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrRecordNotFound, name, hint)
	}

	return nil, fmt.Errorf("%w: %q", ErrRecordNotFound, name)
}
