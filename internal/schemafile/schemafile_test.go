package schemafile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dupkey-generator/document"
	"dupkey-generator/dupkey"
	"dupkey-generator/internal/diagnostic"
)

const dogSchema = `
version: "1"
policy: last
records:
  - name: dog
    fields:
      - name: name
      - name: breed
        alias: type
        rename: [kind]
      - name: age
        type: integer
        default: true
      - name: tags
        type: array
        default: true
  - name: owner
    policy: first
    fields:
      - name: email
        alias: [mail, e-mail]
        type: string
`

func mustCompile(t *testing.T, src string, opts Options) *Set {
	t.Helper()

	f, err := Parse([]byte(src))
	require.NoError(t, err)

	set, err := Compile(f, opts)
	require.NoError(t, err)

	return set
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(dogSchema))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "last", f.Policy)
	require.Len(t, f.Records, 2)

	breed := f.Records[0].Fields[1]
	assert.Equal(t, StringOrArray{"type"}, breed.Alias)
	assert.Equal(t, StringOrArray{"kind"}, breed.Rename)
	assert.True(t, f.Records[1].Fields[0].Alias.IsMultiple())
}

func TestParse_DefaultsVersion(t *testing.T) {
	f, err := Parse([]byte("records: []\n"))
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, f.Version)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`
records:
  - name: dog
    fields:
      - name: breed
        flatten: true
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flatten")
}

func TestParse_AliasMustBeScalarOrList(t *testing.T) {
	_, err := Parse([]byte(`
records:
  - name: dog
    fields:
      - name: breed
        alias: {a: b}
`))
	require.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	f, err := Parse([]byte(dogSchema))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, WriteFile(f, path))

	back, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}

func TestCompile_Policies(t *testing.T) {
	set := mustCompile(t, dogSchema, Options{})

	dog, err := set.Record("dog")
	require.NoError(t, err)
	assert.Equal(t, dupkey.LastWins, dog.Plan().Policy())

	owner, err := set.Record("owner")
	require.NoError(t, err)
	assert.Equal(t, dupkey.FirstWins, owner.Plan().Policy())

	overridden := mustCompile(t, dogSchema, Options{OverridePolicy: dupkey.FirstWins})
	dog, err = overridden.Record("dog")
	require.NoError(t, err)
	assert.Equal(t, dupkey.FirstWins, dog.Plan().Policy())
}

func TestCompile_DefaultPolicy(t *testing.T) {
	src := "records:\n  - name: r\n    fields:\n      - name: v\n"

	f, err := Parse([]byte(src))
	require.NoError(t, err)

	_, err = Compile(f, Options{})
	require.ErrorIs(t, err, dupkey.ErrInvalidPolicy)

	set := mustCompile(t, src, Options{DefaultPolicy: dupkey.LastWins})
	rec, err := set.Record("r")
	require.NoError(t, err)
	assert.Equal(t, dupkey.LastWins, rec.Plan().Policy())
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason error
	}{
		{
			name:   "shared key",
			src:    "policy: last\nrecords:\n  - name: r\n    fields:\n      - name: a\n        alias: x\n      - name: b\n        alias: x\n",
			reason: dupkey.ErrDuplicateKey,
		},
		{
			name:   "unnamed field",
			src:    "policy: last\nrecords:\n  - name: r\n    fields:\n      - alias: x\n",
			reason: dupkey.ErrUnnamedField,
		},
		{
			name:   "bad policy",
			src:    "policy: middle\nrecords:\n  - name: r\n    fields:\n      - name: a\n",
			reason: dupkey.ErrInvalidPolicy,
		},
		{
			name:   "unknown type",
			src:    "policy: last\nrecords:\n  - name: r\n    fields:\n      - name: a\n        type: date\n",
			reason: errUnknownType,
		},
		{
			name:   "duplicate record",
			src:    "policy: last\nrecords:\n  - name: r\n    fields: []\n  - name: r\n    fields: []\n",
			reason: errDuplicateRecord,
		},
		{
			name:   "version",
			src:    "version: \"2\"\nrecords: []\n",
			reason: errUnsupportedVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.src))
			require.NoError(t, err)

			_, err = Compile(f, Options{})
			require.ErrorIs(t, err, tt.reason)

			var ce *dupkey.ConfigError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestValidate_CollectsEveryRecord(t *testing.T) {
	f, err := Parse([]byte(`
policy: last
records:
  - name: a
    fields:
      - name: x
        alias: y
      - name: z
        alias: y
  - name: b
    fields: []
  - name: c
    fields:
      - name: v
        type: date
`))
	require.NoError(t, err)

	diags := Validate(f, Options{})
	require.Len(t, diags.Errors, 2)
	assert.Equal(t, diagnostic.CodeDuplicateKey, diags.Errors[0].Code)
	assert.Equal(t, "a", diags.Errors[0].Type)
	assert.Equal(t, "z", diags.Errors[0].Field)
	assert.Equal(t, "c", diags.Errors[1].Type)

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeNoFields, diags.Warnings[0].Code)

	assert.True(t, Validate(nil, Options{}).HasErrors())
}

func TestSet_RecordLookup(t *testing.T) {
	src := `
policy: last
records:
  - name: example.com/dogs.Dog
    fields: [{name: Name}]
  - name: example.com/cats.Cat
    fields: [{name: Name}]
  - name: example.com/other/cats.Cat
    fields: [{name: Name}]
`
	set := mustCompile(t, src, Options{})

	assert.Equal(t, []string{"example.com/dogs.Dog", "example.com/cats.Cat", "example.com/other/cats.Cat"}, set.Names())

	for _, name := range []string{"example.com/dogs.Dog", "dogs.Dog", "Dog"} {
		rp, err := set.Record(name)
		require.NoError(t, err, name)
		assert.Equal(t, "example.com/dogs.Dog", rp.Name())
	}

	_, err := set.Record("Cat")
	require.ErrorIs(t, err, ErrRecordNotFound)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = set.Record("Bird")
	require.ErrorIs(t, err, ErrRecordNotFound)
	assert.NotContains(t, err.Error(), "did you mean")

	_, err = set.Record("Dogg")
	require.ErrorIs(t, err, ErrRecordNotFound)
	assert.EqualError(t, err, `record not found: "Dogg" (did you mean "Dog"?)`)

	_, err = set.Record("dogs.Dogs")
	assert.EqualError(t, err, `record not found: "dogs.Dogs" (did you mean "dogs.Dog"?)`)
}

func TestRecordPlan_Decode(t *testing.T) {
	set := mustCompile(t, dogSchema, Options{})
	dog, err := set.Record("dog")
	require.NoError(t, err)

	rec, err := dog.Decode(document.NewJSONBytes([]byte(`{"kind":"pug","name":"Rex","type":"collie","extra":[1,2]}`)))
	require.NoError(t, err)

	require.Len(t, rec.Entries, 4)
	assert.Equal(t, Entry{Name: "name", Value: "Rex", Key: "name"}, rec.Entries[0])
	assert.Equal(t, Entry{Name: "breed", Value: "collie", Key: "type"}, rec.Entries[1])
	assert.Equal(t, Entry{Name: "age", Value: int64(0), Defaulted: true}, rec.Entries[2])
	assert.Equal(t, Entry{Name: "tags", Value: []any{}, Defaulted: true}, rec.Entries[3])

	v, ok := rec.Get("breed")
	assert.True(t, ok)
	assert.Equal(t, "collie", v)

	_, ok = rec.Get("weight")
	assert.False(t, ok)
}

func TestRecordPlan_DecodeFirstWins(t *testing.T) {
	set := mustCompile(t, dogSchema, Options{})
	owner, err := set.Record("owner")
	require.NoError(t, err)

	rec, err := owner.Decode(document.NewJSONBytes([]byte(`{"mail":"a@x","email":"b@x","e-mail":"c@x"}`)))
	require.NoError(t, err)

	v, _ := rec.Get("email")
	assert.Equal(t, "a@x", v)
}

func TestRecordPlan_DecodeMissingField(t *testing.T) {
	set := mustCompile(t, dogSchema, Options{})
	dog, err := set.Record("dog")
	require.NoError(t, err)

	_, err = dog.Decode(document.NewJSONBytes([]byte(`{"name":"Rex"}`)))

	var missing *dupkey.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "breed", missing.Field)
}

func TestRecordPlan_DecodeTypes(t *testing.T) {
	src := `
policy: last
records:
  - name: r
    fields:
      - {name: s, type: string, default: true}
      - {name: n, type: number, default: true}
      - {name: i, type: integer, default: true}
      - {name: b, type: bool, default: true}
      - {name: a, type: array, default: true}
      - {name: o, type: object, default: true}
      - {name: x, default: true}
`
	set := mustCompile(t, src, Options{})
	rp, err := set.Record("r")
	require.NoError(t, err)

	rec, err := rp.Decode(document.NewJSONBytes([]byte(`{}`)))
	require.NoError(t, err)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"","n":0,"i":0,"b":false,"a":[],"o":{},"x":null}`, string(out))

	rec, err = rp.Decode(document.NewJSONBytes([]byte(`{"s":"v","n":1.5,"i":7,"b":true,"a":[1,"two"],"o":{"k":"v"},"x":"any"}`)))
	require.NoError(t, err)

	out, err = json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"v","n":1.5,"i":7,"b":true,"a":[1,"two"],"o":{"k":"v"},"x":"any"}`, string(out))

	_, err = rp.Decode(document.NewJSONBytes([]byte(`{"i":"seven"}`)))

	var readErr *dupkey.ValueReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "i", readErr.Field)
}

func TestRecord_MarshalKeepsSchemaOrder(t *testing.T) {
	rec := &Record{Entries: []Entry{
		{Name: "zeta", Value: "last"},
		{Name: "alpha", Value: map[string]any{"b": 2, "a": 1}},
	}}

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"last","alpha":{"a":1,"b":2}}`, string(out))

	y, err := yaml.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, "zeta: last\nalpha:\n    a: 1\n    b: 2\n", string(y))
	assert.Less(t, strings.Index(string(y), "zeta"), strings.Index(string(y), "alpha"))
}
