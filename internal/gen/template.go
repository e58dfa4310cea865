package gen

import "text/template"

// templateData holds all data needed for one generated file.
type templateData struct {
	PackageName string
	Imports     []importSpec
	Types       []typeData
	Comments    bool
	JSON        bool
	YAML        bool
	BSON        bool
}

// typeData describes the decoder of one record type.
type typeData struct {
	// Receiver is the type name with its type parameter list, e.g. "Box[T]".
	Receiver  string
	PolicyDoc string
	Fields    []fieldData
}

// fieldData describes one case of the generated scan.
type fieldData struct {
	GoName string
	// Quoted is the canonical field name as a Go string literal.
	Quoted string
	Var    string
	SetVar string
	Type   string
	// Cases is the accepted keys as a case list.
	Cases      string
	UseDefault bool
	// Guard skips values once the field is set (first wins).
	Guard     bool
	NeedsFlag bool
}

var fileTemplate = template.Must(template.New("dupkey").Parse(`// Code generated by dupkey-gen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{range .Types}}
{{if $.Comments}}// DecodeDuplicates resolves the keys of one document read from cur into r.
// {{.PolicyDoc}}
// r is left unchanged when an error is returned.
{{end}}func (r *{{.Receiver}}) DecodeDuplicates(cur dupkey.Cursor) error {
{{if .Fields}}	var (
{{range .Fields}}		{{.Var}} {{.Type}}
{{if .NeedsFlag}}		{{.SetVar}} bool
{{end}}{{end}}	)

{{end}}	for {
		key, ok, err := cur.NextKey()
		if err != nil {
			return dupkey.ReadError("", err)
		}
		if !ok {
			break
		}

		switch key {
{{range .Fields}}		case {{.Cases}}:
{{if .Guard}}			if {{.SetVar}} {
				if err := cur.SkipValue(); err != nil {
					return dupkey.ReadError(key, err)
				}
				continue
			}
{{end}}			var v {{.Type}}
			if err := cur.ReadValue(&v); err != nil {
				return dupkey.ValueError({{.Quoted}}, key, err)
			}
			{{.Var}}{{if .NeedsFlag}}, {{.SetVar}}{{end}} = v{{if .NeedsFlag}}, true{{end}}
{{end}}		default:
			if err := cur.SkipValue(); err != nil {
				return dupkey.ReadError(key, err)
			}
		}
	}
{{range .Fields}}{{if not .UseDefault}}
	if !{{.SetVar}} {
		return dupkey.MissingField({{.Quoted}})
	}
{{end}}{{end}}
{{range .Fields}}	r.{{.GoName}} = {{.Var}}
{{end}}
	return nil
}
{{if $.JSON}}
{{if $.Comments}}// UnmarshalJSON implements json.Unmarshaler on top of DecodeDuplicates.
{{end}}func (r *{{.Receiver}}) UnmarshalJSON(data []byte) error {
	if document.IsJSONNull(data) {
		return nil
	}

	return r.DecodeDuplicates(document.NewJSONBytes(data))
}
{{end}}{{if $.YAML}}
{{if $.Comments}}// UnmarshalYAML implements yaml.Unmarshaler on top of DecodeDuplicates.
{{end}}func (r *{{.Receiver}}) UnmarshalYAML(value *yaml.Node) error {
	return r.DecodeDuplicates(document.NewYAML(value))
}
{{end}}{{if $.BSON}}
{{if $.Comments}}// UnmarshalBSON implements bson.Unmarshaler on top of DecodeDuplicates.
{{end}}func (r *{{.Receiver}}) UnmarshalBSON(data []byte) error {
	return r.DecodeDuplicates(document.NewBSON(data))
}
{{end}}{{end}}`))
