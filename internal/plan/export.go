package plan

import (
	"go/types"

	"dupkey-generator/dupkey"
	"dupkey-generator/internal/schemafile"
)

// ExportSchemaFile renders a resolved plan as a schema file. The result can be
// fed back to the decode command to resolve documents without the Go types.
func ExportSchemaFile(p *ResolvedPlan) *schemafile.File {
	f := &schemafile.File{
		Version: schemafile.CurrentVersion,
		Records: []schemafile.RecordDef{},
	}

	for i := range p.Types {
		f.Records = append(f.Records, exportType(&p.Types[i]))
	}

	return f
}

// ExportYAML generates the schema file of a resolved plan as YAML.
func ExportYAML(p *ResolvedPlan) ([]byte, error) {
	return schemafile.Marshal(ExportSchemaFile(p))
}

func exportType(tp *TypePlan) schemafile.RecordDef {
	rd := schemafile.RecordDef{
		Name:   tp.ID.String(),
		Policy: policyName(tp.Policy),
		Fields: []schemafile.FieldDef{},
	}

	for _, fp := range tp.Fields {
		fd := schemafile.FieldDef{
			Name:    fp.Field.Name,
			Default: fp.Field.UseDefault,
			Type:    ValueTypeOf(fp.GoType),
		}
		if len(fp.Field.Keys) > 1 {
			fd.Alias = schemafile.StringOrArray(fp.Field.Keys[1:])
		}

		rd.Fields = append(rd.Fields, fd)
	}

	return rd
}

func policyName(p dupkey.Policy) string {
	switch p {
	case dupkey.FirstWins:
		return "first"
	case dupkey.LastWins:
		return "last"
	default:
		return ""
	}
}

// ValueTypeOf maps a Go type to the schema file type that decodes the same
// documents. Pointers are followed; []byte is a string, as encoding/json
// writes it.
func ValueTypeOf(t types.Type) schemafile.ValueType {
	if t == nil {
		return schemafile.TypeAny
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer:
		return ValueTypeOf(u.Elem())
	case *types.Basic:
		switch {
		case u.Info()&types.IsBoolean != 0:
			return schemafile.TypeBool
		case u.Info()&types.IsInteger != 0:
			return schemafile.TypeInteger
		case u.Info()&types.IsFloat != 0:
			return schemafile.TypeNumber
		case u.Info()&types.IsString != 0:
			return schemafile.TypeString
		}
	case *types.Slice:
		if b, ok := u.Elem().Underlying().(*types.Basic); ok && b.Kind() == types.Byte {
			return schemafile.TypeString
		}
		return schemafile.TypeArray
	case *types.Array:
		return schemafile.TypeArray
	case *types.Map, *types.Struct:
		return schemafile.TypeObject
	}

	return schemafile.TypeAny
}
