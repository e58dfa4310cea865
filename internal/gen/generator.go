package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"dupkey-generator/dupkey"
	"dupkey-generator/internal/common"
	"dupkey-generator/internal/plan"
)

// Import paths referenced by generated code.
const (
	runtimePkgPath  = "dupkey-generator/dupkey"
	documentPkgPath = "dupkey-generator/document"
	yamlPkgPath     = "gopkg.in/yaml.v3"
)

// DefaultSuffix is appended to the package name to form the output filename.
const DefaultSuffix = "_dupkey.go"

// Format names an unmarshaler adapter emitted next to DecodeDuplicates.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatBSON Format = "bson"
)

// ParseFormats validates adapter names, dropping repeats.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format

	for _, name := range names {
		switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
		case FormatJSON, FormatYAML, FormatBSON:
			if !slices.Contains(out, f) {
				out = append(out, f)
			}
		case "":
		default:
			return nil, fmt.Errorf("unknown format %q (want json, yaml or bson)", name)
		}
	}

	return out, nil
}

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Formats lists the unmarshaler adapters to emit.
	Formats []Format
	// Suffix is appended to the package name to form the filename.
	Suffix string
	// GenerateComments enables doc comments on generated methods.
	GenerateComments bool
	// DebugUnformatted writes a sidecar file with the raw template output
	// when formatting fails.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Formats:          []Format{FormatJSON},
		Suffix:           DefaultSuffix,
		GenerateComments: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Suffix == "" {
		config.Suffix = DefaultSuffix
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "dogs_dupkey.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate emits one file per package of p, in package path order.
func (g *Generator) Generate(p *plan.ResolvedPlan) ([]GeneratedFile, error) {
	byPkg := p.ByPackage()

	files := make([]GeneratedFile, 0, len(byPkg))
	for _, pkgPath := range slices.Sorted(maps.Keys(byPkg)) {
		file, err := g.generatePackage(pkgPath, byPkg[pkgPath])
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", pkgPath, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generatePackage(pkgPath string, tps []plan.TypePlan) (*GeneratedFile, error) {
	imports := newImportSet(pkgPath)
	imports.add(runtimePkgPath, "dupkey")

	data := &templateData{
		PackageName: tps[0].PkgName,
		Comments:    g.config.GenerateComments,
	}

	for _, f := range g.config.Formats {
		switch f {
		case FormatJSON:
			data.JSON = true
		case FormatYAML:
			data.YAML = true
			imports.add(yamlPkgPath, "yaml")
		case FormatBSON:
			data.BSON = true
		}
	}
	if len(g.config.Formats) > 0 {
		imports.add(documentPkgPath, "document")
	}

	for i := range tps {
		data.Types = append(data.Types, buildTypeData(&tps[i], imports))
	}
	data.Imports = imports.sorted()

	filename := data.PackageName + g.config.Suffix
	dir := tps[0].Dir

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugUnformatted {
			_ = writeDebugUnformatted(dir, filename, buf.Bytes())
		}

		return &GeneratedFile{
			Dir:      dir,
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	log.Debug().
		Str("package", pkgPath).
		Str("file", filename).
		Int("types", len(tps)).
		Msg("generated decoders")

	return &GeneratedFile{
		Dir:      dir,
		Filename: filename,
		Content:  formatted,
	}, nil
}

func buildTypeData(tp *plan.TypePlan, imports *importSet) typeData {
	td := typeData{
		Receiver:  tp.ID.Name,
		PolicyDoc: policyDoc(tp.Policy),
	}
	if len(tp.TypeParams) > 0 {
		td.Receiver += "[" + strings.Join(tp.TypeParams, ", ") + "]"
	}

	firstWins := tp.Policy == dupkey.FirstWins

	for _, fp := range tp.Fields {
		f := fp.Field

		quoted := make([]string, 0, len(f.Keys))
		for _, key := range common.Unique(f.Keys) {
			quoted = append(quoted, strconv.Quote(key))
		}

		td.Fields = append(td.Fields, fieldData{
			GoName:     fp.GoName,
			Quoted:     strconv.Quote(f.Name),
			Var:        "v" + fp.GoName,
			SetVar:     "set" + fp.GoName,
			Type:       imports.typeString(fp.GoType),
			Cases:      strings.Join(quoted, ", "),
			UseDefault: f.UseDefault,
			Guard:      firstWins,
			NeedsFlag:  firstWins || !f.UseDefault,
		})
	}

	return td
}

func policyDoc(p dupkey.Policy) string {
	if p == dupkey.FirstWins {
		return "A field matched more than once keeps its first value in document order."
	}

	return "A field matched more than once keeps its last value in document order."
}
