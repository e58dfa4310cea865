package plan

import (
	"go/types"

	"dupkey-generator/dupkey"
	"dupkey-generator/internal/analyze"
	"dupkey-generator/internal/diagnostic"
)

// ResolvedPlan is the output of resolution: one TypePlan per valid marked
// type, plus everything worth reporting.
type ResolvedPlan struct {
	Types       []TypePlan
	Diagnostics diagnostic.Diagnostics
}

// TypePlan is the compiled decoding plan of one record type.
type TypePlan struct {
	ID      analyze.TypeID
	PkgName string
	Dir     string
	Policy  dupkey.Policy
	Plan    *dupkey.Plan
	// TypeParams names the type parameters of a generic record type.
	TypeParams []string
	// Fields parallels Plan.Schema(): Fields[i] is schema field i.
	Fields []FieldPlan
}

// FieldPlan binds a schema field to the Go struct field it fills.
type FieldPlan struct {
	Field  dupkey.Field
	GoName string
	GoType types.Type
}

// PolicyFor maps a marker to its resolution policy.
func PolicyFor(m analyze.Marker) (dupkey.Policy, bool) {
	switch m {
	case analyze.MarkerFirst:
		return dupkey.FirstWins, true
	case analyze.MarkerLast:
		return dupkey.LastWins, true
	default:
		return 0, false
	}
}

// ByPackage groups type plans by package path, keeping their order.
func (p *ResolvedPlan) ByPackage() map[string][]TypePlan {
	out := make(map[string][]TypePlan)
	for _, tp := range p.Types {
		out[tp.ID.PkgPath] = append(out[tp.ID.PkgPath], tp)
	}

	return out
}
