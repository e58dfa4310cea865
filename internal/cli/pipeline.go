package cli

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"dupkey-generator/internal/analyze"
	"dupkey-generator/internal/diagnostic"
	"dupkey-generator/internal/plan"
)

// loadPlan analyzes the packages matching patterns and plans their marked
// types. Diagnostics are logged; the caller decides whether errors are fatal.
func loadPlan(ctx context.Context, patterns []string) (*plan.ResolvedPlan, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(patterns...)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to load packages").
			WithCause(err)
	}

	result, err := plan.NewResolver(graph).Resolve(ctx)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to plan types").
			WithCause(err)
	}

	logDiagnostics(result.Diagnostics)

	return result, nil
}

func logDiagnostics(d diagnostic.Diagnostics) {
	for _, e := range d.Errors {
		log.Error().Str("code", e.Code).Msg(e.String())
	}
	for _, w := range d.Warnings {
		log.Warn().Str("code", w.Code).Msg(w.String())
	}
	for _, i := range d.Infos {
		log.Info().Str("code", i.Code).Msg(i.String())
	}
}

func configurationError(d diagnostic.Diagnostics) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("marked types have configuration errors").
		WithCause(d.Error())
}
