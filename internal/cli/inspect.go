package cli

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"dupkey-generator/internal/plan"
	"dupkey-generator/internal/schemafile"
)

type inspectOptions struct {
	Output string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect [packages...]",
		Short: "Print the decoding plans of marked types as a schema file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "", "Write the schema file here instead of stdout")
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions, patterns []string) error {
	result, err := loadPlan(cmd.Context(), patterns)
	if err != nil {
		return err
	}

	if opts.Output != "" {
		if err := schemafile.WriteFile(plan.ExportSchemaFile(result), opts.Output); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write schema file").
				WithCause(err)
		}
	} else {
		data, err := plan.ExportYAML(result)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to render plans").
				WithCause(err)
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	}

	// Valid plans are still printed; broken types are reported after them.
	if result.Diagnostics.HasErrors() {
		return configurationError(result.Diagnostics)
	}
	return nil
}
