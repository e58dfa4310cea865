package cli

import (
	"fmt"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dupkey-generator/internal/gen"
)

type genOptions struct {
	Formats   []string
	Suffix    string
	OutputDir string
	Comments  bool
	DryRun    bool
}

func newGenCommand() *cobra.Command {
	opts := genOptions{}
	cmd := &cobra.Command{
		Use:   "gen [packages...]",
		Short: "Generate DecodeDuplicates methods for marked types",
		Long: `Generate DecodeDuplicates methods for every struct marked with
//dupkey:first or //dupkey:last, one file per package.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, opts, args)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Formats, "format", []string{string(gen.FormatJSON)}, "Unmarshaler adapters to emit (json, yaml, bson)")
	cmd.Flags().StringVar(&opts.Suffix, "suffix", gen.DefaultSuffix, "Output filename suffix")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Write every file into this directory instead of its package")
	cmd.Flags().BoolVar(&opts.Comments, "comments", true, "Emit doc comments on generated methods")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print generated code instead of writing it")
	_ = viper.BindPFlag("gen.formats", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("gen.suffix", cmd.Flags().Lookup("suffix"))
	_ = viper.BindPFlag("gen.package_comments", cmd.Flags().Lookup("comments"))
	return cmd
}

func runGen(cmd *cobra.Command, opts genOptions, patterns []string) error {
	formats, err := gen.ParseFormats(resolveStrings(cmd, opts.Formats, "gen.formats", "format"))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid gen.formats").
			WithCause(err)
	}

	result, err := loadPlan(cmd.Context(), patterns)
	if err != nil {
		return err
	}
	if result.Diagnostics.HasErrors() {
		return configurationError(result.Diagnostics)
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		Formats:          formats,
		Suffix:           resolveString(cmd, opts.Suffix, "gen.suffix", "suffix"),
		GenerateComments: resolveBool(cmd, opts.Comments, "gen.package_comments", "comments"),
		DebugUnformatted: viper.GetString("log_level") == "debug",
	})

	files, err := generator.Generate(result)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("code generation failed").
			WithCause(err)
	}

	if opts.DryRun {
		out := cmd.OutOrStdout()
		for _, f := range files {
			fmt.Fprintf(out, "// %s\n%s\n", filepath.Join(f.Dir, f.Filename), f.Content)
		}
		return nil
	}

	if err := gen.WriteFiles(files, opts.OutputDir); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write generated files").
			WithCause(err)
	}

	for _, f := range files {
		log.Info().Str("file", filepath.Join(f.Dir, f.Filename)).Msg("generated")
	}
	if len(files) == 0 {
		log.Warn().Strs("packages", patterns).Msg("no marked types found")
	}
	return nil
}
