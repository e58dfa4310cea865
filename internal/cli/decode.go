package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"dupkey-generator/document"
	"dupkey-generator/dupkey"
	"dupkey-generator/internal/schemafile"
)

// msgUnreadableDocument prefixes errors for documents that could not be read,
// as opposed to documents that lack a required field.
const msgUnreadableDocument = "unreadable document"

// Input formats.
const (
	formatJSON  = "json"
	formatSonic = "sonic"
	formatYAML  = "yaml"
	formatBSON  = "bson"
)

type decodeOptions struct {
	Schema string
	Record string
	Policy string
	Format string
	Output string
}

func newDecodeCommand() *cobra.Command {
	opts := decodeOptions{}
	cmd := &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Resolve one document against a record of a schema file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return runDecode(cmd, opts, input)
		},
	}
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Schema file path")
	cmd.Flags().StringVar(&opts.Record, "record", "", "Record name (optional when the schema has one record)")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "Override the duplicate policy (first, last)")
	cmd.Flags().StringVar(&opts.Format, "format", formatJSON, "Input format (json, sonic, yaml, bson)")
	cmd.Flags().StringVar(&opts.Output, "output", formatJSON, "Output format (json, yaml)")
	_ = viper.BindPFlag("decode.schema", cmd.Flags().Lookup("schema"))
	return cmd
}

func runDecode(cmd *cobra.Command, opts decodeOptions, input string) error {
	rp, err := selectRecord(cmd, opts)
	if err != nil {
		return err
	}

	data, err := readInput(cmd, input)
	if err != nil {
		return err
	}

	cur, err := newCursor(opts.Format, data)
	if err != nil {
		return err
	}

	rec, err := rp.Decode(cur)
	if err != nil {
		return decodeError(err)
	}

	log.Debug().Str("record", rp.Name()).Int("fields", len(rec.Entries)).Msg("decoded document")

	return writeRecord(cmd.OutOrStdout(), opts.Output, rec)
}

func selectRecord(cmd *cobra.Command, opts decodeOptions) (*schemafile.RecordPlan, error) {
	schemaPath := resolveString(cmd, opts.Schema, "decode.schema", "schema")
	if schemaPath == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("--schema is required")
	}

	f, err := schemafile.LoadFile(schemaPath)
	if err != nil {
		code := errbuilder.CodeInvalidArgument
		if errors.Is(err, os.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}
		return nil, errbuilder.New().
			WithCode(code).
			WithMsg("failed to load schema file").
			WithCause(err)
	}

	var schemaOpts schemafile.Options
	if flagChanged(cmd, "policy") {
		schemaOpts.OverridePolicy, err = dupkey.ParsePolicy(opts.Policy)
	} else if p := viper.GetString("policy"); p != "" {
		schemaOpts.DefaultPolicy, err = dupkey.ParsePolicy(p)
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid policy").
			WithCause(err)
	}

	set, err := schemafile.Compile(f, schemaOpts)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid schema file").
			WithCause(err)
	}

	name := opts.Record
	if name == "" {
		names := set.Names()
		if len(names) != 1 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("--record is required, schema has %d records: %s", len(names), strings.Join(names, ", ")))
		}
		name = names[0]
	}

	rp, err := set.Record(name)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("unknown record").
			WithCause(err)
	}

	return rp, nil
}

func readInput(cmd *cobra.Command, input string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, os.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}
		return nil, errbuilder.New().
			WithCode(code).
			WithMsg("failed to read input").
			WithCause(err)
	}
	return data, nil
}

func newCursor(format string, data []byte) (dupkey.Cursor, error) {
	switch strings.ToLower(format) {
	case formatJSON:
		return document.NewJSONBytes(data), nil
	case formatSonic:
		return document.NewSonic(string(data)), nil
	case formatYAML:
		cur, err := document.ParseYAML(bytes.NewReader(data))
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(msgUnreadableDocument).
				WithCause(err)
		}
		return cur, nil
	case formatBSON:
		return document.NewBSON(data), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown input format %q", format))
	}
}

func decodeError(err error) error {
	var missing *dupkey.MissingFieldError
	if errors.As(err, &missing) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("missing field %q", missing.Field)).
			WithCause(err)
	}

	var readErr *dupkey.ValueReadError
	if errors.As(err, &readErr) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(msgUnreadableDocument).
			WithCause(err)
	}

	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("decode failed").
		WithCause(err)
}

func writeRecord(w io.Writer, format string, rec *schemafile.Record) error {
	var (
		out []byte
		err error
	)
	switch strings.ToLower(format) {
	case formatJSON:
		out, err = sonic.ConfigStd.MarshalIndent(rec, "", "  ")
		out = append(out, '\n')
	case formatYAML:
		out, err = yaml.Marshal(rec)
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown output format %q", format))
	}
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to render record").
			WithCause(err)
	}

	_, err = w.Write(out)
	return err
}
