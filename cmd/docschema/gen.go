package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/docschema/convert"
	"github.com/felixgeelhaar/docschema/introspect"
	"github.com/felixgeelhaar/docschema/protocol"
	"github.com/felixgeelhaar/docschema/schema"
)

type genOptions struct {
	funcs        []string
	format       string
	indent       bool
	trailingLine bool
}

func newGenCmd() *cobra.Command {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen FILE",
		Short: "Print the input schemas of the functions in a Go file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.funcs, "func", nil, "only these functions, in this order (repeatable)")
	cmd.Flags().StringVar(&opts.format, "format", "json", "output format: json, openai or jsonschema")
	cmd.Flags().BoolVar(&opts.indent, "indent", false, "indent the output")
	cmd.Flags().BoolVar(&opts.trailingLine, "trailing-line", false, "also read a description from a final doc line without newline")
	return cmd
}

func runGen(w io.Writer, path string, opts *genOptions) error {
	funcs, err := introspect.ParseFile(path)
	if err != nil {
		return err
	}

	if len(opts.funcs) > 0 {
		selected := make([]introspect.Func, 0, len(opts.funcs))
		for _, name := range opts.funcs {
			fn, err := introspect.Lookup(funcs, name)
			if err != nil {
				return err
			}
			selected = append(selected, fn)
		}
		funcs = selected
	}

	var schemaOpts []schema.Option
	if opts.trailingLine {
		schemaOpts = append(schemaOpts, schema.WithUnterminatedLastLine())
	}

	out, err := render(funcs, opts.format, schemaOpts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	if opts.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

type namedJSONSchema struct {
	Name   string `json:"name"`
	Schema any    `json:"schema"`
}

func render(funcs []introspect.Func, format string, opts []schema.Option) (any, error) {
	switch format {
	case "json":
		tools := make([]protocol.Tool, 0, len(funcs))
		for _, fn := range funcs {
			tools = append(tools, protocol.Tool{
				Name:        fn.Name,
				Description: fn.Summary(),
				InputSchema: fn.Schema(opts...),
			})
		}
		return tools, nil
	case "openai":
		tools := make([]any, 0, len(funcs))
		for _, fn := range funcs {
			tools = append(tools, convert.ToOpenAITool(fn.Name, fn.Summary(), fn.Schema(opts...)))
		}
		return tools, nil
	case "jsonschema":
		out := make([]namedJSONSchema, 0, len(funcs))
		for _, fn := range funcs {
			out = append(out, namedJSONSchema{Name: fn.Name, Schema: convert.ToJSONSchema(fn.Schema(opts...))})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
