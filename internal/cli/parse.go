package cli

import (
	"github.com/spf13/cobra"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/parser"
	"github.com/inklab/merview/pkg/pipeline"
)

// newParseCmd creates the parse command, which parses diagram text and
// prints the JSON model without computing a layout.
func newParseCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse diagram text and print the JSON model",
		Long:  `Parse reads diagram text (from a file or stdin), builds the in-memory model, and prints it as JSON. Malformed lines are skipped; parse never fails on diagram content.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			source, err := readSource(path)
			if err != nil {
				return err
			}

			p := newProgress(logger)
			d := parser.Parse(source)
			p.done("Parsed diagram")

			data, err := diagram.Marshal(d)
			if err != nil {
				return err
			}
			if err := writeOutput(output, append(data, '\n')); err != nil {
				return err
			}

			if output != "" && output != "-" {
				printSuccess("Wrote model")
				printFile(output)
				printStats(string(d.Kind), pipeline.EntityCount(d), len(d.Edges))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
