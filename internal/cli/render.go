package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inklab/merview/pkg/observability"
	"github.com/inklab/merview/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file path (or base path for multiple formats)
	formats   []string // output formats: "svg", "png", "pdf", "dot", "json"
	width     float64  // frame width in pixels
	height    float64  // frame height in pixels
	theme     string   // builtin theme name
	themeFile string   // TOML theme file, overrides --theme
	scale     float64  // PNG raster scale
}

// newRenderCmd creates the render command for generating diagram images.
//
// Default settings:
//   - format: svg
//   - width: 800px, height: 600px
//   - theme: default
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
		theme:  pipeline.DefaultTheme,
		scale:  2.0,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render diagram text to SVG, PNG, PDF, DOT, or JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runRender(cmd, path, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().StringVar(&opts.theme, "theme", opts.theme, "builtin theme: default, dark")
	cmd.Flags().StringVar(&opts.themeFile, "theme-file", "", "TOML theme file (overrides --theme)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG raster scale")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		formats = append(formats, strings.TrimSpace(p))
	}
	return formats
}

func runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	source, err := readSource(path)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(logger)
	popts := pipeline.Options{
		Width:     opts.width,
		Height:    opts.height,
		Formats:   opts.formats,
		Theme:     opts.theme,
		ThemeFile: opts.themeFile,
		Scale:     opts.scale,
		Logger:    logger,
	}

	spin := newSpinner(ctx, "reading diagram...")
	observability.SetPipelineHooks(spinnerHooks{spin: spin})
	defer observability.Reset()
	spin.Start()
	result, err := runner.Execute(ctx, source, popts)
	spin.Stop()
	if err != nil {
		return err
	}

	// Single format to stdout when no output path is given.
	if opts.output == "" && len(opts.formats) == 1 {
		return writeOutput("", result.Artifacts[opts.formats[0]])
	}

	written := make([]string, 0, len(opts.formats))
	for _, format := range opts.formats {
		out := outputPath(opts.output, path, format, len(opts.formats) > 1)
		if err := writeOutput(out, result.Artifacts[format]); err != nil {
			return err
		}
		written = append(written, out)
	}

	printSuccess("Rendered %s diagram", result.Diagram.Kind)
	for _, out := range written {
		printFile(out)
	}
	printStats(string(result.Stats.Kind), result.Stats.NodeCount, result.Stats.EdgeCount)
	return nil
}

// outputPath resolves the destination for one format. With multiple
// formats the base path (or input name) gets the format as extension;
// with a single format an explicit --output wins as-is.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		if base == "" || base == "-" {
			base = "diagram"
		}
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return fmt.Sprintf("%s.%s", base, format)
}
