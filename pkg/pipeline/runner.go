package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/errors"
	"github.com/inklab/merview/pkg/geometry"
	"github.com/inklab/merview/pkg/layout"
	"github.com/inklab/merview/pkg/observability"
	"github.com/inklab/merview/pkg/parser"
	"github.com/inklab/merview/pkg/render"
	"github.com/inklab/merview/pkg/render/dot"
	"github.com/inklab/merview/pkg/render/svg"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete parse → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, source string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if len(source) > MaxSourceBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"source too large: %d bytes (limit %d)", len(source), MaxSourceBytes)
	}

	hooks := observability.Pipeline()
	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Parse
	parseStart := time.Now()
	hooks.OnParseStart(ctx, len(source))
	d := parser.Parse(source)
	result.Diagram = d
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Kind = d.Kind
	result.Stats.NodeCount = EntityCount(d)
	result.Stats.EdgeCount = len(d.Edges)
	hooks.OnParseComplete(ctx, string(d.Kind), result.Stats.NodeCount, result.Stats.ParseTime)

	r.Logger.Info("parsed diagram",
		"kind", d.Kind,
		"entities", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, string(d.Kind), result.Stats.NodeCount)
	lay, err := r.ComputeLayout(d, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = lay
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, string(d.Kind), result.Stats.LayoutTime)

	r.Logger.Info("computed layout",
		"boxes", len(result.Layout.Boxes),
		"frame_width", result.Layout.Frame.Width,
		"frame_height", result.Layout.Frame.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := r.Render(d, result.Layout, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayout runs the layout stage alone.
func (r *Runner) ComputeLayout(d diagram.Diagram, opts Options) (layout.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Result{}, err
	}
	return layout.Compute(d, layout.Options{
		Size: geometry.Size{Width: opts.Width, Height: opts.Height},
	}), nil
}

// Render runs the render stage alone, producing one artifact per
// requested format.
func (r *Runner) Render(d diagram.Diagram, res layout.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	theme, err := opts.ResolveTheme()
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svgDoc []byte

	renderSVG := func() []byte {
		if svgDoc == nil {
			svgDoc = svg.Render(d, res, svg.Options{Theme: theme})
		}
		return svgDoc
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = renderSVG()
		case FormatPNG:
			data, err := render.ToPNG(renderSVG(), opts.Scale)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render PNG")
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := render.ToPDF(renderSVG())
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render PDF")
			}
			artifacts[format] = data
		case FormatDOT:
			text, err := dot.ToDOT(d)
			if err != nil {
				return nil, err
			}
			artifacts[format] = []byte(text)
		case FormatJSON:
			data, err := marshalDocument(d, res)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal document")
			}
			artifacts[format] = data
		}
	}

	return artifacts, nil
}

// Document is the JSON artifact: the parsed model together with its
// computed geometry.
type Document struct {
	Diagram diagram.Diagram `json:"diagram"`
	Layout  layout.Result   `json:"layout"`
}

func marshalDocument(d diagram.Diagram, res layout.Result) ([]byte, error) {
	return json.MarshalIndent(Document{Diagram: d, Layout: res}, "", "  ")
}
