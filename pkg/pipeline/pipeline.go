// Package pipeline provides the core diagram pipeline for merview.
//
// This package implements the complete parse → layout → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: detect the diagram kind and build the in-memory model
//  2. Layout: compute positions and sizes for every entity
//  3. Render: generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Parse and layout never fail by contract; errors can only come from the
// render stage and from option validation.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg"},
//	    Width:   1024,
//	}
//	result, err := runner.Execute(ctx, source, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/errors"
	"github.com/inklab/merview/pkg/layout"
	"github.com/inklab/merview/pkg/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = layout.DefaultWidth

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = layout.DefaultHeight

	// DefaultTheme is the default theme name.
	DefaultTheme = "default"

	// MaxSourceBytes bounds the accepted source text. Inputs past this are
	// rejected before parsing; the limit matches the API request cap.
	MaxSourceBytes = 1 << 20
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the diagram pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Theme     string   `json:"theme,omitempty"`      // builtin theme name
	ThemeFile string   `json:"theme_file,omitempty"` // TOML theme path, overrides Theme
	Scale     float64  `json:"scale,omitempty"`      // PNG raster scale

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "width and height must be non-negative")
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = 2.0
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %q (must be one of: svg, png, pdf, dot, json)", f)
		}
	}

	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.ThemeFile == "" {
		if _, ok := style.Builtin(o.Theme); !ok {
			return errors.New(errors.ErrCodeInvalidTheme, "unknown theme: %q", o.Theme)
		}
	}

	o.validated = true
	return nil
}

// ResolveTheme loads the effective theme: the TOML file when set,
// otherwise the named builtin.
func (o *Options) ResolveTheme() (style.Theme, error) {
	if o.ThemeFile != "" {
		t, err := style.LoadFile(o.ThemeFile)
		if err != nil {
			return style.Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "load theme file")
		}
		return t, nil
	}
	t, ok := style.Builtin(o.Theme)
	if !ok {
		return style.Theme{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme: %q", o.Theme)
	}
	return t, nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the parsed model.
	Diagram diagram.Diagram

	// Layout contains the computed geometry.
	Layout layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Kind       diagram.Kind
	NodeCount  int
	EdgeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// EntityCount is the stat reported per kind: nodes for flowcharts,
// participants, classes, states, slices or events otherwise.
func EntityCount(d diagram.Diagram) int {
	switch d.Kind {
	case diagram.KindSequence:
		if d.Sequence != nil {
			return len(d.Sequence.Participants)
		}
	case diagram.KindClass:
		if d.Class != nil {
			return len(d.Class.Classes)
		}
	case diagram.KindState:
		if d.State != nil {
			return len(d.State.States)
		}
	case diagram.KindPie:
		if d.Pie != nil {
			return len(d.Pie.Values)
		}
	case diagram.KindTimeline:
		if d.Timeline != nil {
			return len(d.Timeline.Events)
		}
	}
	return len(d.Nodes)
}
