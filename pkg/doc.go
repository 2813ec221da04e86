// Package pkg provides the core libraries for merview diagram rendering.
//
// # Overview
//
// Merview turns Mermaid-style diagram text into positioned geometry and
// rendered images. The pkg directory is organized into four main areas:
//
//  1. [diagram] + [parser] - The model and the text-to-model frontend
//  2. [layout] + [geometry] - Coordinate assignment and 2D primitives
//  3. [render] - Output backends (built-in SVG, Graphviz DOT)
//  4. [pipeline] - Orchestration (parse → layout → render)
//
// # Architecture
//
// The typical data flow through merview:
//
//	Diagram text
//	         ↓
//	    [parser] package (detect kind, build model)
//	         ↓
//	    [layout] package (assign positions and sizes)
//	         ↓
//	    [render] package (SVG/PNG/PDF/DOT/JSON output)
//
// # Quick Start
//
// Parse a diagram and render it to SVG:
//
//	import (
//	    "github.com/inklab/merview/pkg/layout"
//	    "github.com/inklab/merview/pkg/parser"
//	    "github.com/inklab/merview/pkg/render/svg"
//	)
//
//	// 1. Parse the source text
//	d := parser.Parse("graph TD\nA[Start] --> B[End]")
//
//	// 2. Compute layout
//	res := layout.Compute(d, layout.Options{})
//
//	// 3. Render to SVG
//	doc := svg.Render(d, res, svg.Options{})
//
// Or run the whole pipeline at once:
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(ctx, source, pipeline.Options{})
//
// # Main Packages
//
//   - [diagram]: model types, kind detection, JSON round-trip
//   - [parser]: per-kind line parsers (flowchart, sequence, class, state, pie, timeline)
//   - [geometry]: points, sizes, rects, curves and intersections
//   - [textmetrics]: font-independent label measurement
//   - [layout]: per-kind layout engines; [layout/route] edge routing
//   - [style]: themes (builtin and TOML)
//   - [render]: SVG and DOT backends plus PNG/PDF conversion
//   - [pipeline]: the parse → layout → render runner
//   - [errors]: structured errors with machine-readable codes
//   - [observability]: hooks for metrics and tracing backends
//   - [buildinfo]: ldflags-injected version information
//
// [diagram]: github.com/inklab/merview/pkg/diagram
// [parser]: github.com/inklab/merview/pkg/parser
// [geometry]: github.com/inklab/merview/pkg/geometry
// [textmetrics]: github.com/inklab/merview/pkg/textmetrics
// [layout]: github.com/inklab/merview/pkg/layout
// [layout/route]: github.com/inklab/merview/pkg/layout/route
// [style]: github.com/inklab/merview/pkg/style
// [render]: github.com/inklab/merview/pkg/render
// [pipeline]: github.com/inklab/merview/pkg/pipeline
// [errors]: github.com/inklab/merview/pkg/errors
// [observability]: github.com/inklab/merview/pkg/observability
// [buildinfo]: github.com/inklab/merview/pkg/buildinfo
package pkg
