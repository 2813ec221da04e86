// Package render groups the output backends for positioned diagrams.
//
// # Overview
//
// Two backends exist:
//
//   - [svg]: the built-in renderer. It draws the layout package's geometry
//     verbatim, so output is deterministic and needs no external engine.
//   - [dot]: Graphviz export for graph-shaped kinds (flowchart, state,
//     class). Graphviz computes its own positions.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They work with the output
// of either backend.
//
//	doc := svg.Render(d, res, svg.Options{})
//	pdf, err := render.ToPDF(doc)
//	png, err := render.ToPNG(doc, 2.0)  // 2x scale
//
// [svg]: github.com/inklab/merview/pkg/render/svg
// [dot]: github.com/inklab/merview/pkg/render/dot
package render
