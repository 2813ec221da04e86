// Package layout assigns coordinates to parsed diagrams.
//
// Compute is a pure function from (diagram, options) to a [Result] holding
// positions, sizes and kind-specific geometry. The parsed model is never
// mutated; everything positional lives in the Result, keyed by entity ID.
// Layout never fails: absent or empty payloads yield an empty result with
// the default frame, and any non-positive available size falls back to the
// default frame dimensions.
//
// Each supported kind has its own engine: layered topological placement
// for flowcharts, lifeline/slot placement for sequence diagrams, grid
// packing for class and state diagrams, angular partition for pies, and
// period columns for timelines.
package layout

import (
	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/geometry"
	"github.com/inklab/merview/pkg/textmetrics"
)

// Default frame dimensions, used when the caller provides no usable size.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Options configures a layout computation.
type Options struct {
	// Size is the target canvas. Non-positive dimensions are replaced by
	// the defaults.
	Size geometry.Size

	// Measurer sizes label text. Nil selects textmetrics.Default. The
	// flowchart engine intentionally ignores it and uses the built-in
	// character heuristic, so flowchart output does not depend on host
	// fonts.
	Measurer textmetrics.Measurer
}

func (o Options) normalized() Options {
	if o.Size.Width <= 0 {
		o.Size.Width = DefaultWidth
	}
	if o.Size.Height <= 0 {
		o.Size.Height = DefaultHeight
	}
	if o.Measurer == nil {
		o.Measurer = textmetrics.Default
	}
	return o
}

// Result holds the positions computed for one diagram. Frame is the total
// extent actually used (at least the requested size in width; height grows
// as needed). Boxes maps entity IDs - flowchart node IDs, class names,
// state IDs - to their placed rectangles. Kind-specific geometry lives in
// the corresponding payload pointer.
type Result struct {
	Kind  diagram.Kind             `json:"kind"`
	Frame geometry.Size            `json:"frame"`
	Boxes map[string]geometry.Rect `json:"boxes,omitempty"`

	// Levels records the layer assigned to each flowchart node.
	Levels map[string]int `json:"levels,omitempty"`

	Sequence *SequenceResult `json:"sequence,omitempty"`
	Pie      *PieResult      `json:"pie,omitempty"`
	Timeline *TimelineResult `json:"timeline,omitempty"`
}

// Box returns the placed rectangle for an entity ID and whether one exists.
func (r *Result) Box(id string) (geometry.Rect, bool) {
	b, ok := r.Boxes[id]
	return b, ok
}

// Compute runs the layout engine matching the diagram kind. Stub kinds and
// Unknown produce an empty result with the (defaulted) requested frame so
// renderers can still draw a fallback panel.
func Compute(d diagram.Diagram, opts Options) Result {
	opts = opts.normalized()
	res := Result{Kind: d.Kind, Frame: opts.Size}

	switch d.Kind {
	case diagram.KindFlowchart:
		layoutFlowchart(d, opts, &res)
	case diagram.KindSequence:
		layoutSequence(d.Sequence, opts, &res)
	case diagram.KindClass:
		layoutClassGrid(d.Class, opts, &res)
	case diagram.KindState:
		layoutStateGrid(d.State, opts, &res)
	case diagram.KindPie:
		layoutPie(d.Pie, opts, &res)
	case diagram.KindTimeline:
		layoutTimeline(d.Timeline, opts, &res)
	case diagram.KindGantt, diagram.KindGitGraph, diagram.KindER,
		diagram.KindUserJourney, diagram.KindUnknown:
		// Raw-text fallback: nothing to position.
	}

	return res
}
