package layout

import (
	"sort"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/geometry"
	"github.com/inklab/merview/pkg/textmetrics"
)

// Flowchart spacing constants.
const (
	flowMarginY    = 40.0 // space above the first level
	flowMinGutterX = 40.0 // minimum horizontal gap between siblings
	flowGutterY    = 60.0 // vertical gap between levels
	flowPadX       = 12.0 // horizontal label padding inside a node
)

// layoutFlowchart performs layered topological placement: nodes are
// assigned a level by longest path from the root set, ordered within each
// level by connectivity weight, and spread across the frame width level by
// level.
func layoutFlowchart(d diagram.Diagram, opts Options, res *Result) {
	if len(d.Nodes) == 0 {
		return
	}

	levels := computeLevels(d)
	res.Levels = levels

	// Group nodes per level, keeping parse order before the weight sort so
	// the final order is reproducible.
	byLevel := make(map[int][]diagram.Node)
	maxLevel := 0
	for _, n := range d.Nodes {
		l := levels[n.ID]
		byLevel[l] = append(byLevel[l], n)
		if l > maxLevel {
			maxLevel = l
		}
	}

	y := flowMarginY
	for l := 0; l <= maxLevel; l++ {
		row := byLevel[l]
		if len(row) == 0 {
			continue
		}
		orderLevel(row, d.Edges, levels)

		sizes := make([]geometry.Size, len(row))
		total := 0.0
		maxH := 0.0
		for i, n := range row {
			sizes[i] = nodeSize(n)
			total += sizes[i].Width
			if sizes[i].Height > maxH {
				maxH = sizes[i].Height
			}
		}

		// Gap is the larger of the minimum gutter and an even distribution
		// of the leftover width; the row is then centered.
		gap := flowMinGutterX
		if len(row) > 1 {
			if spread := (opts.Size.Width - total) / float64(len(row)+1); spread > gap {
				gap = spread
			}
		}
		rowWidth := total + gap*float64(len(row)-1)
		x := (opts.Size.Width - rowWidth) / 2
		if x < flowMinGutterX {
			x = flowMinGutterX
		}

		for i, n := range row {
			res.setBox(n.ID, geometry.Rect{
				Center: geometry.Point{X: x + sizes[i].Width/2, Y: y + maxH/2},
				Size:   sizes[i],
			})
			x += sizes[i].Width + gap
		}

		y += maxH + flowGutterY
	}

	res.Frame.Width = opts.Size.Width
	if y > opts.Size.Height {
		res.Frame.Height = y
	}
}

// computeLevels assigns each node the maximum, over all roots, of the
// longest simple path length from that root. Cycles are cut per path by a
// visited set, so the walk always terminates; nodes unreachable from every
// root (including the all-cycle case with no roots at all) stay at level 0.
func computeLevels(d diagram.Diagram) map[string]int {
	out := make(map[string][]string, len(d.Nodes))
	targets := make(map[string]bool, len(d.Nodes))
	for _, e := range d.Edges {
		out[e.From] = append(out[e.From], e.To)
		targets[e.To] = true
	}

	levels := make(map[string]int, len(d.Nodes))
	for _, n := range d.Nodes {
		levels[n.ID] = 0
	}

	var walk func(id string, depth int, onPath map[string]bool)
	walk = func(id string, depth int, onPath map[string]bool) {
		if depth > levels[id] {
			levels[id] = depth
		}
		onPath[id] = true
		for _, next := range out[id] {
			if onPath[next] {
				continue // cycle: this path stops here
			}
			walk(next, depth+1, onPath)
		}
		delete(onPath, id)
	}

	for _, n := range d.Nodes {
		if !targets[n.ID] {
			walk(n.ID, 0, make(map[string]bool))
		}
	}
	return levels
}

// orderLevel sorts the nodes of one level by descending connectivity
// weight: incoming edges from shallower levels weigh 1/(distance+1),
// outgoing edges add 0.5 each. Node ID breaks ties so the order is stable
// across runs.
func orderLevel(row []diagram.Node, edges []diagram.Edge, levels map[string]int) {
	weight := make(map[string]float64, len(row))
	for _, n := range row {
		w := 0.0
		for _, e := range edges {
			if e.To == n.ID {
				dist := levels[n.ID] - levels[e.From]
				if dist < 0 {
					dist = -dist
				}
				w += 1.0 / float64(dist+1)
			}
			if e.From == n.ID {
				w += 0.5
			}
		}
		weight[n.ID] = w
	}

	sort.SliceStable(row, func(i, j int) bool {
		wi, wj := weight[row[i].ID], weight[row[j].ID]
		if wi != wj {
			return wi > wj
		}
		return row[i].ID < row[j].ID
	})
}

// nodeSize estimates a node's rendered size from its label length and
// shape. Diamonds and circles need larger minimums than boxes because the
// label must fit inside the inscribed area.
func nodeSize(n diagram.Node) geometry.Size {
	fontSize := n.Style.FontSize
	if fontSize <= 0 {
		fontSize = diagram.DefaultNodeStyle().FontSize
	}
	labelW := textmetrics.Width(nil, n.Label, fontSize)
	w := labelW + 2*flowPadX
	var minW, minH float64

	switch n.Shape {
	case diagram.ShapeDiamond:
		minW, minH = 100, 70
		w = labelW*1.5 + 2*flowPadX
	case diagram.ShapeCircle:
		minW, minH = 80, 80
		w = labelW*1.3 + 2*flowPadX
	case diagram.ShapeHexagon:
		minW, minH = 90, 50
		w = labelW*1.2 + 2*flowPadX
	default:
		minW, minH = 60, 40
	}

	if w < minW {
		w = minW
	}
	return geometry.Size{Width: w, Height: minH}
}

// setBox lazily allocates the box map; empty diagrams keep it nil.
func (r *Result) setBox(id string, box geometry.Rect) {
	if r.Boxes == nil {
		r.Boxes = make(map[string]geometry.Rect)
	}
	r.Boxes[id] = box
}
