package layout

import (
	"sort"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/geometry"
	"github.com/inklab/merview/pkg/style"
)

// Pie layout constants.
const (
	pieStartAngle = -90.0 // slices start at 12 o'clock
	pieLabelSpace = 70.0  // margin reserved around the disc for labels
	pieMinRadius  = 50.0
)

// PieSlice is one placed slice. Angles are degrees, clockwise from
// pieStartAngle; Fraction is the slice's share of the total.
type PieSlice struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Fraction   float64 `json:"fraction"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Color      string  `json:"color"`
	TextColor  string  `json:"text_color"`
}

// PieResult is the geometry for a pie chart.
type PieResult struct {
	Title  string         `json:"title,omitempty"`
	Center geometry.Point `json:"center"`
	Radius float64        `json:"radius"`
	Slices []PieSlice     `json:"slices,omitempty"`
}

// layoutPie partitions the circle by value share. Slices are ordered
// descending by value with the label as tiebreaker, so both angles and
// palette assignment are deterministic for a given data set.
func layoutPie(data *diagram.PieData, opts Options, res *Result) {
	if data == nil {
		return
	}

	radius := min(opts.Size.Width, opts.Size.Height)/2 - pieLabelSpace
	if radius < pieMinRadius {
		radius = pieMinRadius
	}

	pr := &PieResult{
		Title:  data.Title,
		Center: geometry.Point{X: opts.Size.Width / 2, Y: opts.Size.Height / 2},
		Radius: radius,
	}
	res.Pie = pr

	total := data.Total()
	if total <= 0 {
		return
	}

	type entry struct {
		label string
		value float64
	}
	entries := make([]entry, 0, len(data.Values))
	for label, v := range data.Values {
		entries = append(entries, entry{label, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].label < entries[j].label
	})

	theme := style.Default()
	angle := pieStartAngle
	for i, e := range entries {
		frac := e.value / total
		next := angle + frac*360
		pr.Slices = append(pr.Slices, PieSlice{
			Label:      e.label,
			Value:      e.value,
			Fraction:   frac,
			StartAngle: angle,
			EndAngle:   next,
			Color:      theme.SliceColor(i),
			TextColor:  theme.SliceTextColor(i),
		})
		angle = next
	}
}
