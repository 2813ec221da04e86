package layout

import (
	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/geometry"
)

// Timeline layout constants.
const (
	tlMargin      = 40.0
	tlTitleSpace  = 50.0
	tlHeaderH     = 36.0
	tlEventH      = 32.0
	tlEventGap    = 10.0
	tlColGap      = 30.0
	tlColMinWidth = 140.0
	tlPadX        = 12.0
	tlFontSize    = 13.0
)

// EventBox is one placed timeline event.
type EventBox struct {
	Box  geometry.Rect `json:"box"`
	Text string        `json:"text"`
}

// TimelineColumn is one period column: a header box on the axis with its
// events stacked beneath, connected by a vertical rule.
type TimelineColumn struct {
	Period string        `json:"period"`
	Header geometry.Rect `json:"header"`
	Events []EventBox    `json:"events,omitempty"`
}

// TimelineResult is the geometry for a timeline: period columns laid out
// left to right along a horizontal axis.
type TimelineResult struct {
	Title   string           `json:"title,omitempty"`
	AxisY   float64          `json:"axis_y"`
	Columns []TimelineColumn `json:"columns,omitempty"`
}

// layoutTimeline groups events by period (first-seen order) and lays the
// periods out as columns, each stacking its events vertically.
func layoutTimeline(data *diagram.TimelineData, opts Options, res *Result) {
	if data == nil || len(data.Events) == 0 {
		return
	}

	tr := &TimelineResult{Title: data.Title}
	res.Timeline = tr

	top := tlMargin
	if data.Title != "" {
		top += tlTitleSpace
	}
	tr.AxisY = top + tlHeaderH/2

	x := tlMargin
	maxBottom := tr.AxisY
	for _, period := range data.Periods() {
		events := data.EventsFor(period)

		colW := tlColMinWidth
		if w, _ := opts.Measurer.Measure(period, tlFontSize); w+2*tlPadX > colW {
			colW = w + 2*tlPadX
		}
		for _, e := range events {
			if w, _ := opts.Measurer.Measure(e.Text, tlFontSize); w+2*tlPadX > colW {
				colW = w + 2*tlPadX
			}
		}

		col := TimelineColumn{
			Period: period,
			Header: geometry.Rect{
				Center: geometry.Point{X: x + colW/2, Y: tr.AxisY},
				Size:   geometry.Size{Width: colW, Height: tlHeaderH},
			},
		}

		y := tr.AxisY + tlHeaderH/2 + tlEventGap
		for _, e := range events {
			col.Events = append(col.Events, EventBox{
				Box: geometry.Rect{
					Center: geometry.Point{X: x + colW/2, Y: y + tlEventH/2},
					Size:   geometry.Size{Width: colW, Height: tlEventH},
				},
				Text: e.Text,
			})
			y += tlEventH + tlEventGap
		}
		if y > maxBottom {
			maxBottom = y
		}

		tr.Columns = append(tr.Columns, col)
		x += colW + tlColGap
	}

	res.Frame.Width = opts.Size.Width
	if w := x - tlColGap + tlMargin; w > res.Frame.Width {
		res.Frame.Width = w
	}
	if h := maxBottom + tlMargin; h > opts.Size.Height {
		res.Frame.Height = h
	}
}
