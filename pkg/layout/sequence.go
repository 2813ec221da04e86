package layout

import (
	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/geometry"
)

// Sequence spacing constants.
const (
	seqTopMargin       = 30.0  // space above participant heads
	seqHeadHeight      = 40.0  // participant head box height
	seqHeadMinWidth    = 100.0 // participant head box minimum width
	seqHeadPadX        = 16.0  // horizontal padding inside a head box
	seqSpacing         = 180.0 // configured lifeline spacing ceiling
	seqSlotHeight      = 50.0  // vertical distance per message slot
	seqActivationW     = 10.0  // activation bar width
	seqActivationSlots = 2     // message slots an activation bar spans
	seqNoteOffset      = 20.0  // gap between a lifeline and a side note
	seqNotePadX        = 10.0  // horizontal padding inside a note
	seqNoteHeight      = 30.0
	seqLoopPad         = 25.0 // loop box padding around its lifelines
)

// MessageLine is one placed message arrow.
type MessageLine struct {
	FromX float64             `json:"from_x"`
	ToX   float64             `json:"to_x"`
	Y     float64             `json:"y"`
	Text  string              `json:"text"`
	Type  diagram.MessageType `json:"type"`
}

// NoteBox is a placed note.
type NoteBox struct {
	Box  geometry.Rect    `json:"box"`
	Text string           `json:"text"`
	Side diagram.NoteSide `json:"side"`
}

// ActivationBar is a placed activation rectangle on a lifeline.
type ActivationBar struct {
	Participant string        `json:"participant"`
	Box         geometry.Rect `json:"box"`
}

// LoopBox is a placed loop frame.
type LoopBox struct {
	Box  geometry.Rect `json:"box"`
	Text string        `json:"text"`
}

// SequenceResult is the geometry for a sequence diagram: head boxes and
// lifeline X per participant, one line per message in slot order, plus
// placed notes, activation bars and loop frames. Lifelines run from
// LifelineTop to LifelineBottom.
type SequenceResult struct {
	Lifelines      map[string]float64       `json:"lifelines"`
	Heads          map[string]geometry.Rect `json:"heads"`
	Messages       []MessageLine            `json:"messages,omitempty"`
	Notes          []NoteBox                `json:"notes,omitempty"`
	Activations    []ActivationBar          `json:"activations,omitempty"`
	Loops          []LoopBox                `json:"loops,omitempty"`
	LifelineTop    float64                  `json:"lifeline_top"`
	LifelineBottom float64                  `json:"lifeline_bottom"`
}

// layoutSequence places participants on a horizontal axis and messages in
// fixed vertical slots by parse order. Layout is purely order-based; there
// is no time axis beyond message ordering.
func layoutSequence(data *diagram.SequenceData, opts Options, res *Result) {
	if data == nil || len(data.Participants) == 0 {
		return
	}

	sr := &SequenceResult{
		Lifelines: make(map[string]float64, len(data.Participants)),
		Heads:     make(map[string]geometry.Rect, len(data.Participants)),
	}
	res.Sequence = sr

	// Even spacing, capped by the configured ceiling, centered as a group.
	spacing := seqSpacing
	if n := len(data.Participants); n > 1 {
		if avail := opts.Size.Width / float64(n-1); avail < spacing {
			spacing = avail
		}
	}
	groupWidth := spacing * float64(len(data.Participants)-1)
	startX := (opts.Size.Width - groupWidth) / 2

	headCenterY := seqTopMargin + seqHeadHeight/2
	for i, p := range data.Participants {
		x := startX + spacing*float64(i)
		w := headWidth(p, opts)
		sr.Lifelines[p] = x
		sr.Heads[p] = geometry.Rect{
			Center: geometry.Point{X: x, Y: headCenterY},
			Size:   geometry.Size{Width: w, Height: seqHeadHeight},
		}
	}

	sr.LifelineTop = seqTopMargin + seqHeadHeight
	slotY := func(i int) float64 {
		return sr.LifelineTop + seqSlotHeight*float64(i+1)
	}

	for i, m := range data.Messages {
		sr.Messages = append(sr.Messages, MessageLine{
			FromX: sr.Lifelines[m.From],
			ToX:   sr.Lifelines[m.To],
			Y:     slotY(i),
			Text:  m.Text,
			Type:  m.Type,
		})
	}

	for i, n := range data.Notes {
		sr.Notes = append(sr.Notes, placeNote(n, slotY(i)-seqSlotHeight/2, sr, opts))
	}

	for i, a := range data.Activations {
		if !a.Activate {
			continue
		}
		top := slotY(i) - seqSlotHeight/2
		height := seqSlotHeight * float64(seqActivationSlots)
		sr.Activations = append(sr.Activations, ActivationBar{
			Participant: a.Participant,
			Box: geometry.Rect{
				Center: geometry.Point{X: sr.Lifelines[a.Participant], Y: top + height/2},
				Size:   geometry.Size{Width: seqActivationW, Height: height},
			},
		})
	}

	for _, l := range data.Loops {
		if box, ok := placeLoop(l, data.Messages, slotY, sr); ok {
			sr.Loops = append(sr.Loops, box)
		}
	}

	sr.LifelineBottom = slotY(len(data.Messages)) + seqSlotHeight/2

	res.Frame.Width = opts.Size.Width
	if sr.LifelineBottom+seqTopMargin > opts.Size.Height {
		res.Frame.Height = sr.LifelineBottom + seqTopMargin
	}
}

func headWidth(name string, opts Options) float64 {
	w, _ := opts.Measurer.Measure(name, diagram.DefaultNodeStyle().FontSize)
	if w += 2 * seqHeadPadX; w < seqHeadMinWidth {
		w = seqHeadMinWidth
	}
	return w
}

// placeNote positions a note next to its participant, or spanning the
// referenced lifelines for "over" notes.
func placeNote(n diagram.Note, y float64, sr *SequenceResult, opts Options) NoteBox {
	textW, _ := opts.Measurer.Measure(n.Text, diagram.DefaultEdgeStyle().FontSize)
	w := textW + 2*seqNotePadX

	var centerX float64
	switch n.Side {
	case diagram.NoteLeftOf:
		centerX = sr.Lifelines[n.Participants[0]] - seqNoteOffset - w/2
	case diagram.NoteRightOf:
		centerX = sr.Lifelines[n.Participants[0]] + seqNoteOffset + w/2
	default: // over
		lo, hi := sr.Lifelines[n.Participants[0]], sr.Lifelines[n.Participants[0]]
		for _, p := range n.Participants[1:] {
			x := sr.Lifelines[p]
			if x < lo {
				lo = x
			}
			if x > hi {
				hi = x
			}
		}
		centerX = (lo + hi) / 2
		if span := hi - lo + 2*seqNoteOffset; span > w {
			w = span
		}
	}

	return NoteBox{
		Box: geometry.Rect{
			Center: geometry.Point{X: centerX, Y: y},
			Size:   geometry.Size{Width: w, Height: seqNoteHeight},
		},
		Text: n.Text,
		Side: n.Side,
	}
}

// placeLoop frames the slots of the loop's captured messages. A loop that
// captured nothing has no extent and is not drawn.
func placeLoop(l diagram.Loop, all []diagram.Message, slotY func(int) float64, sr *SequenceResult) (LoopBox, bool) {
	if len(l.Messages) == 0 {
		return LoopBox{}, false
	}

	first := messageIndex(all, l.Messages[0], 0)
	last := messageIndex(all, l.Messages[len(l.Messages)-1], first)
	if first < 0 || last < 0 {
		return LoopBox{}, false
	}

	lo, hi := sr.Lifelines[l.Messages[0].From], sr.Lifelines[l.Messages[0].From]
	for _, m := range l.Messages {
		for _, x := range []float64{sr.Lifelines[m.From], sr.Lifelines[m.To]} {
			if x < lo {
				lo = x
			}
			if x > hi {
				hi = x
			}
		}
	}

	top := slotY(first) - seqSlotHeight/2
	bottom := slotY(last) + seqSlotHeight/2
	return LoopBox{
		Box: geometry.Rect{
			Center: geometry.Point{X: (lo + hi) / 2, Y: (top + bottom) / 2},
			Size: geometry.Size{
				Width:  hi - lo + 2*seqLoopPad,
				Height: bottom - top,
			},
		},
		Text: l.Text,
	}, true
}

// messageIndex finds m in the flat message list at or after start.
func messageIndex(all []diagram.Message, m diagram.Message, start int) int {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(all); i++ {
		if all[i] == m {
			return i
		}
	}
	return -1
}
