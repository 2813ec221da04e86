package parser

import (
	"regexp"
	"strings"

	"github.com/inklab/merview/pkg/diagram"
)

// arrowOp maps a sequence arrow operator to its message type. The table is
// scanned in order and must stay longest/most-specific first: `-->>` would
// otherwise half-match as `-->`, and `--x` contains `-x`.
type arrowOp struct {
	token string
	typ   diagram.MessageType
}

var arrowOps = []arrowOp{
	{"-->>", diagram.MessageAsyncResponse},
	{"--x", diagram.MessageLost},
	{"-->", diagram.MessageSyncResponse},
	{"->>", diagram.MessageAsyncRequest},
	{"-x", diagram.MessageLost},
	{"->", diagram.MessageSyncRequest},
}

var noteRe = regexp.MustCompile(`(?i)^note\s+(left of|right of|over)\s+([^:]+?)\s*:\s*(.*)$`)

// Block openers that only contribute nesting; their body lines are parsed
// as ordinary content.
var sequenceOpeners = map[string]bool{
	"box": true,
	"alt": true,
	"opt": true,
	"par": true,
}

// openLoop tracks a loop whose `end` has not been seen yet.
type openLoop struct {
	loop diagram.Loop
}

// sequenceState is the fold state threaded through the line scan: the
// payload under construction plus the stack of unclosed blocks. A stack
// entry is nil for generic blocks (box/alt/opt/par) and non-nil for loops.
type sequenceState struct {
	data  *diagram.SequenceData
	stack []*openLoop
}

// parseSequence scans a sequence diagram source. Line classification
// follows a fixed order: declarations and comments, block openers and end,
// participant/actor, note, activate/deactivate, loop, and finally the
// arrow-operator table. Anything unmatched is skipped.
func parseSequence(text string) *diagram.SequenceData {
	st := &sequenceState{data: &diagram.SequenceData{}}

	for i, line := range lines(text) {
		if line == "" || isComment(line) {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "sequencediagram"):
			// Declaration line.
		case isOpener(lower):
			st.stack = append(st.stack, nil)
		case lower == "else" || strings.HasPrefix(lower, "else ") ||
			lower == "and" || strings.HasPrefix(lower, "and "):
			// Branch dividers inside alt/par blocks; no nesting change.
		case lower == "end":
			st.closeBlock(i)
		case strings.HasPrefix(lower, "participant ") || strings.HasPrefix(lower, "actor "):
			st.addParticipantLine(line)
		case strings.HasPrefix(lower, "note "):
			st.addNote(line)
		case strings.HasPrefix(lower, "activate "):
			st.addActivation(strings.TrimSpace(line[len("activate "):]), true)
		case strings.HasPrefix(lower, "deactivate "):
			st.addActivation(strings.TrimSpace(line[len("deactivate "):]), false)
		case lower == "loop" || strings.HasPrefix(lower, "loop "):
			title := strings.TrimSpace(line[len("loop"):])
			st.stack = append(st.stack, &openLoop{loop: diagram.Loop{Text: title, StartIndex: i}})
		default:
			st.addMessage(line)
		}
	}

	// Unterminated blocks (and their loops) are dropped silently.
	return st.data
}

func isOpener(lower string) bool {
	for op := range sequenceOpeners {
		if lower == op || strings.HasPrefix(lower, op+" ") {
			return true
		}
	}
	return false
}

// closeBlock pops the innermost open block. Only loops produce output: the
// matching end line fixes their EndIndex and moves them to the loop list.
func (st *sequenceState) closeBlock(lineIndex int) {
	if len(st.stack) == 0 {
		return
	}
	top := st.stack[len(st.stack)-1]
	st.stack = st.stack[:len(st.stack)-1]
	if top != nil {
		top.loop.EndIndex = lineIndex
		st.data.Loops = append(st.data.Loops, top.loop)
	}
}

// addParticipantLine handles `participant X` and `participant X as Y`.
// The alias display text is discarded; X stays the canonical ID that
// messages reference.
func (st *sequenceState) addParticipantLine(line string) {
	rest := strings.TrimSpace(line[strings.Index(line, " ")+1:])
	if idx := strings.Index(strings.ToLower(rest), " as "); idx >= 0 {
		rest = strings.TrimSpace(rest[:idx])
	}
	st.register(rest)
}

// register adds a participant if it is not already known, preserving
// first-use order.
func (st *sequenceState) register(name string) {
	name = strings.TrimSpace(name)
	if name == "" || st.data.HasParticipant(name) {
		return
	}
	st.data.Participants = append(st.data.Participants, name)
}

func (st *sequenceState) addNote(line string) {
	m := noteRe.FindStringSubmatch(line)
	if m == nil {
		return
	}

	var side diagram.NoteSide
	switch strings.ToLower(m[1]) {
	case "left of":
		side = diagram.NoteLeftOf
	case "right of":
		side = diagram.NoteRightOf
	default:
		side = diagram.NoteOver
	}

	var participants []string
	for _, p := range strings.Split(m[2], ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		st.register(p)
		participants = append(participants, p)
	}
	if len(participants) == 0 {
		return
	}

	st.data.Notes = append(st.data.Notes, diagram.Note{
		Text:         strings.TrimSpace(m[3]),
		Side:         side,
		Participants: participants,
	})
}

func (st *sequenceState) addActivation(participant string, activate bool) {
	if participant == "" {
		return
	}
	st.register(participant)
	st.data.Activations = append(st.data.Activations, diagram.Activation{
		Participant: participant,
		Activate:    activate,
	})
}

// addMessage tries the arrow-operator table against the line. The matched
// form is `From<op>To: text`, the `: text` part optional. Messages inside
// an open loop are also captured by the innermost loop.
func (st *sequenceState) addMessage(line string) {
	for _, op := range arrowOps {
		idx := strings.Index(line, op.token)
		if idx < 0 {
			continue
		}

		from := strings.TrimSpace(line[:idx])
		rest := strings.TrimSpace(line[idx+len(op.token):])

		to := rest
		text := ""
		if colon := strings.Index(rest, ":"); colon >= 0 {
			to = strings.TrimSpace(rest[:colon])
			text = strings.TrimSpace(rest[colon+1:])
		}
		if from == "" || to == "" {
			return
		}

		st.register(from)
		st.register(to)

		msg := diagram.Message{From: from, To: to, Text: text, Type: op.typ}
		st.data.Messages = append(st.data.Messages, msg)
		if l := st.innermostLoop(); l != nil {
			l.loop.Messages = append(l.loop.Messages, msg)
		}
		return
	}
}

func (st *sequenceState) innermostLoop() *openLoop {
	for i := len(st.stack) - 1; i >= 0; i-- {
		if st.stack[i] != nil {
			return st.stack[i]
		}
	}
	return nil
}
