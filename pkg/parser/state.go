package parser

import (
	"regexp"
	"strings"

	"github.com/inklab/merview/pkg/diagram"
)

var stateDeclRe = regexp.MustCompile(`^state\s+"([^"]*)"\s+as\s+([\w.-]+)\s*$`)

// identRe matches a bare identifier line declaring an empty state.
var identRe = regexp.MustCompile(`^[\w.-]+$`)

// stateAccum accumulates states (first-seen order) and transitions.
type stateAccum struct {
	data *diagram.StateData
}

// parseState scans a state diagram source. Lines containing `-->` are
// transitions with an optional ` : label` suffix; `state "desc" as id`
// declares a named state; `id : desc` assigns a description; a bare
// identifier declares an empty state. The `[*]` pseudostate is tracked via
// IsStart/IsEnd flags on its transition partners and never becomes a state
// itself.
func parseState(text string) *diagram.StateData {
	st := &stateAccum{data: &diagram.StateData{}}

	for _, line := range lines(text) {
		if line == "" || isComment(line) {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "statediagram"):
			// Declaration line.
		case strings.Contains(line, "-->"):
			st.addTransition(line)
		case stateDeclRe.MatchString(line):
			m := stateDeclRe.FindStringSubmatch(line)
			st.ensure(m[2]).Description = m[1]
		case strings.Contains(line, ":"):
			st.addDescription(line)
		case identRe.MatchString(line):
			st.ensure(line)
		}
	}

	return st.data
}

func (st *stateAccum) addTransition(line string) {
	idx := strings.Index(line, "-->")
	from := strings.TrimSpace(line[:idx])
	rest := strings.TrimSpace(line[idx+len("-->"):])

	to := rest
	label := ""
	if colon := strings.Index(rest, ":"); colon >= 0 {
		to = strings.TrimSpace(rest[:colon])
		label = strings.TrimSpace(rest[colon+1:])
	}
	if from == "" || to == "" {
		return
	}

	// Pseudostate endpoints flag the real state on the other side instead
	// of being registered.
	switch {
	case from == diagram.PseudoStateID && to == diagram.PseudoStateID:
		return
	case from == diagram.PseudoStateID:
		st.ensure(to).IsStart = true
	case to == diagram.PseudoStateID:
		st.ensure(from).IsEnd = true
	default:
		st.ensure(from)
		st.ensure(to)
	}

	st.data.Transitions = append(st.data.Transitions, diagram.Transition{
		From:  from,
		To:    to,
		Label: label,
	})
}

func (st *stateAccum) addDescription(line string) {
	colon := strings.Index(line, ":")
	id := strings.TrimSpace(line[:colon])
	desc := strings.TrimSpace(line[colon+1:])
	if id == "" || id == diagram.PseudoStateID || !identRe.MatchString(id) {
		return
	}
	if desc != "" {
		st.ensure(id).Description = desc
	}
}

// ensure registers a state by ID if new and returns a pointer into the
// state list for flag/description updates.
func (st *stateAccum) ensure(id string) *diagram.State {
	if s := st.data.StateByID(id); s != nil {
		return s
	}
	st.data.States = append(st.data.States, diagram.State{ID: id})
	return &st.data.States[len(st.data.States)-1]
}
