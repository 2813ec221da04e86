package diagram

import "strings"

// detectEntry maps a first-line prefix to a diagram kind. The table is
// ordered: more specific prefixes must come before shorter ones that would
// also match (e.g. "gitgraph" before a hypothetical "git").
type detectEntry struct {
	prefix string
	kind   Kind
}

var detectTable = []detectEntry{
	{"graph", KindFlowchart},
	{"flowchart", KindFlowchart},
	{"sequencediagram", KindSequence},
	{"classdiagram", KindClass},
	{"statediagram", KindState},
	{"gantt", KindGantt},
	{"pie", KindPie},
	{"gitgraph", KindGitGraph},
	{"erdiagram", KindER},
	{"journey", KindUserJourney},
	{"timeline", KindTimeline},
}

// Detect inspects the first significant line of a source text and returns
// the diagram kind it declares. Matching is case-insensitive and tolerates
// leading/trailing whitespace and a UTF-8 BOM. Empty input or an
// unrecognized first line yields KindUnknown; Detect never fails.
func Detect(text string) Kind {
	trimmed := strings.TrimPrefix(text, "\uFEFF")
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, e := range detectTable {
			if strings.HasPrefix(lower, e.prefix) {
				return e.kind
			}
		}
		return KindUnknown
	}
	return KindUnknown
}
