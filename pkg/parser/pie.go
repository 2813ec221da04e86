package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/inklab/merview/pkg/diagram"
)

var pieEntryRe = regexp.MustCompile(`^"([^"]*)"\s*:\s*([-+0-9.eE]+)\s*$`)

// parsePie scans a pie chart source for the title and `"label" : value`
// entries. Values that fail to parse as a number, and negative values, are
// dropped silently. A duplicate label keeps its last value.
func parsePie(text string) *diagram.PieData {
	data := &diagram.PieData{Values: make(map[string]float64)}

	for _, line := range lines(text) {
		if line == "" || isComment(line) {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "pie"):
			rest := strings.TrimSpace(line[len("pie"):])
			if t, ok := strings.CutPrefix(rest, "title "); ok {
				data.Title = unquote(strings.TrimSpace(t))
			}
		case strings.HasPrefix(lower, "title "):
			data.Title = unquote(strings.TrimSpace(line[len("title "):]))
		default:
			m := pieEntryRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil || v < 0 {
				continue
			}
			data.Values[m[1]] = v
		}
	}

	return data
}
