package parser

import (
	"strings"

	"github.com/inklab/merview/pkg/diagram"
)

// parseTimeline scans a timeline source. A `period : event` line starts a
// new period; a line with only `: event` attaches the event to the most
// recently seen period (Mermaid's multiple-events-per-period shorthand).
func parseTimeline(text string) *diagram.TimelineData {
	data := &diagram.TimelineData{}
	lastPeriod := ""

	for _, line := range lines(text) {
		if line == "" || isComment(line) {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "timeline"):
			// Declaration line.
		case strings.HasPrefix(lower, "title "):
			data.Title = strings.TrimSpace(line[len("title "):])
		case strings.Contains(line, ":"):
			colon := strings.Index(line, ":")
			period := strings.TrimSpace(line[:colon])
			event := strings.TrimSpace(line[colon+1:])
			if event == "" {
				continue
			}
			if period == "" {
				period = lastPeriod
			} else {
				lastPeriod = period
			}
			data.Events = append(data.Events, diagram.TimelineEvent{
				Period: period,
				Text:   event,
			})
		}
	}

	return data
}
