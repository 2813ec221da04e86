package parser

import (
	"regexp"
	"strings"

	"github.com/inklab/merview/pkg/diagram"
)

// Bracket forms, tried in order. The first match wins; nested or unbalanced
// delimiters are not treated specially and malformed tokens fall through to
// the identity case.
var (
	rectRe    = regexp.MustCompile(`^([^\s\[\](){}]+)\[(.*)\]$`)
	roundedRe = regexp.MustCompile(`^([^\s\[\](){}]+)\((.*)\)$`)
	diamondRe = regexp.MustCompile(`^([^\s\[\](){}]+)\{(.*)\}$`)

	pipeLabelRe = regexp.MustCompile(`\|([^|]*)\|`)
)

// extractNode parses one node token into (id, label, shape).
//
// Recognized forms: id[label] is a rectangle, id(label) a rounded
// rectangle, id{label} a diamond. Anything else is both id and label with
// the rectangle shape.
func extractNode(token string) (id, label string, shape diagram.Shape) {
	token = strings.TrimSpace(token)

	if m := rectRe.FindStringSubmatch(token); m != nil {
		return m[1], unquote(m[2]), diagram.ShapeRectangle
	}
	if m := roundedRe.FindStringSubmatch(token); m != nil {
		return m[1], unquote(m[2]), diagram.ShapeRoundedRect
	}
	if m := diamondRe.FindStringSubmatch(token); m != nil {
		return m[1], unquote(m[2]), diagram.ShapeDiamond
	}
	return token, token, diagram.ShapeRectangle
}

// extractNodeWithEdgeLabel strips a |label| segment from the token before
// node extraction. The piped text belongs to the edge, not the node, so it
// is returned separately.
func extractNodeWithEdgeLabel(token string) (id, label string, shape diagram.Shape, edgeLabel string) {
	token = strings.TrimSpace(token)

	if m := pipeLabelRe.FindStringSubmatch(token); m != nil {
		edgeLabel = strings.TrimSpace(m[1])
		token = strings.TrimSpace(strings.Replace(token, m[0], "", 1))
	}

	id, label, shape = extractNode(token)
	return id, label, shape, edgeLabel
}

// unquote removes one set of surrounding double quotes, if present.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
