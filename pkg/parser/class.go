package parser

import (
	"regexp"
	"strings"

	"github.com/inklab/merview/pkg/diagram"
)

// relOp maps a class-diagram operator to a relationship type. Ordered
// most-specific first: `..|>` contains `..>`, and `<|--` must be tried
// before the plain `-->`.
type relOp struct {
	token    string
	typ      diagram.RelationType
	reversed bool // left-hand token is the target, not the source
}

var relOps = []relOp{
	// Inheritance keeps the source orientation: `A <|-- B` makes B the
	// child (From) and A the parent (To).
	{"<|--", diagram.RelationInheritance, true},
	{"..|>", diagram.RelationRealization, false},
	{"*--", diagram.RelationComposition, false},
	{"o--", diagram.RelationAggregation, false},
	{"-->", diagram.RelationAssociation, false},
	{"..>", diagram.RelationDependency, false},
}

var classDeclRe = regexp.MustCompile(`^class\s+([\w.]+)\s*(\{)?\s*$`)

// classState accumulates classes (in first-seen order) and relationships.
// current tracks the class whose `{ ... }` block is open.
type classState struct {
	data    *diagram.ClassData
	current string
}

// parseClass scans a class diagram source: `class Name { ... }` member
// blocks, standalone `Name : member` lines, and relationship lines. A class
// mentioned only in a relationship is synthesized with empty members.
func parseClass(text string) *diagram.ClassData {
	st := &classState{data: &diagram.ClassData{}}

	for _, line := range lines(text) {
		if line == "" || isComment(line) {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "classdiagram"):
			// Declaration line.
		case line == "}":
			st.current = ""
		case st.current != "":
			st.addMember(st.current, strings.TrimSuffix(line, "}"))
			if strings.HasSuffix(line, "}") {
				st.current = ""
			}
		default:
			st.scanLine(line)
		}
	}

	return st.data
}

func (st *classState) scanLine(line string) {
	if m := classDeclRe.FindStringSubmatch(line); m != nil {
		st.ensureClass(m[1])
		if m[2] == "{" {
			st.current = m[1]
		}
		return
	}

	if st.addRelation(line) {
		return
	}

	// Standalone member form: `ClassName : +member`.
	if colon := strings.Index(line, ":"); colon > 0 {
		name := strings.TrimSpace(line[:colon])
		member := strings.TrimSpace(line[colon+1:])
		if name != "" && member != "" && !strings.ContainsAny(name, " \t") {
			st.ensureClass(name)
			st.addMember(name, member)
		}
	}
}

// addRelation tries the relationship operator table against the line.
// The optional ` : label` suffix is attached to the relationship.
func (st *classState) addRelation(line string) bool {
	for _, op := range relOps {
		idx := strings.Index(line, op.token)
		if idx < 0 {
			continue
		}

		left := strings.TrimSpace(line[:idx])
		rest := strings.TrimSpace(line[idx+len(op.token):])

		right := rest
		label := ""
		if colon := strings.Index(rest, ":"); colon >= 0 {
			right = strings.TrimSpace(rest[:colon])
			label = strings.TrimSpace(rest[colon+1:])
		}
		if left == "" || right == "" {
			return false
		}

		from, to := left, right
		if op.reversed {
			from, to = right, left
		}

		st.ensureClass(left)
		st.ensureClass(right)
		st.data.Relations = append(st.data.Relations, diagram.Relation{
			From:  from,
			To:    to,
			Type:  op.typ,
			Label: label,
		})
		return true
	}
	return false
}

// ensureClass registers a class by name if it is not yet known.
func (st *classState) ensureClass(name string) {
	if st.data.ClassByName(name) == nil {
		st.data.Classes = append(st.data.Classes, diagram.Class{Name: name})
	}
}

// addMember parses one member line into an attribute or a method and
// appends it to the named class. A member with parentheses is a method;
// anything else is an attribute. Unparseable members are skipped.
func (st *classState) addMember(className, member string) {
	member = strings.TrimSpace(member)
	if member == "" {
		return
	}

	vis := diagram.VisibilityPublic
	switch member[0] {
	case '+':
		vis, member = diagram.VisibilityPublic, member[1:]
	case '-':
		vis, member = diagram.VisibilityPrivate, member[1:]
	case '#':
		vis, member = diagram.VisibilityProtected, member[1:]
	case '~':
		vis, member = diagram.VisibilityPackage, member[1:]
	}
	member = strings.TrimSpace(member)

	cls := st.data.ClassByName(className)
	if cls == nil || member == "" {
		return
	}

	if open := strings.Index(member, "("); open >= 0 {
		end := strings.Index(member, ")")
		if end < open {
			return
		}
		name := strings.TrimSpace(member[:open])
		params := splitParams(member[open+1 : end])
		ret := strings.TrimSpace(member[end+1:])
		if name == "" {
			return
		}
		cls.Methods = append(cls.Methods, diagram.Method{
			Name:       name,
			ReturnType: ret,
			Visibility: vis,
			Params:     params,
		})
		return
	}

	// Attribute form `Type name`; a single token is a name without a type.
	fields := strings.Fields(member)
	attr := diagram.Attribute{Visibility: vis}
	switch len(fields) {
	case 1:
		attr.Name = fields[0]
	default:
		attr.Type = fields[0]
		attr.Name = strings.Join(fields[1:], " ")
	}
	cls.Attributes = append(cls.Attributes, attr)
}

func splitParams(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
