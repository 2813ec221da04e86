package dot

import (
	"strings"
	"testing"

	"github.com/inklab/merview/pkg/errors"
	"github.com/inklab/merview/pkg/parser"
)

func TestToDOTFlowchart(t *testing.T) {
	d := parser.Parse("graph TD\nA[Start] --> B{Is it?}\nB -->|Yes| C")
	out, err := ToDOT(d)
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"A" [label="Start"];`,
		`"B" [label="Is it?", shape=diamond];`,
		`"A" -> "B";`,
		`"B" -> "C" [label="Yes"];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestToDOTFlowchartEdgeStyles(t *testing.T) {
	d := parser.Parse("graph TD\nA -.-> B\nC ==> D")
	out, err := ToDOT(d)
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}

	if !strings.Contains(out, "style=dotted") {
		t.Error("dotted edge should map to style=dotted")
	}
	if !strings.Contains(out, "penwidth=2") {
		t.Error("thick edge should map to penwidth=2")
	}
}

func TestToDOTState(t *testing.T) {
	d := parser.Parse("stateDiagram-v2\n[*] --> Idle\nIdle --> Done : go\nDone --> [*]")
	out, err := ToDOT(d)
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}

	for _, want := range []string{
		`"__start" [shape=point`,
		`"__end" [shape=doublecircle`,
		`"__start" -> "Idle";`,
		`"Idle" -> "Done" [label="go"];`,
		`"Done" -> "__end";`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestToDOTStateWithoutPseudostates(t *testing.T) {
	d := parser.Parse("stateDiagram-v2\nA --> B")
	out, err := ToDOT(d)
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}
	if strings.Contains(out, "__start") || strings.Contains(out, "__end") {
		t.Error("pseudostate nodes should only appear when referenced")
	}
}

func TestToDOTClass(t *testing.T) {
	d := parser.Parse(`classDiagram
class Animal {
+String name
+makeSound() void
}
Animal <|-- Dog
Dog ..> Ball`)
	out, err := ToDOT(d)
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}

	for _, want := range []string{
		"rankdir=BT;",
		"node [shape=record",
		`{Animal|+name : String\\l|+makeSound() : void\\l}`,
		`"Dog" -> "Animal" [arrowhead=empty];`,
		`"Dog" -> "Ball" [style=dashed];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestToDOTUnsupportedKinds(t *testing.T) {
	for _, src := range []string{
		"pie\n\"A\" : 1",
		"sequenceDiagram\nA->>B: hi",
		"timeline\n2020 : x",
		"not a diagram",
	} {
		d := parser.Parse(src)
		if _, err := ToDOT(d); errors.GetCode(err) != errors.ErrCodeUnsupportedKind {
			t.Errorf("ToDOT(%q kind) error code = %v, want %v", d.Kind, errors.GetCode(err), errors.ErrCodeUnsupportedKind)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="134pt" height="188pt" viewBox="0.00 0.00 134.00 188.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 134.00 188.00"`) {
		t.Errorf("viewBox not normalized:\n%s", out)
	}
	if !strings.Contains(out, `width="134" height="188"`) {
		t.Errorf("dimensions not rewritten to pixels:\n%s", out)
	}
	if strings.Contains(out, "134pt") {
		t.Error("original pt dimensions should be replaced")
	}
}

func TestNormalizeViewBoxPassThrough(t *testing.T) {
	in := []byte("<svg><rect/></svg>")
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("output without a viewBox should pass through unchanged, got %q", got)
	}
}
