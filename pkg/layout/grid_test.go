package layout

import (
	"testing"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/geometry"
	"github.com/inklab/merview/pkg/parser"
)

func TestClassGridThreeColumns(t *testing.T) {
	d := parser.Parse("classDiagram\nclass A\nclass B\nclass C\nclass D")
	res := Compute(d, Options{Size: geometry.Size{Width: 800, Height: 600}})

	if len(res.Boxes) != 4 {
		t.Fatalf("len(Boxes) = %d, want 4", len(res.Boxes))
	}

	a, _ := res.Box("A")
	b, _ := res.Box("B")
	c, _ := res.Box("C")
	dd, _ := res.Box("D")

	// First row holds three classes left to right; the fourth wraps.
	if !(a.Center.X < b.Center.X && b.Center.X < c.Center.X) {
		t.Errorf("row X order violated: A=%v B=%v C=%v", a.Center.X, b.Center.X, c.Center.X)
	}
	if a.Center.Y != b.Center.Y || b.Center.Y != c.Center.Y {
		t.Error("first-row classes should share a Y center")
	}
	if dd.Center.Y <= a.Center.Y {
		t.Errorf("D.Y = %v, want below the first row at %v", dd.Center.Y, a.Center.Y)
	}
	if dd.Center.X != a.Center.X {
		t.Error("wrapped class should reuse the first column")
	}
}

func TestClassBoxGrowsWithMembers(t *testing.T) {
	d := parser.Parse(`classDiagram
class Small
class Big {
+int a
+int b
+int c
}`)
	res := Compute(d, Options{})

	small, _ := res.Box("Small")
	big, _ := res.Box("Big")
	if big.Size.Height <= small.Size.Height {
		t.Errorf("Big height %v should exceed Small height %v", big.Size.Height, small.Size.Height)
	}
}

func TestStateGridBucketsStartAndEnd(t *testing.T) {
	// Parse order is Mid first; the start state must still land in the
	// first cell and the end state in the last.
	d := parser.Parse(`stateDiagram-v2
Mid --> Other
[*] --> Entry
Done --> [*]
Entry --> Mid
Other --> Done`)
	res := Compute(d, Options{Size: geometry.Size{Width: 800, Height: 600}})

	if len(res.Boxes) != 4 {
		t.Fatalf("len(Boxes) = %d, want 4", len(res.Boxes))
	}

	entry, _ := res.Box("Entry")
	done, _ := res.Box("Done")
	mid, _ := res.Box("Mid")
	other, _ := res.Box("Other")

	for _, reg := range []geometry.Rect{mid, other} {
		if entry.Center.X >= reg.Center.X {
			t.Errorf("start state at X=%v, want left of regular state at X=%v", entry.Center.X, reg.Center.X)
		}
		if done.Center.X <= reg.Center.X {
			t.Errorf("end state at X=%v, want right of regular state at X=%v", done.Center.X, reg.Center.X)
		}
	}
}

func TestStateGridNeverPlacesPseudostate(t *testing.T) {
	d := parser.Parse("stateDiagram-v2\n[*] --> A\nA --> [*]")
	res := Compute(d, Options{})

	if _, ok := res.Box(diagram.PseudoStateID); ok {
		t.Error("the [*] pseudostate must not get a box")
	}
	if _, ok := res.Box("A"); !ok {
		t.Error("Box(A) missing")
	}
}

func TestStateBoxUsesDescription(t *testing.T) {
	d := parser.Parse("stateDiagram-v2\nstate \"A much longer description than the id\" as s1\ns2")
	res := Compute(d, Options{})

	s1, _ := res.Box("s1")
	s2, _ := res.Box("s2")
	if s1.Size.Width <= s2.Size.Width {
		t.Errorf("described state width %v should exceed bare state width %v", s1.Size.Width, s2.Size.Width)
	}
}

func TestMemberLine(t *testing.T) {
	attr := diagram.Attribute{Name: "age", Type: "int", Visibility: diagram.VisibilityPrivate}
	if got := MemberLine(attr.Visibility, &attr, nil); got != "-int age" {
		t.Errorf("MemberLine(attr) = %q, want %q", got, "-int age")
	}

	m := diagram.Method{Name: "add", Params: []string{"int a", "int b"}, ReturnType: "int", Visibility: diagram.VisibilityPublic}
	if got := MemberLine(m.Visibility, nil, &m); got != "+add(int a, int b) int" {
		t.Errorf("MemberLine(method) = %q, want %q", got, "+add(int a, int b) int")
	}

	if got := MemberLine(diagram.VisibilityPublic, nil, nil); got != "" {
		t.Errorf("MemberLine(nil, nil) = %q, want empty", got)
	}
}
