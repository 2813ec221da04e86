package parser

import (
	"testing"

	"github.com/inklab/merview/pkg/diagram"
)

func TestParsePie(t *testing.T) {
	text := `pie title Pets adopted
"Dogs" : 386
"Cats" : 85
"Rats" : 15`
	d := Parse(text)

	if d.Kind != diagram.KindPie {
		t.Fatalf("Kind = %q, want %q", d.Kind, diagram.KindPie)
	}
	p := d.Pie
	if p == nil {
		t.Fatal("Pie payload is nil")
	}
	if p.Title != "Pets adopted" {
		t.Errorf("Title = %q, want %q", p.Title, "Pets adopted")
	}
	want := map[string]float64{"Dogs": 386, "Cats": 85, "Rats": 15}
	if len(p.Values) != len(want) {
		t.Fatalf("len(Values) = %d, want %d", len(p.Values), len(want))
	}
	for label, v := range want {
		if p.Values[label] != v {
			t.Errorf("Values[%q] = %v, want %v", label, p.Values[label], v)
		}
	}
	if p.Total() != 486 {
		t.Errorf("Total() = %v, want 486", p.Total())
	}
}

func TestParsePieStandaloneTitle(t *testing.T) {
	d := Parse("pie\ntitle Favorite colors\n\"Red\" : 1")
	if d.Pie.Title != "Favorite colors" {
		t.Errorf("Title = %q, want %q", d.Pie.Title, "Favorite colors")
	}
}

func TestParsePieDropsBadValues(t *testing.T) {
	text := `pie
"Good" : 10
"Negative" : -5
"NotANumber" : abc
Unquoted : 3`
	d := Parse(text)
	p := d.Pie

	if len(p.Values) != 1 {
		t.Fatalf("len(Values) = %d, want 1 (bad entries dropped)", len(p.Values))
	}
	if p.Values["Good"] != 10 {
		t.Errorf("Values[Good] = %v, want 10", p.Values["Good"])
	}
}

func TestParsePieDuplicateKeepsLast(t *testing.T) {
	d := Parse("pie\n\"X\" : 1\n\"X\" : 7")
	if got := d.Pie.Values["X"]; got != 7 {
		t.Errorf("Values[X] = %v, want 7 (last value wins)", got)
	}
}

func TestParsePieFloatValues(t *testing.T) {
	d := Parse("pie\n\"Half\" : 0.5")
	if got := d.Pie.Values["Half"]; got != 0.5 {
		t.Errorf("Values[Half] = %v, want 0.5", got)
	}
}
