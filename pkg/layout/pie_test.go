package layout

import (
	"math"
	"testing"

	"github.com/inklab/merview/pkg/diagram"
	"github.com/inklab/merview/pkg/geometry"
)

func pieDiagram(values map[string]float64) diagram.Diagram {
	return diagram.Diagram{
		Kind: diagram.KindPie,
		Pie:  &diagram.PieData{Title: "Pets", Values: values},
	}
}

func TestPieSliceOrderAndAngles(t *testing.T) {
	d := pieDiagram(map[string]float64{"Dogs": 386, "Cats": 85, "Rats": 15})
	res := Compute(d, Options{Size: geometry.Size{Width: 800, Height: 600}})

	pr := res.Pie
	if pr == nil {
		t.Fatal("Pie result is nil")
	}
	if pr.Title != "Pets" {
		t.Errorf("Title = %q, want Pets", pr.Title)
	}

	wantOrder := []string{"Dogs", "Cats", "Rats"}
	if len(pr.Slices) != len(wantOrder) {
		t.Fatalf("len(Slices) = %d, want %d", len(pr.Slices), len(wantOrder))
	}
	for i, label := range wantOrder {
		if pr.Slices[i].Label != label {
			t.Errorf("Slices[%d].Label = %q, want %q (descending by value)", i, pr.Slices[i].Label, label)
		}
	}

	if pr.Slices[0].StartAngle != -90 {
		t.Errorf("first StartAngle = %v, want -90", pr.Slices[0].StartAngle)
	}
	if last := pr.Slices[len(pr.Slices)-1].EndAngle; math.Abs(last-270) > 1e-9 {
		t.Errorf("last EndAngle = %v, want 270 (full circle)", last)
	}

	if want := 386.0 / 486.0; math.Abs(pr.Slices[0].Fraction-want) > 1e-9 {
		t.Errorf("Slices[0].Fraction = %v, want %v", pr.Slices[0].Fraction, want)
	}

	// Adjacent slices share their boundary angle.
	for i := 1; i < len(pr.Slices); i++ {
		if pr.Slices[i].StartAngle != pr.Slices[i-1].EndAngle {
			t.Errorf("slice %d starts at %v, want previous end %v",
				i, pr.Slices[i].StartAngle, pr.Slices[i-1].EndAngle)
		}
	}
}

func TestPieTieBreakByLabel(t *testing.T) {
	d := pieDiagram(map[string]float64{"b": 10, "a": 10, "c": 10})
	res := Compute(d, Options{})

	want := []string{"a", "b", "c"}
	for i, label := range want {
		if res.Pie.Slices[i].Label != label {
			t.Errorf("Slices[%d].Label = %q, want %q (label breaks value ties)", i, res.Pie.Slices[i].Label, label)
		}
	}
}

func TestPieSliceColorsAssigned(t *testing.T) {
	d := pieDiagram(map[string]float64{"x": 1, "y": 2})
	res := Compute(d, Options{})

	seen := map[string]bool{}
	for _, s := range res.Pie.Slices {
		if s.Color == "" || s.TextColor == "" {
			t.Errorf("slice %q missing colors: %+v", s.Label, s)
		}
		seen[s.Color] = true
	}
	if len(seen) != 2 {
		t.Error("adjacent slices should get distinct palette colors")
	}
}

func TestPieCenterAndRadius(t *testing.T) {
	d := pieDiagram(map[string]float64{"x": 1})
	res := Compute(d, Options{Size: geometry.Size{Width: 800, Height: 600}})

	pr := res.Pie
	if pr.Center != (geometry.Point{X: 400, Y: 300}) {
		t.Errorf("Center = %v, want {400 300}", pr.Center)
	}
	if want := 600.0/2 - 70; pr.Radius != want {
		t.Errorf("Radius = %v, want %v", pr.Radius, want)
	}
}

func TestPieRadiusFloor(t *testing.T) {
	d := pieDiagram(map[string]float64{"x": 1})
	res := Compute(d, Options{Size: geometry.Size{Width: 100, Height: 100}})
	if res.Pie.Radius != 50 {
		t.Errorf("Radius = %v, want the 50 floor", res.Pie.Radius)
	}
}

func TestPieZeroTotalNoSlices(t *testing.T) {
	d := pieDiagram(map[string]float64{})
	res := Compute(d, Options{})

	if res.Pie == nil {
		t.Fatal("Pie result is nil even for empty data")
	}
	if len(res.Pie.Slices) != 0 {
		t.Errorf("len(Slices) = %d, want 0", len(res.Pie.Slices))
	}
}
