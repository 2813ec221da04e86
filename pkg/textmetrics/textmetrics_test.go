package textmetrics

import "testing"

func TestHeuristicMeasure(t *testing.T) {
	w, h := Heuristic{}.Measure("hello", 14)

	if want := 5 * 14 * CharWidthFactor; w != want {
		t.Errorf("width = %v, want %v", w, want)
	}
	if want := 14 * LineHeightFactor; h != want {
		t.Errorf("height = %v, want %v", h, want)
	}
}

func TestHeuristicWideRunes(t *testing.T) {
	narrow, _ := Heuristic{}.Measure("ab", 14)
	wide, _ := Heuristic{}.Measure("日本", 14)

	if wide != 2*narrow {
		t.Errorf("wide runes should count double: got %v, want %v", wide, 2*narrow)
	}
}

func TestHeuristicEmpty(t *testing.T) {
	w, h := Heuristic{}.Measure("", 14)
	if w != 0 {
		t.Errorf("width = %v, want 0", w)
	}
	if h == 0 {
		t.Error("height = 0, want line height even for empty text")
	}
}

func TestWidthNilMeasurerFallsBack(t *testing.T) {
	direct := Width(Default, "abc", 12)
	viaNil := Width(nil, "abc", 12)
	if direct != viaNil {
		t.Errorf("Width(nil) = %v, want %v (Default fallback)", viaNil, direct)
	}
}
