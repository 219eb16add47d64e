package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLayoutRowSumsExactly(t *testing.T) {
	for _, tc := range []struct {
		total, n int
	}{
		{100, 4},
		{101, 4},
		{103, 4},
		{57, 2},
		{9, 3},
	} {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Fatalf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}

	if LayoutRow(50, 0) != nil {
		t.Fatal("LayoutRow with n=0 should be nil")
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Fatalf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestCardInnerWidthFloor(t *testing.T) {
	if got := CardInnerWidth(100); got != 96 {
		t.Fatalf("CardInnerWidth(100) = %d, want 96", got)
	}
	if got := CardInnerWidth(5); got != 10 {
		t.Fatalf("CardInnerWidth(5) = %d, want floor 10", got)
	}
}

func TestSparklineLength(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4}
	out := Sparkline(values, lipgloss.Color("#ffffff"))
	if lipgloss.Width(out) != len(values) {
		t.Fatalf("sparkline width = %d, want %d", lipgloss.Width(out), len(values))
	}
	if Sparkline(nil, lipgloss.Color("#ffffff")) != "" {
		t.Fatal("empty values should render empty sparkline")
	}
}

func TestHBarBounds(t *testing.T) {
	if out := HBar(0, 10, 20, lipgloss.Color("1")); out != "" {
		t.Fatalf("zero value should render nothing, got %q", out)
	}
	out := HBar(5, 10, 20, lipgloss.Color("1"))
	if lipgloss.Width(out) != 20 {
		t.Fatalf("bar width = %d, want 20", lipgloss.Width(out))
	}
	over := HBar(50, 10, 20, lipgloss.Color("1"))
	if lipgloss.Width(over) != 20 {
		t.Fatalf("overflow bar width = %d, want clamped 20", lipgloss.Width(over))
	}
}
