package components

import "testing"

func TestLayoutRowSumsExactly(t *testing.T) {
	cases := []struct {
		total, n int
	}{
		{120, 4},
		{121, 4},
		{123, 4},
		{80, 3},
		{7, 2},
	}
	for _, tc := range cases {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
		// Remainder goes to the first cards, so widths never differ by more than 1
		for i := 1; i < len(widths); i++ {
			if widths[i-1] < widths[i] || widths[i-1]-widths[i] > 1 {
				t.Errorf("LayoutRow(%d, %d) uneven: %v", tc.total, tc.n, widths)
			}
		}
	}
}

func TestLayoutRowZeroCards(t *testing.T) {
	if got := LayoutRow(100, 0); got != nil {
		t.Errorf("LayoutRow(100, 0) = %v, want nil", got)
	}
}

func TestCardInnerWidthFloor(t *testing.T) {
	if got := CardInnerWidth(100); got != 96 {
		t.Errorf("CardInnerWidth(100) = %d, want 96", got)
	}
	if got := CardInnerWidth(5); got != 10 {
		t.Errorf("CardInnerWidth(5) = %d, want floor of 10", got)
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}
