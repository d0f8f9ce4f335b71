package styles

import "testing"

func TestPageList_NoColor(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		current, count int
		want           string
	}{
		{1, 1, "[1]"},
		{2, 3, " 1 [2] 3 "},
		{5, 10, " 1 … 3  4 [5] 6  7 … 10 "},
		{1, 8, "[1] 2  3 … 8 "},
	}
	for _, tt := range tests {
		if got := PageList(tt.current, tt.count); got != tt.want {
			t.Errorf("PageList(%d, %d) = %q, want %q", tt.current, tt.count, got, tt.want)
		}
	}
}

func TestSortIndicator(t *testing.T) {
	if SortIndicator(false, true) != SymbolUnsort {
		t.Fatal("unsorted column should show the neutral indicator")
	}
	if SortIndicator(true, true) != SymbolAsc || SortIndicator(true, false) != SymbolDesc {
		t.Fatal("sorted column should show its direction")
	}
}
