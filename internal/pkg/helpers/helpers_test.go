package helpers

import "testing"

func TestRoundAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{800, 800},
		{0.1 + 0.2, 0.3},
		{12.345, 12.35},
		{-5.555, -5.56},
		{1e-9, 0},
	}
	for _, tt := range tests {
		if got := RoundAmount(tt.in); !AmountsEqual(got, tt.want) {
			t.Errorf("RoundAmount(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAmountsEqual(t *testing.T) {
	if !AmountsEqual(1000-200-800, 0) {
		t.Error("balanced ledger should compare equal to zero")
	}
	if AmountsEqual(0.01, 0) {
		t.Error("one cent must not be treated as zero")
	}
}

func TestIsValidDate(t *testing.T) {
	tests := map[string]bool{
		"2024-09-01": true,
		"2024-02-30": false,
		"01.09.2024": false,
		"":           false,
	}
	for in, want := range tests {
		if got := IsValidDate(in); got != want {
			t.Errorf("IsValidDate(%q) = %v, want %v", in, got, want)
		}
	}
	if !IsValidDate(Today()) {
		t.Errorf("Today() = %q is not a valid date", Today())
	}
}
