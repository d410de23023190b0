package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already two decimals", "12.34", "12.34"},
		{"half rounds away from zero", "2.345", "2.35"},
		{"negative half rounds away from zero", "-2.345", "-2.35"},
		{"rounds down", "2.344", "2.34"},
		{"integer unchanged", "100", "100"},
		{"zero", "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Round2(decimal.RequireFromString(tc.in))
			want := decimal.RequireFromString(tc.want)
			if !got.Equal(want) {
				t.Errorf("Round2(%s) = %s, want %s", tc.in, got, want)
			}
		})
	}
}

func TestRound2AvoidsBinaryFloatArtifacts(t *testing.T) {
	// 0.1 + 0.2 != 0.3 in binary floats; it must be exactly 0.3 here.
	sum := decimal.NewFromFloat(0.1).Add(decimal.NewFromFloat(0.2))
	if !Round2(sum).Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("0.1 + 0.2 = %s, want 0.3", sum)
	}
}
