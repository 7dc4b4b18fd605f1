package game

import (
	"errors"
	"testing"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "56", want: 56},
		{in: "  7 ", want: 7},
		{in: "0", want: 0},
		{in: "144", want: 144},
		{in: "-3", wantErr: true},
		{in: "", wantErr: true},
		{in: "seven", wantErr: true},
		{in: "7.5", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseAnswer(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidAnswer) {
				t.Fatalf("ParseAnswer(%q): expected ErrInvalidAnswer, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseAnswer(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
	}
}

func TestClassifyResult(t *testing.T) {
	tests := []struct {
		correct, total int
		want           ResultTier
	}{
		{20, 20, ResultPerfect},
		{19, 20, ResultAwesome},
		{15, 20, ResultAwesome},
		{14, 20, ResultGoodJob},
		{10, 20, ResultGoodJob},
		{9, 20, ResultKeepPracticing},
		{0, 20, ResultKeepPracticing},
		{0, 0, ResultKeepPracticing},
	}
	for _, tc := range tests {
		if got := ClassifyResult(tc.correct, tc.total); got != tc.want {
			t.Fatalf("ClassifyResult(%d, %d) = %s, want %s", tc.correct, tc.total, got, tc.want)
		}
	}
}
