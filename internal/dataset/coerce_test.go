package dataset

import (
	"errors"
	"math"
	"testing"
)

func TestTruthyTable(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{"", false},
		{false, false},
		{true, true},
		{0.0, false},
		{math.NaN(), false},
		{1.0, true},
		{-0.5, true},
		{"yes", true},
		{"0", true},
		{"false", true},
		{"False", true},
	}
	for _, tc := range cases {
		if got := Truthy(tc.in, nil); got != tc.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tc.in, got, tc.want)
		}
		// deterministic for repeated input
		if Truthy(tc.in, nil) != Truthy(tc.in, nil) {
			t.Errorf("Truthy(%#v) not deterministic", tc.in)
		}
	}
}

func TestTruthyFalseTokens(t *testing.T) {
	falsy := tokenSet([]string{"false", " No ", "0"})
	for _, s := range []string{"FALSE", "no", " 0 "} {
		if Truthy(s, falsy) {
			t.Errorf("Truthy(%q) with false tokens = true", s)
		}
	}
	if !Truthy("yes", falsy) {
		t.Errorf("Truthy(yes) with false tokens = false")
	}
}

func TestParseScore(t *testing.T) {
	cases := []struct {
		in    any
		want  float64
		valid bool
	}{
		{0.75, 0.75, true},
		{" 0.5 ", 0.5, true},
		{"1e-2", 0.01, true},
		{true, 1, true},
		{"N/A", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{math.Inf(1), 0, false},
		{"0.5.1", 0, false},
	}
	for _, tc := range cases {
		got := ParseScore(tc.in)
		if got.Valid != tc.valid {
			t.Errorf("ParseScore(%#v).Valid = %v, want %v", tc.in, got.Valid, tc.valid)
			continue
		}
		if tc.valid && got.Float64 != tc.want {
			t.Errorf("ParseScore(%#v) = %v, want %v", tc.in, got.Float64, tc.want)
		}
	}
}

func TestCoerceReplacesOnlyTargetColumns(t *testing.T) {
	src := Normalize(RawTable{
		{"agent_type", "multimodal_capability", "bias_detection_score"},
		{"A", 1.0, "0.4"},
		{"B", 0.0, "N/A"},
		{"C", "", 0.9},
	})
	out, err := Coerce(src, CoerceOptions{BoolColumn: "multimodal_capability", NumericColumn: "bias_detection_score"})
	if err != nil {
		t.Fatalf("Coerce: %v", err)
	}
	if out.Len() != 3 {
		t.Fatalf("rows = %d, want 3", out.Len())
	}
	wantFlags := []bool{true, false, false}
	wantScores := []NullFloat{{0.4, true}, Missing, {0.9, true}}
	for i := range wantFlags {
		if got := out.Value(i, "multimodal_capability"); got != wantFlags[i] {
			t.Errorf("row %d flag = %v, want %v", i, got, wantFlags[i])
		}
		if got := out.Value(i, "bias_detection_score"); got != wantScores[i] {
			t.Errorf("row %d score = %v, want %v", i, got, wantScores[i])
		}
	}
	if out.Value(1, "agent_type") != "B" {
		t.Errorf("untouched column changed")
	}
	if src.Value(0, "multimodal_capability") != 1.0 {
		t.Errorf("source table mutated")
	}
}

func TestCoerceMissingColumn(t *testing.T) {
	src := Normalize(RawTable{{"agent_type"}, {"A"}})
	_, err := Coerce(src, CoerceOptions{BoolColumn: "multimodal_capability", NumericColumn: "bias_detection_score"})
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}
