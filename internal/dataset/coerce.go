package dataset

import (
	"math"
	"strconv"
	"strings"
)

// NullFloat is a float that may be missing. Valid == false is the missing-value marker.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Missing is the marker stored for cells that do not parse as numbers.
var Missing = NullFloat{}

// CoerceOptions names the columns to convert.
type CoerceOptions struct {
	BoolColumn    string
	NumericColumn string
	// FalseTokens are strings (case-insensitive, trimmed) that count as false.
	// When empty only "", zero and false are falsy.
	FalseTokens []string
}

// Coerce returns a copy of t in which BoolColumn holds bool values and
// NumericColumn holds NullFloat values. Other columns are shared with t.
func Coerce(t *Table, opt CoerceOptions) (*Table, error) {
	idx, err := t.MustCols(opt.BoolColumn, opt.NumericColumn)
	if err != nil {
		return nil, err
	}
	bi, ni := idx[0], idx[1]
	falsy := tokenSet(opt.FalseTokens)

	rows := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]any, len(r))
		copy(row, r)
		row[bi] = Truthy(r[bi], falsy)
		row[ni] = ParseScore(r[ni])
		rows[i] = row
	}
	out := &Table{Columns: t.Columns, Rows: rows}
	out.reindex()
	return out, nil
}

// Truthy applies the boolean rule used for flag columns:
//
//	nil, "", false, 0, NaN -> false
//	any other bool/number/string -> true ("0" and "false" strings included)
//
// unless the trimmed, lower-cased string is present in falseTokens.
func Truthy(v any, falseTokens map[string]struct{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	case string:
		if x == "" {
			return false
		}
		if len(falseTokens) > 0 {
			if _, ok := falseTokens[strings.ToLower(strings.TrimSpace(x))]; ok {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// ParseScore converts a cell to a float, returning Missing when it is not numeric.
// NaN and infinities count as missing.
func ParseScore(v any) NullFloat {
	var x float64
	switch c := v.(type) {
	case float64:
		x = c
	case int:
		x = float64(c)
	case int64:
		x = float64(c)
	case bool:
		if c {
			x = 1
		}
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return Missing
		}
		x = f
	case NullFloat:
		return c
	default:
		return Missing
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Missing
	}
	return NullFloat{Float64: x, Valid: true}
}

func tokenSet(tokens []string) map[string]struct{} {
	if len(tokens) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			m[t] = struct{}{}
		}
	}
	return m
}
