package analysis

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/agentmetrics-cli/internal/dataset"
	"github.com/montanaflynn/stats"
)

// RatioStat is the share of flagged rows within one group.
type RatioStat struct {
	Name            string
	MultimodalCount int
	TotalCount      int
	Ratio           float64
}

// MedianStat summarizes the valid numeric values of one group.
type MedianStat struct {
	Name   string
	Median float64
	Mean   float64
	Count  int
}

// grouper keeps first-seen key order so results do not depend on map iteration.
type grouper[A any] struct {
	keys []string
	accs map[string]*A
}

func newGrouper[A any]() *grouper[A] {
	return &grouper[A]{accs: map[string]*A{}}
}

func (g *grouper[A]) get(key string) *A {
	a, ok := g.accs[key]
	if !ok {
		a = new(A)
		g.accs[key] = a
		g.keys = append(g.keys, key)
	}
	return a
}

// RatioBy groups t by keyCol and computes the fraction of rows whose flagCol is true.
// flagCol must already hold bool values (see dataset.Coerce). Rows with an empty key
// are skipped. The result is ranked by ratio descending, ties by name.
func RatioBy(t *dataset.Table, keyCol, flagCol string) ([]RatioStat, error) {
	idx, err := t.MustCols(keyCol, flagCol)
	if err != nil {
		return nil, err
	}
	ki, fi := idx[0], idx[1]

	type acc struct{ flagged, total int }
	g := newGrouper[acc]()
	for _, row := range t.Rows {
		if row[ki] == nil {
			continue
		}
		a := g.get(dataset.CellString(row[ki]))
		a.total++
		if flag, _ := row[fi].(bool); flag {
			a.flagged++
		}
	}

	out := make([]RatioStat, 0, len(g.keys))
	for _, k := range g.keys {
		a := g.accs[k]
		out = append(out, RatioStat{
			Name:            k,
			MultimodalCount: a.flagged,
			TotalCount:      a.total,
			Ratio:           float64(a.flagged) / float64(a.total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ratio == out[j].Ratio {
			return out[i].Name < out[j].Name
		}
		return out[i].Ratio > out[j].Ratio
	})
	return out, nil
}

// MedianBy groups t by keyCol and computes the median of valueCol, which must hold
// dataset.NullFloat values. Missing values are ignored. Groups without any valid
// value cannot be ranked; they are left out and named in the returned warnings.
func MedianBy(t *dataset.Table, keyCol, valueCol string) ([]MedianStat, []string, error) {
	idx, err := t.MustCols(keyCol, valueCol)
	if err != nil {
		return nil, nil, err
	}
	ki, vi := idx[0], idx[1]

	type acc struct{ vals stats.Float64Data }
	g := newGrouper[acc]()
	for _, row := range t.Rows {
		if row[ki] == nil {
			continue
		}
		a := g.get(dataset.CellString(row[ki]))
		if v := dataset.ParseScore(row[vi]); v.Valid {
			a.vals = append(a.vals, v.Float64)
		}
	}

	var warnings []string
	out := make([]MedianStat, 0, len(g.keys))
	for _, k := range g.keys {
		a := g.accs[k]
		if len(a.vals) == 0 {
			warnings = append(warnings, fmt.Sprintf("%s=%s has no numeric %s values; excluded from ranking", keyCol, k, valueCol))
			continue
		}
		median, err := stats.Median(a.vals)
		if err != nil {
			return nil, nil, fmt.Errorf("median %s=%s: %w", keyCol, k, err)
		}
		mean, err := stats.Mean(a.vals)
		if err != nil {
			return nil, nil, fmt.Errorf("mean %s=%s: %w", keyCol, k, err)
		}
		out = append(out, MedianStat{Name: k, Median: median, Mean: mean, Count: len(a.vals)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Median == out[j].Median {
			return out[i].Name < out[j].Name
		}
		return out[i].Median > out[j].Median
	})
	return out, warnings, nil
}

// Top returns the first n entries of s (all of them when s is shorter).
func Top[T any](s []T, n int) []T {
	if n < 0 || n >= len(s) {
		return s
	}
	return s[:n]
}
