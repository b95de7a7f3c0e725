package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/keminggris/survey-cli/internal/model"
)

// GroupCount is one row of a grouped-count table.
type GroupCount struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CountBy groups rows by a categorical label and counts rows per group.
// Results are sorted by count descending, ties by label ascending, and each
// group carries its share of the view total as a percentage. Rows with an
// empty label are bucketed under fallback when it is non-empty, otherwise
// dropped. An empty view yields an empty table.
func CountBy[T any](rows []T, fallback string, label func(T) string) []GroupCount {
	counts := make(map[string]int)
	total := 0
	for _, r := range rows {
		l := label(r)
		if l == "" {
			if fallback == "" {
				continue
			}
			l = fallback
		}
		counts[l]++
		total++
	}

	out := make([]GroupCount, 0, len(counts))
	for l, n := range counts {
		out = append(out, GroupCount{
			Label:   l,
			Count:   n,
			Percent: 100 * float64(n) / float64(total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// RankedParticipant is one row of a top-N-by-person ranking.
type RankedParticipant struct {
	Key      string  `json:"participant_key"`
	Name     string  `json:"display_name"`
	Sessions int     `json:"sessions"`
	Percent  float64 `json:"percent"`
}

// TopParticipants ranks participants by signup row count within the view
// and returns the top n, sorted by count descending with ties broken by
// ascending identity key. Percentages are shares of all identity-bearing
// rows in the view. n <= 0 means no truncation.
func TopParticipants(rows []model.Participant, n int) []RankedParticipant {
	counts := make(map[string]int)
	names := make(map[string]string)
	total := 0
	for _, p := range rows {
		if p.Key == "" {
			continue
		}
		if _, seen := counts[p.Key]; !seen {
			names[p.Key] = p.DisplayName
		}
		counts[p.Key]++
		total++
	}

	out := make([]RankedParticipant, 0, len(counts))
	for k, c := range counts {
		out = append(out, RankedParticipant{
			Key:      k,
			Name:     names[k],
			Sessions: c,
			Percent:  100 * float64(c) / float64(total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sessions != out[j].Sessions {
			return out[i].Sessions > out[j].Sessions
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ScoreBucket is one bar of a rating distribution.
type ScoreBucket struct {
	Score   float64 `json:"score"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Distribution buckets a rating field by value rounded to the given number
// of decimal places and counts occurrences per bucket, sorted by score
// ascending. Rows with a nil rating are excluded from both the counts and
// the percentage denominator. An empty or all-nil view yields an empty
// table.
func Distribution[T any](rows []T, decimals int, metric func(T) *float64) []ScoreBucket {
	factor := math.Pow(10, float64(decimals))
	counts := make(map[float64]int)
	total := 0
	for _, r := range rows {
		v := metric(r)
		if v == nil {
			continue
		}
		score := math.Round(*v*factor) / factor
		counts[score]++
		total++
	}

	out := make([]ScoreBucket, 0, len(counts))
	for score, n := range counts {
		out = append(out, ScoreBucket{
			Score:   score,
			Count:   n,
			Percent: 100 * float64(n) / float64(total),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// Metric names one numeric field for a time-series aggregation.
type Metric[T any] struct {
	Name  string
	Value func(T) *float64
}

// SeriesPoint is one group of a multi-metric time series: per-metric means
// and response counts for a session label.
type SeriesPoint struct {
	Label  string             `json:"label"`
	Date   *time.Time         `json:"date,omitempty"`
	Means  map[string]float64 `json:"means"`
	Counts map[string]int     `json:"counts"`
}

// SeriesBy groups rows by label and computes the mean of each metric per
// group, excluding nil values. Points are ordered by each group's earliest
// timestamp ascending (not by label text), undated groups last by label, so
// chart ordering is chronological and invariant under input row order.
// Rows with an empty label are dropped.
func SeriesBy[T any](rows []T, label func(T) string, when func(T) *time.Time, metrics []Metric[T]) []SeriesPoint {
	type group struct {
		earliest *time.Time
		rows     []T
	}
	groups := make(map[string]*group)
	var order []string

	for _, r := range rows {
		l := label(r)
		if l == "" {
			continue
		}
		g, ok := groups[l]
		if !ok {
			g = &group{}
			groups[l] = g
			order = append(order, l)
		}
		if t := when(r); t != nil && (g.earliest == nil || t.Before(*g.earliest)) {
			g.earliest = t
		}
		g.rows = append(g.rows, r)
	}

	out := make([]SeriesPoint, 0, len(order))
	for _, l := range order {
		g := groups[l]
		means := make(map[string]float64, len(metrics))
		counts := make(map[string]int, len(metrics))
		for _, m := range metrics {
			sum, n := 0.0, 0
			for _, r := range g.rows {
				if v := m.Value(r); v != nil {
					sum += *v
					n++
				}
			}
			if n > 0 {
				means[m.Name] = sum / float64(n)
				counts[m.Name] = n
			}
		}
		out = append(out, SeriesPoint{Label: l, Date: g.earliest, Means: means, Counts: counts})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if earlier(out[i].Date, out[j].Date) {
			return true
		}
		if earlier(out[j].Date, out[i].Date) {
			return false
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Mean averages a rating field over the view, excluding nil values.
// Returns nil when no row carries a value.
func Mean[T any](rows []T, metric func(T) *float64) *float64 {
	sum, n := 0.0, 0
	for _, r := range rows {
		if v := metric(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}

// Share returns the proportion of view rows matching the predicate, or nil
// for an empty view.
func Share[T any](rows []T, pred func(T) bool) *float64 {
	if len(rows) == 0 {
		return nil
	}
	n := 0
	for _, r := range rows {
		if pred(r) {
			n++
		}
	}
	s := float64(n) / float64(len(rows))
	return &s
}
