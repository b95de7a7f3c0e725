package pipeline

import (
	"sort"
	"strings"
)

// tagDelimiter joins multi-value survey answers ("Pacing; Content").
const tagDelimiter = ";"

// SplitTags splits a delimiter-joined multi-value field into individual
// tags. Pieces are trimmed and empty pieces dropped, so an empty field
// yields zero tags rather than a placeholder.
func SplitTags(s string) []string {
	var tags []string
	for _, piece := range strings.Split(s, tagDelimiter) {
		if t := strings.TrimSpace(piece); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// TagCount is one row of a tag frequency table.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CountTags flattens per-record tag lists into a single frequency table
// sorted descending by count. Ties keep first-seen input order, so the
// table is stable under recount.
func CountTags(lists [][]string) []TagCount {
	counts := make(map[string]int)
	var ordered []string
	for _, tags := range lists {
		for _, t := range tags {
			if _, seen := counts[t]; !seen {
				ordered = append(ordered, t)
			}
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(ordered))
	for _, t := range ordered {
		out = append(out, TagCount{Tag: t, Count: counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
