package pipeline

import (
	"strconv"
	"strings"
	"time"
)

// sessionLabelLayout is how session dates are written in feedback exports,
// e.g. "Friday, 3 January 2025".
const sessionLabelLayout = "Monday, 2 January 2006"

// timeLayouts are tried in order by parseTime. Form exports are the common
// case; ISO variants show up when sheets are edited by hand.
var timeLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
	"1/2/2006",
	sessionLabelLayout,
}

// parseTime parses a timestamp with a tolerant multi-layout parser.
// Unparseable or empty values become nil, never an error: the row is kept
// and the field is nulled.
func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// monthBucket truncates a timestamp to year-month granularity ("2025-01").
// A nil timestamp yields "".
func monthBucket(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01")
}

// ratingScaleMin and ratingScaleMax bound all survey rating fields.
const (
	ratingScaleMin = 1
	ratingScaleMax = 5
)

// parseRating parses a 1-5 rating. Empty, non-numeric, and out-of-range
// values become nil (absent means missing, never zero), so downstream means
// and percentages exclude them instead of skewing toward zero.
func parseRating(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < ratingScaleMin || v > ratingScaleMax {
		return nil
	}
	return &v
}
