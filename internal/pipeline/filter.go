package pipeline

import (
	"time"

	"github.com/keminggris/survey-cli/internal/model"
)

// AllSessions is the sentinel session-label selection meaning "no
// restriction".
const AllSessions = "All"

// Criteria is a composable set of view filters. Filters compose
// conjunctively and the final row set is independent of application order.
// Zero values disable the corresponding filter.
type Criteria struct {
	// Day keeps rows whose normalized day bucket matches exactly.
	Day model.SessionDay `json:"day,omitempty"`
	// Sessions keeps rows whose session label is in the set. An empty set
	// or one containing AllSessions disables the restriction.
	Sessions []string `json:"sessions,omitempty"`
	// Moderator keeps rows mentioning the given moderator.
	Moderator string `json:"moderator,omitempty"`
	// Unique keeps one row per participant key: the earliest by timestamp,
	// rows without a timestamp sorting last. Applied after the other
	// filters so "earliest" means earliest within the filtered scope.
	Unique bool `json:"unique,omitempty"`
}

// rowInfo is the accessor view filters and dedup need over any record kind.
type rowInfo struct {
	label     string
	day       model.SessionDay
	at        *time.Time
	key       string
	moderator string
}

func participantInfo(p model.Participant) rowInfo {
	return rowInfo{day: p.SessionType, at: p.Timestamp, key: p.Key}
}

func feedbackInfo(f model.SessionFeedback) rowInfo {
	return rowInfo{label: f.Session, day: f.SessionDay, at: f.Date, moderator: f.ModeratorName}
}

func moderatorInfo(m model.ModeratorFeedback) rowInfo {
	return rowInfo{label: m.Session, day: m.SessionDay, at: m.Date, moderator: m.ModeratorName}
}

// FilterParticipants returns the view of signups matching the criteria.
func FilterParticipants(rows []model.Participant, c Criteria) []model.Participant {
	return applyFilter(rows, c, participantInfo)
}

// FilterFeedback returns the view of session feedback matching the criteria.
func FilterFeedback(rows []model.SessionFeedback, c Criteria) []model.SessionFeedback {
	return applyFilter(rows, c, feedbackInfo)
}

// FilterModerators returns the view of moderator feedback matching the
// criteria.
func FilterModerators(rows []model.ModeratorFeedback, c Criteria) []model.ModeratorFeedback {
	return applyFilter(rows, c, moderatorInfo)
}

func applyFilter[T any](rows []T, c Criteria, info func(T) rowInfo) []T {
	sessions := sessionSet(c.Sessions)

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		ri := info(r)
		if c.Day != "" && ri.day != c.Day {
			continue
		}
		if sessions != nil && !sessions[ri.label] {
			continue
		}
		if c.Moderator != "" && ri.moderator != c.Moderator {
			continue
		}
		out = append(out, r)
	}

	if c.Unique {
		out = dedupEarliest(out, info)
	}
	return out
}

// sessionSet builds the membership set, or nil when the selection imposes
// no restriction.
func sessionSet(sel []string) map[string]bool {
	if len(sel) == 0 {
		return nil
	}
	set := make(map[string]bool, len(sel))
	for _, s := range sel {
		if s == AllSessions {
			return nil
		}
		set[s] = true
	}
	return set
}

// dedupEarliest keeps the earliest row per identity key. Rows without a
// timestamp sort after dated ones; among equals the first-seen row wins.
// Rows with no identity key are excluded, since uniqueness is an
// identity-scoped operation. Output preserves first-seen key order.
func dedupEarliest[T any](rows []T, info func(T) rowInfo) []T {
	type candidate struct {
		idx int
		at  *time.Time
	}
	best := make(map[string]candidate)
	var order []string

	for i, r := range rows {
		ri := info(r)
		if ri.key == "" {
			continue
		}
		cur, ok := best[ri.key]
		if !ok {
			best[ri.key] = candidate{idx: i, at: ri.at}
			order = append(order, ri.key)
			continue
		}
		if earlier(ri.at, cur.at) {
			best[ri.key] = candidate{idx: i, at: ri.at}
		}
	}

	out := make([]T, 0, len(order))
	for _, k := range order {
		out = append(out, rows[best[k].idx])
	}
	return out
}

// earlier reports whether a sorts strictly before b, with nil timestamps
// sorting last.
func earlier(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}
