package pipeline

import (
	"go.uber.org/zap"

	"github.com/keminggris/survey-cli/internal/model"
)

// participantAliases maps accepted header spellings (lowercased) to
// canonical participant fields. Signup sheets arrive with capitalized,
// lowercased, and long-form question headers depending on who exported them.
var participantAliases = map[string]string{
	"timestamp":        "timestamp",
	"name":             "name",
	"full name":        "name",
	"email":            "email",
	"email address":    "email_address",
	"email_address":    "email_address",
	"instagram":        "instagram",
	"instagram handle": "instagram",
	"english level":    "english_level",
	"english_level":    "english_level",
	"motivation":       "motivation",
	"discovery source": "discovery_source",
	"discovery_source": "discovery_source",
	"topic suggestion": "topic_suggestion",
	"topic_suggestion": "topic_suggestion",
	"sessions joining": "sessions_joining",
	"sessions_joining": "sessions_joining",
	"session type":     "session_type",
	"session_type":     "session_type",
}

// parseParticipants normalizes raw signup rows. A row with no usable
// identity field (no email, handle, or name) is excluded entirely; all
// other malformed values degrade to empty or nil and keep the row.
func parseParticipants(header []string, rows [][]string, cls classifiers) []model.Participant {
	idx := headerIndex(header, participantAliases)

	out := make([]model.Participant, 0, len(rows))
	var dropped int
	for _, row := range rows {
		name := getCol(row, idx, "name")
		email := getCol(row, idx, "email")
		emailAlt := getCol(row, idx, "email_address")
		instagram := getCol(row, idx, "instagram")

		key := model.ResolveKey(email, emailAlt, instagram, name)
		if key == "" {
			dropped++
			continue
		}

		ts := parseTime(getCol(row, idx, "timestamp"))
		sessionTypeRaw := getCol(row, idx, "session_type")

		out = append(out, model.Participant{
			Timestamp:       ts,
			Month:           monthBucket(ts),
			Name:            name,
			Email:           email,
			EmailAlt:        emailAlt,
			Instagram:       instagram,
			EnglishLevel:    getCol(row, idx, "english_level"),
			Motivation:      getCol(row, idx, "motivation"),
			DiscoverySource: getCol(row, idx, "discovery_source"),
			TopicSuggestion: getCol(row, idx, "topic_suggestion"),
			SessionsJoining: getCol(row, idx, "sessions_joining"),
			SessionTypeRaw:  sessionTypeRaw,

			SessionType: model.SessionDay(cls.sessionType.Classify(sessionTypeRaw)),
			Key:         key,
			DisplayName: model.DisplayNameFor(name, email, emailAlt),
		})
	}

	if dropped > 0 {
		zap.L().Debug("pipeline: dropped signups with no identity field",
			zap.Int("dropped", dropped),
		)
	}
	return out
}
