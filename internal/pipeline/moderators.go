package pipeline

import (
	"github.com/keminggris/survey-cli/internal/model"
)

// moderatorAliases maps accepted header spellings to canonical moderator
// feedback fields.
var moderatorAliases = map[string]string{
	"session":           "session_label",
	"session label":     "session_label",
	"session_label":     "session_label",
	"session day":       "session_day",
	"session_day":       "session_day",
	"moderator":         "moderator_name",
	"moderator name":    "moderator_name",
	"moderator_name":    "moderator_name",
	"overall":           "overall",
	"overall rating":    "overall",
	"time allocation":   "time_allocation",
	"time_allocation":   "time_allocation",
	"conversation flow": "conversation_flow",
	"conversation_flow": "conversation_flow",
	"engagement":        "engagement",
	"concerns":          "concerns",
}

// parseModerators normalizes raw moderator feedback rows.
func parseModerators(header []string, rows [][]string, cls classifiers) []model.ModeratorFeedback {
	idx := headerIndex(header, moderatorAliases)

	out := make([]model.ModeratorFeedback, 0, len(rows))
	for _, row := range rows {
		session := getCol(row, idx, "session_label")

		dayRaw := getCol(row, idx, "session_day")
		if dayRaw == "" {
			dayRaw = session
		}

		out = append(out, model.ModeratorFeedback{
			Session:    session,
			SessionDay: model.SessionDay(cls.sessionType.Classify(dayRaw)),
			Date:       parseTime(session),

			ModeratorName: getCol(row, idx, "moderator_name"),

			Overall:          parseRating(getCol(row, idx, "overall")),
			TimeAllocation:   parseRating(getCol(row, idx, "time_allocation")),
			ConversationFlow: parseRating(getCol(row, idx, "conversation_flow")),
			Engagement:       parseRating(getCol(row, idx, "engagement")),

			Concerns: getCol(row, idx, "concerns"),
		})
	}
	return out
}
