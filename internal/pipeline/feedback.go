package pipeline

import (
	"github.com/keminggris/survey-cli/internal/model"
)

// feedbackAliases maps accepted header spellings to canonical session
// feedback fields.
var feedbackAliases = map[string]string{
	"session":               "session",
	"session label":         "session",
	"session_label":         "session",
	"session date":          "session",
	"session day":           "session_day",
	"session_day":           "session_day",
	"overall":               "overall",
	"overall rating":        "overall",
	"confidence":            "confidence",
	"confidence rating":     "confidence",
	"comfortable":           "comfortable",
	"comfortable rating":    "comfortable",
	"interested next":       "interested_next",
	"interested_next":       "interested_next",
	"join next session?":    "interested_next",
	"suggestion":            "suggestions",
	"suggestions":           "suggestions",
	"sentiment":             "sentiment",
	"themes":                "themes",
	"theme tags":            "themes",
	"moderator":             "moderator_name",
	"moderator name":        "moderator_name",
	"moderator_name":        "moderator_name",
	"moderator sentiment":   "moderator_sentiment",
	"moderator_sentiment":   "moderator_sentiment",
	"moderator suggestion":  "moderator_suggestions",
	"moderator suggestions": "moderator_suggestions",
	"moderator_suggestions": "moderator_suggestions",
}

// parseFeedback normalizes raw session feedback rows. The session date is
// parsed from the session label; the day bucket prefers the explicit
// session_day column and falls back to the label text (which carries the
// weekday name).
func parseFeedback(header []string, rows [][]string, cls classifiers) []model.SessionFeedback {
	idx := headerIndex(header, feedbackAliases)

	out := make([]model.SessionFeedback, 0, len(rows))
	for _, row := range rows {
		session := getCol(row, idx, "session")

		dayRaw := getCol(row, idx, "session_day")
		if dayRaw == "" {
			dayRaw = session
		}

		interestedRaw := getCol(row, idx, "interested_next")
		themesRaw := getCol(row, idx, "themes")

		out = append(out, model.SessionFeedback{
			Session:    session,
			SessionDay: model.SessionDay(cls.sessionType.Classify(dayRaw)),
			Date:       parseTime(session),

			Overall:     parseRating(getCol(row, idx, "overall")),
			Confidence:  parseRating(getCol(row, idx, "confidence")),
			Comfortable: parseRating(getCol(row, idx, "comfortable")),

			InterestedRaw: interestedRaw,
			Interested:    model.Interest(cls.interest.Classify(interestedRaw)),

			Suggestion: getCol(row, idx, "suggestions"),
			Sentiment:  model.Sentiment(cls.sentiment.Classify(getCol(row, idx, "sentiment"))),
			ThemesRaw:  themesRaw,
			Themes:     SplitTags(themesRaw),

			ModeratorName:       getCol(row, idx, "moderator_name"),
			ModeratorSentiment:  model.Sentiment(cls.sentiment.Classify(getCol(row, idx, "moderator_sentiment"))),
			ModeratorSuggestion: getCol(row, idx, "moderator_suggestions"),
		})
	}
	return out
}
