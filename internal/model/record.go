package model

import "time"

// SessionDay is the normalized session type bucket.
type SessionDay string

const (
	DayFriday  SessionDay = "Friday"
	DayRegular SessionDay = "Regular"
	DayOther   SessionDay = "Other"
)

// Sentiment is the normalized sentiment label of a free-text suggestion.
type Sentiment string

const (
	SentimentPositive     Sentiment = "Positive"
	SentimentNeutral      Sentiment = "Neutral"
	SentimentNegative     Sentiment = "Negative"
	SentimentConstructive Sentiment = "Constructive"
	SentimentUnknown      Sentiment = "Unknown"
)

// Interest is the normalized answer to "interested in joining the next session?".
type Interest string

const (
	InterestYes     Interest = "Yes"
	InterestNo      Interest = "No"
	InterestUnknown Interest = "Unknown"
)

// Participant is one normalized signup row. Timestamp is nil when the source
// value was absent or unparseable; Month is empty in that case.
type Participant struct {
	Timestamp       *time.Time `json:"timestamp,omitempty"`
	Month           string     `json:"month,omitempty"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	EmailAlt        string     `json:"email_alt,omitempty"`
	Instagram       string     `json:"instagram,omitempty"`
	EnglishLevel    string     `json:"english_level,omitempty"`
	Motivation      string     `json:"motivation,omitempty"`
	DiscoverySource string     `json:"discovery_source,omitempty"`
	TopicSuggestion string     `json:"topic_suggestion,omitempty"`
	SessionsJoining string     `json:"sessions_joining,omitempty"`
	SessionTypeRaw  string     `json:"session_type_raw,omitempty"`

	// Derived fields, never read from the source.
	SessionType SessionDay `json:"session_type"`
	Key         string     `json:"participant_key"`
	DisplayName string     `json:"display_name"`
}

// SessionFeedback is one normalized session feedback response. Rating
// pointers are nil when the source value was absent (missing, not zero).
type SessionFeedback struct {
	Session    string     `json:"session"`
	SessionDay SessionDay `json:"session_day"`
	Date       *time.Time `json:"date,omitempty"`

	Overall     *float64 `json:"overall,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
	Comfortable *float64 `json:"comfortable,omitempty"`

	InterestedRaw string   `json:"interested_raw,omitempty"`
	Interested    Interest `json:"interested"`

	Suggestion string    `json:"suggestion,omitempty"`
	Sentiment  Sentiment `json:"sentiment"`
	ThemesRaw  string    `json:"themes_raw,omitempty"`
	Themes     []string  `json:"themes,omitempty"`

	ModeratorName       string    `json:"moderator_name,omitempty"`
	ModeratorSentiment  Sentiment `json:"moderator_sentiment"`
	ModeratorSuggestion string    `json:"moderator_suggestion,omitempty"`
}

// ModeratorFeedback is one normalized moderator feedback response.
type ModeratorFeedback struct {
	Session    string     `json:"session"`
	SessionDay SessionDay `json:"session_day"`
	Date       *time.Time `json:"date,omitempty"`

	ModeratorName string `json:"moderator_name,omitempty"`

	Overall          *float64 `json:"overall,omitempty"`
	TimeAllocation   *float64 `json:"time_allocation,omitempty"`
	ConversationFlow *float64 `json:"conversation_flow,omitempty"`
	Engagement       *float64 `json:"engagement,omitempty"`

	Concerns string `json:"concerns,omitempty"`
}
