package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keminggris/survey-cli/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Report.TopParticipants = 10
	cfg.Report.TopMotivations = 20
	cfg.Report.TopThemes = 15
	return cfg
}

func runReport(t *testing.T, run func() error, output string) map[string]any {
	t.Helper()
	require.NoError(t, run())

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var decoded struct {
		Kind string         `json:"kind"`
		Body map[string]any `json:"body"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	return decoded.Body
}

func TestParticipantsCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "participants.csv")
	require.NoError(t, os.WriteFile(source, []byte(
		"Timestamp,Name,Email,English Level,Session Type\n"+
			"1/5/2025 10:00:00,Ana,A@x.com,B2,Friday conversation\n"+
			"1/6/2025 11:00:00,Ana,a@x.com ,B2,Friday conversation\n"+
			"1/7/2025 12:00:00,Bela,b@x.com,C1,Regular weekly\n",
	), 0o644))

	cfg = testConfig()
	participantsCSV = source
	participantsDay = "All"
	participantsUnique = false
	participantsTop = 0
	participantsOutput = filepath.Join(dir, "report.json")

	body := runReport(t, func() error { return participantsCmd.RunE(participantsCmd, nil) }, participantsOutput)

	assert.Equal(t, float64(3), body["signups"])
	// Case and padding variants of a@x.com are one person.
	assert.Equal(t, float64(2), body["unique_participants"])
	assert.Equal(t, "B2", body["top_english_level"])

	types, ok := body["session_types"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, types)
	first := types[0].(map[string]any)
	assert.Equal(t, "Friday", first["label"])
	assert.Equal(t, float64(2), first["count"])
}

func TestParticipantsCommandUniqueFriday(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "participants.csv")
	require.NoError(t, os.WriteFile(source, []byte(
		"Timestamp,Name,Email,Session Type\n"+
			"1/5/2025 10:00:00,Ana,a@x.com,Friday conversation\n"+
			"1/12/2025 10:00:00,Ana,a@x.com,Friday conversation\n"+
			"1/6/2025 11:00:00,Bela,b@x.com,Regular weekly\n",
	), 0o644))

	cfg = testConfig()
	participantsCSV = source
	participantsDay = "Friday"
	participantsUnique = true
	participantsTop = 0
	participantsOutput = filepath.Join(dir, "report.json")

	body := runReport(t, func() error { return participantsCmd.RunE(participantsCmd, nil) }, participantsOutput)

	assert.Equal(t, float64(1), body["signups"])
	assert.Equal(t, float64(1), body["unique_participants"])
}

func TestFeedbackCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "feedback.csv")
	require.NoError(t, os.WriteFile(source, []byte(
		"Session,Overall,Confidence,Interested Next,Themes\n"+
			"\"Friday, 3 January 2025\",5,4,Yes,Pacing; Content\n"+
			"\"Friday, 10 January 2025\",3,,no,Pacing\n",
	), 0o644))

	cfg = testConfig()
	feedbackCSV = source
	feedbackDay = "All"
	feedbackDates = nil
	feedbackOutput = filepath.Join(dir, "report.json")

	body := runReport(t, func() error { return feedbackCmd.RunE(feedbackCmd, nil) }, feedbackOutput)

	assert.Equal(t, float64(2), body["responses"])
	assert.InDelta(t, 4, body["avg_overall"].(float64), 1e-9)
	// One of two responses answered Yes.
	assert.InDelta(t, 50, body["interested_yes_pct"].(float64), 1e-9)

	themes, ok := body["top_themes"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, themes)
	top := themes[0].(map[string]any)
	assert.Equal(t, "Pacing", top["tag"])
	assert.Equal(t, float64(2), top["count"])

	// Nil confidence excluded from its distribution entirely.
	dist, ok := body["confidence_dist"].([]any)
	require.True(t, ok)
	require.Len(t, dist, 1)
	bucket := dist[0].(map[string]any)
	assert.Equal(t, float64(100), bucket["percent"])
}

func TestModeratorsCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "moderator_feedback.csv")
	require.NoError(t, os.WriteFile(source, []byte(
		"Session,Moderator,Overall,Engagement,Concerns\n"+
			"\"Friday, 3 January 2025\",Ben,5,4,\n"+
			"\"Friday, 10 January 2025\",Cara,3,3,Low attendance\n",
	), 0o644))

	cfg = testConfig()
	moderatorsCSV = source
	moderatorsDay = "All"
	moderatorsDates = nil
	moderatorsName = ""
	moderatorsOutput = filepath.Join(dir, "report.json")

	body := runReport(t, func() error { return moderatorsCmd.RunE(moderatorsCmd, nil) }, moderatorsOutput)

	assert.Equal(t, float64(2), body["responses"])
	assert.InDelta(t, 4, body["avg_overall"].(float64), 1e-9)

	concerns, ok := body["concerns"].([]any)
	require.True(t, ok)
	require.Len(t, concerns, 1)
	row := concerns[0].(map[string]any)
	assert.Equal(t, "Cara", row["moderator"])
	assert.Equal(t, "Low attendance", row["concerns"])
}
