package pipeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/keminggris/survey-cli/internal/model"
)

func ts(day int) *time.Time {
	t := time.Date(2025, 1, day, 10, 0, 0, 0, time.UTC)
	return &t
}

func signup(key string, at *time.Time, day model.SessionDay) model.Participant {
	return model.Participant{Key: key, Timestamp: at, SessionType: day}
}

func response(session string, day model.SessionDay, moderator string) model.SessionFeedback {
	return model.SessionFeedback{Session: session, SessionDay: day, Date: parseTime(session), ModeratorName: moderator}
}

func TestFilterFeedbackConjunction(t *testing.T) {
	rows := []model.SessionFeedback{
		response("Friday, 3 January 2025", model.DayFriday, "Ben"),
		response("Friday, 10 January 2025", model.DayFriday, "Cara"),
		response("Monday, 6 January 2025", model.DayRegular, "Ben"),
	}

	got := FilterFeedback(rows, Criteria{Day: model.DayFriday, Moderator: "Ben"})
	if len(got) != 1 || got[0].Session != "Friday, 3 January 2025" {
		t.Fatalf("FilterFeedback = %v, want the one Friday/Ben row", got)
	}
}

func TestFilterOrderIndependent(t *testing.T) {
	rows := []model.SessionFeedback{
		response("Friday, 3 January 2025", model.DayFriday, "Ben"),
		response("Friday, 10 January 2025", model.DayFriday, "Cara"),
		response("Monday, 6 January 2025", model.DayRegular, "Ben"),
		response("Monday, 13 January 2025", model.DayRegular, "Cara"),
	}

	combined := FilterFeedback(rows, Criteria{Day: model.DayFriday, Sessions: []string{"Friday, 10 January 2025", "Monday, 6 January 2025"}})
	dayFirst := FilterFeedback(FilterFeedback(rows, Criteria{Day: model.DayFriday}), Criteria{Sessions: []string{"Friday, 10 January 2025", "Monday, 6 January 2025"}})
	sessionsFirst := FilterFeedback(FilterFeedback(rows, Criteria{Sessions: []string{"Friday, 10 January 2025", "Monday, 6 January 2025"}}), Criteria{Day: model.DayFriday})

	if !reflect.DeepEqual(combined, dayFirst) || !reflect.DeepEqual(combined, sessionsFirst) {
		t.Errorf("filter application order changed the view:\ncombined: %v\nday first: %v\nsessions first: %v", combined, dayFirst, sessionsFirst)
	}
	if len(combined) != 1 || combined[0].Session != "Friday, 10 January 2025" {
		t.Errorf("combined = %v, want only Friday, 10 January 2025", combined)
	}
}

func TestSessionSetAllSentinel(t *testing.T) {
	rows := []model.SessionFeedback{
		response("Friday, 3 January 2025", model.DayFriday, ""),
		response("Monday, 6 January 2025", model.DayRegular, ""),
	}

	if got := FilterFeedback(rows, Criteria{Sessions: []string{AllSessions}}); len(got) != len(rows) {
		t.Errorf("Sessions [All] filtered rows: got %d, want %d", len(got), len(rows))
	}
	// The sentinel disables the restriction even mixed with real labels.
	if got := FilterFeedback(rows, Criteria{Sessions: []string{"Friday, 3 January 2025", AllSessions}}); len(got) != len(rows) {
		t.Errorf("Sessions with All sentinel filtered rows: got %d, want %d", len(got), len(rows))
	}
	if got := FilterFeedback(rows, Criteria{Sessions: nil}); len(got) != len(rows) {
		t.Errorf("empty Sessions filtered rows: got %d, want %d", len(got), len(rows))
	}
}

func TestZeroCriteriaKeepsAll(t *testing.T) {
	rows := []model.Participant{
		signup("a@x.com", ts(5), model.DayFriday),
		signup("", nil, model.DayOther),
	}
	got := FilterParticipants(rows, Criteria{})
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("zero criteria changed the view: %v", got)
	}
}

func TestUniqueKeepsEarliestPerKey(t *testing.T) {
	rows := []model.Participant{
		signup("a@x.com", ts(10), model.DayFriday),
		signup("b@x.com", ts(7), model.DayFriday),
		signup("a@x.com", ts(3), model.DayFriday),
		signup("a@x.com", ts(20), model.DayFriday),
	}

	got := FilterParticipants(rows, Criteria{Unique: true})
	if len(got) != 2 {
		t.Fatalf("unique view has %d rows, want 2", len(got))
	}
	// First-seen key order, earliest row per key.
	if got[0].Key != "a@x.com" || !got[0].Timestamp.Equal(*ts(3)) {
		t.Errorf("got[0] = %v %v, want a@x.com at Jan 3", got[0].Key, got[0].Timestamp)
	}
	if got[1].Key != "b@x.com" || !got[1].Timestamp.Equal(*ts(7)) {
		t.Errorf("got[1] = %v %v, want b@x.com at Jan 7", got[1].Key, got[1].Timestamp)
	}
}

func TestUniqueNilTimestampsSortLast(t *testing.T) {
	rows := []model.Participant{
		signup("a@x.com", nil, model.DayFriday),
		signup("a@x.com", ts(10), model.DayFriday),
	}
	got := FilterParticipants(rows, Criteria{Unique: true})
	if len(got) != 1 || got[0].Timestamp == nil {
		t.Fatalf("unique view = %v, want the dated row", got)
	}

	// All-nil ties keep the first-seen row.
	rows = []model.Participant{
		{Key: "a@x.com", Name: "first"},
		{Key: "a@x.com", Name: "second"},
	}
	got = FilterParticipants(rows, Criteria{Unique: true})
	if len(got) != 1 || got[0].Name != "first" {
		t.Fatalf("unique view = %v, want the first-seen row", got)
	}
}

func TestUniqueAppliedAfterOtherFilters(t *testing.T) {
	// The globally earliest a@x.com row is an Other-day signup; within the
	// Friday scope the Jan 8 row is the earliest and must be the survivor.
	rows := []model.Participant{
		signup("a@x.com", ts(1), model.DayOther),
		signup("a@x.com", ts(12), model.DayFriday),
		signup("a@x.com", ts(8), model.DayFriday),
	}
	got := FilterParticipants(rows, Criteria{Day: model.DayFriday, Unique: true})
	if len(got) != 1 || !got[0].Timestamp.Equal(*ts(8)) {
		t.Fatalf("unique view = %v, want the Jan 8 Friday row", got)
	}
}

func TestUniqueExcludesKeylessRows(t *testing.T) {
	rows := []model.Participant{
		signup("", ts(1), model.DayFriday),
		signup("a@x.com", ts(2), model.DayFriday),
	}
	got := FilterParticipants(rows, Criteria{Unique: true})
	if len(got) != 1 || got[0].Key != "a@x.com" {
		t.Fatalf("unique view = %v, want only the keyed row", got)
	}
}

func TestFilterModerators(t *testing.T) {
	rows := []model.ModeratorFeedback{
		{Session: "Friday, 3 January 2025", SessionDay: model.DayFriday, ModeratorName: "Ben"},
		{Session: "Monday, 6 January 2025", SessionDay: model.DayRegular, ModeratorName: "Cara"},
	}
	got := FilterModerators(rows, Criteria{Moderator: "Cara"})
	if len(got) != 1 || got[0].ModeratorName != "Cara" {
		t.Fatalf("FilterModerators = %v, want only Cara", got)
	}
}
