package main

import (
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keminggris/survey-cli/internal/model"
	"github.com/keminggris/survey-cli/internal/pipeline"
)

var (
	moderatorsCSV    string
	moderatorsDay    string
	moderatorsDates  []string
	moderatorsName   string
	moderatorsOutput string
)

// concernRow is one raised concern in the moderators report.
type concernRow struct {
	Session   string `json:"session"`
	Moderator string `json:"moderator"`
	Concerns  string `json:"concerns"`
}

// moderatorsBody is the moderator feedback report payload.
type moderatorsBody struct {
	Responses int `json:"responses"`

	AvgOverall          *float64 `json:"avg_overall,omitempty"`
	AvgTimeAllocation   *float64 `json:"avg_time_allocation,omitempty"`
	AvgConversationFlow *float64 `json:"avg_conversation_flow,omitempty"`
	AvgEngagement       *float64 `json:"avg_engagement,omitempty"`

	Attendance []pipeline.GroupCount `json:"attendance"`

	OverallDist          []pipeline.ScoreBucket `json:"overall_dist"`
	TimeAllocationDist   []pipeline.ScoreBucket `json:"time_allocation_dist"`
	ConversationFlowDist []pipeline.ScoreBucket `json:"conversation_flow_dist"`
	EngagementDist       []pipeline.ScoreBucket `json:"engagement_dist"`

	RatingsBySession []pipeline.SeriesPoint `json:"ratings_by_session"`
	Concerns         []concernRow           `json:"concerns"`
}

var moderatorsCmd = &cobra.Command{
	Use:   "moderators",
	Short: "Report on moderator feedback",
	Long: `Normalizes the moderator feedback export and reports rating averages and
distributions, attendance, per-session rating trends, and raised concerns
under the selected filters.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		day, err := parseDay(moderatorsDay)
		if err != nil {
			return err
		}

		loader, err := newLoader()
		if err != nil {
			return err
		}

		path := moderatorsCSV
		if path == "" {
			path = cfg.Sources.Moderators
		}
		rows, err := loader.Moderators(path)
		if err != nil {
			return eris.Wrap(err, "moderators: load source")
		}

		criteria := pipeline.Criteria{Day: day, Sessions: moderatorsDates, Moderator: moderatorsName}
		view := pipeline.FilterModerators(rows, criteria)

		body := moderatorsBody{
			Responses: len(view),

			AvgOverall:          pipeline.Mean(view, modOverall),
			AvgTimeAllocation:   pipeline.Mean(view, timeAllocation),
			AvgConversationFlow: pipeline.Mean(view, conversationFlow),
			AvgEngagement:       pipeline.Mean(view, engagement),

			Attendance: pipeline.CountBy(view, "", func(m model.ModeratorFeedback) string { return m.ModeratorName }),

			OverallDist:          pipeline.Distribution(view, 0, modOverall),
			TimeAllocationDist:   pipeline.Distribution(view, 0, timeAllocation),
			ConversationFlowDist: pipeline.Distribution(view, 0, conversationFlow),
			EngagementDist:       pipeline.Distribution(view, 0, engagement),

			RatingsBySession: pipeline.SeriesBy(view,
				func(m model.ModeratorFeedback) string { return m.Session },
				func(m model.ModeratorFeedback) *time.Time { return m.Date },
				[]pipeline.Metric[model.ModeratorFeedback]{
					{Name: "overall", Value: modOverall},
					{Name: "time_allocation", Value: timeAllocation},
					{Name: "conversation_flow", Value: conversationFlow},
					{Name: "engagement", Value: engagement},
				},
			),

			Concerns: concernRows(view),
		}

		zap.L().Info("moderators report",
			zap.String("source", path),
			zap.Int("responses", body.Responses),
		)

		return writeReport(newReport("moderators", path, criteria, body), moderatorsOutput)
	},
}

func init() {
	moderatorsCmd.Flags().StringVar(&moderatorsCSV, "csv", "", "moderator export path (default: sources.moderators config)")
	moderatorsCmd.Flags().StringVar(&moderatorsDay, "day", "All", "session day filter: All, Friday, Regular, or Other")
	moderatorsCmd.Flags().StringSliceVar(&moderatorsDates, "dates", nil, "session labels to include (default: all; \"All\" disables)")
	moderatorsCmd.Flags().StringVar(&moderatorsName, "moderator", "", "moderator name filter (default: all)")
	moderatorsCmd.Flags().StringVar(&moderatorsOutput, "output", "", "write report JSON to file (default: stdout)")
	rootCmd.AddCommand(moderatorsCmd)
}

// concernRows lists non-empty concerns, most recent session first.
func concernRows(view []model.ModeratorFeedback) []concernRow {
	withConcerns := make([]model.ModeratorFeedback, 0, len(view))
	for _, m := range view {
		if m.Concerns != "" {
			withConcerns = append(withConcerns, m)
		}
	}
	sort.SliceStable(withConcerns, func(i, j int) bool {
		a, b := withConcerns[i], withConcerns[j]
		if a.Date != nil && b.Date != nil && !a.Date.Equal(*b.Date) {
			return a.Date.After(*b.Date)
		}
		if (a.Date != nil) != (b.Date != nil) {
			return a.Date != nil
		}
		return a.Session > b.Session
	})

	out := make([]concernRow, len(withConcerns))
	for i, m := range withConcerns {
		out[i] = concernRow{Session: m.Session, Moderator: m.ModeratorName, Concerns: m.Concerns}
	}
	return out
}

func modOverall(m model.ModeratorFeedback) *float64       { return m.Overall }
func timeAllocation(m model.ModeratorFeedback) *float64   { return m.TimeAllocation }
func conversationFlow(m model.ModeratorFeedback) *float64 { return m.ConversationFlow }
func engagement(m model.ModeratorFeedback) *float64       { return m.Engagement }
