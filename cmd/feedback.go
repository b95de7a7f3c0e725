package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keminggris/survey-cli/internal/model"
	"github.com/keminggris/survey-cli/internal/pipeline"
)

var (
	feedbackCSV    string
	feedbackDay    string
	feedbackDates  []string
	feedbackOutput string
)

// feedbackBody is the session feedback report payload.
type feedbackBody struct {
	Responses int `json:"responses"`

	AvgOverall     *float64 `json:"avg_overall,omitempty"`
	AvgConfidence  *float64 `json:"avg_confidence,omitempty"`
	AvgComfortable *float64 `json:"avg_comfortable,omitempty"`

	InterestedYesPct *float64 `json:"interested_yes_pct,omitempty"`

	OverallDist     []pipeline.ScoreBucket `json:"overall_dist"`
	ConfidenceDist  []pipeline.ScoreBucket `json:"confidence_dist"`
	ComfortableDist []pipeline.ScoreBucket `json:"comfortable_dist"`

	InterestCounts   []pipeline.GroupCount  `json:"interest_counts"`
	SentimentCounts  []pipeline.GroupCount  `json:"sentiment_counts"`
	TopThemes        []pipeline.TagCount    `json:"top_themes"`
	RatingsBySession []pipeline.SeriesPoint `json:"ratings_by_session"`

	ModeratorSentiments []pipeline.GroupCount `json:"moderator_sentiments"`
	ModeratorMentions   []pipeline.GroupCount `json:"moderator_mentions"`
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Report on session feedback",
	Long: `Normalizes the session feedback export and reports rating averages and
distributions, interest to return, suggestion sentiment, themes, and
per-session rating trends under the selected filters.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		day, err := parseDay(feedbackDay)
		if err != nil {
			return err
		}

		loader, err := newLoader()
		if err != nil {
			return err
		}

		path := feedbackCSV
		if path == "" {
			path = cfg.Sources.Feedback
		}
		rows, err := loader.Feedback(path)
		if err != nil {
			return eris.Wrap(err, "feedback: load source")
		}

		criteria := pipeline.Criteria{Day: day, Sessions: feedbackDates}
		view := pipeline.FilterFeedback(rows, criteria)

		themeLists := make([][]string, len(view))
		for i, f := range view {
			themeLists[i] = f.Themes
		}

		yes := pipeline.Share(view, func(f model.SessionFeedback) bool { return f.Interested == model.InterestYes })
		if yes != nil {
			pct := *yes * 100
			yes = &pct
		}

		body := feedbackBody{
			Responses: len(view),

			AvgOverall:     pipeline.Mean(view, overall),
			AvgConfidence:  pipeline.Mean(view, confidence),
			AvgComfortable: pipeline.Mean(view, comfortable),

			InterestedYesPct: yes,

			OverallDist:     pipeline.Distribution(view, 1, overall),
			ConfidenceDist:  pipeline.Distribution(view, 1, confidence),
			ComfortableDist: pipeline.Distribution(view, 1, comfortable),

			InterestCounts:  pipeline.CountBy(view, "", func(f model.SessionFeedback) string { return string(f.Interested) }),
			SentimentCounts: pipeline.CountBy(view, "", func(f model.SessionFeedback) string { return string(f.Sentiment) }),
			TopThemes:       topTags(pipeline.CountTags(themeLists), cfg.Report.TopThemes),

			RatingsBySession: pipeline.SeriesBy(view,
				func(f model.SessionFeedback) string { return f.Session },
				func(f model.SessionFeedback) *time.Time { return f.Date },
				[]pipeline.Metric[model.SessionFeedback]{
					{Name: "overall", Value: overall},
					{Name: "confidence", Value: confidence},
					{Name: "comfortable", Value: comfortable},
				},
			),

			ModeratorSentiments: pipeline.CountBy(view, "", func(f model.SessionFeedback) string { return string(f.ModeratorSentiment) }),
			ModeratorMentions:   pipeline.CountBy(view, "", func(f model.SessionFeedback) string { return f.ModeratorName }),
		}

		zap.L().Info("feedback report",
			zap.String("source", path),
			zap.Int("responses", body.Responses),
		)

		return writeReport(newReport("feedback", path, criteria, body), feedbackOutput)
	},
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackCSV, "csv", "", "feedback export path (default: sources.feedback config)")
	feedbackCmd.Flags().StringVar(&feedbackDay, "day", "All", "session day filter: All, Friday, Regular, or Other")
	feedbackCmd.Flags().StringSliceVar(&feedbackDates, "dates", nil, "session labels to include (default: all; \"All\" disables)")
	feedbackCmd.Flags().StringVar(&feedbackOutput, "output", "", "write report JSON to file (default: stdout)")
	rootCmd.AddCommand(feedbackCmd)
}

func overall(f model.SessionFeedback) *float64     { return f.Overall }
func confidence(f model.SessionFeedback) *float64  { return f.Confidence }
func comfortable(f model.SessionFeedback) *float64 { return f.Comfortable }
