package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keminggris/survey-cli/internal/model"
	"github.com/keminggris/survey-cli/internal/pipeline"
)

var (
	participantsCSV    string
	participantsDay    string
	participantsUnique bool
	participantsTop    int
	participantsOutput string
)

// participantsBody is the participants report payload.
type participantsBody struct {
	Signups            int                          `json:"signups"`
	UniqueParticipants int                          `json:"unique_participants"`
	TopEnglishLevel    string                       `json:"top_english_level,omitempty"`
	SessionTypes       []pipeline.GroupCount        `json:"session_types"`
	EnglishLevels      []pipeline.GroupCount        `json:"english_levels"`
	DiscoverySources   []pipeline.GroupCount        `json:"discovery_sources"`
	TopMotivations     []pipeline.GroupCount        `json:"top_motivations"`
	SignupsByMonth     []pipeline.GroupCount        `json:"signups_by_month"`
	TopParticipants    []pipeline.RankedParticipant `json:"top_participants"`
}

var participantsCmd = &cobra.Command{
	Use:   "participants",
	Short: "Report on participant signups",
	Long: `Normalizes the signup export and reports signup totals, demographics,
discovery sources, motivations, and top attendees under the selected filters.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		day, err := parseDay(participantsDay)
		if err != nil {
			return err
		}

		loader, err := newLoader()
		if err != nil {
			return err
		}

		path := participantsCSV
		if path == "" {
			path = cfg.Sources.Participants
		}
		rows, err := loader.Participants(path)
		if err != nil {
			return eris.Wrap(err, "participants: load source")
		}

		criteria := pipeline.Criteria{Day: day, Unique: participantsUnique}
		view := pipeline.FilterParticipants(rows, criteria)

		topN := participantsTop
		if topN <= 0 {
			topN = cfg.Report.TopParticipants
		}

		levels := pipeline.CountBy(view, "Unknown", func(p model.Participant) string { return p.EnglishLevel })

		body := participantsBody{
			Signups:            len(view),
			UniqueParticipants: uniqueParticipants(view),
			TopEnglishLevel:    firstKnownLabel(levels),
			SessionTypes:       pipeline.CountBy(view, "", func(p model.Participant) string { return string(p.SessionType) }),
			EnglishLevels:      levels,
			DiscoverySources:   pipeline.CountBy(view, "Unknown", func(p model.Participant) string { return p.DiscoverySource }),
			TopMotivations:     topCounts(pipeline.CountBy(view, "Unknown", func(p model.Participant) string { return p.Motivation }), cfg.Report.TopMotivations),
			SignupsByMonth:     byLabel(pipeline.CountBy(view, "", func(p model.Participant) string { return p.Month })),
			TopParticipants:    pipeline.TopParticipants(view, topN),
		}

		zap.L().Info("participants report",
			zap.String("source", path),
			zap.Int("signups", body.Signups),
			zap.Int("unique", body.UniqueParticipants),
		)

		return writeReport(newReport("participants", path, criteria, body), participantsOutput)
	},
}

func init() {
	participantsCmd.Flags().StringVar(&participantsCSV, "csv", "", "signup export path (default: sources.participants config)")
	participantsCmd.Flags().StringVar(&participantsDay, "day", "All", "session type filter: All, Friday, Regular, or Other")
	participantsCmd.Flags().BoolVar(&participantsUnique, "unique", false, "keep one row per participant (earliest signup)")
	participantsCmd.Flags().IntVar(&participantsTop, "top", 0, "top participants to rank (default: report.top_participants config)")
	participantsCmd.Flags().StringVar(&participantsOutput, "output", "", "write report JSON to file (default: stdout)")
	rootCmd.AddCommand(participantsCmd)
}

// uniqueParticipants counts distinct identity keys in the view.
func uniqueParticipants(rows []model.Participant) int {
	seen := make(map[string]bool, len(rows))
	for _, p := range rows {
		if p.Key != "" {
			seen[p.Key] = true
		}
	}
	return len(seen)
}

// firstKnownLabel returns the most frequent label, skipping the Unknown
// bucket. Empty when the table has no known labels.
func firstKnownLabel(counts []pipeline.GroupCount) string {
	for _, c := range counts {
		if c.Label != "Unknown" {
			return c.Label
		}
	}
	return ""
}
