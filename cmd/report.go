package main

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/keminggris/survey-cli/internal/model"
	"github.com/keminggris/survey-cli/internal/pipeline"
)

// report is the JSON envelope every report command emits.
type report struct {
	ID          string            `json:"report_id"`
	Kind        string            `json:"kind"`
	GeneratedAt time.Time         `json:"generated_at"`
	Source      string            `json:"source"`
	Criteria    pipeline.Criteria `json:"criteria"`
	Body        any               `json:"body"`
}

func newReport(kind, source string, c pipeline.Criteria, body any) report {
	return report{
		ID:          uuid.New().String(),
		Kind:        kind,
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Criteria:    c,
		Body:        body,
	}
}

// writeReport writes a report to the output file or stdout.
func writeReport(r report, outputPath string) error {
	var w *os.File
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrap(err, "report: create output file")
		}
		defer f.Close() //nolint:errcheck
		w = f
	} else {
		w = os.Stdout
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// newLoader builds the pipeline loader, honoring a configured classifier
// rules file.
func newLoader() (*pipeline.Loader, error) {
	var rules *pipeline.RuleSet
	if cfg.Classifier.Rules != "" {
		rs, err := pipeline.LoadRuleSet(cfg.Classifier.Rules)
		if err != nil {
			return nil, err
		}
		rules = rs
		zap.L().Info("loaded classifier rules", zap.String("path", cfg.Classifier.Rules))
	}
	return pipeline.NewLoader(rules), nil
}

// parseDay maps a --day flag value to a filter criterion. "All" and ""
// disable the filter.
func parseDay(s string) (model.SessionDay, error) {
	switch s {
	case "", "All", "all":
		return "", nil
	case "Friday", "friday":
		return model.DayFriday, nil
	case "Regular", "regular":
		return model.DayRegular, nil
	case "Other", "other":
		return model.DayOther, nil
	}
	return "", eris.Errorf("unknown session day %q (want All, Friday, Regular, or Other)", s)
}

// topCounts truncates a grouped-count table to its first n rows.
func topCounts(counts []pipeline.GroupCount, n int) []pipeline.GroupCount {
	if n > 0 && len(counts) > n {
		return counts[:n]
	}
	return counts
}

// topTags truncates a tag frequency table to its first n rows.
func topTags(tags []pipeline.TagCount, n int) []pipeline.TagCount {
	if n > 0 && len(tags) > n {
		return tags[:n]
	}
	return tags
}

// byLabel re-sorts a grouped-count table by label ascending, used for
// chronological buckets like months where count order is unhelpful.
func byLabel(counts []pipeline.GroupCount) []pipeline.GroupCount {
	sort.Slice(counts, func(i, j int) bool { return counts[i].Label < counts[j].Label })
	return counts
}
