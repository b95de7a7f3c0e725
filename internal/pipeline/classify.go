package pipeline

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/keminggris/survey-cli/internal/model"
)

// Rule maps a set of case-insensitive substring patterns to one category.
type Rule struct {
	Category string   `yaml:"category"`
	Patterns []string `yaml:"patterns"`
}

// Classifier maps free text to a small fixed category set. Rules are
// evaluated in declared order and the first matching pattern wins; values
// matching nothing (including empty input) map to the fallback, so
// classification is deterministic and total.
type Classifier struct {
	rules    []Rule
	fallback string
}

// NewClassifier builds a classifier from ordered rules and a fallback
// category. Patterns are lowered once at construction.
func NewClassifier(rules []Rule, fallback string) *Classifier {
	lowered := make([]Rule, len(rules))
	for i, r := range rules {
		patterns := make([]string, 0, len(r.Patterns))
		for _, p := range r.Patterns {
			if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
				patterns = append(patterns, p)
			}
		}
		lowered[i] = Rule{Category: r.Category, Patterns: patterns}
	}
	return &Classifier{rules: lowered, fallback: fallback}
}

// Classify returns the category for a free-text value.
func (c *Classifier) Classify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower != "" {
		for _, r := range c.rules {
			for _, p := range r.Patterns {
				if strings.Contains(lower, p) {
					return r.Category
				}
			}
		}
	}
	return c.fallback
}

// SessionTypeClassifier buckets free-text session types into
// {Friday, Regular, Other}. Friday is checked before Regular so a value
// like "Friday special (regular slot)" lands in Friday.
func SessionTypeClassifier() *Classifier {
	return NewClassifier([]Rule{
		{Category: string(model.DayFriday), Patterns: []string{"friday"}},
		{Category: string(model.DayRegular), Patterns: []string{"regular"}},
	}, string(model.DayOther))
}

// InterestClassifier normalizes free-text "join again?" answers to
// {Yes, No, Unknown}.
func InterestClassifier() *Classifier {
	return NewClassifier([]Rule{
		{Category: string(model.InterestYes), Patterns: []string{"yes", "yeah", "yup", "of course", "definitely", "absolutely"}},
		{Category: string(model.InterestNo), Patterns: []string{"no", "nope"}},
	}, string(model.InterestUnknown))
}

// SentimentClassifier normalizes sentiment labels to the fixed vocabulary.
// Source sheets carry pre-labeled sentiment text; this tolerates casing and
// decoration around the label.
func SentimentClassifier() *Classifier {
	return NewClassifier([]Rule{
		{Category: string(model.SentimentPositive), Patterns: []string{"positive"}},
		{Category: string(model.SentimentNegative), Patterns: []string{"negative"}},
		{Category: string(model.SentimentConstructive), Patterns: []string{"constructive"}},
		{Category: string(model.SentimentNeutral), Patterns: []string{"neutral"}},
	}, string(model.SentimentUnknown))
}

// ClassifierSpec is the YAML shape of one classifier override.
type ClassifierSpec struct {
	Fallback string `yaml:"fallback"`
	Rules    []Rule `yaml:"rules"`
}

// RuleSet overrides the built-in classifier tables. Empty sections keep
// the defaults.
type RuleSet struct {
	SessionType ClassifierSpec `yaml:"session_type"`
	Interest    ClassifierSpec `yaml:"interest"`
	Sentiment   ClassifierSpec `yaml:"sentiment"`
}

// LoadRuleSet reads a classifier rules file.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: read rules file")
	}
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, eris.Wrap(err, "pipeline: parse rules file")
	}
	return &rs, nil
}

// classifier returns the override when the section has rules, else the default.
func (s ClassifierSpec) classifier(def *Classifier) *Classifier {
	if len(s.Rules) == 0 {
		return def
	}
	fallback := s.Fallback
	if fallback == "" {
		fallback = def.fallback
	}
	return NewClassifier(s.Rules, fallback)
}
