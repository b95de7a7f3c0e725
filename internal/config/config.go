package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sources    SourcesConfig    `yaml:"sources" mapstructure:"sources"`
	Classifier ClassifierConfig `yaml:"classifier" mapstructure:"classifier"`
	Report     ReportConfig     `yaml:"report" mapstructure:"report"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// SourcesConfig holds the externally supplied paths of the three survey
// exports.
type SourcesConfig struct {
	Participants string `yaml:"participants" mapstructure:"participants"`
	Feedback     string `yaml:"feedback" mapstructure:"feedback"`
	Moderators   string `yaml:"moderators" mapstructure:"moderators"`
}

// ClassifierConfig points at an optional YAML rules file overriding the
// built-in category tables.
type ClassifierConfig struct {
	Rules string `yaml:"rules" mapstructure:"rules"`
}

// ReportConfig holds report shaping knobs.
type ReportConfig struct {
	TopParticipants int `yaml:"top_participants" mapstructure:"top_participants"`
	TopMotivations  int `yaml:"top_motivations" mapstructure:"top_motivations"`
	TopThemes       int `yaml:"top_themes" mapstructure:"top_themes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SURVEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sources.participants", "participants.csv")
	v.SetDefault("sources.feedback", "feedback.csv")
	v.SetDefault("sources.moderators", "moderator_feedback.csv")
	v.SetDefault("report.top_participants", 10)
	v.SetDefault("report.top_motivations", 20)
	v.SetDefault("report.top_themes", 15)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
