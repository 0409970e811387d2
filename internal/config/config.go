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
	Match    MatchConfig    `yaml:"match" mapstructure:"match"`
	Borrower BorrowerConfig `yaml:"borrower" mapstructure:"borrower"`
	Dedup    DedupConfig    `yaml:"dedup" mapstructure:"dedup"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// MatchConfig configures string and address comparison.
type MatchConfig struct {
	AddressThreshold int    `yaml:"address_threshold" mapstructure:"address_threshold"`
	NameListStrategy string `yaml:"name_list_strategy" mapstructure:"name_list_strategy"`
}

// BorrowerConfig configures borrower identification.
type BorrowerConfig struct {
	SubsetMode string `yaml:"subset_mode" mapstructure:"subset_mode"`
}

// DedupConfig configures the deduplication engine.
type DedupConfig struct {
	Strategy           string `yaml:"strategy" mapstructure:"strategy"`
	Skill              string `yaml:"skill" mapstructure:"skill"`
	KeyLabel           string `yaml:"key_label" mapstructure:"key_label"`
	SignatureLabel     string `yaml:"signature_label" mapstructure:"signature_label"`
	SignatureDateLabel string `yaml:"signature_date_label" mapstructure:"signature_date_label"`
	PreferSubstring    string `yaml:"prefer_substring" mapstructure:"prefer_substring"`
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
	v.SetEnvPrefix("DOCMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("match.address_threshold", 85)
	v.SetDefault("match.name_list_strategy", "greedy")
	v.SetDefault("borrower.subset_mode", "any")
	v.SetDefault("dedup.strategy", "signature-date")
	v.SetDefault("dedup.skill", "Note Extraction")
	v.SetDefault("dedup.key_label", "Loan Number")
	v.SetDefault("dedup.signature_label", "Signature")
	v.SetDefault("dedup.signature_date_label", "Signature Date")

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
