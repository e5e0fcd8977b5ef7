package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "bioarch/pkg/errors"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "BIOARCH"

// ConfigFileEnv names the environment variable holding an optional YAML config path
const ConfigFileEnv = "BIOARCH_CONFIG_FILE"

// Config represents the complete library configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
}

// ExportConfig controls how flattened rows are written
type ExportConfig struct {
	Format         string `yaml:"format" envconfig:"FORMAT" default:"xlsx"`
	SheetName      string `yaml:"sheet_name" envconfig:"SHEET_NAME" default:"individuals"`
	MissingValue   string `yaml:"missing_value" envconfig:"MISSING_VALUE" default:""`
	FloatPrecision int    `yaml:"float_precision" envconfig:"FLOAT_PRECISION" default:"-1"`
	// CSVBOM prefixes CSV output with a UTF-8 byte order mark for Excel
	CSVBOM bool `yaml:"csv_bom" envconfig:"CSV_BOM" default:"false"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Export:  ExportConfig{Format: "xlsx", SheetName: "individuals", FloatPrecision: -1},
	}
}

// Load loads configuration from environment variables and an optional config file.
// Environment variables take precedence over the file.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		fileConfig, err := loadFromFile(path)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
		cfg = mergeConfigs(fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// fileConfig is a decoded config file. FloatPrecision is kept apart because
// 0 is a valid precision, so only a nil pointer means the key was not set.
type fileConfig struct {
	Config
	FloatPrecision *int
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*fileConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}

	var keys struct {
		Export struct {
			FloatPrecision *int `yaml:"float_precision"`
		} `yaml:"export"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}
	return &fileConfig{Config: cfg, FloatPrecision: keys.Export.FloatPrecision}, nil
}

// mergeConfigs applies file values to every setting the environment left unset.
func mergeConfigs(fileConfig *fileConfig, envConfig Config) Config {
	if fileConfig.Logging.Level != "" && !envSet("LOGGING_LEVEL") {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Format != "" && !envSet("LOGGING_FORMAT") {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if fileConfig.Export.Format != "" && !envSet("EXPORT_FORMAT") {
		envConfig.Export.Format = fileConfig.Export.Format
	}
	if fileConfig.Export.SheetName != "" && !envSet("EXPORT_SHEET_NAME") {
		envConfig.Export.SheetName = fileConfig.Export.SheetName
	}
	if fileConfig.Export.MissingValue != "" && !envSet("EXPORT_MISSING_VALUE") {
		envConfig.Export.MissingValue = fileConfig.Export.MissingValue
	}
	if fileConfig.FloatPrecision != nil && !envSet("EXPORT_FLOAT_PRECISION") {
		envConfig.Export.FloatPrecision = *fileConfig.FloatPrecision
	}
	if fileConfig.Export.CSVBOM && !envSet("EXPORT_CSV_BOM") {
		envConfig.Export.CSVBOM = true
	}

	return envConfig
}

func envSet(name string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + name)
	return ok
}

// Validate checks the configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return apperrors.NewConfigError(fmt.Sprintf("invalid log level %q", c.Logging.Level), nil)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return apperrors.NewConfigError(fmt.Sprintf("invalid log format %q", c.Logging.Format), nil)
	}

	switch strings.ToLower(c.Export.Format) {
	case "csv", "xlsx":
	default:
		return apperrors.NewConfigError(fmt.Sprintf("invalid export format %q", c.Export.Format), nil)
	}

	if c.Export.SheetName == "" {
		return apperrors.NewConfigError("export sheet name must not be empty", nil)
	}
	if len([]rune(c.Export.SheetName)) > 31 {
		return apperrors.NewConfigError("export sheet name must be at most 31 characters", nil)
	}
	if c.Export.FloatPrecision < -1 {
		return apperrors.NewConfigError("export float precision must be -1 or more", nil)
	}
	return nil
}
