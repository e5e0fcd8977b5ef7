package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bioarch/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("BIOARCH_LOGGING_LEVEL", "debug")
	t.Setenv("BIOARCH_EXPORT_FORMAT", "csv")
	t.Setenv("BIOARCH_EXPORT_MISSING_VALUE", "NA")
	t.Setenv("BIOARCH_EXPORT_FLOAT_PRECISION", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, "NA", cfg.Export.MissingValue)
	assert.Equal(t, 2, cfg.Export.FloatPrecision)
	assert.Equal(t, "individuals", cfg.Export.SheetName)
}

func TestLoad_FileMergedUnderEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bioarch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"logging:\n  level: warn\n  format: text\nexport:\n  format: csv\n  sheet_name: burials\n"), 0o600))

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("BIOARCH_EXPORT_FORMAT", "xlsx")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "xlsx", cfg.Export.Format, "environment wins")
	assert.Equal(t, "burials", cfg.Export.SheetName)
}

func TestLoad_FilePrecision(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		env      string
		expected int
	}{
		{name: "zero from file", file: "export:\n  float_precision: 0\n", expected: 0},
		{name: "two from file", file: "export:\n  float_precision: 2\n", expected: 2},
		{name: "unset in file", file: "export:\n  format: csv\n", expected: -1},
		{name: "environment wins", file: "export:\n  float_precision: 0\n", env: "3", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bioarch.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.file), 0o600))
			t.Setenv(ConfigFileEnv, path)
			if tt.env != "" {
				t.Setenv("BIOARCH_EXPORT_FLOAT_PRECISION", tt.env)
			}

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Export.FloatPrecision)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := Load()
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrConfig)
	})

	t.Run("unknown key in file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 1\n"), 0o600))
		t.Setenv(ConfigFileEnv, path)
		_, err := Load()
		assert.ErrorIs(t, err, apperrors.ErrConfig)
	})

	t.Run("bad precision in environment", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, "")
		t.Setenv("BIOARCH_EXPORT_FLOAT_PRECISION", "many")
		_, err := Load()
		assert.ErrorIs(t, err, apperrors.ErrConfig)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "text format", mutate: func(c *Config) { c.Logging.Format = "text" }},
		{name: "warning level", mutate: func(c *Config) { c.Logging.Level = "WARNING" }},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "bad export format", mutate: func(c *Config) { c.Export.Format = "parquet" }, wantErr: true},
		{name: "empty sheet", mutate: func(c *Config) { c.Export.SheetName = "" }, wantErr: true},
		{
			name:    "long sheet",
			mutate:  func(c *Config) { c.Export.SheetName = "an extremely long worksheet name" },
			wantErr: true,
		},
		{name: "precision below -1", mutate: func(c *Config) { c.Export.FloatPrecision = -2 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
