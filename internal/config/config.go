// Package config provides configuration loading and validation for the CLI.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonathan/ats-ranker/internal/ranking"
)

// Environment variables that override file configuration.
const (
	EnvStorageBucketURL = "ATS_STORAGE_BUCKET_URL"
	EnvDatabaseURL      = "DATABASE_URL"
	EnvConverterBinary  = "ATS_CONVERTER_BINARY"
	EnvLogJSON          = "ATS_LOG_JSON"
	EnvLogDebug         = "ATS_LOG_DEBUG"
)

// Defaults.
const (
	DefaultMaxUploadMB       = 20
	DefaultConversionTimeout = "60s"
	DefaultConverterBinary   = "libreoffice"
	DefaultConversionWorkers = 4
	DefaultPresignTTL        = "1h"
	DefaultBatchConcurrency  = 8
)

// WeightsConfig is the per-dimension weight vector as written in a config file.
type WeightsConfig struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Location   float64 `json:"location"`
	Education  float64 `json:"education"`
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
// Storage credentials are never part of the file; they come from the environment.
type Config struct {
	// Ranking
	Weights *WeightsConfig  `json:"weights,omitempty"`
	Tuning  json.RawMessage `json:"tuning,omitempty"` // Partial override of ranking.DefaultTuning

	// Documents
	MaxUploadMB       int    `json:"max_upload_mb,omitempty"`
	ConversionTimeout string `json:"conversion_timeout,omitempty"` // Go duration, e.g. "60s"
	ConverterBinary   string `json:"converter_binary,omitempty"`
	ConversionWorkers int    `json:"conversion_workers,omitempty"`

	// Storage
	StorageBucketURL string `json:"storage_bucket_url,omitempty"`
	PresignTTL       string `json:"presign_ttl,omitempty"` // Go duration, e.g. "1h"

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Behavior
	LogJSON          bool `json:"log_json,omitempty"`
	LogDebug         bool `json:"log_debug,omitempty"`
	BatchConcurrency int  `json:"batch_concurrency,omitempty"`
}

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		MaxUploadMB:       DefaultMaxUploadMB,
		ConversionTimeout: DefaultConversionTimeout,
		ConverterBinary:   DefaultConverterBinary,
		ConversionWorkers: DefaultConversionWorkers,
		PresignTTL:        DefaultPresignTTL,
		BatchConcurrency:  DefaultBatchConcurrency,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load reads the optional config file at path, applies environment overrides and defaults,
// and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields from the environment. Only non-empty variables apply.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvStorageBucketURL); v != "" {
		c.StorageBucketURL = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv(EnvConverterBinary); v != "" {
		c.ConverterBinary = v
	}
	for name, dst := range map[string]*bool{EnvLogJSON: &c.LogJSON, EnvLogDebug: &c.LogDebug} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", name, err)
		}
		*dst = b
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("config error: 'max_upload_mb' must be non-negative")
	}
	if c.ConversionWorkers < 0 {
		return fmt.Errorf("config error: 'conversion_workers' must be non-negative")
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'batch_concurrency' must be non-negative")
	}

	if _, err := parsePositiveDuration("conversion_timeout", c.ConversionTimeout); err != nil {
		return err
	}
	if _, err := parsePositiveDuration("presign_ttl", c.PresignTTL); err != nil {
		return err
	}

	if c.Weights != nil {
		if _, err := c.RankingWeights(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if _, err := c.RankingTuning(); err != nil {
		return err
	}

	if c.StorageBucketURL != "" {
		u, err := url.Parse(c.StorageBucketURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: 'storage_bucket_url' must be an absolute URL")
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ConversionTimeout == "" {
		result.ConversionTimeout = defaults.ConversionTimeout
	}
	if result.ConverterBinary == "" {
		result.ConverterBinary = defaults.ConverterBinary
	}
	if result.StorageBucketURL == "" {
		result.StorageBucketURL = defaults.StorageBucketURL
	}
	if result.PresignTTL == "" {
		result.PresignTTL = defaults.PresignTTL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.MaxUploadMB == 0 {
		result.MaxUploadMB = defaults.MaxUploadMB
	}
	if result.ConversionWorkers == 0 {
		result.ConversionWorkers = defaults.ConversionWorkers
	}
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = defaults.BatchConcurrency
	}

	if result.Weights == nil && defaults.Weights != nil {
		w := *defaults.Weights
		result.Weights = &w
	}
	if len(result.Tuning) == 0 {
		result.Tuning = defaults.Tuning
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// RankingWeights returns the configured weight vector, or the defaults when none is set.
func (c *Config) RankingWeights() (ranking.Weights, error) {
	if c.Weights == nil {
		return ranking.DefaultWeights(), nil
	}
	return ranking.NewWeights(c.Weights.Skills, c.Weights.Experience, c.Weights.Location, c.Weights.Education)
}

// RankingTuning returns ranking.DefaultTuning with the configured overrides applied.
func (c *Config) RankingTuning() (ranking.Tuning, error) {
	tuning := ranking.DefaultTuning()
	if len(c.Tuning) == 0 {
		return tuning, nil
	}
	dec := json.NewDecoder(bytes.NewReader(c.Tuning))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tuning); err != nil {
		return ranking.Tuning{}, fmt.Errorf("config error: invalid 'tuning': %w", err)
	}
	if err := tuning.Validate(); err != nil {
		return ranking.Tuning{}, fmt.Errorf("config error: invalid 'tuning': %w", err)
	}
	return tuning, nil
}

// ConversionTimeoutDuration returns the parsed conversion timeout.
func (c *Config) ConversionTimeoutDuration() (time.Duration, error) {
	return parsePositiveDuration("conversion_timeout", c.ConversionTimeout)
}

// PresignTTLDuration returns the parsed presigned URL lifetime.
func (c *Config) PresignTTLDuration() (time.Duration, error) {
	return parsePositiveDuration("presign_ttl", c.PresignTTL)
}

func parsePositiveDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config error: '%s' is not a duration: %v", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config error: '%s' must be positive", field)
	}
	return d, nil
}
