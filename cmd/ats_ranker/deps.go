package main

import (
	"context"
	"fmt"

	"github.com/jonathan/ats-ranker/internal/config"
	"github.com/jonathan/ats-ranker/internal/db"
	"github.com/jonathan/ats-ranker/internal/documents"
	"github.com/jonathan/ats-ranker/internal/ranking"
	"github.com/jonathan/ats-ranker/internal/storage"
	schemafiles "github.com/jonathan/ats-ranker/schemas"
)

// currentConfig returns the loaded configuration, or defaults when the root hook did not run.
func currentConfig() *config.Config {
	if appConfig != nil {
		return appConfig
	}
	cfg := config.Defaults()
	return &cfg
}

// newRanker builds a ranker from configured tuning and weights.
func newRanker(cfg *config.Config) (*ranking.Ranker, error) {
	tuning, err := cfg.RankingTuning()
	if err != nil {
		return nil, err
	}
	weights, err := cfg.RankingWeights()
	if err != nil {
		return nil, err
	}
	return ranking.NewRanker(
		ranking.WithTuning(tuning),
		ranking.WithWeights(weights),
		ranking.WithLogger(appLogger),
	), nil
}

// loadWeights reads a weights file; an empty path means "use the ranker's weights".
func loadWeights(path string) (*ranking.Weights, error) {
	if path == "" {
		return nil, nil
	}
	var raw config.WeightsConfig
	if err := readValidated(path, schemafiles.Weights, &raw); err != nil {
		return nil, err
	}
	w, err := ranking.NewWeights(raw.Skills, raw.Experience, raw.Location, raw.Education)
	if err != nil {
		return nil, fmt.Errorf("invalid weights in %s: %w", path, err)
	}
	return &w, nil
}

// newNormalizer builds a normalizer around the configured converter binary.
func newNormalizer(cfg *config.Config, timeoutOverride string, maxSizeOverride int) (*documents.Normalizer, error) {
	c := *cfg
	if timeoutOverride != "" {
		c.ConversionTimeout = timeoutOverride
	}
	timeout, err := c.ConversionTimeoutDuration()
	if err != nil {
		return nil, err
	}
	maxSize := cfg.MaxUploadMB
	if maxSizeOverride > 0 {
		maxSize = maxSizeOverride
	}
	return documents.NewNormalizer(
		documents.NewLibreOfficeConverter(cfg.ConverterBinary),
		documents.WithMaxSizeMB(maxSize),
		documents.WithTimeout(timeout),
		documents.WithLogger(appLogger),
	), nil
}

// storeFactory builds the object store; tests replace it.
var storeFactory = newStore

// newStore builds the object store from configuration. Credentials come from the environment.
func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBucketURL == "" {
		return nil, fmt.Errorf("storage bucket URL not configured (set %s or storage_bucket_url)", config.EnvStorageBucketURL)
	}
	return storage.NewCOSStore(cfg.StorageBucketURL, storage.WithLogger(appLogger))
}

// connectDB opens the database named by flag, falling back to configuration.
func connectDB(ctx context.Context, cfg *config.Config, flagURL string) (*db.DB, error) {
	url := flagURL
	if url == "" {
		url = cfg.DatabaseURL
	}
	if url == "" {
		return nil, fmt.Errorf("%s environment variable or --db-url flag is required", config.EnvDatabaseURL)
	}
	database, err := db.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
