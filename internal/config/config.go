// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package config

import (
	"fmt"
	"math"
)

// Config is the root application configuration.
type Config struct {
	// Data locates the rating shards and the catalog on disk.
	Data DataConfig `koanf:"data"`

	// Engine holds the default query parameters for the recommender.
	// Individual queries may override any of them.
	Engine EngineConfig `koanf:"engine"`

	// Database tunes the embedded DuckDB instance.
	Database DatabaseConfig `koanf:"database"`

	// Log configures structured logging.
	Log LogConfig `koanf:"log"`
}

// DataConfig locates the on-disk data sets.
type DataConfig struct {
	// ScoreDir is the directory holding rating shards, one Parquet file
	// per partition named users_scores_<index>.parquet.
	ScoreDir string `koanf:"score_dir"`

	// CatalogPath is the Parquet file holding the anime catalog.
	CatalogPath string `koanf:"catalog_path"`
}

// EngineConfig holds default recommendation parameters.
// Zero values fall back to the engine's built-in defaults.
type EngineConfig struct {
	// Rating is the synthetic rating assigned to the caller's liked titles.
	Rating float64 `koanf:"rating"`

	// LikedFraction is the fraction of the liked list a user must share
	// to count as a neighbor candidate. Used when MinSimilar is zero.
	LikedFraction float64 `koanf:"liked_fraction"`

	// MinSimilar is the absolute overlap threshold. Zero derives the
	// threshold from LikedFraction.
	MinSimilar int `koanf:"min_similar"`

	// Coverage is the shard index ceiling for the randomized shard walk.
	Coverage int `koanf:"coverage"`

	// MaxMembers bounds the number of neighbor candidates accumulated.
	MaxMembers int `koanf:"max_members"`

	// MaxReviewed excludes users with this many or more reviews in a
	// single shard. Filters out bulk raters whose taste signal is weak.
	MaxReviewed int `koanf:"max_reviewed"`

	// K is the number of nearest neighbors used for scoring.
	K int `koanf:"k"`

	// MinCount is the strict lower bound on neighbor endorsements.
	MinCount int `koanf:"min_count"`

	// MinMean is the strict lower bound on the neighbors' mean rating.
	MinMean float64 `koanf:"min_mean"`

	// Seed pins the shard visitation order. Zero means a random order
	// is drawn per query.
	Seed int64 `koanf:"seed"`
}

// DatabaseConfig tunes the embedded DuckDB instance.
type DatabaseConfig struct {
	// MaxMemory caps DuckDB's memory usage (e.g. "2GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the number of DuckDB worker threads.
	// Zero uses runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			ScoreDir:    "score",
			CatalogPath: "anime/anime.parquet",
		},
		Engine: EngineConfig{
			Rating:        10,
			LikedFraction: 0.6,
			MinSimilar:    0, // derived from LikedFraction
			Coverage:      1,
			MaxMembers:    100,
			MaxReviewed:   500,
			K:             15,
			MinCount:      2,
			MinMean:       7,
			Seed:          0, // random order per query
		},
		Database: DatabaseConfig{
			MaxMemory: "2GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	return c.validateLog()
}

// validateData validates data set locations.
func (c *Config) validateData() error {
	if c.Data.ScoreDir == "" {
		return fmt.Errorf("data.score_dir is required")
	}
	if c.Data.CatalogPath == "" {
		return fmt.Errorf("data.catalog_path is required")
	}
	return nil
}

// validateEngine validates the default engine parameters.
func (c *Config) validateEngine() error {
	e := &c.Engine

	if e.Rating <= 0 || math.IsNaN(e.Rating) || math.IsInf(e.Rating, 0) {
		return fmt.Errorf("engine.rating must be a positive finite number, got %v", e.Rating)
	}
	if e.MinSimilar == 0 && (e.LikedFraction <= 0 || e.LikedFraction > 1) {
		return fmt.Errorf("engine.liked_fraction must be in (0, 1] when engine.min_similar is unset, got %v", e.LikedFraction)
	}
	if e.MinSimilar < 0 {
		return fmt.Errorf("engine.min_similar must not be negative, got %d", e.MinSimilar)
	}
	if e.Coverage < 0 {
		return fmt.Errorf("engine.coverage must not be negative, got %d", e.Coverage)
	}
	if e.MaxMembers <= 0 {
		return fmt.Errorf("engine.max_members must be positive, got %d", e.MaxMembers)
	}
	if e.MaxReviewed < 1 {
		return fmt.Errorf("engine.max_reviewed must be at least 1, got %d", e.MaxReviewed)
	}
	if e.K <= 0 {
		return fmt.Errorf("engine.k must be positive, got %d", e.K)
	}
	if e.MinCount < 0 {
		return fmt.Errorf("engine.min_count must not be negative, got %d", e.MinCount)
	}
	if math.IsNaN(e.MinMean) || math.IsInf(e.MinMean, 0) {
		return fmt.Errorf("engine.min_mean must be finite, got %v", e.MinMean)
	}
	return nil
}

// validateLog validates the logging section.
func (c *Config) validateLog() error {
	switch c.Log.Level {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("log.level %q is not a valid level", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("log.format %q is not valid (expected json or console)", c.Log.Format)
	}
	return nil
}
