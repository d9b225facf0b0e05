// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package storage

import (
	"database/sql"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/anireco/anireco/internal/config"
	"github.com/anireco/anireco/internal/recommend"
)

// shardPrefix and shardSuffix bracket the partition index in shard file
// names: users_scores_<index>.parquet.
const (
	shardPrefix = "users_scores_"
	shardSuffix = ".parquet"
)

// Store provides read access to the rating shards and the catalog.
type Store struct {
	conn   *sql.DB
	cfg    *config.DataConfig
	logger zerolog.Logger

	// numShards is one past the highest shard index found at open time.
	// Holes in the index sequence surface as ErrShardNotFound on read.
	numShards int
}

// Open creates the embedded DuckDB instance and enumerates the shards.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(dataCfg *config.DataConfig, dbCfg *config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	numThreads := dbCfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	maxMemory := dbCfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "2GB"
	}

	// Disable auto-install/auto-load to prevent hangs in restricted
	// network environments; read_parquet needs no extension.
	connStr := fmt.Sprintf(":memory:?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		numThreads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{
		conn:   conn,
		cfg:    dataCfg,
		logger: logger.With().Str("component", "storage").Logger(),
	}

	numShards, err := countShards(dataCfg.ScoreDir)
	if err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("enumerate shards in %s: %w", dataCfg.ScoreDir, err)
	}
	s.numShards = numShards

	s.logger.Debug().
		Int("shards", numShards).
		Str("score_dir", dataCfg.ScoreDir).
		Str("catalog", dataCfg.CatalogPath).
		Msg("storage opened")

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// countShards returns one past the highest shard index present in dir.
func countShards(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	numShards := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, shardPrefix) || !strings.HasSuffix(name, shardSuffix) {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, shardPrefix), shardSuffix))
		if err != nil || index < 0 {
			continue
		}
		if index+1 > numShards {
			numShards = index + 1
		}
	}
	return numShards, nil
}

// closeQuietly closes conn and discards the error. Used on error paths
// where the original error matters more.
func closeQuietly(conn *sql.DB) {
	_ = conn.Close()
}

// Compile-time interface checks.
var (
	_ recommend.ShardReader   = (*Store)(nil)
	_ recommend.CatalogReader = (*Store)(nil)
)
