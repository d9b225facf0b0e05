// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anireco/anireco/internal/recommend"
)

// NumShards returns the number of addressable shard indices.
func (s *Store) NumShards() int {
	return s.numShards
}

// shardPath returns the Parquet file backing the given shard index.
func (s *Store) shardPath(index int) string {
	return filepath.Join(s.cfg.ScoreDir, fmt.Sprintf("%s%d%s", shardPrefix, index, shardSuffix))
}

// ReadShard returns all interaction records of one shard, in file order.
// A missing backing file reports recommend.ErrShardNotFound.
func (s *Store) ReadShard(ctx context.Context, index int) ([]recommend.Interaction, error) {
	path := s.shardPath(index)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("shard %d (%s): %w", index, path, recommend.ErrShardNotFound)
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT user_id, anime_id, rating FROM read_parquet(?)`, path)
	if err != nil {
		return nil, fmt.Errorf("query shard %d (%s): %w", index, path, err)
	}
	defer rows.Close()

	var records []recommend.Interaction
	for rows.Next() {
		var r recommend.Interaction
		if err := rows.Scan(&r.UserID, &r.ItemID, &r.Rating); err != nil {
			return nil, fmt.Errorf("scan shard %d row: %w", index, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read shard %d: %w", index, err)
	}

	s.logger.Debug().Int("shard", index).Int("records", len(records)).Msg("shard read")
	return records, nil
}
