// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/anireco/anireco/internal/recommend"
)

// Catalog returns all catalog entries. A missing or unreadable catalog
// file reports recommend.ErrCatalogUnavailable.
//
// Score, rating count and popularity are cast defensively: the upstream
// dataset stores "UNKNOWN" for unrated titles, which TRY_CAST maps to
// NULL and this reader to zero. Zero rating counts are filtered later
// by the ranker.
func (s *Store) Catalog(ctx context.Context) ([]recommend.CatalogEntry, error) {
	path := s.cfg.CatalogPath
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog (%s): %w", path, recommend.ErrCatalogUnavailable)
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT
			anime_id,
			Name,
			Mod_name,
			TRY_CAST(Score AS DOUBLE),
			TRY_CAST("Scored By" AS DOUBLE),
			TRY_CAST(Popularity AS BIGINT)
		FROM read_parquet(?)`, path)
	if err != nil {
		return nil, fmt.Errorf("query catalog (%s): %v: %w", path, err, recommend.ErrCatalogUnavailable)
	}
	defer rows.Close()

	var entries []recommend.CatalogEntry
	for rows.Next() {
		var (
			entry      recommend.CatalogEntry
			modName    sql.NullString
			score      sql.NullFloat64
			scoredBy   sql.NullFloat64
			popularity sql.NullInt64
		)
		if err := rows.Scan(&entry.ItemID, &entry.Name, &modName, &score, &scoredBy, &popularity); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		entry.ModName = modName.String
		entry.Score = score.Float64
		entry.ScoredBy = scoredBy.Float64
		entry.Popularity = popularity.Int64
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	s.logger.Debug().Int("titles", len(entries)).Msg("catalog read")
	return entries, nil
}
