// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine runs the full recommendation pipeline for one query at a time.
// It holds no state between queries; every call rebuilds its structures
// from the readers.
type Engine struct {
	shards  ShardReader
	catalog CatalogReader
	logger  zerolog.Logger
}

// NewEngine creates a recommendation engine over the given readers.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(shards ShardReader, catalog CatalogReader, logger zerolog.Logger) *Engine {
	return &Engine{
		shards:  shards,
		catalog: catalog,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}
}

// Recommend generates recommendations for the request's liked titles.
//
// Parameter validation runs before any shard is read. A query that finds
// no qualifying neighbors, or whose neighbors endorse nothing above the
// thresholds, returns a successful Response with an empty ranked list;
// only I/O failures and invalid parameters produce errors.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	logger := e.logger.With().Str("request_id", req.RequestID).Logger()

	if len(req.LikedItems) == 0 {
		return nil, fmt.Errorf("%w: liked items must not be empty", ErrInvalidParameter)
	}

	params := req.Params.withDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	targetItems := make(map[int64]struct{}, len(req.LikedItems))
	for _, itemID := range req.LikedItems {
		targetItems[itemID] = struct{}{}
	}
	minSimilar := params.minSimilarFor(len(req.LikedItems))

	logger.Debug().
		Int("liked_items", len(req.LikedItems)).
		Int("min_similar", minSimilar).
		Int("max_members", params.MaxMembers).
		Int("coverage", params.Coverage).
		Msg("processing recommendation request")

	accumulated, stats, err := ScanShards(ctx, e.shards, targetItems, minSimilar, params, logger)
	if err != nil {
		return nil, fmt.Errorf("scan shards: %w", err)
	}

	matrix, interactions := BuildMatrix(TargetProfile(req.LikedItems, params.Rating), accumulated)

	itemStats, neighbors, err := ScoreNeighbors(matrix, interactions, params.K)
	if err != nil {
		return nil, err
	}

	entries, err := e.catalog.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalog := make(map[int64]CatalogEntry, len(entries))
	for _, entry := range entries {
		catalog[entry.ItemID] = entry
	}

	recs, err := Rank(itemStats, catalog, targetItems, params.MinCount, params.MinMean, logger)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Recommendations: recs,
		Metadata: Metadata{
			RequestID:      req.RequestID,
			ShardsVisited:  stats.ShardsVisited,
			CandidateUsers: stats.CandidateUsers,
			Neighbors:      neighbors,
			LatencyMS:      time.Since(start).Milliseconds(),
			Timestamp:      time.Now().UTC(),
		},
	}

	logger.Info().
		Int("shards_visited", stats.ShardsVisited).
		Int("candidate_users", stats.CandidateUsers).
		Int("neighbors", neighbors).
		Int("recommendations", len(recs)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}
