// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// ScanStats summarizes one shard walk.
type ScanStats struct {
	// ShardsVisited is the number of shards actually read.
	ShardsVisited int

	// CandidateUsers is the number of qualifying users accumulated.
	CandidateUsers int
}

// ScanShards walks the rating shards in a random permutation, collecting
// the interactions of qualifying users until a budget is exhausted.
//
// For each visited shard, FindSimilarUsers runs with the remaining member
// budget (MaxMembers minus users accumulated so far). The walk stops
// after a shard whose positional index value is >= Coverage — an index
// ceiling under the shuffled order, so raising Coverage widens the walk
// probabilistically rather than by an exact shard count — or once the
// accumulated user total reaches MaxMembers. At least one shard is
// always visited.
//
// A shard read failure aborts the walk; no partial result is returned.
func ScanShards(ctx context.Context, reader ShardReader, targetItems map[int64]struct{}, minSimilar int, p Params, logger zerolog.Logger) ([]Interaction, ScanStats, error) {
	var stats ScanStats

	numShards := reader.NumShards()
	if numShards == 0 {
		return nil, stats, fmt.Errorf("scan shards: no shards available: %w", ErrShardNotFound)
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // shard visitation order is not security sensitive

	order := rng.Perm(numShards)

	var accumulated []Interaction

	for _, shardIndex := range order {
		records, err := reader.ReadShard(ctx, shardIndex)
		if err != nil {
			return nil, stats, fmt.Errorf("read shard %d: %w", shardIndex, err)
		}

		kept, users := FindSimilarUsers(records, targetItems, minSimilar, p.MaxMembers-stats.CandidateUsers, p.MaxReviewed)
		accumulated = append(accumulated, kept...)
		stats.CandidateUsers += users
		stats.ShardsVisited++

		logger.Debug().
			Int("shard", shardIndex).
			Int("records", len(records)).
			Int("qualified_users", users).
			Int("total_users", stats.CandidateUsers).
			Msg("visited shard")

		if shardIndex >= p.Coverage {
			break
		}
		if stats.CandidateUsers >= p.MaxMembers {
			logger.Debug().Int("total_users", stats.CandidateUsers).Msg("member budget reached")
			break
		}
	}

	return accumulated, stats, nil
}
