// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

// Package recommend implements a neighborhood collaborative-filtering
// pipeline over sparse, partitioned user-item rating logs.
//
// # Architecture
//
// A query flows through four stages, each a standalone function:
//
//  1. ScanShards walks the rating shards in random order, collecting the
//     interactions of users whose taste overlaps the target profile,
//     under a member budget and a shard-coverage budget.
//  2. BuildMatrix merges the target's synthetic ratings with the
//     collected interactions and assembles a CSR sparse rating matrix
//     with deterministic dense indices.
//  3. ScoreNeighbors computes cosine similarity between the target row
//     and every row, selects the top-K neighbors, and aggregates their
//     ratings per title.
//  4. Rank joins the aggregates with the catalog, applies support and
//     quality thresholds, and orders titles by a popularity-damped
//     recommendation score.
//
// Engine ties the stages together behind a single Recommend call.
//
// # Design Principles
//
//   - Query-scoped: every structure is rebuilt per invocation; no model
//     state survives a call.
//   - Deterministic given a seed: the only randomness is the shard
//     visitation order, pinned by Params.Seed for tests.
//   - Explicit data flow: the target item set is an argument to every
//     stage, never package state.
//
// # Usage
//
//	engine := recommend.NewEngine(store, store, logger)
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    LikedItems: []int64{1, 21, 40748},
//	})
//
// # Thread Safety
//
// Engine holds no mutable state between calls and is safe for concurrent
// use as long as its readers are.
package recommend
