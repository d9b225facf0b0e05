// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

// Package storage reads the rating shards and the anime catalog from
// Parquet files through an embedded DuckDB instance.
//
// # Data Layout
//
// Rating shards live in one directory, one Parquet file per partition:
//
//	score/users_scores_0.parquet
//	score/users_scores_1.parquet
//	...
//
// Each shard holds (user_id, anime_id, rating) rows. The catalog is a
// single Parquet file with one row per title, carrying the display name,
// the normalized name used by text search, the aggregate score, the
// aggregate rating count, and the popularity rank.
//
// # Why DuckDB
//
// DuckDB reads Parquet natively (read_parquet), so shard and catalog
// access is a single SQL query with no format code in this repository.
// The instance is in-memory; the Parquet files remain the only durable
// state.
//
// Store implements recommend.ShardReader and recommend.CatalogReader.
package storage
