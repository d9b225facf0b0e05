// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package recommend

import (
	"context"
	"time"
)

// TargetUserID is the reserved user identifier for the query's target
// profile. Rating logs never contain it; the pipeline injects it.
const TargetUserID int64 = 0

// Interaction is one (user, title, rating) record from a rating shard.
// Immutable once read.
type Interaction struct {
	// UserID identifies the reviewer. Zero is reserved for the target.
	UserID int64 `json:"user_id"`

	// ItemID identifies the rated title.
	ItemID int64 `json:"item_id"`

	// Rating is the numeric score the user gave the title.
	Rating float64 `json:"rating"`
}

// CatalogEntry is one title's metadata from the catalog table.
type CatalogEntry struct {
	// ItemID identifies the title.
	ItemID int64 `json:"item_id"`

	// Name is the display name.
	Name string `json:"name"`

	// ModName is the normalized (lowercased, punctuation-stripped) name
	// used by the text search index.
	ModName string `json:"mod_name,omitempty"`

	// Score is the catalog-wide aggregate rating.
	Score float64 `json:"score"`

	// ScoredBy is the number of catalog-wide ratings behind Score.
	ScoredBy float64 `json:"scored_by"`

	// Popularity is the catalog popularity rank (lower is more popular).
	Popularity int64 `json:"popularity"`
}

// Recommendation is one ranked output row.
type Recommendation struct {
	// ItemID identifies the recommended title.
	ItemID int64 `json:"item_id"`

	// Name is the title's display name from the catalog.
	Name string `json:"name"`

	// CatalogScore is the catalog-wide aggregate rating.
	CatalogScore float64 `json:"catalog_score"`

	// ScoredBy is the catalog-wide rating count.
	ScoredBy float64 `json:"scored_by"`

	// RecommendScore is the popularity-damped neighborhood score used
	// for ordering. Higher is better.
	RecommendScore float64 `json:"recommend_score"`
}

// Request is a single recommendation query.
type Request struct {
	// LikedItems is the target profile: titles the caller likes.
	// Must be non-empty.
	LikedItems []int64 `json:"liked_items"`

	// Params are the query tunables. Zero values take defaults.
	Params Params `json:"params"`

	// RequestID is a unique identifier for tracing.
	// Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the result of a recommendation query.
// An empty Recommendations slice with a nil error is a valid outcome:
// no title met the thresholds.
type Response struct {
	// Recommendations is the ranked output, best first.
	Recommendations []Recommendation `json:"recommendations"`

	// Metadata carries timing and diagnostic information.
	Metadata Metadata `json:"metadata"`
}

// Metadata carries timing and diagnostic information for one query.
type Metadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// ShardsVisited is the number of rating shards read.
	ShardsVisited int `json:"shards_visited"`

	// CandidateUsers is the number of qualifying users accumulated
	// across the visited shards.
	CandidateUsers int `json:"candidate_users"`

	// Neighbors is the number of nearest-neighbor users that
	// contributed ratings to the aggregate.
	Neighbors int `json:"neighbors"`

	// LatencyMS is the total query latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// ShardReader yields one partition of interaction records at a time.
// Implemented by the storage layer.
type ShardReader interface {
	// NumShards returns the number of addressable shards (indices 0..N-1).
	NumShards() int

	// ReadShard returns the full set of interaction records for the
	// shard at the given index, or an error wrapping ErrShardNotFound
	// if the shard's backing storage is absent.
	ReadShard(ctx context.Context, index int) ([]Interaction, error)
}

// CatalogReader yields the catalog metadata table.
// Implemented by the storage layer.
type CatalogReader interface {
	// Catalog returns all catalog entries, or an error wrapping
	// ErrCatalogUnavailable if the table is missing or unreadable.
	Catalog(ctx context.Context) ([]CatalogEntry, error)
}

// TargetProfile converts a liked-title list into synthetic interactions
// for TargetUserID, each carrying the given rating.
func TargetProfile(likedItems []int64, rating float64) []Interaction {
	profile := make([]Interaction, 0, len(likedItems))
	for _, itemID := range likedItems {
		profile = append(profile, Interaction{
			UserID: TargetUserID,
			ItemID: itemID,
			Rating: rating,
		})
	}
	return profile
}
