// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package recommend

import (
	"fmt"
	"math"
)

// Params holds the tunables of one recommendation query.
// Zero values take the defaults below.
type Params struct {
	// Rating is the synthetic rating assigned to the target's liked
	// titles. Default: 10.
	Rating float64 `json:"rating,omitempty"`

	// LikedFraction is the fraction of the liked list a user must share
	// to qualify as a neighbor candidate. Used only when MinSimilar is
	// zero; the absolute threshold is ceil(LikedFraction × len(liked)).
	// Default: 0.6.
	LikedFraction float64 `json:"liked_fraction,omitempty"`

	// MinSimilar is the absolute overlap threshold. Zero derives it
	// from LikedFraction.
	MinSimilar int `json:"min_similar,omitempty"`

	// Coverage bounds the shard walk: the walk stops after visiting a
	// shard whose index value is >= Coverage. Under the randomized
	// visitation order this is an index ceiling, not a count of shards
	// visited. Default: 1.
	Coverage int `json:"coverage,omitempty"`

	// MaxMembers bounds the number of qualifying users accumulated
	// across shards. Default: 100.
	MaxMembers int `json:"max_members,omitempty"`

	// MaxReviewed disqualifies users with this many or more reviews in
	// a single shard. Default: 500.
	MaxReviewed int `json:"max_reviewed,omitempty"`

	// K is the number of nearest neighbors used for scoring.
	// Default: 15.
	K int `json:"k,omitempty"`

	// MinCount is the strict lower bound on neighbor endorsements per
	// title: only count > MinCount survives. Default: 2.
	MinCount int `json:"min_count,omitempty"`

	// MinMean is the strict lower bound on the neighbors' mean rating
	// per title: only mean > MinMean survives. Default: 7.
	MinMean float64 `json:"min_mean,omitempty"`

	// Seed pins the shard visitation order for reproducible runs.
	// Zero draws a fresh random order per query.
	Seed int64 `json:"seed,omitempty"`
}

// DefaultParams returns the default query parameters.
func DefaultParams() Params {
	return Params{
		Rating:        10,
		LikedFraction: 0.6,
		Coverage:      1,
		MaxMembers:    100,
		MaxReviewed:   500,
		K:             15,
		MinCount:      2,
		MinMean:       7,
	}
}

// withDefaults returns a copy with zero values replaced by defaults.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (p Params) withDefaults() Params {
	def := DefaultParams()

	if p.Rating == 0 {
		p.Rating = def.Rating
	}
	if p.LikedFraction == 0 {
		p.LikedFraction = def.LikedFraction
	}
	if p.Coverage == 0 {
		p.Coverage = def.Coverage
	}
	if p.MaxMembers == 0 {
		p.MaxMembers = def.MaxMembers
	}
	if p.MaxReviewed == 0 {
		p.MaxReviewed = def.MaxReviewed
	}
	if p.K == 0 {
		p.K = def.K
	}
	if p.MinCount == 0 {
		p.MinCount = def.MinCount
	}
	if p.MinMean == 0 {
		p.MinMean = def.MinMean
	}
	return p
}

// Validate rejects unusable parameters. Called after withDefaults, so
// only explicitly bad values (negative, out of range, non-finite) remain.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (p Params) Validate() error {
	if p.Rating <= 0 || math.IsNaN(p.Rating) || math.IsInf(p.Rating, 0) {
		return fmt.Errorf("%w: rating must be a positive finite number, got %v", ErrInvalidParameter, p.Rating)
	}
	if p.MinSimilar < 0 {
		return fmt.Errorf("%w: min_similar must not be negative, got %d", ErrInvalidParameter, p.MinSimilar)
	}
	if p.MinSimilar == 0 && (p.LikedFraction <= 0 || p.LikedFraction > 1) {
		return fmt.Errorf("%w: liked_fraction must be in (0, 1], got %v", ErrInvalidParameter, p.LikedFraction)
	}
	if p.Coverage < 0 {
		return fmt.Errorf("%w: coverage must not be negative, got %d", ErrInvalidParameter, p.Coverage)
	}
	if p.MaxMembers <= 0 {
		return fmt.Errorf("%w: max_members must be positive, got %d", ErrInvalidParameter, p.MaxMembers)
	}
	if p.MaxReviewed < 1 {
		return fmt.Errorf("%w: max_reviewed must be at least 1, got %d", ErrInvalidParameter, p.MaxReviewed)
	}
	if p.K <= 0 {
		return fmt.Errorf("%w: k must be positive, got %d", ErrInvalidParameter, p.K)
	}
	if p.MinCount < 0 {
		return fmt.Errorf("%w: min_count must not be negative, got %d", ErrInvalidParameter, p.MinCount)
	}
	if math.IsNaN(p.MinMean) || math.IsInf(p.MinMean, 0) {
		return fmt.Errorf("%w: min_mean must be finite, got %v", ErrInvalidParameter, p.MinMean)
	}
	return nil
}

// minSimilarFor resolves the absolute overlap threshold for a liked list
// of the given length: MinSimilar when set, otherwise
// ceil(LikedFraction × likedCount), never below 1.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (p Params) minSimilarFor(likedCount int) int {
	if p.MinSimilar > 0 {
		return p.MinSimilar
	}
	minSimilar := int(math.Ceil(p.LikedFraction * float64(likedCount)))
	if minSimilar < 1 {
		minSimilar = 1
	}
	return minSimilar
}
