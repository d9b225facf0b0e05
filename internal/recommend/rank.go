// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// Rank joins the neighbor aggregates with the catalog and orders the
// surviving titles by a popularity-damped recommendation score.
//
// A title survives only when all of the following hold:
//
//   - it exists in the catalog (missing titles are dropped explicitly;
//     the count of drops is logged at debug level)
//   - it is not in the target's own liked set
//   - count > minCount and mean > minMean, both strict
//   - its catalog rating count is positive, so the damping logarithm
//     is defined
//
// The damping shrinks titles that are popular catalog-wide:
//
//	adjusted = count² / 2^ln(scored_by)
//	score    = mean × adjusted
//
// so a handful of neighbor endorsements for a niche title outweighs the
// same handful for a blockbuster.
//
// Returns an error wrapping ErrInvalidParameter when a catalog rating
// count is NaN or infinite: the logarithm of such a value would poison
// the ordering silently.
func Rank(stats map[int64]ItemStats, catalog map[int64]CatalogEntry, liked map[int64]struct{}, minCount int, minMean float64, logger zerolog.Logger) ([]Recommendation, error) {
	// Deterministic iteration order so equal scores rank identically
	// across runs.
	itemIDs := make([]int64, 0, len(stats))
	for itemID := range stats {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })

	recs := make([]Recommendation, 0, len(itemIDs))
	droppedNoCatalog := 0
	droppedZeroScoredBy := 0

	for _, itemID := range itemIDs {
		entry, ok := catalog[itemID]
		if !ok {
			droppedNoCatalog++
			continue
		}
		if _, ok := liked[itemID]; ok {
			continue
		}

		s := stats[itemID]
		if s.Count <= minCount || s.Mean <= minMean {
			continue
		}

		if math.IsNaN(entry.ScoredBy) || math.IsInf(entry.ScoredBy, 0) {
			return nil, fmt.Errorf("%w: catalog rating count for title %d is not finite (%v)", ErrInvalidParameter, itemID, entry.ScoredBy)
		}
		if entry.ScoredBy <= 0 {
			droppedZeroScoredBy++
			continue
		}

		adjusted := float64(s.Count) * float64(s.Count) / math.Exp2(math.Log(entry.ScoredBy))

		recs = append(recs, Recommendation{
			ItemID:         itemID,
			Name:           entry.Name,
			CatalogScore:   entry.Score,
			ScoredBy:       entry.ScoredBy,
			RecommendScore: s.Mean * adjusted,
		})
	}

	if droppedNoCatalog > 0 || droppedZeroScoredBy > 0 {
		logger.Debug().
			Int("no_catalog_entry", droppedNoCatalog).
			Int("zero_rating_count", droppedZeroScoredBy).
			Msg("dropped titles during ranking")
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RecommendScore > recs[j].RecommendScore
	})

	return recs, nil
}
