// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package recommend

import "sort"

// candidate is the per-shard qualification summary for one user.
type candidate struct {
	userID int64

	// overlap is the number of the user's records in this shard whose
	// title is in the target set.
	overlap int

	// total is the user's total record count in this shard.
	total int
}

// FindSimilarUsers scans one shard's records for users whose taste
// overlaps the target set and returns their full interaction records.
//
// A user qualifies when they rated at least minSimilar of the target
// titles and fewer than maxReviewed titles overall in this shard.
// Qualification is evaluated per shard: a user spread across shards is
// judged on each shard independently.
//
// Qualifying users are ordered by descending overlap (ties broken by
// ascending user ID, matching the grouping order) and truncated to at
// most maxRemaining users. The returned records preserve the shard's
// original record order; the returned count is the number of distinct
// users retained.
func FindSimilarUsers(records []Interaction, targetItems map[int64]struct{}, minSimilar, maxRemaining, maxReviewed int) ([]Interaction, int) {
	if maxRemaining <= 0 {
		return nil, 0
	}

	// Group by user, counting overlap with the target set.
	byUser := make(map[int64]*candidate)
	for i := range records {
		c := byUser[records[i].UserID]
		if c == nil {
			c = &candidate{userID: records[i].UserID}
			byUser[records[i].UserID] = c
		}
		c.total++
		if _, ok := targetItems[records[i].ItemID]; ok {
			c.overlap++
		}
	}

	qualified := make([]*candidate, 0, len(byUser))
	for _, c := range byUser {
		if c.overlap >= minSimilar && c.total < maxReviewed {
			qualified = append(qualified, c)
		}
	}

	// Grouping order first, then a stable sort by overlap so equal
	// overlaps keep ascending user ID order.
	sort.Slice(qualified, func(i, j int) bool {
		return qualified[i].userID < qualified[j].userID
	})
	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].overlap > qualified[j].overlap
	})

	if len(qualified) > maxRemaining {
		qualified = qualified[:maxRemaining]
	}
	if len(qualified) == 0 {
		return nil, 0
	}

	selected := make(map[int64]struct{}, len(qualified))
	for _, c := range qualified {
		selected[c.userID] = struct{}{}
	}

	// Return the retained users' records in original shard order.
	kept := make([]Interaction, 0, len(records))
	for i := range records {
		if _, ok := selected[records[i].UserID]; ok {
			kept = append(kept, records[i])
		}
	}

	return kept, len(qualified)
}
