// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package recommend

import (
	"fmt"
	"math"
	"sort"
)

// ItemStats aggregates the selected neighbors' ratings for one title.
type ItemStats struct {
	// Count is the number of neighbor ratings for the title.
	Count int `json:"count"`

	// Mean is the average neighbor rating for the title.
	Mean float64 `json:"mean"`
}

// ScoreNeighbors computes cosine similarity between the target user's
// row and every row of the matrix, selects the k most similar rows, and
// aggregates the selected users' ratings per title.
//
// The target's own row scores 1.0 and is always among the selected rows;
// it is excluded from the aggregate, so at most k-1 real neighbors
// contribute. When the matrix has fewer than k rows, all rows are
// selected. Similarity ties break on the lower row index.
//
// Returns the per-title aggregate and the number of neighbor users that
// contributed to it.
func ScoreNeighbors(m *Matrix, interactions []IndexedInteraction, k int) (map[int64]ItemStats, int, error) {
	targetRow, ok := m.RowOf(TargetUserID)
	if !ok {
		return nil, 0, fmt.Errorf("score neighbors: %w", ErrTargetUserMissing)
	}

	similarity := cosineToAll(m, targetRow)

	selected := topRows(similarity, k)

	selectedRows := make(map[int]struct{}, len(selected))
	neighbors := 0
	for _, row := range selected {
		if m.UserAt(row) == TargetUserID {
			continue
		}
		selectedRows[row] = struct{}{}
		neighbors++
	}

	// Aggregate the selected neighbors' interactions per title.
	sums := make(map[int64]float64)
	counts := make(map[int64]int)
	for i := range interactions {
		if interactions[i].UserID == TargetUserID {
			continue
		}
		if _, ok := selectedRows[interactions[i].UserIndex]; !ok {
			continue
		}
		sums[interactions[i].ItemID] += interactions[i].Rating
		counts[interactions[i].ItemID]++
	}

	stats := make(map[int64]ItemStats, len(counts))
	for itemID, count := range counts {
		stats[itemID] = ItemStats{
			Count: count,
			Mean:  sums[itemID] / float64(count),
		}
	}

	return stats, neighbors, nil
}

// cosineToAll computes the cosine similarity of the given row against
// every row of the matrix. Rows with a zero norm score 0.
func cosineToAll(m *Matrix, row int) []float64 {
	targetCols, targetVals := m.Row(row)

	target := make(map[int]float64, len(targetCols))
	var targetNorm float64
	for i, col := range targetCols {
		target[col] = targetVals[i]
		targetNorm += targetVals[i] * targetVals[i]
	}
	targetNorm = math.Sqrt(targetNorm)

	similarity := make([]float64, m.NumRows())
	if targetNorm == 0 {
		return similarity
	}

	for r := 0; r < m.NumRows(); r++ {
		cols, vals := m.Row(r)

		var dot, norm float64
		for i, col := range cols {
			norm += vals[i] * vals[i]
			if tv, ok := target[col]; ok {
				dot += tv * vals[i]
			}
		}
		if norm == 0 {
			continue
		}
		similarity[r] = dot / (targetNorm * math.Sqrt(norm))
	}

	return similarity
}

// topRows returns the indices of the k highest-similarity rows,
// ties broken by the lower row index. All rows when k >= len(similarity).
func topRows(similarity []float64, k int) []int {
	rows := make([]int, len(similarity))
	for i := range rows {
		rows[i] = i
	}
	if k >= len(rows) {
		return rows
	}

	sort.Slice(rows, func(i, j int) bool {
		if similarity[rows[i]] != similarity[rows[j]] {
			return similarity[rows[i]] > similarity[rows[j]]
		}
		return rows[i] < rows[j]
	})

	return rows[:k]
}
