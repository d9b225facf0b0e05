// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package recommend

import "sort"

// IndexedInteraction is an interaction annotated with its dense matrix
// coordinates. The pipeline uses it to map neighbor rows back to user
// and title identifiers.
type IndexedInteraction struct {
	Interaction

	// UserIndex is the row assigned to this interaction's user.
	UserIndex int

	// ItemIndex is the column assigned to this interaction's title.
	ItemIndex int
}

// Matrix is a sparse user-title rating matrix in CSR layout, sliceable
// by row. Row and column indices are assigned over the sorted distinct
// identifier domains, so rebuilding from identical input reproduces
// identical indices; since user IDs are non-negative and the target is
// zero, the target always lands in row 0 when present.
type Matrix struct {
	rowPtr []int
	colIdx []int
	values []float64

	users []int64 // row -> user ID
	items []int64 // col -> item ID

	userRow map[int64]int // user ID -> row
	itemCol map[int64]int // item ID -> col
}

// NumRows returns the number of user rows.
func (m *Matrix) NumRows() int { return len(m.users) }

// NumCols returns the number of title columns.
func (m *Matrix) NumCols() int { return len(m.items) }

// RowOf returns the row index assigned to the given user ID.
func (m *Matrix) RowOf(userID int64) (int, bool) {
	row, ok := m.userRow[userID]
	return row, ok
}

// UserAt returns the user ID assigned to the given row.
func (m *Matrix) UserAt(row int) int64 { return m.users[row] }

// Row returns the column indices and values of the row's nonzeros.
// The returned slices alias the matrix; callers must not modify them.
func (m *Matrix) Row(row int) (cols []int, values []float64) {
	start, end := m.rowPtr[row], m.rowPtr[row+1]
	return m.colIdx[start:end], m.values[start:end]
}

// BuildMatrix merges the target profile with the accumulated neighbor
// interactions and assembles the sparse rating matrix.
//
// Dense indices come from sorting the distinct user and title IDs in
// ascending numeric order and assigning 0..n-1 in that order. When the
// same (user, title) pair appears more than once, the last occurrence
// wins; construction never sums duplicates.
//
// The returned interactions are the concatenated input (target profile
// first) annotated with their dense coordinates, duplicates included.
func BuildMatrix(targetProfile, accumulated []Interaction) (*Matrix, []IndexedInteraction) {
	interactions := make([]Interaction, 0, len(targetProfile)+len(accumulated))
	interactions = append(interactions, targetProfile...)
	interactions = append(interactions, accumulated...)

	userRow := denseIndex(interactions, func(r Interaction) int64 { return r.UserID })
	itemCol := denseIndex(interactions, func(r Interaction) int64 { return r.ItemID })

	users := make([]int64, len(userRow))
	for id, row := range userRow {
		users[row] = id
	}
	items := make([]int64, len(itemCol))
	for id, col := range itemCol {
		items[col] = id
	}

	indexed := make([]IndexedInteraction, 0, len(interactions))
	for _, r := range interactions {
		indexed = append(indexed, IndexedInteraction{
			Interaction: r,
			UserIndex:   userRow[r.UserID],
			ItemIndex:   itemCol[r.ItemID],
		})
	}

	// Collapse duplicates with overwrite semantics, then assemble CSR.
	rowEntries := make([]map[int]float64, len(users))
	for i := range rowEntries {
		rowEntries[i] = make(map[int]float64)
	}
	for _, r := range indexed {
		rowEntries[r.UserIndex][r.ItemIndex] = r.Rating
	}

	nnz := 0
	for _, entries := range rowEntries {
		nnz += len(entries)
	}

	m := &Matrix{
		rowPtr:  make([]int, len(users)+1),
		colIdx:  make([]int, 0, nnz),
		values:  make([]float64, 0, nnz),
		users:   users,
		items:   items,
		userRow: userRow,
		itemCol: itemCol,
	}

	for row, entries := range rowEntries {
		cols := make([]int, 0, len(entries))
		for col := range entries {
			cols = append(cols, col)
		}
		sort.Ints(cols)
		for _, col := range cols {
			m.colIdx = append(m.colIdx, col)
			m.values = append(m.values, entries[col])
		}
		m.rowPtr[row+1] = len(m.colIdx)
	}

	return m, indexed
}

// denseIndex assigns 0..n-1 to the distinct values of key over the
// records, in ascending numeric order.
func denseIndex(records []Interaction, key func(Interaction) int64) map[int64]int {
	distinct := make(map[int64]struct{}, len(records))
	for _, r := range records {
		distinct[key(r)] = struct{}{}
	}

	ids := make([]int64, 0, len(distinct))
	for id := range distinct {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return index
}
