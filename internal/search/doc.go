// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

// Package search provides fuzzy title lookup over the catalog.
//
// An Index holds tf-idf vectors built from normalized titles. Queries
// run the same normalization, score every title by cosine similarity
// and return the closest matches ordered by catalog popularity rank,
// most popular first. The index is immutable after construction and
// safe for concurrent queries.
package search
