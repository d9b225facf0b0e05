// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package search

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/anireco/anireco/internal/recommend"
)

// maxResults caps the number of hits a query returns.
const maxResults = 10

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9 ]`)

// Index is a tf-idf index over catalog titles.
type Index struct {
	entries []recommend.CatalogEntry
	vocab   map[string]int
	idf     []float64
	rows    [][]termWeight
}

// termWeight is one nonzero component of an l2-normalized title vector.
type termWeight struct {
	term   int
	weight float64
}

// Match pairs a catalog entry with its similarity to the query.
type Match struct {
	Entry      recommend.CatalogEntry
	Similarity float64
}

// NewIndex builds the tf-idf vectors for the given catalog. Titles are
// indexed by their pre-normalized form when the catalog carries one,
// falling back to normalizing the display name.
func NewIndex(entries []recommend.CatalogEntry) *Index {
	ix := &Index{
		entries: entries,
		vocab:   make(map[string]int),
		rows:    make([][]termWeight, len(entries)),
	}

	// First pass: vocabulary and document frequencies.
	docs := make([][]string, len(entries))
	docFreq := make(map[int]int)
	for i, entry := range entries {
		tokens := tokenize(titleOf(entry))
		docs[i] = tokens
		seen := make(map[int]struct{}, len(tokens))
		for _, token := range tokens {
			term, ok := ix.vocab[token]
			if !ok {
				term = len(ix.vocab)
				ix.vocab[token] = term
			}
			if _, dup := seen[term]; !dup {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	// Smoothed idf: every term behaves as if seen in one extra document.
	ix.idf = make([]float64, len(ix.vocab))
	numDocs := float64(len(entries))
	for term := range ix.idf {
		ix.idf[term] = math.Log((1+numDocs)/float64(1+docFreq[term])) + 1
	}

	for i, tokens := range docs {
		ix.rows[i] = ix.vectorize(tokens)
	}
	return ix
}

// Search returns up to ten catalog entries matching the query, ordered
// by popularity rank ascending so the best-known title comes first.
func (ix *Index) Search(query string) []Match {
	queryVec := ix.vectorize(tokenize(normalize(query)))
	if len(queryVec) == 0 {
		return nil
	}
	queryWeights := make(map[int]float64, len(queryVec))
	for _, tw := range queryVec {
		queryWeights[tw.term] = tw.weight
	}

	var matches []Match
	for i, row := range ix.rows {
		sim := 0.0
		for _, tw := range row {
			sim += tw.weight * queryWeights[tw.term]
		}
		if sim > 0 {
			matches = append(matches, Match{Entry: ix.entries[i], Similarity: sim})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Similarity > matches[b].Similarity
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Entry.Popularity < matches[b].Entry.Popularity
	})
	return matches
}

// vectorize builds the l2-normalized tf-idf vector of tokens. Tokens
// outside the vocabulary are ignored.
func (ix *Index) vectorize(tokens []string) []termWeight {
	counts := make(map[int]int)
	for _, token := range tokens {
		if term, ok := ix.vocab[token]; ok {
			counts[term]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vec := make([]termWeight, 0, len(counts))
	norm := 0.0
	for term, count := range counts {
		weight := float64(count) * ix.idf[term]
		vec = append(vec, termWeight{term: term, weight: weight})
		norm += weight * weight
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].weight /= norm
	}
	sort.Slice(vec, func(a, b int) bool { return vec[a].term < vec[b].term })
	return vec
}

// titleOf prefers the catalog's pre-normalized title column.
func titleOf(entry recommend.CatalogEntry) string {
	if entry.ModName != "" {
		return entry.ModName
	}
	return normalize(entry.Name)
}

// normalize lowercases and strips everything but letters, digits and
// spaces, matching how the catalog's Mod_name column was produced.
func normalize(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}

// tokenize splits a normalized title into terms, dropping single
// characters.
func tokenize(s string) []string {
	fields := strings.Fields(s)
	tokens := fields[:0]
	for _, field := range fields {
		if len(field) >= 2 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}
