// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package search

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/anireco/anireco/internal/recommend"
)

func testEntries() []recommend.CatalogEntry {
	return []recommend.CatalogEntry{
		{ItemID: 21, Name: "One Piece", ModName: "one piece", Popularity: 20},
		{ItemID: 459, Name: "One Piece Movie 1", ModName: "one piece movie 1", Popularity: 2420},
		{ItemID: 1, Name: "Cowboy Bebop", ModName: "cowboy bebop", Popularity: 43},
		{ItemID: 30, Name: "Neon Genesis Evangelion", ModName: "neon genesis evangelion", Popularity: 54},
	}
}

func TestSearchFindsExactTitle(t *testing.T) {
	ix := NewIndex(testEntries())

	matches := ix.Search("Cowboy Bebop")
	if len(matches) == 0 {
		t.Fatal("no matches for exact title")
	}
	if matches[0].Entry.ItemID != 1 {
		t.Fatalf("top match = %d, want 1", matches[0].Entry.ItemID)
	}
	if math.Abs(matches[0].Similarity-1) > 1e-9 {
		t.Errorf("exact match similarity = %v, want 1", matches[0].Similarity)
	}
}

func TestSearchNormalizesQuery(t *testing.T) {
	ix := NewIndex(testEntries())

	// Punctuation and case in the query must not matter.
	matches := ix.Search("ONE: piece!!!")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	for _, match := range matches {
		if match.Entry.ItemID != 21 && match.Entry.ItemID != 459 {
			t.Errorf("unexpected match %d", match.Entry.ItemID)
		}
	}
}

func TestSearchOrdersByPopularity(t *testing.T) {
	ix := NewIndex(testEntries())

	matches := ix.Search("one piece movie")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}

	// The movie scores a higher similarity, but the series has the
	// better popularity rank and is listed first.
	if matches[0].Entry.ItemID != 21 || matches[1].Entry.ItemID != 459 {
		got := []int64{matches[0].Entry.ItemID, matches[1].Entry.ItemID}
		if !reflect.DeepEqual(got, []int64{21, 459}) {
			t.Fatalf("order = %v, want [21 459]", got)
		}
	}
}

func TestSearchExcludesUnrelatedTitles(t *testing.T) {
	ix := NewIndex(testEntries())

	for _, match := range ix.Search("evangelion") {
		if match.Entry.ItemID != 30 {
			t.Errorf("unrelated title %d matched", match.Entry.ItemID)
		}
	}
}

func TestSearchNoMatch(t *testing.T) {
	ix := NewIndex(testEntries())

	if matches := ix.Search("xylophone"); matches != nil {
		t.Fatalf("got %v, want nil", matches)
	}
	if matches := ix.Search("!!!"); matches != nil {
		t.Fatalf("got %v for empty query, want nil", matches)
	}
}

func TestSearchCapsResults(t *testing.T) {
	entries := make([]recommend.CatalogEntry, 25)
	for i := range entries {
		entries[i] = recommend.CatalogEntry{
			ItemID:     int64(i),
			ModName:    fmt.Sprintf("gundam series %d", i),
			Popularity: int64(100 - i),
		}
	}
	ix := NewIndex(entries)

	matches := ix.Search("gundam")
	if len(matches) != maxResults {
		t.Fatalf("got %d matches, want %d", len(matches), maxResults)
	}
}

func TestIndexFallsBackToName(t *testing.T) {
	ix := NewIndex([]recommend.CatalogEntry{
		{ItemID: 5, Name: "Fullmetal Alchemist: Brotherhood", Popularity: 3},
	})

	matches := ix.Search("fullmetal alchemist")
	if len(matches) != 1 || matches[0].Entry.ItemID != 5 {
		t.Fatalf("matches = %v, want item 5", matches)
	}
}

func TestVectorizeIsNormalized(t *testing.T) {
	ix := NewIndex(testEntries())

	vec := ix.vectorize(tokenize("one piece movie"))
	norm := 0.0
	for _, tw := range vec {
		norm += tw.weight * tw.weight
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Fatalf("squared norm = %v, want 1", norm)
	}
}

func TestTokenizeDropsShortTerms(t *testing.T) {
	got := tokenize("one piece movie 1 x")
	want := []string{"one", "piece", "movie"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
}
