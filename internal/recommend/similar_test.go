// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package recommend

import (
	"reflect"
	"testing"
)

func itemSet(items ...int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func TestFindSimilarUsersQualification(t *testing.T) {
	// User 7 rated both target titles (5 reviews total), user 8 rated
	// only one (3 reviews total). With minSimilar=2 only user 7 stays.
	shard := []Interaction{
		{UserID: 7, ItemID: 1, Rating: 9},
		{UserID: 7, ItemID: 21, Rating: 8},
		{UserID: 7, ItemID: 100, Rating: 6},
		{UserID: 7, ItemID: 101, Rating: 7},
		{UserID: 7, ItemID: 102, Rating: 5},
		{UserID: 8, ItemID: 1, Rating: 10},
		{UserID: 8, ItemID: 200, Rating: 4},
		{UserID: 8, ItemID: 201, Rating: 6},
	}

	kept, users := FindSimilarUsers(shard, itemSet(1, 21), 2, 100, 500)

	if users != 1 {
		t.Fatalf("expected 1 qualifying user, got %d", users)
	}
	for _, r := range kept {
		if r.UserID != 7 {
			t.Errorf("user %d should not appear in output", r.UserID)
		}
	}
	if len(kept) != 5 {
		t.Errorf("expected all 5 records of user 7, got %d", len(kept))
	}
}

func TestFindSimilarUsersMaxReviewedIsStrict(t *testing.T) {
	// User at exactly maxReviewed reviews is disqualified (strict <).
	shard := []Interaction{
		{UserID: 1, ItemID: 1, Rating: 9},
		{UserID: 1, ItemID: 21, Rating: 8},
		{UserID: 1, ItemID: 30, Rating: 7},
	}

	if _, users := FindSimilarUsers(shard, itemSet(1, 21), 2, 100, 3); users != 0 {
		t.Errorf("user with total == maxReviewed must be disqualified, got %d users", users)
	}
	if _, users := FindSimilarUsers(shard, itemSet(1, 21), 2, 100, 4); users != 1 {
		t.Errorf("user with total < maxReviewed must qualify, got %d users", users)
	}
}

func TestFindSimilarUsersTruncatesByOverlap(t *testing.T) {
	// Users 10 and 20 overlap all three target titles, user 30 only
	// two. A budget of 2 keeps the two highest-overlap users.
	shard := []Interaction{
		{UserID: 30, ItemID: 1, Rating: 9},
		{UserID: 30, ItemID: 21, Rating: 9},
		{UserID: 10, ItemID: 1, Rating: 8},
		{UserID: 10, ItemID: 21, Rating: 8},
		{UserID: 10, ItemID: 40, Rating: 8},
		{UserID: 20, ItemID: 1, Rating: 7},
		{UserID: 20, ItemID: 21, Rating: 7},
		{UserID: 20, ItemID: 40, Rating: 7},
		{UserID: 20, ItemID: 50, Rating: 7},
	}

	kept, users := FindSimilarUsers(shard, itemSet(1, 21, 40), 2, 2, 500)

	if users != 2 {
		t.Fatalf("expected 2 users after truncation, got %d", users)
	}
	seen := make(map[int64]bool)
	for _, r := range kept {
		seen[r.UserID] = true
	}
	if !seen[10] || !seen[20] {
		t.Errorf("expected users 10 (overlap 3) and 20 (overlap 3), got %v", seen)
	}
	if seen[30] {
		t.Error("user 30 (overlap 2) should be truncated away")
	}
}

func TestFindSimilarUsersTieBreakOnUserID(t *testing.T) {
	// Equal overlap and a budget of 1: the lower user ID wins.
	shard := []Interaction{
		{UserID: 9, ItemID: 1, Rating: 9},
		{UserID: 9, ItemID: 21, Rating: 9},
		{UserID: 4, ItemID: 1, Rating: 8},
		{UserID: 4, ItemID: 21, Rating: 8},
	}

	kept, users := FindSimilarUsers(shard, itemSet(1, 21), 2, 1, 500)

	if users != 1 {
		t.Fatalf("expected 1 user, got %d", users)
	}
	for _, r := range kept {
		if r.UserID != 4 {
			t.Errorf("tie must break to the lower user ID, got user %d", r.UserID)
		}
	}
}

func TestFindSimilarUsersZeroBudget(t *testing.T) {
	shard := []Interaction{
		{UserID: 1, ItemID: 1, Rating: 9},
		{UserID: 1, ItemID: 21, Rating: 9},
	}

	kept, users := FindSimilarUsers(shard, itemSet(1, 21), 2, 0, 500)

	if kept != nil || users != 0 {
		t.Errorf("zero budget must return empty immediately, got %d records / %d users", len(kept), users)
	}
}

func TestFindSimilarUsersPreservesRecordOrder(t *testing.T) {
	shard := []Interaction{
		{UserID: 5, ItemID: 21, Rating: 7},
		{UserID: 6, ItemID: 99, Rating: 3},
		{UserID: 5, ItemID: 1, Rating: 9},
		{UserID: 5, ItemID: 50, Rating: 8},
	}

	kept, _ := FindSimilarUsers(shard, itemSet(1, 21), 2, 100, 500)

	want := []Interaction{
		{UserID: 5, ItemID: 21, Rating: 7},
		{UserID: 5, ItemID: 1, Rating: 9},
		{UserID: 5, ItemID: 50, Rating: 8},
	}
	if !reflect.DeepEqual(kept, want) {
		t.Errorf("kept records must preserve shard order:\ngot  %v\nwant %v", kept, want)
	}
}

func TestFindSimilarUsersNeverExceedsBudget(t *testing.T) {
	var shard []Interaction
	for userID := int64(1); userID <= 50; userID++ {
		shard = append(shard,
			Interaction{UserID: userID, ItemID: 1, Rating: 8},
			Interaction{UserID: userID, ItemID: 21, Rating: 8},
		)
	}

	for _, budget := range []int{1, 7, 49, 50, 51} {
		_, users := FindSimilarUsers(shard, itemSet(1, 21), 2, budget, 500)
		max := budget
		if max > 50 {
			max = 50
		}
		if users > max {
			t.Errorf("budget %d: returned %d users", budget, users)
		}
	}
}
