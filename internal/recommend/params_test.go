// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package recommend

import (
	"errors"
	"math"
	"testing"
)

func TestParamsWithDefaults(t *testing.T) {
	p := Params{}.withDefaults()

	if p.Rating != 10 {
		t.Errorf("Rating = %v, want 10", p.Rating)
	}
	if p.LikedFraction != 0.6 {
		t.Errorf("LikedFraction = %v, want 0.6", p.LikedFraction)
	}
	if p.Coverage != 1 {
		t.Errorf("Coverage = %d, want 1", p.Coverage)
	}
	if p.MaxMembers != 100 {
		t.Errorf("MaxMembers = %d, want 100", p.MaxMembers)
	}
	if p.MaxReviewed != 500 {
		t.Errorf("MaxReviewed = %d, want 500", p.MaxReviewed)
	}
	if p.K != 15 {
		t.Errorf("K = %d, want 15", p.K)
	}
	if p.MinCount != 2 {
		t.Errorf("MinCount = %d, want 2", p.MinCount)
	}
	if p.MinMean != 7 {
		t.Errorf("MinMean = %v, want 7", p.MinMean)
	}

	// Explicit values survive.
	p = Params{K: 5, MaxMembers: 10}.withDefaults()
	if p.K != 5 || p.MaxMembers != 10 {
		t.Errorf("explicit values must survive defaulting, got K=%d MaxMembers=%d", p.K, p.MaxMembers)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		ok     bool
	}{
		{"defaults", func(p *Params) {}, true},
		{"negative k", func(p *Params) { p.K = -1 }, false},
		{"negative max members", func(p *Params) { p.MaxMembers = -1 }, false},
		{"zero max reviewed", func(p *Params) { p.MaxReviewed = -1 }, false},
		{"negative min similar", func(p *Params) { p.MinSimilar = -1 }, false},
		{"negative coverage", func(p *Params) { p.Coverage = -1 }, false},
		{"nan rating", func(p *Params) { p.Rating = math.NaN() }, false},
		{"inf min mean", func(p *Params) { p.MinMean = math.Inf(1) }, false},
		{"fraction above one", func(p *Params) { p.LikedFraction = 1.2 }, false},
		{"explicit min similar skips fraction", func(p *Params) { p.MinSimilar = 3; p.LikedFraction = 5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok {
				if !errors.Is(err, ErrInvalidParameter) {
					t.Errorf("expected ErrInvalidParameter, got %v", err)
				}
			}
		})
	}
}

func TestMinSimilarFor(t *testing.T) {
	tests := []struct {
		minSimilar int
		fraction   float64
		liked      int
		want       int
	}{
		{0, 0.6, 4, 3},  // ceil(2.4)
		{0, 0.6, 5, 3},  // ceil(3.0)
		{0, 0.8, 6, 5},  // ceil(4.8)
		{0, 0.1, 1, 1},  // floor of 1
		{2, 0.6, 100, 2}, // explicit wins
	}

	for _, tt := range tests {
		p := DefaultParams()
		p.MinSimilar = tt.minSimilar
		p.LikedFraction = tt.fraction
		if got := p.minSimilarFor(tt.liked); got != tt.want {
			t.Errorf("minSimilarFor(%d) with minSimilar=%d fraction=%v: got %d, want %d",
				tt.liked, tt.minSimilar, tt.fraction, got, tt.want)
		}
	}
}
