// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

// Package main is the entry point for the anireco command line tool.
//
// Anireco recommends anime titles with user-based collaborative
// filtering over a partitioned rating archive. Given the titles a
// person liked, it scans Parquet rating shards for users with
// overlapping taste, scores every title those neighbors rated and
// ranks the results with a popularity damping that favors niche
// titles loved by a tight group over blockbusters everyone rated.
//
// # Commands
//
//	anireco -liked 21,1,30          ranked recommendations (default)
//	anireco search -query "bebop"   fuzzy catalog title lookup
//	anireco subclean episode.srt    strip .srt files to dialogue text
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Command line flags (engine tunables only)
//   - Environment variables (ANIRECO_ prefix, e.g. ANIRECO_ENGINE_K)
//   - Config file (config.yaml, or the path in ANIRECO_CONFIG / -config)
//   - Built-in defaults
//
// # Data Layout
//
// The rating archive is a directory of users_scores_<index>.parquet
// shards with user_id, anime_id and rating columns, next to a catalog
// Parquet with per-title metadata. Both are read in place through an
// embedded DuckDB instance; nothing is written.
//
// # Exit Status
//
// Exits non-zero on any error. An empty recommendation set is not an
// error: it prints "no recommendations" and exits zero.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/anireco/anireco/internal/config"
	"github.com/anireco/anireco/internal/logging"
	"github.com/anireco/anireco/internal/recommend"
	"github.com/anireco/anireco/internal/search"
	"github.com/anireco/anireco/internal/storage"
	"github.com/anireco/anireco/internal/subtitles"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "search":
			runSearch(args[1:])
			return
		case "subclean":
			runSubclean(args[1:])
			return
		}
	}
	runRecommend(args)
}

func runRecommend(args []string) {
	fs := flag.NewFlagSet("anireco", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	likedList := fs.String("liked", "", "comma-separated anime IDs the user liked (required)")
	asJSON := fs.Bool("json", false, "emit the full response as JSON")

	// Engine tunables. Defaults come from the config file; only flags
	// the caller sets explicitly override it.
	rating := fs.Float64("rating", 0, "rating assigned to every liked title")
	likedFraction := fs.Float64("liked-fraction", 0, "fraction of liked titles a candidate must share")
	minSimilar := fs.Int("min-similar", 0, "absolute overlap threshold (0 derives from liked-fraction)")
	coverage := fs.Int("coverage", 0, "highest shard position to visit")
	maxMembers := fs.Int("max-members", 0, "candidate user budget")
	maxReviewed := fs.Int("max-reviewed", 0, "exclusive cap on a candidate's total ratings")
	k := fs.Int("k", 0, "number of nearest neighbors")
	minCount := fs.Int("min-count", 0, "exclusive minimum neighbor count per title")
	minMean := fs.Float64("min-mean", 0, "exclusive minimum neighbor mean rating")
	seed := fs.Int64("seed", 0, "shard walk seed (0 picks a random order)")
	fs.Parse(args) //nolint:errcheck // ExitOnError

	cfg := loadConfig(*configPath)
	liked, err := parseLiked(*likedList)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid -liked list")
	}

	params := recommend.Params{
		Rating:        cfg.Engine.Rating,
		LikedFraction: cfg.Engine.LikedFraction,
		MinSimilar:    cfg.Engine.MinSimilar,
		Coverage:      cfg.Engine.Coverage,
		MaxMembers:    cfg.Engine.MaxMembers,
		MaxReviewed:   cfg.Engine.MaxReviewed,
		K:             cfg.Engine.K,
		MinCount:      cfg.Engine.MinCount,
		MinMean:       cfg.Engine.MinMean,
		Seed:          cfg.Engine.Seed,
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rating":
			params.Rating = *rating
		case "liked-fraction":
			params.LikedFraction = *likedFraction
		case "min-similar":
			params.MinSimilar = *minSimilar
		case "coverage":
			params.Coverage = *coverage
		case "max-members":
			params.MaxMembers = *maxMembers
		case "max-reviewed":
			params.MaxReviewed = *maxReviewed
		case "k":
			params.K = *k
		case "min-count":
			params.MinCount = *minCount
		case "min-mean":
			params.MinMean = *minMean
		case "seed":
			params.Seed = *seed
		}
	})

	store := openStore(cfg)
	defer closeStore(store)

	engine := recommend.NewEngine(store, store, logging.Logger())
	resp, err := engine.Recommend(context.Background(), recommend.Request{
		LikedItems: liked,
		Params:     params,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Recommendation failed")
	}

	if *asJSON {
		writeJSON(resp)
		return
	}
	if len(resp.Recommendations) == 0 {
		fmt.Println("no recommendations")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tANIME\tSCORE\tSCORED BY\tRECOMMEND")
	for i, rec := range resp.Recommendations {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.0f\t%.3f\n",
			i+1, rec.Name, rec.CatalogScore, rec.ScoredBy, rec.RecommendScore)
	}
	if err := w.Flush(); err != nil {
		logging.Fatal().Err(err).Msg("Failed to render table")
	}
}

func runSearch(args []string) {
	fs := flag.NewFlagSet("anireco search", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	query := fs.String("query", "", "title to look up (required)")
	asJSON := fs.Bool("json", false, "emit matches as JSON")
	fs.Parse(args) //nolint:errcheck // ExitOnError

	if strings.TrimSpace(*query) == "" {
		logging.Fatal().Msg("Missing -query")
	}

	cfg := loadConfig(*configPath)
	store := openStore(cfg)
	defer closeStore(store)

	catalog, err := store.Catalog(context.Background())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}

	matches := search.NewIndex(catalog).Search(*query)
	if *asJSON {
		writeJSON(matches)
		return
	}
	if len(matches) == 0 {
		fmt.Println("no matches")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tANIME\tSCORE\tPOPULARITY")
	for _, match := range matches {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\n",
			match.Entry.ItemID, match.Entry.Name, match.Entry.Score, match.Entry.Popularity)
	}
	if err := w.Flush(); err != nil {
		logging.Fatal().Err(err).Msg("Failed to render table")
	}
}

func runSubclean(args []string) {
	fs := flag.NewFlagSet("anireco subclean", flag.ExitOnError)
	fs.Parse(args) //nolint:errcheck // ExitOnError

	if fs.NArg() == 0 {
		logging.Fatal().Msg("Usage: anireco subclean <file.srt> [...]")
	}
	for _, path := range fs.Args() {
		if err := subtitles.CleanFile(path); err != nil {
			logging.Fatal().Err(err).Msg("Failed to clean subtitles")
		}
		logging.Info().Str("file", path).Msg("Subtitles cleaned")
	}
}

// loadConfig loads configuration and initializes logging from it.
func loadConfig(path string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		// Default logger; config not yet available.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Timestamp: true,
	})
	return cfg
}

func openStore(cfg *config.Config) *storage.Store {
	store, err := storage.Open(&cfg.Data, &cfg.Database, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open data store")
	}
	return store
}

func closeStore(store *storage.Store) {
	if err := store.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing data store")
	}
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logging.Fatal().Err(err).Msg("Failed to encode JSON")
	}
}

// parseLiked splits a comma-separated ID list.
func parseLiked(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("at least one liked anime ID is required")
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad anime ID %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
