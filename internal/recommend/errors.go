// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

package recommend

import "errors"

// Sentinel errors for the recommendation pipeline. Callers match them
// with errors.Is; the storage layer wraps ErrShardNotFound and
// ErrCatalogUnavailable around the underlying I/O errors.
var (
	// ErrShardNotFound reports that a requested rating shard does not
	// exist in storage.
	ErrShardNotFound = errors.New("rating shard not found")

	// ErrCatalogUnavailable reports that the catalog table is missing
	// or unreadable.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrTargetUserMissing reports that the target user's row is absent
	// from a built matrix. The builder always includes it, so hitting
	// this error indicates a bug, not bad input.
	ErrTargetUserMissing = errors.New("target user row missing from matrix")

	// ErrInvalidParameter reports a rejected query parameter. Raised
	// before any shard is read.
	ErrInvalidParameter = errors.New("invalid parameter")
)
