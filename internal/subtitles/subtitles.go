// Anireco - Collaborative Anime Recommendation Engine
// Copyright 2026 Anireco Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anireco/anireco

// Package subtitles strips SubRip (.srt) files down to dialogue text,
// for building text corpora from fansub archives.
package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Clean copies dialogue lines from r to w. A timing line (one
// containing "-->") removes the cue number kept just before it, and
// blank lines are dropped, leaving only the spoken text.
func Clean(r io.Reader, w io.Writer) error {
	var kept []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "-->"):
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
		case strings.TrimSpace(line) != "":
			kept = append(kept, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read subtitles: %w", err)
	}

	writer := bufio.NewWriter(w)
	for _, line := range kept {
		if _, err := writer.WriteString(line); err != nil {
			return fmt.Errorf("write subtitles: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write subtitles: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("write subtitles: %w", err)
	}
	return nil
}

// CleanFile rewrites path in place, keeping only its dialogue lines.
func CleanFile(path string) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var out strings.Builder
	if err := Clean(strings.NewReader(string(in)), &out); err != nil {
		return fmt.Errorf("clean %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(out.String()), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
