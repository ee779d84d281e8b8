package search

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"melodex/internal/models"
)

// Match paths a quick search resolves a track through
const (
	MatchTitle     = "title"
	MatchPerformer = "performer"
	MatchLyrics    = "lyrics"
	MatchGenre     = "genre"
)

// lyricsExcerptRadius is how much context surrounds a lyrics hit
const lyricsExcerptRadius = 50

// TrackHit is a quick-search result: the track plus which field matched.
// Lyrics hits carry an excerpt around the first occurrence of the term.
type TrackHit struct {
	Track         *models.Track `json:"track"`
	MatchedBy     string        `json:"matched_by"`
	LyricsExcerpt string        `json:"lyrics_excerpt,omitempty"`
	MatchPosition *int          `json:"match_position,omitempty"`
}

// QuickSearch matches public tracks against the term through every join
// path (title, performer name, lyrics, genre) and merges the hits into
// one list, deduplicated by track id with first-seen order preserved
// across the sources in that fixed order.
func (e *Engine) QuickSearch(ctx context.Context, term string, limit int64) ([]TrackHit, error) {
	var byTitle, byPerformer, byLyrics, byGenre []*models.Track

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		byTitle, err = e.catalog.FindTracksByTitle(gctx, term, limit)
		return err
	})
	g.Go(func() (err error) {
		byPerformer, err = e.catalog.FindTracksByPerformerName(gctx, term, limit)
		return err
	})
	g.Go(func() (err error) {
		byLyrics, err = e.catalog.FindTracksByLyrics(gctx, term, limit)
		return err
	})
	g.Go(func() (err error) {
		byGenre, err = e.catalog.FindTracksByGenre(gctx, term, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("quick search failed: %w", err)
	}

	seen := make(map[string]bool)
	hits := make([]TrackHit, 0, limit)

	appendHits := func(tracks []*models.Track, matchedBy string) {
		for _, track := range tracks {
			if int64(len(hits)) >= limit {
				return
			}
			key := track.ID.Hex()
			if seen[key] {
				continue
			}
			seen[key] = true

			hit := TrackHit{Track: track, MatchedBy: matchedBy}
			if matchedBy == MatchLyrics {
				excerpt, position := lyricsExcerpt(track.Lyrics, term)
				if position >= 0 {
					hit.LyricsExcerpt = excerpt
					hit.MatchPosition = &position
				}
			}
			hits = append(hits, hit)
		}
	}

	appendHits(byTitle, MatchTitle)
	appendHits(byPerformer, MatchPerformer)
	appendHits(byLyrics, MatchLyrics)
	appendHits(byGenre, MatchGenre)

	return hits, nil
}

// lyricsExcerpt cuts a window around the first case-insensitive
// occurrence of the term and reports the match's byte offset in the
// lyrics. The match is located in the lyrics themselves, never in a
// lowercased copy: case folding can change a rune's byte length, so
// offsets from a folded copy do not transfer back.
func lyricsExcerpt(lyrics, term string) (string, int) {
	matchStart, matchEnd := foldIndex(lyrics, term)
	if matchStart < 0 {
		return "", -1
	}

	start := matchStart - lyricsExcerptRadius
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(lyrics[start]) {
		start--
	}
	end := matchEnd + lyricsExcerptRadius
	if end > len(lyrics) {
		end = len(lyrics)
	}
	for end < len(lyrics) && !utf8.RuneStart(lyrics[end]) {
		end++
	}

	return lyrics[start:end], matchStart
}

// foldIndex reports the byte range of the first case-insensitive
// occurrence of term in s, or (-1, -1) when there is none
func foldIndex(s, term string) (int, int) {
	if term == "" {
		return -1, -1
	}
	for i := range s {
		if n, ok := foldMatch(s[i:], term); ok {
			return i, i + n
		}
	}
	return -1, -1
}

// foldMatch reports whether s starts with a case-insensitive match of
// term and how many bytes of s it spans
func foldMatch(s, term string) (int, bool) {
	var n int
	for _, want := range term {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return 0, false
		}
		if unicode.ToLower(r) != unicode.ToLower(want) {
			return 0, false
		}
		n += size
	}
	return n, true
}
