package recommend

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"melodex/internal/models"
)

// PreferenceProfile holds a listener's top facets per dimension,
// derived from play history. Computed per request, never persisted.
type PreferenceProfile struct {
	TopGenres       []string
	TopPerformerIDs []primitive.ObjectID
	TopTags         []string
}

// HasSignal reports whether any dimension produced a preference
func (p *PreferenceProfile) HasSignal() bool {
	return len(p.TopGenres) > 0 || len(p.TopPerformerIDs) > 0 || len(p.TopTags) > 0
}

// weightTable accumulates play-weight per facet value while remembering
// first-encounter order, which breaks ties in Top.
type weightTable struct {
	weights map[string]int64
	order   []string
}

func newWeightTable() *weightTable {
	return &weightTable{weights: make(map[string]int64)}
}

func (t *weightTable) add(value string, weight int64) {
	if value == "" {
		return
	}
	if _, ok := t.weights[value]; !ok {
		t.order = append(t.order, value)
	}
	t.weights[value] += weight
}

// top returns up to k facet values by descending accumulated weight,
// ties resolved by first-encountered order
func (t *weightTable) top(k int) []string {
	ranked := make([]string, len(t.order))
	copy(ranked, t.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return t.weights[ranked[i]] > t.weights[ranked[j]]
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// BuildProfile computes the listener's weighted preference profile. Each
// history entry adds its play count to every facet value of the
// referenced track; entries whose track did not resolve are skipped.
// Each top-list is truncated to topK values. An empty history yields an
// empty profile, which callers treat as "no signal", not an error.
func BuildProfile(entries []*models.PlayHistoryEntry, tracks []*models.Track, topK int) *PreferenceProfile {
	playCounts := make(map[primitive.ObjectID]int64, len(entries))
	for _, entry := range entries {
		playCounts[entry.TrackID] = entry.PlayCount
	}

	genres := newWeightTable()
	performers := newWeightTable()
	tags := newWeightTable()

	for _, track := range tracks {
		weight, ok := playCounts[track.ID]
		if !ok {
			weight = 1
		}
		for _, genre := range track.Genres {
			genres.add(genre, weight)
		}
		for _, performerID := range track.PerformerIDs {
			performers.add(performerID.Hex(), weight)
		}
		for _, tag := range track.Tags {
			tags.add(tag, weight)
		}
	}

	profile := &PreferenceProfile{
		TopGenres: genres.top(topK),
		TopTags:   tags.top(topK),
	}
	for _, hex := range performers.top(topK) {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			continue
		}
		profile.TopPerformerIDs = append(profile.TopPerformerIDs, id)
	}

	return profile
}
