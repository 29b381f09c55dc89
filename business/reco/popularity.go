package reco

import (
	"sort"
	"strings"

	"streamReco/domain"
)

type popularEntry struct {
	itemID string
	score  float64
}

// buildPopularity ranks every catalog item by total watch seconds across all
// users. Items nobody watched stay in the ranking with score 0. Order is
// score descending, then item id ascending, so repeated calls are stable.
func buildPopularity(itemIDs []string, engagement map[string]map[string]float64) []popularEntry {
	score := make(map[string]float64, len(itemIDs))

	userIDs := make([]string, 0, len(engagement))
	for u := range engagement {
		userIDs = append(userIDs, u)
	}
	sort.Strings(userIDs)

	for _, u := range userIDs {
		for id, w := range engagement[u] {
			score[id] += w
		}
	}

	entries := make([]popularEntry, 0, len(itemIDs))
	for _, id := range itemIDs {
		entries = append(entries, popularEntry{itemID: id, score: score[id]})
	}

	// itemIDs is already sorted ascending, so a stable sort keeps the
	// id-ascending tie break.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})

	return entries
}

// PopularTopK returns the globally most-watched items with reason "popular".
// Filters are applied before truncation; exclude drops specific item ids
// (used by the orchestrator's top-up). k <= 0 yields an empty list.
func (m *Model) PopularTopK(k int, contentType, genre string, exclude map[string]struct{}) []domain.RecommendationItem {
	out := make([]domain.RecommendationItem, 0)
	if k <= 0 {
		return out
	}

	ct := normalizeFilter(contentType)
	g := normalizeFilter(genre)

	for _, e := range m.popular {
		if len(out) >= k {
			break
		}
		if _, skip := exclude[e.itemID]; skip {
			continue
		}
		it := m.items[e.itemID]
		if !matchesFilters(it, ct, g) {
			continue
		}
		out = append(out, domain.RecommendationItem{
			ItemID: e.itemID,
			Title:  it.Title,
			Score:  e.score,
			Reason: ReasonPopular,
		})
	}

	return out
}

// Filter values are opaque strings from the request; they are matched after
// trimming and lowercasing, never validated against a fixed vocabulary.
func normalizeFilter(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matchesFilters(it domain.Item, contentType, genre string) bool {
	if contentType != "" && normalizeFilter(it.ContentType) != contentType {
		return false
	}
	if genre != "" && normalizeFilter(it.Genre) != genre {
		return false
	}
	return true
}
