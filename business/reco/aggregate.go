package reco

import (
	"streamReco/domain"
)

// buildEngagement reduces the raw event log into the user-item watch matrix:
// accumulated watch seconds per (user, item) pair. Events for items missing
// from the catalog are discarded; negative watch times contribute zero instead
// of failing the load. The result depends only on the multiset of events, not
// on their ordering.
func buildEngagement(catalog map[string]domain.Item, events []domain.WatchEvent) map[string]map[string]float64 {
	engagement := make(map[string]map[string]float64)

	for _, ev := range events {
		if _, known := catalog[ev.ItemID]; !known {
			continue
		}

		w := ev.WatchSeconds
		if w < 0 {
			w = 0
		}

		row, ok := engagement[ev.UserID]
		if !ok {
			row = make(map[string]float64)
			engagement[ev.UserID] = row
		}
		row[ev.ItemID] += w
	}

	return engagement
}
