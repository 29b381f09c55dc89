package reco

import (
	"fmt"
)

// ReasonPopular annotates items served from the global ranking, whether as a
// cold-start fallback or as top-up.
const ReasonPopular = "popular"

// SeedReason explains candidate column j by its seed item: the watched item
// whose contribution sim(i,j) * engagement(user,i) to j's score is largest,
// consistent with the scoring formula. On exact ties the lowest item id wins
// (watched columns are scanned in ascending id order). A seed with a missing
// title falls back to its id rather than failing the request.
func (m *Model) SeedReason(j int, us *UserScores) string {
	best := -1
	bestContrib := 0.0
	for _, i := range us.WatchedIdx {
		c := m.sim[j][i] * us.UserVec[i]
		if best == -1 || c > bestContrib {
			best = i
			bestContrib = c
		}
	}
	if best == -1 {
		return ReasonPopular
	}

	seedID := m.itemIDs[best]
	title := m.items[seedID].Title
	if title == "" {
		title = seedID
	}

	return fmt.Sprintf("similar to item you watched: %s", title)
}
