package reco

import (
	"sort"
)

// UserScores is the personalized scoring state for one user against a model
// snapshot: the user's engagement row as a dense vector, the matrix-vector
// product with the similarity matrix, and the heavy-watch exclusions.
type UserScores struct {
	// Scores[j] = sum over watched columns i of sim(i,j) * engagement(user,i)
	Scores []float64

	// UserVec is the dense engagement row in column order.
	UserVec []float64

	// WatchedIdx lists columns with positive engagement, ascending
	// (ascending index == ascending item id).
	WatchedIdx []int

	// Excluded holds item ids whose accumulated watch time is strictly
	// above the threshold.
	Excluded map[string]struct{}
}

// PersonalizedScores scores every item column for userID. The second return
// is false when personalization is impossible: the user has no engagement row
// or an all-zero one. Callers treat that as cold start; no NaN or undefined
// ranking is ever produced.
//
// Exactly at the threshold an item stays eligible; only strictly greater
// accumulated watch time excludes it.
func (m *Model) PersonalizedScores(userID string, threshold float64) (*UserScores, bool) {
	row, found := m.engagement[userID]
	if !found {
		return nil, false
	}

	n := len(m.itemIDs)
	userVec := make([]float64, n)
	total := 0.0
	for id, w := range row {
		if w <= 0 {
			continue
		}
		userVec[m.itemIndex[id]] = w
		total += w
	}
	if total <= 0 {
		return nil, false
	}

	watched := make([]int, 0, len(row))
	for i, w := range userVec {
		if w > 0 {
			watched = append(watched, i)
		}
	}

	excluded := make(map[string]struct{})
	for id, w := range row {
		if w > threshold {
			excluded[id] = struct{}{}
		}
	}

	scores := make([]float64, n)
	for j := 0; j < n; j++ {
		s := 0.0
		for _, i := range watched {
			s += m.sim[j][i] * userVec[i]
		}
		scores[j] = s
	}

	return &UserScores{
		Scores:     scores,
		UserVec:    userVec,
		WatchedIdx: watched,
		Excluded:   excluded,
	}, true
}

// RankedCandidates returns candidate columns sorted by score descending, item
// id ascending. Heavy-watched items are excluded; items with non-positive
// scores remain eligible, since the score is an ordering signal rather than a
// probability. Filters apply before any truncation by the caller.
func (m *Model) RankedCandidates(us *UserScores, contentType, genre string) []int {
	ct := normalizeFilter(contentType)
	g := normalizeFilter(genre)

	cand := make([]int, 0, len(m.itemIDs))
	for j, id := range m.itemIDs {
		if _, skip := us.Excluded[id]; skip {
			continue
		}
		if !matchesFilters(m.items[id], ct, g) {
			continue
		}
		cand = append(cand, j)
	}

	// columns are in id-ascending order, so a stable sort by score keeps
	// the deterministic tie break
	sort.SliceStable(cand, func(a, b int) bool {
		return us.Scores[cand[a]] > us.Scores[cand[b]]
	})

	return cand
}
