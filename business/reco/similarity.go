package reco

import (
	"math"
	"sort"
)

// buildSimilarity computes the dense item-item cosine similarity matrix over
// the engagement columns: sim(i,j) = dot(col_i, col_j) / (|col_i| * |col_j|),
// with 0 whenever either column has no engagement at all. The diagonal is set
// to 0 so self-similarity can never leak into scoring.
//
// The dense form is O(items^2 * users) time and O(items^2) memory, which is
// fine at the catalog sizes this service targets but does not scale to large
// catalogs.
//
// Users and their engaged columns are visited in sorted order so repeated
// builds from the same data accumulate floats identically.
func buildSimilarity(itemIDs []string, itemIndex map[string]int, engagement map[string]map[string]float64) [][]float64 {
	n := len(itemIDs)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	if n == 0 {
		return sim
	}

	norms := make([]float64, n)

	userIDs := make([]string, 0, len(engagement))
	for u := range engagement {
		userIDs = append(userIDs, u)
	}
	sort.Strings(userIDs)

	cols := make([]int, 0, 64)
	for _, u := range userIDs {
		row := engagement[u]

		cols = cols[:0]
		for id, w := range row {
			if w > 0 {
				cols = append(cols, itemIndex[id])
			}
		}
		sort.Ints(cols)

		for a := 0; a < len(cols); a++ {
			i := cols[a]
			wi := row[itemIDs[i]]
			norms[i] += wi * wi
			for b := a + 1; b < len(cols); b++ {
				j := cols[b]
				sim[i][j] += wi * row[itemIDs[j]]
			}
		}
	}

	for i := range norms {
		norms[i] = math.Sqrt(norms[i])
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if norms[i] == 0 || norms[j] == 0 {
				sim[i][j] = 0
			} else {
				sim[i][j] /= norms[i] * norms[j]
			}
			sim[j][i] = sim[i][j]
		}
		sim[i][i] = 0
	}

	return sim
}
