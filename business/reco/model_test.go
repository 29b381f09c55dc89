package reco

import (
	"math"
	"testing"
	"time"

	"streamReco/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specItems() []domain.Item {
	return []domain.Item{
		{ItemID: "i1", Title: "Item One", ContentType: "movie", Genre: "drama"},
		{ItemID: "i2", Title: "Item Two", ContentType: "series", Genre: "drama"},
	}
}

// the worked example: u1 watched i1=300/i2=700, u2 watched i1=200/i2=100
func specEvents() []domain.WatchEvent {
	return []domain.WatchEvent{
		{UserID: "u1", ItemID: "i1", EventType: "watch", WatchSeconds: 300},
		{UserID: "u1", ItemID: "i2", EventType: "watch", WatchSeconds: 700},
		{UserID: "u2", ItemID: "i1", EventType: "watch", WatchSeconds: 200},
		{UserID: "u2", ItemID: "i2", EventType: "watch", WatchSeconds: 100},
	}
}

func TestBuildEngagement(t *testing.T) {
	catalog := map[string]domain.Item{
		"i1": {ItemID: "i1"},
		"i2": {ItemID: "i2"},
	}

	events := []domain.WatchEvent{
		{UserID: "u1", ItemID: "i1", WatchSeconds: 100},
		{UserID: "u1", ItemID: "i1", WatchSeconds: 50},
		{UserID: "u1", ItemID: "ghost-item", WatchSeconds: 999},
		{UserID: "u1", ItemID: "i2", WatchSeconds: -40},
		{UserID: "u2", ItemID: "i2", WatchSeconds: 10},
	}

	engagement := buildEngagement(catalog, events)

	require.Len(t, engagement, 2)
	assert.Equal(t, 150.0, engagement["u1"]["i1"], "events for the same pair accumulate")
	assert.Equal(t, 0.0, engagement["u1"]["i2"], "negative watch time contributes zero")
	assert.Equal(t, 10.0, engagement["u2"]["i2"])
	assert.NotContains(t, engagement["u1"], "ghost-item", "events outside the catalog are dropped")
}

func TestBuildEngagementOrderIndependent(t *testing.T) {
	catalog := map[string]domain.Item{"i1": {ItemID: "i1"}, "i2": {ItemID: "i2"}}

	forward := specEvents()
	reversed := make([]domain.WatchEvent, 0, len(forward))
	for i := len(forward) - 1; i >= 0; i-- {
		reversed = append(reversed, forward[i])
	}

	assert.Equal(t, buildEngagement(catalog, forward), buildEngagement(catalog, reversed))
}

func TestSimilarityKnownValue(t *testing.T) {
	m := BuildModel(specItems(), specEvents())

	i1 := m.itemIndex["i1"]
	i2 := m.itemIndex["i2"]

	// cosine of columns (300, 200) and (700, 100)
	want := 230000.0 / (math.Sqrt(130000) * math.Sqrt(500000))
	assert.InDelta(t, want, m.sim[i1][i2], 1e-12)
}

func TestSimilaritySymmetricZeroDiagonal(t *testing.T) {
	items := append(specItems(), domain.Item{ItemID: "i3", Title: "Item Three"})
	m := BuildModel(items, specEvents())

	n := m.ItemCount()
	require.Equal(t, 3, n)

	for i := 0; i < n; i++ {
		assert.Zero(t, m.sim[i][i], "diagonal must never carry self-similarity")
		for j := 0; j < n; j++ {
			assert.Equal(t, m.sim[i][j], m.sim[j][i], "sim(%d,%d) must be symmetric", i, j)
		}
	}

	// i3 has no engagement at all: zero norm means similarity 0, not NaN
	i3 := m.itemIndex["i3"]
	for j := 0; j < n; j++ {
		assert.Zero(t, m.sim[i3][j])
		assert.False(t, math.IsNaN(m.sim[i3][j]))
	}
}

func TestPopularTopK(t *testing.T) {
	items := []domain.Item{
		{ItemID: "i1", Title: "Item One", ContentType: "movie", Genre: "drama"},
		{ItemID: "i2", Title: "Item Two", ContentType: "series", Genre: "drama"},
		{ItemID: "i3", Title: "Item Three", ContentType: "movie", Genre: "comedy"},
	}
	m := BuildModel(items, specEvents())

	top := m.PopularTopK(10, "", "", nil)
	require.Len(t, top, 3)

	// i2 = 800, i1 = 500, i3 = 0 (never watched, still ranked)
	assert.Equal(t, "i2", top[0].ItemID)
	assert.Equal(t, 800.0, top[0].Score)
	assert.Equal(t, "i1", top[1].ItemID)
	assert.Equal(t, 500.0, top[1].Score)
	assert.Equal(t, "i3", top[2].ItemID)
	assert.Equal(t, 0.0, top[2].Score)

	for _, it := range top {
		assert.Equal(t, ReasonPopular, it.Reason)
	}
}

func TestPopularTopKTieBreak(t *testing.T) {
	items := []domain.Item{
		{ItemID: "b", Title: "B"},
		{ItemID: "a", Title: "A"},
		{ItemID: "c", Title: "C"},
	}
	events := []domain.WatchEvent{
		{UserID: "u1", ItemID: "a", WatchSeconds: 100},
		{UserID: "u1", ItemID: "b", WatchSeconds: 100},
		{UserID: "u1", ItemID: "c", WatchSeconds: 100},
	}
	m := BuildModel(items, events)

	// repeated calls with identical input stay deterministic
	for range 5 {
		top := m.PopularTopK(3, "", "", nil)
		require.Len(t, top, 3)
		assert.Equal(t, "a", top[0].ItemID)
		assert.Equal(t, "b", top[1].ItemID)
		assert.Equal(t, "c", top[2].ItemID)
	}
}

func TestPopularTopKFiltersBeforeTruncation(t *testing.T) {
	items := []domain.Item{
		{ItemID: "i1", Title: "One", ContentType: "movie", Genre: "drama"},
		{ItemID: "i2", Title: "Two", ContentType: "series", Genre: "drama"},
		{ItemID: "i3", Title: "Three", ContentType: "movie", Genre: "comedy"},
	}
	m := BuildModel(items, specEvents())

	// only one movie/drama exists; the list is not padded with other items
	top := m.PopularTopK(5, "movie", "drama", nil)
	require.Len(t, top, 1)
	assert.Equal(t, "i1", top[0].ItemID)

	// filter values are opaque: trimmed, case-insensitive, unknown -> empty
	assert.Len(t, m.PopularTopK(5, "  MOVIE ", " Drama", nil), 1)
	assert.Empty(t, m.PopularTopK(5, "podcast", "", nil))
}

func TestPopularTopKExcludeAndZeroK(t *testing.T) {
	m := BuildModel(specItems(), specEvents())

	top := m.PopularTopK(5, "", "", map[string]struct{}{"i2": {}})
	require.Len(t, top, 1)
	assert.Equal(t, "i1", top[0].ItemID)

	assert.Empty(t, m.PopularTopK(0, "", "", nil))
	assert.Empty(t, m.PopularTopK(-3, "", "", nil))
}

func TestBuildIdempotent(t *testing.T) {
	items := []domain.Item{
		{ItemID: "i1"}, {ItemID: "i2"}, {ItemID: "i3"}, {ItemID: "i4"},
	}
	events := []domain.WatchEvent{
		{UserID: "u1", ItemID: "i1", WatchSeconds: 123.5},
		{UserID: "u1", ItemID: "i2", WatchSeconds: 77},
		{UserID: "u2", ItemID: "i2", WatchSeconds: 400.25},
		{UserID: "u2", ItemID: "i3", WatchSeconds: 9},
		{UserID: "u3", ItemID: "i1", WatchSeconds: 51},
		{UserID: "u3", ItemID: "i3", WatchSeconds: 18},
	}

	a := BuildModel(items, events)
	b := BuildModel(items, events)

	assert.Equal(t, a.itemIDs, b.itemIDs)
	assert.Equal(t, a.engagement, b.engagement)
	assert.Equal(t, a.sim, b.sim, "similarity must be bit-for-bit reproducible")
	assert.Equal(t, a.popular, b.popular)
}

func TestUserHistory(t *testing.T) {
	ts := func(s string) time.Time {
		v, err := time.Parse(time.RFC3339, s)
		require.NoError(t, err)
		return v
	}

	items := []domain.Item{
		{ItemID: "i1", Title: "One"},
		{ItemID: "i2", Title: "Two"},
		{ItemID: "i3", Title: "Three"},
	}
	events := []domain.WatchEvent{
		{UserID: "u1", ItemID: "i1", WatchSeconds: 100, Timestamp: ts("2026-01-01T10:00:00Z")},
		{UserID: "u1", ItemID: "i1", WatchSeconds: 50, Timestamp: ts("2026-01-03T10:00:00Z")},
		{UserID: "u1", ItemID: "i2", WatchSeconds: 400, Timestamp: ts("2026-01-02T10:00:00Z")},
		{UserID: "u1", ItemID: "i3", WatchSeconds: 30},
		{UserID: "u2", ItemID: "i2", WatchSeconds: 999, Timestamp: ts("2026-01-05T10:00:00Z")},
	}
	m := BuildModel(items, events)

	hist := m.UserHistory("u1", 10)
	require.Len(t, hist, 3)

	// i1 has the newest event; per-item watch time is summed
	assert.Equal(t, "i1", hist[0].ItemID)
	assert.Equal(t, int64(150), hist[0].WatchSeconds)
	require.NotNil(t, hist[0].Timestamp)
	assert.Equal(t, ts("2026-01-03T10:00:00Z"), *hist[0].Timestamp)

	assert.Equal(t, "i2", hist[1].ItemID)
	assert.Equal(t, int64(400), hist[1].WatchSeconds)

	// unparsed timestamp sorts last and serializes as null
	assert.Equal(t, "i3", hist[2].ItemID)
	assert.Nil(t, hist[2].Timestamp)

	assert.Len(t, m.UserHistory("u1", 2), 2)
	assert.Empty(t, m.UserHistory("u1", 0))
	assert.Empty(t, m.UserHistory("nobody", 10))
}
