package reco

import (
	"sort"
	"time"

	"streamReco/domain"
)

// UserHistory is a derived view over the raw events of one user: per item the
// total watch seconds and the most recent event timestamp, ordered most
// recent first (ties: more watch time first, then item id). k <= 0 yields an
// empty list; an unknown user yields an empty list, not an error.
func (m *Model) UserHistory(userID string, k int) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, 0)
	if k <= 0 {
		return out
	}

	events := m.userEvents[userID]
	if len(events) == 0 {
		return out
	}

	type agg struct {
		seconds float64
		last    int64 // unix nanos of the newest event, 0 when unparsed
	}
	byItem := make(map[string]*agg)
	for _, ev := range events {
		a, ok := byItem[ev.ItemID]
		if !ok {
			a = &agg{}
			byItem[ev.ItemID] = a
		}
		if ev.WatchSeconds > 0 {
			a.seconds += ev.WatchSeconds
		}
		if !ev.Timestamp.IsZero() && ev.Timestamp.UnixNano() > a.last {
			a.last = ev.Timestamp.UnixNano()
		}
	}

	ids := make([]string, 0, len(byItem))
	for id := range byItem {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := byItem[ids[i]], byItem[ids[j]]
		if a.last != b.last {
			return a.last > b.last
		}
		return a.seconds > b.seconds
	})

	if len(ids) > k {
		ids = ids[:k]
	}

	for _, id := range ids {
		a := byItem[id]
		entry := domain.HistoryEntry{
			ItemID:       id,
			Title:        m.titleOf(id),
			WatchSeconds: int64(a.seconds + 0.5),
		}
		if a.last > 0 {
			ts := time.Unix(0, a.last).UTC()
			entry.Timestamp = &ts
		}
		out = append(out, entry)
	}

	return out
}
