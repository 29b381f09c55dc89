package reco

import (
	"sort"
	"sync/atomic"
	"time"

	"streamReco/domain"
)

// Model is one immutable snapshot of everything the engine derives from a raw
// data load: the engagement matrix, the item-item similarity matrix and the
// global popularity ranking. A Model is never mutated after BuildModel returns;
// any number of requests may read it concurrently.
type Model struct {
	items     map[string]domain.Item
	itemIDs   []string // lexicographic column order over the full catalog
	itemIndex map[string]int

	// engagement[userID][itemID] = accumulated watch seconds
	engagement map[string]map[string]float64

	// sim[i][j] = cosine similarity between item columns i and j, diagonal 0
	sim [][]float64

	popular []popularEntry

	userEvents map[string][]domain.WatchEvent

	builtAt time.Time
}

// BuildModel derives a complete snapshot from the catalog and the raw event
// log. Events referencing items outside the catalog are dropped here and never
// surface anywhere downstream.
func BuildModel(items []domain.Item, events []domain.WatchEvent) *Model {
	catalog := make(map[string]domain.Item, len(items))
	for _, it := range items {
		catalog[it.ItemID] = it
	}

	itemIDs := make([]string, 0, len(catalog))
	for id := range catalog {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)

	itemIndex := make(map[string]int, len(itemIDs))
	for i, id := range itemIDs {
		itemIndex[id] = i
	}

	engagement := buildEngagement(catalog, events)

	userEvents := make(map[string][]domain.WatchEvent)
	for _, ev := range events {
		if _, known := catalog[ev.ItemID]; !known {
			continue
		}
		userEvents[ev.UserID] = append(userEvents[ev.UserID], ev)
	}

	return &Model{
		items:      catalog,
		itemIDs:    itemIDs,
		itemIndex:  itemIndex,
		engagement: engagement,
		sim:        buildSimilarity(itemIDs, itemIndex, engagement),
		popular:    buildPopularity(itemIDs, engagement),
		userEvents: userEvents,
		builtAt:    time.Now(),
	}
}

// ItemCount reports the number of catalog items in this snapshot.
func (m *Model) ItemCount() int { return len(m.itemIDs) }

// UserCount reports the number of users with at least one recorded event.
func (m *Model) UserCount() int { return len(m.engagement) }

func (m *Model) titleOf(itemID string) string {
	return m.items[itemID].Title
}

// Store publishes the current model snapshot. Readers load the pointer and
// never observe a half-built model; a rebuild swaps in a fully built
// replacement or leaves the previous snapshot serving.
type Store struct {
	model   atomic.Pointer[Model]
	loadErr atomic.Pointer[string]
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Publish(m *Model) {
	s.model.Store(m)
}

func (s *Store) Current() (*Model, bool) {
	m := s.model.Load()
	return m, m != nil
}

// SetLoadError retains the most recent build failure so the readiness
// endpoint can report why no model is being served.
func (s *Store) SetLoadError(err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	s.loadErr.Store(&msg)
}

func (s *Store) LoadError() string {
	if msg := s.loadErr.Load(); msg != nil {
		return *msg
	}
	return ""
}
