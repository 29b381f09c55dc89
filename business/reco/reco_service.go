package reco

import (
	"context"
	"errors"
	"fmt"

	"streamReco/domain"
	"streamReco/pkg/logger"
)

// ErrNotReady is returned while no model snapshot has been published, either
// because the first build has not finished or because it failed.
var ErrNotReady = errors.New("recommendation model not ready")

// CatalogLoader is the data-loading collaborator: it hands over the three
// typed tables, already parsed and cleaned. A load failure is an error, never
// a panic, so the boundary can report "not ready".
type CatalogLoader interface {
	LoadUsers(ctx context.Context) ([]domain.User, error)
	LoadItems(ctx context.Context) ([]domain.Item, error)
	LoadEvents(ctx context.Context) ([]domain.WatchEvent, error)
}

type RecoService struct {
	loader CatalogLoader
	store  *Store
	cfg    Config
}

func NewRecoService(loader CatalogLoader, store *Store, cfg Config) *RecoService {
	if cfg.MaxK <= 0 {
		cfg.MaxK = DefaultConfig().MaxK
	}
	if cfg.HistoryMaxK <= 0 {
		cfg.HistoryMaxK = DefaultConfig().HistoryMaxK
	}
	return &RecoService{
		loader: loader,
		store:  store,
		cfg:    cfg,
	}
}

// Reload loads the raw tables, builds a fresh model and swaps it in. The swap
// only happens after a fully successful build; on failure the previously
// published snapshot keeps serving, and if there is none the service stays
// unready with the failure retained for the readiness endpoint.
func (s *RecoService) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	users, err := s.loader.LoadUsers(ctx)
	if err != nil {
		return s.buildFailed(fmt.Errorf("load users: %w", err))
	}

	items, err := s.loader.LoadItems(ctx)
	if err != nil {
		return s.buildFailed(fmt.Errorf("load items: %w", err))
	}

	events, err := s.loader.LoadEvents(ctx)
	if err != nil {
		return s.buildFailed(fmt.Errorf("load events: %w", err))
	}

	model := BuildModel(items, events)
	s.store.Publish(model)
	RecoModelBuildsTotal.WithLabelValues("ok").Inc()

	logger.Info("recommendation model built",
		"users", len(users),
		"items", model.ItemCount(),
		"events", len(events),
		"engaged_users", model.UserCount(),
	)

	return nil
}

func (s *RecoService) buildFailed(err error) error {
	RecoModelBuildsTotal.WithLabelValues("error").Inc()
	s.store.SetLoadError(err)
	logger.Error("recommendation model build failed", "error", err.Error())
	return err
}

// Ready reports whether a snapshot is being served; when it is not, the
// second return carries the retained load failure detail.
func (s *RecoService) Ready() (bool, string) {
	if _, ok := s.store.Current(); ok {
		return true, ""
	}
	return false, s.store.LoadError()
}

// Popular returns the global ranking, filtered and truncated to k.
func (s *RecoService) Popular(ctx context.Context, k int, contentType, genre string) ([]domain.RecommendationItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	m, ok := s.store.Current()
	if !ok {
		return nil, ErrNotReady
	}

	return m.PopularTopK(s.capK(k, s.cfg.MaxK), contentType, genre, nil), nil
}

// Recommend runs the per-request state machine: cold start delegates entirely
// to the popularity ranking with fallback_used=true; otherwise personalized
// candidates are scored, filtered, explained, and topped up from the popular
// pool until k items are reached or the pool is exhausted. A threshold < 0
// selects the configured default.
func (s *RecoService) Recommend(ctx context.Context, userID string, k int, contentType, genre string, threshold float64) (domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("context error: %w", err)
	}

	m, ok := s.store.Current()
	if !ok {
		return domain.RecommendationResult{}, ErrNotReady
	}

	if threshold < 0 {
		threshold = s.cfg.ExcludeThresholdSeconds
	}
	k = s.capK(k, s.cfg.MaxK)
	tid := TraceIDFromContext(ctx)

	us, personalized := m.PersonalizedScores(userID, threshold)
	if !personalized {
		RecoFallbackServedTotal.Inc()
		logger.Debug("reco_fallback",
			"trace_id", tid,
			"user_id", userID,
			"k", k,
		)
		return domain.RecommendationResult{
			Items:        m.PopularTopK(k, contentType, genre, nil),
			FallbackUsed: true,
		}, nil
	}

	candidates := m.RankedCandidates(us, contentType, genre)

	items := make([]domain.RecommendationItem, 0)
	for _, j := range candidates {
		if len(items) >= k {
			break
		}
		id := m.itemIDs[j]
		items = append(items, domain.RecommendationItem{
			ItemID: id,
			Title:  m.titleOf(id),
			Score:  us.Scores[j],
			Reason: m.SeedReason(j, us),
		})
	}

	if len(items) < k {
		exclude := make(map[string]struct{}, len(items)+len(us.Excluded))
		for _, it := range items {
			exclude[it.ItemID] = struct{}{}
		}
		for id := range us.Excluded {
			exclude[id] = struct{}{}
		}
		topup := m.PopularTopK(k-len(items), contentType, genre, exclude)
		RecoTopUpItemsTotal.Add(float64(len(topup)))
		items = append(items, topup...)
	}

	logger.Debug("reco_recommend",
		"trace_id", tid,
		"user_id", userID,
		"k", k,
		"served", len(items),
	)

	return domain.RecommendationResult{Items: items, FallbackUsed: false}, nil
}

// History returns the user's aggregated watch history, most recent first.
func (s *RecoService) History(ctx context.Context, userID string, k int) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	m, ok := s.store.Current()
	if !ok {
		return nil, ErrNotReady
	}

	return m.UserHistory(userID, s.capK(k, s.cfg.HistoryMaxK)), nil
}

// capK bounds oversized k values; non-positive k passes through and yields an
// empty result downstream rather than an error.
func (s *RecoService) capK(k, max int) int {
	if k > max {
		return max
	}
	return k
}
