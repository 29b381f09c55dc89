package domain

import (
	"time"
)

// RecommendationItem is the wire shape consumed by existing clients;
// field names must stay item_id / title / score / reason.
type RecommendationItem struct {
	ItemID string  `json:"item_id"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

type RecommendationResult struct {
	Items        []RecommendationItem `json:"items"`
	FallbackUsed bool                 `json:"fallback_used"`
}

// HistoryEntry aggregates a user's watch events per item.
// Timestamp is the most recent event for that item, nil when unknown.
type HistoryEntry struct {
	ItemID       string     `json:"item_id"`
	Title        string     `json:"title"`
	WatchSeconds int64      `json:"watch_seconds"`
	Timestamp    *time.Time `json:"timestamp"`
}
