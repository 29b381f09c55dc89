package domain

import (
	"time"
)

// users.csv: user_id, name, age, gender, region
// Only user_id participates in scoring; the rest is passthrough profile data.
type User struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Region string `json:"region"`
}

// items.csv: item_id, title, content_type, genre
// content_type and genre are free-form strings from the catalog feed, not a
// closed vocabulary.
type Item struct {
	ItemID      string `json:"item_id"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Genre       string `json:"genre"`
}

// events.csv: user_id, item_id, event_type, watch_seconds, timestamp
type WatchEvent struct {
	UserID       string    `json:"user_id"`
	ItemID       string    `json:"item_id"`
	EventType    string    `json:"event_type"`
	WatchSeconds float64   `json:"watch_seconds"`
	Timestamp    time.Time `json:"timestamp"`
}
