package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"streamReco/domain"
)

const (
	usersFile  = "users.csv"
	itemsFile  = "items.csv"
	eventsFile = "events.csv"
)

// ErrDataLoad wraps every failure to read or shape a raw table, so callers can
// distinguish "the data is broken" from everything else with errors.Is.
var ErrDataLoad = errors.New("data load failed")

// CatalogRepository loads the three raw tables from a directory of CSV files.
// Parsing is lenient where a bad value only weakens one signal (watch time,
// timestamp, age) and strict where the file shape itself is wrong (missing
// file, missing required column).
type CatalogRepository struct {
	dir string
}

func NewCatalogRepository(dir string) *CatalogRepository {
	return &CatalogRepository{dir: dir}
}

func (r *CatalogRepository) LoadUsers(ctx context.Context) ([]domain.User, error) {
	rows, col, err := r.read(ctx, usersFile, []string{"user_id", "name", "age", "gender", "region"})
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(row[col["user_id"]])
		if id == "" {
			continue
		}
		users = append(users, domain.User{
			UserID: id,
			Name:   stringOrUnknown(row[col["name"]]),
			Age:    lenientInt(row[col["age"]]),
			Gender: stringOrUnknown(row[col["gender"]]),
			Region: stringOrUnknown(row[col["region"]]),
		})
	}

	return users, nil
}

func (r *CatalogRepository) LoadItems(ctx context.Context) ([]domain.Item, error) {
	rows, col, err := r.read(ctx, itemsFile, []string{"item_id", "title", "content_type", "genre"})
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(row[col["item_id"]])
		if id == "" {
			continue
		}
		items = append(items, domain.Item{
			ItemID:      id,
			Title:       stringOrUnknown(row[col["title"]]),
			ContentType: stringOrUnknown(row[col["content_type"]]),
			Genre:       stringOrUnknown(row[col["genre"]]),
		})
	}

	return items, nil
}

func (r *CatalogRepository) LoadEvents(ctx context.Context) ([]domain.WatchEvent, error) {
	rows, col, err := r.read(ctx, eventsFile, []string{"user_id", "item_id", "event_type", "watch_seconds", "timestamp"})
	if err != nil {
		return nil, err
	}

	events := make([]domain.WatchEvent, 0, len(rows))
	for _, row := range rows {
		userID := strings.TrimSpace(row[col["user_id"]])
		itemID := strings.TrimSpace(row[col["item_id"]])
		if userID == "" || itemID == "" {
			continue
		}
		events = append(events, domain.WatchEvent{
			UserID:       userID,
			ItemID:       itemID,
			EventType:    stringOrUnknown(row[col["event_type"]]),
			WatchSeconds: lenientWatchSeconds(row[col["watch_seconds"]]),
			Timestamp:    lenientTimestamp(row[col["timestamp"]]),
		})
	}

	return events, nil
}

// read loads one CSV file and resolves the required header columns. Short
// records are padded so row[col[...]] indexing stays safe.
func (r *CatalogRepository) read(ctx context.Context, name string, required []string) ([][]string, map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("context error: %w", err)
	}

	path := filepath.Join(r.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open %s: %v", ErrDataLoad, name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read %s: %v", ErrDataLoad, name, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: read %s: empty file", ErrDataLoad, name)
	}

	header := records[0]
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, c := range required {
		if _, ok := col[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: read %s: missing required columns %v", ErrDataLoad, name, missing)
	}

	width := 0
	for _, c := range required {
		if col[c] >= width {
			width = col[c] + 1
		}
	}

	rows := records[1:]
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}
	}

	return rows, col, nil
}

func stringOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}

func lenientInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// unparsable or negative watch time contributes zero; the row is kept
func lenientWatchSeconds(s string) float64 {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || w < 0 {
		return 0
	}
	return w
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// unparsable timestamps become the zero time; the engagement signal survives
func lenientTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
