package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/pebble"

	"mastermind/pkg/logger"
	"mastermind/pkg/models"
)

var db *pebble.DB

const calendarPrefix = "calendar:"

// Open opens (or creates) a Pebble database at the given path and keeps
// a global handle for simple usage in this package.
func Open(path string) error {
	var err error
	logger.Info("opening_pebble_db", "path", path)
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("pebble_open_failed", "path", path, "error", err)
		return err
	}
	logger.Info("pebble_opened", "path", path)
	return nil
}

// Close closes the opened pebble DB if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	logger.Info("pebble_closed")
	return nil
}

// Ready reports whether the store is opened and ready.
func Ready() bool {
	return db != nil
}

func calendarKey(weekStart time.Time) string {
	return calendarPrefix + weekStart.UTC().Format(time.RFC3339)
}

// SaveCalendar stores a generated calendar keyed by its week start.
// Saving a calendar for a week that already exists overwrites it.
func SaveCalendar(resp *models.CalendarResponse) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	key := calendarKey(resp.Calendar.WeekStart)
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal calendar: %w", err)
	}
	if err := db.Set([]byte(key), data, pebble.Sync); err != nil {
		logger.Error("save_calendar_failed", "key", key, "error", err)
		return err
	}
	logger.Info("calendar_saved", "key", key, "entries", len(resp.Calendar.Entries))
	return nil
}

// GetCalendar looks up the calendar for the given week start. It returns
// pebble.ErrNotFound when no calendar has been stored for that week.
func GetCalendar(weekStart time.Time) (*models.CalendarResponse, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	val, closer, err := db.Get([]byte(calendarKey(weekStart)))
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	var resp models.CalendarResponse
	if err := json.Unmarshal(val, &resp); err != nil {
		return nil, fmt.Errorf("corrupt calendar record: %w", err)
	}
	return &resp, nil
}

// ListCalendarWeeks returns the week-start timestamps of all stored
// calendars in ascending order.
func ListCalendarWeeks() ([]time.Time, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	prefix := []byte(calendarPrefix)
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var weeks []time.Time
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}
		ts, err := time.Parse(time.RFC3339, string(iter.Key()[len(prefix):]))
		if err != nil {
			logger.Warn("skipping_malformed_calendar_key", "key", string(iter.Key()))
			continue
		}
		weeks = append(weeks, ts)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })
	return weeks, nil
}
