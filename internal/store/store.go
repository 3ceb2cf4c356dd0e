package store

import (
	"encoding/json"
	"log"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// DateFormat is the layout of the day keys in the usage document.
const DateFormat = "2006-01-02"

// UsageStore maps a local calendar day (YYYY-MM-DD) to per-title accumulated
// seconds. Titles are used verbatim as identity keys. All leaf values are
// non-negative and may carry sub-second precision.
type UsageStore map[string]map[string]float64

// New returns an empty usage store.
func New() UsageStore {
	return make(UsageStore)
}

// Add accumulates seconds for a (date, title) leaf. Repeated sessions on the
// same title and day sum. Negative amounts are ignored.
func (s UsageStore) Add(date, title string, seconds float64) {
	if seconds < 0 {
		return
	}
	day, ok := s[date]
	if !ok {
		day = make(map[string]float64)
		s[date] = day
	}
	day[title] += seconds
}

// Seconds returns the accumulated seconds for a (date, title) leaf, zero if
// the leaf does not exist.
func (s UsageStore) Seconds(date, title string) float64 {
	return s[date][title]
}

// Dates returns all days with recorded usage, most recent first.
func (s UsageStore) Dates() []string {
	dates := make([]string, 0, len(s))
	for date := range s {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// Titles returns the titles recorded on a day, longest accumulated time
// first. Ties break alphabetically so the order is deterministic.
func (s UsageStore) Titles(date string) []string {
	day := s[date]
	titles := make([]string, 0, len(day))
	for title := range day {
		titles = append(titles, title)
	}
	sort.Slice(titles, func(i, j int) bool {
		if day[titles[i]] != day[titles[j]] {
			return day[titles[i]] > day[titles[j]]
		}
		return titles[i] < titles[j]
	})
	return titles
}

// DayTotal returns the total seconds recorded on a day.
func (s UsageStore) DayTotal(date string) float64 {
	var total float64
	for _, seconds := range s[date] {
		total += seconds
	}
	return total
}

// TotalSeconds returns the total seconds recorded across all days.
func (s UsageStore) TotalSeconds() float64 {
	var total float64
	for date := range s {
		total += s.DayTotal(date)
	}
	return total
}

// Load reads the usage document from the backend. A missing document yields
// an empty store; malformed content yields an empty store with a warning
// (prior data is discarded, not recovered); so does any other read failure.
// Load never fails: the tracker must always be able to start.
func Load(b Backend) UsageStore {
	data, err := b.Read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New()
		}
		log.Printf("Warning: could not read usage data, starting fresh: %v", err)
		return New()
	}

	var s UsageStore
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("Warning: corrupted usage data, starting fresh: %v", err)
		return New()
	}
	if s == nil {
		s = New()
	}
	return s
}

// Save serializes the full store and writes it through the backend.
func Save(b Backend, s UsageStore) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode usage data")
	}
	if err := b.Write(data); err != nil {
		return errors.Wrap(err, "failed to write usage data")
	}
	return nil
}
