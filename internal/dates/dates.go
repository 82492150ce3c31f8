// Package dates renders and parses the calendar dates used by the exercise
// log: a storage layout (YYYY-MM-DD) for persisted defaults and a display
// layout (weekday month day year) for every response. All parsing resolves
// to day granularity in UTC so range comparisons are independent of the
// wall-clock offset of the configured timezone.
package dates

import (
	"fmt"
	"time"

	"exercise-tracker/internal/config"
)

// InvalidDate is rendered when a stored or supplied date string cannot be
// parsed, matching the original service's formatter output.
const InvalidDate = "Invalid date"

// Formatter holds the timezone and layouts from configuration. The zero
// value is not usable; construct with New.
type Formatter struct {
	loc     *time.Location
	storage string
	display string
	now     func() time.Time
}

// New builds a Formatter from configuration. It fails if the timezone name
// is unknown to the host's zone database.
func New(cfg config.DatesConfig) (*Formatter, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	return &Formatter{
		loc:     loc,
		storage: cfg.StorageLayout,
		display: cfg.DisplayLayout,
		now:     time.Now,
	}, nil
}

// WithClock replaces the time source. Used by tests to pin "today".
func (f *Formatter) WithClock(now func() time.Time) *Formatter {
	f.now = now
	return f
}

// Today returns the current date in the configured timezone, rendered in the
// storage layout. This is the default date for an exercise logged without one.
func (f *Formatter) Today() string {
	return f.now().In(f.loc).Format(f.storage)
}

// Display renders a raw date string in the display layout. Strings that
// cannot be parsed render as InvalidDate.
func (f *Formatter) Display(raw string) string {
	t, err := f.Parse(raw)
	if err != nil {
		return InvalidDate
	}
	return t.Format(f.display)
}

// Parse interprets a date string at day granularity. It accepts the storage
// layout, the display layout, and RFC 3339 timestamps (truncated to the day).
func (f *Formatter) Parse(raw string) (time.Time, error) {
	for _, layout := range []string{f.storage, f.display, time.RFC3339} {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
