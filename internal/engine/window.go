package engine

import (
	"fmt"
	"time"
)

// defaultEventHour is the assumed time of day for date-only calendar
// entries.
const defaultEventHour = 9

// dueWithinLead reports whether eventAt falls inside the lead window:
// now <= eventAt <= now+lead. Facts already in the past are never due;
// there is no backfill.
func dueWithinLead(now, eventAt time.Time, lead time.Duration) bool {
	d := eventAt.Sub(now)
	return d >= 0 && d <= lead
}

// dueWithinLookahead applies the parts-delivery rule: due from the start
// of the current local day through now+lookahead, or already overdue
// when includeOverdue is set. Overdue is measured against the start of
// today, so a delivery earlier today counts as due, not overdue.
func dueWithinLookahead(now, eventAt time.Time, lookahead time.Duration, includeOverdue bool) bool {
	if eventAt.Before(startOfDay(now)) {
		return includeOverdue
	}
	return eventAt.Sub(now) <= lookahead
}

// startOfDay returns midnight at the start of t's local day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// eventTime resolves a calendar entry's date (YYYY-MM-DD) and optional
// HH:mm time into a concrete timestamp in loc. Date-only entries default
// to 09:00.
func eventTime(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing event date %q: %w", date, err)
	}

	hour, minute := defaultEventHour, 0
	if clock != "" {
		t, err := time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing event time %q: %w", clock, err)
		}
		hour, minute = t.Hour(), t.Minute()
	}

	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc), nil
}

// todayAt returns the given HH:mm clock time on now's local day.
func todayAt(now time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing clock time %q: %w", clock, err)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}

// clockOrDefault returns the entry's HH:mm time, or the date-only default.
func clockOrDefault(clock string) string {
	if clock == "" {
		return fmt.Sprintf("%02d:00", defaultEventHour)
	}
	return clock
}
