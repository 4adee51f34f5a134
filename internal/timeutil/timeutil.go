package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date layout used for record keys.
const DateLayout = "2006-01-02"

// DateKey returns the ISO date string for t.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses an ISO date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WeekDates returns the n calendar dates ending at today, oldest first.
func WeekDates(today time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, DateKey(today.AddDate(0, 0, -i)))
	}
	return dates
}

// FormatMinutes formats a minute total like "3h 05min" or "45min".
func FormatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dmin", h, m)
	}
	return fmt.Sprintf("%dmin", m)
}

// FormatClock formats a second count as HH:MM:SS.
func FormatClock(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
