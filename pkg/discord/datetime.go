package discord

import (
	"fmt"
	"strings"
	"time"
)

// ParseEventDateTime parses date (YYYY-MM-DD) and time (HH:MM) in local timezone.
func ParseEventDateTime(dateStr, timeStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	if dateStr == "" || timeStr == "" {
		return time.Time{}, fmt.Errorf("date and time required (YYYY-MM-DD and HH:MM)")
	}
	tDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date (expected YYYY-MM-DD, e.g. 2025-02-15)")
	}
	tTime, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time (expected HH:MM, e.g. 14:00)")
	}
	return time.Date(tDate.Year(), tDate.Month(), tDate.Day(),
		tTime.Hour(), tTime.Minute(), 0, 0, time.Local), nil
}

// FormatTimestamp renders t as a Discord long date-time marker that clients
// display in the viewer's own timezone.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("<t:%d:F>", t.Unix())
}

// FormatRelative renders t as a Discord relative marker ("in 2 hours").
func FormatRelative(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}
