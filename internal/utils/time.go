package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutClock    = "15:04"
	layoutDateTime = "2006-01-02 15:04:05"
)

// NowLocal returns the current wall time in the server's local timezone.
// Handlers resolve "now" here once, at the boundary; the domain core only
// ever receives it as a parameter.
func NowLocal() time.Time {
	return time.Now().Local()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS" in local timezone.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDateTime, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatClock formats time to HH:MM in local timezone.
func FormatClock(t time.Time) string {
	return t.In(time.Local).Format(layoutClock)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}
