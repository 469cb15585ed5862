package domain

import (
	"strconv"
	"strings"
	"time"
)

// TripBucket is the display bucket the mobile client renders a trip under.
type TripBucket string

const (
	BucketToday    TripBucket = "today"
	BucketUpcoming TripBucket = "upcoming"
)

// SelectionReport carries the data-quality outcome of one selection pass.
// Malformed schedules are skipped, never fatal; the caller decides whether to
// surface or just count them.
type SelectionReport struct {
	Scanned    int      `json:"scanned"`
	Candidates int      `json:"candidates"`
	Malformed  int      `json:"malformed"`
	SkippedIDs []string `json:"skipped_ids,omitempty"`
}

// ParseScheduleStart combines a schedule's date ("2006-01-02") and start time
// ("15:04") into a local start datetime. Both are interpreted as local
// calendar components with no timezone conversion. Wrong field counts,
// non-numeric components and out-of-range values yield DataQualityError.
func ParseScheduleStart(date, startTime string) (time.Time, error) {
	dp := strings.Split(strings.TrimSpace(date), "-")
	if len(dp) != 3 {
		return time.Time{}, DataQualityError{Field: "date", Value: date, Msg: "want YYYY-MM-DD"}
	}
	year, err := strconv.Atoi(dp[0])
	if err != nil {
		return time.Time{}, DataQualityError{Field: "date", Value: date, Msg: "non-numeric year"}
	}
	month, err := strconv.Atoi(dp[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, DataQualityError{Field: "date", Value: date, Msg: "bad month"}
	}
	day, err := strconv.Atoi(dp[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, DataQualityError{Field: "date", Value: date, Msg: "bad day"}
	}

	tp := strings.Split(strings.TrimSpace(startTime), ":")
	if len(tp) < 2 || len(tp) > 3 {
		return time.Time{}, DataQualityError{Field: "start_time", Value: startTime, Msg: "want HH:MM"}
	}
	hour, err := strconv.Atoi(tp[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, DataQualityError{Field: "start_time", Value: startTime, Msg: "bad hour"}
	}
	minute, err := strconv.Atoi(tp[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, DataQualityError{Field: "start_time", Value: startTime, Msg: "bad minute"}
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local), nil
}

// SelectNextTrip returns the schedule with the minimum start datetime
// strictly after now, or nil when none qualifies. A schedule already under
// way is not "next". Ties keep input order. Unparseable entries are skipped
// and reported, never raised.
func SelectNextTrip(schedules []Schedule, now time.Time) (*Schedule, SelectionReport) {
	report := SelectionReport{Scanned: len(schedules)}

	var best *Schedule
	var bestStart time.Time
	for i := range schedules {
		s := &schedules[i]
		start, err := ParseScheduleStart(s.Date, s.StartTime)
		if err != nil {
			report.Malformed++
			report.SkippedIDs = append(report.SkippedIDs, s.ID)
			continue
		}
		if !start.After(now) {
			continue
		}
		report.Candidates++
		if best == nil || start.Before(bestStart) {
			best = s
			bestStart = start
		}
	}
	if best == nil {
		return nil, report
	}
	cp := *best
	return &cp, report
}

// ClassifyTrip buckets a trip by calendar date relative to now. A nil trip
// classifies as "today" by convention; callers must not treat that as a real
// trip pointer.
func ClassifyTrip(trip *Schedule, now time.Time) TripBucket {
	if trip == nil {
		return BucketToday
	}
	start, err := ParseScheduleStart(trip.Date, trip.StartTime)
	if err != nil {
		return BucketUpcoming
	}
	y1, m1, d1 := start.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return BucketToday
	}
	return BucketUpcoming
}
