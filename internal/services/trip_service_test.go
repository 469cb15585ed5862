package services

import (
	"testing"
	"time"

	"conductor/internal/domain"
)

func TestNextTripSelectsAndClassifies(t *testing.T) {
	svc := TripService{
		Fetch: func() ([]domain.Schedule, error) {
			return []domain.Schedule{
				{ID: "s1", Date: "2025-06-24", StartTime: "09:00"},
				{ID: "s2", Date: "2025-06-24", StartTime: "14:00"},
			}, nil
		},
	}
	now := time.Date(2025, 6, 24, 10, 0, 0, 0, time.Local)

	res, err := svc.NextTrip(now)
	if err != nil {
		t.Fatalf("NextTrip: %v", err)
	}
	if !res.HasTrip || res.Trip == nil || res.Trip.ID != "s2" {
		t.Fatalf("expected s2 as next trip, got %+v", res)
	}
	if res.Bucket != domain.BucketToday {
		t.Fatalf("expected today bucket, got %s", res.Bucket)
	}
}

func TestNextTripEmptySelection(t *testing.T) {
	svc := TripService{
		Fetch: func() ([]domain.Schedule, error) {
			return []domain.Schedule{
				{ID: "s1", Date: "2025-06-23", StartTime: "09:00"},
			}, nil
		},
	}
	now := time.Date(2025, 6, 24, 10, 0, 0, 0, time.Local)

	res, err := svc.NextTrip(now)
	if err != nil {
		t.Fatalf("NextTrip: %v", err)
	}
	if res.HasTrip || res.Trip != nil {
		t.Fatalf("expected no trip, got %+v", res.Trip)
	}
	// today by convention, flagged so the caller cannot mistake it for a trip
	if res.Bucket != domain.BucketToday {
		t.Fatalf("empty selection classifies today by convention, got %s", res.Bucket)
	}
}

func TestNextTripCountsMalformedEntries(t *testing.T) {
	svc := TripService{
		Fetch: func() ([]domain.Schedule, error) {
			return []domain.Schedule{
				{ID: "broken", Date: "soon", StartTime: "??"},
				{ID: "ok", Date: "2025-06-25", StartTime: "08:00"},
			}, nil
		},
	}
	now := time.Date(2025, 6, 24, 10, 0, 0, 0, time.Local)

	res, err := svc.NextTrip(now)
	if err != nil {
		t.Fatalf("NextTrip: %v", err)
	}
	if res.Report.Malformed != 1 || len(res.Report.SkippedIDs) != 1 || res.Report.SkippedIDs[0] != "broken" {
		t.Fatalf("report wrong: %+v", res.Report)
	}
	if res.Trip == nil || res.Trip.ID != "ok" {
		t.Fatalf("malformed entry must not block selection: %+v", res.Trip)
	}
}
