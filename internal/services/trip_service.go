package services

import (
	"strconv"
	"time"

	"conductor/internal/domain"
	"conductor/internal/utils"
)

// ScheduleSource is the read-only boundary the scheduler consumes. Stale data
// is tolerated; nothing is cached across calls.
type ScheduleSource interface {
	GetAll() ([]domain.Schedule, error)
	GetByID(id string) (domain.Schedule, error)
}

// TripService answers "what is the conductor's next trip" over the schedule
// source. Pure selection: it reads, never mutates.
type TripService struct {
	Schedules ScheduleSource
	RequestID string
	Fetch     func() ([]domain.Schedule, error) // test hook
}

// NextTripResult is the selection outcome plus its data-quality report.
// HasTrip distinguishes a real pointer from the "today by convention" bucket
// of an empty selection.
type NextTripResult struct {
	Trip    *domain.Schedule       `json:"trip,omitempty"`
	HasTrip bool                   `json:"has_trip"`
	Bucket  domain.TripBucket      `json:"bucket"`
	Report  domain.SelectionReport `json:"report"`
}

// NextTrip selects and classifies the soonest not-yet-started trip.
func (s TripService) NextTrip(now time.Time) (NextTripResult, error) {
	schedules, err := s.load()
	if err != nil {
		return NextTripResult{}, err
	}

	trip, report := domain.SelectNextTrip(schedules, now)
	if report.Malformed > 0 {
		utils.LogEvent(s.RequestID, "scheduler", "malformed_schedules",
			"skipped="+strconv.Itoa(report.Malformed))
	}

	return NextTripResult{
		Trip:    trip,
		HasTrip: trip != nil,
		Bucket:  domain.ClassifyTrip(trip, now),
		Report:  report,
	}, nil
}

func (s TripService) load() ([]domain.Schedule, error) {
	if s.Fetch != nil {
		return s.Fetch()
	}
	return s.Schedules.GetAll()
}
