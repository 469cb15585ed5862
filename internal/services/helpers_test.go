package services

import (
	"testing"
	"time"

	"conductor/internal/domain"
)

type fakeStore struct {
	journey *domain.JourneyAggregate
	getErr  error
	saveErr error
	saves   int
}

func (f *fakeStore) GetByID(id string) (*domain.JourneyAggregate, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.journey == nil || f.journey.ID != id {
		return nil, domain.NotFoundError{Resource: "journey", ID: id}
	}
	return f.journey, nil
}

func (f *fakeStore) Save(j *domain.JourneyAggregate) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	return nil
}

func buildJourney(t *testing.T) *domain.JourneyAggregate {
	t.Helper()
	base := time.Date(2025, 6, 24, 9, 0, 0, 0, time.Local)
	stops := []domain.Stop{
		{Sequence: 1, Name: "Terminal", ExpectedAt: base, Status: domain.StopOnTime},
		{Sequence: 2, Name: "Market", ExpectedAt: base.Add(20 * time.Minute), Status: domain.StopOnTime},
		{Sequence: 3, Name: "Depot", ExpectedAt: base.Add(45 * time.Minute), Status: domain.StopOnTime},
	}
	j, err := domain.NewJourneyAggregate("j1", "s1",
		domain.RouteInfo{Number: "45", Name: "Terminal - Depot", Start: "Terminal", End: "Depot"},
		stops,
		[]string{"1A", "1B", "2A"},
	)
	if err != nil {
		t.Fatalf("building journey: %v", err)
	}

	p := &domain.PassengerRecord{
		ID:   "p1",
		Name: "Sari",
		Ticket: domain.Ticket{
			TicketID:       "t1",
			SeatCode:       "1A",
			PaymentType:    "cash",
			PassengerCount: 1,
			Fare:           150_000,
		},
		Contact:    domain.ContactInfo{Phone: "0800"},
		Booking:    domain.BookingWindow{BookedAt: base.Add(-24 * time.Hour), ArrivalAt: base, BoardingPoint: "Terminal", DestinationPoint: "Depot"},
		Validation: domain.ValidationRecord{Status: domain.ValidationPending},
	}
	if err := j.AddPassenger(p); err != nil {
		t.Fatalf("adding passenger: %v", err)
	}
	return j
}
