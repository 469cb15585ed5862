package services

import (
	"testing"
	"time"

	"conductor/internal/domain"
)

func TestAdvancePersistsAndReturnsSnapshot(t *testing.T) {
	store := &fakeStore{journey: buildJourney(t)}
	svc := JourneyService{Journeys: store}

	snap, err := svc.Advance("j1", 2, time.Now())
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if store.saves != 1 {
		t.Fatalf("expected 1 save, got %d", store.saves)
	}
	if snap.Stops[0].Status != domain.StopCompleted || snap.Stops[1].Status != domain.StopCurrent {
		t.Fatalf("snapshot state wrong: %+v", snap.Stops)
	}

	// the snapshot is detached from the live aggregate
	snap.Stops[1].Status = domain.StopLate
	if store.journey.Stops[1].Status != domain.StopCurrent {
		t.Fatalf("snapshot mutation leaked into the aggregate")
	}
}

func TestAdvanceBackwardsDoesNotPersist(t *testing.T) {
	store := &fakeStore{journey: buildJourney(t)}
	svc := JourneyService{Journeys: store}

	if _, err := svc.Advance("j1", 2, time.Now()); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	_, err := svc.Advance("j1", 1, time.Now())
	if err == nil || !domain.IsInvalidTransition(err) {
		t.Fatalf("expected InvalidTransition, got %v", err)
	}
	if store.saves != 1 {
		t.Fatalf("failed advance must not persist, saves=%d", store.saves)
	}
}

func TestDelayAfterCompletionFailsClosed(t *testing.T) {
	store := &fakeStore{journey: buildJourney(t)}
	svc := JourneyService{Journeys: store}

	if _, err := svc.Advance("j1", 3, time.Now()); err != nil {
		t.Fatalf("advance to final: %v", err)
	}
	_, err := svc.Delay("j1", 3, 10)
	if err == nil || !domain.IsJourneyClosed(err) {
		t.Fatalf("expected JourneyClosed, got %v", err)
	}
}

func TestBlockAndUnblockSeatPersist(t *testing.T) {
	store := &fakeStore{journey: buildJourney(t)}
	svc := JourneyService{Journeys: store}

	snap, err := svc.BlockSeat("j1", "2a")
	if err != nil {
		t.Fatalf("BlockSeat: %v", err)
	}
	if st, _ := snap.Seats.StatusOf("2A"); st != domain.SeatBlocked {
		t.Fatalf("seat should be blocked, got %s", st)
	}

	snap, err = svc.UnblockSeat("j1", "2A")
	if err != nil {
		t.Fatalf("UnblockSeat: %v", err)
	}
	if st, _ := snap.Seats.StatusOf("2A"); st != domain.SeatAvailable {
		t.Fatalf("seat should be available again, got %s", st)
	}
	if store.saves != 2 {
		t.Fatalf("expected 2 saves, got %d", store.saves)
	}
}
