package domain

import "testing"

func TestNewSeatMapRejectsEmptyCode(t *testing.T) {
	if _, err := NewSeatMap([]string{"1A", ""}); err == nil {
		t.Fatalf("expected error for empty seat code")
	}
}

func TestSetStatusUnknownSeat(t *testing.T) {
	m, err := NewSeatMap([]string{"1A"})
	if err != nil {
		t.Fatalf("new seat map: %v", err)
	}
	if err := m.SetStatus("9Z", SeatBlocked); err == nil || !IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown seat, got %v", err)
	}
	if _, err := m.StatusOf("9Z"); err == nil || !IsNotFound(err) {
		t.Fatalf("expected NotFound from StatusOf, got %v", err)
	}
}

func TestCountsComputedOnDemand(t *testing.T) {
	m, err := NewSeatMap([]string{"1A", "1B", "2A"})
	if err != nil {
		t.Fatalf("new seat map: %v", err)
	}
	if m.OccupiedCount() != 0 || m.ValidatedCount() != 0 {
		t.Fatalf("fresh map should count zero")
	}

	if err := m.SetStatus("1A", SeatBlocked); err != nil {
		t.Fatalf("block: %v", err)
	}
	if err := m.assign("1B", "p1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := m.SetStatus("1B", SeatBookedValidated); err != nil {
		t.Fatalf("set validated: %v", err)
	}

	if got := m.OccupiedCount(); got != 2 {
		t.Fatalf("occupied = %d, want 2", got)
	}
	if got := m.ValidatedCount(); got != 1 {
		t.Fatalf("validated = %d, want 1", got)
	}
	if seats := m.OccupiedSeats(); len(seats) != 2 || seats[0] != "1A" || seats[1] != "1B" {
		t.Fatalf("occupied seats wrong: %v", seats)
	}
}

func TestStatusViewIsACopy(t *testing.T) {
	m, err := NewSeatMap([]string{"1A"})
	if err != nil {
		t.Fatalf("new seat map: %v", err)
	}
	view := m.StatusView()
	view["1A"] = SeatBlocked
	if st, _ := m.StatusOf("1A"); st != SeatAvailable {
		t.Fatalf("mutating the view must not touch the map, got %s", st)
	}
}
