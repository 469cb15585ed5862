package domain

import "sort"

// SeatStatus is the occupancy/validation state of one seat for one trip.
type SeatStatus string

const (
	SeatAvailable         SeatStatus = "available"
	SeatBookedValidated   SeatStatus = "booked_validated"
	SeatBookedUnvalidated SeatStatus = "booked_unvalidated"
	SeatBlocked           SeatStatus = "blocked"
)

// SeatMap tracks seat status for a fixed bus layout. Seat codes outside the
// layout are rejected both at construction and on every write, so a typo in
// an ingested booking can never grow the bus. Booked* statuses must originate
// from a linked passenger record; Blocked is an operator override that is
// independent of passenger linkage and never deletes the underlying record.
type SeatMap struct {
	layout    []string
	status    map[string]SeatStatus
	passenger map[string]string // seat code -> passenger id
}

// NewSeatMap builds an all-available map for the given layout. Empty and
// duplicate seat codes are construction errors.
func NewSeatMap(layout []string) (*SeatMap, error) {
	m := &SeatMap{
		layout:    make([]string, 0, len(layout)),
		status:    make(map[string]SeatStatus, len(layout)),
		passenger: make(map[string]string),
	}
	for _, code := range layout {
		if code == "" {
			return nil, DataQualityError{Field: "seat_code", Value: code, Msg: "empty seat code in layout"}
		}
		if _, dup := m.status[code]; dup {
			return nil, DataQualityError{Field: "seat_code", Value: code, Msg: "duplicate seat code in layout"}
		}
		m.layout = append(m.layout, code)
		m.status[code] = SeatAvailable
	}
	return m, nil
}

// Has reports layout membership.
func (m *SeatMap) Has(seat string) bool {
	_, ok := m.status[seat]
	return ok
}

// SetStatus is the only status mutator. Writing a Booked* status to a seat
// with no linked passenger fails with InvalidTransition: occupancy must
// originate from passenger-record ingestion, not a bare seat write.
func (m *SeatMap) SetStatus(seat string, st SeatStatus) error {
	cur, ok := m.status[seat]
	if !ok {
		return NotFoundError{Resource: "seat", ID: seat}
	}
	switch st {
	case SeatBookedValidated, SeatBookedUnvalidated:
		if _, linked := m.passenger[seat]; !linked {
			return InvalidTransitionError{Entity: "seat " + seat, From: string(cur), To: string(st)}
		}
	case SeatAvailable, SeatBlocked:
		// always allowed; Blocked overrides display without touching linkage
	default:
		return InvalidTransitionError{Entity: "seat " + seat, From: string(cur), To: string(st)}
	}
	m.status[seat] = st
	return nil
}

// StatusOf returns the seat's status.
func (m *SeatMap) StatusOf(seat string) (SeatStatus, error) {
	st, ok := m.status[seat]
	if !ok {
		return "", NotFoundError{Resource: "seat", ID: seat}
	}
	return st, nil
}

// OccupiedCount counts seats that are not available. Computed on demand,
// never cached.
func (m *SeatMap) OccupiedCount() int {
	n := 0
	for _, st := range m.status {
		if st != SeatAvailable {
			n++
		}
	}
	return n
}

// ValidatedCount counts seats holding a validated booking.
func (m *SeatMap) ValidatedCount() int {
	n := 0
	for _, st := range m.status {
		if st == SeatBookedValidated {
			n++
		}
	}
	return n
}

// PassengerAt returns the linked passenger id for a seat, if any.
func (m *SeatMap) PassengerAt(seat string) (string, bool) {
	id, ok := m.passenger[seat]
	return id, ok
}

// assign links a passenger to a seat. The caller guarantees the seat is free.
func (m *SeatMap) assign(seat, passengerID string) error {
	if !m.Has(seat) {
		return NotFoundError{Resource: "seat", ID: seat}
	}
	m.passenger[seat] = passengerID
	return nil
}

// release drops the passenger link and frees the seat unless it is blocked.
func (m *SeatMap) release(seat string) {
	delete(m.passenger, seat)
	if m.status[seat] != SeatBlocked {
		m.status[seat] = SeatAvailable
	}
}

// Layout returns the seat codes in layout order.
func (m *SeatMap) Layout() []string {
	out := make([]string, len(m.layout))
	copy(out, m.layout)
	return out
}

// StatusView returns a seat -> status copy for rendering.
func (m *SeatMap) StatusView() map[string]SeatStatus {
	out := make(map[string]SeatStatus, len(m.status))
	for k, v := range m.status {
		out[k] = v
	}
	return out
}

// Clone deep-copies the map for snapshot readers.
func (m *SeatMap) Clone() *SeatMap {
	if m == nil {
		return nil
	}
	cp := &SeatMap{
		layout:    make([]string, len(m.layout)),
		status:    make(map[string]SeatStatus, len(m.status)),
		passenger: make(map[string]string, len(m.passenger)),
	}
	copy(cp.layout, m.layout)
	for k, v := range m.status {
		cp.status[k] = v
	}
	for k, v := range m.passenger {
		cp.passenger[k] = v
	}
	return cp
}

// OccupiedSeats lists non-available seat codes sorted for stable output.
func (m *SeatMap) OccupiedSeats() []string {
	out := []string{}
	for code, st := range m.status {
		if st != SeatAvailable {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}
