package domain

import (
	"strconv"
	"time"
)

// JourneyStatus is the overall trip state.
type JourneyStatus string

const (
	JourneyScheduled  JourneyStatus = "scheduled"
	JourneyStarted    JourneyStatus = "started"
	JourneyInProgress JourneyStatus = "in_progress"
	JourneyCompleted  JourneyStatus = "completed"
	JourneyCancelled  JourneyStatus = "cancelled"
)

// RouteInfo describes the line a journey runs on.
type RouteInfo struct {
	Number     string  `json:"number"`
	Name       string  `json:"name"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	DistanceKM float64 `json:"distance_km,omitempty"`
}

// JourneySummary is derived after every mutation, never edited directly.
type JourneySummary struct {
	CompletedStops    int       `json:"completed_stops"`
	TotalStops        int       `json:"total_stops"`
	OnTimeRatio       float64   `json:"on_time_ratio"`
	ETAFinal          time.Time `json:"eta_final"`
	TotalDelayMinutes int       `json:"total_delay_minutes"`
	OccupiedSeats     int       `json:"occupied_seats"`
	ValidatedSeats    int       `json:"validated_seats"`
}

// LiveLocation is the bus position as last reported by the device.
type LiveLocation struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// JourneyAggregate composes route info, the ordered stop sequence, the
// passenger collection and the seat map for one trip. It is the unit mutated
// while a trip executes: one logical writer, snapshot reads.
type JourneyAggregate struct {
	ID         string             `json:"id"`
	ScheduleID string             `json:"schedule_id"`
	Route      RouteInfo          `json:"route"`
	Status     JourneyStatus      `json:"status"`
	Stops      []Stop             `json:"stops"`
	Passengers []*PassengerRecord `json:"passengers"`
	Seats      *SeatMap           `json:"-"`
	Summary    JourneySummary     `json:"summary"`
	Location   *LiveLocation      `json:"location,omitempty"`
}

// NewJourneyAggregate validates the stop sequence, builds an empty seat map
// for the layout and derives the initial summary. Stops must have strictly
// increasing sequence numbers; the last stop is the final one.
func NewJourneyAggregate(id, scheduleID string, route RouteInfo, stops []Stop, layout []string) (*JourneyAggregate, error) {
	if len(stops) == 0 {
		return nil, DataQualityError{Field: "stops", Msg: "journey needs at least one stop"}
	}
	prev := 0
	for i := range stops {
		if stops[i].Sequence <= prev {
			return nil, DataQualityError{Field: "stops", Msg: "stop sequence must be strictly increasing"}
		}
		prev = stops[i].Sequence
		if stops[i].Status == "" {
			stops[i].Status = StopUpcoming
		}
		stops[i].IsFinal = false
		if stops[i].ProjectedAt.IsZero() {
			stops[i].ProjectedAt = stops[i].ExpectedAt
		}
	}
	stops[len(stops)-1].IsFinal = true

	seats, err := NewSeatMap(layout)
	if err != nil {
		return nil, err
	}

	j := &JourneyAggregate{
		ID:         id,
		ScheduleID: scheduleID,
		Route:      route,
		Status:     JourneyScheduled,
		Stops:      stops,
		Passengers: []*PassengerRecord{},
		Seats:      seats,
	}
	j.RecomputeSummary()
	return j, nil
}

// AddPassenger ingests one booked passenger. The ticket's seat must belong to
// the layout and must not already hold another passenger; the seat status is
// derived from the record's validation state.
func (j *JourneyAggregate) AddPassenger(p *PassengerRecord) error {
	if p == nil || p.ID == "" {
		return DataQualityError{Field: "passenger", Msg: "missing passenger id"}
	}
	if _, err := j.PassengerByID(p.ID); err == nil {
		return DataQualityError{Field: "passenger", Value: p.ID, Msg: "duplicate passenger id"}
	}
	seat := p.Ticket.SeatCode
	if !j.Seats.Has(seat) {
		return NotFoundError{Resource: "seat", ID: seat}
	}
	if other, taken := j.Seats.PassengerAt(seat); taken {
		return SeatUnavailableError{Seat: seat, Reason: "held by passenger " + other}
	}
	if err := j.Seats.assign(seat, p.ID); err != nil {
		return err
	}
	p.syncValidatedFlag()
	if err := j.Seats.SetStatus(seat, seatStatusFor(p.Validation.Status)); err != nil {
		j.Seats.release(seat)
		return err
	}
	j.Passengers = append(j.Passengers, p)
	j.RecomputeSummary()
	return nil
}

// PassengerByID finds a passenger record.
func (j *JourneyAggregate) PassengerByID(id string) (*PassengerRecord, error) {
	for _, p := range j.Passengers {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, NotFoundError{Resource: "passenger", ID: id}
}

// BlockSeat applies the operator block override.
func (j *JourneyAggregate) BlockSeat(seat string) error {
	if err := j.Seats.SetStatus(seat, SeatBlocked); err != nil {
		return err
	}
	j.RecomputeSummary()
	return nil
}

// UnblockSeat lifts a block, restoring the status derived from the linked
// passenger record, or available when the seat has none.
func (j *JourneyAggregate) UnblockSeat(seat string) error {
	st, err := j.Seats.StatusOf(seat)
	if err != nil {
		return err
	}
	if st != SeatBlocked {
		return InvalidTransitionError{Entity: "seat " + seat, From: string(st), To: string(st)}
	}
	if id, linked := j.Seats.PassengerAt(seat); linked {
		p, err := j.PassengerByID(id)
		if err != nil {
			return err
		}
		if err := j.Seats.SetStatus(seat, seatStatusFor(p.Validation.Status)); err != nil {
			return err
		}
	} else if err := j.Seats.SetStatus(seat, SeatAvailable); err != nil {
		return err
	}
	j.RecomputeSummary()
	return nil
}

// closed reports whether the journey reached a terminal status.
func (j *JourneyAggregate) closed() bool {
	return j.Status == JourneyCompleted || j.Status == JourneyCancelled
}

// currentStopIndex returns the slice index of the current stop, or -1.
func (j *JourneyAggregate) currentStopIndex() int {
	for i := range j.Stops {
		if j.Stops[i].Status == StopCurrent {
			return i
		}
	}
	return -1
}

// stopBySequence resolves a stop id (its sequence number) to a slice index.
func (j *JourneyAggregate) stopBySequence(seq int) (int, error) {
	for i := range j.Stops {
		if j.Stops[i].Sequence == seq {
			return i, nil
		}
	}
	return -1, NotFoundError{Resource: "stop", ID: strconv.Itoa(seq)}
}

// RecomputeSummary rebuilds the derived summary and the per-stop projected
// times using the cumulative delay model: a delay at stop N pushes every
// later ETA by the same amount unless a later stop records a larger one.
func (j *JourneyAggregate) RecomputeSummary() {
	completed := 0
	onTime := 0
	carry := 0
	for i := range j.Stops {
		s := &j.Stops[i]
		if s.Completed {
			completed++
			if s.DelayMinutes <= 0 {
				onTime++
			}
		}
		if !s.Completed && s.DelayMinutes > carry {
			carry = s.DelayMinutes
		}
		if s.Completed {
			s.ProjectedAt = s.ExpectedAt.Add(time.Duration(s.DelayMinutes) * time.Minute)
		} else {
			s.ProjectedAt = s.ExpectedAt.Add(time.Duration(carry) * time.Minute)
		}
	}

	ratio := 1.0
	if completed > 0 {
		ratio = float64(onTime) / float64(completed)
	}

	final := j.Stops[len(j.Stops)-1]
	j.Summary = JourneySummary{
		CompletedStops:    completed,
		TotalStops:        len(j.Stops),
		OnTimeRatio:       ratio,
		ETAFinal:          final.ProjectedAt,
		TotalDelayMinutes: carry,
		OccupiedSeats:     j.Seats.OccupiedCount(),
		ValidatedSeats:    j.Seats.ValidatedCount(),
	}
}

// Snapshot returns a deep copy safe for concurrent readers while the single
// writer keeps mutating the live aggregate.
func (j *JourneyAggregate) Snapshot() *JourneyAggregate {
	cp := &JourneyAggregate{
		ID:         j.ID,
		ScheduleID: j.ScheduleID,
		Route:      j.Route,
		Status:     j.Status,
		Summary:    j.Summary,
		Seats:      j.Seats.Clone(),
	}
	cp.Stops = make([]Stop, len(j.Stops))
	for i := range j.Stops {
		cp.Stops[i] = j.Stops[i].clone()
	}
	cp.Passengers = make([]*PassengerRecord, len(j.Passengers))
	for i, p := range j.Passengers {
		cp.Passengers[i] = p.Clone()
	}
	if j.Location != nil {
		loc := *j.Location
		cp.Location = &loc
	}
	return cp
}

// seatStatusFor derives the seat status from a validation status. Only a
// validated record earns booked_validated; every other status (pending,
// expired, cancelled) renders as booked_unvalidated because the record still
// references the seat.
func seatStatusFor(vs ValidationStatus) SeatStatus {
	if vs == ValidationValidated {
		return SeatBookedValidated
	}
	return SeatBookedUnvalidated
}
