package repositories

import (
	"database/sql"
	"strings"

	intconfig "conductor/internal/config"
	"conductor/internal/domain"
	"conductor/internal/utils"
)

// JourneyRepository loads a whole JourneyAggregate (stops, passengers, seat
// map) and writes it back after domain mutation. The caller loads, the domain
// mutates, the caller persists; no mutation happens inside the repository.
type JourneyRepository struct {
	DB *sql.DB
}

func (r JourneyRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByID hydrates one aggregate.
func (r JourneyRepository) GetByID(id string) (*domain.JourneyAggregate, error) {
	db := r.db()
	if db == nil {
		return nil, sql.ErrConnDone
	}

	var (
		scheduleID string
		route      domain.RouteInfo
		status     string
		layoutRaw  string
		blockedRaw string
	)
	err := db.QueryRow(`
		SELECT COALESCE(schedule_id,''),
		       COALESCE(route_number,''),
		       COALESCE(route_name,''),
		       COALESCE(route_start,''),
		       COALESCE(route_end,''),
		       COALESCE(distance_km,0),
		       COALESCE(status,'scheduled'),
		       COALESCE(seat_layout,''),
		       COALESCE(blocked_seats,'')
		FROM journeys
		WHERE id = ?`, id).Scan(
		&scheduleID,
		&route.Number,
		&route.Name,
		&route.Start,
		&route.End,
		&route.DistanceKM,
		&status,
		&layoutRaw,
		&blockedRaw,
	)
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundError{Resource: "journey", ID: id, Err: err}
	}
	if err != nil {
		return nil, err
	}

	stops, err := r.loadStops(db, id)
	if err != nil {
		return nil, err
	}

	// NewJourneyAggregate validates the sequence and keeps the persisted
	// per-stop state (status, completion, delays) it is handed
	j, err := domain.NewJourneyAggregate(id, scheduleID, route, stops, utils.SplitSeatList(layoutRaw))
	if err != nil {
		return nil, err
	}

	passengers, err := r.loadPassengers(db, id)
	if err != nil {
		return nil, err
	}
	for _, p := range passengers {
		if err := j.AddPassenger(p); err != nil {
			return nil, err
		}
	}

	for _, seat := range utils.SplitSeatList(blockedRaw) {
		if err := j.BlockSeat(seat); err != nil {
			return nil, err
		}
	}

	j.Status = domain.JourneyStatus(status)
	j.RecomputeSummary()
	return j, nil
}

// Save writes the aggregate back inside one transaction.
func (r JourneyRepository) Save(j *domain.JourneyAggregate) error {
	db := r.db()
	if db == nil {
		return sql.ErrConnDone
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	blocked := []string{}
	for code, st := range j.Seats.StatusView() {
		if st == domain.SeatBlocked {
			blocked = append(blocked, code)
		}
	}

	if _, err := tx.Exec(`
		UPDATE journeys
		SET status = ?, blocked_seats = ?
		WHERE id = ?`,
		string(j.Status), strings.Join(blocked, ","), j.ID); err != nil {
		return err
	}

	for i := range j.Stops {
		s := &j.Stops[i]
		var actual any
		if s.ActualAt != nil {
			actual = *s.ActualAt
		}
		if _, err := tx.Exec(`
			UPDATE journey_stops
			SET status = ?, completed = ?, actual_at = ?, delay_minutes = ?
			WHERE journey_id = ? AND sequence = ?`,
			string(s.Status), s.Completed, actual, s.DelayMinutes, j.ID, s.Sequence); err != nil {
			return err
		}
	}

	for _, p := range j.Passengers {
		var validatedAt any
		if !p.Validation.ValidatedAt.IsZero() {
			validatedAt = p.Validation.ValidatedAt
		}
		if _, err := tx.Exec(`
			UPDATE passenger_records
			SET seat_code = ?, validation_status = ?, validated_at = ?, validator_id = ?, validation_method = ?
			WHERE id = ? AND journey_id = ?`,
			p.Ticket.SeatCode,
			string(p.Validation.Status),
			validatedAt,
			p.Validation.ValidatorID,
			string(p.Validation.Method),
			p.ID, j.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r JourneyRepository) loadStops(db *sql.DB, journeyID string) ([]domain.Stop, error) {
	rows, err := db.Query(`
		SELECT sequence,
		       COALESCE(name,''),
		       expected_at,
		       actual_at,
		       COALESCE(status,'upcoming'),
		       COALESCE(completed,0),
		       COALESCE(delay_minutes,0)
		FROM journey_stops
		WHERE journey_id = ?
		ORDER BY sequence ASC`, journeyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Stop{}
	for rows.Next() {
		var (
			s      domain.Stop
			actual sql.NullTime
			status string
		)
		if err := rows.Scan(&s.Sequence, &s.Name, &s.ExpectedAt, &actual, &status, &s.Completed, &s.DelayMinutes); err != nil {
			return nil, err
		}
		if actual.Valid {
			t := actual.Time
			s.ActualAt = &t
		}
		s.Status = domain.StopStatus(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r JourneyRepository) loadPassengers(db *sql.DB, journeyID string) ([]*domain.PassengerRecord, error) {
	rows, err := db.Query(`
		SELECT id,
		       COALESCE(name,''),
		       COALESCE(seat_code,''),
		       COALESCE(ticket_id,''),
		       COALESCE(payment_type,''),
		       COALESCE(passenger_count,1),
		       COALESCE(fare,0),
		       COALESCE(booking_ref,''),
		       COALESCE(phone,''),
		       COALESCE(email,''),
		       booked_at,
		       arrival_at,
		       departure_at,
		       COALESCE(boarding_point,''),
		       COALESCE(destination_point,''),
		       COALESCE(validation_status,'pending'),
		       validated_at,
		       COALESCE(validator_id,''),
		       COALESCE(validation_method,'')
		FROM passenger_records
		WHERE journey_id = ?
		ORDER BY id ASC`, journeyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.PassengerRecord{}
	for rows.Next() {
		var (
			p           domain.PassengerRecord
			bookedAt    sql.NullTime
			arrivalAt   sql.NullTime
			departureAt sql.NullTime
			validatedAt sql.NullTime
			vStatus     string
			vMethod     string
		)
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Ticket.SeatCode,
			&p.Ticket.TicketID,
			&p.Ticket.PaymentType,
			&p.Ticket.PassengerCount,
			&p.Ticket.Fare,
			&p.Ticket.BookingRef,
			&p.Contact.Phone,
			&p.Contact.Email,
			&bookedAt,
			&arrivalAt,
			&departureAt,
			&p.Booking.BoardingPoint,
			&p.Booking.DestinationPoint,
			&vStatus,
			&validatedAt,
			&p.Validation.ValidatorID,
			&vMethod,
		); err != nil {
			return nil, err
		}
		p.Ticket.SeatCode = utils.NormalizeSeatCode(p.Ticket.SeatCode)
		if bookedAt.Valid {
			p.Booking.BookedAt = bookedAt.Time
		}
		if arrivalAt.Valid {
			p.Booking.ArrivalAt = arrivalAt.Time
		}
		if departureAt.Valid {
			t := departureAt.Time
			p.Booking.DepartureAt = &t
		}
		if validatedAt.Valid {
			p.Validation.ValidatedAt = validatedAt.Time
		}
		p.Validation.Status = domain.ValidationStatus(vStatus)
		p.Validation.Method = domain.ValidationMethod(vMethod)
		out = append(out, &p)
	}
	return out, rows.Err()
}
