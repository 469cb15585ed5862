package repositories

import (
	"database/sql"

	intconfig "conductor/internal/config"
	"conductor/internal/domain"
)

// ScheduleRepository reads the dispatcher's schedule set. Read-only: the core
// never caches across calls and tolerates stale data.
type ScheduleRepository struct {
	DB *sql.DB
}

func (r ScheduleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const scheduleColumns = `id,
	       COALESCE(origin,''),
	       COALESCE(destination,''),
	       COALESCE(bus_number,''),
	       COALESCE(start_time,''),
	       COALESCE(end_time,''),
	       COALESCE(trip_date,''),
	       COALESCE(booked_seats,0),
	       COALESCE(total_seats,0),
	       COALESCE(status,'upcoming')`

// GetAll returns every schedule in dispatch order.
func (r ScheduleRepository) GetAll() ([]domain.Schedule, error) {
	db := r.db()
	if db == nil {
		return nil, sql.ErrConnDone
	}

	rows, err := db.Query(`
		SELECT ` + scheduleColumns + `
		FROM schedules
		ORDER BY trip_date ASC, start_time ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches a single schedule.
func (r ScheduleRepository) GetByID(id string) (domain.Schedule, error) {
	db := r.db()
	if db == nil {
		return domain.Schedule{}, sql.ErrConnDone
	}

	row := db.QueryRow(`
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE id = ?`, id)
	s, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return domain.Schedule{}, domain.NotFoundError{Resource: "schedule", ID: id, Err: err}
	}
	return s, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (domain.Schedule, error) {
	var s domain.Schedule
	var status string
	err := row.Scan(
		&s.ID,
		&s.From,
		&s.To,
		&s.BusNumber,
		&s.StartTime,
		&s.EndTime,
		&s.Date,
		&s.BookedSeats,
		&s.TotalSeats,
		&status,
	)
	s.Status = domain.ScheduleStatus(status)
	return s, err
}
