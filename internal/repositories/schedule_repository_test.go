package repositories

import (
	"testing"

	"conductor/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func scheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "origin", "destination", "bus_number", "start_time",
		"end_time", "trip_date", "booked_seats", "total_seats", "status",
	})
}

func TestScheduleGetAllMapsRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM schedules").WillReturnRows(
		scheduleRows().
			AddRow("s1", "Terminal", "Depot", "BM-45", "09:00", "11:10", "2025-06-24", 12, 28, "upcoming").
			AddRow("s2", "Depot", "Terminal", "BM-45", "14:00", "16:10", "2025-06-24", 3, 28, "upcoming"),
	)

	repo := ScheduleRepository{DB: db}
	schedules, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(schedules))
	}
	first := schedules[0]
	if first.ID != "s1" || first.From != "Terminal" || first.StartTime != "09:00" || first.Date != "2025-06-24" {
		t.Fatalf("row mapping wrong: %+v", first)
	}
	if first.Status != domain.ScheduleUpcoming {
		t.Fatalf("status mapping wrong: %s", first.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScheduleGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM schedules").WithArgs("missing").WillReturnRows(scheduleRows())

	repo := ScheduleRepository{DB: db}
	_, err = repo.GetByID("missing")
	if err == nil || !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
