package domain

// ScheduleStatus mirrors the dispatcher's view of a scheduled trip.
type ScheduleStatus string

const (
	ScheduleOngoing   ScheduleStatus = "ongoing"
	ScheduleUpcoming  ScheduleStatus = "upcoming"
	ScheduleCompleted ScheduleStatus = "completed"
)

// Schedule is a read-only scheduling input. Date and the time fields are kept
// as the raw strings the dispatch system publishes ("2006-01-02" and "15:04");
// ParseScheduleStart is the single place they are interpreted.
type Schedule struct {
	ID          string         `json:"id"`
	From        string         `json:"from"`
	To          string         `json:"to"`
	BusNumber   string         `json:"bus_number"`
	StartTime   string         `json:"start_time"`
	EndTime     string         `json:"end_time"`
	Date        string         `json:"date"`
	BookedSeats int            `json:"booked_seats"`
	TotalSeats  int            `json:"total_seats"`
	Status      ScheduleStatus `json:"status"`
}
