package domain

import "time"

// StopStatus describes one stop of a journey's ordered sequence.
type StopStatus string

const (
	StopOnTime    StopStatus = "ontime"
	StopLate      StopStatus = "late"
	StopCurrent   StopStatus = "current"
	StopUpcoming  StopStatus = "upcoming"
	StopCompleted StopStatus = "completed"
)

// Stop is one scheduled halt. Sequence is the stop's identifier inside its
// journey (1-based, strictly increasing). ProjectedAt is recomputed from the
// cumulative delay model whenever a delay is recorded.
type Stop struct {
	Sequence     int        `json:"sequence"`
	Name         string     `json:"name"`
	ExpectedAt   time.Time  `json:"expected_at"`
	ActualAt     *time.Time `json:"actual_at,omitempty"`
	ProjectedAt  time.Time  `json:"projected_at"`
	Status       StopStatus `json:"status"`
	Completed    bool       `json:"completed"`
	DelayMinutes int        `json:"delay_minutes,omitempty"`
	IsFinal      bool       `json:"is_final,omitempty"`
}

func (s *Stop) clone() Stop {
	cp := *s
	if s.ActualAt != nil {
		t := *s.ActualAt
		cp.ActualAt = &t
	}
	return cp
}
