package services

import (
	"strconv"
	"time"

	"conductor/internal/domain"
	"conductor/internal/utils"
)

// JourneyStore loads a whole aggregate and persists it back after mutation.
type JourneyStore interface {
	GetByID(id string) (*domain.JourneyAggregate, error)
	Save(j *domain.JourneyAggregate) error
}

// JourneyService owns the load-mutate-persist cycle for stop progression and
// seat blocks. One serialized entry point per aggregate; reads hand out
// snapshots.
type JourneyService struct {
	Journeys  JourneyStore
	RequestID string
}

// Get returns a read snapshot of the aggregate.
func (s JourneyService) Get(journeyID string) (*domain.JourneyAggregate, error) {
	j, err := s.Journeys.GetByID(journeyID)
	if err != nil {
		return nil, err
	}
	return j.Snapshot(), nil
}

// Advance moves the journey to the given stop and persists the result.
func (s JourneyService) Advance(journeyID string, stopSeq int, now time.Time) (*domain.JourneyAggregate, error) {
	j, err := s.Journeys.GetByID(journeyID)
	if err != nil {
		return nil, err
	}

	progress := &domain.StopProgression{Journey: j}
	if err := progress.AdvanceTo(stopSeq, now); err != nil {
		return nil, err
	}
	if err := s.Journeys.Save(j); err != nil {
		return nil, err
	}

	utils.LogEvent(s.RequestID, "journey", "advance",
		"journey_id="+journeyID+" stop="+strconv.Itoa(stopSeq))
	return j.Snapshot(), nil
}

// Delay records a delay against a stop and persists the result.
func (s JourneyService) Delay(journeyID string, stopSeq, minutes int) (*domain.JourneyAggregate, error) {
	j, err := s.Journeys.GetByID(journeyID)
	if err != nil {
		return nil, err
	}

	progress := &domain.StopProgression{Journey: j}
	if err := progress.MarkDelay(stopSeq, minutes); err != nil {
		return nil, err
	}
	if err := s.Journeys.Save(j); err != nil {
		return nil, err
	}

	utils.LogEvent(s.RequestID, "journey", "delay",
		"journey_id="+journeyID+" stop="+strconv.Itoa(stopSeq)+" minutes="+strconv.Itoa(minutes))
	return j.Snapshot(), nil
}

// BlockSeat applies the operator block override and persists it.
func (s JourneyService) BlockSeat(journeyID, seat string) (*domain.JourneyAggregate, error) {
	return s.mutateSeat(journeyID, seat, "block_seat", func(j *domain.JourneyAggregate, code string) error {
		return j.BlockSeat(code)
	})
}

// UnblockSeat lifts a block and persists it.
func (s JourneyService) UnblockSeat(journeyID, seat string) (*domain.JourneyAggregate, error) {
	return s.mutateSeat(journeyID, seat, "unblock_seat", func(j *domain.JourneyAggregate, code string) error {
		return j.UnblockSeat(code)
	})
}

func (s JourneyService) mutateSeat(journeyID, seat, action string, fn func(*domain.JourneyAggregate, string) error) (*domain.JourneyAggregate, error) {
	j, err := s.Journeys.GetByID(journeyID)
	if err != nil {
		return nil, err
	}

	code := utils.NormalizeSeatCode(seat)
	if err := fn(j, code); err != nil {
		return nil, err
	}
	if err := s.Journeys.Save(j); err != nil {
		return nil, err
	}

	utils.LogEvent(s.RequestID, "journey", action, "journey_id="+journeyID+" seat="+code)
	return j.Snapshot(), nil
}
