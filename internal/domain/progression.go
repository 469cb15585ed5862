package domain

import (
	"strconv"
	"time"
)

// StopProgression advances one journey through its ordered stop sequence.
// Progress is monotonic and completing the final stop closes the journey for
// good: every later mutation fails with JourneyClosed.
type StopProgression struct {
	Journey *JourneyAggregate
}

// CurrentStop returns a copy of the stop currently being served, or nil when
// the journey has not reached any stop or is already past the last one.
func (sp *StopProgression) CurrentStop() *Stop {
	idx := sp.Journey.currentStopIndex()
	if idx < 0 {
		return nil
	}
	s := sp.Journey.Stops[idx].clone()
	return &s
}

// AdvanceTo moves the journey to the stop with the given sequence number.
// Every earlier stop is marked completed, the target becomes current (or
// completed when it is the final stop), later stops are left untouched.
// Moving backwards is an InvalidTransition.
func (sp *StopProgression) AdvanceTo(seq int, now time.Time) error {
	j := sp.Journey
	if j.closed() {
		return JourneyClosedError{JourneyID: j.ID, Status: string(j.Status)}
	}
	idx, err := j.stopBySequence(seq)
	if err != nil {
		return err
	}
	if cur := j.currentStopIndex(); cur >= 0 && idx < cur {
		return InvalidTransitionError{
			Entity: "journey " + j.ID,
			From:   "stop " + strconv.Itoa(j.Stops[cur].Sequence),
			To:     "stop " + strconv.Itoa(seq),
		}
	}

	for i := 0; i < idx; i++ {
		completeStop(&j.Stops[i], now)
	}

	target := &j.Stops[idx]
	if target.IsFinal {
		completeStop(target, now)
		j.Status = JourneyCompleted
	} else {
		if target.ActualAt == nil {
			t := now
			target.ActualAt = &t
		}
		target.Status = StopCurrent
		if j.Status == JourneyScheduled || j.Status == JourneyStarted {
			j.Status = JourneyInProgress
		}
	}

	j.RecomputeSummary()
	return nil
}

// MarkDelay records a delay (in minutes) against a not-yet-completed stop and
// pushes the projected arrival of every later stop through the cumulative
// delay model. A non-positive delay clears the late flag.
func (sp *StopProgression) MarkDelay(seq, minutes int) error {
	j := sp.Journey
	if j.closed() {
		return JourneyClosedError{JourneyID: j.ID, Status: string(j.Status)}
	}
	idx, err := j.stopBySequence(seq)
	if err != nil {
		return err
	}
	stop := &j.Stops[idx]
	if stop.Completed {
		return InvalidTransitionError{
			Entity: "journey " + j.ID,
			From:   string(StopCompleted),
			To:     string(StopLate),
		}
	}

	stop.DelayMinutes = minutes
	switch {
	case stop.Status == StopCurrent:
		// the current marker wins over ontime/late display
	case minutes > 0:
		stop.Status = StopLate
	case stop.Status == StopLate:
		stop.Status = StopOnTime
	}

	j.RecomputeSummary()
	return nil
}

func completeStop(s *Stop, now time.Time) {
	if s.Completed {
		return
	}
	s.Completed = true
	s.Status = StopCompleted
	if s.ActualAt == nil {
		t := now
		s.ActualAt = &t
	}
}
