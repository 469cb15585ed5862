package domain

import (
	"errors"
	"fmt"
)

// InvalidTransitionError marks an illegal state-machine edge, either on a
// passenger validation record or a seat status write.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
	Err    error
}

func (e InvalidTransitionError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
	}
	return fmt.Sprintf("%s: invalid transition %s -> %s", e.Entity, e.From, e.To)
}

func (e InvalidTransitionError) Unwrap() error { return e.Err }

// SeatUnavailableError is returned when a transfer target is blocked or held
// by another validated passenger.
type SeatUnavailableError struct {
	Seat   string
	Reason string
}

func (e SeatUnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("seat %s unavailable", e.Seat)
	}
	return fmt.Sprintf("seat %s unavailable: %s", e.Seat, e.Reason)
}

// JourneyClosedError rejects mutation after a journey reached a terminal
// status.
type JourneyClosedError struct {
	JourneyID string
	Status    string
}

func (e JourneyClosedError) Error() string {
	return fmt.Sprintf("journey %s is closed (status %s)", e.JourneyID, e.Status)
}

// NotFoundError covers unknown passenger/seat/stop/schedule identifiers.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// DataQualityError flags unparseable schedule date/time input. It is
// non-fatal: the scheduler skips and counts such entries instead of failing
// the whole selection.
type DataQualityError struct {
	Field string
	Value string
	Msg   string
}

func (e DataQualityError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("bad %s value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("bad %s value %q: %s", e.Field, e.Value, e.Msg)
}

func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}

func IsSeatUnavailable(err error) bool {
	var target SeatUnavailableError
	return errors.As(err, &target)
}

func IsJourneyClosed(err error) bool {
	var target JourneyClosedError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsDataQuality(err error) bool {
	var target DataQualityError
	return errors.As(err, &target)
}
