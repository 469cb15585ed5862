package domain

import "time"

// Action is one conductor intent against a passenger record.
type Action string

const (
	ActionRevalidate Action = "revalidate"
	ActionInvalidate Action = "invalidate"
	ActionRefund     Action = "refund"
	ActionTransfer   Action = "transfer"
	ActionMessage    Action = "message"
	ActionCall       Action = "call"
)

// ActionContext carries the inputs an action needs. Now is always explicit;
// the engine never reads a global clock.
type ActionContext struct {
	Now         time.Time
	Method      ValidationMethod // revalidate
	ValidatorID string           // revalidate
	Expire      bool             // invalidate: expired instead of pending
	TargetSeat  string           // transfer
}

// ActionResult is what the UI renders after an action.
type ActionResult struct {
	Success          bool             `json:"success"`
	Message          string           `json:"message"`
	UpdatedPassenger *PassengerRecord `json:"updated_passenger,omitempty"`
}

// Notifier is the injected communication capability behind message/call.
// The engine treats its result as opaque pass-through.
type Notifier interface {
	Notify(passengerID string, kind Action) (ActionResult, error)
}

// ValidationEngine applies conductor actions to one journey's passenger
// records and keeps the seat map and summary in step. All mutations are
// all-or-nothing: on any error the aggregate is left untouched.
type ValidationEngine struct {
	Journey  *JourneyAggregate
	Notifier Notifier
}

// Apply runs one action against one passenger.
func (e *ValidationEngine) Apply(action Action, passengerID string, ctx ActionContext) (ActionResult, error) {
	p, err := e.Journey.PassengerByID(passengerID)
	if err != nil {
		return ActionResult{}, err
	}

	switch action {
	case ActionMessage, ActionCall:
		// communication, not state: delegated, validation status untouched
		if e.Notifier == nil {
			return ActionResult{}, NotFoundError{Resource: "notifier"}
		}
		return e.Notifier.Notify(passengerID, action)
	}

	if e.Journey.closed() {
		return ActionResult{}, JourneyClosedError{JourneyID: e.Journey.ID, Status: string(e.Journey.Status)}
	}

	switch action {
	case ActionRevalidate:
		return e.revalidate(p, ctx)
	case ActionInvalidate:
		return e.invalidate(p, ctx)
	case ActionRefund:
		return e.refund(p, ctx)
	case ActionTransfer:
		return e.transfer(p, ctx)
	default:
		return ActionResult{}, InvalidTransitionError{Entity: "action", From: string(p.Validation.Status), To: string(action)}
	}
}

func (e *ValidationEngine) revalidate(p *PassengerRecord, ctx ActionContext) (ActionResult, error) {
	if p.Validation.Status != ValidationPending {
		return ActionResult{}, InvalidTransitionError{
			Entity: "passenger " + p.ID,
			From:   string(p.Validation.Status),
			To:     string(ValidationValidated),
		}
	}
	if ctx.Method == "" {
		return ActionResult{}, DataQualityError{Field: "method", Msg: "revalidate requires a validation method"}
	}
	if ctx.Now.IsZero() {
		return ActionResult{}, DataQualityError{Field: "now", Msg: "revalidate requires a timestamp"}
	}

	p.Validation.Status = ValidationValidated
	p.Validation.ValidatedAt = ctx.Now
	p.Validation.Method = ctx.Method
	p.Validation.ValidatorID = ctx.ValidatorID
	return e.commit(p, "ticket validated")
}

func (e *ValidationEngine) invalidate(p *PassengerRecord, ctx ActionContext) (ActionResult, error) {
	target := ValidationPending
	if ctx.Expire {
		target = ValidationExpired
	}
	if p.Validation.Status != ValidationValidated {
		return ActionResult{}, InvalidTransitionError{
			Entity: "passenger " + p.ID,
			From:   string(p.Validation.Status),
			To:     string(target),
		}
	}

	p.Validation.Status = target
	p.Validation.ValidatedAt = time.Time{}
	p.Validation.Method = ""
	p.Validation.ValidatorID = ""
	return e.commit(p, "validation revoked")
}

func (e *ValidationEngine) refund(p *PassengerRecord, _ ActionContext) (ActionResult, error) {
	// idempotent: a retried refund on an already cancelled ticket succeeds
	// without further side effects
	if p.Validation.Status == ValidationCancelled {
		return ActionResult{Success: true, Message: "ticket already refunded", UpdatedPassenger: p.Clone()}, nil
	}
	if p.Validation.Status != ValidationValidated && p.Validation.Status != ValidationPending {
		return ActionResult{}, InvalidTransitionError{
			Entity: "passenger " + p.ID,
			From:   string(p.Validation.Status),
			To:     string(ValidationCancelled),
		}
	}

	p.Validation.Status = ValidationCancelled
	p.Validation.ValidatedAt = time.Time{}
	p.Validation.Method = ""
	p.Validation.ValidatorID = ""
	return e.commit(p, "ticket refunded")
}

// transfer moves the passenger to another seat. Both seat updates land
// together or not at all: every guard runs before the first mutation.
func (e *ValidationEngine) transfer(p *PassengerRecord, ctx ActionContext) (ActionResult, error) {
	target := ctx.TargetSeat
	source := p.Ticket.SeatCode
	if target == "" || target == source {
		return ActionResult{}, DataQualityError{Field: "target_seat", Value: target, Msg: "transfer needs a different seat"}
	}
	seats := e.Journey.Seats
	st, err := seats.StatusOf(target)
	if err != nil {
		return ActionResult{}, err
	}
	if st == SeatBlocked {
		return ActionResult{}, SeatUnavailableError{Seat: target, Reason: "seat is blocked"}
	}
	if otherID, taken := seats.PassengerAt(target); taken {
		other, err := e.Journey.PassengerByID(otherID)
		if err != nil {
			return ActionResult{}, err
		}
		if other.Validation.Status == ValidationValidated {
			return ActionResult{}, SeatUnavailableError{Seat: target, Reason: "held by a validated passenger"}
		}
		return ActionResult{}, SeatUnavailableError{Seat: target, Reason: "held by passenger " + otherID}
	}

	seats.release(source)
	if err := seats.assign(target, p.ID); err != nil {
		// unreachable after the guards above; restore the source link anyway
		_ = seats.assign(source, p.ID)
		_ = seats.SetStatus(source, seatStatusFor(p.Validation.Status))
		return ActionResult{}, err
	}
	p.Ticket.SeatCode = target
	return e.commit(p, "seat transferred to "+target)
}

// commit syncs the derived seat status and flags, recomputes the summary and
// wraps the updated record.
func (e *ValidationEngine) commit(p *PassengerRecord, msg string) (ActionResult, error) {
	p.syncValidatedFlag()
	if err := e.Journey.Seats.SetStatus(p.Ticket.SeatCode, seatStatusFor(p.Validation.Status)); err != nil {
		return ActionResult{}, err
	}
	e.Journey.RecomputeSummary()
	return ActionResult{Success: true, Message: msg, UpdatedPassenger: p.Clone()}, nil
}
