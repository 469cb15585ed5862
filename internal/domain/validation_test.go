package domain

import (
	"testing"
	"time"
)

type fakeNotifier struct {
	calls []Action
	last  string
}

func (f *fakeNotifier) Notify(passengerID string, kind Action) (ActionResult, error) {
	f.calls = append(f.calls, kind)
	f.last = passengerID
	return ActionResult{Success: true, Message: "queued " + string(kind)}, nil
}

func TestRevalidatePendingPassenger(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}
	now := time.Date(2025, 6, 24, 9, 10, 0, 0, time.Local)

	res, err := engine.Apply(ActionRevalidate, "p-pending", ActionContext{Now: now, Method: MethodQR, ValidatorID: "c1"})
	if err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	if !res.Success || res.UpdatedPassenger == nil {
		t.Fatalf("expected success with updated passenger, got %+v", res)
	}
	p := res.UpdatedPassenger
	if p.Validation.Status != ValidationValidated || !p.IsValidated {
		t.Fatalf("status not validated: %+v", p.Validation)
	}
	if p.Validation.Method != MethodQR || !p.Validation.ValidatedAt.Equal(now) {
		t.Fatalf("validation record not stamped: %+v", p.Validation)
	}
	if st, _ := j.Seats.StatusOf("12A"); st != SeatBookedValidated {
		t.Fatalf("seat 12A should be booked_validated, got %s", st)
	}
	if j.Seats.ValidatedCount() != validatedRecords(j) {
		t.Fatalf("validated count out of sync after action")
	}
}

func TestRevalidateRequiresMethod(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}

	_, err := engine.Apply(ActionRevalidate, "p-pending", ActionContext{Now: time.Now()})
	if err == nil || !IsDataQuality(err) {
		t.Fatalf("expected DataQuality for missing method, got %v", err)
	}
	if p, _ := j.PassengerByID("p-pending"); p.Validation.Status != ValidationPending {
		t.Fatalf("failed action must not mutate the record")
	}
}

func TestRevalidateValidatedIsIllegal(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}

	_, err := engine.Apply(ActionRevalidate, "p-validated", ActionContext{Now: time.Now(), Method: MethodQR})
	if err == nil || !IsInvalidTransition(err) {
		t.Fatalf("expected InvalidTransition, got %v", err)
	}
}

func TestInvalidateValidatedToPendingAndExpired(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}

	res, err := engine.Apply(ActionInvalidate, "p-validated", ActionContext{Now: time.Now()})
	if err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if res.UpdatedPassenger.Validation.Status != ValidationPending {
		t.Fatalf("default invalidate target is pending, got %s", res.UpdatedPassenger.Validation.Status)
	}
	if st, _ := j.Seats.StatusOf("1A"); st != SeatBookedUnvalidated {
		t.Fatalf("seat should drop to booked_unvalidated, got %s", st)
	}

	// validate again, then expire
	if _, err := engine.Apply(ActionRevalidate, "p-validated", ActionContext{Now: time.Now(), Method: MethodNFC}); err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	res, err = engine.Apply(ActionInvalidate, "p-validated", ActionContext{Now: time.Now(), Expire: true})
	if err != nil {
		t.Fatalf("invalidate expire: %v", err)
	}
	if res.UpdatedPassenger.Validation.Status != ValidationExpired {
		t.Fatalf("expected expired, got %s", res.UpdatedPassenger.Validation.Status)
	}
}

func TestInvalidatePendingIsIllegal(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}

	_, err := engine.Apply(ActionInvalidate, "p-pending", ActionContext{Now: time.Now()})
	if err == nil || !IsInvalidTransition(err) {
		t.Fatalf("expected InvalidTransition, got %v", err)
	}
}

func TestRefundIsIdempotent(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}

	first, err := engine.Apply(ActionRefund, "p-pending", ActionContext{Now: time.Now()})
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if first.UpdatedPassenger.Validation.Status != ValidationCancelled {
		t.Fatalf("expected cancelled, got %s", first.UpdatedPassenger.Validation.Status)
	}

	// replayed client call must succeed with no further side effects
	second, err := engine.Apply(ActionRefund, "p-pending", ActionContext{Now: time.Now()})
	if err != nil {
		t.Fatalf("second refund must be a no-op success: %v", err)
	}
	if !second.Success || second.UpdatedPassenger.Validation.Status != ValidationCancelled {
		t.Fatalf("second refund result wrong: %+v", second)
	}

	// cancellation keeps the record and the seat reference
	if _, err := j.PassengerByID("p-pending"); err != nil {
		t.Fatalf("cancelled record must not be removed: %v", err)
	}
	if st, _ := j.Seats.StatusOf("12A"); st != SeatBookedUnvalidated {
		t.Fatalf("cancelled ticket seat should stay booked_unvalidated, got %s", st)
	}
}

func TestNoTransitionLeavesCancelled(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}

	if _, err := engine.Apply(ActionRefund, "p-pending", ActionContext{Now: time.Now()}); err != nil {
		t.Fatalf("refund: %v", err)
	}
	_, err := engine.Apply(ActionRevalidate, "p-pending", ActionContext{Now: time.Now(), Method: MethodQR})
	if err == nil || !IsInvalidTransition(err) {
		t.Fatalf("revalidate after refund must fail, got %v", err)
	}
}

func TestTransferMovesBothSeatsAtomically(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}

	res, err := engine.Apply(ActionTransfer, "p-pending", ActionContext{Now: time.Now(), TargetSeat: "2A"})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if res.UpdatedPassenger.Ticket.SeatCode != "2A" {
		t.Fatalf("ticket seat not moved: %s", res.UpdatedPassenger.Ticket.SeatCode)
	}
	if st, _ := j.Seats.StatusOf("12A"); st != SeatAvailable {
		t.Fatalf("vacated seat should be available, got %s", st)
	}
	if st, _ := j.Seats.StatusOf("2A"); st != SeatBookedUnvalidated {
		t.Fatalf("target seat should carry the derived status, got %s", st)
	}
	if id, ok := j.Seats.PassengerAt("2A"); !ok || id != "p-pending" {
		t.Fatalf("target seat linkage wrong: %s %v", id, ok)
	}
}

func TestTransferToBlockedSeatMutatesNothing(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}
	if err := j.BlockSeat("2A"); err != nil {
		t.Fatalf("block: %v", err)
	}
	before, _ := j.Seats.StatusOf("12A")

	_, err := engine.Apply(ActionTransfer, "p-pending", ActionContext{Now: time.Now(), TargetSeat: "2A"})
	if err == nil || !IsSeatUnavailable(err) {
		t.Fatalf("expected SeatUnavailable, got %v", err)
	}
	after, _ := j.Seats.StatusOf("12A")
	if before != after {
		t.Fatalf("source seat changed on failed transfer: %s -> %s", before, after)
	}
	if p, _ := j.PassengerByID("p-pending"); p.Ticket.SeatCode != "12A" {
		t.Fatalf("ticket seat changed on failed transfer: %s", p.Ticket.SeatCode)
	}
	if st, _ := j.Seats.StatusOf("2A"); st != SeatBlocked {
		t.Fatalf("target seat should stay blocked, got %s", st)
	}
}

func TestTransferToValidatedPassengerSeatFails(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}

	_, err := engine.Apply(ActionTransfer, "p-pending", ActionContext{Now: time.Now(), TargetSeat: "1A"})
	if err == nil || !IsSeatUnavailable(err) {
		t.Fatalf("expected SeatUnavailable for a validated passenger's seat, got %v", err)
	}
}

func TestMessageAndCallDelegateToNotifier(t *testing.T) {
	j := newTestJourney(t)
	notifier := &fakeNotifier{}
	engine := &ValidationEngine{Journey: j, Notifier: notifier}

	res, err := engine.Apply(ActionMessage, "p-pending", ActionContext{})
	if err != nil || !res.Success {
		t.Fatalf("message: %v %+v", err, res)
	}
	if _, err := engine.Apply(ActionCall, "p-pending", ActionContext{}); err != nil {
		t.Fatalf("call: %v", err)
	}
	if len(notifier.calls) != 2 || notifier.calls[0] != ActionMessage || notifier.calls[1] != ActionCall {
		t.Fatalf("notifier calls wrong: %v", notifier.calls)
	}
	if p, _ := j.PassengerByID("p-pending"); p.Validation.Status != ValidationPending {
		t.Fatalf("message/call must not change validation status")
	}
}

func TestUnknownPassengerIsNotFound(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}

	_, err := engine.Apply(ActionRefund, "ghost", ActionContext{Now: time.Now()})
	if err == nil || !IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestActionsRejectedOnCompletedJourney(t *testing.T) {
	j := newTestJourney(t)
	progress := &StopProgression{Journey: j}
	if err := progress.AdvanceTo(4, time.Now()); err != nil {
		t.Fatalf("advance to final: %v", err)
	}

	engine := &ValidationEngine{Journey: j}
	_, err := engine.Apply(ActionRevalidate, "p-pending", ActionContext{Now: time.Now(), Method: MethodQR})
	if err == nil || !IsJourneyClosed(err) {
		t.Fatalf("expected JourneyClosed, got %v", err)
	}
}

func TestValidatedCountInvariantAcrossActions(t *testing.T) {
	j := newTestJourney(t)
	engine := &ValidationEngine{Journey: j}
	now := time.Now()

	steps := []struct {
		action Action
		id     string
		ctx    ActionContext
	}{
		{ActionRevalidate, "p-pending", ActionContext{Now: now, Method: MethodQR}},
		{ActionInvalidate, "p-validated", ActionContext{Now: now}},
		{ActionTransfer, "p-validated", ActionContext{Now: now, TargetSeat: "2B"}},
		{ActionRefund, "p-validated", ActionContext{Now: now}},
	}
	for i, s := range steps {
		if _, err := engine.Apply(s.action, s.id, s.ctx); err != nil {
			t.Fatalf("step %d (%s): %v", i, s.action, err)
		}
		if j.Seats.ValidatedCount() != validatedRecords(j) {
			t.Fatalf("step %d (%s): validated count %d != validated records %d",
				i, s.action, j.Seats.ValidatedCount(), validatedRecords(j))
		}
		if j.Summary.ValidatedSeats != j.Seats.ValidatedCount() {
			t.Fatalf("step %d (%s): summary not recomputed", i, s.action)
		}
	}
}
