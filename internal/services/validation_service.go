package services

import (
	"conductor/internal/domain"
	"conductor/internal/utils"
)

// ValidationService runs conductor actions through the domain engine inside
// the load-mutate-persist cycle. Communication actions (message/call) never
// touch state, so nothing is persisted for them.
type ValidationService struct {
	Journeys  JourneyStore
	Notifier  domain.Notifier
	RequestID string
}

// Apply executes one action against one passenger of one journey.
func (s ValidationService) Apply(journeyID, passengerID string, action domain.Action, ctx domain.ActionContext) (domain.ActionResult, error) {
	j, err := s.Journeys.GetByID(journeyID)
	if err != nil {
		return domain.ActionResult{}, err
	}

	engine := &domain.ValidationEngine{Journey: j, Notifier: s.Notifier}
	res, err := engine.Apply(action, passengerID, ctx)
	if err != nil {
		return domain.ActionResult{}, err
	}

	if action != domain.ActionMessage && action != domain.ActionCall {
		if err := s.Journeys.Save(j); err != nil {
			return domain.ActionResult{}, err
		}
	}

	utils.LogEvent(s.RequestID, "validation", string(action),
		"journey_id="+journeyID+" passenger_id="+passengerID)
	return res, nil
}

// LogNotifier is the default Notifier: it records the intent and reports the
// hand-off. Real SMS/voice delivery belongs to an external collaborator.
type LogNotifier struct {
	RequestID string
}

func (n LogNotifier) Notify(passengerID string, kind domain.Action) (domain.ActionResult, error) {
	utils.LogEvent(n.RequestID, "notify", string(kind), "passenger_id="+passengerID)
	return domain.ActionResult{
		Success: true,
		Message: string(kind) + " request handed to the communication channel",
	}, nil
}
