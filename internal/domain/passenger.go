package domain

import "time"

// ValidationStatus is the lifecycle state of one passenger's ticket check.
type ValidationStatus string

const (
	ValidationValidated ValidationStatus = "validated"
	ValidationPending   ValidationStatus = "pending"
	ValidationExpired   ValidationStatus = "expired"
	ValidationCancelled ValidationStatus = "cancelled"
)

// ValidationMethod records how a ticket was checked.
type ValidationMethod string

const (
	MethodQR     ValidationMethod = "qr"
	MethodManual ValidationMethod = "manual"
	MethodNFC    ValidationMethod = "nfc"
)

// ValidationRecord is the audit trail of the latest validation decision.
type ValidationRecord struct {
	Status      ValidationStatus `json:"status"`
	ValidatedAt time.Time        `json:"validated_at,omitempty"`
	ValidatorID string           `json:"validator_id,omitempty"`
	Method      ValidationMethod `json:"method,omitempty"`
}

// Ticket binds a passenger to a seat and a fare.
type Ticket struct {
	TicketID       string `json:"ticket_id"`
	SeatCode       string `json:"seat_code"`
	PaymentType    string `json:"payment_type"`
	PassengerCount int    `json:"passenger_count"`
	Fare           int64  `json:"fare"`
	BookingRef     string `json:"booking_ref,omitempty"`
}

// ContactInfo is what the conductor can reach the passenger on.
type ContactInfo struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// BookingWindow carries the booking timeline and the leg endpoints.
type BookingWindow struct {
	BookedAt         time.Time  `json:"booked_at"`
	ArrivalAt        time.Time  `json:"arrival_at"`
	DepartureAt      *time.Time `json:"departure_at,omitempty"`
	BoardingPoint    string     `json:"boarding_point"`
	DestinationPoint string     `json:"destination_point"`
}

// PassengerRecord is one passenger's ticket, contact, booking and validation
// state, keyed to exactly one seat of one journey. Records are created at
// booking ingestion and only ever mutated through the ValidationEngine;
// cancellation is a status, not a removal.
type PassengerRecord struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Ticket      Ticket           `json:"ticket"`
	Contact     ContactInfo      `json:"contact"`
	Booking     BookingWindow    `json:"booking"`
	Validation  ValidationRecord `json:"validation"`
	IsValidated bool             `json:"is_validated"`
}

// syncValidatedFlag keeps the denormalized boolean in agreement with the
// validation record. Callers mutate Validation.Status, then call this.
func (p *PassengerRecord) syncValidatedFlag() {
	p.IsValidated = p.Validation.Status == ValidationValidated
}

// Clone returns an independent copy safe to hand to readers.
func (p *PassengerRecord) Clone() *PassengerRecord {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Booking.DepartureAt != nil {
		t := *p.Booking.DepartureAt
		cp.Booking.DepartureAt = &t
	}
	return &cp
}
