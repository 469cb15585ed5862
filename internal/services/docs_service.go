package services

import (
	"bytes"
	"fmt"
	"strings"

	"conductor/internal/domain"
	"conductor/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders passenger e-tickets and the journey boarding manifest
// as PDFs.
type DocsService struct {
	Journeys  JourneyStore
	RequestID string
	Loader    func(journeyID string) (*domain.JourneyAggregate, error) // test hook
}

func (s DocsService) load(journeyID string) (*domain.JourneyAggregate, error) {
	if s.Loader != nil {
		return s.Loader(journeyID)
	}
	j, err := s.Journeys.GetByID(journeyID)
	if err != nil {
		return nil, err
	}
	return j.Snapshot(), nil
}

// GenerateETicket renders one passenger's e-ticket.
func (s DocsService) GenerateETicket(journeyID, passengerID string) ([]byte, string, error) {
	j, err := s.load(journeyID)
	if err != nil {
		return nil, "", err
	}
	p, err := j.PassengerByID(passengerID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket",
		"journey_id="+journeyID+" passenger_id="+passengerID)
	return buildETicketPDF(j, p)
}

// GenerateManifest renders the boarding manifest for one journey: every
// occupied seat with its passenger and validation state.
func (s DocsService) GenerateManifest(journeyID string) ([]byte, string, error) {
	j, err := s.load(journeyID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_manifest", "journey_id="+journeyID)
	return buildManifestPDF(j)
}

func buildETicketPDF(j *domain.JourneyAggregate, p *domain.PassengerRecord) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger    : %s", safe(p.Name, "-")),
		fmt.Sprintf("Phone        : %s", safe(p.Contact.Phone, "-")),
		fmt.Sprintf("Seat         : %s", safe(p.Ticket.SeatCode, "-")),
		fmt.Sprintf("Route        : %s -> %s", safe(j.Route.Start, "-"), safe(j.Route.End, "-")),
		fmt.Sprintf("Boarding     : %s", safe(p.Booking.BoardingPoint, "-")),
		fmt.Sprintf("Destination  : %s", safe(p.Booking.DestinationPoint, "-")),
		fmt.Sprintf("Arrival      : %s", utils.FormatDateTime(p.Booking.ArrivalAt)),
		fmt.Sprintf("Payment      : %s", safe(p.Ticket.PaymentType, "-")),
		fmt.Sprintf("Ticket Code  : %s", safe(p.Ticket.TicketID, "-")),
		fmt.Sprintf("Booking Ref  : %s", safe(p.Ticket.BookingRef, "-")),
		fmt.Sprintf("Status       : %s", string(p.Validation.Status)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for 1 passenger (1 seat). Please present it when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", j.ID, safeFilenamePart(p.Name+"_"+p.Ticket.SeatCode))
	return buf.Bytes(), filename, nil
}

func buildManifestPDF(j *domain.JourneyAggregate) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Boarding Manifest", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOARDING MANIFEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Route   : %s %s", safe(j.Route.Number, "-"), safe(j.Route.Name, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Journey : %s (%s)", j.ID, string(j.Status)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Seats   : %d occupied, %d validated",
		j.Summary.OccupiedSeats, j.Summary.ValidatedSeats))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, p := range j.Passengers {
		line := fmt.Sprintf("%-5s %-24s %-10s %s",
			p.Ticket.SeatCode,
			safe(p.Name, "-"),
			string(p.Validation.Status),
			safe(p.Booking.DestinationPoint, "-"),
		)
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Stops:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i := range j.Stops {
		s := &j.Stops[i]
		line := fmt.Sprintf("%2d. %-24s %s  %s",
			s.Sequence,
			safe(s.Name, "-"),
			utils.FormatClock(s.ProjectedAt),
			string(s.Status),
		)
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("MANIFEST_%s.pdf", safeFilenamePart(j.ID))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
