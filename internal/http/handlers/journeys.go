package handlers

import (
	"net/http"

	"conductor/internal/domain"
	"conductor/internal/http/middleware"
	"conductor/internal/repositories"
	"conductor/internal/services"
	"conductor/internal/utils"

	"github.com/gin-gonic/gin"
)

func journeyService(c *gin.Context) services.JourneyService {
	return services.JourneyService{
		Journeys:  repositories.JourneyRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/journeys/:id
func GetJourney(c *gin.Context) {
	j, err := journeyService(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"journey": j})
}

// seatView is the per-seat payload of the seat map endpoint.
type seatView struct {
	Code      string `json:"code"`
	Status    string `json:"status"`
	Passenger string `json:"passenger_id,omitempty"`
}

// GET /api/journeys/:id/seats
func GetJourneySeats(c *gin.Context) {
	j, err := journeyService(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	layout := j.Seats.Layout()
	statuses := j.Seats.StatusView()
	seats := make([]seatView, 0, len(layout))
	for _, code := range layout {
		view := seatView{Code: code, Status: string(statuses[code])}
		if pid, ok := j.Seats.PassengerAt(code); ok {
			view.Passenger = pid
		}
		seats = append(seats, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"journey_id": j.ID,
		"seats":      seats,
		"occupied":   j.Summary.OccupiedSeats,
		"validated":  j.Summary.ValidatedSeats,
	})
}

type advanceRequest struct {
	StopSequence int    `json:"stop_sequence"`
	Now          string `json:"now"`
}

// POST /api/journeys/:id/advance
func AdvanceJourney(c *gin.Context) {
	var req advanceRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	now := utils.NowLocal()
	if req.Now != "" {
		parsed, err := utils.ParseDateTime(req.Now)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid now value", err)
			return
		}
		now = parsed
	}

	j, err := journeyService(c).Advance(c.Param("id"), req.StopSequence, now)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"journey": j})
}

type delayRequest struct {
	StopSequence int `json:"stop_sequence"`
	Minutes      int `json:"minutes"`
}

// POST /api/journeys/:id/delay
func DelayJourney(c *gin.Context) {
	var req delayRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	j, err := journeyService(c).Delay(c.Param("id"), req.StopSequence, req.Minutes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"journey": j})
}

type seatRequest struct {
	Seat string `json:"seat"`
}

// POST /api/journeys/:id/seats/block
func BlockSeat(c *gin.Context) {
	mutateJourneySeat(c, func(svc services.JourneyService, id, seat string) (*domain.JourneyAggregate, error) {
		return svc.BlockSeat(id, seat)
	})
}

// POST /api/journeys/:id/seats/unblock
func UnblockSeat(c *gin.Context) {
	mutateJourneySeat(c, func(svc services.JourneyService, id, seat string) (*domain.JourneyAggregate, error) {
		return svc.UnblockSeat(id, seat)
	})
}

func mutateJourneySeat(c *gin.Context, fn func(services.JourneyService, string, string) (*domain.JourneyAggregate, error)) {
	var req seatRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Seat == "" {
		RespondError(c, http.StatusBadRequest, "seat is required", nil)
		return
	}

	j, err := fn(journeyService(c), c.Param("id"), req.Seat)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"journey": j})
}

// GET /api/journeys/:id/manifest
func GetJourneyManifest(c *gin.Context) {
	svc := services.DocsService{
		Journeys:  repositories.JourneyRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateManifest(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
