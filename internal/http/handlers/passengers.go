package handlers

import (
	"net/http"
	"strconv"

	"conductor/internal/domain"
	"conductor/internal/http/middleware"
	"conductor/internal/repositories"
	"conductor/internal/services"
	"conductor/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/journeys/:id/passengers
func GetJourneyPassengers(c *gin.Context) {
	j, err := journeyService(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"journey_id": j.ID,
		"passengers": j.Passengers,
	})
}

type actionRequest struct {
	Action      string `json:"action"`
	Method      string `json:"method"`
	ValidatorID string `json:"validator_id"`
	Expire      bool   `json:"expire"`
	TargetSeat  string `json:"target_seat"`
}

// POST /api/journeys/:id/passengers/:pid/actions
func ApplyPassengerAction(c *gin.Context) {
	var req actionRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	action := domain.Action(req.Action)
	switch action {
	case domain.ActionRevalidate, domain.ActionInvalidate, domain.ActionRefund,
		domain.ActionTransfer, domain.ActionMessage, domain.ActionCall:
	default:
		RespondError(c, http.StatusBadRequest, "unknown action: "+req.Action, nil)
		return
	}

	svc := services.ValidationService{
		Journeys:  repositories.JourneyRepository{},
		Notifier:  services.LogNotifier{RequestID: middleware.GetRequestID(c)},
		RequestID: middleware.GetRequestID(c),
	}

	ctx := domain.ActionContext{
		Now:         utils.NowLocal(),
		Method:      domain.ValidationMethod(req.Method),
		ValidatorID: req.ValidatorID,
		Expire:      req.Expire,
		TargetSeat:  utils.NormalizeSeatCode(req.TargetSeat),
	}
	if ctx.ValidatorID == "" {
		if uid := middleware.GetUserID(c); uid != 0 {
			ctx.ValidatorID = strconv.FormatInt(uid, 10)
		}
	}

	result, err := svc.Apply(c.Param("id"), c.Param("pid"), action, ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/journeys/:id/passengers/:pid/e-ticket
func GetPassengerETicket(c *gin.Context) {
	svc := services.DocsService{
		Journeys:  repositories.JourneyRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateETicket(c.Param("id"), c.Param("pid"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
