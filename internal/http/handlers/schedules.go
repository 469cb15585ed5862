package handlers

import (
	"net/http"
	"strings"
	"time"

	"conductor/internal/http/middleware"
	"conductor/internal/repositories"
	"conductor/internal/services"
	"conductor/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/schedules
func GetSchedules(c *gin.Context) {
	repo := repositories.ScheduleRepository{}
	schedules, err := repo.GetAll()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load schedules", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// GET /api/schedules/:id
func GetScheduleByID(c *gin.Context) {
	repo := repositories.ScheduleRepository{}
	s, err := repo.GetByID(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": s})
}

// GET /api/schedules/next?now=2026-08-28 09:30:00
//
// The now override exists for client clock testing; omitted means server
// local time.
func GetNextTrip(c *gin.Context) {
	now := utils.NowLocal()
	if raw := strings.TrimSpace(c.Query("now")); raw != "" {
		parsed, err := parseNowParam(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid now parameter", err)
			return
		}
		now = parsed
	}

	svc := services.TripService{
		Schedules: repositories.ScheduleRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	result, err := svc.NextTrip(now)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to select next trip", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseNowParam(raw string) (time.Time, error) {
	if t, err := utils.ParseDateTime(raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
