package api

import (
	"log"
	stdhttp "net/http"

	intconfig "conductor/internal/config"
	h "conductor/internal/http/handlers"
	"conductor/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(h.JWTSecret()))

		schedules := authed.Group("/schedules")
		schedules.GET("", h.GetSchedules)
		schedules.GET("/next", h.GetNextTrip)
		schedules.GET("/:id", h.GetScheduleByID)

		journeys := authed.Group("/journeys")
		journeys.GET("/:id", h.GetJourney)
		journeys.GET("/:id/seats", h.GetJourneySeats)
		journeys.GET("/:id/manifest", h.GetJourneyManifest)
		journeys.GET("/:id/passengers", h.GetJourneyPassengers)
		journeys.GET("/:id/passengers/:pid/e-ticket", h.GetPassengerETicket)

		// only conductors (or admins) mutate journey state
		crew := journeys.Group("")
		crew.Use(middleware.RequireRoles("conductor", "admin"))
		crew.POST("/:id/advance", h.AdvanceJourney)
		crew.POST("/:id/delay", h.DelayJourney)
		crew.POST("/:id/seats/block", h.BlockSeat)
		crew.POST("/:id/seats/unblock", h.UnblockSeat)
		crew.POST("/:id/passengers/:pid/actions", h.ApplyPassengerAction)
	}

	return r
}
