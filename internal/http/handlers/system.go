package handlers

import (
	"net/http"

	intconfig "conductor/internal/config"
	"conductor/internal/utils"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "conductor backend running"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected"})
		return
	}
	missing := []string{}
	for _, table := range []string{"users", "schedules", "journeys", "journey_stops", "passenger_records"} {
		if !utils.HasTable(intconfig.DB, table) {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "missing_tables": missing})
		return
	}

	var count int
	err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM schedules").Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "schedules_in_db": count})
}
