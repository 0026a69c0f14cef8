package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports service liveness and database connectivity.
func (h *Handler) Health(c *gin.Context) {
	dbStatus := "connected"
	sqlDB, err := h.store.DB().DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"database":    dbStatus,
		"environment": h.env,
	})
}
