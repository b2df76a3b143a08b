package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/store"
)

// Health reports 503 when the store does not answer a ping.
func Health(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ensureStore(c.Request.Context(), st); err != nil {
			log.WithError(err).Warn("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
