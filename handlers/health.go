package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhive/utils"
)

// Healthz reports liveness plus the latest dependency snapshot.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"deps":   utils.GetHealthStatus(),
	})
}
