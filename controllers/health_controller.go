package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HealthController struct {
	ping    func(ctx context.Context) error
	timeout time.Duration
	log     zerolog.Logger
}

// NewHealthController takes the store health check; nil means there is no
// external store to check.
func NewHealthController(ping func(ctx context.Context) error, log zerolog.Logger) *HealthController {
	return &HealthController{
		ping:    ping,
		timeout: 2 * time.Second,
		log:     log,
	}
}

func (hc *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"status":  "healthy",
	})
}

func (hc *HealthController) Health(c *gin.Context) {
	if hc.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), hc.timeout)
		defer cancel()

		if err := hc.ping(ctx); err != nil {
			hc.log.Warn().Err(err).Msg("store health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "ok",
	})
}
