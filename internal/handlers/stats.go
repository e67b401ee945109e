package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/blossom-focus/blossom-api/internal/errors"
	"github.com/blossom-focus/blossom-api/internal/middleware"
	"github.com/blossom-focus/blossom-api/internal/services"
)

// StatsHandler coordinates the stats HTTP handlers.
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats returns the derived stats view for the requested period.
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	period := services.StatsPeriod(c.DefaultQuery("period", string(services.PeriodAllTime)))

	stats, err := h.statsService.GetStats(userID, period)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPeriod):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, stats)
}
