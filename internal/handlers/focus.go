package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blossom-focus/blossom-api/internal/dto"
	apierrors "github.com/blossom-focus/blossom-api/internal/errors"
	"github.com/blossom-focus/blossom-api/internal/middleware"
	"github.com/blossom-focus/blossom-api/internal/services"
)

// FocusHandler coordinates focus session HTTP handlers.
type FocusHandler struct {
	focusService *services.FocusService
}

// NewFocusHandler creates a new FocusHandler
func NewFocusHandler(focusService *services.FocusService) *FocusHandler {
	return &FocusHandler{
		focusService: focusService,
	}
}

// LogSession records a completed focus session.
func (h *FocusHandler) LogSession(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type LogSessionRequest struct {
		StartedAt time.Time `json:"started_at" binding:"required"`
		EndedAt   time.Time `json:"ended_at" binding:"required"`
	}

	var req LogSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.focusService.LogSession(userID, req.StartedAt, req.EndedAt)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFocusInterval) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFocusTimeDTO(*entry))
}

// ListSessions returns the user's focus sessions.
func (h *FocusHandler) ListSessions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	entries, err := h.focusService.ListSessions(userID)
	if err != nil {
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.ToFocusTimeListDTO(entries))
}
