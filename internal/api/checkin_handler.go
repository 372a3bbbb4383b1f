package api

import (
	"errors"
	"fmt"
	"net/http"

	"gymmate/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckinHandler serves QR scan check-in/out and visit history.
type CheckinHandler struct {
	checkinService service.CheckinService
}

func NewCheckinHandler(checkinService service.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinService: checkinService}
}

type ScanRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// Scan processes one QR scan: opens a session when none is active,
// closes the active one otherwise.
func (h *CheckinHandler) Scan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.checkinService.Scan(c.Request.Context(), userID, req.Payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScanTooSoon):
			abortWithError(c, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, service.ErrInvalidQRCode),
			errors.Is(err, service.ErrWrongGym),
			errors.Is(err, service.ErrNoRegisteredGym):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to process scan")
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// Active returns the user's open gym session, or null when none exists.
func (h *CheckinHandler) Active(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	entry, err := h.checkinService.ActiveEntry(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load active session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// History returns the user's visit log, newest first.
func (h *CheckinHandler) History(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	entries, err := h.checkinService.History(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load visit history")
		return
	}
	c.JSON(http.StatusOK, entries)
}
