package api

import (
	"errors"
	"net/http"
	"strconv"

	"gymmate/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

// GymHandler serves the gym membership catalog.
type GymHandler struct {
	gymService service.GymService
}

func NewGymHandler(gymService service.GymService) *GymHandler {
	return &GymHandler{gymService: gymService}
}

// List returns every gym available for membership.
func (h *GymHandler) List(c *gin.Context) {
	gyms, err := h.gymService.ListGyms(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load gyms")
		return
	}
	c.JSON(http.StatusOK, gyms)
}

// Get returns a single gym by its numeric ID.
func (h *GymHandler) Get(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid gym ID format")
		return
	}

	gym, err := h.gymService.GetGym(c.Request.Context(), gymID)
	if err != nil {
		if errors.Is(err, service.ErrGymNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load gym")
		}
		return
	}
	c.JSON(http.StatusOK, gym)
}
