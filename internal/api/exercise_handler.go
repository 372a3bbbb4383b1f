package api

import (
	"errors"
	"net/http"

	"gymmate/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler serves the exercise library.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// List returns the exercise catalog, optionally filtered by body area
// via the "area" query parameter.
func (h *ExerciseHandler) List(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), c.Query("area"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// Get returns a single exercise.
func (h *ExerciseHandler) Get(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load exercise")
		}
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// ImageURL returns a presigned GET URL for the exercise illustration.
func (h *ExerciseHandler) ImageURL(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	url, err := h.exerciseService.ImageDownloadURL(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve image URL")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
