package api

import (
	"errors"
	"fmt"
	"net/http"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoachHandler serves the coach's trainee roster and oversight endpoints.
type CoachHandler struct {
	coachService service.CoachService
}

func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

type AddTraineeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UpdateProgramRequest struct {
	Program []domain.WorkoutDay `json:"program" binding:"required,min=1"`
}

// AddTrainee attaches a member to the coach's roster by email.
func (h *CoachHandler) AddTrainee(c *gin.Context) {
	coachID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AddTraineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainee, err := h.coachService.AddTraineeByEmail(c.Request.Context(), coachID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTraineeNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotATrainee):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add trainee")
		}
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(trainee))
}

// Trainees lists every member on the coach's roster.
func (h *CoachHandler) Trainees(c *gin.Context) {
	coachID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	trainees, err := h.coachService.Trainees(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load trainees")
		return
	}

	resp := make([]UserResponse, 0, len(trainees))
	for i := range trainees {
		resp = append(resp, MapUserToResponse(&trainees[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// TraineeEntries returns a trainee's gym visit history for the coach.
func (h *CoachHandler) TraineeEntries(c *gin.Context) {
	coachID, traineeID, ok := h.coachAndTrainee(c)
	if !ok {
		return
	}

	entries, err := h.coachService.TraineeEntries(c.Request.Context(), coachID, traineeID)
	if err != nil {
		h.abortRosterError(c, err, "Failed to load trainee entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// TraineeProgram returns a trainee's current program for the coach.
func (h *CoachHandler) TraineeProgram(c *gin.Context) {
	coachID, traineeID, ok := h.coachAndTrainee(c)
	if !ok {
		return
	}

	program, err := h.coachService.TraineeProgram(c.Request.Context(), coachID, traineeID)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		h.abortRosterError(c, err, "Failed to load trainee program")
		return
	}
	c.JSON(http.StatusOK, program)
}

// UpdateTraineeProgram replaces the workout days of a trainee's current program.
func (h *CoachHandler) UpdateTraineeProgram(c *gin.Context) {
	coachID, traineeID, ok := h.coachAndTrainee(c)
	if !ok {
		return
	}

	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program, err := h.coachService.UpdateTraineeProgram(c.Request.Context(), coachID, traineeID, req.Program)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyProgram):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			h.abortRosterError(c, err, "Failed to update trainee program")
		}
		return
	}
	c.JSON(http.StatusOK, program)
}

func (h *CoachHandler) coachAndTrainee(c *gin.Context) (coachID, traineeID primitive.ObjectID, ok bool) {
	coachID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return coachID, traineeID, false
	}

	traineeID, err = primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainee ID format")
		return coachID, traineeID, false
	}
	return coachID, traineeID, true
}

func (h *CoachHandler) abortRosterError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotYourTrainee):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrTraineeNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
