package api

import (
	"errors"
	"fmt"
	"net/http"

	"gymmate/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

// ProgramHandler serves workout program generation and history.
type ProgramHandler struct {
	programService service.ProgramService
}

func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

type GenerateProgramRequest struct {
	Gender      string `json:"gender"`
	Experience  string `json:"experience"`
	Goal        string `json:"goal"`
	WorkoutDays int    `json:"workoutDays" binding:"required,min=1,max=7"`
}

// Generate builds a new program for the user and makes it current.
func (h *ProgramHandler) Generate(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req GenerateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program, err := h.programService.Generate(c.Request.Context(), userID, service.GenerateInput{
		Gender:      req.Gender,
		Experience:  req.Experience,
		Goal:        req.Goal,
		WorkoutDays: req.WorkoutDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDays):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmptyProgram):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate program")
		}
		return
	}
	c.JSON(http.StatusCreated, program)
}

// History returns all programs ever generated for the user, newest first.
func (h *ProgramHandler) History(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	programs, err := h.programService.History(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load programs")
		return
	}
	c.JSON(http.StatusOK, programs)
}

// Current returns the user's active program, or null before any was generated.
func (h *ProgramHandler) Current(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	program, err := h.programService.Current(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			c.JSON(http.StatusOK, gin.H{"program": nil})
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load current program")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"program": program})
}
