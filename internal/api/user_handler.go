package api

import (
	"errors"
	"fmt"
	"net/http"

	"gymmate/fitness-server/internal/repository"
	"gymmate/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile, onboarding, and profile-photo endpoints.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type SubmitProfileRequest struct {
	Weight       float64  `json:"weight" binding:"required,gt=0"`
	Height       float64  `json:"height" binding:"required,gt=0"`
	Sex          string   `json:"sex" binding:"required"`
	DateOfBirth  string   `json:"dateOfBirth" binding:"required"`
	FitnessGoals []string `json:"fitnessGoals" binding:"required,min=1"`
	Difficulty   string   `json:"difficulty" binding:"required"`
}

type SelectGymRequest struct {
	GymID int `json:"gymId" binding:"required"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType"`
}

type PhotoConfirmRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// Me returns the authenticated user's account.
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load account")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// SubmitProfile handles the onboarding form.
func (h *UserHandler) SubmitProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SubmitProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.userService.SubmitProfile(c.Request.Context(), userID, service.ProfileInput{
		Weight:       req.Weight,
		Height:       req.Height,
		Sex:          req.Sex,
		DateOfBirth:  req.DateOfBirth,
		FitnessGoals: req.FitnessGoals,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProfile):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// SelectGym registers the user's gym membership.
func (h *UserHandler) SelectGym(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SelectGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.userService.SelectGym(c.Request.Context(), userID, req.GymID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGymNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to select gym")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// RequestPhotoUpload returns a presigned PUT URL for a new profile photo.
func (h *UserHandler) RequestPhotoUpload(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.userService.RequestPhotoUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to prepare upload")
		return
	}
	c.JSON(http.StatusOK, upload)
}

// ConfirmPhotoUpload records the uploaded object as the profile photo.
func (h *UserHandler) ConfirmPhotoUpload(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req PhotoConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.userService.ConfirmPhotoUpload(c.Request.Context(), userID, req.ObjectKey); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm upload")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// PhotoURL returns a presigned GET URL for the user's profile photo.
func (h *UserHandler) PhotoURL(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	url, err := h.userService.PhotoDownloadURL(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "No profile photo uploaded")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve photo URL")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
