package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	DisplayName string      `json:"displayName" binding:"required"`
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required,min=8"`
	Role        domain.Role `json:"role" binding:"required,oneof=user coach"`
}

// UserResponse excludes sensitive fields and renders ObjectIDs as hex.
type UserResponse struct {
	ID                 string      `json:"id"`
	DisplayName        string      `json:"displayName"`
	Email              string      `json:"email"`
	Role               domain.Role `json:"role"`
	Gym                *int        `json:"gym"`
	OnboardingComplete bool        `json:"onBoardingComplete"`
	CreatedAt          time.Time   `json:"createdAt"`
	Trainees           []string    `json:"trainees,omitempty"`
	CurrentProgramID   *string     `json:"currentProgramId,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register creates a new member or coach account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.DisplayName, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login authenticates a user and returns a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// MapUserToResponse converts a domain User to its API shape.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}

	resp := UserResponse{
		ID:                 user.ID.Hex(),
		DisplayName:        user.DisplayName,
		Email:              user.Email,
		Role:               user.Role,
		Gym:                user.Gym,
		OnboardingComplete: user.OnboardingComplete,
		CreatedAt:          user.CreatedAt,
	}

	if len(user.Trainees) > 0 {
		resp.Trainees = make([]string, len(user.Trainees))
		for i, id := range user.Trainees {
			resp.Trainees[i] = id.Hex()
		}
	}
	if user.CurrentProgramID != nil {
		hex := user.CurrentProgramID.Hex()
		resp.CurrentProgramID = &hex
	}
	return resp
}
