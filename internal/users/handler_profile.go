package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"internship-navigator/internal/shared/server/respond"
)

// ProfileHandler exposes onboarding, quiz submission and profile read/update.
type ProfileHandler struct {
	Svc      *Service
	validate *validator.Validate
}

func NewProfileHandler(svc *Service) *ProfileHandler {
	return &ProfileHandler{Svc: svc, validate: validator.New()}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/onboarding", h.onboarding)
	rg.POST("/quiz", h.quiz)
	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.updateProfile)
}

type onboardingRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Education    string `json:"education" validate:"required"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"required"`
	Skills       string `json:"skills"`
}

func (h *ProfileHandler) onboarding(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", validationDetails(err))
		return
	}

	err := h.Svc.CompleteOnboarding(c.Request.Context(), req.Email, req.Education, req.FieldOfStudy, req.Skills)
	if err != nil {
		writeProfileError(c, err, "failed to save profile")
		return
	}
	respond.OK(c, gin.H{"message": "Profile updated successfully!"})
}

type quizRequest struct {
	Email   string   `json:"email" validate:"required,email"`
	Answers []string `json:"answers" validate:"required,min=1"`
}

func (h *ProfileHandler) quiz(c *gin.Context) {
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", validationDetails(err))
		return
	}

	err := h.Svc.SubmitQuiz(c.Request.Context(), req.Email, req.Answers)
	if err != nil {
		if errors.Is(err, ErrIncompleteAnswers) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "every quiz question must be answered", nil)
			return
		}
		writeProfileError(c, err, "failed to save results")
		return
	}
	respond.OK(c, gin.H{"message": "Profile updated successfully!"})
}

func (h *ProfileHandler) getProfile(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "User email is required", nil)
		return
	}

	user, err := h.Svc.GetProfile(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}
	respond.OK(c, user)
}

type updateProfileRequest struct {
	Email  string  `json:"email" validate:"required,email"`
	Name   *string `json:"name"`
	Skills *string `json:"skills"`
}

func (h *ProfileHandler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "User email is missing", validationDetails(err))
		return
	}

	if err := h.Svc.UpdateProfile(c.Request.Context(), req.Email, req.Name, req.Skills); err != nil {
		writeProfileError(c, err, "failed to update profile")
		return
	}
	respond.OK(c, gin.H{"message": "Profile updated successfully"})
}

func writeProfileError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
