package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"internship-navigator/internal/shared/server/respond"
)

// AuthHandler exposes signup and login.
type AuthHandler struct {
	Svc      *Service
	validate *validator.Validate
}

func NewAuthHandler(svc *Service) *AuthHandler {
	return &AuthHandler{Svc: svc, validate: validator.New()}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/login", h.login)
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", validationDetails(err))
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			respond.Error(c, http.StatusConflict, "conflict", "User with this email already exists", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required fields", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"message": "User created successfully", "id": user.ID})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message         string `json:"message"`
	Token           string `json:"token"`
	Name            string `json:"name"`
	ProfileComplete bool   `json:"profileComplete"`
	QuizTaken       bool   `json:"quizTaken"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing email or password", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing email or password", validationDetails(err))
		return
	}

	user, token, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid credentials", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to authenticate", nil)
		return
	}

	respond.OK(c, loginResponse{
		Message:         "Login successful",
		Token:           token,
		Name:            user.Name,
		ProfileComplete: user.ProfileComplete,
		QuizTaken:       user.QuizTaken,
	})
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return gin.H{"fields": fields}
}
