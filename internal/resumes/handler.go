package resumes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-navigator/internal/extract"
	"internship-navigator/internal/shared/server/middleware"
	"internship-navigator/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler accepts resume uploads and returns extracted identity and skills.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume", h.upload)
}

type uploadResponse struct {
	Message         string   `json:"message"`
	Name            string   `json:"name,omitempty"`
	ExtractedSkills []string `json:"extractedSkills"`
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No resume file found", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	fields, err := h.Svc.Analyze(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "validation_error", "only pdf and docx resumes are supported", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze resume", nil)
		}
		return
	}

	skills := fields.Skills
	if skills == nil {
		skills = []string{}
	}
	respond.OK(c, uploadResponse{
		Message:         "Resume analyzed successfully",
		Name:            fields.Name,
		ExtractedSkills: skills,
	})
}
