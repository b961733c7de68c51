package internships

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-navigator/internal/shared/server/respond"
)

type Handler struct {
	Repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/internships", h.list)
}

func (h *Handler) list(c *gin.Context) {
	postings, err := h.Repo.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load internships", nil)
		return
	}
	if postings == nil {
		postings = []Internship{}
	}
	respond.OK(c, postings)
}
