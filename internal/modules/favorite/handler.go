package favorite

import (
	"errors"
	"net/http"

	"cleanops/internal/middleware"
	"cleanops/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favs := rg.Group("/favorites")
	{
		favs.GET("", h.List)
		favs.POST("/:workerId", h.Add)
		favs.DELETE("/:workerId", h.Remove)
		favs.GET("/:workerId/check", h.Check)
	}
}

func (h *Handler) Add(c *gin.Context) {
	f, err := h.service.Add(c.Request.Context(), middleware.OwnerID(c), c.Param("workerId"))
	if err != nil {
		if errors.Is(err, ErrUnknownWorker) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Worker not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusCreated, f)
}

func (h *Handler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), middleware.OwnerID(c), c.Param("workerId")); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

func (h *Handler) List(c *gin.Context) {
	views, err := h.service.List(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, views)
}

func (h *Handler) Check(c *gin.Context) {
	ok, err := h.service.Check(c.Request.Context(), middleware.OwnerID(c), c.Param("workerId"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorite": ok})
}
