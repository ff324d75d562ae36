package notification

import (
	"errors"
	"net/http"

	"cleanops/internal/middleware"
	"cleanops/internal/pkg/response"
	"cleanops/internal/query"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	n := rg.Group("/notifications")
	{
		n.GET("", h.Feed)
		n.POST("/:id/read", h.MarkRead)
		n.POST("/read-all", h.MarkAllRead)
	}
}

func (h *Handler) Feed(c *gin.Context) {
	ownerID := middleware.OwnerID(c)
	f, s, p, err := query.ParseListParams(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "QUERY_ERROR", err.Error())
		return
	}

	res, unread, err := h.service.Feed(c.Request.Context(), ownerID, f, s, p)
	if err != nil {
		var qe *query.Error
		if errors.As(err, &qe) {
			response.Error(c, http.StatusBadRequest, "QUERY_ERROR", qe.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"items":        res.Items,
		"total_count":  res.TotalCount,
		"unread_count": unread,
	})
}

func (h *Handler) MarkRead(c *gin.Context) {
	// marking is idempotent: an already-read or unknown id is a no-op
	err := h.service.MarkRead(c.Request.Context(), c.Param("id"), middleware.OwnerID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notification read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), middleware.OwnerID(c)); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notifications read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}
