package offer

import (
	"errors"
	"net/http"

	"cleanops/internal/domain"
	"cleanops/internal/middleware"
	"cleanops/internal/pkg/response"
	"cleanops/internal/query"
	"cleanops/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	offers := rg.Group("/offers")
	{
		offers.GET("", h.List)
		offers.POST("", h.Send)
		offers.GET("/:id", h.Get)
		offers.POST("/:id/accept", h.Accept)
		offers.POST("/:id/decline", h.Decline)
	}
}

func (h *Handler) Send(c *gin.Context) {
	var req SendOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.Send(c.Request.Context(), middleware.OwnerID(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, o)
}

func (h *Handler) List(c *gin.Context) {
	f, s, p, err := query.ParseListParams(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "QUERY_ERROR", err.Error())
		return
	}

	res, err := h.service.List(c.Request.Context(), middleware.OwnerID(c), f, s, p)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	v, err := h.service.Get(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v)
}

type answerRequest struct {
	WorkerID string `json:"worker_id" binding:"required"`
}

func (h *Handler) Accept(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.Accept(c.Request.Context(), c.Param("id"), req.WorkerID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Decline(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.Decline(c.Request.Context(), c.Param("id"), req.WorkerID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	var terr *domain.TransitionError
	var qerr *query.Error

	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Record failed validation", verr.Fields)
	case errors.As(err, &terr):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", terr.Error())
	case errors.As(err, &qerr):
		response.Error(c, http.StatusBadRequest, "QUERY_ERROR", qerr.Error())
	case errors.Is(err, repository.ErrStaleStatus):
		response.Error(c, http.StatusConflict, "STATUS_CONFLICT", "The offer changed concurrently, reload and retry")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your offer")
	case errors.Is(err, ErrJobNotOpen):
		response.Error(c, http.StatusConflict, "JOB_NOT_OPEN", "Job is not open for offers")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
