package job

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
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.List)
		jobs.POST("", h.Create)
		jobs.GET("/:id", h.Get)
		jobs.POST("/:id/status", h.ChangeStatus)
		jobs.POST("/:id/applications", h.Apply)
		jobs.POST("/applications/:appId/accept", h.AcceptApplication)
		jobs.POST("/applications/:appId/reject", h.RejectApplication)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.Create(c.Request.Context(), middleware.OwnerID(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, j)
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
	detail, err := h.service.Get(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.ChangeStatus(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), req.Status)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, j)
}

func (h *Handler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.Apply(c.Request.Context(), c.Param("id"), req.WorkerID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) AcceptApplication(c *gin.Context) {
	a, err := h.service.AcceptApplication(c.Request.Context(), middleware.OwnerID(c), c.Param("appId"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) RejectApplication(c *gin.Context) {
	if err := h.service.RejectApplication(c.Request.Context(), middleware.OwnerID(c), c.Param("appId")); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rejected": true})
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
		response.Error(c, http.StatusConflict, "STATUS_CONFLICT", "The job changed concurrently, reload and retry")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Job not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your job")
	case errors.Is(err, ErrNotOpen):
		response.Error(c, http.StatusConflict, "JOB_NOT_OPEN", "Job is not accepting applications")
	case errors.Is(err, ErrAlreadyTaken):
		response.Error(c, http.StatusConflict, "APPLICATION_CLOSED", "Application was already answered")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
