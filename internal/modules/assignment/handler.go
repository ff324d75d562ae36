package assignment

import (
	"context"
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
	asg := rg.Group("/assignments")
	{
		asg.GET("", h.List)
		asg.GET("/:id", h.Get)
		asg.POST("/:id/check-in", h.CheckIn)
		asg.POST("/:id/start", h.Start)
		asg.POST("/:id/submit", h.Submit)
		asg.POST("/:id/approve", h.Approve)
		asg.POST("/:id/rework", h.RequestRework)
		asg.POST("/:id/cancel", h.Cancel)
		asg.POST("/:id/progress", h.UpdateProgress)
		asg.POST("/:id/photos", h.AddPhoto)
	}
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

func (h *Handler) CheckIn(c *gin.Context) { h.workerAction(c, h.service.CheckIn) }
func (h *Handler) Start(c *gin.Context)   { h.workerAction(c, h.service.Start) }
func (h *Handler) Submit(c *gin.Context)  { h.workerAction(c, h.service.Submit) }

func (h *Handler) Approve(c *gin.Context)       { h.ownerAction(c, h.service.Approve) }
func (h *Handler) RequestRework(c *gin.Context) { h.ownerAction(c, h.service.RequestRework) }
func (h *Handler) Cancel(c *gin.Context)        { h.ownerAction(c, h.service.Cancel) }

// workerAction binds the acting worker id and runs one of the worker-side
// lifecycle moves.
func (h *Handler) workerAction(c *gin.Context, do func(ctx context.Context, id, workerID string) (domain.Assignment, error)) {
	var req workerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := do(c.Request.Context(), c.Param("id"), req.WorkerID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) ownerAction(c *gin.Context, do func(ctx context.Context, ownerID, id string) (domain.Assignment, error)) {
	a, err := do(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) UpdateProgress(c *gin.Context) {
	var req struct {
		workerRequest
		ProgressRequest
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.UpdateProgress(c.Request.Context(), c.Param("id"), req.WorkerID, req.ProgressRequest)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) AddPhoto(c *gin.Context) {
	var req struct {
		workerRequest
		PhotoRequest
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.AddPhoto(c.Request.Context(), c.Param("id"), req.WorkerID, req.PhotoRequest)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
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
		response.Error(c, http.StatusConflict, "STATUS_CONFLICT", "The assignment changed concurrently, reload and retry")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Assignment not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your assignment")
	case errors.Is(err, ErrProgressBackwards):
		response.Error(c, http.StatusConflict, "PROGRESS_CONFLICT", "Progress cannot move backwards")
	case errors.Is(err, ErrPhotoLimit):
		response.Error(c, http.StatusConflict, "PHOTO_LIMIT", "All required photos are already submitted")
	case errors.Is(err, ErrNotOnSite):
		response.Error(c, http.StatusConflict, "NOT_ON_SITE", "Assignment is not in an on-site state")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
