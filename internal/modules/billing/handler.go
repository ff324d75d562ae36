package billing

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
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.List)
		invoices.POST("", h.Create)
		invoices.GET("/:id", h.Get)
		invoices.POST("/:id/issue", h.Issue)
		invoices.POST("/:id/void", h.Void)
		invoices.POST("/:id/payments", h.RecordPayment)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	inv, err := h.service.Create(c.Request.Context(), middleware.OwnerID(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, inv)
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

func (h *Handler) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	inv, err := h.service.Issue(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

func (h *Handler) Void(c *gin.Context) {
	inv, err := h.service.Void(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	inv, err := h.service.RecordPayment(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
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
		response.Error(c, http.StatusConflict, "STATUS_CONFLICT", "The invoice changed concurrently, reload and retry")
	case errors.Is(err, repository.ErrDuplicate):
		response.Error(c, http.StatusConflict, "DUPLICATE_PAYMENT", "Payment already recorded")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Invoice not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your invoice")
	case errors.Is(err, ErrNotPayable):
		response.Error(c, http.StatusConflict, "NOT_PAYABLE", "Invoice is not open for payment")
	case errors.Is(err, ErrWrongAmount):
		response.Error(c, http.StatusConflict, "AMOUNT_MISMATCH", "Payment amount must match the invoice total")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
