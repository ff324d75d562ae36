package billing

import "cleanops/internal/domain"

type CreateInvoiceRequest struct {
	PeriodFrom  string `json:"period_from" binding:"required"` // 2006-01-02
	PeriodTo    string `json:"period_to" binding:"required"`
	Subtotal    int64  `json:"subtotal" binding:"gte=0"`
	PlatformFee int64  `json:"platform_fee" binding:"gte=0"`
	Tax         int64  `json:"tax" binding:"gte=0"`
}

type IssueRequest struct {
	DueDate string `json:"due_date" binding:"required"` // 2006-01-02
}

type PaymentRequest struct {
	Provider    string `json:"provider" binding:"required,oneof=stripe payjp bank_transfer other"`
	AmountGross int64  `json:"amount_gross" binding:"required,gt=0"`
	Fee         int64  `json:"fee" binding:"gte=0"`
	PaidAt      string `json:"paid_at" binding:"required"` // RFC3339
}

// View is a list row carrying the status as of the request clock.
type View struct {
	domain.Invoice
	EffectiveStatus domain.InvoiceStatus `json:"effective_status"`
}

type Detail struct {
	domain.Invoice
	EffectiveStatus domain.InvoiceStatus `json:"effective_status"`
	Payments        []domain.Payment     `json:"payments"`
}
