package domain

import "time"

type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "draft"
	InvoiceIssued InvoiceStatus = "issued"
	InvoicePaid   InvoiceStatus = "paid"
	// InvoiceOverdue is never stored; it is derived from DueDate at read
	// time, see EffectiveStatus.
	InvoiceOverdue InvoiceStatus = "overdue"
	InvoiceVoid    InvoiceStatus = "void"
)

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	st := InvoiceStatus(s)
	switch st {
	case InvoiceDraft, InvoiceIssued, InvoicePaid, InvoiceOverdue, InvoiceVoid:
		return st, nil
	}
	return "", &ValidationError{Entity: "invoice", Fields: map[string]string{"status": "unknown value " + s}}
}

// Invoice is one billing period's aggregated charges to the owner.
// All amounts are integer yen.
type Invoice struct {
	ID          string        `json:"id" gorm:"primaryKey"`
	OwnerID     string        `json:"owner_id" gorm:"index" validate:"required"`
	PeriodFrom  time.Time     `json:"period_from" validate:"required"`
	PeriodTo    time.Time     `json:"period_to" validate:"required"`
	Subtotal    int64         `json:"subtotal" validate:"gte=0"`
	PlatformFee int64         `json:"platform_fee" validate:"gte=0"`
	Tax         int64         `json:"tax" validate:"gte=0"`
	Total       int64         `json:"total" validate:"gte=0"`
	Status      InvoiceStatus `json:"status" validate:"required,oneof=draft issued paid void"`
	DueDate     time.Time     `json:"due_date"`
	IssuedAt    *time.Time    `json:"issued_at,omitempty"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
	VoidedAt    *time.Time    `json:"voided_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

func (inv Invoice) Validate() *ValidationError {
	extra := map[string]string{}
	if inv.PeriodTo.Before(inv.PeriodFrom) {
		extra["period_to"] = "must not precede period_from"
	}
	if inv.Status == InvoicePaid && inv.PaidAt == nil {
		extra["paid_at"] = "required when status is paid"
	}
	if inv.Status != InvoicePaid && inv.PaidAt != nil {
		extra["paid_at"] = "must be unset unless status is paid"
	}
	return validateEntity("invoice", inv, extra)
}

// EffectiveStatus reports the invoice status as of now: an issued, unpaid
// invoice past its due date reads as overdue without any stored mutation.
func (inv Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if inv.Status == InvoiceIssued && inv.PaidAt == nil && now.After(inv.DueDate) {
		return InvoiceOverdue
	}
	return inv.Status
}

type PaymentProvider string

const (
	ProviderStripe       PaymentProvider = "stripe"
	ProviderPayJP        PaymentProvider = "payjp"
	ProviderBankTransfer PaymentProvider = "bank_transfer"
	ProviderOther        PaymentProvider = "other"
)

// Payment records money received against an invoice.
type Payment struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	InvoiceID   string          `json:"invoice_id" gorm:"index" validate:"required"`
	Provider    PaymentProvider `json:"provider" validate:"required,oneof=stripe payjp bank_transfer other"`
	AmountGross int64           `json:"amount_gross" validate:"gt=0"`
	Fee         int64           `json:"fee" validate:"gte=0"`
	AmountNet   int64           `json:"amount_net" validate:"gte=0"`
	PaidAt      time.Time       `json:"paid_at"`
}

func (Payment) TableName() string { return "payments" }

func (p Payment) Validate() *ValidationError {
	extra := map[string]string{}
	if p.AmountNet != p.AmountGross-p.Fee {
		extra["amount_net"] = "must equal amount_gross minus fee"
	}
	return validateEntity("payment", p, extra)
}
