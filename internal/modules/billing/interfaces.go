package billing

import (
	"context"

	"cleanops/internal/domain"
	"cleanops/internal/modules/notification"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv domain.Invoice) error
	GetByID(ctx context.Context, id string) (domain.Invoice, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error)
	SwapStatus(ctx context.Context, inv domain.Invoice, from domain.InvoiceStatus) error
	CreatePayment(ctx context.Context, p domain.Payment) error
	ListPayments(ctx context.Context, invoiceID string) ([]domain.Payment, error)
}

type Notifier interface {
	InvoiceIssued(ctx context.Context, ownerID string, p notification.InvoiceEventPayload)
	PaymentReceived(ctx context.Context, ownerID string, p notification.InvoiceEventPayload)
}
