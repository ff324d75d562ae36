package repository

import (
	"context"
	"errors"

	"cleanops/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv domain.Invoice) error {
	return r.db.WithContext(ctx).Create(&inv).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	var inv domain.Invoice
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	var out []domain.Invoice
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&out).Error
	return out, err
}

func (r *InvoiceRepository) SwapStatus(ctx context.Context, inv domain.Invoice, from domain.InvoiceStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ? AND status = ?", inv.ID, string(from)).
		Updates(map[string]any{
			"status":     string(inv.Status),
			"due_date":   inv.DueDate,
			"issued_at":  inv.IssuedAt,
			"paid_at":    inv.PaidAt,
			"voided_at":  inv.VoidedAt,
			"updated_at": inv.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *InvoiceRepository) CreatePayment(ctx context.Context, p domain.Payment) error {
	err := r.db.WithContext(ctx).Create(&p).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *InvoiceRepository) ListPayments(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("paid_at").
		Find(&out).Error
	return out, err
}
