package repository

import (
	"context"

	"cleanops/internal/domain"

	"gorm.io/gorm"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(ctx context.Context, o domain.Offer) error {
	return r.db.WithContext(ctx).Create(&o).Error
}

func (r *OfferRepository) GetByID(ctx context.Context, id string) (domain.Offer, error) {
	var o domain.Offer
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return domain.Offer{}, err
	}
	return o, nil
}

func (r *OfferRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Offer, error) {
	var out []domain.Offer
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&out).Error
	return out, err
}

func (r *OfferRepository) ListByJob(ctx context.Context, jobID string) ([]domain.Offer, error) {
	var out []domain.Offer
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Find(&out).Error
	return out, err
}

// SwapStatus answers the offer with a compare-and-swap on the stored
// status (always "sent"; answered offers never change again).
func (r *OfferRepository) SwapStatus(ctx context.Context, o domain.Offer, from domain.OfferStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Offer{}).
		Where("id = ? AND status = ?", o.ID, string(from)).
		Updates(map[string]any{
			"status":       string(o.Status),
			"responded_at": o.RespondedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}
