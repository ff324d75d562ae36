package repository

import (
	"context"

	"cleanops/internal/domain"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Create(ctx context.Context, p domain.Property) error {
	return r.db.WithContext(ctx).Create(&p).Error
}

func (r *PropertyRepository) Update(ctx context.Context, p domain.Property) error {
	return r.db.WithContext(ctx).Save(&p).Error
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (domain.Property, error) {
	var p domain.Property
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	var out []domain.Property
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&out).Error
	return out, err
}

// Delete removes a property. Properties are the one entity the console may
// physically delete; stateful entities only ever transition.
func (r *PropertyRepository) Delete(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Property{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
