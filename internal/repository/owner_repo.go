package repository

import (
	"context"

	"cleanops/internal/domain"

	"gorm.io/gorm"
)

type OwnerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

func (r *OwnerRepository) Create(ctx context.Context, o domain.Owner) error {
	return r.db.WithContext(ctx).Create(&o).Error
}

func (r *OwnerRepository) GetByID(ctx context.Context, id string) (domain.Owner, error) {
	var o domain.Owner
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return domain.Owner{}, err
	}
	return o, nil
}

func (r *OwnerRepository) GetByEmail(ctx context.Context, email string) (domain.Owner, error) {
	var o domain.Owner
	if err := r.db.WithContext(ctx).First(&o, "email = ?", email).Error; err != nil {
		return domain.Owner{}, err
	}
	return o, nil
}

type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

func (r *WorkerRepository) Create(ctx context.Context, w domain.Worker) error {
	return r.db.WithContext(ctx).Create(&w).Error
}

func (r *WorkerRepository) GetByID(ctx context.Context, id string) (domain.Worker, error) {
	var w domain.Worker
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return domain.Worker{}, err
	}
	return w, nil
}

func (r *WorkerRepository) List(ctx context.Context) ([]domain.Worker, error) {
	var out []domain.Worker
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

// UpdateRating replaces the worker's running average after a new review.
func (r *WorkerRepository) UpdateRating(ctx context.Context, workerID string, rating float64, count int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Worker{}).
		Where("id = ?", workerID).
		Updates(map[string]any{
			"rating":       rating,
			"rating_count": count,
		}).Error
}
