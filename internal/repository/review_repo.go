package repository

import (
	"context"
	"errors"

	"cleanops/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review; the unique index on assignment_id keeps one
// review per assignment.
func (r *ReviewRepository) Create(ctx context.Context, rv domain.Review) error {
	err := r.db.WithContext(ctx).Create(&rv).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *ReviewRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *ReviewRepository) ListByWorker(ctx context.Context, workerID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Find(&out).Error
	return out, err
}
