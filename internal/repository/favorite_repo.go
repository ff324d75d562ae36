package repository

import (
	"context"
	"errors"

	"cleanops/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(ctx context.Context, f domain.Favorite) error {
	err := r.db.WithContext(ctx).Create(&f).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *FavoriteRepository) Remove(ctx context.Context, ownerID, workerID string) error {
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND worker_id = ?", ownerID, workerID).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FavoriteRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Favorite, error) {
	var out []domain.Favorite
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *FavoriteRepository) Exists(ctx context.Context, ownerID, workerID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("owner_id = ? AND worker_id = ?", ownerID, workerID).
		Count(&n).Error
	return n > 0, err
}
