package repository

import (
	"context"
	"time"

	"cleanops/internal/domain"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n domain.Notification) error {
	return r.db.WithContext(ctx).Create(&n).Error
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (domain.Notification, error) {
	var n domain.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}

func (r *NotificationRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&out).Error
	return out, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("owner_id = ? AND read_at IS NULL", ownerID).
		Count(&n).Error
	return n, err
}

// MarkRead stamps read_at once; re-marking keeps the original timestamp.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, ownerID string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND owner_id = ? AND read_at IS NULL", id, ownerID).
		Update("read_at", at)
	return res.Error
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, ownerID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("owner_id = ? AND read_at IS NULL", ownerID).
		Update("read_at", at).Error
}
