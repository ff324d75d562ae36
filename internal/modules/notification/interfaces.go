package notification

import (
	"context"
	"time"

	"cleanops/internal/domain"
)

// NotificationRepository is the storage the service needs.
type NotificationRepository interface {
	Create(ctx context.Context, n domain.Notification) error
	GetByID(ctx context.Context, id string) (domain.Notification, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Notification, error)
	CountUnread(ctx context.Context, ownerID string) (int64, error)
	MarkRead(ctx context.Context, id, ownerID string, at time.Time) error
	MarkAllRead(ctx context.Context, ownerID string, at time.Time) error
}
