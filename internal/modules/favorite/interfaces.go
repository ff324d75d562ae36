package favorite

import (
	"context"

	"cleanops/internal/domain"
)

type FavoriteRepository interface {
	Add(ctx context.Context, f domain.Favorite) error
	Remove(ctx context.Context, ownerID, workerID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Favorite, error)
	Exists(ctx context.Context, ownerID, workerID string) (bool, error)
}

type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (domain.Worker, error)
}
