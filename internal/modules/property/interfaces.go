package property

import (
	"context"

	"cleanops/internal/domain"
)

type PropertyRepository interface {
	Create(ctx context.Context, p domain.Property) error
	Update(ctx context.Context, p domain.Property) error
	GetByID(ctx context.Context, id string) (domain.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error)
	Delete(ctx context.Context, id, ownerID string) error
}
