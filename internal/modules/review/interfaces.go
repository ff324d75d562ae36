package review

import (
	"context"

	"cleanops/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv domain.Review) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Review, error)
	ListByWorker(ctx context.Context, workerID string) ([]domain.Review, error)
}

type AssignmentRepository interface {
	GetByID(ctx context.Context, id string) (domain.Assignment, error)
}

type JobRepository interface {
	GetByID(ctx context.Context, id string) (domain.JobPost, error)
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (domain.Property, error)
}

type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (domain.Worker, error)
	UpdateRating(ctx context.Context, workerID string, rating float64, count int) error
}
