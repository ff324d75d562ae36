package offer

import (
	"context"

	"cleanops/internal/domain"
	"cleanops/internal/modules/notification"
)

type OfferRepository interface {
	Create(ctx context.Context, o domain.Offer) error
	GetByID(ctx context.Context, id string) (domain.Offer, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Offer, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.Offer, error)
	SwapStatus(ctx context.Context, o domain.Offer, from domain.OfferStatus) error
}

type JobRepository interface {
	GetByID(ctx context.Context, id string) (domain.JobPost, error)
	SwapStatus(ctx context.Context, j domain.JobPost, from domain.JobStatus) error
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (domain.Property, error)
}

type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (domain.Worker, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, a domain.Assignment) error
}

type Notifier interface {
	OfferAnswered(ctx context.Context, ownerID string, accepted bool, p notification.OfferAnswerPayload)
}
