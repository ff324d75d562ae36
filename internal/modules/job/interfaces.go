package job

import (
	"context"

	"cleanops/internal/domain"
	"cleanops/internal/modules/notification"
)

type JobRepository interface {
	Create(ctx context.Context, j domain.JobPost) error
	GetByID(ctx context.Context, id string) (domain.JobPost, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.JobPost, error)
	SwapStatus(ctx context.Context, j domain.JobPost, from domain.JobStatus) error
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (domain.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, a domain.Application) error
	GetByID(ctx context.Context, id string) (domain.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
	RejectOthers(ctx context.Context, jobID, acceptedID string) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, a domain.Assignment) error
}

// Notifier pushes owner-facing events; implementations must never fail the
// calling operation.
type Notifier interface {
	JobApplicationReceived(ctx context.Context, ownerID string, p notification.JobApplicationPayload)
}
