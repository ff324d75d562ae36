package assignment

import (
	"context"

	"cleanops/internal/domain"
	"cleanops/internal/modules/notification"
)

type AssignmentRepository interface {
	GetByID(ctx context.Context, id string) (domain.Assignment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Assignment, error)
	SwapStatus(ctx context.Context, a domain.Assignment, from domain.AssignmentStatus) error
	UpdateProgress(ctx context.Context, id string, progress, photosSubmitted int) error
	AddPhoto(ctx context.Context, p domain.Photo) error
	ListPhotos(ctx context.Context, assignmentID string) ([]domain.Photo, error)
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

type Notifier interface {
	WorkCheckedIn(ctx context.Context, ownerID string, p notification.WorkEventPayload)
	WorkStarted(ctx context.Context, ownerID string, p notification.WorkEventPayload)
	WorkSubmitted(ctx context.Context, ownerID string, p notification.WorkEventPayload)
}
