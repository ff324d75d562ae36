package review

import (
	"context"
	"errors"
	"time"

	"cleanops/internal/domain"
	"cleanops/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	AssignmentID string  `json:"assignment_id" binding:"required"`
	Rating       float64 `json:"rating" binding:"gte=0,lte=5"`
	Comment      string  `json:"comment"`
}

type Service struct {
	reviews     ReviewRepository
	assignments AssignmentRepository
	jobs        JobRepository
	properties  PropertyRepository
	workers     WorkerRepository
	now         func() time.Time
}

func NewService(
	reviews ReviewRepository,
	assignments AssignmentRepository,
	jobs JobRepository,
	properties PropertyRepository,
	workers WorkerRepository,
) *Service {
	return &Service{
		reviews:     reviews,
		assignments: assignments,
		jobs:        jobs,
		properties:  properties,
		workers:     workers,
		now:         time.Now,
	}
}

// Create rates an approved assignment, once, and folds the rating into the
// worker's running average. The average keeps full float precision; any
// rounding is the caller's display concern.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateReviewRequest) (domain.Review, error) {
	a, err := s.ownedAssignment(ctx, ownerID, req.AssignmentID)
	if err != nil {
		return domain.Review{}, err
	}
	if a.Status != domain.AssignmentApproved {
		return domain.Review{}, ErrNotApproved
	}

	rv := domain.Review{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		AssignmentID: req.AssignmentID,
		WorkerID:     a.WorkerID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		CreatedAt:    s.now(),
	}
	if verr := rv.Validate(); verr != nil {
		return domain.Review{}, verr
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Review{}, ErrAlreadyReviewed
		}
		return domain.Review{}, err
	}

	if w, werr := s.workers.GetByID(ctx, a.WorkerID); werr == nil {
		newCount := w.RatingCount + 1
		newAverage := (w.Rating*float64(w.RatingCount) + req.Rating) / float64(newCount)
		if uerr := s.workers.UpdateRating(ctx, a.WorkerID, newAverage, newCount); uerr != nil {
			return domain.Review{}, uerr
		}
	}
	return rv, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]domain.Review, error) {
	return s.reviews.ListByOwner(ctx, ownerID)
}

func (s *Service) ListByWorker(ctx context.Context, workerID string) ([]domain.Review, error) {
	return s.reviews.ListByWorker(ctx, workerID)
}

func (s *Service) ownedAssignment(ctx context.Context, ownerID, id string) (domain.Assignment, error) {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Assignment{}, ErrNotFound
		}
		return domain.Assignment{}, err
	}
	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return domain.Assignment{}, err
	}
	prop, err := s.properties.GetByID(ctx, j.PropertyID)
	if err != nil {
		return domain.Assignment{}, err
	}
	if prop.OwnerID != ownerID {
		return domain.Assignment{}, ErrForbidden
	}
	return a, nil
}
