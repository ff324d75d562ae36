package repository

import (
	"context"

	"cleanops/internal/domain"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, a domain.Assignment) error {
	return r.db.WithContext(ctx).Create(&a).Error
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (domain.Assignment, error) {
	var a domain.Assignment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return domain.Assignment{}, err
	}
	return a, nil
}

func (r *AssignmentRepository) GetByJob(ctx context.Context, jobID string) (domain.Assignment, error) {
	var a domain.Assignment
	if err := r.db.WithContext(ctx).First(&a, "job_id = ?", jobID).Error; err != nil {
		return domain.Assignment{}, err
	}
	return a, nil
}

// ListByOwner scopes assignments to the owner through the job's property.
func (r *AssignmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Assignment, error) {
	var out []domain.Assignment
	err := r.db.WithContext(ctx).
		Joins("JOIN job_posts ON job_posts.id = assignments.job_id").
		Joins("JOIN properties ON properties.id = job_posts.property_id").
		Where("properties.owner_id = ?", ownerID).
		Find(&out).Error
	return out, err
}

// SwapStatus persists a transition with all its stamped fields, guarded by
// the previous status.
func (r *AssignmentRepository) SwapStatus(ctx context.Context, a domain.Assignment, from domain.AssignmentStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Assignment{}).
		Where("id = ? AND status = ?", a.ID, string(from)).
		Updates(map[string]any{
			"status":              string(a.Status),
			"progress":            a.Progress,
			"rework_count":        a.ReworkCount,
			"checked_in_at":       a.CheckedInAt,
			"started_at":          a.StartedAt,
			"submitted_at":        a.SubmittedAt,
			"approved_at":         a.ApprovedAt,
			"rework_requested_at": a.ReworkRequestedAt,
			"cancelled_at":        a.CancelledAt,
			"updated_at":          a.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *AssignmentRepository) UpdateProgress(ctx context.Context, id string, progress, photosSubmitted int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Assignment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"progress":         progress,
			"photos_submitted": photosSubmitted,
		}).Error
}

func (r *AssignmentRepository) AddPhoto(ctx context.Context, p domain.Photo) error {
	return r.db.WithContext(ctx).Create(&p).Error
}

func (r *AssignmentRepository) ListPhotos(ctx context.Context, assignmentID string) ([]domain.Photo, error) {
	var out []domain.Photo
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("taken_at").
		Find(&out).Error
	return out, err
}
