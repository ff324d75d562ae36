package repository

import (
	"context"

	"cleanops/internal/domain"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a domain.Application) error {
	return r.db.WithContext(ctx).Create(&a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (domain.Application, error) {
	var a domain.Application
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return domain.Application{}, err
	}
	return a, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	var out []domain.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("applied_at").
		Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

// RejectOthers closes every still-open application on the job except the
// accepted one.
func (r *ApplicationRepository) RejectOthers(ctx context.Context, jobID, acceptedID string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("job_id = ? AND id <> ? AND status = ?", jobID, acceptedID, string(domain.ApplicationApplied)).
		Update("status", string(domain.ApplicationRejected)).Error
}
