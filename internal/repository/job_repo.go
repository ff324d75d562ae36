package repository

import (
	"context"
	"time"

	"cleanops/internal/domain"

	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

type jobRow struct {
	ID            string     `gorm:"column:id;primaryKey"`
	PropertyID    string     `gorm:"column:property_id"`
	Status        string     `gorm:"column:status"`
	Visibility    string     `gorm:"column:visibility"`
	JobDate       time.Time  `gorm:"column:job_date"`
	StartTime     string     `gorm:"column:start_time"`
	ExpectedHours float64    `gorm:"column:expected_hours"`
	PayType       string     `gorm:"column:pay_type"`
	PayAmount     int64      `gorm:"column:pay_amount"`
	TipAllowed    bool       `gorm:"column:tip_allowed"`
	Description   *string    `gorm:"column:description"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
	CancelledAt   *time.Time `gorm:"column:cancelled_at"`
	CompletedAt   *time.Time `gorm:"column:completed_at"`
}

func (jobRow) TableName() string { return "job_posts" }

func toDomainJob(r jobRow) domain.JobPost {
	var desc string
	if r.Description != nil {
		desc = *r.Description
	}
	return domain.JobPost{
		ID:            r.ID,
		PropertyID:    r.PropertyID,
		Status:        domain.JobStatus(r.Status),
		Visibility:    domain.JobVisibility(r.Visibility),
		JobDate:       r.JobDate,
		StartTime:     r.StartTime,
		ExpectedHours: r.ExpectedHours,
		PayType:       domain.PayType(r.PayType),
		PayAmount:     r.PayAmount,
		TipAllowed:    r.TipAllowed,
		Description:   desc,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		CancelledAt:   r.CancelledAt,
		CompletedAt:   r.CompletedAt,
	}
}

func toJobRow(j domain.JobPost) jobRow {
	var desc *string
	if j.Description != "" {
		v := j.Description
		desc = &v
	}
	return jobRow{
		ID:            j.ID,
		PropertyID:    j.PropertyID,
		Status:        string(j.Status),
		Visibility:    string(j.Visibility),
		JobDate:       j.JobDate,
		StartTime:     j.StartTime,
		ExpectedHours: j.ExpectedHours,
		PayType:       string(j.PayType),
		PayAmount:     j.PayAmount,
		TipAllowed:    j.TipAllowed,
		Description:   desc,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
		CancelledAt:   j.CancelledAt,
		CompletedAt:   j.CompletedAt,
	}
}

func (r *JobRepository) Create(ctx context.Context, j domain.JobPost) error {
	row := toJobRow(j)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *JobRepository) Update(ctx context.Context, j domain.JobPost) error {
	row := toJobRow(j)
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (domain.JobPost, error) {
	var row jobRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return domain.JobPost{}, err
	}
	return toDomainJob(row), nil
}

// ListByOwner returns every job posted against the owner's properties.
func (r *JobRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.JobPost, error) {
	var rows []jobRow
	err := r.db.WithContext(ctx).
		Joins("JOIN properties ON properties.id = job_posts.property_id").
		Where("properties.owner_id = ?", ownerID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	jobs := make([]domain.JobPost, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, toDomainJob(row))
	}
	return jobs, nil
}

// SwapStatus persists a transition with a compare-and-swap: the row is only
// written while its stored status still equals from. Zero rows affected
// means a concurrent transition won and the caller gets ErrStaleStatus.
func (r *JobRepository) SwapStatus(ctx context.Context, j domain.JobPost, from domain.JobStatus) error {
	res := r.db.WithContext(ctx).
		Model(&jobRow{}).
		Where("id = ? AND status = ?", j.ID, string(from)).
		Updates(map[string]any{
			"status":       string(j.Status),
			"updated_at":   j.UpdatedAt,
			"cancelled_at": j.CancelledAt,
			"completed_at": j.CompletedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}
