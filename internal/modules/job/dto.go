package job

import (
	"time"

	"cleanops/internal/domain"
)

type CreateJobRequest struct {
	PropertyID    string  `json:"property_id" binding:"required"`
	Visibility    string  `json:"visibility" binding:"required,oneof=public invite_only"`
	JobDate       string  `json:"job_date" binding:"required"` // 2006-01-02
	StartTime     string  `json:"start_time" binding:"required"`
	ExpectedHours float64 `json:"expected_hours" binding:"required,gt=0"`
	PayType       string  `json:"pay_type" binding:"required,oneof=hourly fixed"`
	PayAmount     int64   `json:"pay_amount" binding:"required,gt=0"`
	TipAllowed    bool    `json:"tip_allowed"`
	Description   string  `json:"description"`
	Publish       bool    `json:"publish"` // false keeps the job in draft
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ApplyRequest struct {
	WorkerID string `json:"worker_id" binding:"required"`
}

// View is a list row: the job plus the property name the console shows
// and searches on.
type View struct {
	domain.JobPost
	PropertyName string `json:"property_name"`
}

type Detail struct {
	domain.JobPost
	Property     domain.Property      `json:"property"`
	Applications []domain.Application `json:"applications"`
}

func parseJobDate(raw string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
