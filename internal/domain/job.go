package domain

import "time"

type JobStatus string

const (
	JobDraft      JobStatus = "draft"
	JobOpen       JobStatus = "open"
	JobAssigned   JobStatus = "assigned"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case JobDraft, JobOpen, JobAssigned, JobInProgress, JobCompleted, JobCancelled:
		return st, nil
	}
	return "", &ValidationError{Entity: "job_post", Fields: map[string]string{"status": "unknown value " + s}}
}

type PayType string

const (
	PayHourly PayType = "hourly"
	PayFixed  PayType = "fixed"
)

type JobVisibility string

const (
	JobPublic     JobVisibility = "public"
	JobInviteOnly JobVisibility = "invite_only"
)

// JobPost is a posted cleaning task for one property. Pay amounts are
// integer yen; hourly jobs pay PayAmount per hour, fixed jobs pay it once.
type JobPost struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	PropertyID    string        `json:"property_id" gorm:"index" validate:"required"`
	Status        JobStatus     `json:"status" validate:"required,oneof=draft open assigned in_progress completed cancelled"`
	Visibility    JobVisibility `json:"visibility" validate:"required,oneof=public invite_only"`
	JobDate       time.Time     `json:"job_date" validate:"required"`
	StartTime     string        `json:"start_time" validate:"required"`
	ExpectedHours float64       `json:"expected_hours" validate:"gt=0"`
	PayType       PayType       `json:"pay_type" validate:"required,oneof=hourly fixed"`
	PayAmount     int64         `json:"pay_amount" validate:"required,gt=0"`
	TipAllowed    bool          `json:"tip_allowed"`
	Description   string        `json:"description,omitempty" gorm:"type:text"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

func (JobPost) TableName() string { return "job_posts" }

func (j JobPost) Validate() *ValidationError {
	return validateEntity("job_post", j, nil)
}

type ApplicationStatus string

const (
	ApplicationApplied   ApplicationStatus = "applied"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationAccepted  ApplicationStatus = "accepted"
)

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case ApplicationApplied, ApplicationWithdrawn, ApplicationRejected, ApplicationAccepted:
		return st, nil
	}
	return "", &ValidationError{Entity: "application", Fields: map[string]string{"status": "unknown value " + s}}
}

// Application is a worker's response to a public job post.
type Application struct {
	ID        string            `json:"id" gorm:"primaryKey"`
	JobID     string            `json:"job_id" gorm:"index" validate:"required"`
	WorkerID  string            `json:"worker_id" gorm:"index" validate:"required"`
	Status    ApplicationStatus `json:"status" validate:"required,oneof=applied withdrawn rejected accepted"`
	AppliedAt time.Time         `json:"applied_at"`
}

func (Application) TableName() string { return "applications" }

func (a Application) Validate() *ValidationError {
	return validateEntity("application", a, nil)
}
