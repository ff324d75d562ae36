package domain

import "time"

type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentCheckedIn  AssignmentStatus = "checked_in"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentSubmitted  AssignmentStatus = "submitted"
	AssignmentApproved   AssignmentStatus = "approved"
	AssignmentRework     AssignmentStatus = "rework"
	AssignmentCancelled  AssignmentStatus = "cancelled"
)

func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	st := AssignmentStatus(s)
	switch st {
	case AssignmentAssigned, AssignmentCheckedIn, AssignmentInProgress,
		AssignmentSubmitted, AssignmentApproved, AssignmentRework, AssignmentCancelled:
		return st, nil
	}
	return "", &ValidationError{Entity: "assignment", Fields: map[string]string{"status": "unknown value " + s}}
}

// Assignment is a worker's accepted execution of a job, tracked through
// on-site progress states. Progress is a percentage and must not move
// backwards while the status advances forward.
type Assignment struct {
	ID                  string           `json:"id" gorm:"primaryKey"`
	JobID               string           `json:"job_id" gorm:"index" validate:"required"`
	WorkerID            string           `json:"worker_id" gorm:"index" validate:"required"`
	Status              AssignmentStatus `json:"status" validate:"required,oneof=assigned checked_in in_progress submitted approved rework cancelled"`
	Progress            int              `json:"progress" validate:"gte=0,lte=100"`
	PhotosSubmitted     int              `json:"photos_submitted" validate:"gte=0"`
	TotalPhotosRequired int              `json:"total_photos_required" validate:"gte=0"`
	ReworkCount         int              `json:"rework_count"`
	TipAmount           int64            `json:"tip_amount,omitempty"`
	CheckedInAt         *time.Time       `json:"checked_in_at,omitempty"`
	StartedAt           *time.Time       `json:"started_at,omitempty"`
	SubmittedAt         *time.Time       `json:"submitted_at,omitempty"`
	ApprovedAt          *time.Time       `json:"approved_at,omitempty"`
	ReworkRequestedAt   *time.Time       `json:"rework_requested_at,omitempty"`
	CancelledAt         *time.Time       `json:"cancelled_at,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func (Assignment) TableName() string { return "assignments" }

func (a Assignment) Validate() *ValidationError {
	extra := map[string]string{}
	if a.PhotosSubmitted > a.TotalPhotosRequired {
		extra["photos_submitted"] = "must not exceed total_photos_required"
	}
	return validateEntity("assignment", a, extra)
}

// Photo is an evidence shot attached to an assignment.
type Photo struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	AssignmentID string    `json:"assignment_id" gorm:"index" validate:"required"`
	Kind         string    `json:"kind" validate:"required,oneof=before after issue"`
	URL          string    `json:"url" validate:"required,url"`
	TakenAt      time.Time `json:"taken_at"`
}

func (Photo) TableName() string { return "photos" }

func (p Photo) Validate() *ValidationError {
	return validateEntity("photo", p, nil)
}
