package domain

import "time"

// Review is the owner's rating of a completed assignment. Rating keeps
// full float precision internally; one-decimal rounding is a display
// concern.
type Review struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	OwnerID      string    `json:"owner_id" gorm:"index" validate:"required"`
	AssignmentID string    `json:"assignment_id" gorm:"uniqueIndex" validate:"required"`
	WorkerID     string    `json:"worker_id" gorm:"index" validate:"required"`
	Rating       float64   `json:"rating" validate:"gte=0,lte=5"`
	Comment      string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Review) TableName() string { return "reviews" }

func (r Review) Validate() *ValidationError {
	return validateEntity("review", r, nil)
}

// Favorite marks a worker the owner wants to find quickly when sending
// direct offers.
type Favorite struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	OwnerID   string    `json:"owner_id" gorm:"not null;index;uniqueIndex:idx_owner_worker" validate:"required"`
	WorkerID  string    `json:"worker_id" gorm:"not null;index;uniqueIndex:idx_owner_worker" validate:"required"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Favorite) TableName() string { return "favorites" }
