package domain

import "time"

// Owner is the console's login principal: the property owner who posts
// cleaning jobs and pays invoices.
type Owner struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Name         string    `json:"name" validate:"required"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Owner) TableName() string { return "owners" }

// Worker is a cleaner on the marketplace. Workers are targets of offers,
// assignments, favorites and reviews; the worker-facing account flow lives
// in a separate app and is out of scope here.
type Worker struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" validate:"required"`
	Rating      float64   `json:"rating" validate:"gte=0,lte=5"`
	RatingCount int       `json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Worker) TableName() string { return "workers" }
