package domain

import "time"

// Property is a short-term-rental unit the owner manages. It has no
// lifecycle of its own; jobs reference it by id.
type Property struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	OwnerID    string    `json:"owner_id" gorm:"index" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	Address    string    `json:"address" validate:"required"`
	AccessNote string    `json:"access_note,omitempty" gorm:"type:text"`
	DoorCode   string    `json:"door_code,omitempty"`
	Lat        *float64  `json:"lat,omitempty"`
	Lng        *float64  `json:"lng,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Property) TableName() string { return "properties" }

func (p Property) Validate() *ValidationError {
	return validateEntity("property", p, nil)
}
