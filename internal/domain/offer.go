package domain

import "time"

type OfferStatus string

const (
	OfferSent     OfferStatus = "sent"
	OfferAccepted OfferStatus = "accepted"
	OfferDeclined OfferStatus = "declined"
	// OfferExpired is never stored; it is derived from ExpiresAt at read
	// time, see EffectiveStatus.
	OfferExpired OfferStatus = "expired"
)

func ParseOfferStatus(s string) (OfferStatus, error) {
	st := OfferStatus(s)
	switch st {
	case OfferSent, OfferAccepted, OfferDeclined, OfferExpired:
		return st, nil
	}
	return "", &ValidationError{Entity: "offer", Fields: map[string]string{"status": "unknown value " + s}}
}

// Offer is a direct, time-limited invitation to one worker for one job.
type Offer struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	JobID       string      `json:"job_id" gorm:"index" validate:"required"`
	OwnerID     string      `json:"owner_id" gorm:"index" validate:"required"`
	WorkerID    string      `json:"worker_id" gorm:"index" validate:"required"`
	Status      OfferStatus `json:"status" validate:"required,oneof=sent accepted declined"`
	SentAt      time.Time   `json:"sent_at" validate:"required"`
	ExpiresAt   time.Time   `json:"expires_at" validate:"required"`
	RespondedAt *time.Time  `json:"responded_at,omitempty"`
}

func (Offer) TableName() string { return "offers" }

func (o Offer) Validate() *ValidationError {
	extra := map[string]string{}
	if !o.ExpiresAt.After(o.SentAt) {
		extra["expires_at"] = "must be after sent_at"
	}
	return validateEntity("offer", o, extra)
}

// EffectiveStatus reports the offer status as of now. A stored "sent" offer
// whose deadline has passed reads as expired; the row itself is never
// rewritten, so two reads on either side of the boundary always agree with
// the clock.
func (o Offer) EffectiveStatus(now time.Time) OfferStatus {
	if o.Status == OfferSent && !now.Before(o.ExpiresAt) {
		return OfferExpired
	}
	return o.Status
}
