package domain

import (
	"encoding/json"
	"time"
)

// NotificationType discriminates the originating domain event. The payload
// schema for each type lives with the resolver in the notification module;
// unknown types are tolerated there, never here at the storage boundary.
type NotificationType string

const (
	NotifJobApplication  NotificationType = "job_application"
	NotifOfferAccepted   NotificationType = "offer_accepted"
	NotifOfferDeclined   NotificationType = "offer_declined"
	NotifOfferExpired    NotificationType = "offer_expired"
	NotifWorkCheckedIn   NotificationType = "work_checked_in"
	NotifWorkStarted     NotificationType = "work_started"
	NotifWorkSubmitted   NotificationType = "work_submitted"
	NotifWorkApproved    NotificationType = "work_approved"
	NotifReworkRequested NotificationType = "rework_requested"
	NotifJobCancelled    NotificationType = "job_cancelled"
	NotifInvoiceIssued   NotificationType = "invoice_issued"
	NotifInvoiceOverdue  NotificationType = "invoice_overdue"
	NotifPaymentReceived NotificationType = "payment_received"
	NotifNewReview       NotificationType = "new_review"
	NotifNewMessage      NotificationType = "new_message"
)

// Notification is an event record surfaced to the owner. Read state is
// derived from ReadAt, not stored as a flag.
type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey"`
	OwnerID   string           `json:"owner_id" gorm:"index:idx_notifications_owner_created" validate:"required"`
	Type      NotificationType `json:"type" validate:"required"`
	Title     string           `json:"title" validate:"required"`
	Payload   json.RawMessage  `json:"payload,omitempty" gorm:"type:jsonb"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at" gorm:"index:idx_notifications_owner_created"`
}

func (Notification) TableName() string { return "notifications" }

func (n Notification) Validate() *ValidationError {
	return validateEntity("notification", n, nil)
}

func (n Notification) Read() bool { return n.ReadAt != nil }

// MarkRead stamps ReadAt once; marking an already-read notification keeps
// the original timestamp.
func (n Notification) MarkRead(now time.Time) Notification {
	if n.ReadAt == nil {
		n.ReadAt = &now
	}
	return n
}
