package offer

import "cleanops/internal/domain"

type SendOfferRequest struct {
	JobID     string `json:"job_id" binding:"required"`
	WorkerID  string `json:"worker_id" binding:"required"`
	ExpiresAt string `json:"expires_at" binding:"required"` // RFC3339
}

// View is a list row: the stored offer, the status as of the request
// clock, and the worker's display name.
type View struct {
	domain.Offer
	EffectiveStatus domain.OfferStatus `json:"effective_status"`
	WorkerName      string             `json:"worker_name"`
}
