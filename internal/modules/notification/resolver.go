package notification

import (
	"encoding/json"
	"fmt"

	"cleanops/internal/domain"
)

// Resolved is what the feed renders for one notification.
type Resolved struct {
	Icon     string `json:"icon"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Payload schemas, one per notification type. Every field is optional on
// the wire; templates below substitute a fixed fallback for anything
// missing so rendering is total.

type JobApplicationPayload struct {
	JobID        string `json:"job_id,omitempty"`
	PropertyName string `json:"property_name,omitempty"`
	WorkerName   string `json:"worker_name,omitempty"`
}

type OfferAnswerPayload struct {
	OfferID    string `json:"offer_id,omitempty"`
	JobID      string `json:"job_id,omitempty"`
	WorkerName string `json:"worker_name,omitempty"`
}

type WorkEventPayload struct {
	AssignmentID string `json:"assignment_id,omitempty"`
	JobID        string `json:"job_id,omitempty"`
	PropertyName string `json:"property_name,omitempty"`
	WorkerName   string `json:"worker_name,omitempty"`
}

type InvoiceEventPayload struct {
	InvoiceID string `json:"invoice_id,omitempty"`
	Total     int64  `json:"total,omitempty"`
}

type ReviewEventPayload struct {
	WorkerName string  `json:"worker_name,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
}

type MessageEventPayload struct {
	SenderName string `json:"sender_name,omitempty"`
	Preview    string `json:"preview,omitempty"`
}

const (
	fallbackWorker   = "a worker"
	fallbackProperty = "your property"
)

// Resolve maps a notification to its icon, category and rendered message.
// Unknown types fall back to a generic bell with the raw title; the feed
// is advisory and must never fail to render.
func Resolve(n domain.Notification) Resolved {
	switch n.Type {
	case domain.NotifJobApplication:
		var p JobApplicationPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "user-plus",
			Category: "jobs",
			Message:  fmt.Sprintf("%s applied to the cleaning job at %s", orWorker(p.WorkerName), orProperty(p.PropertyName)),
		}

	case domain.NotifOfferAccepted:
		var p OfferAnswerPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "handshake",
			Category: "offers",
			Message:  fmt.Sprintf("%s accepted your offer", orWorker(p.WorkerName)),
		}

	case domain.NotifOfferDeclined:
		var p OfferAnswerPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "x-circle",
			Category: "offers",
			Message:  fmt.Sprintf("%s declined your offer", orWorker(p.WorkerName)),
		}

	case domain.NotifOfferExpired:
		var p OfferAnswerPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "clock",
			Category: "offers",
			Message:  fmt.Sprintf("Your offer to %s expired without an answer", orWorker(p.WorkerName)),
		}

	case domain.NotifWorkCheckedIn:
		var p WorkEventPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "map-pin",
			Category: "progress",
			Message:  fmt.Sprintf("%s checked in at %s", orWorker(p.WorkerName), orProperty(p.PropertyName)),
		}

	case domain.NotifWorkStarted:
		var p WorkEventPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "play",
			Category: "progress",
			Message:  fmt.Sprintf("Cleaning started at %s", orProperty(p.PropertyName)),
		}

	case domain.NotifWorkSubmitted:
		var p WorkEventPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "camera",
			Category: "progress",
			Message:  fmt.Sprintf("Work at %s was submitted for approval", orProperty(p.PropertyName)),
		}

	case domain.NotifWorkApproved:
		var p WorkEventPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "check-circle",
			Category: "progress",
			Message:  fmt.Sprintf("Work at %s was approved", orProperty(p.PropertyName)),
		}

	case domain.NotifReworkRequested:
		var p WorkEventPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "rotate-ccw",
			Category: "progress",
			Message:  fmt.Sprintf("Rework was requested at %s", orProperty(p.PropertyName)),
		}

	case domain.NotifJobCancelled:
		var p WorkEventPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "ban",
			Category: "jobs",
			Message:  fmt.Sprintf("The cleaning job at %s was cancelled", orProperty(p.PropertyName)),
		}

	case domain.NotifInvoiceIssued:
		var p InvoiceEventPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "receipt",
			Category: "billing",
			Message:  invoiceMessage("An invoice", p.Total, "was issued"),
		}

	case domain.NotifInvoiceOverdue:
		var p InvoiceEventPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "alert-triangle",
			Category: "billing",
			Message:  invoiceMessage("An invoice", p.Total, "is overdue"),
		}

	case domain.NotifPaymentReceived:
		var p InvoiceEventPayload
		decode(n.Payload, &p)
		return Resolved{
			Icon:     "credit-card",
			Category: "billing",
			Message:  invoiceMessage("A payment", p.Total, "was received"),
		}

	case domain.NotifNewReview:
		var p ReviewEventPayload
		decode(n.Payload, &p)
		msg := fmt.Sprintf("%s received a new review", orWorker(p.WorkerName))
		if p.Rating > 0 {
			msg = fmt.Sprintf("%s (%.1f)", msg, p.Rating)
		}
		return Resolved{Icon: "star", Category: "reviews", Message: msg}

	case domain.NotifNewMessage:
		var p MessageEventPayload
		decode(n.Payload, &p)
		sender := p.SenderName
		if sender == "" {
			sender = "Someone"
		}
		msg := fmt.Sprintf("New message from %s", sender)
		if p.Preview != "" {
			msg += ": " + p.Preview
		}
		return Resolved{Icon: "message-circle", Category: "messages", Message: msg}

	default:
		return Resolved{Icon: "bell", Category: "general", Message: n.Title}
	}
}

func decode(raw json.RawMessage, into any) {
	if len(raw) == 0 {
		return
	}
	// a malformed payload renders with fallbacks, it never breaks the feed
	_ = json.Unmarshal(raw, into)
}

func orWorker(name string) string {
	if name == "" {
		return fallbackWorker
	}
	return name
}

func orProperty(name string) string {
	if name == "" {
		return fallbackProperty
	}
	return name
}

func invoiceMessage(subject string, total int64, verb string) string {
	if total > 0 {
		return fmt.Sprintf("%s of ¥%d %s", subject, total, verb)
	}
	return fmt.Sprintf("%s %s", subject, verb)
}
