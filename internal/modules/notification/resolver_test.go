package notification

import (
	"encoding/json"
	"testing"
	"time"

	"cleanops/internal/domain"

	"github.com/stretchr/testify/assert"
)

func notif(typ domain.NotificationType, payload any) domain.Notification {
	raw, _ := json.Marshal(payload)
	return domain.Notification{
		ID:        "n1",
		OwnerID:   "ow1",
		Type:      typ,
		Title:     "title",
		Payload:   raw,
		CreatedAt: time.Date(2025, 8, 29, 9, 0, 0, 0, time.UTC),
	}
}

func TestResolveKnownTypes(t *testing.T) {
	r := Resolve(notif(domain.NotifJobApplication, JobApplicationPayload{
		WorkerName:   "Tanaka Taro",
		PropertyName: "Shibuya Apartment 101",
	}))
	assert.Equal(t, "jobs", r.Category)
	assert.Contains(t, r.Message, "Tanaka Taro")
	assert.Contains(t, r.Message, "Shibuya Apartment 101")

	r = Resolve(notif(domain.NotifOfferDeclined, OfferAnswerPayload{WorkerName: "Sato"}))
	assert.Equal(t, "offers", r.Category)
	assert.Contains(t, r.Message, "declined")

	r = Resolve(notif(domain.NotifInvoiceIssued, InvoiceEventPayload{InvoiceID: "i1", Total: 25000}))
	assert.Equal(t, "billing", r.Category)
	assert.Contains(t, r.Message, "25000")

	r = Resolve(notif(domain.NotifNewReview, ReviewEventPayload{WorkerName: "Sato", Rating: 4.5}))
	assert.Contains(t, r.Message, "4.5")
}

func TestResolveTemplatesAreTotal(t *testing.T) {
	// every known type must render from an empty payload
	types := []domain.NotificationType{
		domain.NotifJobApplication, domain.NotifOfferAccepted, domain.NotifOfferDeclined,
		domain.NotifOfferExpired, domain.NotifWorkCheckedIn, domain.NotifWorkStarted,
		domain.NotifWorkSubmitted, domain.NotifWorkApproved, domain.NotifReworkRequested,
		domain.NotifJobCancelled, domain.NotifInvoiceIssued, domain.NotifInvoiceOverdue,
		domain.NotifPaymentReceived, domain.NotifNewReview, domain.NotifNewMessage,
	}
	for _, typ := range types {
		n := domain.Notification{ID: "n1", Type: typ, Title: "t"}
		r := Resolve(n)
		assert.NotEmpty(t, r.Icon, "%s", typ)
		assert.NotEmpty(t, r.Category, "%s", typ)
		assert.NotEmpty(t, r.Message, "%s", typ)
	}
}

func TestResolveUnknownTypeFallsBack(t *testing.T) {
	n := domain.Notification{ID: "n1", Type: "mystery_event", Title: "Something happened"}
	r := Resolve(n)
	assert.Equal(t, "bell", r.Icon)
	assert.Equal(t, "general", r.Category)
	assert.Equal(t, "Something happened", r.Message)
}

func TestResolveMalformedPayload(t *testing.T) {
	n := domain.Notification{
		ID:      "n1",
		Type:    domain.NotifWorkSubmitted,
		Title:   "Work submitted",
		Payload: json.RawMessage(`{"assignment_id": 42`), // truncated
	}
	r := Resolve(n)
	assert.Contains(t, r.Message, "your property")
}
