package notification

import (
	"context"
	"encoding/json"
	"time"

	"cleanops/internal/domain"
	"cleanops/internal/query"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Service struct {
	repo NotificationRepository
	log  *logrus.Logger
	now  func() time.Time
}

func NewService(repo NotificationRepository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

var feedSchema = query.Schema[domain.Notification]{
	ID: func(n domain.Notification) string { return n.ID },
	TextFields: []func(domain.Notification) string{
		func(n domain.Notification) string { return n.Title },
	},
	Date: func(n domain.Notification) time.Time { return n.CreatedAt },
	Status: func(n domain.Notification) string {
		if n.Read() {
			return "read"
		}
		return "unread"
	},
	StatusGroups: map[string][]string{
		"unread": {"unread"},
		"read":   {"read"},
	},
	SortKeys: map[string]func(a, b domain.Notification) int{
		"created_at": func(a, b domain.Notification) int { return query.CompareTime(a.CreatedAt, b.CreatedAt) },
	},
}

// FeedItem pairs the stored record with its resolved rendering.
type FeedItem struct {
	domain.Notification
	Resolved Resolved `json:"resolved"`
}

// Feed returns one page of the owner's notifications plus the unread count.
func (s *Service) Feed(ctx context.Context, ownerID string, f query.Filter, sort query.Sort, page query.Page) (query.Result[FeedItem], int64, error) {
	all, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return query.Result[FeedItem]{}, 0, err
	}

	if sort.Field == "" {
		sort = query.Sort{Field: "created_at", Direction: query.Desc}
	}
	res, err := query.Apply(all, f, sort, page, feedSchema)
	if err != nil {
		return query.Result[FeedItem]{}, 0, err
	}

	items := make([]FeedItem, 0, len(res.Items))
	for _, n := range res.Items {
		items = append(items, FeedItem{Notification: n, Resolved: Resolve(n)})
	}

	unread, err := s.repo.CountUnread(ctx, ownerID)
	if err != nil {
		return query.Result[FeedItem]{}, 0, err
	}
	return query.Result[FeedItem]{Items: items, TotalCount: res.TotalCount}, unread, nil
}

func (s *Service) MarkRead(ctx context.Context, id, ownerID string) error {
	return s.repo.MarkRead(ctx, id, ownerID, s.now())
}

func (s *Service) MarkAllRead(ctx context.Context, ownerID string) error {
	return s.repo.MarkAllRead(ctx, ownerID, s.now())
}

func (s *Service) create(ctx context.Context, ownerID string, typ domain.NotificationType, title string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.WithError(err).WithField("type", typ).Warn("drop notification: payload not serializable")
		return
	}
	n := domain.Notification{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Type:      typ,
		Title:     title,
		Payload:   raw,
		CreatedAt: s.now(),
	}
	// notifications are advisory: a failed insert is logged, never bubbled
	if err := s.repo.Create(ctx, n); err != nil {
		s.log.WithError(err).WithField("type", typ).Warn("drop notification: insert failed")
	}
}

// Event producers used by the other modules.

func (s *Service) JobApplicationReceived(ctx context.Context, ownerID string, p JobApplicationPayload) {
	s.create(ctx, ownerID, domain.NotifJobApplication, "New application", p)
}

func (s *Service) OfferAnswered(ctx context.Context, ownerID string, accepted bool, p OfferAnswerPayload) {
	if accepted {
		s.create(ctx, ownerID, domain.NotifOfferAccepted, "Offer accepted", p)
		return
	}
	s.create(ctx, ownerID, domain.NotifOfferDeclined, "Offer declined", p)
}

func (s *Service) WorkCheckedIn(ctx context.Context, ownerID string, p WorkEventPayload) {
	s.create(ctx, ownerID, domain.NotifWorkCheckedIn, "Worker checked in", p)
}

func (s *Service) WorkStarted(ctx context.Context, ownerID string, p WorkEventPayload) {
	s.create(ctx, ownerID, domain.NotifWorkStarted, "Cleaning started", p)
}

func (s *Service) WorkSubmitted(ctx context.Context, ownerID string, p WorkEventPayload) {
	s.create(ctx, ownerID, domain.NotifWorkSubmitted, "Work submitted", p)
}

func (s *Service) InvoiceIssued(ctx context.Context, ownerID string, p InvoiceEventPayload) {
	s.create(ctx, ownerID, domain.NotifInvoiceIssued, "Invoice issued", p)
}

func (s *Service) PaymentReceived(ctx context.Context, ownerID string, p InvoiceEventPayload) {
	s.create(ctx, ownerID, domain.NotifPaymentReceived, "Payment received", p)
}
