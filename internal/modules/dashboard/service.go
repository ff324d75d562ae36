package dashboard

import (
	"context"
	"time"

	"cleanops/internal/domain"
)

const (
	upcomingLimit = 5
	recentLimit   = 5
)

type JobRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.JobPost, error)
}

type InvoiceRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error)
}

type ReviewRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Review, error)
}

type NotificationRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Notification, error)
	CountUnread(ctx context.Context, ownerID string) (int64, error)
}

type Service struct {
	jobs          JobRepository
	invoices      InvoiceRepository
	reviews       ReviewRepository
	notifications NotificationRepository
	now           func() time.Time
}

func NewService(
	jobs JobRepository,
	invoices InvoiceRepository,
	reviews ReviewRepository,
	notifications NotificationRepository,
) *Service {
	return &Service{
		jobs:          jobs,
		invoices:      invoices,
		reviews:       reviews,
		notifications: notifications,
		now:           time.Now,
	}
}

// Summary assembles the console's landing screen from one read per store.
func (s *Service) Summary(ctx context.Context, ownerID string) (Summary, error) {
	jobs, err := s.jobs.ListByOwner(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	invoices, err := s.invoices.ListByOwner(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	reviews, err := s.reviews.ListByOwner(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	notifications, err := s.notifications.ListByOwner(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	unread, err := s.notifications.CountUnread(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}

	now := s.now()
	counts := countJobsByStatus(jobs)
	unpaidCount, unpaidAmount := unpaidTotals(invoices, now)

	return Summary{
		JobCounts:           counts,
		OpenJobs:            counts[domain.JobOpen],
		JobsWithinWeek:      jobsWithinWeek(jobs, now),
		UnpaidCount:         unpaidCount,
		UnpaidAmount:        unpaidAmount,
		TotalRevenue:        totalRevenue(invoices),
		AverageRating:       averageRating(reviews),
		UnreadCount:         unread,
		UpcomingJobs:        upcomingJobs(jobs, now, upcomingLimit),
		RecentNotifications: recentNotifications(notifications, recentLimit),
	}, nil
}
