package dashboard

import (
	"sort"
	"time"

	"cleanops/internal/domain"
)

// The aggregate functions below are pure: they scan the slices they are
// given against the clock they are given and never touch storage. The
// handler computes everything from one consistent read.

type Summary struct {
	JobCounts           map[domain.JobStatus]int `json:"job_counts"`
	OpenJobs            int                      `json:"open_jobs"`
	JobsWithinWeek      int                      `json:"jobs_within_week"`
	UnpaidCount         int                      `json:"unpaid_count"`
	UnpaidAmount        int64                    `json:"unpaid_amount"`
	TotalRevenue        int64                    `json:"total_revenue"`
	AverageRating       float64                  `json:"average_rating"`
	UnreadCount         int64                    `json:"unread_count"`
	UpcomingJobs        []domain.JobPost         `json:"upcoming_jobs"`
	RecentNotifications []domain.Notification    `json:"recent_notifications"`
}

func countJobsByStatus(jobs []domain.JobPost) map[domain.JobStatus]int {
	counts := make(map[domain.JobStatus]int)
	for _, j := range jobs {
		counts[j.Status]++
	}
	return counts
}

// jobsWithinWeek counts jobs dated inside [start of today, today+7d).
func jobsWithinWeek(jobs []domain.JobPost, now time.Time) int {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 7)
	n := 0
	for _, j := range jobs {
		if !j.JobDate.Before(start) && j.JobDate.Before(end) {
			n++
		}
	}
	return n
}

// upcomingJobs returns the next `limit` open or assigned jobs by date,
// soonest first, ties broken by id.
func upcomingJobs(jobs []domain.JobPost, now time.Time, limit int) []domain.JobPost {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	upcoming := make([]domain.JobPost, 0)
	for _, j := range jobs {
		switch j.Status {
		case domain.JobOpen, domain.JobAssigned, domain.JobInProgress:
			if !j.JobDate.Before(start) {
				upcoming = append(upcoming, j)
			}
		}
	}
	sort.Slice(upcoming, func(i, k int) bool {
		if !upcoming[i].JobDate.Equal(upcoming[k].JobDate) {
			return upcoming[i].JobDate.Before(upcoming[k].JobDate)
		}
		return upcoming[i].ID < upcoming[k].ID
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// unpaidTotals sums invoices whose effective status is issued or overdue.
func unpaidTotals(invoices []domain.Invoice, now time.Time) (count int, amount int64) {
	for _, inv := range invoices {
		switch inv.EffectiveStatus(now) {
		case domain.InvoiceIssued, domain.InvoiceOverdue:
			count++
			amount += inv.Total
		}
	}
	return count, amount
}

// totalRevenue sums the totals of paid invoices.
func totalRevenue(invoices []domain.Invoice) int64 {
	var sum int64
	for _, inv := range invoices {
		if inv.Status == domain.InvoicePaid {
			sum += inv.Total
		}
	}
	return sum
}

// recentNotifications returns the newest `limit` notifications, ties
// broken by id.
func recentNotifications(items []domain.Notification, limit int) []domain.Notification {
	recent := make([]domain.Notification, len(items))
	copy(recent, items)
	sort.Slice(recent, func(i, k int) bool {
		if !recent[i].CreatedAt.Equal(recent[k].CreatedAt) {
			return recent[i].CreatedAt.After(recent[k].CreatedAt)
		}
		return recent[i].ID < recent[k].ID
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// averageRating keeps full float precision; a caller that wants one
// decimal rounds at display time. Zero reviews average to zero.
func averageRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, rv := range reviews {
		sum += rv.Rating
	}
	return sum / float64(len(reviews))
}
