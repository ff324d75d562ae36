package dashboard

import (
	"testing"
	"time"

	"cleanops/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func invoice(id string, status domain.InvoiceStatus, total int64, dueDate time.Time) domain.Invoice {
	inv := domain.Invoice{ID: id, OwnerID: "ow1", Status: status, Total: total, DueDate: dueDate}
	if status == domain.InvoicePaid {
		paid := testNow.Add(-24 * time.Hour)
		inv.PaidAt = &paid
	}
	return inv
}

func TestCountJobsByStatus(t *testing.T) {
	counts := countJobsByStatus([]domain.JobPost{
		{ID: "j1", Status: domain.JobOpen},
		{ID: "j2", Status: domain.JobOpen},
		{ID: "j3", Status: domain.JobCompleted},
	})
	assert.Equal(t, 2, counts[domain.JobOpen])
	assert.Equal(t, 1, counts[domain.JobCompleted])
	assert.Equal(t, 0, counts[domain.JobCancelled])
}

func TestJobsWithinWeekBoundaries(t *testing.T) {
	jobs := []domain.JobPost{
		{ID: "j1", JobDate: day(0)},  // start of today: in
		{ID: "j2", JobDate: day(6)},  // in
		{ID: "j3", JobDate: day(7)},  // start+7d: out
		{ID: "j4", JobDate: day(-1)}, // yesterday: out
	}
	assert.Equal(t, 2, jobsWithinWeek(jobs, testNow))
}

func TestUnpaidTotalsUsesEffectiveStatus(t *testing.T) {
	invoices := []domain.Invoice{
		invoice("inv1", domain.InvoiceIssued, 12000, testNow.Add(48*time.Hour)),  // unpaid
		invoice("inv2", domain.InvoiceIssued, 6500, testNow.Add(-24*time.Hour)),  // overdue, still unpaid
		invoice("inv3", domain.InvoicePaid, 25000, testNow.Add(-72*time.Hour)),   // paid
		invoice("inv4", domain.InvoiceDraft, 9999, time.Time{}),                  // draft: neither
		invoice("inv5", domain.InvoiceVoid, 4000, time.Time{}),                   // void: neither
	}

	count, amount := unpaidTotals(invoices, testNow)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(18500), amount)
	assert.Equal(t, int64(25000), totalRevenue(invoices))
}

func TestUpcomingJobsSortedAndCapped(t *testing.T) {
	jobs := []domain.JobPost{
		{ID: "j6", Status: domain.JobOpen, JobDate: day(6)},
		{ID: "j2", Status: domain.JobAssigned, JobDate: day(1)},
		{ID: "j1", Status: domain.JobOpen, JobDate: day(1)},
		{ID: "j3", Status: domain.JobOpen, JobDate: day(2)},
		{ID: "j4", Status: domain.JobInProgress, JobDate: day(3)},
		{ID: "j5", Status: domain.JobOpen, JobDate: day(4)},
		{ID: "j7", Status: domain.JobCancelled, JobDate: day(1)}, // excluded
		{ID: "j8", Status: domain.JobOpen, JobDate: day(-2)},     // past
	}

	got := upcomingJobs(jobs, testNow, 5)
	require.Len(t, got, 5)
	// equal dates tie-break on id
	assert.Equal(t, "j1", got[0].ID)
	assert.Equal(t, "j2", got[1].ID)
	assert.Equal(t, "j3", got[2].ID)
	assert.Equal(t, "j4", got[3].ID)
	assert.Equal(t, "j5", got[4].ID)
}

func TestAverageRatingFullPrecision(t *testing.T) {
	reviews := []domain.Review{
		{ID: "r1", Rating: 4.5},
		{ID: "r2", Rating: 4.0},
		{ID: "r3", Rating: 5.0},
	}
	assert.InDelta(t, 4.5, averageRating(reviews), 1e-9)
	assert.Zero(t, averageRating(nil))
}

func TestRecentNotificationsNewestFirst(t *testing.T) {
	items := []domain.Notification{
		{ID: "n1", CreatedAt: testNow.Add(-3 * time.Hour)},
		{ID: "n2", CreatedAt: testNow.Add(-1 * time.Hour)},
		{ID: "n3", CreatedAt: testNow.Add(-2 * time.Hour)},
	}

	got := recentNotifications(items, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "n2", got[0].ID)
	assert.Equal(t, "n3", got[1].ID)
	// input untouched
	assert.Equal(t, "n1", items[0].ID)
}
