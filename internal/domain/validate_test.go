package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsEveryFailingField(t *testing.T) {
	j := JobPost{
		ID:        "j1",
		Status:    JobOpen,
		PayAmount: 0, // missing property, visibility, date, start time, pay type too
	}

	verr := j.Validate()
	require.NotNil(t, verr)
	for _, field := range []string{"property_id", "visibility", "job_date", "start_time", "pay_type", "pay_amount"} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Contains(t, verr.Error(), "job_post validation failed")
}

func TestValidateAcceptsWellFormedJob(t *testing.T) {
	j := JobPost{
		ID:            "j1",
		PropertyID:    "p1",
		Status:        JobDraft,
		Visibility:    JobPublic,
		JobDate:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		ExpectedHours: 2,
		PayType:       PayFixed,
		PayAmount:     8000,
	}
	assert.Nil(t, j.Validate())
}

func TestOfferValidateCrossField(t *testing.T) {
	o := Offer{
		ID:        "o1",
		JobID:     "j1",
		OwnerID:   "ow1",
		WorkerID:  "w1",
		Status:    OfferSent,
		SentAt:    testNow,
		ExpiresAt: testNow.Add(-time.Hour),
	}
	verr := o.Validate()
	require.NotNil(t, verr)
	assert.Equal(t, "must be after sent_at", verr.Fields["expires_at"])
}

func TestInvoicePaidAtConsistency(t *testing.T) {
	base := Invoice{
		ID:         "i1",
		OwnerID:    "ow1",
		PeriodFrom: testNow.AddDate(0, -1, 0),
		PeriodTo:   testNow,
		Status:     InvoiceIssued,
	}
	paidAt := testNow

	withStray := base
	withStray.PaidAt = &paidAt
	verr := withStray.Validate()
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "paid_at")

	paidMissingStamp := base
	paidMissingStamp.Status = InvoicePaid
	verr = paidMissingStamp.Validate()
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "paid_at")
}

func TestAssignmentPhotoBound(t *testing.T) {
	a := Assignment{
		ID:                  "a1",
		JobID:               "j1",
		WorkerID:            "w1",
		Status:              AssignmentInProgress,
		PhotosSubmitted:     5,
		TotalPhotosRequired: 3,
	}
	verr := a.Validate()
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "photos_submitted")
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	_, err := ParseJobStatus("archived")
	assert.Error(t, err)
	_, err = ParseAssignmentStatus("paused")
	assert.Error(t, err)
	_, err = ParseOfferStatus("pending")
	assert.Error(t, err)
	_, err = ParseInvoiceStatus("refunded")
	assert.Error(t, err)

	st, err := ParseJobStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, JobInProgress, st)
}
