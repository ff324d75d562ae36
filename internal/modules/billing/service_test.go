package billing

import (
	"context"
	"testing"
	"time"

	"cleanops/internal/domain"
	"cleanops/internal/modules/notification"
	"cleanops/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SwapStatus(ctx context.Context, inv domain.Invoice, from domain.InvoiceStatus) error {
	args := m.Called(ctx, inv, from)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CreatePayment(ctx context.Context, p domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ListPayments(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) InvoiceIssued(ctx context.Context, ownerID string, p notification.InvoiceEventPayload) {
	m.Called(ctx, ownerID, p)
}

func (m *MockNotifier) PaymentReceived(ctx context.Context, ownerID string, p notification.InvoiceEventPayload) {
	m.Called(ctx, ownerID, p)
}

var testNow = time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)

func issuedInvoice(dueDate time.Time) domain.Invoice {
	issued := testNow.Add(-10 * 24 * time.Hour)
	return domain.Invoice{
		ID:          "inv1",
		OwnerID:     "ow1",
		PeriodFrom:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodTo:    time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
		Subtotal:    16000,
		PlatformFee: 1600,
		Tax:         900,
		Total:       18500,
		Status:      domain.InvoiceIssued,
		DueDate:     dueDate,
		IssuedAt:    &issued,
	}
}

func newService(invoices *MockInvoiceRepository, n Notifier) *Service {
	svc := NewService(invoices, n)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCreateComputesTotal(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	invoices.On("Create", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Total == 18500 && inv.Status == domain.InvoiceDraft
	})).Return(nil)

	svc := newService(invoices, nil)
	inv, err := svc.Create(context.Background(), "ow1", CreateInvoiceRequest{
		PeriodFrom:  "2025-07-01",
		PeriodTo:    "2025-07-31",
		Subtotal:    16000,
		PlatformFee: 1600,
		Tax:         900,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(18500), inv.Total)
	invoices.AssertExpectations(t)
}

func TestCreateRejectsInvertedPeriod(t *testing.T) {
	svc := newService(new(MockInvoiceRepository), nil)
	_, err := svc.Create(context.Background(), "ow1", CreateInvoiceRequest{
		PeriodFrom: "2025-07-31",
		PeriodTo:   "2025-07-01",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "period_to")
}

func TestIssueStampsDueDateAndNotifies(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	notifs := new(MockNotifier)

	draft := issuedInvoice(time.Time{})
	draft.Status = domain.InvoiceDraft
	draft.IssuedAt = nil
	invoices.On("GetByID", mock.Anything, "inv1").Return(draft, nil)
	invoices.On("SwapStatus", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceIssued &&
			inv.IssuedAt != nil && inv.IssuedAt.Equal(testNow) &&
			inv.DueDate.Equal(time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC))
	}), domain.InvoiceDraft).Return(nil)
	notifs.On("InvoiceIssued", mock.Anything, "ow1", notification.InvoiceEventPayload{
		InvoiceID: "inv1",
		Total:     18500,
	}).Return()

	svc := newService(invoices, notifs)
	inv, err := svc.Issue(context.Background(), "ow1", "inv1", IssueRequest{DueDate: "2025-09-15"})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceIssued, inv.Status)
	notifs.AssertExpectations(t)
}

func TestIssueRejectsNonDraft(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	invoices.On("GetByID", mock.Anything, "inv1").Return(issuedInvoice(testNow.Add(24*time.Hour)), nil)

	svc := newService(invoices, nil)
	_, err := svc.Issue(context.Background(), "ow1", "inv1", IssueRequest{DueDate: "2025-09-15"})
	var terr *domain.TransitionError
	require.ErrorAs(t, err, &terr)
	invoices.AssertNotCalled(t, "SwapStatus")
}

func TestRecordPaymentDatesFromPayment(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	notifs := new(MockNotifier)

	paidAt := testNow.Add(-2 * 24 * time.Hour)
	invoices.On("GetByID", mock.Anything, "inv1").Return(issuedInvoice(testNow.Add(24*time.Hour)), nil)
	invoices.On("SwapStatus", mock.Anything, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoicePaid && inv.PaidAt != nil && inv.PaidAt.Equal(paidAt)
	}), domain.InvoiceIssued).Return(nil)
	invoices.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return p.InvoiceID == "inv1" && p.AmountGross == 18500 && p.AmountNet == 18500-555
	})).Return(nil)
	notifs.On("PaymentReceived", mock.Anything, "ow1", mock.Anything).Return()

	svc := newService(invoices, notifs)
	inv, err := svc.RecordPayment(context.Background(), "ow1", "inv1", PaymentRequest{
		Provider:    "bank_transfer",
		AmountGross: 18500,
		Fee:         555,
		PaidAt:      paidAt.Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, inv.Status)
	invoices.AssertExpectations(t)
}

func TestRecordPaymentOnOverdueInvoice(t *testing.T) {
	invoices := new(MockInvoiceRepository)

	// past due: effective status reads overdue, stored status is issued
	overdue := issuedInvoice(testNow.Add(-5 * 24 * time.Hour))
	require.Equal(t, domain.InvoiceOverdue, overdue.EffectiveStatus(testNow))

	invoices.On("GetByID", mock.Anything, "inv1").Return(overdue, nil)
	invoices.On("SwapStatus", mock.Anything, mock.Anything, domain.InvoiceIssued).Return(nil)
	invoices.On("CreatePayment", mock.Anything, mock.Anything).Return(nil)

	svc := newService(invoices, nil)
	inv, err := svc.RecordPayment(context.Background(), "ow1", "inv1", PaymentRequest{
		Provider:    "stripe",
		AmountGross: 18500,
		PaidAt:      testNow.Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, inv.Status)
}

func TestRecordPaymentAmountMismatch(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	invoices.On("GetByID", mock.Anything, "inv1").Return(issuedInvoice(testNow.Add(24*time.Hour)), nil)

	svc := newService(invoices, nil)
	_, err := svc.RecordPayment(context.Background(), "ow1", "inv1", PaymentRequest{
		Provider:    "stripe",
		AmountGross: 10000,
		PaidAt:      testNow.Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrWrongAmount)
}

func TestRecordPaymentOnDraft(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	draft := issuedInvoice(time.Time{})
	draft.Status = domain.InvoiceDraft
	invoices.On("GetByID", mock.Anything, "inv1").Return(draft, nil)

	svc := newService(invoices, nil)
	_, err := svc.RecordPayment(context.Background(), "ow1", "inv1", PaymentRequest{
		Provider:    "stripe",
		AmountGross: 18500,
		PaidAt:      testNow.Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrNotPayable)
}

func TestListGroupsOnEffectiveStatus(t *testing.T) {
	invoices := new(MockInvoiceRepository)

	paidAt := testNow.Add(-24 * time.Hour)
	paid := issuedInvoice(testNow.Add(-48 * time.Hour))
	paid.ID = "inv3"
	paid.Status = domain.InvoicePaid
	paid.PaidAt = &paidAt

	stored := []domain.Invoice{
		issuedInvoice(testNow.Add(24 * time.Hour)),  // unpaid, not yet due
		issuedInvoice(testNow.Add(-24 * time.Hour)), // unpaid and overdue
		paid,
	}
	stored[1].ID = "inv2"
	invoices.On("ListByOwner", mock.Anything, "ow1").Return(stored, nil)

	svc := newService(invoices, nil)

	res, err := svc.List(context.Background(), "ow1", query.Filter{StatusGroup: "unpaid"}, query.Sort{}, query.Page{Page: 0, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalCount)
	for _, v := range res.Items {
		assert.NotEqual(t, "inv3", v.ID)
	}

	res, err = svc.List(context.Background(), "ow1", query.Filter{StatusGroup: "paid"}, query.Sort{}, query.Page{Page: 0, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount)
	assert.Equal(t, "inv3", res.Items[0].ID)
	assert.Equal(t, domain.InvoicePaid, res.Items[0].EffectiveStatus)
}
