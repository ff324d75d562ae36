package billing

import (
	"context"
	"errors"
	"time"

	"cleanops/internal/domain"
	"cleanops/internal/modules/notification"
	"cleanops/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusGroups are the tabs of the console's billing screen. Grouping is
// over the effective status, so an issued invoice past its due date lands
// in "unpaid" as overdue without any write.
var StatusGroups = map[string][]string{
	"draft":  {string(domain.InvoiceDraft)},
	"unpaid": {string(domain.InvoiceIssued), string(domain.InvoiceOverdue)},
	"paid":   {string(domain.InvoicePaid)},
	"void":   {string(domain.InvoiceVoid)},
}

type Service struct {
	invoices InvoiceRepository
	notifs   Notifier
	now      func() time.Time
}

func NewService(invoices InvoiceRepository, notifs Notifier) *Service {
	return &Service{
		invoices: invoices,
		notifs:   notifs,
		now:      time.Now,
	}
}

// Create opens a draft invoice for one billing period. The total is the
// subtotal plus the platform fee plus tax, all integer yen.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateInvoiceRequest) (domain.Invoice, error) {
	from, ferr := time.Parse("2006-01-02", req.PeriodFrom)
	to, terr := time.Parse("2006-01-02", req.PeriodTo)
	if ferr != nil || terr != nil {
		fields := map[string]string{}
		if ferr != nil {
			fields["period_from"] = "must be a 2006-01-02 date"
		}
		if terr != nil {
			fields["period_to"] = "must be a 2006-01-02 date"
		}
		return domain.Invoice{}, &domain.ValidationError{Entity: "invoice", Fields: fields}
	}

	now := s.now()
	inv := domain.Invoice{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		PeriodFrom:  from,
		PeriodTo:    to,
		Subtotal:    req.Subtotal,
		PlatformFee: req.PlatformFee,
		Tax:         req.Tax,
		Total:       req.Subtotal + req.PlatformFee + req.Tax,
		Status:      domain.InvoiceDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if verr := inv.Validate(); verr != nil {
		return domain.Invoice{}, verr
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (s *Service) List(ctx context.Context, ownerID string, f query.Filter, sort query.Sort, page query.Page) (query.Result[View], error) {
	invoices, err := s.invoices.ListByOwner(ctx, ownerID)
	if err != nil {
		return query.Result[View]{}, err
	}

	now := s.now()
	views := make([]View, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, View{Invoice: inv, EffectiveStatus: inv.EffectiveStatus(now)})
	}

	schema := query.Schema[View]{
		ID:           func(v View) string { return v.ID },
		Date:         func(v View) time.Time { return v.PeriodFrom },
		Status:       func(v View) string { return string(v.EffectiveStatus) },
		StatusGroups: StatusGroups,
		SortKeys: map[string]func(a, b View) int{
			"period_from": func(a, b View) int { return query.CompareTime(a.PeriodFrom, b.PeriodFrom) },
			"due_date":    func(a, b View) int { return query.CompareTime(a.DueDate, b.DueDate) },
			"total":       func(a, b View) int { return query.CompareInt64(a.Total, b.Total) },
		},
	}
	if sort.Field == "" {
		sort = query.Sort{Field: "period_from", Direction: query.Desc}
	}
	return query.Apply(views, f, sort, page, schema)
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (Detail, error) {
	inv, err := s.ownedInvoice(ctx, ownerID, id)
	if err != nil {
		return Detail{}, err
	}
	payments, err := s.invoices.ListPayments(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{
		Invoice:         inv,
		EffectiveStatus: inv.EffectiveStatus(s.now()),
		Payments:        payments,
	}, nil
}

// Issue sends a draft invoice out for payment, fixing its due date.
func (s *Service) Issue(ctx context.Context, ownerID, id string, req IssueRequest) (domain.Invoice, error) {
	inv, err := s.ownedInvoice(ctx, ownerID, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	dueDate, perr := time.Parse("2006-01-02", req.DueDate)
	if perr != nil {
		return domain.Invoice{}, &domain.ValidationError{
			Entity: "invoice",
			Fields: map[string]string{"due_date": "must be a 2006-01-02 date"},
		}
	}

	from := inv.Status
	inv.DueDate = dueDate
	updated, err := inv.Transition(domain.InvoiceIssued, s.now())
	if err != nil {
		return domain.Invoice{}, err
	}
	if err := s.invoices.SwapStatus(ctx, updated, from); err != nil {
		return domain.Invoice{}, err
	}

	if s.notifs != nil {
		s.notifs.InvoiceIssued(ctx, ownerID, notification.InvoiceEventPayload{
			InvoiceID: updated.ID,
			Total:     updated.Total,
		})
	}
	return updated, nil
}

func (s *Service) Void(ctx context.Context, ownerID, id string) (domain.Invoice, error) {
	inv, err := s.ownedInvoice(ctx, ownerID, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	from := inv.Status
	updated, err := inv.Transition(domain.InvoiceVoid, s.now())
	if err != nil {
		return domain.Invoice{}, err
	}
	if err := s.invoices.SwapStatus(ctx, updated, from); err != nil {
		return domain.Invoice{}, err
	}
	return updated, nil
}

// RecordPayment settles an issued invoice in full. The invoice's paid_at
// is the payment's time, not the recording time, so a late-entered bank
// transfer dates correctly. An overdue invoice is still payable; its
// stored status is "issued" all along.
func (s *Service) RecordPayment(ctx context.Context, ownerID, id string, req PaymentRequest) (domain.Invoice, error) {
	inv, err := s.ownedInvoice(ctx, ownerID, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if inv.Status != domain.InvoiceIssued {
		return domain.Invoice{}, ErrNotPayable
	}
	if req.AmountGross != inv.Total {
		return domain.Invoice{}, ErrWrongAmount
	}

	paidAt, perr := time.Parse(time.RFC3339, req.PaidAt)
	if perr != nil {
		return domain.Invoice{}, &domain.ValidationError{
			Entity: "payment",
			Fields: map[string]string{"paid_at": "must be an RFC3339 timestamp"},
		}
	}

	p := domain.Payment{
		ID:          uuid.NewString(),
		InvoiceID:   id,
		Provider:    domain.PaymentProvider(req.Provider),
		AmountGross: req.AmountGross,
		Fee:         req.Fee,
		AmountNet:   req.AmountGross - req.Fee,
		PaidAt:      paidAt,
	}
	if verr := p.Validate(); verr != nil {
		return domain.Invoice{}, verr
	}

	updated, err := inv.Transition(domain.InvoicePaid, paidAt)
	if err != nil {
		return domain.Invoice{}, err
	}
	if err := s.invoices.SwapStatus(ctx, updated, domain.InvoiceIssued); err != nil {
		return domain.Invoice{}, err
	}
	if err := s.invoices.CreatePayment(ctx, p); err != nil {
		return domain.Invoice{}, err
	}

	if s.notifs != nil {
		s.notifs.PaymentReceived(ctx, ownerID, notification.InvoiceEventPayload{
			InvoiceID: updated.ID,
			Total:     updated.Total,
		})
	}
	return updated, nil
}

func (s *Service) ownedInvoice(ctx context.Context, ownerID, id string) (domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Invoice{}, ErrNotFound
		}
		return domain.Invoice{}, err
	}
	if inv.OwnerID != ownerID {
		return domain.Invoice{}, ErrForbidden
	}
	return inv, nil
}
