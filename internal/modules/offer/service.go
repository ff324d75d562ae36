package offer

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

// StatusGroups are the tabs of the console's offers screen. Grouping is
// over the effective status, so a sent offer whose deadline has passed
// lands in "expired" without any write.
var StatusGroups = map[string][]string{
	"pending":  {string(domain.OfferSent)},
	"answered": {string(domain.OfferAccepted), string(domain.OfferDeclined)},
	"expired":  {string(domain.OfferExpired)},
}

type Service struct {
	offers      OfferRepository
	jobs        JobRepository
	properties  PropertyRepository
	workers     WorkerRepository
	assignments AssignmentRepository
	notifs      Notifier
	now         func() time.Time
}

func NewService(
	offers OfferRepository,
	jobs JobRepository,
	properties PropertyRepository,
	workers WorkerRepository,
	assignments AssignmentRepository,
	notifs Notifier,
) *Service {
	return &Service{
		offers:      offers,
		jobs:        jobs,
		properties:  properties,
		workers:     workers,
		assignments: assignments,
		notifs:      notifs,
		now:         time.Now,
	}
}

// Send invites one worker to an open job. The deadline comes from the
// request and must be in the future of the send time.
func (s *Service) Send(ctx context.Context, ownerID string, req SendOfferRequest) (domain.Offer, error) {
	j, _, err := s.ownedJob(ctx, ownerID, req.JobID)
	if err != nil {
		return domain.Offer{}, err
	}
	if j.Status != domain.JobOpen {
		return domain.Offer{}, ErrJobNotOpen
	}
	if _, err := s.workers.GetByID(ctx, req.WorkerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Offer{}, &domain.ValidationError{
				Entity: "offer",
				Fields: map[string]string{"worker_id": "unknown worker"},
			}
		}
		return domain.Offer{}, err
	}

	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return domain.Offer{}, &domain.ValidationError{
			Entity: "offer",
			Fields: map[string]string{"expires_at": "must be an RFC3339 timestamp"},
		}
	}

	o := domain.Offer{
		ID:        uuid.NewString(),
		JobID:     req.JobID,
		OwnerID:   ownerID,
		WorkerID:  req.WorkerID,
		Status:    domain.OfferSent,
		SentAt:    s.now(),
		ExpiresAt: expiresAt,
	}
	if verr := o.Validate(); verr != nil {
		return domain.Offer{}, verr
	}
	if err := s.offers.Create(ctx, o); err != nil {
		return domain.Offer{}, err
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, ownerID string, f query.Filter, sort query.Sort, page query.Page) (query.Result[View], error) {
	offers, err := s.offers.ListByOwner(ctx, ownerID)
	if err != nil {
		return query.Result[View]{}, err
	}

	now := s.now()
	names := map[string]string{}
	views := make([]View, 0, len(offers))
	for _, o := range offers {
		name, ok := names[o.WorkerID]
		if !ok {
			if w, werr := s.workers.GetByID(ctx, o.WorkerID); werr == nil {
				name = w.Name
			}
			names[o.WorkerID] = name
		}
		views = append(views, View{
			Offer:           o,
			EffectiveStatus: o.EffectiveStatus(now),
			WorkerName:      name,
		})
	}

	schema := query.Schema[View]{
		ID: func(v View) string { return v.ID },
		TextFields: []func(View) string{
			func(v View) string { return v.WorkerName },
		},
		Date:         func(v View) time.Time { return v.SentAt },
		Status:       func(v View) string { return string(v.EffectiveStatus) },
		StatusGroups: StatusGroups,
		SortKeys: map[string]func(a, b View) int{
			"sent_at":    func(a, b View) int { return query.CompareTime(a.SentAt, b.SentAt) },
			"expires_at": func(a, b View) int { return query.CompareTime(a.ExpiresAt, b.ExpiresAt) },
		},
	}
	if sort.Field == "" {
		sort = query.Sort{Field: "sent_at", Direction: query.Desc}
	}
	return query.Apply(views, f, sort, page, schema)
}

func (s *Service) Get(ctx context.Context, ownerID, offerID string) (View, error) {
	o, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, err
	}
	if o.OwnerID != ownerID {
		return View{}, ErrForbidden
	}
	v := View{Offer: o, EffectiveStatus: o.EffectiveStatus(s.now())}
	if w, werr := s.workers.GetByID(ctx, o.WorkerID); werr == nil {
		v.WorkerName = w.Name
	}
	return v, nil
}

// Accept records the worker's yes. The offer moves sent -> accepted, the
// job moves open -> assigned, and an assignment is created for the worker.
// An offer past its deadline cannot be accepted even though the stored
// status still reads "sent".
func (s *Service) Accept(ctx context.Context, offerID, workerID string) (domain.Assignment, error) {
	o, err := s.answeredOffer(ctx, offerID, workerID)
	if err != nil {
		return domain.Assignment{}, err
	}

	now := s.now()
	updated, err := o.Transition(domain.OfferAccepted, now)
	if err != nil {
		return domain.Assignment{}, err
	}

	j, err := s.jobs.GetByID(ctx, o.JobID)
	if err != nil {
		return domain.Assignment{}, err
	}
	assignedJob, err := j.Transition(domain.JobAssigned, now)
	if err != nil {
		return domain.Assignment{}, err
	}

	// The job is the contended row, so its swap goes first: if another
	// worker won the race the offer's stored status is left untouched.
	if err := s.jobs.SwapStatus(ctx, assignedJob, j.Status); err != nil {
		return domain.Assignment{}, err
	}
	if err := s.offers.SwapStatus(ctx, updated, domain.OfferSent); err != nil {
		return domain.Assignment{}, err
	}

	a := domain.Assignment{
		ID:        uuid.NewString(),
		JobID:     o.JobID,
		WorkerID:  o.WorkerID,
		Status:    domain.AssignmentAssigned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return domain.Assignment{}, err
	}

	s.notifyAnswer(ctx, updated, true)
	return a, nil
}

// Decline records the worker's no. The job stays open.
func (s *Service) Decline(ctx context.Context, offerID, workerID string) (domain.Offer, error) {
	o, err := s.answeredOffer(ctx, offerID, workerID)
	if err != nil {
		return domain.Offer{}, err
	}
	updated, err := o.Transition(domain.OfferDeclined, s.now())
	if err != nil {
		return domain.Offer{}, err
	}
	if err := s.offers.SwapStatus(ctx, updated, domain.OfferSent); err != nil {
		return domain.Offer{}, err
	}
	s.notifyAnswer(ctx, updated, false)
	return updated, nil
}

func (s *Service) answeredOffer(ctx context.Context, offerID, workerID string) (domain.Offer, error) {
	o, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Offer{}, ErrNotFound
		}
		return domain.Offer{}, err
	}
	if o.WorkerID != workerID {
		return domain.Offer{}, ErrForbidden
	}
	return o, nil
}

func (s *Service) notifyAnswer(ctx context.Context, o domain.Offer, accepted bool) {
	if s.notifs == nil {
		return
	}
	p := notification.OfferAnswerPayload{OfferID: o.ID, JobID: o.JobID}
	if w, err := s.workers.GetByID(ctx, o.WorkerID); err == nil {
		p.WorkerName = w.Name
	}
	s.notifs.OfferAnswered(ctx, o.OwnerID, accepted, p)
}

func (s *Service) ownedJob(ctx context.Context, ownerID, jobID string) (domain.JobPost, domain.Property, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.JobPost{}, domain.Property{}, ErrNotFound
		}
		return domain.JobPost{}, domain.Property{}, err
	}
	prop, err := s.properties.GetByID(ctx, j.PropertyID)
	if err != nil {
		return domain.JobPost{}, domain.Property{}, err
	}
	if prop.OwnerID != ownerID {
		return domain.JobPost{}, domain.Property{}, ErrForbidden
	}
	return j, prop, nil
}
