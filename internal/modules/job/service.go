package job

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

// StatusGroups are the console's job list tabs.
var StatusGroups = map[string][]string{
	"draft":     {string(domain.JobDraft)},
	"open":      {string(domain.JobOpen)},
	"progress":  {string(domain.JobAssigned), string(domain.JobInProgress)},
	"done":      {string(domain.JobCompleted)},
	"cancelled": {string(domain.JobCancelled)},
}

type Service struct {
	jobs        JobRepository
	properties  PropertyRepository
	apps        ApplicationRepository
	assignments AssignmentRepository
	notifs      Notifier
	now         func() time.Time
}

func NewService(
	jobs JobRepository,
	properties PropertyRepository,
	apps ApplicationRepository,
	assignments AssignmentRepository,
	notifs Notifier,
) *Service {
	return &Service{
		jobs:        jobs,
		properties:  properties,
		apps:        apps,
		assignments: assignments,
		notifs:      notifs,
		now:         time.Now,
	}
}

func (s *Service) Create(ctx context.Context, ownerID string, req CreateJobRequest) (domain.JobPost, error) {
	prop, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.JobPost{}, ErrNotFound
		}
		return domain.JobPost{}, err
	}
	if prop.OwnerID != ownerID {
		return domain.JobPost{}, ErrForbidden
	}

	jobDate, ok := parseJobDate(req.JobDate)
	if !ok {
		return domain.JobPost{}, &domain.ValidationError{
			Entity: "job_post",
			Fields: map[string]string{"job_date": "must be a 2006-01-02 date"},
		}
	}

	status := domain.JobDraft
	if req.Publish {
		status = domain.JobOpen
	}
	now := s.now()
	j := domain.JobPost{
		ID:            uuid.NewString(),
		PropertyID:    req.PropertyID,
		Status:        status,
		Visibility:    domain.JobVisibility(req.Visibility),
		JobDate:       jobDate,
		StartTime:     req.StartTime,
		ExpectedHours: req.ExpectedHours,
		PayType:       domain.PayType(req.PayType),
		PayAmount:     req.PayAmount,
		TipAllowed:    req.TipAllowed,
		Description:   req.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if verr := j.Validate(); verr != nil {
		return domain.JobPost{}, verr
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return domain.JobPost{}, err
	}
	return j, nil
}

// List runs the shared query pipeline over the owner's jobs. Free text
// matches the property name and the description, the way the console's
// job search box behaves.
func (s *Service) List(ctx context.Context, ownerID string, f query.Filter, sort query.Sort, page query.Page) (query.Result[View], error) {
	jobs, err := s.jobs.ListByOwner(ctx, ownerID)
	if err != nil {
		return query.Result[View]{}, err
	}
	props, err := s.properties.ListByOwner(ctx, ownerID)
	if err != nil {
		return query.Result[View]{}, err
	}
	names := make(map[string]string, len(props))
	for _, p := range props {
		names[p.ID] = p.Name
	}

	views := make([]View, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, View{JobPost: j, PropertyName: names[j.PropertyID]})
	}

	schema := query.Schema[View]{
		ID: func(v View) string { return v.ID },
		TextFields: []func(View) string{
			func(v View) string { return v.PropertyName },
			func(v View) string { return v.Description },
		},
		Date:         func(v View) time.Time { return v.JobDate },
		Status:       func(v View) string { return string(v.Status) },
		StatusGroups: StatusGroups,
		SortKeys: map[string]func(a, b View) int{
			"job_date":   func(a, b View) int { return query.CompareTime(a.JobDate, b.JobDate) },
			"pay_amount": func(a, b View) int { return query.CompareInt64(a.PayAmount, b.PayAmount) },
			"created_at": func(a, b View) int { return query.CompareTime(a.CreatedAt, b.CreatedAt) },
		},
	}
	if sort.Field == "" {
		sort = query.Sort{Field: "job_date", Direction: query.Asc}
	}
	return query.Apply(views, f, sort, page, schema)
}

func (s *Service) Get(ctx context.Context, ownerID, jobID string) (Detail, error) {
	j, prop, err := s.ownedJob(ctx, ownerID, jobID)
	if err != nil {
		return Detail{}, err
	}
	apps, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return Detail{}, err
	}
	return Detail{JobPost: j, Property: prop, Applications: apps}, nil
}

// ChangeStatus applies one edge of the job lifecycle. The write is a
// compare-and-swap against the status the transition was validated from,
// so two concurrent attempts cannot both win.
func (s *Service) ChangeStatus(ctx context.Context, ownerID, jobID, target string) (domain.JobPost, error) {
	targetStatus, err := domain.ParseJobStatus(target)
	if err != nil {
		return domain.JobPost{}, err
	}
	j, _, err := s.ownedJob(ctx, ownerID, jobID)
	if err != nil {
		return domain.JobPost{}, err
	}

	from := j.Status
	updated, err := j.Transition(targetStatus, s.now())
	if err != nil {
		return domain.JobPost{}, err
	}
	if err := s.jobs.SwapStatus(ctx, updated, from); err != nil {
		return domain.JobPost{}, err
	}
	return updated, nil
}

// Apply records a worker's application to a public open job and notifies
// the owner.
func (s *Service) Apply(ctx context.Context, jobID, workerID string) (domain.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Application{}, ErrNotFound
		}
		return domain.Application{}, err
	}
	if j.Status != domain.JobOpen || j.Visibility != domain.JobPublic {
		return domain.Application{}, ErrNotOpen
	}

	a := domain.Application{
		ID:        uuid.NewString(),
		JobID:     jobID,
		WorkerID:  workerID,
		Status:    domain.ApplicationApplied,
		AppliedAt: s.now(),
	}
	if verr := a.Validate(); verr != nil {
		return domain.Application{}, verr
	}
	if err := s.apps.Create(ctx, a); err != nil {
		return domain.Application{}, err
	}

	if s.notifs != nil {
		prop, perr := s.properties.GetByID(ctx, j.PropertyID)
		payload := notification.JobApplicationPayload{JobID: jobID}
		if perr == nil {
			payload.PropertyName = prop.Name
			s.notifs.JobApplicationReceived(ctx, prop.OwnerID, payload)
		}
	}
	return a, nil
}

// AcceptApplication hires the applicant: the job moves open -> assigned,
// an assignment is created, and every other open application is rejected.
func (s *Service) AcceptApplication(ctx context.Context, ownerID, applicationID string) (domain.Assignment, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Assignment{}, ErrNotFound
		}
		return domain.Assignment{}, err
	}
	if app.Status != domain.ApplicationApplied {
		return domain.Assignment{}, ErrAlreadyTaken
	}

	j, _, err := s.ownedJob(ctx, ownerID, app.JobID)
	if err != nil {
		return domain.Assignment{}, err
	}

	from := j.Status
	updated, err := j.Transition(domain.JobAssigned, s.now())
	if err != nil {
		return domain.Assignment{}, err
	}
	if err := s.jobs.SwapStatus(ctx, updated, from); err != nil {
		return domain.Assignment{}, err
	}

	now := s.now()
	assignment := domain.Assignment{
		ID:        uuid.NewString(),
		JobID:     app.JobID,
		WorkerID:  app.WorkerID,
		Status:    domain.AssignmentAssigned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return domain.Assignment{}, err
	}

	if err := s.apps.UpdateStatus(ctx, applicationID, domain.ApplicationAccepted); err != nil {
		return domain.Assignment{}, err
	}
	if err := s.apps.RejectOthers(ctx, app.JobID, applicationID); err != nil {
		return domain.Assignment{}, err
	}
	return assignment, nil
}

func (s *Service) RejectApplication(ctx context.Context, ownerID, applicationID string) error {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if app.Status != domain.ApplicationApplied {
		return ErrAlreadyTaken
	}
	if _, _, err := s.ownedJob(ctx, ownerID, app.JobID); err != nil {
		return err
	}
	return s.apps.UpdateStatus(ctx, applicationID, domain.ApplicationRejected)
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
