package assignment

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

// StatusGroups are the tabs of the console's work screen.
var StatusGroups = map[string][]string{
	"active": {
		string(domain.AssignmentAssigned),
		string(domain.AssignmentCheckedIn),
		string(domain.AssignmentInProgress),
		string(domain.AssignmentRework),
	},
	"review":    {string(domain.AssignmentSubmitted)},
	"done":      {string(domain.AssignmentApproved)},
	"cancelled": {string(domain.AssignmentCancelled)},
}

type Service struct {
	assignments AssignmentRepository
	jobs        JobRepository
	properties  PropertyRepository
	workers     WorkerRepository
	notifs      Notifier
	now         func() time.Time
}

func NewService(
	assignments AssignmentRepository,
	jobs JobRepository,
	properties PropertyRepository,
	workers WorkerRepository,
	notifs Notifier,
) *Service {
	return &Service{
		assignments: assignments,
		jobs:        jobs,
		properties:  properties,
		workers:     workers,
		notifs:      notifs,
		now:         time.Now,
	}
}

func (s *Service) List(ctx context.Context, ownerID string, f query.Filter, sort query.Sort, page query.Page) (query.Result[View], error) {
	items, err := s.assignments.ListByOwner(ctx, ownerID)
	if err != nil {
		return query.Result[View]{}, err
	}

	propNames := map[string]string{}
	workerNames := map[string]string{}
	views := make([]View, 0, len(items))
	for _, a := range items {
		v := View{Assignment: a}
		if j, jerr := s.jobs.GetByID(ctx, a.JobID); jerr == nil {
			name, ok := propNames[j.PropertyID]
			if !ok {
				if p, perr := s.properties.GetByID(ctx, j.PropertyID); perr == nil {
					name = p.Name
				}
				propNames[j.PropertyID] = name
			}
			v.PropertyName = name
		}
		name, ok := workerNames[a.WorkerID]
		if !ok {
			if w, werr := s.workers.GetByID(ctx, a.WorkerID); werr == nil {
				name = w.Name
			}
			workerNames[a.WorkerID] = name
		}
		v.WorkerName = name
		views = append(views, v)
	}

	schema := query.Schema[View]{
		ID: func(v View) string { return v.ID },
		TextFields: []func(View) string{
			func(v View) string { return v.PropertyName },
			func(v View) string { return v.WorkerName },
		},
		Date:         func(v View) time.Time { return v.CreatedAt },
		Status:       func(v View) string { return string(v.Status) },
		StatusGroups: StatusGroups,
		SortKeys: map[string]func(a, b View) int{
			"created_at": func(a, b View) int { return query.CompareTime(a.CreatedAt, b.CreatedAt) },
			"updated_at": func(a, b View) int { return query.CompareTime(a.UpdatedAt, b.UpdatedAt) },
			"progress":   func(a, b View) int { return query.CompareInt64(int64(a.Progress), int64(b.Progress)) },
		},
	}
	if sort.Field == "" {
		sort = query.Sort{Field: "updated_at", Direction: query.Desc}
	}
	return query.Apply(views, f, sort, page, schema)
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (Detail, error) {
	a, j, err := s.ownedAssignment(ctx, ownerID, id)
	if err != nil {
		return Detail{}, err
	}
	photos, err := s.assignments.ListPhotos(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Assignment: a, Job: j, Photos: photos}, nil
}

// CheckIn marks the worker's arrival on site.
func (s *Service) CheckIn(ctx context.Context, id, workerID string) (domain.Assignment, error) {
	a, err := s.workerAssignment(ctx, id, workerID)
	if err != nil {
		return domain.Assignment{}, err
	}
	updated, err := s.swap(ctx, a, domain.AssignmentCheckedIn)
	if err != nil {
		return domain.Assignment{}, err
	}
	if s.notifs != nil {
		s.notifyWork(ctx, updated, s.notifs.WorkCheckedIn)
	}
	return updated, nil
}

// Start begins the work. On the first start the job moves
// assigned -> in_progress; a restart after rework leaves the job alone.
func (s *Service) Start(ctx context.Context, id, workerID string) (domain.Assignment, error) {
	a, err := s.workerAssignment(ctx, id, workerID)
	if err != nil {
		return domain.Assignment{}, err
	}
	updated, err := s.swap(ctx, a, domain.AssignmentInProgress)
	if err != nil {
		return domain.Assignment{}, err
	}

	if j, jerr := s.jobs.GetByID(ctx, a.JobID); jerr == nil && j.Status == domain.JobAssigned {
		if started, terr := j.Transition(domain.JobInProgress, s.now()); terr == nil {
			if err := s.jobs.SwapStatus(ctx, started, domain.JobAssigned); err != nil {
				return domain.Assignment{}, err
			}
		}
	}

	if s.notifs != nil {
		s.notifyWork(ctx, updated, s.notifs.WorkStarted)
	}
	return updated, nil
}

// Submit hands the finished work over for review. Progress snaps to 100.
func (s *Service) Submit(ctx context.Context, id, workerID string) (domain.Assignment, error) {
	a, err := s.workerAssignment(ctx, id, workerID)
	if err != nil {
		return domain.Assignment{}, err
	}
	updated, err := s.swap(ctx, a, domain.AssignmentSubmitted)
	if err != nil {
		return domain.Assignment{}, err
	}
	if s.notifs != nil {
		s.notifyWork(ctx, updated, s.notifs.WorkSubmitted)
	}
	return updated, nil
}

// Approve accepts the submitted work and completes the job.
func (s *Service) Approve(ctx context.Context, ownerID, id string) (domain.Assignment, error) {
	a, j, err := s.ownedAssignment(ctx, ownerID, id)
	if err != nil {
		return domain.Assignment{}, err
	}
	updated, err := s.swap(ctx, a, domain.AssignmentApproved)
	if err != nil {
		return domain.Assignment{}, err
	}

	if completed, terr := j.Transition(domain.JobCompleted, s.now()); terr == nil {
		if err := s.jobs.SwapStatus(ctx, completed, j.Status); err != nil {
			return domain.Assignment{}, err
		}
	}
	return updated, nil
}

// RequestRework sends submitted work back. The worker restarts via Start.
func (s *Service) RequestRework(ctx context.Context, ownerID, id string) (domain.Assignment, error) {
	a, _, err := s.ownedAssignment(ctx, ownerID, id)
	if err != nil {
		return domain.Assignment{}, err
	}
	return s.swap(ctx, a, domain.AssignmentRework)
}

func (s *Service) Cancel(ctx context.Context, ownerID, id string) (domain.Assignment, error) {
	a, _, err := s.ownedAssignment(ctx, ownerID, id)
	if err != nil {
		return domain.Assignment{}, err
	}
	return s.swap(ctx, a, domain.AssignmentCancelled)
}

// UpdateProgress moves the progress bar. Progress never goes backwards and
// the photo count never exceeds the required total.
func (s *Service) UpdateProgress(ctx context.Context, id, workerID string, req ProgressRequest) (domain.Assignment, error) {
	a, err := s.workerAssignment(ctx, id, workerID)
	if err != nil {
		return domain.Assignment{}, err
	}
	if a.Status != domain.AssignmentCheckedIn && a.Status != domain.AssignmentInProgress {
		return domain.Assignment{}, ErrNotOnSite
	}
	if req.Progress < a.Progress {
		return domain.Assignment{}, ErrProgressBackwards
	}
	if req.PhotosSubmitted < a.PhotosSubmitted {
		return domain.Assignment{}, ErrProgressBackwards
	}
	if req.PhotosSubmitted > a.TotalPhotosRequired {
		return domain.Assignment{}, ErrPhotoLimit
	}
	if err := s.assignments.UpdateProgress(ctx, id, req.Progress, req.PhotosSubmitted); err != nil {
		return domain.Assignment{}, err
	}
	a.Progress = req.Progress
	a.PhotosSubmitted = req.PhotosSubmitted
	return a, nil
}

// AddPhoto attaches an evidence shot and bumps the submitted count.
func (s *Service) AddPhoto(ctx context.Context, id, workerID string, req PhotoRequest) (domain.Photo, error) {
	a, err := s.workerAssignment(ctx, id, workerID)
	if err != nil {
		return domain.Photo{}, err
	}
	if a.Status != domain.AssignmentCheckedIn && a.Status != domain.AssignmentInProgress {
		return domain.Photo{}, ErrNotOnSite
	}
	if a.PhotosSubmitted >= a.TotalPhotosRequired {
		return domain.Photo{}, ErrPhotoLimit
	}

	p := domain.Photo{
		ID:           uuid.NewString(),
		AssignmentID: id,
		Kind:         req.Kind,
		URL:          req.URL,
		TakenAt:      s.now(),
	}
	if verr := p.Validate(); verr != nil {
		return domain.Photo{}, verr
	}
	if err := s.assignments.AddPhoto(ctx, p); err != nil {
		return domain.Photo{}, err
	}
	if err := s.assignments.UpdateProgress(ctx, id, a.Progress, a.PhotosSubmitted+1); err != nil {
		return domain.Photo{}, err
	}
	return p, nil
}

func (s *Service) swap(ctx context.Context, a domain.Assignment, target domain.AssignmentStatus) (domain.Assignment, error) {
	from := a.Status
	updated, err := a.Transition(target, s.now())
	if err != nil {
		return domain.Assignment{}, err
	}
	if err := s.assignments.SwapStatus(ctx, updated, from); err != nil {
		return domain.Assignment{}, err
	}
	return updated, nil
}

func (s *Service) notifyWork(ctx context.Context, a domain.Assignment, send func(context.Context, string, notification.WorkEventPayload)) {
	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return
	}
	prop, err := s.properties.GetByID(ctx, j.PropertyID)
	if err != nil {
		return
	}
	p := notification.WorkEventPayload{
		AssignmentID: a.ID,
		JobID:        a.JobID,
		PropertyName: prop.Name,
	}
	if w, werr := s.workers.GetByID(ctx, a.WorkerID); werr == nil {
		p.WorkerName = w.Name
	}
	send(ctx, prop.OwnerID, p)
}

func (s *Service) workerAssignment(ctx context.Context, id, workerID string) (domain.Assignment, error) {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Assignment{}, ErrNotFound
		}
		return domain.Assignment{}, err
	}
	if a.WorkerID != workerID {
		return domain.Assignment{}, ErrForbidden
	}
	return a, nil
}

func (s *Service) ownedAssignment(ctx context.Context, ownerID, id string) (domain.Assignment, domain.JobPost, error) {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Assignment{}, domain.JobPost{}, ErrNotFound
		}
		return domain.Assignment{}, domain.JobPost{}, err
	}
	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return domain.Assignment{}, domain.JobPost{}, err
	}
	prop, err := s.properties.GetByID(ctx, j.PropertyID)
	if err != nil {
		return domain.Assignment{}, domain.JobPost{}, err
	}
	if prop.OwnerID != ownerID {
		return domain.Assignment{}, domain.JobPost{}, ErrForbidden
	}
	return a, j, nil
}
