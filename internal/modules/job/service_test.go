package job

import (
	"context"
	"testing"
	"time"

	"cleanops/internal/domain"
	"cleanops/internal/modules/notification"
	"cleanops/internal/query"
	"cleanops/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, j domain.JobPost) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (domain.JobPost, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.JobPost), args.Error(1)
}

func (m *MockJobRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.JobPost, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobPost), args.Error(1)
}

func (m *MockJobRepository) SwapStatus(ctx context.Context, j domain.JobPost, from domain.JobStatus) error {
	args := m.Called(ctx, j, from)
	return args.Error(0)
}

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (domain.Property, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, a domain.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id string) (domain.Application, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockApplicationRepository) RejectOthers(ctx context.Context, jobID, acceptedID string) error {
	args := m.Called(ctx, jobID, acceptedID)
	return args.Error(0)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, a domain.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) JobApplicationReceived(ctx context.Context, ownerID string, p notification.JobApplicationPayload) {
	m.Called(ctx, ownerID, p)
}

var testNow = time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)

func newService(jobs *MockJobRepository, props *MockPropertyRepository, apps *MockApplicationRepository, asg *MockAssignmentRepository, n Notifier) *Service {
	svc := NewService(jobs, props, apps, asg, n)
	svc.now = func() time.Time { return testNow }
	return svc
}

func ownerProperty() domain.Property {
	return domain.Property{ID: "p1", OwnerID: "ow1", Name: "Shibuya Apartment 101", Address: "Tokyo"}
}

func TestCreateJobValidates(t *testing.T) {
	jobs := new(MockJobRepository)
	props := new(MockPropertyRepository)
	props.On("GetByID", mock.Anything, "p1").Return(ownerProperty(), nil)

	svc := newService(jobs, props, nil, nil, nil)

	_, err := svc.Create(context.Background(), "ow1", CreateJobRequest{
		PropertyID: "p1",
		Visibility: "public",
		JobDate:    "2025-09-01",
		StartTime:  "10:00",
		PayType:    "fixed",
		PayAmount:  -100, // invalid
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "pay_amount")
	jobs.AssertNotCalled(t, "Create")
}

func TestCreateJobDraftVsPublished(t *testing.T) {
	props := new(MockPropertyRepository)
	props.On("GetByID", mock.Anything, "p1").Return(ownerProperty(), nil)

	for _, tc := range []struct {
		publish bool
		want    domain.JobStatus
	}{
		{publish: false, want: domain.JobDraft},
		{publish: true, want: domain.JobOpen},
	} {
		jobs := new(MockJobRepository)
		jobs.On("Create", mock.Anything, mock.AnythingOfType("domain.JobPost")).Return(nil)
		svc := newService(jobs, props, nil, nil, nil)

		j, err := svc.Create(context.Background(), "ow1", CreateJobRequest{
			PropertyID:    "p1",
			Visibility:    "public",
			JobDate:       "2025-09-01",
			StartTime:     "10:00",
			ExpectedHours: 2,
			PayType:       "fixed",
			PayAmount:     8000,
			Publish:       tc.publish,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.want, j.Status)
		assert.NotEmpty(t, j.ID)
	}
}

func TestCreateJobForeignProperty(t *testing.T) {
	props := new(MockPropertyRepository)
	props.On("GetByID", mock.Anything, "p1").Return(domain.Property{ID: "p1", OwnerID: "other"}, nil)

	svc := newService(new(MockJobRepository), props, nil, nil, nil)
	_, err := svc.Create(context.Background(), "ow1", CreateJobRequest{
		PropertyID: "p1", Visibility: "public", JobDate: "2025-09-01",
		StartTime: "10:00", ExpectedHours: 2, PayType: "fixed", PayAmount: 8000,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestChangeStatusUsesCompareAndSwap(t *testing.T) {
	jobs := new(MockJobRepository)
	props := new(MockPropertyRepository)
	props.On("GetByID", mock.Anything, "p1").Return(ownerProperty(), nil)

	j := domain.JobPost{ID: "j1", PropertyID: "p1", Status: domain.JobOpen}
	jobs.On("GetByID", mock.Anything, "j1").Return(j, nil)
	jobs.On("SwapStatus", mock.Anything, mock.MatchedBy(func(got domain.JobPost) bool {
		return got.Status == domain.JobCancelled && got.CancelledAt != nil
	}), domain.JobOpen).Return(nil)

	svc := newService(jobs, props, nil, nil, nil)
	updated, err := svc.ChangeStatus(context.Background(), "ow1", "j1", "cancelled")
	require.NoError(t, err)
	assert.Equal(t, domain.JobCancelled, updated.Status)
	jobs.AssertExpectations(t)
}

func TestChangeStatusRejectsIllegalEdge(t *testing.T) {
	jobs := new(MockJobRepository)
	props := new(MockPropertyRepository)
	props.On("GetByID", mock.Anything, "p1").Return(ownerProperty(), nil)
	jobs.On("GetByID", mock.Anything, "j1").Return(domain.JobPost{ID: "j1", PropertyID: "p1", Status: domain.JobCompleted}, nil)

	svc := newService(jobs, props, nil, nil, nil)
	_, err := svc.ChangeStatus(context.Background(), "ow1", "j1", "open")
	var terr *domain.TransitionError
	require.ErrorAs(t, err, &terr)
	jobs.AssertNotCalled(t, "SwapStatus")
}

func TestChangeStatusStaleSwap(t *testing.T) {
	jobs := new(MockJobRepository)
	props := new(MockPropertyRepository)
	props.On("GetByID", mock.Anything, "p1").Return(ownerProperty(), nil)
	jobs.On("GetByID", mock.Anything, "j1").Return(domain.JobPost{ID: "j1", PropertyID: "p1", Status: domain.JobOpen}, nil)
	jobs.On("SwapStatus", mock.Anything, mock.Anything, domain.JobOpen).Return(repository.ErrStaleStatus)

	svc := newService(jobs, props, nil, nil, nil)
	_, err := svc.ChangeStatus(context.Background(), "ow1", "j1", "cancelled")
	assert.ErrorIs(t, err, repository.ErrStaleStatus)
}

func TestChangeStatusUnknownStatus(t *testing.T) {
	svc := newService(new(MockJobRepository), new(MockPropertyRepository), nil, nil, nil)
	_, err := svc.ChangeStatus(context.Background(), "ow1", "j1", "archived")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestApplyNotifiesOwner(t *testing.T) {
	jobs := new(MockJobRepository)
	props := new(MockPropertyRepository)
	apps := new(MockApplicationRepository)
	notifs := new(MockNotifier)

	jobs.On("GetByID", mock.Anything, "j1").Return(domain.JobPost{
		ID: "j1", PropertyID: "p1", Status: domain.JobOpen, Visibility: domain.JobPublic,
	}, nil)
	props.On("GetByID", mock.Anything, "p1").Return(ownerProperty(), nil)
	apps.On("Create", mock.Anything, mock.AnythingOfType("domain.Application")).Return(nil)
	notifs.On("JobApplicationReceived", mock.Anything, "ow1", mock.MatchedBy(func(p notification.JobApplicationPayload) bool {
		return p.JobID == "j1" && p.PropertyName == "Shibuya Apartment 101"
	})).Return()

	svc := newService(jobs, props, apps, nil, notifs)
	a, err := svc.Apply(context.Background(), "j1", "w1")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationApplied, a.Status)
	notifs.AssertExpectations(t)
}

func TestApplyRejectsClosedJob(t *testing.T) {
	jobs := new(MockJobRepository)
	jobs.On("GetByID", mock.Anything, "j1").Return(domain.JobPost{
		ID: "j1", PropertyID: "p1", Status: domain.JobAssigned, Visibility: domain.JobPublic,
	}, nil)

	svc := newService(jobs, new(MockPropertyRepository), new(MockApplicationRepository), nil, nil)
	_, err := svc.Apply(context.Background(), "j1", "w1")
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestAcceptApplicationHiresAndRejectsOthers(t *testing.T) {
	jobs := new(MockJobRepository)
	props := new(MockPropertyRepository)
	apps := new(MockApplicationRepository)
	asg := new(MockAssignmentRepository)

	apps.On("GetByID", mock.Anything, "ap1").Return(domain.Application{
		ID: "ap1", JobID: "j1", WorkerID: "w1", Status: domain.ApplicationApplied,
	}, nil)
	jobs.On("GetByID", mock.Anything, "j1").Return(domain.JobPost{ID: "j1", PropertyID: "p1", Status: domain.JobOpen}, nil)
	props.On("GetByID", mock.Anything, "p1").Return(ownerProperty(), nil)
	jobs.On("SwapStatus", mock.Anything, mock.MatchedBy(func(got domain.JobPost) bool {
		return got.Status == domain.JobAssigned
	}), domain.JobOpen).Return(nil)
	asg.On("Create", mock.Anything, mock.MatchedBy(func(a domain.Assignment) bool {
		return a.JobID == "j1" && a.WorkerID == "w1" && a.Status == domain.AssignmentAssigned
	})).Return(nil)
	apps.On("UpdateStatus", mock.Anything, "ap1", domain.ApplicationAccepted).Return(nil)
	apps.On("RejectOthers", mock.Anything, "j1", "ap1").Return(nil)

	svc := newService(jobs, props, apps, asg, nil)
	a, err := svc.AcceptApplication(context.Background(), "ow1", "ap1")
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentAssigned, a.Status)
	apps.AssertExpectations(t)
	asg.AssertExpectations(t)
}

func TestListStatusGroupAndTieBreak(t *testing.T) {
	jobs := new(MockJobRepository)
	props := new(MockPropertyRepository)

	d := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	jobs.On("ListByOwner", mock.Anything, "ow1").Return([]domain.JobPost{
		{ID: "j5", PropertyID: "p1", Status: domain.JobOpen, JobDate: d},
		{ID: "j2", PropertyID: "p1", Status: domain.JobOpen, JobDate: d},
		{ID: "j3", PropertyID: "p1", Status: domain.JobAssigned, JobDate: d},
		{ID: "j1", PropertyID: "p1", Status: domain.JobInProgress, JobDate: d},
		{ID: "j4", PropertyID: "p1", Status: domain.JobCompleted, JobDate: d},
	}, nil)
	props.On("ListByOwner", mock.Anything, "ow1").Return([]domain.Property{ownerProperty()}, nil)

	svc := newService(jobs, props, nil, nil, nil)

	res, err := svc.List(context.Background(), "ow1", query.Filter{StatusGroup: "progress"}, query.Sort{}, query.Page{Page: 0, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)
	// equal job dates: id ascending
	assert.Equal(t, "j1", res.Items[0].ID)
	assert.Equal(t, "j3", res.Items[1].ID)
	assert.Equal(t, "Shibuya Apartment 101", res.Items[0].PropertyName)
}
