package review

import (
	"context"
	"math"
	"testing"
	"time"

	"cleanops/internal/domain"
	"cleanops/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv domain.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Review, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByWorker(ctx context.Context, workerID string) ([]domain.Review, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id string) (domain.Assignment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Assignment), args.Error(1)
}

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (domain.JobPost, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.JobPost), args.Error(1)
}

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (domain.Property, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Property), args.Error(1)
}

type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) GetByID(ctx context.Context, id string) (domain.Worker, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Worker), args.Error(1)
}

func (m *MockWorkerRepository) UpdateRating(ctx context.Context, workerID string, rating float64, count int) error {
	args := m.Called(ctx, workerID, rating, count)
	return args.Error(0)
}

func newService(reviews *MockReviewRepository, asg *MockAssignmentRepository, jobs *MockJobRepository, props *MockPropertyRepository, workers *MockWorkerRepository) *Service {
	svc := NewService(reviews, asg, jobs, props, workers)
	svc.now = func() time.Time { return time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC) }
	return svc
}

func expectOwnedApproved(asg *MockAssignmentRepository, jobs *MockJobRepository, props *MockPropertyRepository, status domain.AssignmentStatus) {
	asg.On("GetByID", mock.Anything, "as1").Return(domain.Assignment{
		ID: "as1", JobID: "j1", WorkerID: "w1", Status: status,
	}, nil)
	jobs.On("GetByID", mock.Anything, "j1").Return(domain.JobPost{ID: "j1", PropertyID: "p1"}, nil)
	props.On("GetByID", mock.Anything, "p1").Return(domain.Property{ID: "p1", OwnerID: "ow1"}, nil)
}

func TestCreateReviewUpdatesRunningAverage(t *testing.T) {
	reviews := new(MockReviewRepository)
	asg := new(MockAssignmentRepository)
	jobs := new(MockJobRepository)
	props := new(MockPropertyRepository)
	workers := new(MockWorkerRepository)

	expectOwnedApproved(asg, jobs, props, domain.AssignmentApproved)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv domain.Review) bool {
		return rv.AssignmentID == "as1" && rv.WorkerID == "w1" && rv.Rating == 5
	})).Return(nil)
	// (4.5*2 + 5) / 3 keeps full precision
	workers.On("GetByID", mock.Anything, "w1").Return(domain.Worker{ID: "w1", Rating: 4.5, RatingCount: 2}, nil)
	workers.On("UpdateRating", mock.Anything, "w1", mock.MatchedBy(func(r float64) bool {
		return math.Abs(r-14.0/3.0) < 1e-9
	}), 3).Return(nil)

	svc := newService(reviews, asg, jobs, props, workers)
	rv, err := svc.Create(context.Background(), "ow1", CreateReviewRequest{
		AssignmentID: "as1",
		Rating:       5,
		Comment:      "Spotless.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rv.ID)
	workers.AssertExpectations(t)
}

func TestCreateReviewFirstRating(t *testing.T) {
	reviews := new(MockReviewRepository)
	asg := new(MockAssignmentRepository)
	jobs := new(MockJobRepository)
	props := new(MockPropertyRepository)
	workers := new(MockWorkerRepository)

	expectOwnedApproved(asg, jobs, props, domain.AssignmentApproved)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	workers.On("GetByID", mock.Anything, "w1").Return(domain.Worker{ID: "w1"}, nil)
	workers.On("UpdateRating", mock.Anything, "w1", 4.0, 1).Return(nil)

	svc := newService(reviews, asg, jobs, props, workers)
	_, err := svc.Create(context.Background(), "ow1", CreateReviewRequest{AssignmentID: "as1", Rating: 4})
	require.NoError(t, err)
	workers.AssertExpectations(t)
}

func TestCreateReviewRequiresApproval(t *testing.T) {
	reviews := new(MockReviewRepository)
	asg := new(MockAssignmentRepository)
	jobs := new(MockJobRepository)
	props := new(MockPropertyRepository)

	expectOwnedApproved(asg, jobs, props, domain.AssignmentSubmitted)

	svc := newService(reviews, asg, jobs, props, new(MockWorkerRepository))
	_, err := svc.Create(context.Background(), "ow1", CreateReviewRequest{AssignmentID: "as1", Rating: 4})
	assert.ErrorIs(t, err, ErrNotApproved)
	reviews.AssertNotCalled(t, "Create")
}

func TestCreateReviewOncePerAssignment(t *testing.T) {
	reviews := new(MockReviewRepository)
	asg := new(MockAssignmentRepository)
	jobs := new(MockJobRepository)
	props := new(MockPropertyRepository)
	workers := new(MockWorkerRepository)

	expectOwnedApproved(asg, jobs, props, domain.AssignmentApproved)
	reviews.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	svc := newService(reviews, asg, jobs, props, workers)
	_, err := svc.Create(context.Background(), "ow1", CreateReviewRequest{AssignmentID: "as1", Rating: 4})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	workers.AssertNotCalled(t, "UpdateRating")
}
