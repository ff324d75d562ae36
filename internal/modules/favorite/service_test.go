package favorite

import (
	"context"
	"testing"
	"time"

	"cleanops/internal/domain"
	"cleanops/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, f domain.Favorite) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, ownerID, workerID string) error {
	args := m.Called(ctx, ownerID, workerID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Favorite, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, ownerID, workerID string) (bool, error) {
	args := m.Called(ctx, ownerID, workerID)
	return args.Bool(0), args.Error(1)
}

type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) GetByID(ctx context.Context, id string) (domain.Worker, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Worker), args.Error(1)
}

func newService(favs *MockFavoriteRepository, workers *MockWorkerRepository) *Service {
	svc := NewService(favs, workers)
	svc.now = func() time.Time { return time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestAddFavorite(t *testing.T) {
	favs := new(MockFavoriteRepository)
	workers := new(MockWorkerRepository)
	workers.On("GetByID", mock.Anything, "w1").Return(domain.Worker{ID: "w1", Name: "Sato"}, nil)
	favs.On("Add", mock.Anything, mock.MatchedBy(func(f domain.Favorite) bool {
		return f.OwnerID == "ow1" && f.WorkerID == "w1"
	})).Return(nil)

	svc := newService(favs, workers)
	f, err := svc.Add(context.Background(), "ow1", "w1")
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
}

func TestAddFavoriteTwiceIsNoOp(t *testing.T) {
	favs := new(MockFavoriteRepository)
	workers := new(MockWorkerRepository)
	workers.On("GetByID", mock.Anything, "w1").Return(domain.Worker{ID: "w1"}, nil)
	favs.On("Add", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	svc := newService(favs, workers)
	_, err := svc.Add(context.Background(), "ow1", "w1")
	assert.NoError(t, err)
}

func TestAddFavoriteUnknownWorker(t *testing.T) {
	favs := new(MockFavoriteRepository)
	workers := new(MockWorkerRepository)
	workers.On("GetByID", mock.Anything, "ghost").Return(domain.Worker{}, gorm.ErrRecordNotFound)

	svc := newService(favs, workers)
	_, err := svc.Add(context.Background(), "ow1", "ghost")
	assert.ErrorIs(t, err, ErrUnknownWorker)
	favs.AssertNotCalled(t, "Add")
}

func TestListJoinsWorkerProfile(t *testing.T) {
	favs := new(MockFavoriteRepository)
	workers := new(MockWorkerRepository)
	favs.On("ListByOwner", mock.Anything, "ow1").Return([]domain.Favorite{
		{ID: "f1", OwnerID: "ow1", WorkerID: "w1"},
	}, nil)
	workers.On("GetByID", mock.Anything, "w1").Return(domain.Worker{
		ID: "w1", Name: "Sato", Rating: 4.6, RatingCount: 12,
	}, nil)

	svc := newService(favs, workers)
	views, err := svc.List(context.Background(), "ow1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Sato", views[0].WorkerName)
	assert.Equal(t, 4.6, views[0].Rating)
}
