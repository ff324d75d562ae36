package favorite

import (
	"context"
	"errors"
	"time"

	"cleanops/internal/domain"
	"cleanops/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownWorker = errors.New("unknown worker")

// View is a favorite row joined with the worker's current profile.
type View struct {
	domain.Favorite
	WorkerName  string  `json:"worker_name"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
}

type Service struct {
	favorites FavoriteRepository
	workers   WorkerRepository
	now       func() time.Time
}

func NewService(favorites FavoriteRepository, workers WorkerRepository) *Service {
	return &Service{
		favorites: favorites,
		workers:   workers,
		now:       time.Now,
	}
}

// Add pins a worker. Adding twice is a no-op thanks to the unique
// owner+worker index.
func (s *Service) Add(ctx context.Context, ownerID, workerID string) (domain.Favorite, error) {
	if _, err := s.workers.GetByID(ctx, workerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Favorite{}, ErrUnknownWorker
		}
		return domain.Favorite{}, err
	}

	f := domain.Favorite{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		WorkerID:  workerID,
		CreatedAt: s.now(),
	}
	if err := s.favorites.Add(ctx, f); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return f, nil
		}
		return domain.Favorite{}, err
	}
	return f, nil
}

func (s *Service) Remove(ctx context.Context, ownerID, workerID string) error {
	return s.favorites.Remove(ctx, ownerID, workerID)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]View, error) {
	favorites, err := s.favorites.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(favorites))
	for _, f := range favorites {
		v := View{Favorite: f}
		if w, werr := s.workers.GetByID(ctx, f.WorkerID); werr == nil {
			v.WorkerName = w.Name
			v.Rating = w.Rating
			v.RatingCount = w.RatingCount
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *Service) Check(ctx context.Context, ownerID, workerID string) (bool, error) {
	return s.favorites.Exists(ctx, ownerID, workerID)
}
