package property

import (
	"context"
	"errors"
	"time"

	"cleanops/internal/domain"
	"cleanops/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	properties PropertyRepository
	now        func() time.Time
}

func NewService(properties PropertyRepository) *Service {
	return &Service{
		properties: properties,
		now:        time.Now,
	}
}

func (s *Service) Create(ctx context.Context, ownerID string, req CreatePropertyRequest) (domain.Property, error) {
	now := s.now()
	p := domain.Property{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       req.Name,
		Address:    req.Address,
		AccessNote: req.AccessNote,
		DoorCode:   req.DoorCode,
		Lat:        req.Lat,
		Lng:        req.Lng,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if verr := p.Validate(); verr != nil {
		return domain.Property{}, verr
	}
	if err := s.properties.Create(ctx, p); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, req UpdatePropertyRequest) (domain.Property, error) {
	p, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return domain.Property{}, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.AccessNote != nil {
		p.AccessNote = *req.AccessNote
	}
	if req.DoorCode != nil {
		p.DoorCode = *req.DoorCode
	}
	if req.Lat != nil {
		p.Lat = req.Lat
	}
	if req.Lng != nil {
		p.Lng = req.Lng
	}
	p.UpdatedAt = s.now()

	if verr := p.Validate(); verr != nil {
		return domain.Property{}, verr
	}
	if err := s.properties.Update(ctx, p); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

// List searches the owner's properties. Free text matches the name and the
// address.
func (s *Service) List(ctx context.Context, ownerID string, f query.Filter, sort query.Sort, page query.Page) (query.Result[domain.Property], error) {
	props, err := s.properties.ListByOwner(ctx, ownerID)
	if err != nil {
		return query.Result[domain.Property]{}, err
	}

	schema := query.Schema[domain.Property]{
		ID: func(p domain.Property) string { return p.ID },
		TextFields: []func(domain.Property) string{
			func(p domain.Property) string { return p.Name },
			func(p domain.Property) string { return p.Address },
		},
		Date: func(p domain.Property) time.Time { return p.CreatedAt },
		SortKeys: map[string]func(a, b domain.Property) int{
			"name":       func(a, b domain.Property) int { return query.CompareString(a.Name, b.Name) },
			"created_at": func(a, b domain.Property) int { return query.CompareTime(a.CreatedAt, b.CreatedAt) },
		},
	}
	if sort.Field == "" {
		sort = query.Sort{Field: "name", Direction: query.Asc}
	}
	return query.Apply(props, f, sort, page, schema)
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (domain.Property, error) {
	return s.owned(ctx, ownerID, id)
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.properties.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) owned(ctx context.Context, ownerID, id string) (domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Property{}, ErrNotFound
		}
		return domain.Property{}, err
	}
	if p.OwnerID != ownerID {
		return domain.Property{}, ErrForbidden
	}
	return p, nil
}
