package auth

import (
	"context"
	"errors"
	"time"

	"cleanops/internal/domain"
	jwtsvc "cleanops/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type OwnerRepository interface {
	Create(ctx context.Context, o domain.Owner) error
	GetByID(ctx context.Context, id string) (domain.Owner, error)
	GetByEmail(ctx context.Context, email string) (domain.Owner, error)
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	Owner domain.Owner `json:"owner"`
}

type Service struct {
	owners OwnerRepository
	jwt    *jwtsvc.Service
	now    func() time.Time
}

func NewService(owners OwnerRepository, jwt *jwtsvc.Service) *Service {
	return &Service{
		owners: owners,
		jwt:    jwt,
		now:    time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (TokenResponse, error) {
	if _, err := s.owners.GetByEmail(ctx, req.Email); err == nil {
		return TokenResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return TokenResponse{}, err
	}

	o := domain.Owner{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		CreatedAt:    s.now(),
	}
	if err := s.owners.Create(ctx, o); err != nil {
		return TokenResponse{}, err
	}
	return s.issueToken(o)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	o, err := s.owners.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, ErrInvalidCredentials
		}
		return TokenResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(req.Password)) != nil {
		return TokenResponse{}, ErrInvalidCredentials
	}
	return s.issueToken(o)
}

func (s *Service) Me(ctx context.Context, ownerID string) (domain.Owner, error) {
	return s.owners.GetByID(ctx, ownerID)
}

func (s *Service) issueToken(o domain.Owner) (TokenResponse, error) {
	token, err := s.jwt.GenerateToken(o.ID)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{Token: token, Owner: o}, nil
}
