package service

import (
	"context"
	"log/slog"
	"time"

	"ctchen222/signup-form/internal/api/models"
	"ctchen222/signup-form/internal/api/repository"

	"github.com/google/uuid"
)

// RegistrationService accepts registrations for the stub API.
type RegistrationService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Registration, error)
}

type registrationService struct {
	repo repository.RegistrationRepository
	now  func() time.Time
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(repo repository.RegistrationRepository) RegistrationService {
	return &registrationService{repo: repo, now: time.Now}
}

// Register records req. It returns repository.ErrDuplicateEmail when the
// email is already taken.
func (s *registrationService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Registration, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, repository.ErrDuplicateEmail
	}

	reg := &models.Registration{
		ID:        uuid.New().String(),
		Email:     req.Email,
		DOB:       req.DOB,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, reg, req.Password); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "registration accepted", "id", reg.ID)
	return reg, nil
}
