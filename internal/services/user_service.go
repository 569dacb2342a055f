package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pokerhub/pokerhub-backend/internal/identity"
	"github.com/pokerhub/pokerhub-backend/internal/models"
	repo "github.com/pokerhub/pokerhub-backend/internal/repository"
)

type UserService struct {
	r   repo.Users
	log *slog.Logger
}

func NewUserService(r repo.Users, log *slog.Logger) *UserService {
	return &UserService{r: r, log: log}
}

// CurrentUser resolves the application user for an authenticated principal,
// provisioning a row from the provider profile on first login. The insert is
// conflict-tolerant, so two concurrent first logins converge on one row.
func (s *UserService) CurrentUser(ctx context.Context, p identity.Principal) (models.User, error) {
	u, err := s.r.GetByID(ctx, p.ID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return models.User{}, err
	}

	nu := models.User{
		ID:       p.ID,
		Email:    p.Email,
		Username: p.FallbackUsername(),
	}
	if p.DisplayName != "" {
		nu.DisplayName = &p.DisplayName
	}
	if p.AvatarURL != "" {
		nu.AvatarURL = &p.AvatarURL
	}

	created, err := s.r.CreateIfAbsent(ctx, nu)
	if err != nil {
		return models.User{}, err
	}
	s.log.Info("user provisioned", "user_id", created.ID, "username", created.Username)
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.r.List(ctx)
}
