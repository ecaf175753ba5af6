package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mdiaw/bibliotheque/internal/auth"
	"github.com/mdiaw/bibliotheque/internal/models"
	repo "github.com/mdiaw/bibliotheque/internal/repository"
)

// ErrInvalidCredentials covers unknown username and wrong password
// alike; login never reveals which one failed.
var ErrInvalidCredentials = errors.New("identifiants invalides")

type UserService struct {
	users repo.Users
}

func NewUserService(users repo.Users) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, username, email, address, password string) (models.User, error) {
	u := models.User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Address:  strings.TrimSpace(address),
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if password == "" {
		return models.User{}, errors.New("mot de passe requis")
	}

	if _, err := s.users.GetByUsername(ctx, u.Username); err == nil {
		return models.User{}, repo.ErrDuplicateUsername
	} else if !errors.Is(err, repo.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return s.users.Create(ctx, u.Username, u.Email, u.Address, hash, false)
}

func (s *UserService) Login(ctx context.Context, username, password string) (models.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
