package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskstack/taskstack/internal/domain/entity"
	repo "github.com/taskstack/taskstack/internal/domain/repository"
	"github.com/taskstack/taskstack/pkg/helpers"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService owns registration, login and the user listing.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

// Register hashes the password and persists the user.
// Returns repository.ErrDuplicateEmail when the email is taken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (entity.PublicUser, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return entity.PublicUser{}, err
	}
	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return entity.PublicUser{}, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	}
	return u.Public(), nil
}

// Login validates credentials and issues a bearer token.
// An unknown email yields ErrUserNotFound; a wrong password ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, entity.PublicUser, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", time.Time{}, entity.PublicUser{}, ErrUserNotFound
		}
		return "", time.Time{}, entity.PublicUser{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, entity.PublicUser{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateToken(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		}
		return "", time.Time{}, entity.PublicUser{}, err
	}
	return token, exp, u.Public(), nil
}

// ListUsers returns the public projection of every user.
func (s *AuthService) ListUsers(ctx context.Context) ([]entity.PublicUser, error) {
	return s.Users.List(ctx)
}

// GetUser returns the public projection of one user by id.
func (s *AuthService) GetUser(ctx context.Context, id int64) (entity.PublicUser, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.PublicUser{}, ErrUserNotFound
		}
		return entity.PublicUser{}, err
	}
	return *u, nil
}
