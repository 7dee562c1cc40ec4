package repository

import (
	"context"
	"errors"

	"github.com/taskstack/taskstack/internal/domain/entity"
)

// Store-level failure kinds shared by implementations.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines persistence operations for user credentials.
type UserRepository interface {
	// Create inserts the user and fills in the assigned ID.
	// Returns ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.PublicUser, error)
	List(ctx context.Context) ([]entity.PublicUser, error)
	UpdatePassword(ctx context.Context, userID int64, newHash string) error
}
