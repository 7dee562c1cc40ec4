package handlers

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/taskstack/taskstack/internal/domain/entity"
	repo "github.com/taskstack/taskstack/internal/domain/repository"
)

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*entity.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := r.users[key]; ok {
		return repo.ErrDuplicateEmail
	}
	r.nextID++
	u.ID = r.nextID
	u.Email = key
	cp := *u
	r.users[key] = &cp
	return nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*entity.PublicUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			pub := u.Public()
			return &pub, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]entity.PublicUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.PublicUser, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == userID {
			u.Password = newHash
			return nil
		}
	}
	return repo.ErrNotFound
}

var _ repo.UserRepository = (*stubUserRepo)(nil)
