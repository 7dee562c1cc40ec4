package application

import (
	"context"
	"strings"
	"sync"

	"github.com/taskstack/taskstack/internal/domain/entity"
	repo "github.com/taskstack/taskstack/internal/domain/repository"
)

// In-memory repositories implementing the domain interfaces, mirroring the
// store-level error contracts (duplicate email, atomic ownership filter).

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*entity.User // keyed by lower-cased email
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
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

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.PublicUser, error) {
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

func (r *memUserRepo) List(_ context.Context) ([]entity.PublicUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.PublicUser, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, userID int64, newHash string) error {
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

type memTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*entity.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[int64]*entity.Task)}
}

func (r *memTaskRepo) Create(_ context.Context, ownerID int64, title string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.tasks[r.nextID] = &entity.Task{ID: r.nextID, Title: title, OwnerID: ownerID}
	return r.nextID, nil
}

func (r *memTaskRepo) Get(_ context.Context, taskID, ownerID int64) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return nil, repo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTaskRepo) ListForOwner(_ context.Context, ownerID int64) ([]entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Task, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if t, ok := r.tasks[id]; ok && t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) ListAll(_ context.Context) ([]entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Task, 0, len(r.tasks))
	for id := int64(1); id <= r.nextID; id++ {
		if t, ok := r.tasks[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Update(_ context.Context, taskID, ownerID int64, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return repo.ErrNotFound
	}
	t.Title = title
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, taskID, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return repo.ErrNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

var (
	_ repo.UserRepository = (*memUserRepo)(nil)
	_ repo.TaskRepository = (*memTaskRepo)(nil)
)
