package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/taskstack/taskstack/internal/domain/entity"
	repo "github.com/taskstack/taskstack/internal/domain/repository"
)

var (
	ErrEmptyTitle = errors.New("title must not be empty")
	// ErrTaskNotFound deliberately covers both a missing task and a task owned
	// by another user.
	ErrTaskNotFound = errors.New("task not found or unauthorized")
)

// TaskService enforces title validation and ownership scoping on top of the
// repository. Ownership filtering lives in the store so it holds even if a
// route forgets the auth middleware.
type TaskService struct {
	Tasks  repo.TaskRepository
	Logger *logrus.Logger
}

func NewTaskService(tasks repo.TaskRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{Tasks: tasks, Logger: logger}
}

func (s *TaskService) Create(ctx context.Context, ownerID int64, title string) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, ErrEmptyTitle
	}
	id, err := s.Tasks.Create(ctx, ownerID, title)
	if err != nil {
		return 0, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"task_id": id, "user_id": ownerID}).Info("task created")
	}
	return id, nil
}

func (s *TaskService) Get(ctx context.Context, taskID, ownerID int64) (*entity.Task, error) {
	t, err := s.Tasks.Get(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TaskService) ListForOwner(ctx context.Context, ownerID int64) ([]entity.Task, error) {
	return s.Tasks.ListForOwner(ctx, ownerID)
}

// ListAll is privileged; the admin gate must run before this is reachable.
func (s *TaskService) ListAll(ctx context.Context) ([]entity.Task, error) {
	return s.Tasks.ListAll(ctx)
}

func (s *TaskService) Update(ctx context.Context, taskID, ownerID int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if err := s.Tasks.Update(ctx, taskID, ownerID, title); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			if s.Logger != nil {
				s.Logger.WithFields(logrus.Fields{"task_id": taskID, "user_id": ownerID}).Warn("update of missing or foreign task")
			}
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (s *TaskService) Delete(ctx context.Context, taskID, ownerID int64) error {
	if err := s.Tasks.Delete(ctx, taskID, ownerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			if s.Logger != nil {
				s.Logger.WithFields(logrus.Fields{"task_id": taskID, "user_id": ownerID}).Warn("delete of missing or foreign task")
			}
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}
