package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskstack/taskstack/internal/domain/entity"
	"github.com/taskstack/taskstack/internal/domain/repository"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, ownerID int64, title string) (int64, error) {
	var id int64
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, user_id)
		VALUES ($1, $2)
		RETURNING id
	`, title, ownerID)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *TaskRepository) Get(ctx context.Context, taskID, ownerID int64) (*entity.Task, error) {
	t := &entity.Task{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, user_id
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, taskID, ownerID)
	if err := row.Scan(&t.ID, &t.Title, &t.OwnerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) ListForOwner(ctx context.Context, ownerID int64) ([]entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, user_id
		FROM tasks
		WHERE user_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *TaskRepository) ListAll(ctx context.Context) ([]entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, user_id
		FROM tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// Update filters by id AND user_id in one statement. A foreign task and a
// missing task both surface as ErrNotFound, so callers cannot probe existence.
func (r *TaskRepository) Update(ctx context.Context, taskID, ownerID int64, title string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $1
		WHERE id = $2 AND user_id = $3
	`, title, taskID, ownerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, taskID, ownerID int64) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`, taskID, ownerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanTasks(rows pgx.Rows) ([]entity.Task, error) {
	tasks := make([]entity.Task, 0)
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.OwnerID); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
