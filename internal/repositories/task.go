package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/tsk/internal/models"
	"github.com/desertthunder/tsk/internal/shared"
)

// SQLTaskRepository implements [TaskRepository] on SQLite.
//
// The tasks table uses AUTOINCREMENT, so SQLite tracks the high-water mark
// in sqlite_sequence and a deleted task's id is never handed out again.
type SQLTaskRepository struct {
	db *sql.DB
}

// NewSQLTaskRepository creates a new SQLTaskRepository with the given database connection
func NewSQLTaskRepository(db *sql.DB) *SQLTaskRepository {
	return &SQLTaskRepository{db: db}
}

// List retrieves all tasks ordered by ascending id
func (r *SQLTaskRepository) List() ([]models.Task, error) {
	query := `
		SELECT id, title, completed
		FROM tasks
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tasks, nil
}

// Get retrieves a task by id
func (r *SQLTaskRepository) Get(id int64) (*models.Task, error) {
	query := `
		SELECT id, title, completed
		FROM tasks
		WHERE id = ?
	`

	var t models.Task
	err := r.db.QueryRow(query, id).Scan(&t.ID, &t.Title, &t.Completed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", shared.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}

	return &t, nil
}

// Create inserts a new task and returns it with its assigned id
func (r *SQLTaskRepository) Create(title string, completed bool) (*models.Task, error) {
	t := models.Task{Title: title, Completed: completed}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO tasks (title, completed)
		VALUES (?, ?)
	`

	result, err := r.db.Exec(query, title, completed)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted id: %w", err)
	}

	t.ID = id
	return &t, nil
}

// Update applies the patch to an existing task and returns the stored row
func (r *SQLTaskRepository) Update(id int64, patch models.TaskPatch) (*models.Task, error) {
	if patch.IsZero() {
		return r.Get(id)
	}

	if patch.Title != nil {
		draft := models.Task{ID: id, Title: *patch.Title}
		if err := draft.Validate(); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
	}

	query := "UPDATE tasks SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if patch.Title != nil {
		query += ", title = ?"
		args = append(args, *patch.Title)
	}
	if patch.Completed != nil {
		query += ", completed = ?"
		args = append(args, *patch.Completed)
	}

	query += " WHERE id = ?"
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: %d", shared.ErrTaskNotFound, id)
	}

	return r.Get(id)
}

// Delete removes a task by id
func (r *SQLTaskRepository) Delete(id int64) error {
	query := `
		DELETE FROM tasks
		WHERE id = ?
	`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", shared.ErrTaskNotFound, id)
	}

	return nil
}
