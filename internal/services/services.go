// package services defines the client contract for the remote task store.
package services

import (
	"context"

	"github.com/desertthunder/tsk/internal/models"
)

// TaskAPI defines the operations a remote task store exposes to clients.
// Calls are independent: the store holds no session and guarantees no
// ordering across calls.
type TaskAPI interface {
	// ListTasks retrieves every task, ordered by ascending id.
	ListTasks(ctx context.Context) ([]models.Task, error)

	// CreateTask creates a task with the given title. The store assigns the
	// id and the task starts uncompleted.
	CreateTask(ctx context.Context, title string) (*models.Task, error)

	// GetTask retrieves a single task by id.
	GetTask(ctx context.Context, id int64) (*models.Task, error)

	// UpdateTask applies a partial update: only fields set on the patch
	// change. Returns the full updated record.
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)

	// DeleteTask removes a task by id. A success response carries no body.
	DeleteTask(ctx context.Context, id int64) error

	// Health reports whether the store is reachable and serving.
	Health(ctx context.Context) (*models.HealthStatus, error)
}
