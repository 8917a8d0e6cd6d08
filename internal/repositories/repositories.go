// package repositories provides persistence layer implementations for the task service.
package repositories

import (
	"github.com/desertthunder/tsk/internal/models"
)

// TaskRepository is the storage contract the HTTP handlers depend on.
//
// Implementations must keep ids strictly ascending and never reuse one,
// even after deletes. Clients order their collections by id and treat a
// fresh create as the newest task, so a recycled id would corrupt that
// ordering.
type TaskRepository interface {
	// List returns every task ordered by ascending id. The slice is
	// non-nil even when empty so it marshals to a JSON array.
	List() ([]models.Task, error)

	// Get returns one task, or an error wrapping shared.ErrTaskNotFound.
	Get(id int64) (*models.Task, error)

	// Create stores a new task and returns it with its assigned id.
	// The title is stored as given; callers trim it first.
	Create(title string, completed bool) (*models.Task, error)

	// Update applies the non-nil fields of the patch and returns the
	// stored task. An empty patch returns the task unchanged.
	Update(id int64, patch models.TaskPatch) (*models.Task, error)

	// Delete removes one task, or returns an error wrapping
	// shared.ErrTaskNotFound.
	Delete(id int64) error
}
