package ui

import (
	"github.com/desertthunder/tsk/internal/models"
)

// Messages carry the resolution of one remote call back into the update
// loop. Each holds either the confirmed record or the error; canonical state
// changes only when one of these is applied.

// tasksLoadedMsg resolves the initial load (and manual reloads).
type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

// taskCreatedMsg resolves a create. On success the confirmed task is
// appended to the collection.
type taskCreatedMsg struct {
	task *models.Task
	err  error
}

// taskSavedMsg resolves a title save from an edit session.
type taskSavedMsg struct {
	task *models.Task
	err  error
}

// taskToggledMsg resolves a completion toggle.
type taskToggledMsg struct {
	task *models.Task
	err  error
}

// taskDeletedMsg resolves one delete. Bulk clear produces one of these per
// dispatched id; each is applied independently in whatever order it lands.
type taskDeletedMsg struct {
	id  int64
	err error
}
