// package models defines the data model for the task tracker
package models

import (
	"fmt"
	"strings"
)

// Task is a single unit of work tracked by the service.
//
// The server owns identity: IDs are assigned on create, ascend over time,
// and are never reused. Clients treat Task values as confirmed snapshots
// of remote state.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Validate checks that the task carries a usable title.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task %d has an empty title", t.ID)
	}
	return nil
}

// TaskPatch describes a partial update to a task. Nil fields are left
// untouched by the server; only supplied fields change.
type TaskPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Completed == nil
}

// TitlePatch builds a patch that renames a task.
func TitlePatch(title string) TaskPatch {
	return TaskPatch{Title: &title}
}

// CompletedPatch builds a patch that sets the completion flag.
func CompletedPatch(completed bool) TaskPatch {
	return TaskPatch{Completed: &completed}
}

// HealthStatus is the service's health check payload.
type HealthStatus struct {
	Status string `json:"status"`
}

// OK reports whether the service declared itself healthy.
func (h *HealthStatus) OK() bool {
	return h != nil && h.Status == "ok"
}
