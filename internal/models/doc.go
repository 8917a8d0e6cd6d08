// Package models defines the domain entities shared by the task service
// and its clients.
//
// The package contains wire-level types only:
//   - [Task] : a task record as stored by the service and cached by clients
//   - [TaskPatch] : a partial update where nil fields mean "leave unchanged"
//
// JSON field names match the HTTP API exactly; both the server handlers and
// the store client marshal these types directly, so there is a single source
// of truth for the wire shape.
package models
