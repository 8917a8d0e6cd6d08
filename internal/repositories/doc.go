// Package repositories implements persistence for the task service.
//
// The [TaskRepository] interface is the storage contract the HTTP handlers
// depend on. Both implementations honor the same identity rule: ids ascend
// monotonically and are never reused, even across deletes.
//
// Key Implementations:
//   - [SQLTaskRepository] : SQLite persistence; AUTOINCREMENT enforces the no-reuse rule in sqlite_sequence
//   - [MemoryTaskRepository] : mutex-guarded map for handler tests and ephemeral serve runs
//
// Updates are partial: a [models.TaskPatch] carries pointer fields and only
// the non-nil ones are written, so a completion toggle never clobbers a
// concurrent rename. Absent ids surface as errors wrapping
// shared.ErrTaskNotFound, which the handler layer maps to 404 responses.
package repositories
