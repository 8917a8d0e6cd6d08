// Package tasks holds the client-side synchronization state for the task list.
//
// # Canonical Collection
//
// [Collection] is the client's cached copy of the remote store's task set,
// ordered by ascending id and unique by id. It changes only when a resolved
// remote operation is applied:
//
//  1. [Collection.Replace] : initial load result, wholesale
//  2. [Collection.Append] : confirmed create
//  3. [Collection.Update] : confirmed title or completion change
//  4. [Collection.RemoveByID] : confirmed delete
//
// Removal and update are keyed by identity rather than position, so
// operations that resolve out of order cannot clobber one another. An update
// or removal whose task has already left the collection is a no-op, not an
// error.
//
// # Derived Views
//
// [Filter] selects the visible subset (all, active, completed).
// [Collection.Visible] recomputes the projection from the current collection
// on every call and is never cached, so it cannot drift from canonical state.
//
// # Edit Sessions
//
// [EditSession] tracks the single in-progress title edit. Saving an empty or
// unchanged draft closes the session without a remote write.
// [EditSession.Reconcile] forces the session closed when its task is removed
// from the collection, so the session id always refers to a live task.
//
// # Bulk Clear
//
// [ClearCompleted] deletes a snapshot of completed task ids through a bounded,
// rate-limited worker pool. Each delete succeeds or fails on its own; one
// failure never aborts the rest of the batch.
package tasks
