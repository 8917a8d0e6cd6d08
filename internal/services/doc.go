// Package services defines the [TaskAPI] interface for the remote task store and implements it over HTTP.
//
// # TaskAPI Interface
//
// One abstraction covers every store operation (list, create, get, update,
// delete, health), so the TUI, the one-shot CLI commands, and tests all
// consume the same surface.
//
// # HTTP Implementation
//
// [Client] talks to the store's REST endpoints under a configurable base
// URL (default http://localhost:8080/api). All methods route through a
// single doRequest helper; calls are stateless and carry no session.
//
// # Error Handling
//
// The client maps failures onto two kinds from the shared package:
//   - [shared.ErrTransport] : the request never completed (dial, reset, body read)
//   - [shared.ErrServer] : the store answered with a non-success status
//
// The store reports not-found and validation failures as plain non-success
// statuses, so the client does not parse error bodies or distinguish
// further. Callers surface the message and move on; nothing retries.
//
// # Response Decoding
//
// Success bodies decode into [models.Task] records. A 204 delete response
// has no body and decodes into nothing; that is a success, not an error.
package services
