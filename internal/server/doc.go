// Package server hosts the task service HTTP API behind a gin engine.
//
// # Endpoints
//
// All routes live under the /api prefix:
//   - GET /api/health reports service liveness
//   - GET /api/tasks lists every task in ascending id order
//   - POST /api/tasks creates a task from a JSON body
//   - GET /api/tasks/:id fetches a single task
//   - PUT and PATCH /api/tasks/:id apply a partial update
//   - DELETE /api/tasks/:id removes a task
//
// # Request Handling
//
// Bodies are decoded loosely. A missing or malformed JSON body reads as an
// empty object, so field validation (not parse errors) decides the response.
// The completed field accepts any JSON value and coerces it to a boolean,
// where 0, "", null, and false read as false.
//
// Error responses carry a JSON object with a single error field. Unknown ids
// and non-numeric id segments both answer 404.
//
// # Middleware
//
// Every request passes through request id tagging, structured request
// logging, permissive CORS for browser clients, and a token bucket rate
// limiter configured through [shared.ServerConfig].
//
// # Lifecycle
//
// [New] wires a [repositories.TaskRepository] into the engine and [Server.Run]
// serves until the context is cancelled, then drains in-flight requests
// through a graceful shutdown window.
package server
