package shared

import "fmt"

var (
	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTaskNotFound       = fmt.Errorf("task not found")

	// Remote store errors. ErrTransport means the request never completed;
	// ErrServer means the store answered with a non-success status. Callers
	// surface both the same way and do not retry.
	ErrTransport = fmt.Errorf("request failed")
	ErrServer    = fmt.Errorf("task service error")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
