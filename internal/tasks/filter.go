package tasks

import (
	"fmt"
	"strings"

	"github.com/desertthunder/tsk/internal/models"
	"github.com/desertthunder/tsk/internal/shared"
)

// Filter selects which tasks a view shows. It is pure view state, never
// persisted remotely.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// String returns the filter name as it appears in the UI and on the CLI.
func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Matches reports whether the filter admits the given task.
func (f Filter) Matches(t models.Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// ParseFilter maps a user-supplied name to a Filter. The empty string means
// FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed":
		return FilterCompleted, nil
	default:
		return FilterAll, fmt.Errorf("%w: unknown filter %q (want all, active, or completed)", shared.ErrInvalidArgument, s)
	}
}
