package tasks

import (
	"cmp"
	"slices"
	"strings"

	"github.com/desertthunder/tsk/internal/models"
)

// NormalizeTitle trims surrounding whitespace from a task title.
// Create and save paths reject titles that normalize to the empty string.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

func compareByID(a, b models.Task) int {
	return cmp.Compare(a.ID, b.ID)
}

// Collection is the canonical in-memory task set, sorted by ascending id and
// unique by id. The zero value is an empty collection ready for use.
//
// Mutations apply one confirmed remote result against the current contents.
// Callers must not mutate a collection from a state captured before a network
// call resolved; every change derives from the collection as it stands when
// the result arrives.
type Collection struct {
	items []models.Task
}

// Replace swaps in a freshly loaded task set, sorting by id and dropping
// duplicate ids.
func (c *Collection) Replace(items []models.Task) {
	next := make([]models.Task, len(items))
	copy(next, items)
	slices.SortStableFunc(next, compareByID)
	next = slices.CompactFunc(next, func(a, b models.Task) bool { return a.ID == b.ID })
	c.items = next
}

// Append adds a confirmed new task. New tasks normally carry the highest id,
// so a plain append is the common case; a confirmation that arrives with a
// lower id is inserted at its sorted position, and an id already present is
// overwritten rather than duplicated.
func (c *Collection) Append(t models.Task) {
	if n := len(c.items); n == 0 || c.items[n-1].ID < t.ID {
		c.items = append(c.items, t)
		return
	}

	i, found := slices.BinarySearchFunc(c.items, t, compareByID)
	if found {
		c.items[i] = t
		return
	}
	c.items = slices.Insert(c.items, i, t)
}

// Update replaces the task with a matching id and reports whether one was
// found. A false return means the task was removed while the write was in
// flight; the confirmation is stale and dropped.
func (c *Collection) Update(t models.Task) bool {
	i, found := slices.BinarySearchFunc(c.items, t, compareByID)
	if !found {
		return false
	}
	c.items[i] = t
	return true
}

// RemoveByID removes the task with the given id via a predicate filter over
// the current contents and reports whether anything was removed. Identity
// keyed removal keeps concurrently resolving deletes from disturbing tasks
// whose positions shifted in the meantime.
func (c *Collection) RemoveByID(id int64) bool {
	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(t models.Task) bool { return t.ID == id })
	return len(c.items) != before
}

// Get returns the task with the given id.
func (c *Collection) Get(id int64) (models.Task, bool) {
	i, found := slices.BinarySearchFunc(c.items, models.Task{ID: id}, compareByID)
	if !found {
		return models.Task{}, false
	}
	return c.items[i], true
}

// Contains reports whether a task with the given id is present.
func (c *Collection) Contains(id int64) bool {
	_, found := c.Get(id)
	return found
}

// Len returns the number of tasks in the collection.
func (c *Collection) Len() int {
	return len(c.items)
}

// All returns a copy of every task in id order.
func (c *Collection) All() []models.Task {
	return slices.Clone(c.items)
}

// Visible returns the tasks the given filter admits, recomputed from the
// current collection on every call.
func (c *Collection) Visible(f Filter) []models.Task {
	out := make([]models.Task, 0, len(c.items))
	for _, t := range c.items {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// CompletedIDs returns a snapshot of the ids of every completed task,
// taken at call time. Bulk clear dispatches one delete per snapshot entry
// and never re-evaluates the set as deletions land.
func (c *Collection) CompletedIDs() []int64 {
	ids := make([]int64, 0, len(c.items))
	for _, t := range c.items {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// CompletedCount returns the number of completed tasks.
func (c *Collection) CompletedCount() int {
	n := 0
	for _, t := range c.items {
		if t.Completed {
			n++
		}
	}
	return n
}

// ActiveCount returns the number of tasks not yet completed.
func (c *Collection) ActiveCount() int {
	return len(c.items) - c.CompletedCount()
}
