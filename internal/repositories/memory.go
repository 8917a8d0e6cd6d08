package repositories

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/desertthunder/tsk/internal/models"
	"github.com/desertthunder/tsk/internal/shared"
)

// MemoryTaskRepository implements [TaskRepository] on a mutex-guarded map.
//
// It backs ephemeral serve runs and handler tests. The id counter only
// moves forward, so the no-reuse guarantee matches the SQLite
// implementation.
type MemoryTaskRepository struct {
	mu     sync.Mutex
	tasks  map[int64]models.Task
	nextID int64
}

// NewMemoryTaskRepository creates an in-memory repository seeded with the
// given tasks. The next assigned id is one past the highest seeded id.
func NewMemoryTaskRepository(seed ...models.Task) *MemoryTaskRepository {
	r := &MemoryTaskRepository{
		tasks:  make(map[int64]models.Task, len(seed)),
		nextID: 1,
	}
	for _, t := range seed {
		r.tasks[t.ID] = t
		if t.ID >= r.nextID {
			r.nextID = t.ID + 1
		}
	}
	return r
}

// List retrieves all tasks ordered by ascending id
func (r *MemoryTaskRepository) List() ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := make([]models.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		tasks = append(tasks, t)
	}
	slices.SortFunc(tasks, func(a, b models.Task) int { return cmp.Compare(a.ID, b.ID) })
	return tasks, nil
}

// Get retrieves a task by id
func (r *MemoryTaskRepository) Get(id int64) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", shared.ErrTaskNotFound, id)
	}
	return &t, nil
}

// Create stores a new task and returns it with its assigned id
func (r *MemoryTaskRepository) Create(title string, completed bool) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := models.Task{ID: r.nextID, Title: title, Completed: completed}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	r.nextID++
	r.tasks[t.ID] = t
	return &t, nil
}

// Update applies the patch to an existing task and returns the stored task
func (r *MemoryTaskRepository) Update(id int64, patch models.TaskPatch) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", shared.ErrTaskNotFound, id)
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	r.tasks[id] = t
	return &t, nil
}

// Delete removes a task by id
func (r *MemoryTaskRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return fmt.Errorf("%w: %d", shared.ErrTaskNotFound, id)
	}
	delete(r.tasks, id)
	return nil
}
