// package testing contains shared testing utilities
package testing

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"sync"
	"testing"

	"github.com/desertthunder/tsk/internal/models"
	"github.com/desertthunder/tsk/internal/shared"
)

// FakeAPI is an in-memory test double for the task store client, satisfying
// services.TaskAPI without any network. It mirrors the real store's
// contract: ids are assigned on create and never reused, new tasks start
// uncompleted, and operations on absent ids fail the way a 404 surfaces
// through the HTTP client.
type FakeAPI struct {
	mu     sync.Mutex
	tasks  map[int64]models.Task
	nextID int64

	// Per-method error injection. A non-nil error is returned without
	// touching the store.
	ListErr   error
	CreateErr error
	GetErr    error
	UpdateErr error
	DeleteErr error
	HealthErr error

	// DeleteErrs fails deletes of specific ids so a bulk run can mix
	// success and failure in one batch. Takes precedence over DeleteErr.
	DeleteErrs map[int64]error

	// Call counters.
	ListCalls   int
	CreateCalls int
	GetCalls    int
	UpdateCalls int
	DeleteCalls int
}

// NewFakeAPI creates a fake store seeded with the given tasks. The next
// assigned id is one past the highest seeded id.
func NewFakeAPI(seed ...models.Task) *FakeAPI {
	f := &FakeAPI{
		tasks:  make(map[int64]models.Task, len(seed)),
		nextID: 1,
	}
	for _, t := range seed {
		f.tasks[t.ID] = t
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
	}
	return f
}

func (f *FakeAPI) ListTasks(ctx context.Context) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	out := make([]models.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b models.Task) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (f *FakeAPI) CreateTask(ctx context.Context, title string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls++
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	t := models.Task{ID: f.nextID, Title: title, Completed: false}
	f.nextID++
	f.tasks[t.ID] = t
	return &t, nil
}

func (f *FakeAPI) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.GetCalls++
	if f.GetErr != nil {
		return nil, f.GetErr
	}

	t, ok := f.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: status 404", shared.ErrServer)
	}
	return &t, nil
}

func (f *FakeAPI) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.UpdateCalls++
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}

	t, ok := f.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: status 404", shared.ErrServer)
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	f.tasks[id] = t
	return &t, nil
}

func (f *FakeAPI) DeleteTask(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.DeleteCalls++
	if err, ok := f.DeleteErrs[id]; ok {
		return err
	}
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	if _, ok := f.tasks[id]; !ok {
		return fmt.Errorf("%w: status 404", shared.ErrServer)
	}
	delete(f.tasks, id)
	return nil
}

func (f *FakeAPI) Health(ctx context.Context) (*models.HealthStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.HealthErr != nil {
		return nil, f.HealthErr
	}
	return &models.HealthStatus{Status: "ok"}, nil
}

// Tasks returns a snapshot of the stored tasks sorted by id.
func (f *FakeAPI) Tasks() []models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b models.Task) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Has reports whether a task with the given id is stored.
func (f *FakeAPI) Has(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.tasks[id]
	return ok
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
