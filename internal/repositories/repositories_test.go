package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/tsk/internal/models"
	"github.com/desertthunder/tsk/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// implementations returns a fresh repository per backend so every contract
// test runs against both.
func implementations() map[string]func(t *testing.T) TaskRepository {
	return map[string]func(t *testing.T) TaskRepository{
		"SQL": func(t *testing.T) TaskRepository {
			t.Helper()
			db := setupTestDB(t)
			t.Cleanup(func() { db.Close() })
			return NewSQLTaskRepository(db)
		},
		"Memory": func(t *testing.T) TaskRepository {
			t.Helper()
			return NewMemoryTaskRepository()
		},
	}
}

func TestTaskRepository(t *testing.T) {
	for name, newRepo := range implementations() {
		t.Run(name, func(t *testing.T) {
			t.Run("Create Assigns Ascending Ids", func(t *testing.T) {
				repo := newRepo(t)

				first, err := repo.Create("Buy milk", false)
				if err != nil {
					t.Fatalf("failed to create task: %v", err)
				}
				second, err := repo.Create("Walk dog", true)
				if err != nil {
					t.Fatalf("failed to create task: %v", err)
				}

				if first.ID != 1 || second.ID != 2 {
					t.Errorf("ids = %d, %d, want 1, 2", first.ID, second.ID)
				}
				if first.Title != "Buy milk" || first.Completed {
					t.Errorf("first = %+v, want title kept and uncompleted", first)
				}
				if !second.Completed {
					t.Errorf("second should keep its completed flag")
				}
			})

			t.Run("Blank Titles Are Rejected", func(t *testing.T) {
				repo := newRepo(t)

				if _, err := repo.Create("", false); err == nil {
					t.Errorf("blank create should fail validation")
				}

				created, err := repo.Create("Buy milk", false)
				if err != nil {
					t.Fatalf("failed to create task: %v", err)
				}
				if _, err := repo.Update(created.ID, models.TitlePatch("  ")); err == nil {
					t.Errorf("blank title patch should fail validation")
				}

				got, err := repo.Get(created.ID)
				if err != nil {
					t.Fatalf("failed to get task: %v", err)
				}
				if got.Title != "Buy milk" {
					t.Errorf("failed update changed the title to %q", got.Title)
				}
			})

			t.Run("Ids Are Never Reused After Delete", func(t *testing.T) {
				repo := newRepo(t)

				if _, err := repo.Create("Buy milk", false); err != nil {
					t.Fatalf("failed to create task: %v", err)
				}
				second, err := repo.Create("Walk dog", false)
				if err != nil {
					t.Fatalf("failed to create task: %v", err)
				}
				if err := repo.Delete(second.ID); err != nil {
					t.Fatalf("failed to delete task: %v", err)
				}

				third, err := repo.Create("Water plants", false)
				if err != nil {
					t.Fatalf("failed to create task: %v", err)
				}
				if third.ID != 3 {
					t.Errorf("id = %d after delete, want 3", third.ID)
				}
			})

			t.Run("List Returns Ascending Ids", func(t *testing.T) {
				repo := newRepo(t)

				empty, err := repo.List()
				if err != nil {
					t.Fatalf("failed to list tasks: %v", err)
				}
				if empty == nil {
					t.Fatalf("empty list should be a non-nil slice")
				}
				if len(empty) != 0 {
					t.Fatalf("fresh repository listed %d tasks", len(empty))
				}

				for _, title := range []string{"Buy milk", "Walk dog", "Water plants"} {
					if _, err := repo.Create(title, false); err != nil {
						t.Fatalf("failed to create task: %v", err)
					}
				}

				tasks, err := repo.List()
				if err != nil {
					t.Fatalf("failed to list tasks: %v", err)
				}
				if len(tasks) != 3 {
					t.Fatalf("listed %d tasks, want 3", len(tasks))
				}
				for i, task := range tasks {
					if task.ID != int64(i+1) {
						t.Errorf("tasks[%d].ID = %d, want %d", i, task.ID, i+1)
					}
				}
			})

			t.Run("Get Returns The Stored Task", func(t *testing.T) {
				repo := newRepo(t)

				created, err := repo.Create("Buy milk", true)
				if err != nil {
					t.Fatalf("failed to create task: %v", err)
				}

				got, err := repo.Get(created.ID)
				if err != nil {
					t.Fatalf("failed to get task: %v", err)
				}
				if got.Title != "Buy milk" || !got.Completed {
					t.Errorf("got %+v, want the created task back", got)
				}

				if _, err := repo.Get(99); !errors.Is(err, shared.ErrTaskNotFound) {
					t.Errorf("Get(99) error = %v, want ErrTaskNotFound", err)
				}
			})

			t.Run("Update Patches Only The Given Fields", func(t *testing.T) {
				repo := newRepo(t)

				created, err := repo.Create("Buy milk", false)
				if err != nil {
					t.Fatalf("failed to create task: %v", err)
				}

				renamed, err := repo.Update(created.ID, models.TitlePatch("Buy oat milk"))
				if err != nil {
					t.Fatalf("failed to update title: %v", err)
				}
				if renamed.Title != "Buy oat milk" || renamed.Completed {
					t.Errorf("after title patch got %+v, want completion untouched", renamed)
				}

				toggled, err := repo.Update(created.ID, models.CompletedPatch(true))
				if err != nil {
					t.Fatalf("failed to update completion: %v", err)
				}
				if !toggled.Completed || toggled.Title != "Buy oat milk" {
					t.Errorf("after completed patch got %+v, want title untouched", toggled)
				}
			})

			t.Run("Update With An Empty Patch Returns The Task Unchanged", func(t *testing.T) {
				repo := newRepo(t)

				created, err := repo.Create("Buy milk", false)
				if err != nil {
					t.Fatalf("failed to create task: %v", err)
				}

				got, err := repo.Update(created.ID, models.TaskPatch{})
				if err != nil {
					t.Fatalf("empty patch failed: %v", err)
				}
				if got.Title != created.Title || got.Completed != created.Completed {
					t.Errorf("empty patch changed the task: %+v", got)
				}
			})

			t.Run("Update Missing Task Fails", func(t *testing.T) {
				repo := newRepo(t)

				if _, err := repo.Update(99, models.TitlePatch("Ghost")); !errors.Is(err, shared.ErrTaskNotFound) {
					t.Errorf("Update(99) error = %v, want ErrTaskNotFound", err)
				}
				if _, err := repo.Update(99, models.TaskPatch{}); !errors.Is(err, shared.ErrTaskNotFound) {
					t.Errorf("empty patch Update(99) error = %v, want ErrTaskNotFound", err)
				}
			})

			t.Run("Delete Removes The Task", func(t *testing.T) {
				repo := newRepo(t)

				created, err := repo.Create("Buy milk", false)
				if err != nil {
					t.Fatalf("failed to create task: %v", err)
				}

				if err := repo.Delete(created.ID); err != nil {
					t.Fatalf("failed to delete task: %v", err)
				}
				if _, err := repo.Get(created.ID); !errors.Is(err, shared.ErrTaskNotFound) {
					t.Errorf("Get after delete error = %v, want ErrTaskNotFound", err)
				}
				if err := repo.Delete(created.ID); !errors.Is(err, shared.ErrTaskNotFound) {
					t.Errorf("second delete error = %v, want ErrTaskNotFound", err)
				}
			})
		})
	}
}

func TestMemoryTaskRepositorySeeding(t *testing.T) {
	repo := NewMemoryTaskRepository(
		models.Task{ID: 5, Title: "Buy milk"},
		models.Task{ID: 2, Title: "Walk dog", Completed: true},
	)

	tasks, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != 2 || tasks[1].ID != 5 {
		t.Fatalf("seeded list = %+v, want ids 2 then 5", tasks)
	}

	created, err := repo.Create("Water plants", false)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if created.ID != 6 {
		t.Errorf("id = %d after seeding up to 5, want 6", created.ID)
	}
}
