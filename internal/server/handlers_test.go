package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/desertthunder/tsk/internal/models"
	"github.com/desertthunder/tsk/internal/repositories"
	"github.com/desertthunder/tsk/internal/shared"
)

// newTestServer builds a Server over an in-memory repository so handler
// tests exercise the real middleware and routing.
func newTestServer(seed ...models.Task) *Server {
	gin.SetMode(gin.TestMode)
	return New(shared.DefaultConfig(), shared.NewLogger(io.Discard), repositories.NewMemoryTaskRepository(seed...))
}

func do(ts *Server, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) models.Task {
	t.Helper()
	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode task from %q: %v", w.Body.String(), err)
	}
	return task
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error from %q: %v", w.Body.String(), err)
	}
	return resp["error"]
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer()

	w := do(ts, http.MethodGet, "/api/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode health body: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %q, want ok", resp["status"])
	}
}

func TestHandleListTasks(t *testing.T) {
	t.Run("Empty Store Returns An Empty Array", func(t *testing.T) {
		ts := newTestServer()

		w := do(ts, http.MethodGet, "/api/tasks", "")

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if got := strings.TrimSpace(w.Body.String()); got != "[]" {
			t.Errorf("body = %q, want an empty JSON array", got)
		}
	})

	t.Run("Returns Tasks In Ascending Id Order", func(t *testing.T) {
		ts := newTestServer(
			models.Task{ID: 2, Title: "Walk dog", Completed: true},
			models.Task{ID: 1, Title: "Buy milk"},
		)

		w := do(ts, http.MethodGet, "/api/tasks", "")

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var tasks []models.Task
		if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
			t.Fatalf("failed to decode tasks: %v", err)
		}
		if len(tasks) != 2 || tasks[0].ID != 1 || tasks[1].ID != 2 {
			t.Errorf("tasks = %+v, want ids 1 then 2", tasks)
		}
	})
}

func TestHandleCreateTask(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		check      func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:       "Creates A Task",
			body:       `{"title":"Buy milk"}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				task := decodeTask(t, w)
				if task.ID != 1 || task.Title != "Buy milk" || task.Completed {
					t.Errorf("task = %+v, want id 1, title kept, uncompleted", task)
				}
			},
		},
		{
			name:       "Trims Surrounding Whitespace",
			body:       `{"title":"  Buy milk  "}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if task := decodeTask(t, w); task.Title != "Buy milk" {
					t.Errorf("title = %q, want trimmed", task.Title)
				}
			},
		},
		{
			name:       "Accepts An Initial Completed Flag",
			body:       `{"title":"Walk dog","completed":true}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if task := decodeTask(t, w); !task.Completed {
					t.Errorf("completed flag was dropped on create")
				}
			},
		},
		{
			name:       "Missing Title Is Rejected",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if got := decodeErr(t, w); got != "title is required" {
					t.Errorf("error = %q, want title is required", got)
				}
			},
		},
		{
			name:       "Blank Title Is Rejected",
			body:       `{"title":"   "}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if got := decodeErr(t, w); got != "title is required" {
					t.Errorf("error = %q, want title is required", got)
				}
			},
		},
		{
			name:       "Null Title Is Rejected",
			body:       `{"title":null}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if got := decodeErr(t, w); got != "title is required" {
					t.Errorf("error = %q, want title is required", got)
				}
			},
		},
		{
			name:       "Malformed Body Reads As Empty",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if got := decodeErr(t, w); got != "title is required" {
					t.Errorf("error = %q, want title is required", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()

			w := do(ts, http.MethodPost, "/api/tasks", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %q)", w.Code, tt.wantStatus, w.Body.String())
			}
			tt.check(t, w)
		})
	}
}

func TestHandleGetTask(t *testing.T) {
	t.Run("Returns The Task", func(t *testing.T) {
		ts := newTestServer(models.Task{ID: 7, Title: "Buy milk", Completed: true})

		w := do(ts, http.MethodGet, "/api/tasks/7", "")

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		task := decodeTask(t, w)
		if task.ID != 7 || task.Title != "Buy milk" || !task.Completed {
			t.Errorf("task = %+v, want the seeded task", task)
		}
	})

	t.Run("Missing Task Is A 404", func(t *testing.T) {
		ts := newTestServer()

		w := do(ts, http.MethodGet, "/api/tasks/99", "")

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
		if got := decodeErr(t, w); got != "task not found" {
			t.Errorf("error = %q, want task not found", got)
		}
	})

	t.Run("Non Numeric Id Is A 404", func(t *testing.T) {
		ts := newTestServer()

		if w := do(ts, http.MethodGet, "/api/tasks/abc", ""); w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestHandleUpdateTask(t *testing.T) {
	t.Run("Patch Renames Without Touching Completion", func(t *testing.T) {
		ts := newTestServer(models.Task{ID: 1, Title: "Buy milk", Completed: true})

		w := do(ts, http.MethodPatch, "/api/tasks/1", `{"title":"Buy oat milk"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %q)", w.Code, w.Body.String())
		}
		task := decodeTask(t, w)
		if task.Title != "Buy oat milk" || !task.Completed {
			t.Errorf("task = %+v, want renamed and still completed", task)
		}
	})

	t.Run("Patch Toggles Completion Without Touching The Title", func(t *testing.T) {
		ts := newTestServer(models.Task{ID: 1, Title: "Buy milk"})

		w := do(ts, http.MethodPatch, "/api/tasks/1", `{"completed":true}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		task := decodeTask(t, w)
		if !task.Completed || task.Title != "Buy milk" {
			t.Errorf("task = %+v, want completed with title kept", task)
		}
	})

	t.Run("Put Is A Patch Alias", func(t *testing.T) {
		ts := newTestServer(models.Task{ID: 1, Title: "Buy milk"})

		w := do(ts, http.MethodPut, "/api/tasks/1", `{"completed":true}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		task := decodeTask(t, w)
		if task.Title != "Buy milk" {
			t.Errorf("put dropped the title: %+v", task)
		}
		if !task.Completed {
			t.Errorf("put did not apply the completion change")
		}
	})

	t.Run("Empty Body Changes Nothing", func(t *testing.T) {
		ts := newTestServer(models.Task{ID: 1, Title: "Buy milk", Completed: true})

		w := do(ts, http.MethodPatch, "/api/tasks/1", `{}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		task := decodeTask(t, w)
		if task.Title != "Buy milk" || !task.Completed {
			t.Errorf("task = %+v, want unchanged", task)
		}
	})

	t.Run("Blank Title Is Rejected", func(t *testing.T) {
		ts := newTestServer(models.Task{ID: 1, Title: "Buy milk"})

		w := do(ts, http.MethodPatch, "/api/tasks/1", `{"title":"   "}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if got := decodeErr(t, w); got != "title cannot be empty" {
			t.Errorf("error = %q, want title cannot be empty", got)
		}
	})

	t.Run("Missing Task Wins Over Invalid Payload", func(t *testing.T) {
		ts := newTestServer()

		w := do(ts, http.MethodPatch, "/api/tasks/99", `{"title":""}`)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404 before body validation", w.Code)
		}
	})

	t.Run("Coerces Completed Loosely", func(t *testing.T) {
		cases := []struct {
			body string
			want bool
		}{
			{`{"completed":1}`, true},
			{`{"completed":"yes"}`, true},
			{`{"completed":0}`, false},
			{`{"completed":null}`, false},
		}
		for _, tc := range cases {
			ts := newTestServer(models.Task{ID: 1, Title: "Buy milk", Completed: !tc.want})

			w := do(ts, http.MethodPatch, "/api/tasks/1", tc.body)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d for %q, want 200", w.Code, tc.body)
			}
			if task := decodeTask(t, w); task.Completed != tc.want {
				t.Errorf("completed = %v for %q, want %v", task.Completed, tc.body, tc.want)
			}
		}
	})
}

func TestHandleDeleteTask(t *testing.T) {
	t.Run("Deletes And Answers No Content", func(t *testing.T) {
		ts := newTestServer(models.Task{ID: 1, Title: "Buy milk"})

		w := do(ts, http.MethodDelete, "/api/tasks/1", "")

		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("body = %q, want empty", w.Body.String())
		}
		if after := do(ts, http.MethodGet, "/api/tasks/1", ""); after.Code != http.StatusNotFound {
			t.Errorf("task still served after delete")
		}
	})

	t.Run("Missing Task Is A 404", func(t *testing.T) {
		ts := newTestServer()

		w := do(ts, http.MethodDelete, "/api/tasks/99", "")

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("Ids Are Not Reused After Delete", func(t *testing.T) {
		ts := newTestServer()

		do(ts, http.MethodPost, "/api/tasks", `{"title":"Buy milk"}`)
		do(ts, http.MethodPost, "/api/tasks", `{"title":"Walk dog"}`)
		do(ts, http.MethodDelete, "/api/tasks/2", "")

		w := do(ts, http.MethodPost, "/api/tasks", `{"title":"Water plants"}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", w.Code)
		}
		if task := decodeTask(t, w); task.ID != 3 {
			t.Errorf("id = %d after delete, want 3", task.ID)
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("Tags Responses With A Request Id", func(t *testing.T) {
		ts := newTestServer()

		w := do(ts, http.MethodGet, "/api/health", "")

		if w.Header().Get("X-Request-ID") == "" {
			t.Errorf("response missing X-Request-ID")
		}
	})

	t.Run("Honors A Caller Supplied Request Id", func(t *testing.T) {
		ts := newTestServer()

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("X-Request-ID", "trace-me")
		w := httptest.NewRecorder()
		ts.engine.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != "trace-me" {
			t.Errorf("X-Request-ID = %q, want trace-me", got)
		}
	})

	t.Run("Allows Any Origin", func(t *testing.T) {
		ts := newTestServer()

		w := do(ts, http.MethodGet, "/api/tasks", "")

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
		}
	})

	t.Run("Answers Preflight Requests", func(t *testing.T) {
		ts := newTestServer()

		w := do(ts, http.MethodOptions, "/api/tasks", "")

		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", w.Code)
		}
		if methods := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "PATCH") {
			t.Errorf("allowed methods = %q, want PATCH included", methods)
		}
	})

	t.Run("Throttles Past The Configured Burst", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		cfg := shared.DefaultConfig()
		cfg.Server.RatePerSecond = 1
		cfg.Server.RateBurst = 1
		ts := New(cfg, shared.NewLogger(io.Discard), repositories.NewMemoryTaskRepository())

		if w := do(ts, http.MethodGet, "/api/health", ""); w.Code != http.StatusOK {
			t.Fatalf("first request status = %d, want 200", w.Code)
		}
		w := do(ts, http.MethodGet, "/api/health", "")
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("second request status = %d, want 429", w.Code)
		}
		if got := decodeErr(t, w); got != "rate limit exceeded" {
			t.Errorf("error = %q, want rate limit exceeded", got)
		}
	})
}
