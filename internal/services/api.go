// HTTP client for the task store API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/tsk/internal/models"
	"github.com/desertthunder/tsk/internal/shared"
)

const defaultBaseURL string = "http://localhost:8080/api"

// Client implements [TaskAPI] over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a task store client. An empty baseURL falls back to the
// local development server, a nil client to http.DefaultClient.
func NewClient(baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// doRequest performs one round-trip against the store.
//
// A request that never completes is [shared.ErrTransport]; a non-success
// status is [shared.ErrServer]. Error bodies are not parsed because the
// store does not distinguish not-found from validation failures to clients.
// An empty success body with a nil or unfilled result is valid, never a
// decode failure.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrServer, resp.StatusCode)
	}

	if result == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrTransport, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListTasks retrieves every task.
//
// Calls GET /tasks on the store.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.doRequest(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task with the given title.
//
// Calls POST /tasks on the store. Callers trim the title and reject empty
// titles before the round-trip.
func (c *Client) CreateTask(ctx context.Context, title string) (*models.Task, error) {
	body := struct {
		Title string `json:"title"`
	}{Title: title}

	var task models.Task
	if err := c.doRequest(ctx, http.MethodPost, "/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask retrieves a single task by id.
//
// Calls GET /tasks/{id} on the store.
func (c *Client) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	endpoint := fmt.Sprintf("/tasks/%d", id)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update and returns the full updated record.
//
// Calls PATCH /tasks/{id} on the store.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	var task models.Task
	endpoint := fmt.Sprintf("/tasks/%d", id)
	if err := c.doRequest(ctx, http.MethodPatch, endpoint, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task by id. The store answers 204 with no body.
//
// Calls DELETE /tasks/{id} on the store.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/tasks/%d", id)
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// Health checks whether the store is serving.
//
// Calls GET /health on the store.
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	var status models.HealthStatus
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
