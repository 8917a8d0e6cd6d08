package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/desertthunder/tsk/internal/models"
	"github.com/desertthunder/tsk/internal/shared"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.repo.List()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	data := bindLoose(c)

	title, _ := data["title"].(string)
	title = strings.TrimSpace(title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	task, err := s.repo.Create(title, truthy(data["completed"]))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := s.repo.Get(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleUpdateTask serves both PUT and PATCH. Existence is checked before
// the body so an absent task answers 404 even with an invalid payload.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	if _, err := s.repo.Get(id); err != nil {
		s.fail(c, err)
		return
	}

	data := bindLoose(c)
	patch := models.TaskPatch{}

	if raw, present := data["title"]; present {
		title, _ := raw.(string)
		title = strings.TrimSpace(title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
			return
		}
		patch.Title = &title
	}
	if raw, present := data["completed"]; present {
		completed := truthy(raw)
		patch.Completed = &completed
	}

	task, err := s.repo.Update(id, patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := s.repo.Delete(id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps repository errors onto API responses.
func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, shared.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	s.logger.Error("request failed",
		"id", c.GetString("request_id"),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// taskID parses the :id route param. Non-numeric ids read as absent tasks.
func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return 0, false
	}
	return id, true
}

// bindLoose decodes the request body as a free-form object. A missing or
// malformed body reads as empty rather than failing the request, so
// validation decides the response.
func bindLoose(c *gin.Context) map[string]any {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		return map[string]any{}
	}
	return data
}

// truthy applies the loose boolean coercion browser clients rely on:
// JSON false, 0, "", and null read as false, anything else as true.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	default:
		return true
	}
}
