package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskstack/taskstack/internal/application"
	"github.com/taskstack/taskstack/internal/interface/middleware"
	"github.com/taskstack/taskstack/pkg/response"
	"github.com/taskstack/taskstack/pkg/validation"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type taskRequest struct {
	Title string `json:"title" binding:"required"`
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "validation_error", "invalid task id", nil)
		return 0, false
	}
	return id, true
}

// Create POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "invalid payload", validation.ToDetails(err))
		return
	}
	id, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), req.Title)
	if err != nil {
		if errors.Is(err, application.ErrEmptyTitle) {
			response.Error(c, http.StatusBadRequest, "validation_error", "title must not be empty", nil)
			return
		}
		h.Logger.WithError(err).Error("task creation failed")
		response.Error(c, http.StatusInternalServerError, "store_error", "failed to create task", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id}, "task created")
}

// List GET /api/tasks returns the caller's tasks.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.Svc.ListForOwner(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.Logger.WithError(err).Error("task listing failed")
		response.Error(c, http.StatusInternalServerError, "store_error", "failed to retrieve tasks", nil)
		return
	}
	response.Success(c, http.StatusOK, tasks, "tasks")
}

// Get GET /api/tasks/:id returns a single task owned by the caller.
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	t, err := h.Svc.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, application.ErrTaskNotFound) {
			response.Error(c, http.StatusNotFound, "not_found", "task not found or unauthorized", nil)
			return
		}
		h.Logger.WithError(err).Error("task fetch failed")
		response.Error(c, http.StatusInternalServerError, "store_error", "failed to retrieve task", nil)
		return
	}
	response.Success(c, http.StatusOK, t, "task")
}

// Update PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.Update(c.Request.Context(), id, middleware.UserID(c), req.Title)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmptyTitle):
			response.Error(c, http.StatusBadRequest, "validation_error", "title must not be empty", nil)
		case errors.Is(err, application.ErrTaskNotFound):
			response.Error(c, http.StatusNotFound, "not_found", "task not found or unauthorized", nil)
		default:
			h.Logger.WithError(err).Error("task update failed")
			response.Error(c, http.StatusInternalServerError, "store_error", "failed to update task", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id}, "task updated")
}

// Delete DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	err := h.Svc.Delete(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, application.ErrTaskNotFound) {
			response.Error(c, http.StatusNotFound, "not_found", "task not found or unauthorized", nil)
			return
		}
		h.Logger.WithError(err).Error("task delete failed")
		response.Error(c, http.StatusInternalServerError, "store_error", "failed to delete task", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id}, "task deleted")
}

// ListAll GET /api/admin/tasks returns every task. Admin gate required.
func (h *TaskHandler) ListAll(c *gin.Context) {
	tasks, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("admin task listing failed")
		response.Error(c, http.StatusInternalServerError, "store_error", "failed to retrieve tasks", nil)
		return
	}
	response.Success(c, http.StatusOK, tasks, "all tasks")
}
