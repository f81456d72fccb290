package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/basak2005/Google-workspace-Integration/internal/application"
	"github.com/basak2005/Google-workspace-Integration/internal/application/services"
)

// TasksHandler serves the /tasks routes.
type TasksHandler struct {
	tasks   *services.TasksService
	manager *application.CredentialManager
	logger  zerolog.Logger
}

// NewTasksHandler creates the tasks routes handler.
func NewTasksHandler(tasks *services.TasksService, manager *application.CredentialManager, logger zerolog.Logger) *TasksHandler {
	return &TasksHandler{tasks: tasks, manager: manager, logger: logger}
}

// ListTaskLists handles GET /tasks/lists.
func (h *TasksHandler) ListTaskLists(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	lists, err := h.tasks.ListTaskLists(r.Context(), rec)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lists": lists})
}

// ListTasks handles GET /tasks/lists/{listID}/tasks.
func (h *TasksHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	showCompleted := r.URL.Query().Get("show_completed") == "true"
	tasks, err := h.tasks.ListTasks(r.Context(), rec, chi.URLParam(r, "listID"), showCompleted)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// CreateTask handles POST /tasks/lists/{listID}/tasks.
func (h *TasksHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	var input services.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if input.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title is required"})
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), rec, chi.URLParam(r, "listID"), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/lists/{listID}/tasks/{taskID}.
func (h *TasksHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}

	var input services.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), rec, chi.URLParam(r, "listID"), chi.URLParam(r, "taskID"), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/lists/{listID}/tasks/{taskID}.
func (h *TasksHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	rec, ok := credential(r.Context(), w, h.manager, h.logger)
	if !ok {
		return
	}
	if err := h.tasks.DeleteTask(r.Context(), rec, chi.URLParam(r, "listID"), chi.URLParam(r, "taskID")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}
