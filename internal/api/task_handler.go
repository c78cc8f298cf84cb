package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/taskward/taskward-api/internal/api/shared"
	"github.com/taskward/taskward-api/internal/either"
	"github.com/taskward/taskward-api/internal/service"
	"github.com/taskward/taskward-api/internal/store"
)

// TaskHandler handles task-related API requests.
type TaskHandler struct {
	tasks     service.TaskService
	validator *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{
		tasks:     tasks,
		validator: validator.New(),
	}
}

// respondOutcome translates a mutation outcome into a response: success is an
// empty 200, domain errors go through the shared status mapping.
func respondOutcome(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	status := MapErrorToStatusCode(err)
	if status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}

// CreateTask handles POST /tasks. The owner is the authenticated principal.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	username, ok := getUsernameFromContext(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task name is required")
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err = h.tasks.CreateTask(r.Context(), service.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     dueDate,
		Owner:       username,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	either.Fold(h.tasks.GetTask(r.Context(), id),
		func(err error) any {
			respondOutcome(w, r, err)
			return nil
		},
		func(view service.TaskView) any {
			shared.RespondWithJSON(w, r, http.StatusOK, view)
			return nil
		})
}

// ListTasks handles GET /tasks with optional completed and dueDate filters
// plus page/size pagination.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter service.ListTasksFilter
	if raw := query.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "completed must be a boolean")
			return
		}
		filter.Completed = &completed
	}
	dueDate, err := parseDate(query.Get("dueDate"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	filter.DueDateBefore = dueDate

	page, _ := strconv.Atoi(query.Get("page"))
	size, _ := strconv.Atoi(query.Get("size"))
	req := store.NewPageRequest(page, size)

	either.Fold(h.tasks.ListTasks(r.Context(), filter, req),
		func(err error) any {
			shared.RespondWithErrorAndLog(w, r,
				http.StatusInternalServerError, GetSafeErrorMessage(err), err)
			return nil
		},
		func(result store.Page[service.TaskView]) any {
			shared.RespondWithJSON(w, r, http.StatusOK, result)
			return nil
		})
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	username, ok := getUsernameFromContext(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task fields")
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	respondOutcome(w, r, h.tasks.UpdateTask(r.Context(), id, service.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     dueDate,
	}, username))
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	username, ok := getUsernameFromContext(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	respondOutcome(w, r, h.tasks.DeleteTask(r.Context(), id, username))
}

// CompleteTask handles PATCH /tasks/{id}/complete.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	username, ok := getUsernameFromContext(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	respondOutcome(w, r, h.tasks.CompleteTask(r.Context(), id, username))
}
