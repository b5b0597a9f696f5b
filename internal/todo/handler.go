package todo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/internal/logging"
	"github.com/taskhive/taskhive/internal/user"
)

const (
	defaultListLimit = 10
)

// Handler contains HTTP handlers for the todo endpoints. All of them sit
// behind the auth middleware.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateRequest represents the todo creation body
type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	State       State  `json:"state,omitempty"`
}

// PatchRequest represents the partial update body. Absent fields are left
// untouched.
type PatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	State       *State  `json:"state"`
}

// ListResponse wraps the todo collection
type ListResponse struct {
	Todos []Todo `json:"todos"`
}

// Create handles todo creation
// @Summary      Create a todo
// @Description  Create a task owned by the authenticated user. State defaults to draft.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRequest true "Todo fields"
// @Success      201 {object} Todo
// @Failure      400 {object} httputil.ErrorResponse "Invalid body or state"
// @Router       /todos/ [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	owner, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid todo request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), owner.ID, CreateInput{
		Title:       req.Title,
		Description: req.Description,
		State:       req.State,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidState) {
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("failed to create todo", "error", err.Error())
		httputil.RespondError(w, "failed to create todo", http.StatusInternalServerError)
		return
	}

	logger.Info("todo created", "todo_id", created.ID, "user_id", owner.ID)
	httputil.RespondJSON(w, created, http.StatusCreated)
}

// List handles the filtered, paginated listing of the caller's todos
// @Summary      List todos
// @Description  List the authenticated user's todos. Title and description filter by case-insensitive substring; state filters exactly.
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        title query string false "Title contains"
// @Param        description query string false "Description contains"
// @Param        state query string false "State" Enums(draft, todo, state, doing, done, trash)
// @Param        offset query int false "Offset" default(0)
// @Param        limit query int false "Limit" default(10)
// @Success      200 {object} ListResponse
// @Router       /todos/ [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	owner, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	filter := Filter{
		Title:       query.Get("title"),
		Description: query.Get("description"),
		State:       State(query.Get("state")),
	}
	offset := queryInt(query.Get("offset"), 0)
	limit := queryInt(query.Get("limit"), defaultListLimit)

	todos, err := h.service.List(r.Context(), owner.ID, filter, offset, limit)
	if err != nil {
		if errors.Is(err, ErrInvalidState) {
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("failed to list todos", "error", err.Error())
		httputil.RespondError(w, "failed to list todos", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, ListResponse{Todos: todos}, http.StatusOK)
}

// Patch handles a partial update of one of the caller's todos
// @Summary      Update a todo
// @Description  Apply a partial update. Fields absent from the body keep their values.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Todo ID"
// @Param        request body PatchRequest true "Fields to change"
// @Success      200 {object} Todo
// @Failure      404 {object} httputil.ErrorResponse "Task not found."
// @Router       /todos/{id} [patch]
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	owner, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.RespondError(w, "Task not found.", http.StatusNotFound)
		return
	}

	var req PatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid todo patch body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), owner.ID, id, Patch{
		Title:       req.Title,
		Description: req.Description,
		State:       req.State,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.RespondError(w, "Task not found.", http.StatusNotFound)
		case errors.Is(err, ErrInvalidState):
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
		default:
			logger.Error("failed to update todo", "error", err.Error())
			httputil.RespondError(w, "failed to update todo", http.StatusInternalServerError)
		}
		return
	}

	logger.Info("todo updated", "todo_id", id, "user_id", owner.ID)
	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete handles deletion of one of the caller's todos
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Todo ID"
// @Success      200 {object} httputil.Message
// @Failure      404 {object} httputil.ErrorResponse "Task not found."
// @Router       /todos/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	owner, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.RespondError(w, "Task not found.", http.StatusNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), owner.ID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "Task not found.", http.StatusNotFound)
			return
		}
		logger.Error("failed to delete todo", "error", err.Error())
		httputil.RespondError(w, "failed to delete todo", http.StatusInternalServerError)
		return
	}

	logger.Info("todo deleted", "todo_id", id, "user_id", owner.ID)
	httputil.RespondJSON(w, httputil.Message{Message: "Task has been deleted successfully."}, http.StatusOK)
}

func queryInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}
