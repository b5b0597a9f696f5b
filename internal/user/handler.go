package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/internal/logging"
	"github.com/taskhive/taskhive/internal/ratelimit"
)

// Handler contains HTTP handlers for the user directory endpoints
type Handler struct {
	service     *Service
	rateLimiter *ratelimit.Limiter
}

func NewHandler(service *Service, rateLimiter *ratelimit.Limiter) *Handler {
	return &Handler{service: service, rateLimiter: rateLimiter}
}

// CreateRequest represents the registration request body
type CreateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateRequest represents the update request body
type UpdateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ListResponse wraps the user collection
type ListResponse struct {
	Users []Public `json:"users"`
}

// Create handles user registration
// @Summary      Register a new user
// @Description  Create a new user account with username, email and password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateRequest true "Registration fields"
// @Success      201 {object} Public
// @Failure      400 {object} httputil.ErrorResponse "Email or username already exists"
// @Router       /users/ [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ip := httputil.ClientIP(r)
	allowed, err := h.rateLimiter.Allow(r.Context(), ip, "register")
	if err != nil {
		logger.Error("failed to check rate limit", "error", err.Error())
	} else if !allowed {
		logger.Warn("rate limit exceeded for register", "ip", ip)
		httputil.RespondError(w, "too many requests, please try again later", http.StatusTooManyRequests)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	newUser, err := h.service.Create(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			logger.Warn("registration failed: email already exists")
			httputil.RespondError(w, "Email already exists", http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrDuplicateUsername) {
			logger.Warn("registration failed: username already exists")
			httputil.RespondError(w, "Username already exists", http.StatusBadRequest)
			return
		}
		logger.Error("registration failed: internal error", "error", err.Error())
		httputil.RespondError(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	logger.Info("user registered", "user_id", newUser.ID)
	httputil.RespondJSON(w, newUser.Public(), http.StatusCreated)
}

// List handles the global user listing
// @Summary      List users
// @Description  List all users, paginated. No authentication required.
// @Tags         users
// @Produce      json
// @Param        offset query int false "Offset" default(0)
// @Param        limit query int false "Limit" default(100)
// @Success      200 {object} ListResponse
// @Router       /users/ [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 100)

	users, err := h.service.List(r.Context(), offset, limit)
	if err != nil {
		logger.Error("failed to list users", "error", err.Error())
		httputil.RespondError(w, "failed to list users", http.StatusInternalServerError)
		return
	}

	publics := make([]Public, 0, len(users))
	for i := range users {
		publics = append(publics, users[i].Public())
	}

	httputil.RespondJSON(w, ListResponse{Users: publics}, http.StatusOK)
}

// Get handles fetching a single user's public view
// @Summary      Get user by id
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} Public
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /users/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		httputil.RespondError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, "User not found", http.StatusNotFound)
			return
		}
		logger.Error("failed to get user", "error", err.Error())
		httputil.RespondError(w, "failed to get user", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, u.Public(), http.StatusOK)
}

// Update handles a full update of the authenticated user's own record
// @Summary      Update user
// @Description  Replace username, email and password. Users may only update themselves.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body UpdateRequest true "Replacement fields"
// @Success      200 {object} Public
// @Failure      403 {object} httputil.ErrorResponse "Not enough permission"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /users/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		httputil.RespondError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	requester, ok := FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid update request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), id, requester.ID, UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			logger.Warn("update forbidden", "user_id", id, "requester_id", requester.ID)
			httputil.RespondError(w, "Not enough permission", http.StatusForbidden)
		case errors.Is(err, ErrNotFound):
			httputil.RespondError(w, "User not found", http.StatusNotFound)
		case errors.Is(err, ErrDuplicateEmail):
			httputil.RespondError(w, "Email already exists", http.StatusBadRequest)
		case errors.Is(err, ErrDuplicateUsername):
			httputil.RespondError(w, "Username already exists", http.StatusBadRequest)
		default:
			logger.Error("failed to update user", "error", err.Error())
			httputil.RespondError(w, "failed to update user", http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user updated", "user_id", id)
	httputil.RespondJSON(w, updated.Public(), http.StatusOK)
}

// Delete handles deletion of the authenticated user's own record
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} httputil.Message
// @Failure      403 {object} httputil.ErrorResponse "Not enough permission"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /users/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		httputil.RespondError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	requester, ok := FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), id, requester.ID); err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			logger.Warn("delete forbidden", "user_id", id, "requester_id", requester.ID)
			httputil.RespondError(w, "Not enough permission", http.StatusForbidden)
		case errors.Is(err, ErrNotFound):
			httputil.RespondError(w, "User not found", http.StatusNotFound)
		default:
			logger.Error("failed to delete user", "error", err.Error())
			httputil.RespondError(w, "failed to delete user", http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user deleted", "user_id", id)
	httputil.RespondJSON(w, httputil.Message{Message: "User deleted"}, http.StatusOK)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}
