package auth

import (
	"errors"
	"net/http"

	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/internal/logging"
	"github.com/taskhive/taskhive/internal/ratelimit"
	"github.com/taskhive/taskhive/internal/user"
)

// Handler contains HTTP handlers for the auth endpoints
type Handler struct {
	service     *Service
	rateLimiter *ratelimit.Limiter
}

func NewHandler(service *Service, rateLimiter *ratelimit.Limiter) *Handler {
	return &Handler{service: service, rateLimiter: rateLimiter}
}

// TokenResponse represents an issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token handles the credential-for-token exchange
// @Summary      Issue access token
// @Description  Exchange email and password for a bearer token. The form field is named username but carries the email.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username formData string true "Email"
// @Param        password formData string true "Password"
// @Success      200 {object} TokenResponse
// @Failure      404 {object} httputil.ErrorResponse "Incorrect email or password"
// @Router       /auth/token [post]
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ip := httputil.ClientIP(r)
	allowed, err := h.rateLimiter.Allow(r.Context(), ip, "login")
	if err != nil {
		logger.Error("failed to check rate limit", "error", err.Error())
	} else if !allowed {
		logger.Warn("rate limit exceeded for login", "ip", ip)
		httputil.RespondError(w, "too many requests, please try again later", http.StatusTooManyRequests)
		return
	}

	if err := r.ParseForm(); err != nil {
		logger.Warn("invalid token request form", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("username")
	pass := r.PostFormValue("password")

	accessToken, err := h.service.Login(r.Context(), email, pass)
	if err != nil {
		if errors.Is(err, ErrIncorrectCredentials) {
			logger.Warn("login failed: incorrect credentials")
			httputil.RespondError(w, "Incorrect email or password", http.StatusNotFound)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondError(w, "failed to login", http.StatusInternalServerError)
		return
	}

	logger.Info("access token issued")
	httputil.RespondJSON(w, TokenResponse{AccessToken: accessToken, TokenType: "Bearer"}, http.StatusOK)
}

// Refresh handles re-issuing a token for the authenticated caller
// @Summary      Refresh access token
// @Description  Issue a new token for the user behind the presented bearer token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} TokenResponse
// @Failure      401 {object} httputil.ErrorResponse "Could not validate credentials"
// @Router       /auth/refresh_token [get]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	u, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.service.Refresh(u)
	if err != nil {
		logger.Error("token refresh failed", "error", err.Error())
		httputil.RespondError(w, "failed to refresh token", http.StatusInternalServerError)
		return
	}

	logger.Info("access token refreshed", "user_id", u.ID)
	httputil.RespondJSON(w, TokenResponse{AccessToken: accessToken, TokenType: "Bearer"}, http.StatusOK)
}
