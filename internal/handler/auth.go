package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"garagebook-api/internal/middleware"
	"garagebook-api/internal/service"
	"garagebook-api/pkg/apierror"
	"garagebook-api/pkg/response"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	store *service.Store
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(store *service.Store) *AuthHandler {
	return &AuthHandler{store: store}
}

// CredentialsRequest represents the request body for register and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the user view returned by auth endpoints. Passwords
// never leave the store through this surface.
type UserResponse struct {
	Username string `json:"username"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if req.Username == "" {
		response.Error(w, apierror.BadRequest("username is required"))
		return
	}
	if req.Password == "" {
		response.Error(w, apierror.BadRequest("password is required"))
		return
	}

	user, err := h.store.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			response.Error(w, apierror.Conflict("username already exists"))
			return
		}
		response.Error(w, apierror.InternalError("failed to register user"))
		return
	}

	response.Created(w, UserResponse{Username: user.Username})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	user, err := h.store.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(w, apierror.Unauthorized("invalid username or password"))
		return
	}

	response.OK(w, UserResponse{Username: user.Username})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Logout(r.Context())
	response.OK(w, map[string]string{"status": "logged_out"})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}
	response.OK(w, UserResponse{Username: user.Username})
}
