package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kderen/bugtrail/internal/models"
	"github.com/kderen/bugtrail/internal/services"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserResponse represents a user in HTTP responses. Lock state is visible
// to admins; the password hash never leaves the server.
type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Speciality  string  `json:"speciality"`
	Role        string  `json:"role"`
	Active      bool    `json:"active"`
	NotLocked   bool    `json:"not_locked"`
	LockDate    *string `json:"lock_date,omitempty"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
	JoinedAt    string  `json:"joined_at"`
}

func userToResponse(user *models.User) *UserResponse {
	resp := &UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Speciality: user.Speciality,
		Role:       user.Role,
		Active:     user.Active,
		NotLocked:  user.NotLocked,
		JoinedAt:   user.JoinedAt.Format(time.RFC3339),
	}
	if user.LockDate != nil {
		s := user.LockDate.Format(time.RFC3339)
		resp.LockDate = &s
	}
	if user.LastLoginAt != nil {
		s := user.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &s
	}
	return resp
}

type updateUserRequest struct {
	FirstName  *string `json:"first_name" validate:"omitempty,max=50"`
	LastName   *string `json:"last_name" validate:"omitempty,max=50"`
	Speciality *string `json:"speciality"`
	Role       *string `json:"role"`
	Active     *bool   `json:"active"`
	NotLocked  *bool   `json:"not_locked"`
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, userToResponse(user))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := h.userService.GetByEmail(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req updateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Update(r.Context(), email, services.UpdateParams{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Speciality: req.Speciality,
		Role:       req.Role,
		Active:     req.Active,
		NotLocked:  req.NotLocked,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}

// UnlockUser restores a locked account immediately and resets its attempt
// counter
func (h *UserHandler) UnlockUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := h.userService.Unlock(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(user))
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.userService.Delete(r.Context(), email); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
