package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kderen/bugtrail/internal/auth"
	"github.com/kderen/bugtrail/internal/models"
	"github.com/kderen/bugtrail/internal/services"
	pkghttp "github.com/kderen/bugtrail/pkg/http"
)

// BugHandler handles bug tracking endpoints
type BugHandler struct {
	bugService *services.BugService
}

// NewBugHandler creates a new BugHandler
func NewBugHandler(bugService *services.BugService) *BugHandler {
	return &BugHandler{bugService: bugService}
}

// BugResponse represents a bug in HTTP responses
type BugResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Classification string  `json:"classification"`
	Severity       string  `json:"severity"`
	Status         string  `json:"status"`
	ReporterEmail  string  `json:"reporter_email"`
	AssigneeEmail  *string `json:"assignee_email,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func bugToResponse(bug *models.Bug) *BugResponse {
	return &BugResponse{
		ID:             bug.ID,
		Title:          bug.Title,
		Description:    bug.Description,
		Classification: bug.Classification,
		Severity:       bug.Severity,
		Status:         bug.Status,
		ReporterEmail:  bug.ReporterEmail,
		AssigneeEmail:  bug.AssigneeEmail,
		CreatedAt:      bug.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      bug.UpdatedAt.Format(time.RFC3339),
	}
}

type createBugRequest struct {
	Title          string `json:"title" validate:"required,max=200"`
	Description    string `json:"description" validate:"max=5000"`
	Classification string `json:"classification" validate:"required"`
	Severity       string `json:"severity" validate:"required"`
}

type updateBugRequest struct {
	Title          *string `json:"title" validate:"omitempty,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=5000"`
	Classification *string `json:"classification"`
	Severity       *string `json:"severity"`
	Status         *string `json:"status"`
	AssigneeEmail  *string `json:"assignee_email" validate:"omitempty,email"`
}

func (h *BugHandler) ListBugs(w http.ResponseWriter, r *http.Request) {
	bugs, err := h.bugService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]*BugResponse, 0, len(bugs))
	for _, bug := range bugs {
		resp = append(resp, bugToResponse(bug))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BugHandler) GetBug(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	bug, err := h.bugService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bugToResponse(bug))
}

func (h *BugHandler) CreateBug(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		pkghttp.WriteUnauthorized(w, "You need to log in to access this resource")
		return
	}

	var req createBugRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	bug, err := h.bugService.Create(r.Context(), services.CreateBugParams{
		Title:          req.Title,
		Description:    req.Description,
		Classification: req.Classification,
		Severity:       req.Severity,
		ReporterEmail:  principal.Email,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bugToResponse(bug))
}

func (h *BugHandler) UpdateBug(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateBugRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	bug, err := h.bugService.Update(r.Context(), id, services.UpdateBugParams{
		Title:          req.Title,
		Description:    req.Description,
		Classification: req.Classification,
		Severity:       req.Severity,
		Status:         req.Status,
		AssigneeEmail:  req.AssigneeEmail,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bugToResponse(bug))
}

func (h *BugHandler) DeleteBug(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.bugService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
