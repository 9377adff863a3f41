package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kderen/bugtrail/internal/models"
	"github.com/kderen/bugtrail/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBugHandler(repo *services.MockBugRepository) *BugHandler {
	return NewBugHandler(services.NewBugService(repo, testLogger()))
}

func TestCreateBug_ReporterComesFromPrincipal(t *testing.T) {
	handler := newTestBugHandler(&services.MockBugRepository{})

	req := NewTestRequest(t, "POST", "/bugs", map[string]string{
		"title":          "Login page drops trailing whitespace",
		"description":    "Emails with trailing spaces fail to match",
		"classification": models.ClassificationFunctional,
		"severity":       models.SeverityHigh,
	})
	req = WithPrincipal(req, "dev@example.com", models.AuthoritiesForRole(models.RoleUser))

	rec := httptest.NewRecorder()
	handler.CreateBug(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BugResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dev@example.com", resp.ReporterEmail)
	assert.Equal(t, models.StatusNew, resp.Status)
}

func TestCreateBug_AnonymousRejected(t *testing.T) {
	handler := newTestBugHandler(&services.MockBugRepository{})

	req := NewTestRequest(t, "POST", "/bugs", map[string]string{
		"title":          "Anything",
		"classification": models.ClassificationFunctional,
		"severity":       models.SeverityLow,
	})

	rec := httptest.NewRecorder()
	handler.CreateBug(rec, req)

	AssertErrorResponse(t, rec, http.StatusUnauthorized)
}

func TestCreateBug_InvalidEnumRejected(t *testing.T) {
	handler := newTestBugHandler(&services.MockBugRepository{})

	req := NewTestRequest(t, "POST", "/bugs", map[string]string{
		"title":          "Bad enum",
		"classification": "cosmic",
		"severity":       models.SeverityLow,
	})
	req = WithPrincipal(req, "dev@example.com", models.AuthoritiesForRole(models.RoleUser))

	rec := httptest.NewRecorder()
	handler.CreateBug(rec, req)

	AssertErrorResponse(t, rec, http.StatusBadRequest)
}

func TestGetBug_NotFound(t *testing.T) {
	handler := newTestBugHandler(&services.MockBugRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Bug, error) {
			return nil, models.ErrNotFound
		},
	})

	req := httptest.NewRequest("GET", "/bugs/missing", nil)
	rec := httptest.NewRecorder()
	handler.GetBug(rec, req)

	AssertErrorResponse(t, rec, http.StatusNotFound)
}
