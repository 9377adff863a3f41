package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kderen/bugtrail/internal/auth"
	"github.com/kderen/bugtrail/internal/services"
	pkghttp "github.com/kderen/bugtrail/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewTestRequest creates an HTTP request with a JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithPrincipal attaches an authenticated principal to the request context
func WithPrincipal(req *http.Request, email string, authorities []string) *http.Request {
	ctx := auth.ContextWithPrincipal(req.Context(), &auth.Principal{
		Email:       email,
		Authorities: authorities,
	})
	return req.WithContext(ctx)
}

// AssertErrorResponse checks status and decodes the failure envelope
func AssertErrorResponse(t *testing.T, rec *httptest.ResponseRecorder, expectedStatus int) pkghttp.ErrorResponse {
	t.Helper()

	assert.Equal(t, expectedStatus, rec.Code)

	var resp pkghttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, expectedStatus, resp.Status)
	assert.NotEmpty(t, resp.Message)
	return resp
}

// testLogger discards output so handler tests stay quiet
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestAuthService wires an AuthService around the given repository with
// test-friendly lock tunables.
func NewTestAuthService(repo *services.MockUserRepository) *services.AuthService {
	codec := auth.NewTokenCodec("handlers-test-secret-key", time.Hour)
	attempts := auth.NewAttemptTracker(5, 100, 5*time.Minute)
	return services.NewAuthService(repo, codec, attempts, 5*time.Minute, testLogger())
}
