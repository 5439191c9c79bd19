package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/idtoken"
)

func stubValidator(t *testing.T, fn func(ctx context.Context, token, audience string) (*idtoken.Payload, error)) {
	t.Helper()
	orig := idTokenValidator
	idTokenValidator = fn
	t.Cleanup(func() { idTokenValidator = orig })
}

func googleAuthRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/google/auth", strings.NewReader(body))
}

func TestGoogleAuth_MissingToken(t *testing.T) {
	for _, body := range []string{`{}`, `{"token":""}`, `not json`} {
		rec := httptest.NewRecorder()
		GoogleAuth(rec, googleAuthRequest(body), nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token is missing.")
	}
}

func TestGoogleAuth_NotConfigured(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")

	rec := httptest.NewRecorder()
	GoogleAuth(rec, googleAuthRequest(`{"token":"abc"}`), nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGoogleAuth_InvalidToken(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-123")
	stubValidator(t, func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "forged", token)
		assert.Equal(t, "client-123", audience)
		return nil, errors.New("idtoken: signature mismatch")
	})

	rec := httptest.NewRecorder()
	GoogleAuth(rec, googleAuthRequest(`{"token":"forged"}`), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Google token.")
}

func TestGoogleAuth_MissingEmailClaim(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-123")
	stubValidator(t, func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Subject: "google-sub-1",
			Claims:  map[string]interface{}{"name": "No Email"},
		}, nil
	})

	rec := httptest.NewRecorder()
	GoogleAuth(rec, googleAuthRequest(`{"token":"valid"}`), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email is required.")
}
