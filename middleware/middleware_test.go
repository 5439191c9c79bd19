package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sheharaF/Eventia-backend/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, userID, role string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func TestValidateJWT_RoundTrip(t *testing.T) {
	token := signToken(t, "u1", "User", time.Hour)

	claims, err := ValidateJWT("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "User", claims.Role)
}

func TestValidateJWT_AcceptsRawToken(t *testing.T) {
	token := signToken(t, "u1", "User", time.Hour)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestValidateJWT_RejectsExpired(t *testing.T) {
	token := signToken(t, "u1", "User", -time.Minute)

	_, err := ValidateJWT("Bearer " + token)
	assert.Error(t, err)
}

func TestValidateJWT_RejectsTampered(t *testing.T) {
	token := signToken(t, "u1", "User", time.Hour)

	_, err := ValidateJWT("Bearer " + token + "x")
	assert.Error(t, err)
}

func TestValidateJWT_RejectsWrongKey(t *testing.T) {
	claims := &Claims{UserID: "u1", Role: "Admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = ValidateJWT("Bearer " + token)
	assert.Error(t, err)
}

func TestAuthenticate_NoToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not be reached")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/cart", nil)
	handler(rec, req, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided")
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not be reached")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler(rec, req, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestAuthenticate_SetsContext(t *testing.T) {
	var gotUser, gotRole string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/cart", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u7", "Vendor", time.Hour))
	handler(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u7", gotUser)
	assert.Equal(t, "Vendor", gotRole)
}

func TestRequireRoles_AllowsMatchingRole(t *testing.T) {
	handler := Authenticate(RequireRoles(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	}, "Admin"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "a1", "Admin", time.Hour))
	handler(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_ForbidsOtherRole(t *testing.T) {
	handler := Authenticate(RequireRoles(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not be reached")
	}, "Admin"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "User", time.Hour))
	handler(rec, req, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient permissions")
}

func TestRequireRoles_NoAuthenticateContext(t *testing.T) {
	handler := RequireRoles(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not be reached")
	}, "User")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/cart", nil)
	handler(rec, req, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoles_MultipleRoles(t *testing.T) {
	handler := Authenticate(RequireRoles(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	}, "User", "Admin"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/event-plans/p1", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "a1", "Admin", time.Hour))
	handler(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
