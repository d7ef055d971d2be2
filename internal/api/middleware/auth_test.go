package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/rx-portal/internal/api/middleware"
	"github.com/dom/rx-portal/internal/config"
	"github.com/dom/rx-portal/internal/domain"
	"github.com/dom/rx-portal/internal/service"
	"github.com/dom/rx-portal/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(userID uuid.UUID) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   userID.String(),
		"email": "doc@example.com",
		"role":  "DOCTOR",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
}

// identityEcho reports the identity the gate derived for the request
func identityEcho(t *testing.T, cfg *config.Config) (http.Handler, *domain.Identity, *bool) {
	t.Helper()

	var got domain.Identity
	var found bool

	authService := service.NewAuthService(nil, nil, cfg)
	handler := middleware.Identity(authService, cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = middleware.GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	return handler, &got, &found
}

func TestIdentity_ValidToken(t *testing.T) {
	cfg := testutil.TestConfig()
	handler, got, found := identityEcho(t, cfg)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWTSecret, validClaims(userID)))

	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, *found)
	assert.Equal(t, userID, got.ID)
	assert.Equal(t, "doc@example.com", got.Email)
	assert.Equal(t, domain.RoleDoctor, got.Role)
}

func TestIdentity_AnonymousByDefault(t *testing.T) {
	cfg := testutil.TestConfig()

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header"},
		{name: "malformed header", header: "Token abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{
			name:   "wrong signing key",
			header: "Bearer " + signToken(t, "some-other-secret", validClaims(uuid.New())),
		},
		{
			name: "expired token",
			header: "Bearer " + signToken(t, cfg.JWTSecret, jwt.MapClaims{
				"sub":   uuid.New().String(),
				"email": "doc@example.com",
				"role":  "DOCTOR",
				"exp":   time.Now().Add(-time.Hour).Unix(),
				"iat":   time.Now().Add(-2 * time.Hour).Unix(),
			}),
		},
		{
			name: "unknown role claim",
			header: "Bearer " + signToken(t, cfg.JWTSecret, jwt.MapClaims{
				"sub":   uuid.New().String(),
				"email": "doc@example.com",
				"role":  "SUPERUSER",
				"exp":   time.Now().Add(time.Hour).Unix(),
				"iat":   time.Now().Unix(),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _, found := identityEcho(t, cfg)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.False(t, *found, "invalid credentials must not produce an identity")
		})
	}
}

func TestIdentity_DevFallback(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.DevAuthFallback = true

	handler, got, found := identityEcho(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, *found)
	assert.Equal(t, domain.RoleDoctor, got.Role)
	assert.Equal(t, cfg.DevFallbackEmail, got.Email)
	assert.Equal(t, uuid.Nil, got.ID)
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cfg := testutil.TestConfig()
	authService := service.NewAuthService(nil, nil, cfg)
	handler := middleware.Identity(authService, cfg)(middleware.RequireAuth(next))

	// Anonymous request is rejected
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated request passes
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWTSecret, validClaims(uuid.New())))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cfg := testutil.TestConfig()
	authService := service.NewAuthService(nil, nil, cfg)
	handler := middleware.Identity(authService, cfg)(middleware.RequireRole(domain.RolePharmacist)(next))

	// Doctor hitting a pharmacist route
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWTSecret, validClaims(uuid.New())))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Anonymous caller
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Pharmacist passes
	claims := validClaims(uuid.New())
	claims["role"] = "PHARMACIST"
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWTSecret, claims))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
