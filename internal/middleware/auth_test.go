package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showroom-backend/internal/auth"
	"showroom-backend/internal/config"
	"showroom-backend/internal/models"
)

type stubUserStore struct {
	users map[int]*models.User
	err   error
}

func (s *stubUserStore) GetByID(ctx context.Context, id int) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return user, nil
}

func testJWTManager(t *testing.T) *auth.JWTManager {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "test"
	return auth.NewJWTManager(cfg)
}

func tokenFor(t *testing.T, jm *auth.JWTManager, user *models.User) string {
	t.Helper()
	token, err := jm.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	jm := testJWTManager(t)
	mw := NewAuthMiddleware(jm, &stubUserStore{})

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	rec := httptest.NewRecorder()

	mw.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestAuthenticateRedirectsBrowserToLogin(t *testing.T) {
	jm := testJWTManager(t)
	mw := NewAuthMiddleware(jm, &stubUserStore{})

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	mw.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
	assert.False(t, called)
}

func TestAuthenticateDeniesUnapprovedUser(t *testing.T) {
	jm := testJWTManager(t)
	pending := &models.User{ID: 5, Email: "new@showroom.id", Role: models.RoleSales, Approved: false}
	mw := NewAuthMiddleware(jm, &stubUserStore{users: map[int]*models.User{5: pending}})
	token := tokenFor(t, jm, pending)

	t.Run("api client gets 403", func(t *testing.T) {
		var called bool
		req := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, called)
	})

	t.Run("browser is redirected to the pending page, not shown an error", func(t *testing.T) {
		var called bool
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "text/html")
		rec := httptest.NewRecorder()

		mw.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/pending", rec.Header().Get("Location"))
		assert.False(t, called)
	})
}

func TestAuthenticateFailsClosedOnLookupError(t *testing.T) {
	jm := testJWTManager(t)
	user := &models.User{ID: 9, Email: "x@showroom.id", Role: models.RoleAdmin, Approved: true}
	mw := NewAuthMiddleware(jm, &stubUserStore{err: errors.New("db down")})
	token := tokenFor(t, jm, user)

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestAuthenticatePassesApprovedUser(t *testing.T) {
	jm := testJWTManager(t)
	admin := &models.User{ID: 1, Email: "admin@showroom.id", Role: models.RoleAdmin, Approved: true}
	mw := NewAuthMiddleware(jm, &stubUserStore{users: map[int]*models.User{1: admin}})
	token := tokenFor(t, jm, admin)

	var seen *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUser(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, 1, seen.ID)
}

func TestAuthenticateReflectsRevokedApprovalImmediately(t *testing.T) {
	jm := testJWTManager(t)
	user := &models.User{ID: 2, Email: "ex@showroom.id", Role: models.RoleSales, Approved: true}
	store := &stubUserStore{users: map[int]*models.User{2: user}}
	mw := NewAuthMiddleware(jm, store)
	token := tokenFor(t, jm, user)

	// Approval is revoked after the token was issued.
	user.Approved = false

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestRequireAdmin(t *testing.T) {
	jm := testJWTManager(t)
	mw := NewAuthMiddleware(jm, &stubUserStore{})

	withUser := func(r *http.Request, user *models.User) *http.Request {
		ctx := context.WithValue(r.Context(), userContextKey, user)
		return r.WithContext(ctx)
	}

	t.Run("sales role is forbidden on api calls", func(t *testing.T) {
		var called bool
		req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
		req = withUser(req, &models.User{ID: 3, Role: models.RoleSales, Approved: true})
		rec := httptest.NewRecorder()

		mw.RequireAdmin(okHandler(&called)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, called)
	})

	t.Run("sales role browser is sent back to the dashboard", func(t *testing.T) {
		var called bool
		req := httptest.NewRequest(http.MethodGet, "/analitik", nil)
		req.Header.Set("Accept", "text/html")
		req = withUser(req, &models.User{ID: 3, Role: models.RoleSales, Approved: true})
		rec := httptest.NewRecorder()

		mw.RequireAdmin(okHandler(&called)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
		assert.False(t, called)
	})

	t.Run("admin passes through", func(t *testing.T) {
		var called bool
		req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
		req = withUser(req, &models.User{ID: 1, Role: models.RoleAdmin, Approved: true})
		rec := httptest.NewRecorder()

		mw.RequireAdmin(okHandler(&called)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})
}
