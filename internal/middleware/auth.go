package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"showroom-backend/internal/auth"
	"showroom-backend/internal/models"
	"showroom-backend/pkg/utils"
)

type contextKey string

const userContextKey contextKey = "user"

// Redirect targets for browser clients.
const (
	loginPath     = "/auth/login"
	pendingPath   = "/auth/pending"
	dashboardPath = "/dashboard"
)

// UserStore looks up the current account state. The gate re-reads it on
// every request so approval or role revocation takes effect immediately.
type UserStore interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	users      UserStore
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, users UserStore) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, users: users}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// Authenticate validates the bearer token, re-reads the user from the
// database and requires the account to be approved. Lookup errors and
// missing rows deny exactly like an unapproved account; the gate fails
// closed. Browser clients get redirects, API clients get JSON.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			denyUnauthenticated(w, r, "missing authorization token")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			denyUnauthenticated(w, r, "invalid or expired token")
			return
		}

		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", claims.UserID).Warn("user lookup failed, denying request")
			denyUnapproved(w, r)
			return
		}
		if !user.Approved {
			denyUnapproved(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows only the admin role through. The sales role is
// redirected back to its one permitted surface, the inventory dashboard.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil {
			denyUnauthenticated(w, r, "missing authorization token")
			return
		}
		if user.Role != models.RoleAdmin {
			if wantsHTML(r) {
				http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
				return
			}
			utils.Error(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser returns the authenticated user set by Authenticate, or nil.
func GetUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}
	return ""
}

func denyUnauthenticated(w http.ResponseWriter, r *http.Request, message string) {
	if wantsHTML(r) {
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return
	}
	utils.Error(w, http.StatusUnauthorized, message)
}

// denyUnapproved handles accounts awaiting approval. This is an expected
// transient state after signup, so browsers land on the pending page
// rather than an error.
func denyUnapproved(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		http.Redirect(w, r, pendingPath, http.StatusSeeOther)
		return
	}
	utils.Error(w, http.StatusForbidden, "account pending approval")
}
