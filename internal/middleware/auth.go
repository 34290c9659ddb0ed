package middleware

import (
	"context"
	"net/http"

	"garagebook-api/internal/model"
	"garagebook-api/pkg/apierror"
)

// UserKey is the context key for the authenticated user.
const UserKey contextKey = "user"

// SessionSource exposes the active session subject. The domain store
// satisfies it; handing the middleware an interface keeps the
// dependency injected instead of ambient.
type SessionSource interface {
	CurrentUser() *model.User
}

// NewAuthMiddleware returns a middleware that rejects requests while
// nobody is logged in. The router applies it only to the protected
// route group, so public routes never pass through here.
func NewAuthMiddleware(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := sessions.CurrentUser()
			if user == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write(apierror.Unauthorized("login required").ToJSON())
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(ctx context.Context) *model.User {
	if user, ok := ctx.Value(UserKey).(*model.User); ok {
		return user
	}
	return nil
}
