package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vetician/vetician-api/internal/api/shared"
	"github.com/vetician/vetician-api/internal/redact"
	"github.com/vetician/vetician-api/internal/store"
)

// AdminMiddleware restricts routes to administrator accounts. It must run
// after Authenticate, which puts the user ID in the context.
type AdminMiddleware struct {
	users store.UserStore
}

// NewAdminMiddleware creates the middleware with the given user store.
func NewAdminMiddleware(users store.UserStore) *AdminMiddleware {
	return &AdminMiddleware{users: users}
}

// RequireAdmin loads the authenticated account and rejects non-admins.
func (m *AdminMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := shared.UserIDFromContext(r.Context())
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			slog.Error("failed to load user for admin check", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authorization error")
			return
		}

		if !user.IsAdmin {
			shared.RespondWithError(w, r, http.StatusForbidden, "Administrator access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
