package middleware

import (
	"context"
	"net/http"

	"github.com/classroom-api/internal/domain"
)

// UserDirectory is the slice of the user store this middleware needs.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// MembershipDirectory is the slice of the administrators store this middleware needs.
type MembershipDirectory interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Membership, error)
}

// RequireAdmin returns middleware that allows access only to authenticated
// users holding an administrator membership. Tokens carry no role claim, so
// the membership is checked against the store on every request — a revoked
// administrator loses access immediately, not at token expiry.
func RequireAdmin(users UserDirectory, admins MembershipDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := SubjectFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			u, err := users.GetByEmail(r.Context(), email)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if _, err := admins.GetByUserID(r.Context(), u.UserID); err != nil {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
