package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/handler/http/response"
)

// RequireApprover requires the team lead role, or admin when the
// deployment allows admins to act on late requests.
func RequireApprover(adminAllowed bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrTeamLeadAccessRequired)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, user.ErrTeamLeadAccessRequired)
				return
			}

			if !user.CanResolveLateRequests(user.Role(roleStr), adminAllowed) {
				response.HandleError(w, user.ErrTeamLeadAccessRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
