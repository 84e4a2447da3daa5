package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/chronohr/timesheet-backend-go/internal/handler/http/response"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/jwt"
)

// ApproverOnly restricts a route to actors whose role may approve, reject
// or clear timesheets.
func ApproverOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, errInvalidToken.Error())
			return
		}

		role, ok := claims["role"].(string)
		if !ok || !jwt.Role(role).CanApprove() {
			response.Forbidden(w, "Approver role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
